package tasks

import "perftrack/internal/domain/document"

type populateKey struct {
	templateID document.ID
	assignedTo document.ID
}

// AutoPopulate creates today's task for every active template assigned to an
// active employee, unless a task for the same template, assignee and date
// already exists. It returns the number of tasks created; running it twice
// for the same day creates nothing the second time.
func AutoPopulate(doc *document.Document, today string) int {
	existing := map[populateKey]bool{}
	for _, task := range doc.DailyTasks {
		if task.TemplateID != nil && task.Date == today {
			existing[populateKey{*task.TemplateID, task.AssignedTo}] = true
		}
	}

	created := 0
	for _, tpl := range doc.TaskTemplates {
		if !tpl.IsActive || tpl.AssignedTo == nil {
			continue
		}
		emp, ok := doc.Employee(*tpl.AssignedTo)
		if !ok || emp.IsArchived {
			continue
		}
		key := populateKey{tpl.ID, emp.ID}
		if existing[key] {
			continue
		}
		existing[key] = true
		doc.DailyTasks = append(doc.DailyTasks, document.DailyTask{
			ID:          document.NewID(),
			TemplateID:  document.IDPtr(tpl.ID),
			Name:        tpl.Name,
			Description: tpl.Description,
			AssignedTo:  emp.ID,
			Date:        today,
		})
		created++
	}
	return created
}
