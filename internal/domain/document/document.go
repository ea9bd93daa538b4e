package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"
)

const DefaultAdminPassword = "admin123"

// Document is the aggregate root persisted as one JSON file.
type Document struct {
	Employees             []Employee             `json:"employees"`
	Ratings               []Rating               `json:"ratings"`
	Categories            []string               `json:"categories"`
	TaskTemplates         []TaskTemplate         `json:"taskTemplates"`
	DailyTasks            []DailyTask            `json:"dailyTasks"`
	Rules                 []Rule                 `json:"rules"`
	Violations            []RuleViolation        `json:"violations"`
	MonthlyLeaves         []MonthlyLeaveRecord   `json:"monthlyLeaves"`
	TaskIncompleteReports []TaskIncompleteReport `json:"taskIncompleteReports"`
	AdminPassword         string                 `json:"adminPassword"`
}

var errNotObject = errors.New("document must be a JSON object")

// Default returns an empty document with the default categories.
func Default(adminPassword string) Document {
	doc := Document{
		Categories:    append([]string(nil), DefaultCategories...),
		AdminPassword: adminPassword,
	}
	doc.Normalize()
	return doc
}

// Normalize replaces missing collections with empty ones so the document
// always serializes with every array present.
func (d *Document) Normalize() {
	if d.Employees == nil {
		d.Employees = []Employee{}
	}
	if d.Ratings == nil {
		d.Ratings = []Rating{}
	}
	if d.Categories == nil {
		d.Categories = []string{}
	}
	if d.TaskTemplates == nil {
		d.TaskTemplates = []TaskTemplate{}
	}
	if d.DailyTasks == nil {
		d.DailyTasks = []DailyTask{}
	}
	if d.Rules == nil {
		d.Rules = []Rule{}
	}
	if d.Violations == nil {
		d.Violations = []RuleViolation{}
	}
	if d.MonthlyLeaves == nil {
		d.MonthlyLeaves = []MonthlyLeaveRecord{}
	}
	if d.TaskIncompleteReports == nil {
		d.TaskIncompleteReports = []TaskIncompleteReport{}
	}
}

// Employee looks up an employee by id, archived or not.
func (d *Document) Employee(id ID) (Employee, bool) {
	for _, emp := range d.Employees {
		if emp.ID == id {
			return emp, true
		}
	}
	return Employee{}, false
}

// EmployeeIndex returns the position of the employee with id, or -1.
func (d *Document) EmployeeIndex(id ID) int {
	for i, emp := range d.Employees {
		if emp.ID == id {
			return i
		}
	}
	return -1
}

// ActiveEmployees returns the employees that are not archived, in order.
func (d *Document) ActiveEmployees() []Employee {
	out := make([]Employee, 0, len(d.Employees))
	for _, emp := range d.Employees {
		if !emp.IsArchived {
			out = append(out, emp)
		}
	}
	return out
}

func (d *Document) HasCategory(category string) bool {
	for _, c := range d.Categories {
		if c == category {
			return true
		}
	}
	return false
}

// dropAdminTaskReports removes task-incomplete reports filed as admin.
// Those reports are peer-only.
func (d *Document) dropAdminTaskReports() int {
	kept := make([]TaskIncompleteReport, 0, len(d.TaskIncompleteReports))
	dropped := 0
	for _, report := range d.TaskIncompleteReports {
		if report.ReportedBy.IsAdmin() {
			dropped++
			continue
		}
		kept = append(kept, report)
	}
	d.TaskIncompleteReports = kept
	return dropped
}

// collapseMonthlyLeaves keeps one record per (employeeId, month). A later
// record replaces an earlier one in the earlier one's position.
func (d *Document) collapseMonthlyLeaves() int {
	type key struct {
		employee ID
		month    string
	}
	index := make(map[key]int, len(d.MonthlyLeaves))
	out := make([]MonthlyLeaveRecord, 0, len(d.MonthlyLeaves))
	collapsed := 0
	for _, rec := range d.MonthlyLeaves {
		k := key{rec.EmployeeID, rec.Month}
		if pos, ok := index[k]; ok {
			out[pos] = rec
			collapsed++
			continue
		}
		index[k] = len(out)
		out = append(out, rec)
	}
	d.MonthlyLeaves = out
	return collapsed
}

// Decode parses a persisted document. Collections that are missing or not
// arrays become empty, elements that do not decode are dropped, and a
// non-string adminPassword falls back to the given default. Only input that
// is not a JSON object is an error.
func Decode(data []byte, defaultPassword string, log *zap.Logger) (Document, error) {
	fields, err := decodeFields(data)
	if err != nil {
		return Document{}, err
	}
	if log == nil {
		log = zap.NewNop()
	}

	var doc Document
	doc.Employees = coerceList[Employee](fields, "employees", log)
	doc.Ratings = coerceList[Rating](fields, "ratings", log)
	doc.Categories = coerceList[string](fields, "categories", log)
	doc.TaskTemplates = coerceList[TaskTemplate](fields, "taskTemplates", log)
	doc.DailyTasks = coerceList[DailyTask](fields, "dailyTasks", log)
	doc.Rules = coerceList[Rule](fields, "rules", log)
	doc.Violations = coerceList[RuleViolation](fields, "violations", log)
	doc.MonthlyLeaves = coerceList[MonthlyLeaveRecord](fields, "monthlyLeaves", log)
	doc.TaskIncompleteReports = coerceList[TaskIncompleteReport](fields, "taskIncompleteReports", log)

	doc.AdminPassword = defaultPassword
	if value, ok := decodeString(fields["adminPassword"]); ok {
		doc.AdminPassword = value
	}

	doc.Normalize()
	return doc, nil
}

// Patch is a partial document. Nil fields keep the persisted value.
type Patch struct {
	Employees             *[]Employee
	Ratings               *[]Rating
	Categories            *[]string
	TaskTemplates         *[]TaskTemplate
	DailyTasks            *[]DailyTask
	Rules                 *[]Rule
	Violations            *[]RuleViolation
	MonthlyLeaves         *[]MonthlyLeaveRecord
	TaskIncompleteReports *[]TaskIncompleteReport
	AdminPassword         *string
}

// ParsePatch reads a save payload. A field takes part in the merge only when
// it is present with the right JSON type: an array for collections, a
// string for adminPassword.
func ParsePatch(data []byte, log *zap.Logger) (Patch, error) {
	fields, err := decodeFields(data)
	if err != nil {
		return Patch{}, err
	}
	if log == nil {
		log = zap.NewNop()
	}

	var p Patch
	p.Employees = patchList[Employee](fields, "employees", log)
	p.Ratings = patchList[Rating](fields, "ratings", log)
	p.Categories = patchList[string](fields, "categories", log)
	p.TaskTemplates = patchList[TaskTemplate](fields, "taskTemplates", log)
	p.DailyTasks = patchList[DailyTask](fields, "dailyTasks", log)
	p.Rules = patchList[Rule](fields, "rules", log)
	p.Violations = patchList[RuleViolation](fields, "violations", log)
	p.MonthlyLeaves = patchList[MonthlyLeaveRecord](fields, "monthlyLeaves", log)
	p.TaskIncompleteReports = patchList[TaskIncompleteReport](fields, "taskIncompleteReports", log)
	if value, ok := decodeString(fields["adminPassword"]); ok {
		p.AdminPassword = &value
	}
	return p, nil
}

// PatchFrom builds a patch that replaces every field with the values of doc.
func PatchFrom(doc Document) Patch {
	doc.Normalize()
	return Patch{
		Employees:             &doc.Employees,
		Ratings:               &doc.Ratings,
		Categories:            &doc.Categories,
		TaskTemplates:         &doc.TaskTemplates,
		DailyTasks:            &doc.DailyTasks,
		Rules:                 &doc.Rules,
		Violations:            &doc.Violations,
		MonthlyLeaves:         &doc.MonthlyLeaves,
		TaskIncompleteReports: &doc.TaskIncompleteReports,
		AdminPassword:         &doc.AdminPassword,
	}
}

// Apply merges the patch over doc.
func (p Patch) Apply(doc *Document) {
	if p.Employees != nil {
		doc.Employees = *p.Employees
	}
	if p.Ratings != nil {
		doc.Ratings = *p.Ratings
	}
	if p.Categories != nil {
		doc.Categories = *p.Categories
	}
	if p.TaskTemplates != nil {
		doc.TaskTemplates = *p.TaskTemplates
	}
	if p.DailyTasks != nil {
		doc.DailyTasks = *p.DailyTasks
	}
	if p.Rules != nil {
		doc.Rules = *p.Rules
	}
	if p.Violations != nil {
		doc.Violations = *p.Violations
	}
	if p.MonthlyLeaves != nil {
		doc.MonthlyLeaves = *p.MonthlyLeaves
	}
	if p.TaskIncompleteReports != nil {
		doc.TaskIncompleteReports = *p.TaskIncompleteReports
	}
	if p.AdminPassword != nil {
		doc.AdminPassword = *p.AdminPassword
	}
	doc.Normalize()
}

func decodeFields(data []byte) (map[string]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, errNotObject
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return fields, nil
}

func decodeString(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '"' {
		return "", false
	}
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return "", false
	}
	return value, true
}

func coerceList[T any](fields map[string]json.RawMessage, name string, log *zap.Logger) []T {
	list, isArray := decodeList[T](fields[name], name, log)
	if !isArray {
		if _, present := fields[name]; present {
			log.Warn("document field is not an array, using empty list", zap.String("field", name))
		}
		return []T{}
	}
	return list
}

func patchList[T any](fields map[string]json.RawMessage, name string, log *zap.Logger) *[]T {
	list, isArray := decodeList[T](fields[name], name, log)
	if !isArray {
		return nil
	}
	return &list
}

func decodeList[T any](raw json.RawMessage, name string, log *zap.Logger) ([]T, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, false
	}
	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		log.Warn("document field failed to decode", zap.String("field", name), zap.Error(err))
		return []T{}, true
	}
	out := make([]T, 0, len(elements))
	for i, element := range elements {
		var item T
		if err := json.Unmarshal(element, &item); err == nil {
			out = append(out, item)
			continue
		}
		item, bad, ok := decodeLenient[T](element)
		if !ok {
			log.Warn("dropping malformed document element",
				zap.String("field", name),
				zap.Int("index", i),
			)
			continue
		}
		log.Warn("zeroed malformed fields of document element",
			zap.String("field", name),
			zap.Int("index", i),
			zap.Strings("keys", bad),
		)
		out = append(out, item)
	}
	return out, true
}

// decodeLenient decodes an object element one key at a time, leaving keys
// whose values have the wrong type at their zero value. It reports the keys
// it skipped; ok is false when element is not an object.
func decodeLenient[T any](element json.RawMessage) (T, []string, bool) {
	var item T
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(element, &fields); err != nil {
		return item, nil, false
	}
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var bad []string
	for _, key := range keys {
		single, err := json.Marshal(map[string]json.RawMessage{key: fields[key]})
		if err != nil {
			bad = append(bad, key)
			continue
		}
		var check T
		if err := json.Unmarshal(single, &check); err != nil {
			bad = append(bad, key)
			continue
		}
		_ = json.Unmarshal(single, &item)
	}
	return item, bad, true
}
