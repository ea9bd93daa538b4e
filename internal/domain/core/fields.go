package core

import "perftrack/internal/domain/document"

// FilterEmployeeFields strips what only the administrator should see from an
// employee returned to a peer.
func FilterEmployeeFields(emp *document.Employee, isAdmin bool) {
	if isAdmin {
		return
	}
	emp.LeavesPerMonth = nil
	emp.IsArchived = false
}
