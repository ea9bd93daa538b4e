package core

type EmployeeInput struct {
	Name           string   `json:"name" validate:"required,max=200"`
	Photo          *string  `json:"photo"`
	LeavesPerMonth *float64 `json:"leavesPerMonth" validate:"omitempty,min=0,max=31"`
}

// EmployeeUpdate changes only the fields that are set. An empty Photo
// removes the photo.
type EmployeeUpdate struct {
	Name           *string  `json:"name" validate:"omitempty,max=200"`
	Photo          *string  `json:"photo"`
	LeavesPerMonth *float64 `json:"leavesPerMonth" validate:"omitempty,min=0,max=31"`
}
