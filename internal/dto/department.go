package dto

// CreateDepartmentRequest creates a department.
type CreateDepartmentRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// UpdateDepartmentRequest renames a department. Existing schedule
// entries keep the old name.
type UpdateDepartmentRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// DepartmentResponse is the public view of a department.
type DepartmentResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
