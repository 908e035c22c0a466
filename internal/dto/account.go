package dto

// AccountResponse is the public view of an account.
type AccountResponse struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	Role          string `json:"role"`
	Status        string `json:"status"`
	Department    string `json:"department,omitempty"`
	ResetRequests int    `json:"reset_requests,omitempty"`
	CreatedAt     string `json:"created_at,omitempty"`
}

// AccountListRequest filters the admin account listing.
type AccountListRequest struct {
	Status  string `form:"status" binding:"omitempty,oneof=pending active"`
	Keyword string `form:"keyword" binding:"omitempty,max=100"`
	PaginationRequest
}

// UpdateAccountRequest updates account fields. Role changes are
// admin-only and rejected for everyone else in the service layer.
type UpdateAccountRequest struct {
	Name       *string `json:"name" binding:"omitempty,min=1,max=100"`
	Department *string `json:"department" binding:"omitempty,max=100"`
	Role       *string `json:"role" binding:"omitempty,oneof=user manager admin"`
}

// ResetPasswordResponse returns the one-time temporary password.
type ResetPasswordResponse struct {
	TempPassword string `json:"temp_password"`
}

// HostResponse is an entry in the active host picker.
type HostResponse struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Department string `json:"department,omitempty"`
}
