package dto

// LoginRequest represents the request to authenticate a user
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateUserRequest represents the request to register a new user
type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	RoleType string `json:"role_type"`
}

// CreateReportRequest represents the request to submit a report
type CreateReportRequest struct {
	UserID      int64  `json:"user_id"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Location    string `json:"location"`
}

// UpdateReportRequest represents the request to edit an existing report
type UpdateReportRequest struct {
	UserID      int64  `json:"user_id"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Location    string `json:"location"`
}

// GetReportsRequest represents the filtered report listing request.
// UserID is set only for non-admin callers; Status is omitted entirely
// when the caller asks for all statuses.
type GetReportsRequest struct {
	UserID *int64 `json:"user_id,omitempty"`
	Status string `json:"status,omitempty"`
}
