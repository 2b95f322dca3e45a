package dto

// LoginUser is the identity part of a successful login response
type LoginUser struct {
	ID       int64  `json:"id"`
	RoleID   int    `json:"role_id"`
	RoleType string `json:"role_type"`
}

// LoginResponse represents the successful login payload
type LoginResponse struct {
	JWT  string    `json:"jwt"`
	User LoginUser `json:"user"`
}
