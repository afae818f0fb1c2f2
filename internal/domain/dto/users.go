package dto

// UpdateUserRoleRequest тело POST /users/update_role
type UpdateUserRoleRequest struct {
	Username string `json:"username"`
	RoleName string `json:"role_name"`
}

// TokenRequest тело POST /auth/token
type TokenRequest struct {
	UserID int `json:"user_id"`
}

// TokenResponse выпущенный токен
type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}
