package httpdto

// RegisterRequest is used for POST /api/register
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest is used for POST /api/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserDTO is the public view of a user. It never carries the password hash.
type UserDTO struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// LoginResponse is returned after successful login
type LoginResponse struct {
	Message string  `json:"message"`
	Token   string  `json:"token"`
	User    UserDTO `json:"user"`
}

// MeResponse is returned from GET /api/me
type MeResponse struct {
	User UserDTO `json:"user"`
}
