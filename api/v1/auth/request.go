package auth

// SignupRequest represents the request for account registration
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Username string `json:"username" binding:"omitempty,min=1,max=30"`
	FullName string `json:"fullName" binding:"omitempty,max=100"`
}

// LoginRequest represents the request for password authentication
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
