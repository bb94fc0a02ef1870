package dto

type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type SessionItem struct {
	State  string `json:"state"`
	UserID string `json:"user_id,omitempty"`
	Email  string `json:"email,omitempty"`
}
