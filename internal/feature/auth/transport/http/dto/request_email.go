package dto

// RequestEmailReq represents the request body for the /auth/request_email endpoint.
type RequestEmailReq struct {
	Email string `json:"email" binding:"required,email"`
}
