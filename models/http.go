package models

// LoginRequest is the body of POST /api/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest is the body of POST /api/register.
type RegisterRequest struct {
	Name       string `json:"name"`
	DOB        Date   `json:"dob"`
	Identifier string `json:"identifier"`
	Username   string `json:"username"`
	Password   string `json:"password"`
}

// AddRecordRequest is the body of POST /api/records.
type AddRecordRequest struct {
	UserID   int64  `json:"userId"`
	Vaccine  string `json:"vaccine"`
	Date     Date   `json:"date"`
	Dose     *int   `json:"dose"`
	Filename string `json:"filename"`
}

// LoginResponse is the success payload of POST /api/login. The session
// token itself travels in the Authorization response header.
type LoginResponse struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	UserID   *int64 `json:"userId"`
}

// UserListItem is one element of the GET /api/users response: a User
// profile with the username of its linked account denormalized in.
type UserListItem struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	DOB        Date    `json:"dob"`
	Identifier string  `json:"identifier"`
	Username   *string `json:"username"`
}

// StatusResponse is the generic success/failure envelope used by endpoints
// that return no entity payload.
type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
