package models

// User is an account that can claim a session by username.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}
