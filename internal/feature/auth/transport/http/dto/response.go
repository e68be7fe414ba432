package dto

// MessageRes is a generic success response body.
type MessageRes struct {
	Message string `json:"message"`
}

// ErrorRes is a generic error response body.
// The message stays deliberately vague for authentication failures.
type ErrorRes struct {
	Error string `json:"error"`
}

// SessionRes is the projection of the logged-in patient returned by /me.
type SessionRes struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}
