package entity

import "time"

// Session represents a logged-in patient's server-side session state.
// It stores the minimal projection of the patient shown to authenticated
// pages; the password hash is deliberately excluded.
type Session struct {
	Token     string    // Opaque session token (64-character hex string)
	PatientID uint      // Associated patient ID
	Email     string    // Patient's email address
	FirstName string    // Patient's given name
	LastName  string    // Patient's family name
	CreatedAt time.Time // Session creation time
	ExpiresAt time.Time // Session expiration time
}

// IsExpired returns true if the session has passed its expiration time.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}
