// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// Patient represents a registered patient in the system.
// It contains authentication credentials and the profile fields collected
// by the registration form.
type Patient struct {
	// ID is the unique identifier for the patient.
	ID uint `gorm:"primaryKey"`

	// FirstName is the patient's given name. Required at registration.
	FirstName string `gorm:"size:100;not null"`

	// LastName is the patient's family name. Required at registration.
	LastName string `gorm:"size:100;not null"`

	// Email is the patient's email address used for authentication.
	// It must be unique across all patients.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Password is the bcrypt hash of the patient's password.
	// This never stores the plaintext password.
	Password string `gorm:"size:255;not null"`

	// Age is the patient's age. Optional; nil when not provided.
	Age *int

	// Country is the patient's country of residence. Optional.
	Country string `gorm:"size:100"`

	// Gender is the patient's self-reported gender. Optional.
	Gender string `gorm:"size:50"`

	// CreatedAt is the timestamp when the patient was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the patient was last updated.
	UpdatedAt time.Time
}

// TableName returns the table name for GORM.
func (Patient) TableName() string {
	return "patients"
}
