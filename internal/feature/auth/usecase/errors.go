// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrPatientNotFound is returned when a patient cannot be found by email or ID.
	ErrPatientNotFound = errors.New("patient not found")

	// ErrEmailAlreadyExists is returned when attempting to register a patient with an email that already exists.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrInvalidCredentials is returned when the email is unknown or the password does not match.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrSessionNotFound is returned when a session cannot be found by token.
	ErrSessionNotFound = errors.New("session not found")
)
