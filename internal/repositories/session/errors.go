package session

import "errors"

var (
	// ErrSessionNotFound is returned when a session is not found
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionExists is returned when creating a session whose ID is taken
	ErrSessionExists = errors.New("session already exists")

	// ErrStateConflict is returned when the stored game state changed underneath a transition
	ErrStateConflict = errors.New("game state changed concurrently")
)
