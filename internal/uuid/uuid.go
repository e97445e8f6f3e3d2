// Package uuid wraps google/uuid for time-ordered primary keys.
package uuid

import (
	googleuuid "github.com/google/uuid"
)

// New generates a UUIDv7 string. UUIDv7 is time-ordered, which keeps
// index inserts roughly sequential when used as a primary key.
func New() string {
	id, err := googleuuid.NewV7()
	if err != nil {
		// NewV7 only fails when the random source is exhausted; fall back
		// to a random UUIDv4 rather than returning an empty key.
		return googleuuid.New().String()
	}
	return id.String()
}

// Parse validates and normalizes a UUID string.
func Parse(s string) (string, error) {
	parsed, err := googleuuid.Parse(s)
	if err != nil {
		return "", err
	}
	return parsed.String(), nil
}

// IsValid checks if a string is a valid UUID.
func IsValid(s string) bool {
	_, err := googleuuid.Parse(s)
	return err == nil
}
