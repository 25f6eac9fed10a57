package services

import (
	"fmt"

	nanoid "github.com/matoous/go-nanoid/v2"
)

const (
	SessionIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	SessionIDLength   = 10
)

type IDGen struct {
	MaxRetries int

	// Exists reports ids already in use. Without it ids are not checked for
	// collisions.
	Exists     func(id string) bool
	NextIDFunc func() (string, error)
}

// NextID returns an id not reported by Exists, giving up after MaxRetries
// collisions.
func (i *IDGen) NextID() (string, error) {
	next := i.NextIDFunc
	if next == nil {
		next = NanoID
	}
	retries := i.MaxRetries
	if retries <= 0 {
		retries = 5
	}
	for attempt := 0; attempt <= retries; attempt++ {
		id, err := next()
		if err != nil {
			return "", err
		}
		if i.Exists == nil || !i.Exists(id) {
			return id, nil
		}
	}
	return "", fmt.Errorf("no free id after %d attempts", retries+1)
}

// NanoID returns a short url safe session id.
func NanoID() (string, error) {
	id, err := nanoid.Generate(SessionIDAlphabet, SessionIDLength)
	if err != nil {
		return "", fmt.Errorf("idgen: %w", err)
	}
	return id, nil
}
