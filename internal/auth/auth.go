// Package auth verifies a participant's identity before an actor record
// is constructed.
package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var ErrBadPassword = errors.New("incorrect town password")

// Gatekeeper admits connections to the town. Towns with no password are
// public and admit everyone.
type Gatekeeper struct {
	passwordHash []byte
}

// NewGatekeeper hashes the town password up front. An empty password
// makes the town public.
func NewGatekeeper(password string) (*Gatekeeper, error) {
	g := &Gatekeeper{}
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hashing town password: %w", err)
		}
		g.passwordHash = hash
	}
	return g, nil
}

// Admit checks the presented password against the town's. Public towns
// admit any value.
func (g *Gatekeeper) Admit(password string) error {
	if len(g.passwordHash) == 0 {
		return nil
	}
	if err := bcrypt.CompareHashAndPassword(g.passwordHash, []byte(password)); err != nil {
		return ErrBadPassword
	}
	return nil
}
