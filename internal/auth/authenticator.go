package auth

import (
	"context"
	"errors"
)

var ErrBadCredentials = errors.New("Bad credentials")

type Principal struct {
	ID           string
	Username     string
	Role         string
	PasswordHash string
}

// CredentialSource looks up a stored principal by username. The user service
// implements it; the authenticator stays ignorant of the persistence layer.
type CredentialSource interface {
	Lookup(ctx context.Context, username string) (Principal, error)
}

type Authenticator struct {
	creds CredentialSource
}

func NewAuthenticator(creds CredentialSource) *Authenticator {
	return &Authenticator{creds: creds}
}

// Authenticate verifies a username/password pair. Unknown usernames and wrong
// passwords are indistinguishable to the caller.
func (a *Authenticator) Authenticate(ctx context.Context, username, password string) (Principal, error) {
	p, err := a.creds.Lookup(ctx, username)
	if err != nil {
		return Principal{}, ErrBadCredentials
	}
	if !CheckPassword(p.PasswordHash, password) {
		return Principal{}, ErrBadCredentials
	}
	return p, nil
}
