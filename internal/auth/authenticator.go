package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/metroticket/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// Session is what a successful login hands back to the caller. The token must
// be presented on every subsequent request.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      domain.User
}

// Authenticator checks the single demo account. The password is kept only as
// a bcrypt hash.
type Authenticator struct {
	user         domain.User
	passwordHash []byte
	tokens       *TokenService
}

func NewAuthenticator(user domain.User, password string, tokens *TokenService) (*Authenticator, error) {
	if user.ID == "" || password == "" {
		return nil, errors.New("auth: demo user id and password are required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("auth: hash demo password: %w", err)
	}
	return &Authenticator{user: user, passwordHash: hash, tokens: tokens}, nil
}

func (a *Authenticator) Login(ctx context.Context, userID, password string) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	idMatch := subtle.ConstantTimeCompare([]byte(userID), []byte(a.user.ID)) == 1
	pwErr := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password))
	if !idMatch || pwErr != nil {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := a.tokens.Generate(a.user.ID)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, ExpiresAt: expiresAt, User: a.user}, nil
}

// User returns the profile for a validated user id.
func (a *Authenticator) User(userID string) (domain.User, bool) {
	if userID != a.user.ID {
		return domain.User{}, false
	}
	return a.user, true
}
