package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/Domenick1991/metroticket/internal/auth"
	"github.com/Domenick1991/metroticket/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockAuthenticator is a mock implementation of Authenticator
type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Login(ctx context.Context, userID, password string) (*auth.Session, error) {
	args := m.Called(ctx, userID, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Session), args.Error(1)
}

func (m *MockAuthenticator) User(userID string) (domain.User, bool) {
	args := m.Called(userID)
	return args.Get(0).(domain.User), args.Bool(1)
}

var demoUser = domain.User{ID: "demo123", Name: "Rahul Kumar", Phone: "+91 9876543210"}

func TestAuthHandler_login(t *testing.T) {
	mockAuth := &MockAuthenticator{}
	handler := NewAuthHandler(mockAuth)
	c, w := newTestContext("POST", "/api/v1/auth/login", []byte(`{"id":" demo123 ","password":"password123"}`))

	expires := time.Date(2026, 10, 16, 21, 0, 0, 0, time.UTC)
	mockAuth.On("Login", c.Request.Context(), "demo123", "password123").
		Return(&auth.Session{Token: "jwt", ExpiresAt: expires, User: demoUser}, nil)

	handler.login(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var got loginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "jwt", got.Token)
	assert.Equal(t, "Bearer", got.TokenType)
	assert.Equal(t, "2026-10-16T21:00:00Z", got.ExpiresAt)
	assert.Equal(t, demoUser, got.User)
	mockAuth.AssertExpectations(t)
}

func TestAuthHandler_login_MissingFields(t *testing.T) {
	mockAuth := &MockAuthenticator{}
	handler := NewAuthHandler(mockAuth)
	c, w := newTestContext("POST", "/api/v1/auth/login", []byte(`{"id":"demo123"}`))

	handler.login(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockAuth.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthHandler_login_BadCredentials(t *testing.T) {
	mockAuth := &MockAuthenticator{}
	handler := NewAuthHandler(mockAuth)
	c, w := newTestContext("POST", "/api/v1/auth/login", []byte(`{"id":"demo123","password":"nope"}`))

	mockAuth.On("Login", c.Request.Context(), "demo123", "nope").Return(nil, auth.ErrInvalidCredentials)

	handler.login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_me(t *testing.T) {
	mockAuth := &MockAuthenticator{}
	handler := NewAuthHandler(mockAuth)
	c, w := newTestContext("GET", "/api/v1/auth/me", nil)

	mockAuth.On("User", "demo123").Return(demoUser, true)

	handler.me(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var got domain.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, demoUser, got)
}

func TestAuthHandler_me_Unknown(t *testing.T) {
	mockAuth := &MockAuthenticator{}
	handler := NewAuthHandler(mockAuth)
	c, w := newTestContext("GET", "/api/v1/auth/me", nil)

	mockAuth.On("User", "demo123").Return(domain.User{}, false)

	handler.me(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
