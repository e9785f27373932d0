package service

import (
	"context"
	"testing"

	"github.com/foodgram/backend/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret"

func registerInput(handle string) RegisterInput {
	return RegisterInput{
		Email:     handle + "@example.com",
		Username:  handle,
		FirstName: "Test",
		LastName:  "User",
		Password:  "password123",
	}
}

func TestRegisterIssuesValidToken(t *testing.T) {
	db := testhelpers.OpenTestDB(t)
	svc := NewAuthService(db, testJWTSecret)

	user, token, err := svc.Register(context.Background(), registerInput("alice"))
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.NotEqual(t, "password123", user.PasswordHash)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := testhelpers.OpenTestDB(t)
	svc := NewAuthService(db, testJWTSecret)

	_, _, err := svc.Register(context.Background(), registerInput("alice"))
	require.NoError(t, err)

	dup := registerInput("bob")
	dup.Email = "alice@example.com"
	_, _, err = svc.Register(context.Background(), dup)
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestLogin(t *testing.T) {
	db := testhelpers.OpenTestDB(t)
	svc := NewAuthService(db, testJWTSecret)

	_, _, err := svc.Register(context.Background(), registerInput("alice"))
	require.NoError(t, err)

	token, err := svc.Login(context.Background(), "alice@example.com", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	_, err = svc.Login(context.Background(), "alice@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateTokenRejectsForeignSignature(t *testing.T) {
	db := testhelpers.OpenTestDB(t)
	svc := NewAuthService(db, testJWTSecret)

	_, token, err := svc.Register(context.Background(), registerInput("alice"))
	require.NoError(t, err)

	other := NewAuthService(db, "different-secret")
	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
