package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRecorder struct {
	statuses []string
}

func (r *countingRecorder) RecordLogin(status string) {
	r.statuses = append(r.statuses, status)
}

func newTestAuth(t *testing.T) *Authenticator {
	t.Helper()
	a, err := NewAuthenticator("", "", 0)
	require.NoError(t, err)
	return a
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{name: "default password", password: "password"},
		{name: "surrounding whitespace", password: "  password\n"},
		{name: "wrong", password: "hunter2", wantErr: true},
		{name: "empty", password: "", wantErr: true},
		{name: "case matters", password: "Password", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAuth(t)
			session, err := a.Login(tt.password)
			if tt.wantErr {
				assert.EqualError(t, err, "Incorrect password. Try 'password'.")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, DefaultUsername, session.Username)
			assert.NotEmpty(t, session.Token)
			assert.Contains(t, session.ID, "sess_")
		})
	}
}

func TestConfiguredPassword(t *testing.T) {
	a, err := NewAuthenticator("alice", "s3cret", time.Hour)
	require.NoError(t, err)

	_, err = a.Login("password")
	assert.ErrorIs(t, err, ErrIncorrectPassword)

	session, err := a.Login("s3cret")
	require.NoError(t, err)
	user, ok := a.Verify(session.Token)
	assert.True(t, ok)
	assert.Equal(t, "alice", user)
}

func TestVerifyAndLogout(t *testing.T) {
	a := newTestAuth(t)
	session, err := a.Login("password")
	require.NoError(t, err)

	user, ok := a.Verify(session.Token)
	assert.True(t, ok)
	assert.Equal(t, "ubuntu", user)

	assert.True(t, a.Logout(session.Token))
	assert.False(t, a.Logout(session.Token))
	_, ok = a.Verify(session.Token)
	assert.False(t, ok)
}

func TestExpiry(t *testing.T) {
	a := newTestAuth(t)
	now := time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)
	a.now = func() time.Time { return now }

	session, err := a.Login("password")
	require.NoError(t, err)
	assert.Len(t, a.Sessions(), 1)

	now = now.Add(DefaultTTL + time.Second)
	assert.Empty(t, a.Sessions())
	_, err = a.Lookup(session.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenClaims(t *testing.T) {
	a := newTestAuth(t)
	session, err := a.Login("password")
	require.NoError(t, err)

	claims := &Claims{}
	_, _, err = jwt.NewParser().ParseUnverified(session.Token, claims)
	require.NoError(t, err)
	assert.Equal(t, Issuer, claims.Issuer)
	assert.Equal(t, "ubuntu", claims.Username)
	assert.Equal(t, session.ID, claims.SessionID)
	_, err = uuid.Parse(claims.ID)
	assert.NoError(t, err)
}

func TestForeignTokensRejected(t *testing.T) {
	a := newTestAuth(t)
	other := newTestAuth(t)

	session, err := other.Login("password")
	require.NoError(t, err)
	_, ok := a.Verify(session.Token)
	assert.False(t, ok, "token signed by another key")

	_, ok = a.Verify("not-a-token")
	assert.False(t, ok)
	assert.False(t, a.Logout("not-a-token"))
}

func TestRecorder(t *testing.T) {
	rec := &countingRecorder{}
	a := newTestAuth(t).WithRecorder(rec)

	_, _ = a.Login("nope")
	_, _ = a.Login("password")
	assert.Equal(t, []string{"failure", "success"}, rec.statuses)
}

func TestProvider(t *testing.T) {
	p := NewProvider(newTestAuth(t))
	ctx := context.Background()

	result, err := p.Execute(ctx, "auth.login", map[string]interface{}{"password": "wrong"}, nil)
	require.NoError(t, err)
	require.False(t, result.Success)
	assert.Equal(t, "Incorrect password. Try 'password'.", *result.Error)

	result, err = p.Execute(ctx, "auth.login", map[string]interface{}{"password": "password"}, nil)
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Equal(t, WelcomeMessage, result.Data["message"])
	token := result.Data["token"].(string)

	result, err = p.Execute(ctx, "auth.verify", map[string]interface{}{"token": token}, nil)
	require.NoError(t, err)
	assert.Equal(t, true, result.Data["valid"])

	result, err = p.Execute(ctx, "auth.getUser", map[string]interface{}{"token": token}, nil)
	require.NoError(t, err)
	assert.Equal(t, "ubuntu", result.Data["username"])

	result, err = p.Execute(ctx, "auth.sessions", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Data["count"])

	result, err = p.Execute(ctx, "auth.logout", map[string]interface{}{"token": token}, nil)
	require.NoError(t, err)
	assert.Equal(t, true, result.Data["logged_out"])

	result, err = p.Execute(ctx, "auth.verify", map[string]interface{}{"token": token}, nil)
	require.NoError(t, err)
	assert.Equal(t, false, result.Data["valid"])

	result, err = p.Execute(ctx, "auth.verify", map[string]interface{}{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "token required", *result.Error)

	_, err = p.Execute(ctx, "auth.register", nil, nil)
	assert.EqualError(t, err, "unknown tool: auth.register")
}
