package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authResponse struct {
	User struct {
		ID    uint   `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"user"`
	Token string `json:"token"`
}

func TestSignup(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/api/v1/auth/signup", `{"name":"Alice","email":"alice@example.com","password":"correct-horse"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp authResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotZero(t, resp.User.ID)
	assert.Equal(t, "Alice", resp.User.Name)
	assert.Equal(t, "alice@example.com", resp.User.Email)
	assert.NotEmpty(t, resp.Token)

	// The response never carries the password, hashed or not.
	assert.NotContains(t, w.Body.String(), "password")
	assert.NotContains(t, w.Body.String(), "correct-horse")
}

func TestSignupDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/api/v1/auth/signup", `{"name":"Alice","email":"alice@example.com","password":"correct-horse"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(http.MethodPost, "/api/v1/auth/signup", `{"name":"Alias","email":"alice@example.com","password":"other-password"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "A user with this email already exists")
}

func TestSignupValidation(t *testing.T) {
	env := newTestEnv(t)

	for _, body := range []string{
		`{}`,
		`{"name":"Alice","email":"not-an-email","password":"correct-horse"}`,
		`{"name":"Alice","email":"alice@example.com","password":"short"}`,
	} {
		w := env.do(http.MethodPost, "/api/v1/auth/signup", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body %s", body)
		assert.Contains(t, w.Body.String(), "Invalid request format")
	}

	assert.Empty(t, env.users.users)
}

func TestLoginRoute(t *testing.T) {
	env := newTestEnv(t)
	env.do(http.MethodPost, "/api/v1/auth/signup", `{"name":"Alice","email":"alice@example.com","password":"correct-horse"}`)

	w := env.do(http.MethodPost, "/api/v1/auth/login", `{"email":"alice@example.com","password":"correct-horse"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp authResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "alice@example.com", resp.User.Email)
	assert.NotEmpty(t, resp.Token)
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	env.do(http.MethodPost, "/api/v1/auth/signup", `{"name":"Alice","email":"alice@example.com","password":"correct-horse"}`)

	w := env.do(http.MethodPost, "/api/v1/auth/login", `{"email":"alice@example.com","password":"wrong-password"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid email or password")

	// Unknown account answers the same way as a bad password.
	w = env.do(http.MethodPost, "/api/v1/auth/login", `{"email":"nobody@example.com","password":"correct-horse"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid email or password")
}

func TestMe(t *testing.T) {
	env := newTestEnv(t)

	// The stub middleware resolves user 1, which does not exist yet.
	w := env.do(http.MethodGet, "/api/v1/auth/me", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "User not found")

	env.do(http.MethodPost, "/api/v1/auth/signup", `{"name":"Alice","email":"alice@example.com","password":"correct-horse"}`)

	w = env.do(http.MethodGet, "/api/v1/auth/me", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"email":"alice@example.com"`)
	assert.NotContains(t, w.Body.String(), "password")
}
