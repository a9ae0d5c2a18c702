package service

import (
	"errors"
	"testing"
	"time"

	"github.com/Rama-lab79/Chatbot-AI/internal/models"
	"github.com/Rama-lab79/Chatbot-AI/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeUserRepo is an in-memory UserRepository. Create hashes the password the
// way the gorm BeforeCreate hook does against a real store.
type fakeUserRepo struct {
	users    []*models.User
	nextID   uint
	emailErr error
}

func (f *fakeUserRepo) Create(user *models.User) error {
	f.nextID++
	user.ID = f.nextID
	hashed, err := models.HashPassword(user.Password)
	if err != nil {
		return err
	}
	user.Password = hashed
	copied := *user
	f.users = append(f.users, &copied)
	return nil
}

func (f *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	if f.emailErr != nil {
		return nil, f.emailErr
	}
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetByID(id uint) (*models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func newTestUserService(users *fakeUserRepo) *UserService {
	return NewUserService(users, jwt.NewService("test-secret", time.Hour))
}

func TestCreateUser(t *testing.T) {
	users := &fakeUserRepo{}
	svc := newTestUserService(users)

	user, token, err := svc.CreateUser(&models.CreateUserRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotZero(t, user.ID)

	// Stored password is a hash, never the plaintext.
	stored, err := users.GetByID(user.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "correct-horse", stored.Password)
	assert.True(t, models.CheckPasswordHash("correct-horse", stored.Password))
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	users := &fakeUserRepo{}
	svc := newTestUserService(users)

	_, _, err := svc.CreateUser(&models.CreateUserRequest{Name: "Alice", Email: "alice@example.com", Password: "correct-horse"})
	require.NoError(t, err)

	_, _, err = svc.CreateUser(&models.CreateUserRequest{Name: "Alias", Email: "alice@example.com", Password: "other-password"})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
	assert.Len(t, users.users, 1)
}

func TestCreateUserLookupFailureAborts(t *testing.T) {
	storeErr := errors.New("driver: bad connection")
	users := &fakeUserRepo{emailErr: storeErr}
	svc := newTestUserService(users)

	// A store failure on the existence check must not fall through to create.
	_, _, err := svc.CreateUser(&models.CreateUserRequest{Name: "Alice", Email: "alice@example.com", Password: "correct-horse"})
	require.Error(t, err)
	assert.ErrorIs(t, err, storeErr)
	assert.NotErrorIs(t, err, ErrUserAlreadyExists)
	assert.Empty(t, users.users)
}

func TestLogin(t *testing.T) {
	users := &fakeUserRepo{}
	svc := newTestUserService(users)

	_, _, err := svc.CreateUser(&models.CreateUserRequest{Name: "Alice", Email: "alice@example.com", Password: "correct-horse"})
	require.NoError(t, err)

	user, token, err := svc.Login(&models.LoginRequest{Email: "alice@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "alice@example.com", user.Email)

	_, _, err = svc.Login(&models.LoginRequest{Email: "alice@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(&models.LoginRequest{Email: "nobody@example.com", Password: "correct-horse"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGetUserByID(t *testing.T) {
	users := &fakeUserRepo{}
	svc := newTestUserService(users)

	_, err := svc.GetUserByID(99)
	assert.ErrorIs(t, err, ErrUserNotFound)

	created, _, err := svc.CreateUser(&models.CreateUserRequest{Name: "Alice", Email: "alice@example.com", Password: "correct-horse"})
	require.NoError(t, err)

	user, err := svc.GetUserByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.Name)
}
