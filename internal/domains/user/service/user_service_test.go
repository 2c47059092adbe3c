package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-backend/internal/domains/user/model"
	"storefront-backend/pkg/jwt"
)

type fakeUserRepo struct {
	byEmail map[string]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*model.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *model.User) error {
	if _, ok := f.byEmail[u.Email]; ok {
		return model.ErrEmailTaken
	}
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return f.byEmail[email], nil
}

func (f *fakeUserRepo) Update(ctx context.Context, u *model.User) error {
	return nil
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	for _, u := range f.byEmail {
		if u.ID == id {
			u.PasswordHash = passwordHash
			return nil
		}
	}
	return model.ErrUserNotFound
}

func newTestService() (UserService, *fakeUserRepo) {
	repo := newFakeUserRepo()
	manager := jwt.NewManager("test-secret", 15*time.Minute, 72*time.Hour)
	return NewUserService(repo, manager), repo
}

func TestRegisterAndLogin(t *testing.T) {
	svc, repo := newTestService()

	auth, err := svc.Register(context.Background(), model.RegisterRequest{
		Email:    "Buyer@Example.com",
		Password: "s3cret-password",
		FullName: "Somchai J.",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, auth.AccessToken)
	assert.NotEmpty(t, auth.RefreshToken)
	assert.Equal(t, "buyer@example.com", auth.User.Email, "email is normalized")
	assert.Equal(t, model.RoleCustomer, auth.User.Role)

	stored := repo.byEmail["buyer@example.com"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "s3cret-password", stored.PasswordHash, "password must be hashed")

	logged, err := svc.Login(context.Background(), model.LoginRequest{
		Email:    "buyer@example.com",
		Password: "s3cret-password",
	})
	require.NoError(t, err)
	assert.Equal(t, auth.User.ID, logged.User.ID)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Register(context.Background(), model.RegisterRequest{
		Email:    "buyer@example.com",
		Password: "s3cret-password",
		FullName: "Somchai J.",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), model.LoginRequest{
		Email:    "buyer@example.com",
		Password: "wrong",
	})
	assert.Equal(t, model.ErrInvalidCredentials, err)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Login(context.Background(), model.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	assert.Equal(t, model.ErrInvalidCredentials, err)
}

func TestRefresh(t *testing.T) {
	svc, _ := newTestService()

	auth, err := svc.Register(context.Background(), model.RegisterRequest{
		Email:    "buyer@example.com",
		Password: "s3cret-password",
		FullName: "Somchai J.",
	})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), model.RefreshRequest{
		RefreshToken: auth.RefreshToken,
	})
	require.NoError(t, err)
	assert.Equal(t, auth.User.ID, refreshed.User.ID)

	_, err = svc.Refresh(context.Background(), model.RefreshRequest{
		RefreshToken: auth.AccessToken,
	})
	assert.Equal(t, model.ErrInvalidToken, err, "access token must not refresh a session")
}

func TestChangePassword(t *testing.T) {
	svc, _ := newTestService()

	auth, err := svc.Register(context.Background(), model.RegisterRequest{
		Email:    "buyer@example.com",
		Password: "old-password-1",
		FullName: "Somchai J.",
	})
	require.NoError(t, err)

	err = svc.ChangePassword(context.Background(), auth.User.ID, model.ChangePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "new-password-1",
	})
	assert.Equal(t, model.ErrInvalidCredentials, err)

	err = svc.ChangePassword(context.Background(), auth.User.ID, model.ChangePasswordRequest{
		CurrentPassword: "old-password-1",
		NewPassword:     "new-password-1",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), model.LoginRequest{
		Email:    "buyer@example.com",
		Password: "new-password-1",
	})
	assert.NoError(t, err)
}
