package services

import (
	"context"
	"testing"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/adanyl0v/go-task-manager/internal/models"
	"github.com/adanyl0v/go-task-manager/internal/repositories/users"
)

// fakeUserRepo implements users.Repository in memory. Insert refuses a
// duplicate email the way the unique index does.
type fakeUserRepo struct {
	byID    map[string]*models.User
	byEmail map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    make(map[string]*models.User),
		byEmail: make(map[string]*models.User),
	}
}

func (r *fakeUserRepo) Insert(_ context.Context, user *models.User) error {
	if _, exists := r.byEmail[user.Email]; exists {
		return users.ErrEmailTaken
	}
	clone := *user
	r.byID[user.ID] = &clone
	r.byEmail[user.Email] = &clone
	return nil
}

func (r *fakeUserRepo) SelectByEmail(_ context.Context, email string) (*models.User, error) {
	user, exists := r.byEmail[email]
	if !exists {
		return nil, users.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) SelectByID(_ context.Context, id string) (*models.User, error) {
	user, exists := r.byID[id]
	if !exists {
		return nil, users.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func newTestAuthService(repo users.Repository) (AuthService, TokenService) {
	tokens := newTestTokenService(time.Hour)
	return NewAuthService(zerolog.Nop(), repo, tokens), tokens
}

func TestAuthService_RegisterThenLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc, tokens := newTestAuthService(repo)
	ctx := context.Background()

	registered, err := svc.Register(ctx, RegisterParams{
		Name:     "Ana",
		Email:    "ana@x.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	require.NotEmpty(t, registered.User.ID)
	require.Equal(t, "Ana", registered.User.Name)
	require.Equal(t, "ana@x.com", registered.User.Email)
	require.NotEmpty(t, registered.Token)

	// The registration token must verify and resolve to the new user.
	subject, err := tokens.Verify(registered.Token)
	require.NoError(t, err)
	require.Equal(t, registered.User.ID, subject)

	loggedIn, err := svc.Login(ctx, LoginParams{
		Email:    "ana@x.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	require.Equal(t, registered.User.ID, loggedIn.User.ID)

	subject, err = tokens.Verify(loggedIn.Token)
	require.NoError(t, err)
	require.Equal(t, registered.User.ID, subject)
}

func TestAuthService_RegisterStoresHashNotPlaintext(t *testing.T) {
	repo := newFakeUserRepo()
	svc, _ := newTestAuthService(repo)

	_, err := svc.Register(context.Background(), RegisterParams{
		Name:     "Ana",
		Email:    "ana@x.com",
		Password: "secret1",
	})
	require.NoError(t, err)

	stored, err := repo.SelectByEmail(context.Background(), "ana@x.com")
	require.NoError(t, err)
	require.NotEqual(t, "secret1", stored.Password)

	match, err := argon2id.ComparePasswordAndHash("secret1", stored.Password)
	require.NoError(t, err)
	require.True(t, match)
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc, _ := newTestAuthService(repo)
	ctx := context.Background()

	params := RegisterParams{Name: "Ana", Email: "ana@x.com", Password: "secret1"}
	_, err := svc.Register(ctx, params)
	require.NoError(t, err)

	_, err = svc.Register(ctx, params)
	require.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestAuthService_LoginUnknownEmail(t *testing.T) {
	svc, _ := newTestAuthService(newFakeUserRepo())

	_, err := svc.Login(context.Background(), LoginParams{
		Email:    "nobody@x.com",
		Password: "secret1",
	})
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc, _ := newTestAuthService(repo)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterParams{
		Name:     "Ana",
		Email:    "ana@x.com",
		Password: "secret1",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, LoginParams{
		Email:    "ana@x.com",
		Password: "wrong-password",
	})
	require.ErrorIs(t, err, ErrUserPasswordMismatch)
}

func TestAuthService_GetUserByID(t *testing.T) {
	repo := newFakeUserRepo()
	svc, _ := newTestAuthService(repo)
	ctx := context.Background()

	registered, err := svc.Register(ctx, RegisterParams{
		Name:     "Ana",
		Email:    "ana@x.com",
		Password: "secret1",
	})
	require.NoError(t, err)

	user, err := svc.GetUserByID(ctx, registered.User.ID)
	require.NoError(t, err)
	require.Equal(t, "ana@x.com", user.Email)

	_, err = svc.GetUserByID(ctx, "missing-id")
	require.ErrorIs(t, err, ErrUserNotFound)
}
