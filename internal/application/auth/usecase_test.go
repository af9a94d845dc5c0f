package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/pkg/config"
	"github.com/jhoicas/Farmacia-api/pkg/jwt"
)

type fakeUserRepo struct {
	users map[string]*entity.User // por ID
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeUserRepo) Count(_ context.Context) (int, error) {
	return len(r.users), nil
}

var testJWTCfg = config.JWTConfig{Secret: "secreto-de-prueba", Expiration: 60, Issuer: "farmacia-api"}

func seedUser(t *testing.T, repo *fakeUserRepo, username, password, role string, active bool) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &entity.User{
		ID:           "u-" + username,
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     active,
	}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestLogin_Success(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "ana", "clave123", entity.RoleAdmin, true)
	uc := NewUseCase(repo, testJWTCfg)

	resp, err := uc.Login(context.Background(), dto.LoginRequest{Username: "ana", Password: "clave123"})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "ana", resp.User.Username)
	assert.NotNil(t, resp.User.LastLogin, "login actualiza el último ingreso")

	userID, username, role, err := jwt.Parse(testJWTCfg.Secret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "u-ana", userID)
	assert.Equal(t, "ana", username)
	assert.Equal(t, entity.RoleAdmin, role)
}

func TestLogin_BadCredentialsAreIndistinguishable(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "ana", "clave123", entity.RoleAdmin, true)
	uc := NewUseCase(repo, testJWTCfg)
	ctx := context.Background()

	_, errBadPass := uc.Login(ctx, dto.LoginRequest{Username: "ana", Password: "otra"})
	_, errNoUser := uc.Login(ctx, dto.LoginRequest{Username: "nadie", Password: "clave123"})

	assert.ErrorIs(t, errBadPass, domain.ErrUnauthorized)
	assert.ErrorIs(t, errNoUser, domain.ErrUnauthorized)
}

func TestLogin_InactiveUser(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "ana", "clave123", entity.RoleOperator, false)
	uc := NewUseCase(repo, testJWTCfg)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Username: "ana", Password: "clave123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestRegister_DefaultsToOperator(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewUseCase(repo, testJWTCfg)

	resp, err := uc.Register(context.Background(), dto.RegisterRequest{Username: "luis", Password: "clave123"})
	require.NoError(t, err)

	assert.Equal(t, entity.RoleOperator, resp.Role)
	assert.True(t, resp.IsActive)
}

func TestRegister_UsernameTaken(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "ana", "clave123", entity.RoleAdmin, true)
	uc := NewUseCase(repo, testJWTCfg)

	_, err := uc.Register(context.Background(), dto.RegisterRequest{Username: "ana", Password: "clave123"})
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
}

func TestChangePassword(t *testing.T) {
	repo := newFakeUserRepo()
	u := seedUser(t, repo, "ana", "clave123", entity.RoleAdmin, true)
	uc := NewUseCase(repo, testJWTCfg)
	ctx := context.Background()

	err := uc.ChangePassword(ctx, u.ID, dto.ChangePasswordRequest{OldPassword: "mala", NewPassword: "nueva123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	err = uc.ChangePassword(ctx, u.ID, dto.ChangePasswordRequest{OldPassword: "clave123", NewPassword: "nueva123"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "ana", Password: "nueva123"})
	assert.NoError(t, err)
}

func TestEnsureAdmin_OnlyWhenEmpty(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewUseCase(repo, testJWTCfg)
	ctx := context.Background()

	require.NoError(t, uc.EnsureAdmin(ctx, "admin", "admin123"))
	admin, err := repo.FindByUsername(ctx, "admin")
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.Equal(t, entity.RoleAdmin, admin.Role)

	// Segunda llamada no duplica ni pisa al existente.
	require.NoError(t, uc.EnsureAdmin(ctx, "admin", "otra"))
	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
