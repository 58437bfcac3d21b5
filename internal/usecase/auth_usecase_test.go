package usecase_test

import (
	"context"
	"testing"
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/usecase"
	"app/internal/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func newAuthFixture() (*usecase.AuthUsecase, *UserRepoMock, *RefreshTokenRepoMock) {
	users := new(UserRepoMock)
	rts := new(RefreshTokenRepoMock)
	cfg := config.Config{JWTSecret: "test_secret"}
	uc := usecase.NewAuthUsecase(cfg, users, rts, validator.NewAuthValidator(users))
	return uc, users, rts
}

func TestRegister_HashesPassword(t *testing.T) {
	uc, users, _ := newAuthFixture()
	ctx := context.Background()

	users.On("FindByEmail", ctx, "new@example.com").Return(nil, assert.AnError)
	users.On("Create", ctx, mock.MatchedBy(func(u *model.User) bool {
		if u.PasswordHash == "password123" {
			return false
		}
		return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("password123")) == nil
	})).Return(nil)

	out, err := uc.Register(ctx, usecase.AuthRegisterRequest{
		FirstName: "Asha", Email: "new@example.com", Password: "password123",
	})

	assert.NoError(t, err)
	assert.Equal(t, "new@example.com", out.User.Email)
	assert.Equal(t, "USER", out.User.Role)
}

func TestRegister_RejectsShortPassword(t *testing.T) {
	uc, _, _ := newAuthFixture()

	_, err := uc.Register(context.Background(), usecase.AuthRegisterRequest{
		Email: "new@example.com", Password: "short",
	})
	assert.ErrorIs(t, err, usecase.ErrValidation)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	uc, users, _ := newAuthFixture()
	ctx := context.Background()

	users.On("FindByEmail", ctx, "dup@example.com").Return(&model.User{ID: 1, Email: "dup@example.com"}, nil)

	_, err := uc.Register(ctx, usecase.AuthRegisterRequest{
		Email: "dup@example.com", Password: "password123",
	})
	assert.ErrorIs(t, err, usecase.ErrConflict)
}

func TestLogin_WrongPassword(t *testing.T) {
	uc, users, _ := newAuthFixture()
	ctx := context.Background()

	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	users.On("FindByEmail", ctx, "u@example.com").Return(&model.User{
		ID: 1, Email: "u@example.com", PasswordHash: string(hash), IsActive: true,
	}, nil)

	_, err := uc.Login(ctx, usecase.AuthLoginRequest{Email: "u@example.com", Password: "wrong-password"}, "ua", "")
	assert.ErrorIs(t, err, usecase.ErrUnauthorized)
}

func TestLogin_InactiveUserForbidden(t *testing.T) {
	uc, users, _ := newAuthFixture()
	ctx := context.Background()

	users.On("FindByEmail", ctx, "u@example.com").Return(&model.User{
		ID: 1, Email: "u@example.com", IsActive: false,
	}, nil)

	_, err := uc.Login(ctx, usecase.AuthLoginRequest{Email: "u@example.com", Password: "password123"}, "ua", "")
	assert.ErrorIs(t, err, usecase.ErrForbidden)
}

func TestLogin_IssuesTokens(t *testing.T) {
	uc, users, rts := newAuthFixture()
	ctx := context.Background()

	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	users.On("FindByEmail", ctx, "u@example.com").Return(&model.User{
		ID: 1, Email: "u@example.com", PasswordHash: string(hash), Role: model.RoleUser, IsActive: true,
	}, nil)
	users.On("Update", ctx, mock.Anything).Return(nil)
	rts.On("Create", ctx, mock.MatchedBy(func(rt *model.RefreshToken) bool {
		// 平文は保存しない
		return rt.UserID == 1 && rt.TokenHash != "" && rt.UserAgent == "ua"
	})).Return(nil)

	res, err := uc.Login(ctx, usecase.AuthLoginRequest{Email: "u@example.com", Password: "password123"}, "ua", "")

	assert.NoError(t, err)
	assert.NotEmpty(t, res.Body.Token.AccessToken)
	assert.NotEmpty(t, res.RefreshTokenPlain)
	assert.NotEmpty(t, res.CsrfTokenPlain)
	assert.NotEqual(t, res.RefreshTokenPlain, "")
}

func TestRefresh_ReplayTriggersSecurityIncident(t *testing.T) {
	uc, _, rts := newAuthFixture()
	ctx := context.Background()
	used := time.Now().Add(-time.Minute)

	rts.On("FindByTokenHash", ctx, mock.Anything).Return(&model.RefreshToken{
		ID: "rt-1", UserID: 1, ExpiresAt: time.Now().Add(time.Hour), UsedAt: &used,
	}, nil)
	rts.On("DeleteAllByUserID", ctx, int64(1)).Return(nil)

	_, err := uc.Refresh(ctx, "some-plain-token", "ua", "")

	assert.ErrorIs(t, err, usecase.ErrSecurityIncident)
	rts.AssertCalled(t, "DeleteAllByUserID", ctx, int64(1))
}

func TestRefresh_ExpiredTokenDeleted(t *testing.T) {
	uc, _, rts := newAuthFixture()
	ctx := context.Background()

	rts.On("FindByTokenHash", ctx, mock.Anything).Return(&model.RefreshToken{
		ID: "rt-1", UserID: 1, ExpiresAt: time.Now().Add(-time.Hour),
	}, nil)
	rts.On("DeleteByID", ctx, "rt-1").Return(nil)

	_, err := uc.Refresh(ctx, "some-plain-token", "ua", "")

	assert.ErrorIs(t, err, usecase.ErrUnauthorized)
	rts.AssertCalled(t, "DeleteByID", ctx, "rt-1")
}

func TestForceLogout_BumpsTokenVersion(t *testing.T) {
	uc, users, rts := newAuthFixture()
	ctx := context.Background()

	users.On("IncrementTokenVersion", ctx, int64(5)).Return(nil)
	rts.On("DeleteAllByUserID", ctx, int64(5)).Return(nil)
	users.On("FindByID", ctx, int64(5)).Return(&model.User{ID: 5, TokenVersion: 3}, nil)

	out, err := uc.ForceLogout(ctx, 5)

	assert.NoError(t, err)
	assert.Equal(t, int64(5), out.UserID)
	assert.Equal(t, 3, out.NewTokenVersion)
}

func TestMe_InactiveUserForbidden(t *testing.T) {
	uc, users, _ := newAuthFixture()
	ctx := context.Background()

	users.On("FindByID", ctx, int64(1)).Return(&model.User{ID: 1, IsActive: false}, nil)

	_, err := uc.Me(ctx, 1)
	assert.ErrorIs(t, err, usecase.ErrForbidden)
}
