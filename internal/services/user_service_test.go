package services

import (
	"context"
	"errors"
	"testing"

	"firebase.google.com/go/v4/auth"
	"github.com/anonto42/medium-clone/backend/internal/errs"
	"github.com/anonto42/medium-clone/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestSignupAndLogin(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	signup, err := env.users.Signup(ctx, models.SignupRequest{Email: "jo@example.com", Username: "jo", Password: "pw"})
	require.NoError(t, err)
	assert.NotEmpty(t, signup.AccessToken)
	assert.Equal(t, "jo", signup.User.Username)

	claims, err := env.tokens.Parse(signup.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, signup.User.ID, claims.UserID)
	assert.Equal(t, "jo@example.com", claims.Email)

	t.Run("duplicate email", func(t *testing.T) {
		_, err := env.users.Signup(ctx, models.SignupRequest{Email: "jo@example.com", Username: "other", Password: "pw"})
		assert.Equal(t, errs.Conflict, errs.KindOf(err))
	})

	t.Run("duplicate username", func(t *testing.T) {
		_, err := env.users.Signup(ctx, models.SignupRequest{Email: "new@example.com", Username: "jo", Password: "pw"})
		assert.Equal(t, errs.Conflict, errs.KindOf(err))
	})

	t.Run("login", func(t *testing.T) {
		login, err := env.users.Login(ctx, models.LoginRequest{Email: "jo@example.com", Password: "pw"})
		require.NoError(t, err)
		assert.Equal(t, signup.User.ID, login.User.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := env.users.Login(ctx, models.LoginRequest{Email: "jo@example.com", Password: "nope"})
		var appErr *errs.Error
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, errs.Unauthorized, appErr.Kind)
		assert.Equal(t, errs.WrongPassword, appErr.Message)
	})

	t.Run("unknown account", func(t *testing.T) {
		_, err := env.users.Login(ctx, models.LoginRequest{Email: "ghost@example.com", Password: "pw"})
		var appErr *errs.Error
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, errs.Unauthorized, appErr.Kind)
		assert.Equal(t, errs.AccountNotExists, appErr.Message)
	})
}

func TestPasswordIsHashed(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	signup, err := env.users.Signup(ctx, models.SignupRequest{Email: "h@example.com", Username: "h", Password: "plain"})
	require.NoError(t, err)

	stored, err := env.userRepo.GetUserByID(ctx, signup.User.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "plain", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("plain")))
}

func TestUpdateUser(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	signup, err := env.users.Signup(ctx, models.SignupRequest{Email: "u@example.com", Username: "u", Password: "old"})
	require.NoError(t, err)
	id := signup.User.ID
	env.seedUser(t, "taken")

	t.Run("profile fields", func(t *testing.T) {
		got, err := env.users.Update(ctx, id, models.UpdateUserRequest{Bio: strPtr("hello"), Image: strPtr("https://img")})
		require.NoError(t, err)
		require.NotNil(t, got.User.Bio)
		assert.Equal(t, "hello", *got.User.Bio)
		assert.Equal(t, "u", got.User.Username)
	})

	t.Run("new password needs the current one", func(t *testing.T) {
		_, err := env.users.Update(ctx, id, models.UpdateUserRequest{NewPassword: strPtr("new")})
		assert.Equal(t, errs.BadRequest, errs.KindOf(err))
	})

	t.Run("wrong current password", func(t *testing.T) {
		_, err := env.users.Update(ctx, id, models.UpdateUserRequest{CurrentPassword: strPtr("bad"), NewPassword: strPtr("new")})
		assert.Equal(t, errs.Unauthorized, errs.KindOf(err))
	})

	t.Run("password change", func(t *testing.T) {
		_, err := env.users.Update(ctx, id, models.UpdateUserRequest{CurrentPassword: strPtr("old"), NewPassword: strPtr("new")})
		require.NoError(t, err)

		_, err = env.users.Login(ctx, models.LoginRequest{Email: "u@example.com", Password: "new"})
		assert.NoError(t, err)
		_, err = env.users.Login(ctx, models.LoginRequest{Email: "u@example.com", Password: "old"})
		assert.Equal(t, errs.Unauthorized, errs.KindOf(err))
	})

	t.Run("username taken", func(t *testing.T) {
		_, err := env.users.Update(ctx, id, models.UpdateUserRequest{Username: strPtr("taken")})
		assert.Equal(t, errs.Conflict, errs.KindOf(err))
	})

	t.Run("current of a missing user", func(t *testing.T) {
		_, err := env.users.Current(ctx, 12345)
		assert.Equal(t, errs.NotFound, errs.KindOf(err))
	})
}

type fakeVerifier struct {
	tokens map[string]*auth.Token
}

func (f fakeVerifier) VerifyIDToken(_ context.Context, idToken string) (*auth.Token, error) {
	if tok, ok := f.tokens[idToken]; ok {
		return tok, nil
	}
	return nil, errors.New("token rejected")
}

func TestFirebaseLogin(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	existing := env.seedUser(t, "known")
	env.seedUser(t, "new-person")

	verifier := fakeVerifier{tokens: map[string]*auth.Token{
		"known-token": {UID: "uid-1", Claims: map[string]interface{}{"email": existing.Email}},
		"new-token":   {UID: "uid-2", Claims: map[string]interface{}{"email": "fresh@example.com", "name": "New Person"}},
		"no-email":    {UID: "uid-3", Claims: map[string]interface{}{}},
	}}
	svc := NewUserService(env.userRepo, env.tokens, verifier).WithHashCost(bcrypt.MinCost)

	t.Run("existing email logs in", func(t *testing.T) {
		resp, err := svc.FirebaseLogin(ctx, models.FirebaseLoginRequest{IDToken: "known-token"})
		require.NoError(t, err)
		assert.Equal(t, existing.ID, resp.User.ID)
	})

	t.Run("new email creates an account with a free username", func(t *testing.T) {
		resp, err := svc.FirebaseLogin(ctx, models.FirebaseLoginRequest{IDToken: "new-token"})
		require.NoError(t, err)
		assert.Equal(t, "fresh@example.com", resp.User.Email)
		assert.Regexp(t, `^new-person-[0-9a-f]{8}$`, resp.User.Username)

		again, err := svc.FirebaseLogin(ctx, models.FirebaseLoginRequest{IDToken: "new-token"})
		require.NoError(t, err)
		assert.Equal(t, resp.User.ID, again.User.ID)
	})

	t.Run("rejected token", func(t *testing.T) {
		_, err := svc.FirebaseLogin(ctx, models.FirebaseLoginRequest{IDToken: "forged"})
		assert.Equal(t, errs.Unauthorized, errs.KindOf(err))
	})

	t.Run("token without email", func(t *testing.T) {
		_, err := svc.FirebaseLogin(ctx, models.FirebaseLoginRequest{IDToken: "no-email"})
		assert.Equal(t, errs.Unauthorized, errs.KindOf(err))
	})

	t.Run("disabled without a verifier", func(t *testing.T) {
		_, err := env.users.FirebaseLogin(ctx, models.FirebaseLoginRequest{IDToken: "known-token"})
		assert.Equal(t, errs.BadRequest, errs.KindOf(err))
	})
}
