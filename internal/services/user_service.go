package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/anonto42/medium-clone/backend/internal/errs"
	"github.com/anonto42/medium-clone/backend/internal/models"
	"github.com/anonto42/medium-clone/backend/internal/repositories"
	"github.com/anonto42/medium-clone/backend/internal/token"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"golang.org/x/crypto/bcrypt"
)

const maxUsernameAttempts = 5

// IDTokenVerifier verifies Firebase ID tokens. *auth.Client satisfies it.
type IDTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// UserService handles sign-up, login and the current user's account.
type UserService struct {
	users    repositories.UserRepository
	tokens   *token.Manager
	firebase IDTokenVerifier
	hashCost int
}

// NewUserService builds the service. firebase may be nil, which disables FirebaseLogin.
func NewUserService(users repositories.UserRepository, tokens *token.Manager, firebase IDTokenVerifier) *UserService {
	return &UserService{
		users:    users,
		tokens:   tokens,
		firebase: firebase,
		hashCost: bcrypt.DefaultCost,
	}
}

// WithHashCost sets the bcrypt cost used for new hashes.
func (s *UserService) WithHashCost(cost int) *UserService {
	s.hashCost = cost
	return s
}

// Signup creates an account and returns a token for it.
func (s *UserService) Signup(ctx context.Context, req models.SignupRequest) (*models.AuthResponse, error) {
	hashed, err := s.hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:    req.Email,
		Username: req.Username,
		Password: hashed,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, storeError(err, "", errs.EmailUsernameExists)
	}
	log.Printf("user %q signed up", user.Username)

	return s.authenticate(user)
}

// Login checks the email and password and returns a token.
func (s *UserService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if isNotFound(err) {
			return nil, errs.New(errs.Unauthorized, errs.AccountNotExists)
		}
		return nil, internal(err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, errs.New(errs.Unauthorized, errs.WrongPassword)
	}
	return s.authenticate(user)
}

// FirebaseLogin exchanges a Firebase ID token for a local token. Unknown emails get a new
// account with a username derived from the email and an unusable password.
func (s *UserService) FirebaseLogin(ctx context.Context, req models.FirebaseLoginRequest) (*models.AuthResponse, error) {
	if s.firebase == nil {
		return nil, errs.New(errs.BadRequest, errs.FirebaseNotConfigured)
	}
	verified, err := s.firebase.VerifyIDToken(ctx, req.IDToken)
	if err != nil {
		return nil, errs.Wrap(errs.Unauthorized, errs.FirebaseTokenInvalid, err)
	}
	email, _ := verified.Claims["email"].(string)
	if email == "" {
		return nil, errs.New(errs.Unauthorized, errs.FirebaseTokenInvalid)
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return s.authenticate(user)
	case !isNotFound(err):
		return nil, internal(err)
	}

	name, _ := verified.Claims["name"].(string)
	user, err = s.createFederatedUser(ctx, email, name)
	if err != nil {
		return nil, err
	}
	log.Printf("user %q created from firebase uid %s", user.Username, verified.UID)
	return s.authenticate(user)
}

func (s *UserService) createFederatedUser(ctx context.Context, email, name string) (*models.User, error) {
	base := name
	if base == "" {
		base = strings.SplitN(email, "@", 2)[0]
	}
	base = slug.Make(base)
	if base == "" {
		base = "user"
	}

	hashed, err := s.hash(uuid.NewString())
	if err != nil {
		return nil, err
	}

	for attempt := 0; attempt < maxUsernameAttempts; attempt++ {
		username := base
		if attempt > 0 {
			username = fmt.Sprintf("%s-%s", base, uuid.NewString()[:8])
		}
		user := &models.User{Email: email, Username: username, Password: hashed}
		err := s.users.CreateUser(ctx, user)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, repositories.ErrConflict) {
			return nil, internal(err)
		}
	}
	return nil, errs.New(errs.Conflict, errs.EmailUsernameExists)
}

// Current returns the authenticated user.
func (s *UserService) Current(ctx context.Context, userID uint) (*models.UserResponse, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, storeError(err, errs.UserNotFound, "")
	}
	return &models.UserResponse{User: user.ToView()}, nil
}

// Update applies a partial update to the authenticated user. Setting a new password requires
// the current one.
func (s *UserService) Update(ctx context.Context, userID uint, req models.UpdateUserRequest) (*models.UserResponse, error) {
	fields := map[string]interface{}{}

	if req.NewPassword != nil {
		if req.CurrentPassword == nil || *req.CurrentPassword == "" {
			return nil, errs.New(errs.BadRequest, errs.CurrentPasswordRequired)
		}
		user, err := s.users.GetUserByID(ctx, userID)
		if err != nil {
			return nil, storeError(err, errs.UserNotFound, "")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(*req.CurrentPassword)); err != nil {
			return nil, errs.New(errs.Unauthorized, errs.CurrentPasswordInvalid)
		}
		hashed, err := s.hash(*req.NewPassword)
		if err != nil {
			return nil, err
		}
		fields["password"] = hashed
	}

	if req.Email != nil {
		fields["email"] = *req.Email
	}
	if req.Username != nil {
		fields["username"] = *req.Username
	}
	if req.Bio != nil {
		fields["bio"] = *req.Bio
	}
	if req.Image != nil {
		fields["image"] = *req.Image
	}

	if err := s.users.UpdateUser(ctx, userID, fields); err != nil {
		return nil, storeError(err, errs.UserNotFound, errs.EmailUsernameExists)
	}
	return s.Current(ctx, userID)
}

func (s *UserService) hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return "", internal(err)
	}
	return string(hashed), nil
}

func (s *UserService) authenticate(user *models.User) (*models.AuthResponse, error) {
	accessToken, err := s.tokens.Generate(user)
	if err != nil {
		return nil, internal(err)
	}
	return &models.AuthResponse{AccessToken: accessToken, User: user.ToView()}, nil
}
