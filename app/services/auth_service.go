package services

import (
	"context"
	"fmt"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/pkg/auth"
	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/orm"
	"github.com/shashiranjanraj/storefront/pkg/session"
)

// AuthService registers users and checks their credentials. Establishing
// the session is left to the caller.
type AuthService struct {
	users *repositories.UserRepository
}

func NewAuthService(users *repositories.UserRepository) *AuthService {
	return &AuthService{users: users}
}

func identityOf(u models.User) *auth.Identity {
	return &auth.Identity{UserID: u.ID, Email: u.Email, Name: u.Name}
}

// SignUp creates a user. The email is matched exactly as given.
func (s *AuthService) SignUp(ctx context.Context, name, email, password string) (*auth.Identity, error) {
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, ErrAlreadyRegistered
	} else if !orm.IsNotFound(err) {
		return nil, fmt.Errorf("auth: lookup: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("auth: hash: %w", err)
	}

	user := models.User{Name: name, Email: email, Password: hash}
	created, err := s.users.Create(ctx, &user)
	if err != nil {
		return nil, fmt.Errorf("auth: create: %w", err)
	}
	if !created {
		// lost a race with a concurrent sign-up for the same email
		return nil, ErrAlreadyRegistered
	}

	logger.WithCtx(ctx).Info("user signed up", "user_id", user.ID)
	return identityOf(user), nil
}

// LogIn verifies the credentials.
func (s *AuthService) LogIn(ctx context.Context, email, password string) (*auth.Identity, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if orm.IsNotFound(err) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("auth: lookup: %w", err)
	}

	if !auth.CheckPassword(user.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return identityOf(user), nil
}

// LogOut ends the session. It never fails.
func (s *AuthService) LogOut(sess *session.Session) {
	sess.Invalidate()
}

// Resolve loads the identity for a user id.
func (s *AuthService) Resolve(ctx context.Context, userID uint) (*auth.Identity, error) {
	user, err := s.users.FindByID(ctx, userID)
	if orm.IsNotFound(err) {
		return nil, fmt.Errorf("%w: %w", ErrNotFound, auth.ErrUnknownUser)
	}
	if err != nil {
		return nil, fmt.Errorf("auth: resolve: %w", err)
	}
	return identityOf(user), nil
}

// IssueToken signs a bearer token for API clients.
func (s *AuthService) IssueToken(id *auth.Identity) (string, error) {
	return auth.GenerateToken(id)
}
