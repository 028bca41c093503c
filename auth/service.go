// Package auth implements the authentication service: the sole arbiter of
// who may obtain a session, and of password lifecycle integrity. It holds no
// state between calls; consistency is delegated to the credential store.
package auth

import (
	"context"
	"fmt"
	"time"

	apperrors "github.com/livrolivre/go-library-server/internal/errors"
	"github.com/livrolivre/go-library-server/mailer"
	"github.com/livrolivre/go-library-server/token"
	"github.com/livrolivre/go-library-server/users"
	"github.com/pkg/errors"
)

const (
	// Access tokens are short-lived unless the caller asked to stay logged in.
	accessTokenExpiry     = 30 * time.Minute
	persistentTokenExpiry = 7 * 24 * time.Hour

	// Refresh tokens carry a fixed 7-day expiry rather than living forever.
	refreshTokenExpiry = 7 * 24 * time.Hour

	resetTokenExpiry = 30 * time.Minute

	passwordHashCost = 10
)

// TokenIssuer signs and verifies session tokens.
type TokenIssuer interface {
	Sign(claims token.Claims, expiresIn time.Duration) (string, error)
	Verify(rawToken string) (token.Claims, error)
}

// TokenPair is the session credential set returned by SignIn and SignUp.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type Service struct {
	users    users.UserRepo
	tokens   TokenIssuer
	mail     mailer.Sender
	policy   PasswordPolicy
	appURL   string
	mailFrom string
}

type ServiceOption func(*Service)

// WithAppURL sets the public base URL embedded into recovery links.
func WithAppURL(url string) ServiceOption {
	return func(s *Service) {
		s.appURL = url
	}
}

// WithMailSender sets the From address of outgoing recovery mail.
func WithMailSender(from string) ServiceOption {
	return func(s *Service) {
		s.mailFrom = from
	}
}

func NewService(userRepo users.UserRepo, tokens TokenIssuer, mail mailer.Sender, policy PasswordPolicy, options ...ServiceOption) (*Service, error) {
	if userRepo == nil {
		return nil, errors.New("[NewService] users repo is required")
	}
	if tokens == nil {
		return nil, errors.New("[NewService] token issuer is required")
	}
	if mail == nil {
		return nil, errors.New("[NewService] mail sender is required")
	}

	service := &Service{
		users:  userRepo,
		tokens: tokens,
		mail:   mail,
		policy: policy,
	}

	for _, opt := range options {
		opt(service)
	}

	return service, nil
}

// SignUp registers a new account and signs it straight in. The password
// policy is checked before anything else: no lookup and no hashing happen
// for a weak password, and a duplicate email is rejected before hashing too.
func (s *Service) SignUp(ctx context.Context, firstName, lastName, email, phone, password string) (*TokenPair, error) {
	if err := s.policy.Validate(password); err != nil {
		return nil, err
	}

	_, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return nil, apperrors.ErrDuplicateAccount
	}
	if !apperrors.Is(err, apperrors.ErrUserNotFound) {
		return nil, errors.Wrap(err, "[Service.SignUp] GetByEmail")
	}

	hash, err := users.HashPassword(password, passwordHashCost)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.SignUp] HashPassword")
	}

	_, err = s.users.Create(ctx, &users.User{
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		Phone:        phone,
		PasswordHash: hash,
		Role:         users.RoleUser,
	})
	if err != nil {
		return nil, errors.Wrap(err, "[Service.SignUp] Create")
	}

	return s.SignIn(ctx, email, password, users.RoleUser, false)
}

// SignIn verifies credentials against the store and issues a token pair. A
// missing account and a wrong password are indistinguishable to the caller.
func (s *Service) SignIn(ctx context.Context, email, password string, role users.RoleType, keepLoggedIn bool) (*TokenPair, error) {
	user, err := s.users.GetByEmailAndRole(ctx, email, role)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, errors.Wrap(err, "[Service.SignIn] GetByEmailAndRole")
	}

	if !users.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	claims := token.Claims{Subject: user.ID, Email: user.Email, Role: string(user.Role)}

	expiry := accessTokenExpiry
	if keepLoggedIn {
		expiry = persistentTokenExpiry
	}

	accessToken, err := s.tokens.Sign(claims, expiry)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.SignIn] sign access token")
	}

	refreshToken, err := s.tokens.Sign(claims, refreshTokenExpiry)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.SignIn] sign refresh token")
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Profile resolves the user a set of verified claims refers to. A subject
// that no longer exists yields nil, not an error: this is a read path, not
// an authorization decision.
func (s *Service) Profile(ctx context.Context, claims token.Claims) (*users.User, error) {
	user, err := s.users.GetByID(ctx, claims.Subject)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrUserNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "[Service.Profile] GetByID")
	}
	return user, nil
}

// RecoverPassword emails a time-boxed reset link to a known account. A mail
// transport failure propagates to the caller unmodified.
func (s *Service) RecoverPassword(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return errors.Wrap(err, "[Service.RecoverPassword] GetByEmail")
	}

	resetToken, err := s.tokens.Sign(token.Claims{Subject: user.ID}, resetTokenExpiry)
	if err != nil {
		return errors.Wrap(err, "[Service.RecoverPassword] sign reset token")
	}

	text := fmt.Sprintf(
		"Hello! You requested a password recovery. To change your password, follow this link: %s/alterar-senha?token=%s",
		s.appURL, resetToken)

	return s.mail.Send(ctx, mailer.Message{
		From:    s.mailFrom,
		To:      user.Email,
		Subject: "Password recovery - Livro Livre",
		Text:    text,
	})
}

// ChangePassword replaces the stored hash after validating the new password
// against the policy and verifying the current one. The new password is
// validated first so a doomed request never pays for a bcrypt comparison.
// Previously issued tokens stay valid until their natural expiry.
func (s *Service) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return errors.Wrap(err, "[Service.ChangePassword] GetByID")
	}

	if err := s.policy.Validate(newPassword); err != nil {
		return err
	}

	if !users.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return apperrors.ErrInvalidCredentials
	}

	hash, err := users.HashPassword(newPassword, passwordHashCost)
	if err != nil {
		return errors.Wrap(err, "[Service.ChangePassword] HashPassword")
	}

	user.PasswordHash = hash
	if err := s.users.Save(ctx, user); err != nil {
		return errors.Wrap(err, "[Service.ChangePassword] Save")
	}
	return nil
}
