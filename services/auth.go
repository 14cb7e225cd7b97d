package services

import (
	"context"
	"errors"
	"strings"

	"checkin-server/models"
	"checkin-server/repo"

	"github.com/kataras/golog"
	"golang.org/x/crypto/bcrypt"
)

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// TokenIssuer signs token pairs and redeems refresh tokens.
type TokenIssuer interface {
	CreateTokenPair(ctx context.Context, user *models.AdminUser) (*TokenPair, error)
	// ConsumeRefreshToken returns the user id the token was issued to. A token
	// can be consumed once.
	ConsumeRefreshToken(ctx context.Context, token string) (string, error)
}

var ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")

type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshInput struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type CreateAdminInput struct {
	Email     string
	Password  string
	Superuser bool
}

type AdminSummary struct {
	ID          string      `json:"id"`
	Email       string      `json:"email"`
	Role        models.Role `json:"role"`
	IsActive    bool        `json:"is_active"`
	IsSuperuser bool        `json:"is_superuser"`
}

type AuthResult struct {
	User AdminSummary `json:"user"`
	TokenPair
}

type AuthService struct {
	admins repo.AdminRepository
	tokens TokenIssuer
	logger *golog.Logger
}

func NewAuthService(admins repo.AdminRepository, tokens TokenIssuer, logger *golog.Logger) *AuthService {
	return &AuthService{admins: admins, tokens: tokens, logger: logger}
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	user, err := s.CreateAdmin(ctx, CreateAdminInput{Email: in.Email, Password: in.Password})
	if err != nil {
		return nil, err
	}
	return s.issue(ctx, user)
}

// CreateAdmin stores a new admin with a bcrypt-hashed password.
func (s *AuthService) CreateAdmin(ctx context.Context, in CreateAdminInput) (*models.AdminUser, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || len(in.Password) < 8 {
		return nil, newError(KindValidation, "email and a password of at least 8 characters are required")
	}

	hashed, err := hashAndSaltPassword(in.Password)
	if err != nil {
		s.logger.Errorf("hash password: %v", err)
		return nil, &Error{Kind: KindInternal, Message: "internal error", Err: err}
	}

	user := &models.AdminUser{
		Email:       email,
		Password:    hashed,
		IsActive:    true,
		IsSuperuser: in.Superuser,
	}
	if err := s.admins.InsertAdmin(ctx, user); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, &Error{Kind: KindConflict, Message: "email already registered", Err: err}
		}
		s.logger.Errorf("insert admin: %v", err)
		return nil, fromStore(err, "admin not found")
	}
	s.logger.Infof("admin %s registered", user.ID)
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	const credentialsMsg = "invalid email or password"

	user, err := s.admins.GetAdminByEmail(ctx, strings.TrimSpace(in.Email))
	if errors.Is(err, repo.ErrNotFound) {
		return nil, newError(KindUnauthorized, credentialsMsg)
	}
	if err != nil {
		s.logger.Errorf("login lookup: %v", err)
		return nil, fromStore(err, "admin not found")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return nil, newError(KindUnauthorized, credentialsMsg)
	}
	if !user.IsActive {
		return nil, newError(KindForbidden, "account is disabled")
	}
	return s.issue(ctx, user)
}

// Refresh trades a live refresh token for a new pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	userID, err := s.tokens.ConsumeRefreshToken(ctx, refreshToken)
	if errors.Is(err, ErrInvalidRefreshToken) {
		return nil, &Error{Kind: KindUnauthorized, Message: "invalid or expired refresh token", Err: err}
	}
	if err != nil {
		s.logger.Errorf("consume refresh token: %v", err)
		return nil, &Error{Kind: KindInternal, Message: "internal error", Err: err}
	}

	user, err := s.admins.GetAdmin(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, newError(KindUnauthorized, "invalid or expired refresh token")
	}
	if err != nil {
		return nil, fromStore(err, "admin not found")
	}
	if !user.IsActive {
		return nil, newError(KindForbidden, "account is disabled")
	}
	return s.issue(ctx, user)
}

func (s *AuthService) ListAdmins(ctx context.Context) ([]AdminSummary, error) {
	users, err := s.admins.ListAdmins(ctx)
	if err != nil {
		s.logger.Errorf("list admins: %v", err)
		return nil, fromStore(err, "admin not found")
	}
	out := make([]AdminSummary, 0, len(users))
	for i := range users {
		out = append(out, summarize(&users[i]))
	}
	return out, nil
}

func (s *AuthService) GetAdmin(ctx context.Context, id string) (*AdminSummary, error) {
	user, err := s.admins.GetAdmin(ctx, id)
	if err != nil {
		return nil, fromStore(err, "admin not found")
	}
	summary := summarize(user)
	return &summary, nil
}

func (s *AuthService) issue(ctx context.Context, user *models.AdminUser) (*AuthResult, error) {
	pair, err := s.tokens.CreateTokenPair(ctx, user)
	if err != nil {
		s.logger.Errorf("create token pair for %s: %v", user.ID, err)
		return nil, &Error{Kind: KindInternal, Message: "internal error", Err: err}
	}
	return &AuthResult{User: summarize(user), TokenPair: *pair}, nil
}

func summarize(user *models.AdminUser) AdminSummary {
	return AdminSummary{
		ID:          user.ID,
		Email:       user.Email,
		Role:        user.Role(),
		IsActive:    user.IsActive,
		IsSuperuser: user.IsSuperuser,
	}
}

func hashAndSaltPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}
