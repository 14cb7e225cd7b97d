package utils

import (
	"context"
	"fmt"
	"time"

	"checkin-server/config"
	"checkin-server/models"
	"checkin-server/repo"
	"checkin-server/services"

	"github.com/google/uuid"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

type AccessToken struct {
	ID   string      `json:"ID"`
	Role models.Role `json:"role"`
}

// Tokens signs access/refresh pairs and remembers refresh tokens in the
// token store so each one can be redeemed once.
type Tokens struct {
	accessSigner    *jwt.Signer
	refreshSigner   *jwt.Signer
	accessVerifier  *jwt.Verifier
	refreshVerifier *jwt.Verifier
	store           repo.TokenStore
	refreshTTL      time.Duration
}

var _ services.TokenIssuer = (*Tokens)(nil)

func NewTokens(cfg *config.Config, store repo.TokenStore) *Tokens {
	return &Tokens{
		accessSigner:    jwt.NewSigner(jwt.HS256, []byte(cfg.AccessTokenSecret), cfg.AccessTokenTTL),
		refreshSigner:   jwt.NewSigner(jwt.HS256, []byte(cfg.RefreshTokenSecret), cfg.RefreshTokenTTL),
		accessVerifier:  jwt.NewVerifier(jwt.HS256, []byte(cfg.AccessTokenSecret)),
		refreshVerifier: jwt.NewVerifier(jwt.HS256, []byte(cfg.RefreshTokenSecret)),
		store:           store,
		refreshTTL:      cfg.RefreshTokenTTL,
	}
}

func (t *Tokens) CreateTokenPair(ctx context.Context, user *models.AdminUser) (*services.TokenPair, error) {
	accessToken, err := t.accessSigner.Sign(AccessToken{
		ID:   user.ID,
		Role: user.Role(),
	})
	if err != nil {
		return nil, err
	}

	refreshClaims := jwt.Claims{ID: uuid.NewString(), Subject: user.ID}
	refreshToken, err := t.refreshSigner.Sign(refreshClaims)
	if err != nil {
		return nil, err
	}

	if err := t.store.Save(ctx, string(refreshToken), t.refreshTTL+5*time.Minute); err != nil {
		return nil, fmt.Errorf("save refresh token: %w", err)
	}

	return &services.TokenPair{
		AccessToken:  string(accessToken),
		RefreshToken: string(refreshToken),
	}, nil
}

func (t *Tokens) ConsumeRefreshToken(ctx context.Context, token string) (string, error) {
	verified, err := t.refreshVerifier.VerifyToken([]byte(token))
	if err != nil {
		return "", fmt.Errorf("%w: %v", services.ErrInvalidRefreshToken, err)
	}

	live, err := t.store.Consume(ctx, token)
	if err != nil {
		return "", err
	}
	if !live || verified.StandardClaims.Subject == "" {
		return "", services.ErrInvalidRefreshToken
	}
	return verified.StandardClaims.Subject, nil
}

// AccessMiddleware rejects requests without a valid access token and makes
// the claims available through jwt.Get.
func (t *Tokens) AccessMiddleware() iris.Handler {
	return t.accessVerifier.Verify(func() interface{} {
		return new(AccessToken)
	})
}
