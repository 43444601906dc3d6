package auth

import (
	"context"
	"crypto/subtle"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/venuebook/venuebook-api/internal/middleware"
	"github.com/venuebook/venuebook-api/internal/pkg/jwt"
	"github.com/venuebook/venuebook-api/internal/pkg/password"
)

// Service authenticates the single configured administrator
type Service struct {
	jwtService   *jwt.Service
	adminEmail   string
	passwordHash string
}

// NewService creates auth service
func NewService(jwtService *jwt.Service, adminEmail, passwordHash string) *Service {
	return &Service{
		jwtService:   jwtService,
		adminEmail:   normalizeEmail(adminEmail),
		passwordHash: passwordHash,
	}
}

// Login exchanges admin credentials for an access token
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*TokenResponse, error) {
	if s.adminEmail == "" || s.passwordHash == "" {
		return nil, ErrAdminNotConfigured
	}

	email := normalizeEmail(req.Email)

	// bcrypt runs on every attempt, matching email or not.
	passwordOK := password.Verify(req.Password, s.passwordHash)
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(s.adminEmail)) == 1
	if !passwordOK || !emailOK {
		log.Warn().Str("email", email).Msg("admin login rejected")
		return nil, ErrInvalidCredentials
	}

	token, _, err := s.jwtService.GenerateAccessToken(email, middleware.RoleAdmin)
	if err != nil {
		return nil, err
	}

	log.Info().Str("email", email).Msg("admin logged in")
	return &TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(s.jwtService.GetAccessTTL().Seconds()),
	}, nil
}

// normalizeEmail makes the configured and submitted emails comparable
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
