package authenticating

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -source=service.go -destination=mocks/authenticating_mock.go -package=mocks

const tokenTTL = 24 * time.Hour

type Authenticator interface {
	LoginUser(email, password string) (string, error)
	ValidateToken(tokenString string) (*domain.Claims, error)
}

type Service struct {
	admin     domain.Admin
	secretKey string
	now       func() time.Time
}

func NewService(cfg *config.Config) Authenticator {
	if cfg.Admin.Email == "" || cfg.Admin.PasswordHash == "" {
		logrus.Warn("ADMIN_EMAIL ou ADMIN_PASSWORD_HASH ausentes; operações administrativas ficarão indisponíveis")
	}

	return &Service{
		admin: domain.Admin{
			Email:        handleEmail(cfg.Admin.Email),
			PasswordHash: cfg.Admin.PasswordHash,
		},
		secretKey: cfg.SecretKey,
		now:       time.Now,
	}
}

func handleEmail(s string) string {
	email := strings.ToLower(s)
	email = strings.TrimSpace(email)
	email = strings.ReplaceAll(email, " ", "")
	return email
}

func (s *Service) LoginUser(email, password string) (string, error) {
	if email == "" || password == "" {
		return "", NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Email e senha são obrigatórios")
	}

	if s.admin.Email == "" || s.admin.PasswordHash == "" {
		return "", NewAuthError(ErrAdminNotConfigured, apiErrors.ErrInternalServer, "Conta administrativa ausente na configuração")
	}

	email = handleEmail(email)
	if email != s.admin.Email {
		return "", NewUserAuthError(ErrUserNotFound, apiErrors.ErrUserNotFound, email, "Usuário não encontrado")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.admin.PasswordHash), []byte(password)); err != nil {
		return "", NewUserAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, email, "Senha incorreta")
	}

	token, err := s.generateJWT(email)
	if err != nil {
		return "", NewAuthError(err, apiErrors.ErrInternalServer, "Erro ao gerar token de autenticação")
	}

	logrus.WithField("email", email).Info("Login administrativo realizado")
	return token, nil
}

func (s *Service) generateJWT(email string) (string, error) {
	now := s.now()
	claims := domain.Claims{
		UserEmail: email,
		UserRole:  domain.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secretKey))
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de assinatura inesperado: %v", token.Header["alg"])
		}
		return []byte(s.secretKey), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, NewAuthError(ErrExpiredToken, apiErrors.ErrExpiredToken, "Token expirado")
		}
		return nil, NewAuthError(errors.Wrap(ErrInvalidToken, err.Error()), apiErrors.ErrInvalidToken, "")
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid {
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, "")
	}

	return claims, nil
}
