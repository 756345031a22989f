package authenticating

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
	"golang.org/x/crypto/bcrypt"
)

const (
	testSecret   = "segredo-de-teste"
	testEmail    = "admin@vendas.local"
	testPassword = "S3nha!Forte"
)

func newTestService(t *testing.T) *Service {
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := &config.Config{
		Admin:     config.Admin{Email: testEmail, PasswordHash: string(hash)},
		SecretKey: testSecret,
	}
	return NewService(cfg).(*Service)
}

func TestService_LoginUser(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
		wantCode string
	}{
		{
			name:     "Credenciais corretas geram token",
			email:    testEmail,
			password: testPassword,
		},
		{
			name:     "Email é normalizado",
			email:    "  ADMIN@vendas.local ",
			password: testPassword,
		},
		{
			name:     "Senha incorreta",
			email:    testEmail,
			password: "errada",
			wantErr:  ErrInvalidCredentials,
			wantCode: apiErrors.ErrInvalidCredentials,
		},
		{
			name:     "Email desconhecido",
			email:    "outro@vendas.local",
			password: testPassword,
			wantErr:  ErrUserNotFound,
			wantCode: apiErrors.ErrUserNotFound,
		},
		{
			name:     "Campos vazios",
			wantErr:  ErrMissingRequiredData,
			wantCode: apiErrors.ErrMissingRequiredData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newTestService(t)

			token, err := service.LoginUser(tt.email, tt.password)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))

				var authErr *AuthError
				require.True(t, errors.As(err, &authErr))
				assert.Equal(t, tt.wantCode, authErr.Code)
				assert.Empty(t, token)
				return
			}

			require.NoError(t, err)
			claims, err := service.ValidateToken(token)
			require.NoError(t, err)
			assert.Equal(t, testEmail, claims.UserEmail)
			assert.Equal(t, domain.RoleAdmin, claims.UserRole)
		})
	}
}

func TestService_LoginUserWithoutAdmin(t *testing.T) {
	service := NewService(&config.Config{SecretKey: testSecret})

	_, err := service.LoginUser(testEmail, testPassword)
	assert.True(t, errors.Is(err, ErrAdminNotConfigured))
}

func TestService_ValidateToken(t *testing.T) {
	t.Run("Token expirado", func(t *testing.T) {
		service := newTestService(t)
		token, err := service.LoginUser(testEmail, testPassword)
		require.NoError(t, err)

		service.now = func() time.Time { return time.Now().Add(25 * time.Hour) }

		_, err = service.ValidateToken(token)
		assert.True(t, errors.Is(err, ErrExpiredToken))
	})

	t.Run("Assinatura com outro segredo", func(t *testing.T) {
		service := newTestService(t)
		claims := domain.Claims{UserEmail: testEmail, UserRole: domain.RoleAdmin}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("outro"))
		require.NoError(t, err)

		_, err = service.ValidateToken(token)
		assert.True(t, errors.Is(err, ErrInvalidToken))
	})

	t.Run("Token malformado", func(t *testing.T) {
		service := newTestService(t)
		_, err := service.ValidateToken("nao.e.token")
		assert.True(t, IsAuthorizationError(err))
	})
}
