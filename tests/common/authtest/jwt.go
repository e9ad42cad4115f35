//go:build unit || integration

package authtest

import (
	"testing"
	"time"

	"table-concierge/internal/domain/user"
	"table-concierge/internal/pkg/config"
	"table-concierge/internal/pkg/jwt"

	"github.com/stretchr/testify/require"
)

// JWTHelper mints tokens signed with the same secret the app under test uses.
type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) GenerateToken(t *testing.T, userID string, role user.Role) string {
	t.Helper()
	duration, err := time.ParseDuration(h.cfg.Duration)
	require.NoError(t, err)
	token, _, err := jwt.NewService(h.cfg.Secret, duration).GenerateToken(userID, role)
	require.NoError(t, err)
	return token
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, userID string, role user.Role) string {
	t.Helper()
	token, _, err := jwt.NewService(h.cfg.Secret, -time.Minute).GenerateToken(userID, role)
	require.NoError(t, err)
	return token
}
