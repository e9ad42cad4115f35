//go:build unit || integration

package authtest

import (
	"net/http"
	"testing"

	"table-concierge/internal/domain/user"
	"table-concierge/internal/handler/dto/request"
	"table-concierge/internal/pkg/cookie"
	"table-concierge/internal/usecase/shared"
	"table-concierge/tests/common/dbtest"
	"table-concierge/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// LoginUser signs in through the API and returns the access token cookie value.
func LoginUser(t *testing.T, router *gin.Engine, email, password string) string {
	t.Helper()

	w := httptest.PerformRequest(t, router, http.MethodPost, "/api/auth/login",
		request.LoginRequest{Email: email, Password: password}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	accessCookie := httptest.ExtractCookie(w, cookie.AccessTokenCookieName)
	require.NotNil(t, accessCookie, "access token cookie missing")
	require.NotEmpty(t, accessCookie.Value, "access token cookie is empty")

	return accessCookie.Value
}

// CreateAndLogin seeds an active account and returns its user ID and token.
func CreateAndLogin(t *testing.T, s shared.Store, router *gin.Engine, email string, role user.Role) (string, string) {
	t.Helper()
	userID := dbtest.CreateLoginAccount(t, s, email, role, user.AccountActive)
	return userID, LoginUser(t, router, email, dbtest.TestPassword)
}

func LogoutUser(t *testing.T, router *gin.Engine, cookies []*http.Cookie) {
	t.Helper()

	w := httptest.PerformRequestWithCookies(t, router, http.MethodPost, "/api/auth/logout", nil, cookies, "")
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
}
