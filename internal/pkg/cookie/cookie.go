package cookie

import (
	"net/http"
	"time"

	"table-concierge/internal/pkg/config"

	"github.com/gin-gonic/gin"
)

const AccessTokenCookieName = "access_token"

// SetAccessToken stores the admin token as an HttpOnly cookie that expires
// together with the token.
func SetAccessToken(c *gin.Context, cfg config.CookieConfig, token string, expiresAt time.Time, now time.Time) {
	maxAge := int(expiresAt.Sub(now).Seconds())
	if maxAge <= 0 {
		maxAge = -1
	}
	c.SetSameSite(getSameSite(cfg.SameSite))
	c.SetCookie(AccessTokenCookieName, token, maxAge, "/", cfg.Domain, cfg.Secure, true)
}

func ClearAccessToken(c *gin.Context, cfg config.CookieConfig) {
	c.SetSameSite(getSameSite(cfg.SameSite))
	c.SetCookie(AccessTokenCookieName, "", -1, "/", cfg.Domain, cfg.Secure, true)
}

func GetAccessToken(c *gin.Context) string {
	token, _ := c.Cookie(AccessTokenCookieName)
	return token
}

func getSameSite(sameSite string) http.SameSite {
	switch sameSite {
	case "Strict":
		return http.SameSiteStrictMode
	case "None":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
