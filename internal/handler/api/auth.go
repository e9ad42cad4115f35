package api

import (
	"errors"
	"net/http"

	reqdto "table-concierge/internal/handler/dto/request"
	resdto "table-concierge/internal/handler/dto/response"
	"table-concierge/internal/handler/httperr"
	"table-concierge/internal/pkg/clock"
	"table-concierge/internal/pkg/config"
	"table-concierge/internal/pkg/cookie"
	"table-concierge/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authCommands commands.AuthCommands
	cookieCfg    config.CookieConfig
	clock        clock.Clock
}

func NewAuthHandler(authCommands commands.AuthCommands, cfg config.Config, clk clock.Clock) *AuthHandler {
	return &AuthHandler{
		authCommands: authCommands,
		cookieCfg:    cfg.Cookie,
		clock:        clk,
	}
}

// @Summary Subscriber login
// @Description Login with email and password; the token is returned and set as an HttpOnly cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.LoginRequest true "Login request"
// @Success 200 {object} resdto.LoginResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	result, err := h.authCommands.Login(c.Request.Context(), req.ToCommand())
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidCredentials):
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid email or password", nil)
		case errors.Is(err, commands.ErrUserInactive):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Account is inactive", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	cookie.SetAccessToken(c, h.cookieCfg, result.AccessToken, result.ExpiresAt, h.clock.Now())
	c.JSON(http.StatusOK, resdto.FromLoginResult(result))
}

// @Summary Subscriber logout
// @Description Clears the token cookie; bearer tokens simply expire
// @Tags auth
// @Success 204 "No Content"
// @Router /api/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	cookie.ClearAccessToken(c, h.cookieCfg)
	c.Status(http.StatusNoContent)
}
