//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"table-concierge/internal/domain/tier"
	"table-concierge/internal/handler/api"
	resdto "table-concierge/internal/handler/dto/response"
	"table-concierge/tests/common/httptest"
	accessmock "table-concierge/tests/mock/access"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestSubscriptionHandler_GetMine(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	gate := accessmock.NewMockGate(ctrl)
	handler := api.NewSubscriptionHandler(gate)

	router := gin.New()
	router.GET("/api/me/subscription", func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			c.Set("user_id", "acc-1")
		}
		handler.GetMine(c)
	})

	t.Run("resolves features and limits from the tier tables", func(t *testing.T) {
		gate.EXPECT().Subscription(gomock.Any(), "acc-1").Return(tier.Subscription{
			UserID:         "acc-1",
			Tier:           tier.Starter,
			Status:         tier.StatusActive,
			LimitOverrides: map[tier.LimitID]int{tier.LimitQueueLocations: 3},
		})

		rec := httptest.PerformRequest(t, router, http.MethodGet, "/api/me/subscription", nil, "token")

		var response resdto.SubscriptionResponse
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &response)
		assert.Equal(t, "starter", response.Tier)
		assert.True(t, response.Features[tier.FeatureQueueAnalytics])
		assert.False(t, response.Features[tier.FeatureMultiLocation])
		assert.Equal(t, 100, response.Limits[tier.LimitQueueEntriesPerDay])
		assert.Equal(t, 3, response.Limits[tier.LimitQueueLocations])
	})

	t.Run("enterprise limits are unlimited", func(t *testing.T) {
		gate.EXPECT().Subscription(gomock.Any(), "acc-1").Return(tier.Subscription{Tier: tier.Enterprise, Status: tier.StatusActive})

		rec := httptest.PerformRequest(t, router, http.MethodGet, "/api/me/subscription", nil, "token")

		var response resdto.SubscriptionResponse
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &response)
		assert.Equal(t, -1, response.Limits[tier.LimitQueueEntriesPerDay])
		assert.True(t, response.Features[tier.FeatureAPIAccess])
	})

	t.Run("401 without a caller", func(t *testing.T) {
		rec := httptest.PerformRequest(t, router, http.MethodGet, "/api/me/subscription", nil, "")
		httptest.AssertErrorResponse(t, rec, http.StatusUnauthorized, "")
	})
}
