//go:build unit

package textnorm_test

import (
	"testing"

	"table-concierge/internal/pkg/textnorm"

	"github.com/stretchr/testify/assert"
)

func TestSlug(t *testing.T) {
	assert.Equal(t, "ocean-basket-sandton", textnorm.Slug("  Ocean Basket (Sandton) "))
	assert.Equal(t, "", textnorm.Slug("!!!"))
	assert.Equal(t, "東京店", textnorm.Slug(" 東京店 "))
	assert.Equal(t, "café-del-mar", textnorm.Slug("Café del Mar!"))
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Ocean Basket Sandton", textnorm.DisplayName("ocean-basket_sandton"))
	assert.Equal(t, "", textnorm.DisplayName(" - "))
}

func TestCommand(t *testing.T) {
	assert.Equal(t, "join queue", textnorm.Command("  JOIN Queue\n"))
}
