package bootstrap

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/edutech/internal/app/models"
	"github.com/yigit/edutech/internal/config"
)

func TestPlansUseConfiguredPrices(t *testing.T) {
	cfg, err := config.LoadConfig(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)

	cur, err := NewCurrency(cfg)
	require.NoError(t, err)
	assert.Equal(t, "INR", cur.Code())

	plans := Plans(cfg)
	require.Len(t, plans, 3)

	want := map[models.PlanType]string{
		models.PlanBasic:    "1499.00",
		models.PlanStandard: "2999.00",
		models.PlanPremium:  "5999.00",
	}
	for _, p := range plans {
		assert.Equal(t, want[p.Name], p.Price.StringFixed(2), p.Name)
	}
}

func TestBundledConfigLoads(t *testing.T) {
	cfg, err := config.LoadConfig(filepath.Join("..", "..", DefaultConfigPath))
	require.NoError(t, err)
	assert.Equal(t, "INR", cfg.Wallet.CurrencyCode)
	assert.Len(t, cfg.Subscription.Plans, 3)
}
