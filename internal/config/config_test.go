package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cafepos/internal/checkout"
	"cafepos/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	for _, k := range []string{"PORT", "DB_DSN", "LOG_FILE", "TEMPLATES_DIR", "CHECKOUT_MODE", "DEMO_SALES"} {
		t.Setenv(k, "")
	}

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "cafepos.db", cfg.DBDSN)
	assert.Equal(t, checkout.ModeBestEffort, cfg.CheckoutMode)
	assert.False(t, cfg.DemoSales)
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	for _, k := range []string{"PORT", "DB_DSN", "CHECKOUT_MODE", "DEMO_SALES"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PORT=9090\nCHECKOUT_MODE=atomic\nDEMO_SALES=true\n"), 0o644))

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, checkout.ModeAtomic, cfg.CheckoutMode)
	assert.True(t, cfg.DemoSales)
}

func TestLoadRejectsUnknownMode(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("CHECKOUT_MODE", "sometimes")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestSetCheckoutMode(t *testing.T) {
	var cfg config.Config
	require.NoError(t, cfg.SetCheckoutMode("atomic"))
	assert.Equal(t, checkout.ModeAtomic, cfg.CheckoutMode)
	require.NoError(t, cfg.SetCheckoutMode(""))
	assert.Equal(t, checkout.ModeBestEffort, cfg.CheckoutMode)
	assert.Error(t, cfg.SetCheckoutMode("yolo"))
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains: it changes
// the working directory and restores the previous one when the test ends.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
