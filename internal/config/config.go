package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"cafepos/internal/checkout"
)

type Config struct {
	Port         string
	DBDSN        string
	LogFile      string
	TemplatesDir string
	CheckoutMode checkout.Mode
	DemoSales    bool
}

// Load reads the environment, after an optional .env file in the working
// directory. Variables already set in the environment win over .env.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[config] .env ignored: %v", err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "cafepos.db"
	} // sqlite file in working dir
	tmpl := os.Getenv("TEMPLATES_DIR")
	if tmpl == "" {
		tmpl = "./web/templates"
	}
	demo := false
	if v := os.Getenv("DEMO_SALES"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("DEMO_SALES must be a boolean: %w", err)
		}
		demo = b
	}

	cfg := Config{
		Port:         port,
		DBDSN:        dsn,
		LogFile:      os.Getenv("LOG_FILE"),
		TemplatesDir: tmpl,
		DemoSales:    demo,
	}
	if err := cfg.SetCheckoutMode(os.Getenv("CHECKOUT_MODE")); err != nil {
		return Config{}, err
	}
	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s CHECKOUT_MODE=%s DEMO_SALES=%t",
		cfg.Port, cfg.DBDSN, cfg.LogFile, cfg.CheckoutMode, cfg.DemoSales)
	return cfg, nil
}

// SetCheckoutMode parses s into CheckoutMode; empty means best-effort.
func (c *Config) SetCheckoutMode(s string) error {
	mode, ok := checkout.ParseMode(s)
	if !ok {
		return fmt.Errorf("CHECKOUT_MODE must be %q or %q, got %q", checkout.ModeBestEffort, checkout.ModeAtomic, s)
	}
	c.CheckoutMode = mode
	return nil
}
