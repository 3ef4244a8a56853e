package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"cafepos/internal/config"
)

var rootCmd = &cobra.Command{
	Use:          "cafepos",
	Short:        "Point of sale for a cafeteria counter",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "sqlite DSN (overrides DB_DSN)")
	rootCmd.PersistentFlags().String("checkout-mode", "", "best-effort|atomic (overrides CHECKOUT_MODE)")
	_ = viper.BindPFlag("db", rootCmd.PersistentFlags().Lookup("db"))
	_ = viper.BindPFlag("checkout-mode", rootCmd.PersistentFlags().Lookup("checkout-mode"))

	rootCmd.AddCommand(serveCmd, closeoutCmd, useraddCmd)
}

// loadConfig reads the environment and lets command-line flags win.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}
	if v := viper.GetString("db"); v != "" {
		cfg.DBDSN = v
	}
	if v := viper.GetString("port"); v != "" {
		cfg.Port = v
	}
	if v := viper.GetString("templates"); v != "" {
		cfg.TemplatesDir = v
	}
	if v := viper.GetString("checkout-mode"); v != "" {
		if err := cfg.SetCheckoutMode(v); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}
