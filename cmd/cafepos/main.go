package main

import (
	"os"

	applog "cafepos/internal/log"
)

func main() {
	err := rootCmd.Execute()
	_ = applog.Sync()
	if err != nil {
		os.Exit(1)
	}
}
