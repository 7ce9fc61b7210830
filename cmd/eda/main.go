// Package main provides the CLI entry point for eda, exploratory data
// analysis over delimited student records.
//
// Usage:
//
//	eda report student-mat.csv             # Full report plus charts
//	eda report data.csv --format json      # Report as JSON
//	eda describe data.csv                  # Descriptive statistics
//	eda groupmean data.csv sex G3          # Mean of G3 per sex
//	eda corr data.csv --target G3          # Correlation ranking
//	eda explore data.csv                   # Interactive shell
//	eda config init                        # Write default eda.yaml
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/akhildatla/eda/internal/logger"
)

// Version info set by GoReleaser via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	loadDotEnv()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// loadDotEnv reads .env from the working directory. A missing file is not
// an error; a malformed one is reported and skipped.
func loadDotEnv() {
	err := godotenv.Load()
	switch {
	case err == nil:
		logger.Debug("loaded .env")
	case !errors.Is(err, fs.ErrNotExist):
		logger.Warn("ignoring .env", zap.Error(err))
	}
}
