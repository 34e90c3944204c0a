package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/okian/webbasics/internal/smoke"
	"github.com/okian/webbasics/pkg/logger"
)

// Default configuration constants.
const (
	defaultPairs       = 50
	defaultWorkers     = 2 // multiplier for runtime.NumCPU()
	defaultTimeout     = 10 * time.Second
	defaultTestTimeout = 5 * time.Minute
)

func main() {
	var (
		baseURL   = flag.String("url", "http://localhost:5000", "Base URL of the service")
		pairs     = flag.Int("pairs", defaultPairs, "Number of random credential pairs echoed per form route")
		workers   = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout   = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		logFormat = flag.String("log-format", "text", "Log format (text or json)")
		verbose   = flag.Bool("verbose", false, "Log passing checks too")
	)
	flag.Parse()

	if err := logger.Init(logger.WithFormat(*logFormat)); err != nil {
		fmt.Fprintln(os.Stderr, "failed to setup logging:", err)
		os.Exit(2)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), defaultTestTimeout)
	defer cancel()

	config := &smoke.Config{
		BaseURL: *baseURL,
		Pairs:   *pairs,
		Workers: *workers,
		Timeout: *timeout,
		Verbose: *verbose,
	}

	if _, err := smoke.Run(ctx, config); err != nil {
		fmt.Fprintln(os.Stderr, "smoke run failed:", err)
		os.Exit(1)
	}
}
