package smoke

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/okian/webbasics/pkg/logger"
)

// ErrChecksFailed is returned when at least one check did not pass.
var ErrChecksFailed = errors.New("smoke checks failed")

// Run executes every check against config.BaseURL and returns the statistics.
func Run(ctx context.Context, config *Config) (*Stats, error) {
	log := logger.Get()
	stats := &Stats{StartTime: time.Now()}
	base := strings.TrimRight(config.BaseURL, "/")

	log.Info(ctx, "starting smoke run",
		logger.String("baseURL", base),
		logger.Int("pairs", config.Pairs),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()),
		logger.Any("verbose", config.Verbose))

	client := newHTTPClient(config.Timeout)
	if err := checkServiceHealth(ctx, client, base); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}

	checks := fixedChecks()
	for _, cred := range generateCredentials(config.Pairs) {
		checks = append(checks, echoChecks(cred)...)
	}

	runChecks(ctx, client, base, checks, config, stats)

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	log.Info(ctx, "smoke run finished",
		logger.Int("run", stats.ChecksRun),
		logger.Int("passed", stats.ChecksPassed),
		logger.Int("failed", stats.ChecksFailed),
		logger.String("duration", stats.Duration.String()))

	if stats.ChecksFailed > 0 {
		return stats, fmt.Errorf("%w: %d of %d", ErrChecksFailed, stats.ChecksFailed, stats.ChecksRun)
	}
	return stats, nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, client *HTTPClient, base string) error {
	r, err := client.Get(ctx, base+"/healthz")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	if r.status != http.StatusOK {
		return fmt.Errorf("service health check failed with status: %d", r.status)
	}
	return nil
}

// runChecks fans the checks out over a worker pool.
func runChecks(ctx context.Context, client *HTTPClient, base string, checks []check, config *Config, stats *Stats) {
	log := logger.Get()
	workers := config.Workers
	if workers < 1 {
		workers = 1
	}

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	jobs := make(chan check, workers*WorkerChannelMultiplier)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for c := range jobs {
				err := c.run(ctx, client, base)

				mu.Lock()
				stats.ChecksRun++
				if err != nil {
					stats.ChecksFailed++
				} else {
					stats.ChecksPassed++
				}
				mu.Unlock()

				switch {
				case err != nil:
					log.Error(ctx, "check failed", logger.String("check", c.name), logger.Error(err))
				case config.Verbose:
					log.Info(ctx, "check passed", logger.String("check", c.name))
				}
			}
		}()
	}

	for _, c := range checks {
		select {
		case <-ctx.Done():
		case jobs <- c:
			continue
		}
		break
	}
	close(jobs)
	wg.Wait()
}
