// Package main provides a standalone health check command for SmartMeal.
// It is meant for container health checks and monitoring scripts.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/smartmeal/planner/internal/infrastructure/config"
	"github.com/smartmeal/planner/pkg/healthcheck"
)

const (
	exitCodeSuccess = 0
	exitCodeFailure = 1
	exitCodeError   = 2
)

// Options holds command-line configuration
type Options struct {
	URL           string
	ConfigPath    string
	Timeout       time.Duration
	RetryCount    int
	RetryDelay    time.Duration
	AllowDegraded bool
	OutputFormat  string
}

// report mirrors the JSON written by the health endpoint
type report struct {
	Status  healthcheck.Status `json:"status"`
	Version string             `json:"version"`
	Checks  []struct {
		Name    string             `json:"name"`
		Status  healthcheck.Status `json:"status"`
		Message string             `json:"message"`
	} `json:"checks"`
}

func main() {
	opts := parseFlags()
	if opts.URL == "" {
		url, err := urlFromConfig(opts.ConfigPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
			os.Exit(exitCodeError)
		}
		opts.URL = url
	}
	os.Exit(run(opts, os.Stdout))
}

func parseFlags() Options {
	var opts Options
	flag.StringVar(&opts.URL, "url", os.Getenv("HEALTH_CHECK_URL"), "Health endpoint URL, derived from the configuration when empty")
	flag.StringVar(&opts.ConfigPath, "config", "", "Configuration file path")
	flag.DurationVar(&opts.Timeout, "timeout", 10*time.Second, "Request timeout")
	flag.IntVar(&opts.RetryCount, "retry", 0, "Number of retries on failure")
	flag.DurationVar(&opts.RetryDelay, "retry-delay", time.Second, "Delay between retries")
	flag.BoolVar(&opts.AllowDegraded, "allow-degraded", true, "Treat a degraded service as passing")
	flag.StringVar(&opts.OutputFormat, "format", "text", "Output format: text, json")
	flag.Parse()
	return opts
}

func urlFromConfig(path string) (string, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return "", err
	}
	host := cfg.Server.Host
	if host == "" || host == "0.0.0.0" {
		host = "127.0.0.1"
	}
	return fmt.Sprintf("http://%s:%d%s", host, cfg.Server.Port, cfg.Monitoring.HealthCheckPath), nil
}

// run queries the endpoint, retrying transport failures, and returns the
// process exit code
func run(opts Options, out io.Writer) int {
	client := &http.Client{Timeout: opts.Timeout}

	var lastErr error
	for attempt := 0; attempt <= opts.RetryCount; attempt++ {
		if attempt > 0 {
			time.Sleep(opts.RetryDelay)
		}

		resp, err := client.Get(opts.URL)
		if err != nil {
			lastErr = err
			continue
		}
		return handleResponse(resp, opts, out)
	}

	fmt.Fprintf(out, "Health check failed after %d attempts: %v\n", opts.RetryCount+1, lastErr)
	return exitCodeError
}

func handleResponse(resp *http.Response, opts Options, out io.Writer) int {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		fmt.Fprintf(out, "Failed to read response: %v\n", err)
		return exitCodeError
	}

	var r report
	if err := json.Unmarshal(body, &r); err != nil {
		fmt.Fprintf(out, "Unexpected response (HTTP %d): %s\n", resp.StatusCode, body)
		return exitCodeError
	}

	if opts.OutputFormat == "json" {
		fmt.Fprintln(out, string(body))
	} else {
		fmt.Fprintf(out, "%s (version %s)\n", r.Status, r.Version)
		for _, c := range r.Checks {
			line := fmt.Sprintf("  %-10s %s", c.Name, c.Status)
			if c.Message != "" {
				line += ": " + c.Message
			}
			fmt.Fprintln(out, line)
		}
	}

	switch r.Status {
	case healthcheck.StatusHealthy:
		return exitCodeSuccess
	case healthcheck.StatusDegraded:
		if opts.AllowDegraded {
			return exitCodeSuccess
		}
		return exitCodeFailure
	default:
		return exitCodeFailure
	}
}
