// ============================================================================
// promokit - Custodiet promo media tooling
// ============================================================================
//
// Package:     health
// Description: Preflight checks for the tools and inputs a run depends on
// Author:      Mike Stoffels
// Created:     2026-10-12
// License:     MIT
// ============================================================================

package health

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// Status represents the outcome of a check
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
	StatusDegraded  Status = "degraded"
	StatusUnknown   Status = "unknown"
)

// CheckResult represents the result of a check
type CheckResult struct {
	Name      string                 `json:"name"`
	Status    Status                 `json:"status"`
	Message   string                 `json:"message"`
	Duration  time.Duration          `json:"duration"`
	Timestamp time.Time              `json:"timestamp"`
	Details   map[string]interface{} `json:"details,omitempty"`
}

// Checker is an interface for checks
type Checker interface {
	Name() string
	Check(ctx context.Context) CheckResult
}

// NamedCheckFunc wraps a check function with a name
type NamedCheckFunc struct {
	name string
	fn   func(ctx context.Context) CheckResult
}

// NewChecker creates a named checker from a function
func NewChecker(name string, fn func(ctx context.Context) CheckResult) Checker {
	return &NamedCheckFunc{name: name, fn: fn}
}

// Name returns the checker name
func (c *NamedCheckFunc) Name() string {
	return c.name
}

// Check runs the check
func (c *NamedCheckFunc) Check(ctx context.Context) CheckResult {
	return c.fn(ctx)
}

// Registry manages multiple checkers
type Registry struct {
	mu       sync.RWMutex
	checkers map[string]Checker
	service  string
	version  string
}

// NewRegistry creates a new registry
func NewRegistry(service, version string) *Registry {
	return &Registry{
		checkers: make(map[string]Checker),
		service:  service,
		version:  version,
	}
}

// Register adds a checker to the registry, replacing one with the same name
func (r *Registry) Register(checker Checker) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checkers[checker.Name()] = checker
}

// Check runs all checks concurrently. Results are sorted by name.
func (r *Registry) Check(ctx context.Context) *Report {
	r.mu.RLock()
	defer r.mu.RUnlock()

	report := &Report{
		Service:   r.service,
		Version:   r.version,
		Timestamp: time.Now(),
		Checks:    make([]CheckResult, 0, len(r.checkers)),
	}

	var wg sync.WaitGroup
	results := make(chan CheckResult, len(r.checkers))

	for _, checker := range r.checkers {
		wg.Add(1)
		go func(c Checker) {
			defer wg.Done()
			start := time.Now()
			result := c.Check(ctx)
			result.Duration = time.Since(start)
			result.Timestamp = time.Now()
			if result.Name == "" {
				result.Name = c.Name()
			}
			results <- result
		}(checker)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	overallStatus := StatusHealthy
	for result := range results {
		report.Checks = append(report.Checks, result)
		switch result.Status {
		case StatusUnhealthy:
			overallStatus = StatusUnhealthy
		case StatusDegraded, StatusUnknown:
			if overallStatus != StatusUnhealthy {
				overallStatus = StatusDegraded
			}
		}
	}

	sort.Slice(report.Checks, func(i, j int) bool {
		return report.Checks[i].Name < report.Checks[j].Name
	})
	report.Status = overallStatus
	return report
}

// Report represents the overall preflight report
type Report struct {
	Service   string        `json:"service"`
	Version   string        `json:"version"`
	Status    Status        `json:"status"`
	Timestamp time.Time     `json:"timestamp"`
	Checks    []CheckResult `json:"checks"`
}

// Healthy reports whether no check failed outright
func (r *Report) Healthy() bool {
	return r.Status != StatusUnhealthy
}

// String returns a string representation of the report
func (r *Report) String() string {
	return fmt.Sprintf("Service: %s, Status: %s, Checks: %d", r.Service, r.Status, len(r.Checks))
}

// Common checks

// BinaryCheck looks up an executable on PATH
func BinaryCheck(name, binary string) Checker {
	return NewChecker(name, func(ctx context.Context) CheckResult {
		path, err := exec.LookPath(binary)
		if err != nil {
			return CheckResult{
				Name:    name,
				Status:  StatusUnhealthy,
				Message: fmt.Sprintf("%s not found: %v", binary, err),
				Details: map[string]interface{}{"binary": binary},
			}
		}
		return CheckResult{
			Name:    name,
			Status:  StatusHealthy,
			Message: path,
			Details: map[string]interface{}{"binary": binary, "path": path},
		}
	})
}

// FileCheck requires a regular file. A missing file reports ifMissing, so
// inputs produced by an earlier step can be degraded instead of fatal.
func FileCheck(name, path string, ifMissing Status) Checker {
	return NewChecker(name, func(ctx context.Context) CheckResult {
		result := CheckResult{Name: name, Details: map[string]interface{}{"path": path}}

		info, err := os.Stat(path)
		switch {
		case err != nil:
			result.Status = ifMissing
			result.Message = fmt.Sprintf("%s is missing", path)
		case info.IsDir():
			result.Status = StatusUnhealthy
			result.Message = fmt.Sprintf("%s is a directory", path)
		default:
			result.Status = StatusHealthy
			result.Message = fmt.Sprintf("%s (%d bytes)", path, info.Size())
		}
		return result
	})
}

// GlobCheck counts the files in dir matching any of patterns
func GlobCheck(name, dir string, patterns []string) Checker {
	return NewChecker(name, func(ctx context.Context) CheckResult {
		result := CheckResult{
			Name:    name,
			Details: map[string]interface{}{"dir": dir, "patterns": patterns},
		}

		count := 0
		for _, pattern := range patterns {
			matches, err := filepath.Glob(filepath.Join(dir, pattern))
			if err != nil {
				result.Status = StatusUnhealthy
				result.Message = fmt.Sprintf("invalid pattern %q", pattern)
				return result
			}
			count += len(matches)
		}

		result.Details["matches"] = count
		if count == 0 {
			result.Status = StatusUnhealthy
			result.Message = fmt.Sprintf("no files in %s match %v", dir, patterns)
			return result
		}
		result.Status = StatusHealthy
		result.Message = fmt.Sprintf("%d files", count)
		return result
	})
}

// HTTPCheck reports whether an endpoint answers at all. Any HTTP response
// counts as reachable; transport failures degrade.
func HTTPCheck(name, url string, client *http.Client) Checker {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	return NewChecker(name, func(ctx context.Context) CheckResult {
		result := CheckResult{Name: name, Details: map[string]interface{}{"url": url}}

		req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
		if err != nil {
			result.Status = StatusUnhealthy
			result.Message = err.Error()
			return result
		}
		resp, err := client.Do(req)
		if err != nil {
			result.Status = StatusDegraded
			result.Message = err.Error()
			return result
		}
		resp.Body.Close()

		result.Status = StatusHealthy
		result.Message = resp.Status
		result.Details["status_code"] = resp.StatusCode
		return result
	})
}
