// Package leaktest checks that code under test stops the goroutines it starts.
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

const (
	settleTimeout = 2 * time.Second
	pollInterval  = 10 * time.Millisecond
	maxStackDump  = 16 << 10
)

// GoroutineChecker compares the goroutine count against a baseline taken
// at construction
type GoroutineChecker struct {
	t        testing.TB
	baseline int
}

// NewGoroutineChecker records the baseline once the count stops moving
func NewGoroutineChecker(t testing.TB) *GoroutineChecker {
	t.Helper()
	return &GoroutineChecker{t: t, baseline: settledCount()}
}

// Baseline is the count recorded at construction
func (g *GoroutineChecker) Baseline() int {
	return g.baseline
}

// Check polls until at most baseline+tolerance goroutines remain and fails
// the test with a stack dump if they never do
func (g *GoroutineChecker) Check(tolerance int) {
	g.t.Helper()

	limit := g.baseline + tolerance
	if n := waitAtMost(limit, settleTimeout); n > limit {
		g.t.Errorf("goroutine leak: %d running, baseline %d, tolerance %d\n%s",
			n, g.baseline, tolerance, stacks())
	}
}

// Run checks that fn leaves no goroutines behind
func Run(t testing.TB, fn func()) {
	t.Helper()

	c := NewGoroutineChecker(t)
	fn()
	c.Check(0)
}

// settledCount waits for two consecutive equal readings
func settledCount() int {
	prev := runtime.NumGoroutine()
	deadline := time.Now().Add(settleTimeout)
	for time.Now().Before(deadline) {
		time.Sleep(pollInterval)
		n := runtime.NumGoroutine()
		if n == prev {
			return n
		}
		prev = n
	}
	return prev
}

func waitAtMost(limit int, timeout time.Duration) int {
	deadline := time.Now().Add(timeout)
	for {
		n := runtime.NumGoroutine()
		if n <= limit || time.Now().After(deadline) {
			return n
		}
		runtime.Gosched()
		time.Sleep(pollInterval)
	}
}

func stacks() string {
	buf := make([]byte, maxStackDump)
	return string(buf[:runtime.Stack(buf, true)])
}
