package leaktest

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// recordingTB captures failures instead of failing the real test
type recordingTB struct {
	testing.TB
	errors []string
}

func (r *recordingTB) Helper() {}

func (r *recordingTB) Errorf(format string, args ...any) {
	r.errors = append(r.errors, fmt.Sprintf(format, args...))
}

func TestCheck_PassesWhenGoroutinesExit(t *testing.T) {
	rec := &recordingTB{TB: t}
	c := NewGoroutineChecker(rec)

	done := make(chan struct{})
	for i := 0; i < 5; i++ {
		go func() { <-done }()
	}
	close(done)

	c.Check(0)
	assert.Empty(t, rec.errors)
}

func TestCheck_ReportsLeak(t *testing.T) {
	rec := &recordingTB{TB: t}
	c := NewGoroutineChecker(rec)

	stop := make(chan struct{})
	defer close(stop)
	go func() { <-stop }()

	c.Check(0)
	if assert.Len(t, rec.errors, 1) {
		assert.Contains(t, rec.errors[0], "goroutine leak")
		assert.Contains(t, rec.errors[0], "goroutine ")
	}
}

func TestCheck_Tolerance(t *testing.T) {
	rec := &recordingTB{TB: t}
	c := NewGoroutineChecker(rec)

	stop := make(chan struct{})
	defer close(stop)
	go func() { <-stop }()

	c.Check(1)
	assert.Empty(t, rec.errors)
}

func TestRun_WaitsForSlowExit(t *testing.T) {
	rec := &recordingTB{TB: t}

	Run(rec, func() {
		go func() { time.Sleep(100 * time.Millisecond) }()
	})

	assert.Empty(t, rec.errors)
}
