// Package observ measures the steps of a typemend run.
package observ

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"typemend/internal/logger"
)

// Step is one timed part of a run.
type Step struct {
	Name    string
	Started time.Time
	Elapsed time.Duration
	Note    string

	timer *Timer
}

// Stop records the elapsed time and a short note, and logs the step at
// debug level. Stopping twice keeps the first measurement.
func (s *Step) Stop(note string) {
	if s.Elapsed != 0 {
		return
	}
	s.Elapsed = s.timer.now().Sub(s.Started)
	if s.Elapsed == 0 {
		s.Elapsed = time.Nanosecond
	}
	s.Note = note
	logger.L().Debug("step finished",
		zap.String("step", s.Name),
		zap.Duration("elapsed", s.Elapsed),
		zap.String("note", note),
	)
}

// Timer collects the steps of one command in start order.
type Timer struct {
	steps []*Step
	now   func() time.Time
}

// NewTimer returns an empty Timer reading the wall clock.
func NewTimer() *Timer {
	return &Timer{steps: make([]*Step, 0, 4), now: time.Now}
}

// Start begins a step.
func (t *Timer) Start(name string) *Step {
	s := &Step{Name: name, Started: t.now(), timer: t}
	t.steps = append(t.steps, s)
	return s
}

// Steps returns the stopped steps.
func (t *Timer) Steps() []Step {
	out := make([]Step, 0, len(t.steps))
	for _, s := range t.steps {
		if s.Elapsed != 0 {
			out = append(out, *s)
		}
	}
	return out
}

// Total sums the elapsed time of every stopped step.
func (t *Timer) Total() time.Duration {
	var total time.Duration
	for _, s := range t.steps {
		total += s.Elapsed
	}
	return total
}

// Summary renders one line per stopped step plus the total, in milliseconds.
func (t *Timer) Summary() string {
	var b strings.Builder
	b.WriteString("timings:\n")
	for _, s := range t.Steps() {
		fmt.Fprintf(&b, "  %-10s %9.2f ms", s.Name, millis(s.Elapsed))
		if s.Note != "" {
			fmt.Fprintf(&b, "  (%s)", s.Note)
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "  %-10s %9.2f ms\n", "total", millis(t.Total()))
	return b.String()
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
