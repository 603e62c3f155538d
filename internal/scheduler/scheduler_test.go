package scheduler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prabalesh/proclog/internal/models"
)

type fakeCollector struct {
	mu          sync.Mutex
	scans       int
	delay       time.Duration
	inFlight    int
	maxInFlight int
}

func (f *fakeCollector) Scan(ctx context.Context) models.ScanResult {
	f.mu.Lock()
	f.inFlight++
	if f.inFlight > f.maxInFlight {
		f.maxInFlight = f.inFlight
	}
	f.mu.Unlock()

	if f.delay > 0 {
		time.Sleep(f.delay)
	}

	f.mu.Lock()
	f.inFlight--
	f.scans++
	f.mu.Unlock()

	return models.ScanResult{
		Processes: []models.Process{{PID: 1, Name: "systemd", User: "root"}},
		Total:     1,
		ScannedAt: time.Now(),
	}
}

func (f *fakeCollector) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.scans
}

func (f *fakeCollector) maxConcurrent() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.maxInFlight
}

type fakeWriter struct {
	mu     sync.Mutex
	writes []time.Time
	err    error
}

func (f *fakeWriter) WriteSnapshot(result models.ScanResult) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes = append(f.writes, time.Now())
	if f.err != nil {
		return "", f.err
	}
	return fmt.Sprintf("logs/process_log_%d.log", len(f.writes)), nil
}

func (f *fakeWriter) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.writes)
}

func TestRunWaitsOneFullIntervalBeforeFirstWrite(t *testing.T) {
	c := &fakeCollector{}
	w := &fakeWriter{}
	var out bytes.Buffer

	s := New(c, w, 100*time.Millisecond, &out)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, 0, w.count(), "no write should happen before the interval elapses")

	time.Sleep(250 * time.Millisecond)
	assert.GreaterOrEqual(t, w.count(), 1)

	cancel()
	require.NoError(t, <-done)

	assert.Equal(t, w.count(), c.count(), "every write is preceded by exactly one scan")
}

func TestRunStopsCleanlyOnCancel(t *testing.T) {
	c := &fakeCollector{}
	w := &fakeWriter{}
	var out bytes.Buffer

	s := New(c, w, time.Hour, &out)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after context cancellation")
	}

	assert.Equal(t, 0, w.count())
}

func TestRunReportsCreatedFiles(t *testing.T) {
	c := &fakeCollector{}
	w := &fakeWriter{}
	var out bytes.Buffer

	s := New(c, w, 50*time.Millisecond, &out)

	ctx, cancel := context.WithTimeout(context.Background(), 180*time.Millisecond)
	defer cancel()

	require.NoError(t, s.Run(ctx))
	require.GreaterOrEqual(t, w.count(), 1)
	assert.Contains(t, out.String(), "[+] Log created: logs/process_log_1.log")
}

func TestRunCyclesNeverOverlap(t *testing.T) {
	// Each cycle takes well over two intervals; overlapping triggers must
	// be dropped, not stacked.
	c := &fakeCollector{delay: 120 * time.Millisecond}
	w := &fakeWriter{}
	var out bytes.Buffer

	s := New(c, w, 50*time.Millisecond, &out)

	ctx, cancel := context.WithTimeout(context.Background(), 400*time.Millisecond)
	defer cancel()

	require.NoError(t, s.Run(ctx))

	require.GreaterOrEqual(t, c.count(), 1)
	assert.Equal(t, 1, c.maxConcurrent(), "cycles must run one at a time")
	assert.Equal(t, c.count(), w.count(), "every started cycle runs to completion")
}

func TestRunKeepsGoingAfterFailedCycle(t *testing.T) {
	c := &fakeCollector{}
	w := &fakeWriter{err: errors.New("mkdir logs: permission denied")}
	var out bytes.Buffer

	s := New(c, w, 50*time.Millisecond, &out)

	ctx, cancel := context.WithTimeout(context.Background(), 250*time.Millisecond)
	defer cancel()

	require.NoError(t, s.Run(ctx))

	assert.GreaterOrEqual(t, w.count(), 2, "a failed cycle should not stop the loop")
	assert.Contains(t, out.String(), "[!] Log write failed: mkdir logs: permission denied")
}
