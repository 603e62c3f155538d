package scheduler

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/prabalesh/proclog/internal/models"
)

// Snapshotter produces one scan of the process table.
type Snapshotter interface {
	Scan(ctx context.Context) models.ScanResult
}

// SnapshotWriter persists one scan result and returns the created file path.
type SnapshotWriter interface {
	WriteSnapshot(result models.ScanResult) (string, error)
}

// Scheduler runs scan-and-write cycles on a fixed interval. Cycles never
// overlap: each one runs to completion before the next wait starts, and
// cancellation is only observed between cycles.
type Scheduler struct {
	collector Snapshotter
	writer    SnapshotWriter
	interval  time.Duration
	out       io.Writer
}

func New(collector Snapshotter, writer SnapshotWriter, interval time.Duration, out io.Writer) *Scheduler {
	return &Scheduler{
		collector: collector,
		writer:    writer,
		interval:  interval,
		out:       out,
	}
}

// Run blocks until ctx is cancelled. The first cycle fires one full interval
// after the call. A failed cycle is reported on the output writer and the
// schedule keeps going; it is not worth dying over one missed snapshot.
func (s *Scheduler) Run(ctx context.Context) error {
	// SkipIfStillRunning drops a trigger that lands while a cycle is in
	// flight, so cycles never overlap even when one overruns the interval.
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))

	if _, err := c.AddFunc(fmt.Sprintf("@every %s", s.interval), s.runCycle); err != nil {
		return fmt.Errorf("scheduling snapshot cycles: %w", err)
	}

	c.Start()
	<-ctx.Done()

	// Stop's context completes once the in-flight cycle (if any) has
	// finished, so shutdown never abandons a half-done scan or write.
	<-c.Stop().Done()
	return nil
}

func (s *Scheduler) runCycle() {
	// An in-flight cycle always finishes, even during shutdown, so the
	// scan gets a context that outlives the loop's.
	result := s.collector.Scan(context.Background())

	path, err := s.writer.WriteSnapshot(result)
	if err != nil {
		fmt.Fprintf(s.out, "[!] Log write failed: %v\n", err)
		return
	}

	fmt.Fprintf(s.out, "[+] Log created: %s\n", path)
}
