package collector

import (
	"context"
	"time"

	"github.com/shirou/gopsutil/v4/process"

	"github.com/prabalesh/proclog/internal/models"
)

// Scan enumerates every process visible to the current user. A process whose
// name or memory info cannot be read (exited, access denied, zombie) is
// dropped from the result and counted as skipped; a failed username lookup
// only leaves the User field empty. Enumeration order is preserved.
func (c *ProcessCollector) Scan(ctx context.Context) models.ScanResult {
	result := models.ScanResult{ScannedAt: time.Now()}

	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return result
	}

	result.Processes = make([]models.Process, 0, len(procs))
	for _, p := range procs {
		name, err := p.NameWithContext(ctx)
		if err != nil {
			result.Skipped++
			continue
		}

		memInfo, err := p.MemoryInfoWithContext(ctx)
		if err != nil || memInfo == nil {
			result.Skipped++
			continue
		}

		// Owner is best-effort: unreadable UID maps stay blank in the log.
		user, err := p.UsernameWithContext(ctx)
		if err != nil {
			user = ""
		}

		result.Processes = append(result.Processes, models.Process{
			PID:         int(p.Pid),
			Name:        name,
			User:        user,
			MemoryBytes: memInfo.VMS,
		})
	}

	result.Total = len(result.Processes)
	return result
}
