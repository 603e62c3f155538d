package collector

import (
	"context"

	"github.com/shirou/gopsutil/v4/mem"

	"github.com/prabalesh/proclog/internal/models"
)

// SystemMemory reports overall memory usage for the watch view header.
func (c *ProcessCollector) SystemMemory(ctx context.Context) models.MemoryStats {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil || vm == nil {
		return models.MemoryStats{}
	}

	return models.MemoryStats{
		Total:        vm.Total,
		Used:         vm.Used,
		Available:    vm.Available,
		UsagePercent: vm.UsedPercent,
	}
}
