package models

import "time"

// Process is one row of a scan: the attributes the logger records for a
// single running process. User is empty when the owner could not be resolved.
type Process struct {
	PID         int    `json:"pid"`
	Name        string `json:"name"`
	User        string `json:"user"`
	MemoryBytes uint64 `json:"memory_bytes"`
}

// MemoryMB returns the virtual memory size in megabytes.
func (p Process) MemoryMB() float64 {
	return float64(p.MemoryBytes) / (1024 * 1024)
}

// ScanResult holds one pass over the process table. Processes keeps the
// enumeration order; Skipped counts entries that vanished or were unreadable
// during the pass.
type ScanResult struct {
	Processes []Process `json:"processes"`
	Total     int       `json:"total"`
	Skipped   int       `json:"skipped"`
	ScannedAt time.Time `json:"scanned_at"`
}
