package collector

// ProcessCollector produces process scans for the log writer and the
// interactive view. It holds no state between scans; every scan is a fresh
// pass over the process table.
type ProcessCollector struct{}

func NewProcessCollector() *ProcessCollector {
	return &ProcessCollector{}
}
