package logwriter

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prabalesh/proclog/internal/models"
)

const (
	filePrefix    = "process_log_"
	fileExt       = ".log"
	stampLayout   = "20060102_150405"
	border        = "--------------------------------------------------------------------------------"
	maxNameSuffix = 1000
)

// Writer creates one snapshot file per call inside Dir. Existing files are
// never appended to or overwritten; a same-second collision gets a numeric
// suffix instead.
type Writer struct {
	Dir string

	now      func() time.Time
	openFile func(path string) (*os.File, error)
}

func NewWriter(dir string) *Writer {
	return &Writer{
		Dir: dir,
		now: time.Now,
		openFile: func(path string) (*os.File, error) {
			return os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		},
	}
}

// WriteSnapshot renders the scan result and writes it to a new timestamped
// file, creating the target directory if needed. It returns the path of the
// created file. The content is rendered fully in memory first, so an
// interrupted run never leaves a half-written log behind.
func (w *Writer) WriteSnapshot(result models.ScanResult) (string, error) {
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return "", fmt.Errorf("creating log directory %q: %w", w.Dir, err)
	}

	content := w.render(result)

	path, f, err := w.createFile()
	if err != nil {
		return "", err
	}

	if _, err := f.Write(content); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("writing %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing %q: %w", path, err)
	}

	return path, nil
}

// FileName returns the snapshot file name for the given timestamp. Names sort
// lexicographically in chronological order.
func FileName(t time.Time) string {
	return filePrefix + t.Format(stampLayout) + fileExt
}

func (w *Writer) render(result models.ScanResult) []byte {
	var buf bytes.Buffer

	buf.WriteString(border + "\n")
	buf.WriteString("            System Process Log\n")
	fmt.Fprintf(&buf, "    Log created at : %s\n", w.now().Format(time.ANSIC))
	buf.WriteString(border + "\n\n")

	for _, proc := range result.Processes {
		fmt.Fprintf(&buf, "PID: %-8d Name: %-25s User: %-15s Memory: %.2f MB\n",
			proc.PID, proc.Name, proc.User, proc.MemoryMB())
	}

	buf.WriteString("\n" + border + "\n")

	return buf.Bytes()
}

// createFile opens a fresh file under Dir, disambiguating same-second
// collisions with a counter suffix (process_log_..._1.log and so on).
func (w *Writer) createFile() (string, *os.File, error) {
	base := filePrefix + w.now().Format(stampLayout)

	for i := 0; i < maxNameSuffix; i++ {
		name := base + fileExt
		if i > 0 {
			name = fmt.Sprintf("%s_%d%s", base, i, fileExt)
		}
		path := filepath.Join(w.Dir, name)

		f, err := w.openFile(path)
		if err == nil {
			return path, f, nil
		}
		if !os.IsExist(err) {
			return "", nil, fmt.Errorf("creating %q: %w", path, err)
		}
	}

	return "", nil, fmt.Errorf("too many log files for timestamp %s in %q", base, w.Dir)
}
