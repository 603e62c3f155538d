package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/prabalesh/proclog/internal/collector"
	"github.com/prabalesh/proclog/internal/models"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const refreshInterval = 2 * time.Second

type tickMsg time.Time

type scanMsg struct {
	result models.ScanResult
	memory models.MemoryStats
}

// App is the live view: the same scan the log writer records, refreshed on a
// short cadence and rendered as a scrollable table.
type App struct {
	collector *collector.ProcessCollector

	result models.ScanResult
	memory models.MemoryStats

	width       int
	height      int
	selectedRow int

	memProgress progress.Model
}

func NewApp() *App {
	return &App{
		collector:   collector.NewProcessCollector(),
		memProgress: progress.New(progress.WithDefaultGradient()),
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.refresh(),
		a.tick(),
	)
}

func (a *App) tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a *App) refresh() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		return scanMsg{
			result: a.collector.Scan(ctx),
			memory: a.collector.SystemMemory(ctx),
		}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.memProgress.Width = min(50, a.width-20)
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return a, tea.Quit
		case "up", "k":
			if a.selectedRow > 0 {
				a.selectedRow--
			}
		case "down", "j":
			if a.selectedRow < len(a.result.Processes)-1 {
				a.selectedRow++
			}
		case "home", "g":
			a.selectedRow = 0
		case "end", "G":
			a.selectedRow = max(0, len(a.result.Processes)-1)
		}

	case tickMsg:
		return a, tea.Batch(a.refresh(), a.tick())

	case scanMsg:
		a.result = msg.result
		a.memory = msg.memory
		if a.selectedRow >= len(a.result.Processes) {
			a.selectedRow = max(0, len(a.result.Processes)-1)
		}
	}

	return a, nil
}

func (a *App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	title := TitleStyle.Width(a.width).Render("ProcLog")

	memLine := fmt.Sprintf("%s %.1f%% (%.1f GB / %.1f GB)",
		LabelStyle.Render("Memory:"),
		a.memory.UsagePercent,
		float64(a.memory.Used)/(1024*1024*1024),
		float64(a.memory.Total)/(1024*1024*1024),
	)
	memBar := a.memProgress.ViewAs(a.memory.UsagePercent / 100.0)

	summary := fmt.Sprintf("Processes: %d | Skipped: %d | Scanned: %s",
		a.result.Total, a.result.Skipped, a.result.ScannedAt.Format("15:04:05"))

	help := HelpStyle.Render("↑/↓ k/j: navigate • Home/End g/G: jump • q: quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		memLine,
		memBar,
		"",
		LabelStyle.Render(summary),
		"",
		a.renderTable(),
		"",
		help,
	)
}

func (a *App) renderTable() string {
	// Reserve space for the title, memory block, summary, and help lines.
	visibleRows := a.height - 10
	if visibleRows < 1 {
		visibleRows = 1
	}

	startIdx := 0
	if a.selectedRow >= visibleRows {
		startIdx = a.selectedRow - visibleRows + 1
	}
	endIdx := min(startIdx+visibleRows, len(a.result.Processes))

	var content strings.Builder

	header := fmt.Sprintf("%-8s %-25s %-15s %12s", "PID", "NAME", "USER", "MEMORY")
	content.WriteString(TableHeaderStyle.Render(header))
	content.WriteString("\n")

	for i := startIdx; i < endIdx; i++ {
		proc := a.result.Processes[i]

		row := fmt.Sprintf("%-8d %-25s %-15s %9.2f MB",
			proc.PID,
			truncateString(proc.Name, 25),
			truncateString(proc.User, 15),
			proc.MemoryMB(),
		)

		style := RowStyle
		if i == a.selectedRow {
			style = SelectedRowStyle
		}
		content.WriteString(style.Render(row))
		content.WriteString("\n")
	}

	if len(a.result.Processes) > visibleRows {
		scrollInfo := fmt.Sprintf("Showing %d-%d of %d processes",
			startIdx+1, endIdx, len(a.result.Processes))
		content.WriteString(ScrollInfoStyle.Render(scrollInfo))
	}

	return BaseStyle.Render(content.String())
}

// truncateString shortens s to maxLen characters, counting runes so a
// multi-byte name is never cut mid-rune.
func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen < 4 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
