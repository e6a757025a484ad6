package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type AppData struct {
	Header        string
	LeftPane      string
	RightPane     string
	StatusLine    string
	StatusIsError bool
	Footer        string
	Notification  string
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	badgeColors = map[string]lipgloss.Color{
		"High":          lipgloss.Color("9"),
		"Medium":        lipgloss.Color("11"),
		"Low":           lipgloss.Color("10"),
		"Completed":     lipgloss.Color("10"),
		"Not Completed": lipgloss.Color("9"),
	}
)

func RenderApp(data AppData) string {
	left := panelStyle.Width(76).Render(data.LeftPane)
	right := panelStyle.Width(52).Render(data.RightPane)
	row := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	status := statusStyle.Render(data.StatusLine)
	if data.StatusIsError {
		status = errorStyle.Render(data.StatusLine)
	}

	lines := []string{
		headerStyle.Render(data.Header),
		row,
		status,
	}
	if data.Notification != "" {
		lines = append(lines, panelStyle.Render(data.Notification))
	}
	if data.Footer != "" {
		lines = append(lines, footerStyle.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

func RenderMarkdown(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	out, err := glamour.Render(md, "dark")
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}

// BadgeLabel is the uncolored badge text, e.g. "[HIGH]". Table cells use it
// because bubbles/table measures cell width on raw bytes.
func BadgeLabel(label string) string {
	return "[" + strings.ToUpper(label) + "]"
}

// Badge renders label in its priority or status color, e.g. "[HIGH]".
func Badge(label string) string {
	text := BadgeLabel(label)
	color, ok := badgeColors[label]
	if !ok {
		return text
	}
	return lipgloss.NewStyle().Bold(true).Foreground(color).Render(text)
}
