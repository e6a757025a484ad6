package views

import (
	"fmt"
	"strings"
)

type TaskPanelData struct {
	TableView   string
	PagerView   string
	Page        int
	PageCount   int
	Total       int
	Loading     bool
	SpinnerView string
	Empty       bool
	EditingID   int
}

type FormPanelData struct {
	Heading     string
	SubmitLabel string
	TitleView   string
	DueView     string
	Priority    string
	Status      string
	Field       string
	Focused     bool
	ErrorText   string
}

type DetailData struct {
	ID       int
	Title    string
	Priority string
	DueDate  string
	Status   string
}

type NotificationData struct {
	Level string
	Title string
	Body  string
}

type HelpPanelData struct {
	Focus    string
	Bindings []string
	HelpView string
}

func RenderTaskPanel(data TaskPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("tasks: page %d/%d (%d total)", data.Page, data.PageCount, data.Total))
	if data.Loading {
		b.WriteString(" " + data.SpinnerView + " loading")
	}
	b.WriteString("\n")
	b.WriteString("actions: [j/k]move [e]edit [d]delete [h/l]page [r]refresh [n]new\n")
	if data.Empty {
		b.WriteString("(no tasks on this page)\n")
	} else {
		b.WriteString(data.TableView + "\n")
	}
	if data.EditingID > 0 {
		b.WriteString(fmt.Sprintf("editing: #%d\n", data.EditingID))
	}
	b.WriteString(data.PagerView)
	return strings.TrimSpace(b.String())
}

func RenderFormPanel(data FormPanelData) string {
	marker := func(field string) string {
		if data.Focused && data.Field == field {
			return ">"
		}
		return " "
	}

	var b strings.Builder
	b.WriteString(strings.ToLower(data.Heading) + ":\n")
	b.WriteString(fmt.Sprintf("%s title:    %s\n", marker("title"), data.TitleView))
	b.WriteString(fmt.Sprintf("%s priority: %s\n", marker("priority"), Badge(data.Priority)))
	b.WriteString(fmt.Sprintf("%s due date: %s\n", marker("due"), data.DueView))
	b.WriteString(fmt.Sprintf("%s status:   %s\n", marker("status"), Badge(data.Status)))
	if data.ErrorText != "" {
		b.WriteString("error: " + data.ErrorText + "\n")
	}
	if data.Focused {
		b.WriteString(fmt.Sprintf("keys: [enter]%s [tab]field [ctrl+p]priority [ctrl+s]status [esc]cancel", strings.ToLower(data.SubmitLabel)))
	} else {
		b.WriteString("keys: [n] focus form")
	}
	return b.String()
}

func DetailMarkdown(data DetailData) string {
	if data.ID == 0 {
		return ""
	}
	return fmt.Sprintf("### #%d %s\n\n- **Priority:** %s\n- **Due:** %s\n- **Status:** %s\n",
		data.ID, data.Title, data.Priority, data.DueDate, data.Status)
}

func RenderDetailPanel(rendered string) string {
	if strings.TrimSpace(rendered) == "" {
		return "details:\n(no selection)"
	}
	return "details:\n" + rendered
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderNotifications(items []NotificationData) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(item.Body) == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("notification: [%s] %s: %s", strings.ToUpper(item.Level), item.Title, item.Body))
	}
	return strings.Join(lines, "\n")
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\nglobal:\n%s keys:\n%s\n%s",
		strings.ToLower(data.Focus),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}
