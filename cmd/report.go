package cmd

import (
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/lipgloss"

	"github.com/mattsolo1/grove-sidebar/pkg/sidebar"
)

var (
	// titleStyle for report headers
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	// dimStyle for muted labels
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

func printReport(w io.Writer, report *sidebar.Report) {
	fmt.Fprintf(w, "\n%s\n", titleStyle.Render("Sidebar Report"))
	fmt.Fprintf(w, "%s %d\n", dimStyle.Render("Files:     "), report.TotalFiles)
	fmt.Fprintf(w, "%s %d\n", dimStyle.Render("Created:   "), report.Created)
	fmt.Fprintf(w, "%s %d\n", dimStyle.Render("Updated:   "), report.Updated)
	fmt.Fprintf(w, "%s %d\n", dimStyle.Render("Deleted:   "), report.Deleted)
	fmt.Fprintf(w, "%s %d\n", dimStyle.Render("Unchanged: "), report.Unchanged)
	if report.Failed > 0 {
		fmt.Fprintf(w, "%s %s\n", dimStyle.Render("Failed:    "), errorStyle.Render(fmt.Sprint(report.Failed)))
	}
	fmt.Fprintf(w, "%s %s\n", dimStyle.Render("Duration:  "), report.Duration())

	if len(report.Errors) > 0 {
		files := make([]string, 0, len(report.Errors))
		for file := range report.Errors {
			files = append(files, file)
		}
		sort.Strings(files)

		fmt.Fprintf(w, "\n%s\n", errorStyle.Render("Errors:"))
		for _, file := range files {
			fmt.Fprintf(w, "  %s: %v\n", file, report.Errors[file])
		}
	}

	switch {
	case report.DryRun:
		fmt.Fprintf(w, "\n%s\n", warnStyle.Render("Dry run complete. No files were modified."))
	case report.Changed() == 0:
		fmt.Fprintf(w, "\n%s\n", successStyle.Render("✓ Sidebar is up to date"))
	default:
		fmt.Fprintf(w, "\n%s\n", successStyle.Render("✓ All done!"))
	}
}

func changeSymbol(action sidebar.ChangeAction) string {
	switch action {
	case sidebar.ActionCreate:
		return successStyle.Render("+")
	case sidebar.ActionUpdate:
		return warnStyle.Render("~")
	case sidebar.ActionDelete:
		return errorStyle.Render("-")
	default:
		return " "
	}
}
