package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss/v2"
)

// Day describes metadata used when rendering the calendar.
type Day struct {
	Day        int
	HasFasting bool
	HasWater   bool
	IsToday    bool
}

// Options controls the styling of the rendered calendar.
type Options struct {
	HeaderStyle  lipgloss.Style
	EmptyStyle   lipgloss.Style
	FastingStyle lipgloss.Style
	WaterStyle   lipgloss.Style
	BothStyle    lipgloss.Style
	TodayStyle   lipgloss.Style
	ShowHeader   bool
	ShowLegend   bool
}

// DefaultOptions returns the standard tracker palette: cyan for fasting days,
// blue for water days, both combined when a day has each.
func DefaultOptions() Options {
	return Options{
		HeaderStyle:  lipgloss.NewStyle().Faint(true),
		EmptyStyle:   lipgloss.NewStyle().Faint(true),
		FastingStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		WaterStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		BothStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		TodayStyle:   lipgloss.NewStyle().Underline(true).Bold(true),
		ShowHeader:   true,
		ShowLegend:   true,
	}
}

// Render produces a multi-line calendar string for the given month.
func Render(month time.Time, days []Day, opts Options) string {
	if month.IsZero() {
		return ""
	}

	firstOfMonth := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	daysInMonth := daysIn(month)

	meta := make(map[int]Day, len(days))
	for _, d := range days {
		if d.Day >= 1 && d.Day <= daysInMonth {
			meta[d.Day] = d
		}
	}

	var lines []string
	if opts.ShowHeader {
		lines = append(lines, opts.HeaderStyle.Render("Su Mo Tu We Th Fr Sa"))
	}

	weekdayOffset := int(firstOfMonth.Weekday()) // Sunday == 0
	rows := ((weekdayOffset + daysInMonth) + 6) / 7
	for row := 0; row < rows; row++ {
		var cells []string
		for col := 0; col < 7; col++ {
			cellIndex := row*7 + col
			day := cellIndex - weekdayOffset + 1
			if day < 1 || day > daysInMonth {
				cells = append(cells, opts.EmptyStyle.Render("  "))
				continue
			}
			cells = append(cells, renderDay(meta[day], day, opts))
		}
		lines = append(lines, strings.TrimRight(strings.Join(cells, " "), " "))
	}

	if opts.ShowLegend {
		legend := strings.Join([]string{
			opts.FastingStyle.Render("■ fasting"),
			opts.WaterStyle.Render("■ water"),
			opts.BothStyle.Render("■ both"),
		}, "  ")
		lines = append(lines, "", legend)
	}

	return strings.Join(lines, "\n")
}

func renderDay(info Day, day int, opts Options) string {
	label := fmt.Sprintf("%2d", day)

	style := opts.EmptyStyle
	switch {
	case info.HasFasting && info.HasWater:
		style = opts.BothStyle
	case info.HasFasting:
		style = opts.FastingStyle
	case info.HasWater:
		style = opts.WaterStyle
	}
	if info.IsToday {
		style = style.Inherit(opts.TodayStyle)
	}
	return style.Render(label)
}

func daysIn(month time.Time) int {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	return first.AddDate(0, 1, -1).Day()
}
