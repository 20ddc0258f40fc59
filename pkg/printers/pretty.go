package printers

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/fasttrack/pkg/daylog"
	"tableflip.dev/fasttrack/pkg/entry"
	"tableflip.dev/fasttrack/pkg/timeutil"
	"tableflip.dev/fasttrack/pkg/tracker"
)

const (
	layoutClock = "15:04"
	layoutLong  = "Monday, January 2, 2006"
)

type PrettyPrint struct {
	ShowID bool
}

func (pp *PrettyPrint) NewLine() {
	fmt.Println("")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Println(title)
}

// Status prints the live fasting and water view in one block.
func (pp *PrettyPrint) Status(e *tracker.Engine) {
	faint := color.New(color.Faint)
	strong := color.New(color.Bold)
	teal := color.New(color.FgCyan, color.Bold)

	if e.IsFasting() {
		pp.Title("You're Fasting")
		fmt.Println("")
		if start, ok := e.FastingStart(); ok {
			_, _ = faint.Print("started   ")
			_, _ = strong.Println(start.Local().Format(layoutClock))
		}
		_, _ = faint.Print("elapsed   ")
		_, _ = strong.Println(e.FormattedElapsed())
		_, _ = faint.Print("remaining ")
		_, _ = teal.Println(e.FormattedRemaining())
		if end, ok := e.FastingEnd(); ok {
			_, _ = faint.Print("goal      ")
			_, _ = strong.Println(end.Local().Format(layoutClock))
		}
		_, _ = faint.Print("progress  ")
		_, _ = teal.Printf("%d%%\n", int(e.Progress()*100))
	} else {
		pp.Title("Not Currently Fasting")
		f, eat := e.FastingWindow()
		_, _ = faint.Printf("\nwindow    %d:%d\n", f, eat)
	}

	fmt.Println("")
	pp.Title("Water")
	fmt.Println("")
	_, _ = strong.Printf("%.1f / %.1f L", e.CurrentDayWaterTotal(), e.DailyTarget())
	_, _ = teal.Printf("  %d%%\n", int(e.WaterProgress()*100))
}

// DayLog prints the daily summary for one date.
func (pp *PrettyPrint) DayLog(log *daylog.Log, target float64) {
	if log == nil {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Println("no log entry for this date")
		return
	}

	pp.Title(log.Date.Format(layoutLong))
	fmt.Println("")

	faint := color.New(color.Faint)
	strong := color.New(color.Bold)
	green := color.New(color.FgGreen)

	_, _ = faint.Print("water     ")
	_, _ = strong.Printf("%.2f L", log.WaterIntake)
	if log.WaterIntake >= target {
		_, _ = green.Print("  ✓ target met")
	}
	fmt.Println("")

	if log.Fasting == nil {
		return
	}
	f := log.Fasting
	if f.Open() {
		_, _ = faint.Print("fasting   ")
		_, _ = strong.Println("ongoing")
		_, _ = faint.Printf("started   %s\n", f.StartTime.Local().Format(layoutClock))
		return
	}
	_, _ = faint.Print("fasting   ")
	_, _ = strong.Println(timeutil.Span(f.Duration()))
	_, _ = faint.Printf("started   %s\n", f.StartTime.Local().Format(layoutClock))
	_, _ = faint.Printf("ended     %s\n", f.EndTime.Local().Format(layoutClock))
	if pp.ShowID {
		y := color.New(color.FgHiYellow, color.Italic, color.Faint)
		_, _ = y.Printf("id        %s\n", f.ID)
	}
}

// History prints all fasting entries as a table, oldest first.
func (pp *PrettyPrint) History(fasts []*entry.FastingEntry) {
	if len(fasts) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Println("no fasts recorded")
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	if pp.ShowID {
		tbl.AddRow("ID", "DAY", "STARTED", "ENDED", "WINDOW", "DURATION")
	} else {
		tbl.AddRow("DAY", "STARTED", "ENDED", "WINDOW", "DURATION")
	}

	for _, f := range fasts {
		day := f.Day().String()
		started := f.StartTime.Local().Format(layoutClock)
		ended := "ongoing"
		duration := "-"
		if !f.Open() {
			ended = f.EndTime.Local().Format(layoutClock)
			duration = timeutil.Span(f.Duration())
		}
		window := fmt.Sprintf("%d:%d", f.FastingWindowHours, 24-f.FastingWindowHours)
		if pp.ShowID {
			tbl.AddRow(f.ID, day, started, ended, window, duration)
		} else {
			tbl.AddRow(day, started, ended, window, duration)
		}
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
}

// Water prints the raw water entries for a day.
func (pp *PrettyPrint) Water(entries []*entry.WaterEntry, on entry.Day) {
	var total float64
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("TIME", "AMOUNT")
	for _, w := range entries {
		if !w.Day().Equal(on) {
			continue
		}
		tbl.AddRow(w.Timestamp.Local().Format(layoutClock), fmt.Sprintf("%.2f L", w.Amount))
		total += w.Amount
	}
	if total == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Println("no water recorded")
		return
	}
	tbl.AddRow("", "")
	tbl.AddRow("total", fmt.Sprintf("%.2f L", total))
	_, _ = fmt.Fprintln(color.Output, tbl)
}
