package renderer

import (
	"bytes"
	"fmt"
	"time"

	"github.com/etnz/klocking"
	"github.com/etnz/klocking/date"
	md "github.com/nao1215/markdown"
)

// SummaryMarkdown renders the range chart as a markdown report: one table row
// per chart slice with its share of the window, then a capacity line.
func SummaryMarkdown(s *klocking.State, r date.Range, now time.Time) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Summary for %s", rangeTitle(r)))

	tot := klocking.Aggregate(s, r, now)
	rows := klocking.ChartRows(s, tot)

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Activity", "Time", "Share"},
	}
	for _, row := range rows {
		name := row.Name
		if dot := colorDot(row.Color); dot != "" {
			name = dot + " " + name
		}
		table.Rows = append(table.Rows, []string{
			name,
			rowLabel(row.Minutes, s.Settings),
			klocking.Share(row.Minutes, tot.TotalWindow).String(),
		})
	}
	if len(table.Rows) == 0 {
		doc.PlainText("Nothing tracked in this period.")
	} else {
		doc.Table(table)
	}

	doc.PlainText(fmt.Sprintf("Tracked %s of %s elapsed.",
		klocking.FormatMinutes(tot.TrackedPast, s.Settings.ShowMinutes),
		klocking.FormatMinutes(tot.ElapsedWindow, s.Settings.ShowMinutes)))

	if s.Running != nil {
		if a := s.Activity(s.Running.ActivityID); a != nil {
			elapsed := now.Sub(time.UnixMilli(s.Running.Start))
			doc.PlainText(fmt.Sprintf("Running: %s for %s.", a.Name, klocking.FormatHMS(elapsed)))
		}
	}

	return doc.String()
}

// rangeTitle names a range by its detected period, falling back to the
// explicit bounds.
func rangeTitle(r date.Range) string {
	if p, ok := r.Period(); ok {
		switch p {
		case date.Daily:
			return r.From.String()
		case date.Weekly:
			return fmt.Sprintf("week of %s", r.From)
		case date.Monthly:
			return fmt.Sprintf("%s %d", r.From.Month(), r.From.Year())
		case date.Yearly:
			return fmt.Sprintf("%d", r.From.Year())
		}
	}
	return fmt.Sprintf("%s to %s", r.From, r.To)
}
