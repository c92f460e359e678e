package renderer

import (
	"bytes"
	"fmt"
	"time"

	"github.com/etnz/klocking"
	"github.com/etnz/klocking/date"
	md "github.com/nao1215/markdown"
)

// DayMarkdown renders a single day's allocation: committed minutes per
// activity (the running overlay folded in), then the unallocated remainder of
// the elapsed day.
func DayMarkdown(s *klocking.State, d date.Date, now time.Time) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Day %s", d))

	r := date.Between(d, d)
	tot := klocking.Aggregate(s, r, now)
	rows := klocking.ChartRows(s, tot)

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
		},
		Header: []string{"Activity", "Time"},
	}
	for _, row := range rows {
		if row.Future {
			continue
		}
		table.Rows = append(table.Rows, []string{row.Name, rowLabel(row.Minutes, s.Settings)})
	}
	if len(table.Rows) == 0 {
		doc.PlainText("Nothing tracked on this day.")
	} else {
		doc.Table(table)
	}

	elapsed := date.ElapsedMinutes(d, now)
	free := max(0, elapsed-tot.TrackedPast)
	doc.PlainText(fmt.Sprintf("Unallocated: %s of %s elapsed.",
		klocking.FormatMinutes(free, s.Settings.ShowMinutes),
		klocking.FormatMinutes(elapsed, s.Settings.ShowMinutes)))

	return doc.String()
}
