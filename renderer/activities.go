package renderer

import (
	"bytes"
	"fmt"
	"time"

	"github.com/etnz/klocking"
	"github.com/etnz/klocking/date"
	md "github.com/nao1215/markdown"
)

// ActivitiesMarkdown renders the activity roster in declared display order,
// including archived entries.
func ActivitiesMarkdown(s *klocking.State) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Activities")
	if len(s.Activities) == 0 {
		doc.PlainText("No activities yet.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignRight,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
		},
		Header: []string{"#", "Name", "Color", "Created", "Status"},
	}
	for i, a := range s.Activities {
		status := ""
		if a.Archived {
			status = "archived"
		}
		if s.Running != nil && s.Running.ActivityID == a.ID {
			status = "running"
		}
		table.Rows = append(table.Rows, []string{
			fmt.Sprintf("%d", i+1),
			a.Name,
			colorDot(a.Color),
			klocking.FormatDateShort(date.Of(time.UnixMilli(a.CreatedAt)), s.Settings.UseMMDDYYYY),
			status,
		})
	}
	doc.Table(table)
	return doc.String()
}
