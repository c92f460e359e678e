package renderer

import (
	"bytes"
	"fmt"
	"time"

	"github.com/etnz/klocking"
	md "github.com/nao1215/markdown"
)

// SessionMarkdown renders the live session status: the running activity and
// its hh:mm:ss counter, or the idle line with the last used activity as the
// restart hint.
func SessionMarkdown(s *klocking.State, now time.Time) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	if s.Running != nil {
		name := s.Running.ActivityID
		if a := s.Activity(s.Running.ActivityID); a != nil {
			name = a.Name
		}
		elapsed := now.Sub(time.UnixMilli(s.Running.Start))
		doc.PlainText(fmt.Sprintf("Tracking %s for %s.", md.Bold(name), klocking.FormatHMS(elapsed)))
		return doc.String()
	}

	doc.PlainText("No session running.")
	if a := s.Activity(s.LastActID); a != nil && !a.Archived {
		doc.PlainText(fmt.Sprintf("Last activity: %s.", a.Name))
	}
	return doc.String()
}
