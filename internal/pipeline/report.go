package pipeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Report summarizes one run.
type Report struct {
	RunID    string
	Job      string
	Read     int
	Skipped  int
	Steps    []StepReport
	Written  []SinkReport
	Duration time.Duration
}

// StepReport holds the row counts around one transform step.
type StepReport struct {
	Name     string
	In, Out  int
	Duration time.Duration
}

// SinkReport is the number of rows one sink wrote.
type SinkReport struct {
	Name string
	Rows int64
}

// Dropped returns how many rows steps named name removed in total.
func (r Report) Dropped(name string) int {
	n := 0
	for _, s := range r.Steps {
		if s.Name == name {
			n += s.In - s.Out
		}
	}
	return n
}

// Rows is the row count after the last step.
func (r Report) Rows() int {
	if len(r.Steps) == 0 {
		return r.Read
	}
	return r.Steps[len(r.Steps)-1].Out
}

// Summary renders the one-line end-of-run log message.
func (r Report) Summary() string {
	var sinks []string
	for _, w := range r.Written {
		sinks = append(sinks, fmt.Sprintf("%s=%s", w.Name, humanize.Comma(w.Rows)))
	}
	return fmt.Sprintf(
		"summary: run=%s job=%s read=%s skipped=%s duplicates=%s missing_noc=%s rows=%s written=[%s] took=%s",
		r.RunID,
		r.Job,
		humanize.Comma(int64(r.Read)),
		humanize.Comma(int64(r.Skipped)),
		humanize.Comma(int64(r.Dropped("dedup"))),
		humanize.Comma(int64(r.Dropped("require"))),
		humanize.Comma(int64(r.Rows())),
		strings.Join(sinks, " "),
		r.Duration.Truncate(time.Millisecond),
	)
}
