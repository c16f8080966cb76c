package training

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/SiddharthSingh5771/MedAssist-AI/internal/domain/schema"
)

// Result is the outcome of one job.
type Result struct {
	Disease   schema.Disease
	Schema    string
	Kind      string
	Location  string
	Rows      int
	Positives int
	Holdout   Evaluation
	Duration  time.Duration
	Err       error
}

// OK reports whether the artifact was written.
func (r Result) OK() bool { return r.Err == nil }

// Report collects job results in job order.
type Report struct {
	Results []Result
}

// Failed returns the failed jobs.
func (r Report) Failed() []Result {
	var out []Result
	for _, res := range r.Results {
		if !res.OK() {
			out = append(out, res)
		}
	}
	return out
}

// OK reports whether every job succeeded.
func (r Report) OK() bool { return len(r.Failed()) == 0 }

// WriteSummary prints one line per job.
func (r Report) WriteSummary(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DISEASE\tSTATUS\tROWS\tACCURACY\tPRECISION\tRECALL\tLOCATION")
	for _, res := range r.Results {
		if !res.OK() {
			fmt.Fprintf(tw, "%s\tfailed\t%d\t-\t-\t-\t%v\n", res.Disease, res.Rows, res.Err)
			continue
		}
		fmt.Fprintf(tw, "%s\tok\t%d\t%.3f\t%.3f\t%.3f\t%s\n", res.Disease, res.Rows,
			res.Holdout.Accuracy, res.Holdout.Precision, res.Holdout.Recall, res.Location)
	}
	return tw.Flush()
}
