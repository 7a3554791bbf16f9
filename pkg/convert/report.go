package convert

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Artifact is one output file produced from a job: the converted statements,
// the already-compatible ones, or the failures, each in its own file.
type Artifact struct {
	// Name is the artifact file name, derived from the job name.
	Name string
	// Status is the bucket this artifact holds.
	Status Status
	// Content is the rendered SQL text.
	Content string
}

// BatchReport summarizes one batch run.
type BatchReport struct {
	// RunID uniquely identifies the run.
	RunID string `json:"run_id"`
	// Started and Finished bound the run.
	Started  time.Time `json:"started"`
	Finished time.Time `json:"finished"`
	// Jobs holds the per-input results in input order.
	Jobs []JobResult `json:"jobs"`
}

// NewReport assembles a report over finished jobs.
func NewReport(started, finished time.Time, jobs []JobResult) *BatchReport {
	return &BatchReport{
		RunID:    uuid.NewString(),
		Started:  started,
		Finished: finished,
		Jobs:     jobs,
	}
}

// Counts sums the per-statement outcomes across all jobs.
func (r *BatchReport) Counts() (converted, compatible, failed int) {
	for _, j := range r.Jobs {
		c, a, f := j.Counts()
		converted += c
		compatible += a
		failed += f
	}
	return converted, compatible, failed
}

// FailedJobs returns the jobs that could not be processed at all.
func (r *BatchReport) FailedJobs() []JobResult {
	var out []JobResult
	for _, j := range r.Jobs {
		if j.Err != nil {
			out = append(out, j)
		}
	}
	return out
}

// Artifacts renders the output files for one job. Empty buckets produce no
// artifact, so a clean input yields a single file.
func Artifacts(job JobResult) []Artifact {
	base := strings.TrimSuffix(filepath.Base(job.Name), filepath.Ext(job.Name))

	var out []Artifact
	for _, bucket := range []struct {
		status Status
		suffix string
	}{
		{StatusConverted, "_converted.sql"},
		{StatusAlreadyCompatible, "_compatible.sql"},
		{StatusError, "_errors.sql"},
	} {
		results := job.ByStatus(bucket.status)
		if len(results) == 0 {
			continue
		}
		out = append(out, Artifact{
			Name:    base + bucket.suffix,
			Status:  bucket.status,
			Content: RenderBucket(results),
		})
	}
	return out
}

// RenderBucket renders results as annotated SQL, one block per statement:
//
//	-- QUERY 3
//	SELECT ...;
//
// Failures keep the original text commented with the diagnostic and the
// cleaned candidate the translator last attempted.
func RenderBucket(results []Result) string {
	var b strings.Builder
	for i, res := range results {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "-- QUERY %d\n", res.Index)
		if res.Status == StatusError {
			b.WriteString(commentOut(res.Original))
			fmt.Fprintf(&b, "-- ERROR: %s\n", strings.ReplaceAll(res.Diagnostic, "\n", " "))
			if res.Candidate != "" {
				b.WriteString("-- CLEANED_CANDIDATE:\n")
				b.WriteString(commentOut(res.Candidate))
			}
			continue
		}
		b.WriteString(terminated(res.Output))
	}
	return b.String()
}

func commentOut(sql string) string {
	var b strings.Builder
	for _, line := range strings.Split(strings.TrimRight(sql, "\n"), "\n") {
		b.WriteString("-- ")
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func terminated(sql string) string {
	sql = strings.TrimRight(sql, " \t\r\n")
	if !strings.HasSuffix(sql, ";") {
		sql += ";"
	}
	return sql + "\n"
}
