package convert_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlshift/internal/testutil"
	"github.com/leapstack-labs/sqlshift/pkg/convert"
	"github.com/leapstack-labs/sqlshift/pkg/translate"
)

// identity passes statements through unchanged, the way a translation engine
// behaves on input that is already valid in the target dialect.
var identity = translate.Func(func(stmt, from, to string) (string, error) {
	return stmt, nil
})

// failOn returns a translator that fails statements containing marker.
func failOn(marker string) translate.Translator {
	return translate.Func(func(stmt, from, to string) (string, error) {
		if strings.Contains(stmt, marker) {
			return "", &translate.ParseError{Dialect: from, Stmt: stmt, Err: errors.New("syntax error near " + marker)}
		}
		return stmt, nil
	})
}

func newPipeline(tr translate.Translator) *convert.Pipeline {
	return convert.New(convert.Config{
		SourceDialect: "presto",
		TargetDialect: "databricks",
		Translator:    tr,
	})
}

func TestConvertText_Ordering(t *testing.T) {
	p := newPipeline(identity)

	job := p.ConvertText(context.Background(), "in.sql", "SELECT 1; SELECT 2; SELECT 3;")
	require.NoError(t, job.Err)
	require.Len(t, job.Results, 3)
	for i, res := range job.Results {
		assert.Equal(t, i+1, res.Index)
	}
	assert.Equal(t, "SELECT 2", job.Results[1].Original)
}

func TestConvertText_Classification(t *testing.T) {
	rewriting := translate.Func(func(stmt, from, to string) (string, error) {
		return strings.ReplaceAll(stmt, "approx_distinct(", "approx_count_distinct("), nil
	})
	p := newPipeline(rewriting)

	job := p.ConvertText(context.Background(), "in.sql",
		"SELECT a FROM t; SELECT approx_distinct(id) FROM t;")
	require.Len(t, job.Results, 2)

	assert.Equal(t, convert.StatusAlreadyCompatible, job.Results[0].Status)
	assert.Equal(t, "SELECT a FROM t", job.Results[0].Output)

	assert.Equal(t, convert.StatusConverted, job.Results[1].Status)
	assert.Equal(t, "SELECT approx_count_distinct(id) FROM t", job.Results[1].Output)
}

func TestConvertText_QuoteChangeIsConversion(t *testing.T) {
	p := newPipeline(identity)

	// the identifier-quoting rules rewrite "col" to `col`; even though the
	// translator passed the text through, the operator must see it as a
	// conversion
	job := p.ConvertText(context.Background(), "in.sql", `SELECT "col" FROM t;`)
	require.Len(t, job.Results, 1)
	assert.Equal(t, convert.StatusConverted, job.Results[0].Status)
	assert.Equal(t, "SELECT `col` FROM t", job.Results[0].Output)
}

func TestConvertText_ErrorResilience(t *testing.T) {
	p := newPipeline(failOn("BROKEN"))

	var b strings.Builder
	for i := 0; i < 10; i++ {
		if i == 4 {
			b.WriteString("SELECT BROKEN FROM t;\n")
			continue
		}
		b.WriteString("SELECT a FROM t;\n")
	}

	job := p.ConvertText(context.Background(), "in.sql", b.String())
	require.Len(t, job.Results, 10)

	converted, compatible, failed := job.Counts()
	assert.Equal(t, 0, converted)
	assert.Equal(t, 9, compatible)
	assert.Equal(t, 1, failed)

	bad := job.Results[4]
	assert.Equal(t, convert.StatusError, bad.Status)
	assert.Equal(t, 5, bad.Index)
	assert.Contains(t, bad.Diagnostic, "syntax error")
	assert.Equal(t, "SELECT BROKEN FROM t", bad.Candidate)
	assert.Empty(t, bad.Output)
}

func TestConvertText_WrapperRoundTrip(t *testing.T) {
	p := newPipeline(identity)

	job := p.ConvertText(context.Background(), "in.sql",
		"PREPARE s1 FROM SELECT * FROM t WHERE id = ?; EXECUTE s1 USING 5;")
	require.Len(t, job.Results, 2)

	prep := job.Results[0]
	assert.Equal(t, convert.StatusConverted, prep.Status)
	assert.Equal(t, "SELECT * FROM t WHERE id = ?", prep.Output)

	exec := job.Results[1]
	assert.Equal(t, convert.StatusConverted, exec.Status)
	assert.Equal(t, "SELECT * FROM t WHERE id = 5", exec.Output)
}

func TestConvertText_CompatibleKeepsOriginalText(t *testing.T) {
	engine, err := translate.NewEngine()
	require.NoError(t, err)
	p := convert.New(convert.Config{
		SourceDialect: "presto",
		TargetDialect: "databricks",
		Translator:    engine,
	})

	// the engine renders in lowercased canonical form, but a statement that
	// needs no change must come back exactly as written
	job := p.ConvertText(context.Background(), "in.sql", "SELECT a FROM t WHERE a = 1;")
	require.Len(t, job.Results, 1)
	assert.Equal(t, convert.StatusAlreadyCompatible, job.Results[0].Status)
	assert.Equal(t, "SELECT a FROM t WHERE a = 1", job.Results[0].Output)
}

func TestConvertText_WrapperRoundTripEngine(t *testing.T) {
	engine, err := translate.NewEngine()
	require.NoError(t, err)
	p := convert.New(convert.Config{
		SourceDialect: "presto",
		TargetDialect: "databricks",
		Translator:    engine,
	})

	job := p.ConvertText(context.Background(), "in.sql",
		"PREPARE s1 FROM SELECT * FROM t WHERE id = ?; EXECUTE s1 USING 5;")
	require.Len(t, job.Results, 2)

	// the PREPARE unit keeps its portable placeholder, not the engine's
	// numbered bind-variable rendering
	prep := job.Results[0]
	assert.Equal(t, convert.StatusConverted, prep.Status)
	assert.Contains(t, prep.Output, "?")
	assert.NotContains(t, prep.Output, ":v1")

	exec := job.Results[1]
	assert.Equal(t, convert.StatusConverted, exec.Status)
	assert.Contains(t, exec.Output, "= 5")
}

func TestConvertText_Cancelled(t *testing.T) {
	p := newPipeline(identity)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	job := p.ConvertText(ctx, "in.sql", "SELECT 1; SELECT 2;")
	assert.ErrorIs(t, job.Err, context.Canceled)
}

func TestConvertStatement(t *testing.T) {
	p := newPipeline(identity)

	res := p.ConvertStatement(context.Background(), "SELECT a FROM t")
	assert.Equal(t, convert.StatusAlreadyCompatible, res.Status)
	assert.Equal(t, 1, res.Index)
}

func TestRunner_OrderAndIsolation(t *testing.T) {
	p := newPipeline(failOn("BROKEN"))
	r := convert.NewRunner(p, 4, testutil.NewTestLogger(t))

	jobs := []convert.Job{
		{Name: "a.sql", Text: "SELECT 1;"},
		{Name: "b.sql", Err: errors.New("open b.sql: no such file")},
		{Name: "c.sql", Text: "SELECT BROKEN;"},
		{Name: "d.sql", Text: "SELECT 2; SELECT 3;"},
	}

	results, err := r.Run(context.Background(), jobs)
	require.NoError(t, err)
	require.Len(t, results, 4)

	assert.Equal(t, "a.sql", results[0].Name)
	require.Len(t, results[0].Results, 1)

	assert.Equal(t, "b.sql", results[1].Name)
	assert.Error(t, results[1].Err)
	assert.Empty(t, results[1].Results)

	_, _, failed := results[2].Counts()
	assert.Equal(t, 1, failed)

	require.Len(t, results[3].Results, 2)
}

func TestRunner_SingleWorkerFloor(t *testing.T) {
	p := newPipeline(identity)
	r := convert.NewRunner(p, 0, nil)

	results, err := r.Run(context.Background(), []convert.Job{{Name: "a.sql", Text: "SELECT 1;"}})
	require.NoError(t, err)
	require.Len(t, results, 1)
}

func TestReportCounts(t *testing.T) {
	jobs := []convert.JobResult{
		{Name: "a.sql", Results: []convert.Result{
			{Index: 1, Status: convert.StatusConverted},
			{Index: 2, Status: convert.StatusAlreadyCompatible},
		}},
		{Name: "b.sql", Results: []convert.Result{
			{Index: 1, Status: convert.StatusError},
		}},
		{Name: "c.sql", Err: errors.New("unreadable")},
	}

	started := time.Now().Add(-time.Second)
	rep := convert.NewReport(started, time.Now(), jobs)
	assert.NotEmpty(t, rep.RunID)

	converted, compatible, failed := rep.Counts()
	assert.Equal(t, 1, converted)
	assert.Equal(t, 1, compatible)
	assert.Equal(t, 1, failed)

	require.Len(t, rep.FailedJobs(), 1)
	assert.Equal(t, "c.sql", rep.FailedJobs()[0].Name)

	other := convert.NewReport(started, time.Now(), nil)
	assert.NotEqual(t, rep.RunID, other.RunID)
}

func TestArtifacts(t *testing.T) {
	job := convert.JobResult{
		Name: "reports/queries.sql",
		Results: []convert.Result{
			{Index: 1, Status: convert.StatusConverted, Output: "SELECT `a` FROM t"},
			{Index: 2, Status: convert.StatusAlreadyCompatible, Output: "SELECT b FROM t"},
			{Index: 3, Status: convert.StatusError, Original: "SELEC c", Diagnostic: "syntax error", Candidate: "SELEC c"},
		},
	}

	arts := convert.Artifacts(job)
	require.Len(t, arts, 3)
	assert.Equal(t, "queries_converted.sql", arts[0].Name)
	assert.Equal(t, "queries_compatible.sql", arts[1].Name)
	assert.Equal(t, "queries_errors.sql", arts[2].Name)

	assert.Equal(t, "-- QUERY 1\nSELECT `a` FROM t;\n", arts[0].Content)
	assert.Equal(t,
		"-- QUERY 3\n-- SELEC c\n-- ERROR: syntax error\n-- CLEANED_CANDIDATE:\n-- SELEC c\n",
		arts[2].Content)
}

func TestArtifacts_SkipsEmptyBuckets(t *testing.T) {
	job := convert.JobResult{
		Name: "clean.sql",
		Results: []convert.Result{
			{Index: 1, Status: convert.StatusAlreadyCompatible, Output: "SELECT 1"},
		},
	}

	arts := convert.Artifacts(job)
	require.Len(t, arts, 1)
	assert.Equal(t, "clean_compatible.sql", arts[0].Name)
}

func TestRenderBucket_MultipleBlocks(t *testing.T) {
	got := convert.RenderBucket([]convert.Result{
		{Index: 1, Status: convert.StatusConverted, Output: "SELECT 1"},
		{Index: 4, Status: convert.StatusConverted, Output: "SELECT 4;"},
	})
	assert.Equal(t, "-- QUERY 1\nSELECT 1;\n\n-- QUERY 4\nSELECT 4;\n", got)
}
