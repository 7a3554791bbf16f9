package translate_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlshift/pkg/translate"
)

func newEngine(t *testing.T) *translate.Engine {
	t.Helper()
	e, err := translate.NewEngine()
	require.NoError(t, err)
	return e
}

func TestEngineTranslate(t *testing.T) {
	e := newEngine(t)

	got, err := e.Translate("SELECT a, b FROM t WHERE a > 1", "presto", "databricks")
	require.NoError(t, err)
	assert.NotEmpty(t, got)

	// the output must itself be parseable
	_, err = e.Canonical(got)
	assert.NoError(t, err)
}

func TestEngineTranslate_ParseError(t *testing.T) {
	e := newEngine(t)

	_, err := e.Translate("SELEC a FROM t", "presto", "databricks")
	require.Error(t, err)

	var perr *translate.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "presto", perr.Dialect)
	assert.Equal(t, "SELEC a FROM t", perr.Stmt)
	assert.NotNil(t, errors.Unwrap(perr))
}

func TestEngineTranslate_RenderError(t *testing.T) {
	e := newEngine(t)

	_, err := e.Translate("LOCK TABLES t READ", "presto", "databricks")
	require.Error(t, err)

	var rerr *translate.RenderError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "databricks", rerr.Dialect)
	assert.NotEmpty(t, rerr.Reason)
}

func TestEngineCanonical_Equivalence(t *testing.T) {
	e := newEngine(t)

	tests := []struct {
		name string
		a, b string
	}{
		{
			name: "whitespace",
			a:    "SELECT a,   b FROM t",
			b:    "SELECT a, b FROM t",
		},
		{
			name: "keyword case",
			a:    "select a, b from t where a = 1",
			b:    "SELECT a, b FROM t WHERE a = 1",
		},
		{
			name: "newlines",
			a:    "SELECT a\nFROM t\nWHERE a = 1",
			b:    "SELECT a FROM t WHERE a = 1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ca, err := e.Canonical(tt.a)
			require.NoError(t, err)
			cb, err := e.Canonical(tt.b)
			require.NoError(t, err)
			assert.Equal(t, ca, cb)
		})
	}
}

func TestEngineCanonical_Distinct(t *testing.T) {
	e := newEngine(t)

	ca, err := e.Canonical("SELECT a FROM t")
	require.NoError(t, err)
	cb, err := e.Canonical("SELECT b FROM t")
	require.NoError(t, err)
	assert.NotEqual(t, ca, cb)
}

func TestFuncAdapter(t *testing.T) {
	var gotFrom, gotTo string
	tr := translate.Func(func(stmt, from, to string) (string, error) {
		gotFrom, gotTo = from, to
		return stmt, nil
	})

	out, err := tr.Translate("SELECT 1", "presto", "databricks")
	require.NoError(t, err)
	assert.Equal(t, "SELECT 1", out)
	assert.Equal(t, "presto", gotFrom)
	assert.Equal(t, "databricks", gotTo)
}
