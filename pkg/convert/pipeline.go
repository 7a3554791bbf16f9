package convert

import (
	"context"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/sqlshift/pkg/dialect"
	"github.com/leapstack-labs/sqlshift/pkg/fixup"
	"github.com/leapstack-labs/sqlshift/pkg/fixup/rules"
	"github.com/leapstack-labs/sqlshift/pkg/split"
	"github.com/leapstack-labs/sqlshift/pkg/translate"
)

// Config holds pipeline configuration.
type Config struct {
	// SourceDialect is the dialect of the input statements.
	SourceDialect string
	// TargetDialect is the dialect the output is rendered in.
	TargetDialect string
	// Translator performs the dialect translation. Required.
	Translator translate.Translator
	// Chain is the quirk fixup chain (optional, defaults to all built-ins).
	Chain *fixup.Chain
	// Logger is the structured logger (optional, uses discard if nil).
	Logger *slog.Logger
}

// Pipeline converts the statements of one input text: split into statements,
// pre-translation fixups, translation, post-translation fixups, and
// classification. A statement that fails is recorded with a diagnostic and
// never aborts the rest of the input.
type Pipeline struct {
	from   string
	to     string
	tr     translate.Translator
	chain  *fixup.Chain
	logger *slog.Logger
}

// New creates a pipeline.
func New(cfg Config) *Pipeline {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	chain := cfg.Chain
	if chain == nil {
		chain = fixup.NewChain(fixup.Options{})
	}
	return &Pipeline{
		from:   dialect.Normalize(cfg.SourceDialect),
		to:     dialect.Normalize(cfg.TargetDialect),
		tr:     cfg.Translator,
		chain:  chain,
		logger: logger,
	}
}

// ConvertText converts every statement in text. The returned JobResult holds
// one Result per statement in input order; name identifies the input in logs
// and reports.
func (p *Pipeline) ConvertText(ctx context.Context, name, text string) JobResult {
	job := JobResult{Name: name}
	fctx := fixup.NewContext(p.from, p.to)

	stmts := split.Split(text)
	p.logger.Debug("converting input", "name", name, "statements", len(stmts))

	for _, stmt := range stmts {
		if err := ctx.Err(); err != nil {
			job.Err = err
			return job
		}
		job.Results = append(job.Results, p.convertOne(fctx, stmt))
	}
	return job
}

// ConvertStatement converts a single statement using a fresh fixup context.
func (p *Pipeline) ConvertStatement(ctx context.Context, sql string) Result {
	fctx := fixup.NewContext(p.from, p.to)
	return p.convertOne(fctx, split.Statement{Text: sql, Index: 1})
}

func (p *Pipeline) convertOne(fctx *fixup.Context, stmt split.Statement) Result {
	fctx.ResetStatement()

	original := strings.TrimSpace(stmt.Text)
	res := Result{Index: stmt.Index, Original: original}

	pre := p.chain.Apply(fctx, original, fixup.StagePre)

	translated, err := p.tr.Translate(pre, p.from, p.to)
	if err != nil {
		res.Status = StatusError
		res.Diagnostic = err.Error()
		res.Candidate = rules.CleanCandidate(pre)
		p.logger.Debug("statement failed", "index", stmt.Index, "error", err)
		return res
	}

	out := p.chain.Apply(fctx, translated, fixup.StagePost)
	res.Output = out

	if fctx.Unwrapped {
		// An unwrapped statement never equals its wrapper input.
		res.Status = StatusConverted
	} else {
		res.Status = classify(p.tr, original, out)
		if res.Status == StatusAlreadyCompatible {
			// A statement that needs no change is echoed untouched, not in
			// the engine's canonical rendering.
			res.Output = original
		}
	}
	p.logger.Debug("statement done", "index", stmt.Index, "status", res.Status.String())
	return res
}
