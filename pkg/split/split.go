// Package split segments raw SQL text into individual statements.
//
// The splitter is quote- and comment-aware: a terminator character inside a
// string literal, line comment, or block comment never ends a statement.
// Splitting is lossless; Reconstruct on the returned units yields the input
// text byte for byte.
package split

import (
	"strings"
)

// Terminator is the statement terminator character.
const Terminator = ';'

// Statement is one segmented SQL statement with its exact original text.
type Statement struct {
	// Leading holds whitespace and empty-statement runs that precede the
	// statement body in the source.
	Leading string
	// Text is the statement body, an exact substring of the input starting
	// at its first non-whitespace character.
	Text string
	// Trailing holds whitespace after the final statement of the input.
	// Empty on all units except possibly the last.
	Trailing string
	// Index is the 1-based ordinal of the statement within its input.
	Index int
	// Terminated reports whether the statement had a trailing terminator.
	Terminated bool
}

// scanner states
type state int

const (
	stateNormal state = iota
	stateSingleQuote
	stateDoubleQuote
	stateBacktick
	stateLineComment
	stateBlockComment
)

// segment is a raw slice of the input cut at a terminator.
type segment struct {
	raw        string
	terminated bool
}

// Split divides text into statements. Whitespace-only segments between
// terminators are dropped; their characters are preserved as leading or
// trailing trivia on neighboring units. A trailing statement without a
// terminator is still emitted. An unterminated string or block comment at
// end of input yields the remaining text as the final unit rather than an
// error; segmentation is best effort.
func Split(text string) []Statement {
	segs := scan(text)
	return assemble(segs)
}

// scan cuts text into raw segments at terminator characters, tracking
// string and comment state so terminators inside literals are ignored.
func scan(text string) []segment {
	var segs []segment
	st := stateNormal
	start := 0
	n := len(text)

	for i := 0; i < n; i++ {
		ch := text[i]
		switch st {
		case stateNormal:
			switch {
			case ch == '\'':
				st = stateSingleQuote
			case ch == '"':
				st = stateDoubleQuote
			case ch == '`':
				st = stateBacktick
			case ch == '-' && i+1 < n && text[i+1] == '-':
				st = stateLineComment
				i++
			case ch == '/' && i+1 < n && text[i+1] == '*':
				st = stateBlockComment
				i++
			case ch == Terminator:
				segs = append(segs, segment{raw: text[start:i], terminated: true})
				start = i + 1
			}
		case stateSingleQuote:
			if ch == '\'' {
				if i+1 < n && text[i+1] == '\'' {
					i++ // doubled quote escape
				} else {
					st = stateNormal
				}
			}
		case stateDoubleQuote:
			if ch == '"' {
				if i+1 < n && text[i+1] == '"' {
					i++
				} else {
					st = stateNormal
				}
			}
		case stateBacktick:
			if ch == '`' {
				st = stateNormal
			}
		case stateLineComment:
			if ch == '\n' {
				st = stateNormal
			}
		case stateBlockComment:
			if ch == '*' && i+1 < n && text[i+1] == '/' {
				st = stateNormal
				i++
			}
		}
	}

	if start < n {
		segs = append(segs, segment{raw: text[start:], terminated: false})
	}
	return segs
}

// assemble turns raw segments into statements, folding blank segments into
// the trivia of the following unit (or the trailing trivia of the last one).
func assemble(segs []segment) []Statement {
	var stmts []Statement
	var pending strings.Builder

	for _, seg := range segs {
		if strings.TrimSpace(seg.raw) == "" {
			pending.WriteString(seg.raw)
			if seg.terminated {
				pending.WriteByte(Terminator)
			}
			continue
		}

		lead := len(seg.raw) - len(strings.TrimLeft(seg.raw, " \t\r\n"))
		stmts = append(stmts, Statement{
			Leading:    pending.String() + seg.raw[:lead],
			Text:       seg.raw[lead:],
			Index:      len(stmts) + 1,
			Terminated: seg.terminated,
		})
		pending.Reset()
	}

	if pending.Len() > 0 {
		if len(stmts) == 0 {
			return nil
		}
		stmts[len(stmts)-1].Trailing = pending.String()
	}
	return stmts
}

// Reconstruct concatenates statements back into the original input text.
func Reconstruct(stmts []Statement) string {
	var b strings.Builder
	for _, s := range stmts {
		b.WriteString(s.Leading)
		b.WriteString(s.Text)
		if s.Terminated {
			b.WriteByte(Terminator)
		}
		b.WriteString(s.Trailing)
	}
	return b.String()
}
