// Package logger provides clang-style positioned diagnostics.
//
// Modeled on esbuild's internal/logger: diagnostics carry the source text and
// a byte offset so a message can be rendered with the offending line and a
// caret, instead of a bare string. This tool has no build graph and no
// concurrent emission to coordinate, so this is a drastically smaller cousin
// of esbuild's version: no terminal-width word wrapping, no summary tables,
// no parallel-build message batching.
package logger

import (
	"fmt"
	"strings"
)

// Loc is a byte offset into a Source's Contents. -1 means "no location".
type Loc struct {
	Start int32
}

// Range is a Loc plus a length, used to underline more than one character.
type Range struct {
	Loc Loc
	Len int32
}

func (r Range) End() int32 { return r.Loc.Start + r.Len }

// Source is the text of a single input file.
type Source struct {
	Path     string
	Contents string
}

// LineColumn converts a byte offset into 1-based line and column numbers.
func (s *Source) LineColumn(loc Loc) (line int, column int) {
	line = 1
	lineStart := 0
	for i, c := range s.Contents {
		if int32(i) >= loc.Start {
			break
		}
		if c == '\n' {
			line++
			lineStart = i + 1
		}
	}
	column = int(loc.Start) - lineStart + 1
	if column < 1 {
		column = 1
	}
	return
}

// LineText returns the full line of text containing loc, for use in a
// diagnostic's source excerpt.
func (s *Source) LineText(loc Loc) string {
	start := int(loc.Start)
	if start > len(s.Contents) {
		start = len(s.Contents)
	}
	lineStart := strings.LastIndexByte(s.Contents[:start], '\n') + 1
	lineEnd := strings.IndexByte(s.Contents[start:], '\n')
	if lineEnd == -1 {
		return s.Contents[lineStart:]
	}
	return s.Contents[lineStart : start+lineEnd]
}

// MsgKind distinguishes a hard parse error from an advisory note.
type MsgKind uint8

const (
	Error MsgKind = iota
	Warning
)

func (k MsgKind) String() string {
	if k == Warning {
		return "warning"
	}
	return "error"
}

// Msg is a single positioned diagnostic.
type Msg struct {
	Kind   MsgKind
	Text   string
	Loc    Loc
	Source *Source
}

// String renders a Msg the way clang renders a diagnostic: path:line:col:
// kind: text, followed by the offending source line and a caret.
func (m Msg) String() string {
	if m.Source == nil {
		return fmt.Sprintf("%s: %s", m.Kind, m.Text)
	}
	line, col := m.Source.LineColumn(m.Loc)
	lineText := m.Source.LineText(m.Loc)
	caret := strings.Repeat(" ", col-1) + "^"
	return fmt.Sprintf("%s:%d:%d: %s: %s\n    %s\n    %s",
		m.Source.Path, line, col, m.Kind, m.Text, lineText, caret)
}

// Log accumulates diagnostics for a single transform invocation.
type Log struct {
	msgs *[]Msg
}

// NewLog creates an empty diagnostic sink.
func NewLog() Log {
	return Log{msgs: &[]Msg{}}
}

func (log Log) AddError(source *Source, loc Loc, text string) {
	*log.msgs = append(*log.msgs, Msg{Kind: Error, Text: text, Loc: loc, Source: source})
}

func (log Log) AddWarning(source *Source, loc Loc, text string) {
	*log.msgs = append(*log.msgs, Msg{Kind: Warning, Text: text, Loc: loc, Source: source})
}

func (log Log) HasErrors() bool {
	for _, msg := range *log.msgs {
		if msg.Kind == Error {
			return true
		}
	}
	return false
}

func (log Log) Msgs() []Msg {
	return *log.msgs
}

// Colors holds ANSI escape sequences for CLI help/diagnostic text, following
// esbuild's cmd/esbuild helpText convention of a Colors value that callers
// can zero out to honor NO_COLOR.
type Colors struct {
	Reset     string
	Bold      string
	Dim       string
	Red       string
	Underline string
}

func NewColors(useColor bool) Colors {
	if !useColor {
		return Colors{}
	}
	return Colors{
		Reset:     "\033[0m",
		Bold:      "\033[1m",
		Dim:       "\033[2m",
		Red:       "\033[31m",
		Underline: "\033[4m",
	}
}
