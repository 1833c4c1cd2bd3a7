package js_lexer

import (
	"testing"

	"github.com/jsreadable/unminify/internal/logger"
	"github.com/stretchr/testify/require"
)

func tokenize(t *testing.T, src string) []Token {
	t.Helper()
	log := logger.NewLog()
	source := &logger.Source{Path: "<test>", Contents: src}
	toks := NewLexer(log, source).Tokenize()
	require.False(t, log.HasErrors(), "unexpected lexer errors: %v", log.Msgs())
	return toks
}

func TestTokenizeIdentifiersAndKeywords(t *testing.T) {
	toks := tokenize(t, "let x = foo;")
	kinds := []T{TKeyword, TIdentifier, TPunctuation, TIdentifier, TPunctuation, TEOF}
	require.Len(t, toks, len(kinds))
	for i, k := range kinds {
		require.Equal(t, k, toks[i].Kind, "token %d", i)
	}
	require.Equal(t, "let", toks[0].Raw)
	require.Equal(t, "x", toks[1].Raw)
	require.Equal(t, "=", toks[2].Raw)
	require.Equal(t, "foo", toks[3].Raw)
}

func TestTokenizeDivideVsRegexAmbiguity(t *testing.T) {
	toks := tokenize(t, "a / b")
	require.Equal(t, TPunctuation, toks[1].Kind)
	require.Equal(t, "/", toks[1].Raw)

	toks = tokenize(t, "x = /abc/g")
	require.Equal(t, TRegExpLiteral, toks[2].Kind)
	require.Equal(t, "/abc/g", toks[2].Raw)
}

func TestTokenizeLongestPunctuatorWins(t *testing.T) {
	toks := tokenize(t, "a >>>= b")
	require.Equal(t, ">>>=", toks[1].Raw)
}

func TestTokenizeStringAndTemplate(t *testing.T) {
	toks := tokenize(t, `"a\"b" ` + "`x${1}y`")
	require.Equal(t, TStringLiteral, toks[0].Kind)
	require.Equal(t, `"a\"b"`, toks[0].Raw)
	require.Equal(t, TTemplateLiteral, toks[1].Kind)
	require.Equal(t, "`x${1}y`", toks[1].Raw)
}

func TestTokenizeSkipsComments(t *testing.T) {
	toks := tokenize(t, "a // line comment\n/* block */ b")
	require.Equal(t, "a", toks[0].Raw)
	require.Equal(t, "b", toks[1].Raw)
	require.Equal(t, TEOF, toks[2].Kind)
}
