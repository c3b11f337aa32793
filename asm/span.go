// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package asm

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Span is a half-open byte range [Start, End) of the assembly source, with
// the 1-based line and column (in runes) of Start.
type Span struct {
	Start  int
	End    int
	Line   int
	Column int
}

func (span Span) String() string {
	return fmt.Sprintf("%d:%d", span.Line, span.Column)
}

// Len returns the length of the span, in bytes.
func (span Span) Len() int {
	return span.End - span.Start
}

// Text returns the source text covered by the span.
func (span Span) Text(source string) string {
	if span.Start < 0 || span.End > len(source) || span.Start > span.End {
		return ""
	}
	return source[span.Start:span.End]
}

// To returns a span from the start of span to the end of other.
func (span Span) To(other Span) Span {
	span.End = other.End
	return span
}

// Excerpt renders the source line holding the span, with the spanned
// text underlined.
func (span Span) Excerpt(source string) string {
	if span.Start < 0 || span.Start > len(source) {
		return ""
	}

	begin := strings.LastIndexByte(source[:span.Start], '\n') + 1
	end := strings.IndexByte(source[span.Start:], '\n')
	if end < 0 {
		end = len(source)
	} else {
		end += span.Start
	}
	line := source[begin:end]

	marks := utf8.RuneCountInString(span.Text(source))
	if span.End > end {
		marks = utf8.RuneCountInString(source[span.Start:end])
	}
	if marks == 0 {
		marks = 1
	}

	pad := strings.Map(func(r rune) rune {
		if r == '\t' {
			return '\t'
		}
		return ' '
	}, source[begin:span.Start])

	return line + "\n" + pad + "^" + strings.Repeat("~", marks-1)
}
