// Package ebnflex provides lexical scanning based on EBNF grammars.
package ebnflex

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/exp/ebnf"
)

// Token represents a lexical token with its byte offset.
type Token struct {
	Kind    string
	Literal string
	Offset  int
}

func (t Token) String() string {
	return fmt.Sprintf("%d %s %q", t.Offset, t.Kind, t.Literal)
}

// memoKey is used for memoization of match results.
type memoKey struct {
	name   string
	offset int
}

// Lexer tokenizes input based on an EBNF grammar. Only the productions
// named in kinds produce tokens; earlier kinds win ties.
type Lexer struct {
	grammar  ebnf.Grammar
	kinds    []string
	skip     map[string]bool
	input    []byte
	pos      int
	memo     map[memoKey]int  // match length per production and offset
	visiting map[memoKey]bool // cycle detection
}

func NewLexer(grammar ebnf.Grammar, kinds []string, input []byte) *Lexer {
	return &Lexer{
		grammar:  grammar,
		kinds:    kinds,
		skip:     make(map[string]bool),
		input:    input,
		memo:     make(map[memoKey]int),
		visiting: make(map[memoKey]bool),
	}
}

// Skip drops tokens of the given kinds from NextToken's output.
func (l *Lexer) Skip(kinds ...string) *Lexer {
	for _, k := range kinds {
		l.skip[k] = true
	}
	return l
}

// ParseGrammar parses src and verifies it from the start production.
func ParseGrammar(name, src, start string) (ebnf.Grammar, error) {
	grammar, err := ebnf.Parse(name, strings.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	if err := ebnf.Verify(grammar, start); err != nil {
		return nil, fmt.Errorf("verify grammar: %w", err)
	}
	return grammar, nil
}

// MustParseGrammar is like ParseGrammar but panics on error. It is meant
// for grammars embedded in the program.
func MustParseGrammar(name, src, start string) ebnf.Grammar {
	g, err := ParseGrammar(name, src, start)
	if err != nil {
		panic(err)
	}
	return g
}

// NextToken returns the longest match among the token productions.
// Unmatched input yields a single-byte ERROR token.
func (l *Lexer) NextToken() (Token, error) {
	for {
		tok, err := l.next()
		if err != nil || !l.skip[tok.Kind] {
			return tok, err
		}
	}
}

func (l *Lexer) next() (Token, error) {
	if l.pos >= len(l.input) {
		return Token{Kind: "EOF", Offset: l.pos}, io.EOF
	}

	start := l.pos
	// positions move between tokens, so memoized lengths are per token
	l.memo = make(map[memoKey]int)

	bestKind, bestLen := "", 0
	for _, kind := range l.kinds {
		prod, ok := l.grammar[kind]
		if !ok || prod.Expr == nil {
			continue
		}
		l.visiting = make(map[memoKey]bool)
		if n := l.tryMatch(prod.Expr, start); n > bestLen {
			bestKind, bestLen = kind, n
		}
	}

	if bestLen == 0 {
		l.pos++
		return Token{Kind: "ERROR", Literal: string(l.input[start]), Offset: start}, nil
	}
	l.pos += bestLen
	return Token{Kind: bestKind, Literal: string(l.input[start:l.pos]), Offset: start}, nil
}

// noMatch distinguishes a failed match from one that consumed nothing.
const noMatch = -1

// tryMatch returns the length of the match at offset, or noMatch.
func (l *Lexer) tryMatch(expr ebnf.Expression, offset int) int {
	switch e := expr.(type) {
	case *ebnf.Token:
		if bytes.HasPrefix(l.input[offset:], []byte(e.String)) {
			return len(e.String)
		}
		return noMatch

	case *ebnf.Range:
		if offset >= len(l.input) || len(e.Begin.String) != 1 || len(e.End.String) != 1 {
			return noMatch
		}
		ch := l.input[offset]
		if ch >= e.Begin.String[0] && ch <= e.End.String[0] {
			return 1
		}
		return noMatch

	case ebnf.Sequence:
		total := 0
		for _, item := range e {
			n := l.tryMatch(item, offset+total)
			if n == noMatch {
				return noMatch
			}
			total += n
		}
		return total

	case ebnf.Alternative:
		best := noMatch
		for _, alt := range e {
			if n := l.tryMatch(alt, offset); n > best {
				best = n
			}
		}
		return best

	case *ebnf.Repetition:
		total := 0
		for {
			n := l.tryMatch(e.Body, offset+total)
			// an empty body match would loop forever
			if n <= 0 {
				return total
			}
			total += n
		}

	case *ebnf.Option:
		if n := l.tryMatch(e.Body, offset); n != noMatch {
			return n
		}
		return 0

	case *ebnf.Group:
		return l.tryMatch(e.Body, offset)

	case *ebnf.Name:
		return l.tryMatchName(e.String, offset)
	}
	return noMatch
}

// tryMatchName matches a named production with memoization and cycle detection.
func (l *Lexer) tryMatchName(name string, offset int) int {
	key := memoKey{name: name, offset: offset}
	if result, ok := l.memo[key]; ok {
		return result
	}
	// left recursion
	if l.visiting[key] {
		return noMatch
	}

	prod, ok := l.grammar[name]
	if !ok || prod.Expr == nil {
		l.memo[key] = noMatch
		return noMatch
	}

	l.visiting[key] = true
	result := l.tryMatch(prod.Expr, offset)
	delete(l.visiting, key)

	l.memo[key] = result
	return result
}

// Tokenize reads all tokens up to and including EOF.
func (l *Lexer) Tokenize() []Token {
	var tokens []Token
	for {
		tok, err := l.NextToken()
		tokens = append(tokens, tok)
		if err != nil {
			return tokens
		}
	}
}
