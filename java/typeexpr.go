package java

import (
	"fmt"
	"strings"

	"github.com/dhamidi/jtype/ebnflex"
)

const typeExprGrammar = `
Tokens     = { Ident | Whitespace | Punct } .
Ident      = letter { letter | digit } .
Whitespace = space { space } .
Punct      = "<" | ">" | "," | "." | "?" | "[" | "]" .
letter     = "a" … "z" | "A" … "Z" | "_" | "$" .
digit      = "0" … "9" .
space      = " " | "\t" | "\n" | "\r" .
`

var typeExprTokens = ebnflex.MustParseGrammar("typeexpr.ebnf", typeExprGrammar, "Tokens")

type TypeExpressionError struct {
	Expr    string
	Offset  int
	Message string
}

func (e *TypeExpressionError) Error() string {
	return fmt.Sprintf("invalid type expression %q at offset %d: %s", e.Expr, e.Offset, e.Message)
}

// ParseTypeExpression parses a Java type literal such as
// "java.util.Map<String, java.util.List<? extends Number>>[]". Names without
// a package are taken from java.lang. Inner classes are written either with
// '$' or as Outer<A>.Inner.
func ParseTypeExpression(expr string) (Type, error) {
	lexer := ebnflex.NewLexer(typeExprTokens, []string{"Ident", "Punct", "Whitespace"}, []byte(expr)).
		Skip("Whitespace")
	p := &typeExprParser{expr: expr, tokens: lexer.Tokenize()}
	t := p.typeExpr()
	if p.err == nil && p.peek().Kind != "EOF" {
		p.fail("unexpected %q", p.peek().Literal)
	}
	if p.err != nil {
		return nil, p.err
	}
	return t, nil
}

type typeExprParser struct {
	expr   string
	tokens []ebnflex.Token
	pos    int
	err    error
}

func (p *typeExprParser) peek() ebnflex.Token {
	return p.tokens[p.pos]
}

func (p *typeExprParser) next() ebnflex.Token {
	tok := p.tokens[p.pos]
	if tok.Kind != "EOF" {
		p.pos++
	}
	return tok
}

func (p *typeExprParser) fail(format string, args ...any) {
	if p.err == nil {
		p.err = &TypeExpressionError{Expr: p.expr, Offset: p.peek().Offset, Message: fmt.Sprintf(format, args...)}
	}
}

func (p *typeExprParser) is(literal string) bool {
	return p.err == nil && p.peek().Kind == "Punct" && p.peek().Literal == literal
}

func (p *typeExprParser) expect(literal string) {
	if !p.is(literal) {
		p.fail("expected %q", literal)
		return
	}
	p.next()
}

func (p *typeExprParser) ident() string {
	if p.err != nil {
		return ""
	}
	if p.peek().Kind != "Ident" {
		p.fail("expected identifier")
		return ""
	}
	return p.next().Literal
}

func (p *typeExprParser) typeExpr() Type {
	t := p.classOrPrimitive()
	for p.is("[") {
		p.next()
		p.expect("]")
		if ref, ok := t.(ClassRef); ok {
			t = ClassRef{Name: ref.Name + "[]"}
		} else {
			t = &GenericArrayType{Component: t}
		}
	}
	return t
}

func (p *typeExprParser) classOrPrimitive() Type {
	parts := []string{p.ident()}
	for p.is(".") && p.tokens[p.pos+1].Kind == "Ident" {
		p.next()
		parts = append(parts, p.ident())
	}
	if p.err != nil {
		return nil
	}

	name := strings.Join(parts, ".")
	if IsPrimitiveName(name) {
		if p.is("<") {
			p.fail("primitive %s cannot take type arguments", name)
		}
		return ClassRef{Name: name}
	}
	if len(parts) == 1 {
		name = "java.lang." + name
	}

	var t Type = ClassRef{Name: name}
	if p.is("<") {
		t = &ParameterizedType{Raw: name, Args: p.typeArguments()}
	}
	for p.is(".") {
		p.next()
		inner := p.ident()
		owner := t
		name = name + "$" + inner
		pt := &ParameterizedType{Raw: name, Owner: owner}
		if p.is("<") {
			pt.Args = p.typeArguments()
		}
		if _, raw := owner.(ClassRef); raw && len(pt.Args) == 0 {
			t = ClassRef{Name: name}
		} else {
			t = pt
		}
	}
	return t
}

func (p *typeExprParser) typeArguments() []Type {
	p.expect("<")
	var args []Type
	for p.err == nil {
		args = append(args, p.typeArgument())
		if !p.is(",") {
			break
		}
		p.next()
	}
	p.expect(">")
	return args
}

func (p *typeExprParser) typeArgument() Type {
	if !p.is("?") {
		return p.typeExpr()
	}
	p.next()
	if p.peek().Kind == "Ident" {
		switch p.peek().Literal {
		case "extends":
			p.next()
			return &WildcardType{Upper: []Type{p.typeExpr()}}
		case "super":
			p.next()
			return &WildcardType{Upper: []Type{ObjectType}, Lower: []Type{p.typeExpr()}}
		}
	}
	return &WildcardType{Upper: []Type{ObjectType}}
}
