/*
File    : rusty-monkey/parser/parser.go
*/

// Package parser implements a Pratt parser (top-down operator precedence
// parsing) for the Monkey language. It consumes the lazy token stream
// produced by lexer.Lexer and produces an ast.Program: a tree of
// statements and expressions ready for an evaluator to walk.
//
// The parser maintains one token of lookahead (curToken/peekToken) and
// associates each token type with a prefix and/or infix parsing function
// (prefixParseFns/infixParseFns) — the classic Pratt dispatch table. It
// does not attempt error recovery: it collects parse errors as it goes and
// stops at the first statement it cannot parse, per the spec's "no
// recovery" contract.
package parser

import (
	"fmt"

	"github.com/ChrisAmora/rusty-monkey/ast"
	"github.com/ChrisAmora/rusty-monkey/lexer"
	"github.com/ChrisAmora/rusty-monkey/token"
)

// Operator precedence levels, lowest to highest. Call binds tightest so
// that `add(1, 2)` and chained calls like `fn(x){x}(5)` parse correctly;
// prefix operators bind just below call so `-a * b` parses as `(-a) * b`.
const (
	_ int = iota
	LOWEST
	EQUALS      // == !=
	LESSGREATER // > < >= <=
	SUM         // + -
	PRODUCT     // * /
	PREFIX      // -X !X
	CALL        // myFunction(X)
)

var precedences = map[token.Type]int{
	token.EQ:       EQUALS,
	token.NEQ:      EQUALS,
	token.LT:       LESSGREATER,
	token.LTE:      LESSGREATER,
	token.GT:       LESSGREATER,
	token.GTE:      LESSGREATER,
	token.PLUS:     SUM,
	token.MINUS:    SUM,
	token.SLASH:    PRODUCT,
	token.ASTERISK: PRODUCT,
	token.LPAREN:   CALL,
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

// ParseError is a kinded parse failure. Kind is one of the taxonomy names
// in spec section 7: UnexpectedToken, ExpectedSemicolon, ExpectedIdentifier,
// ExpectedClose.
type ParseError struct {
	Kind    string
	Message string
}

func (e *ParseError) Error() string { return e.Message }

// Parser holds parsing state: the lexer feeding it tokens, the current and
// peek token, the collected errors, and the prefix/infix dispatch tables.
type Parser struct {
	l *lexer.Lexer

	curToken  token.Token
	peekToken token.Token

	errors []*ParseError

	prefixParseFns map[token.Type]prefixParseFn
	infixParseFns  map[token.Type]infixParseFn
}

// New creates a Parser over the token stream from l, primes the two-token
// lookahead, and registers every prefix/infix parse function the grammar
// needs.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l, errors: []*ParseError{}}

	p.prefixParseFns = make(map[token.Type]prefixParseFn)
	p.registerPrefix(token.IDENT, p.parseIdentifier)
	p.registerPrefix(token.INT, p.parseIntegerLiteral)
	p.registerPrefix(token.STRING, p.parseStringLiteral)
	p.registerPrefix(token.TRUE, p.parseBoolean)
	p.registerPrefix(token.FALSE, p.parseBoolean)
	p.registerPrefix(token.NIL, p.parseNilLiteral)
	p.registerPrefix(token.BANG, p.parsePrefixExpression)
	p.registerPrefix(token.MINUS, p.parsePrefixExpression)
	p.registerPrefix(token.LPAREN, p.parseGroupedExpression)
	p.registerPrefix(token.IF, p.parseIfExpression)
	p.registerPrefix(token.FUNCTION, p.parseFunctionLiteral)

	p.infixParseFns = make(map[token.Type]infixParseFn)
	p.registerInfix(token.PLUS, p.parseInfixExpression)
	p.registerInfix(token.MINUS, p.parseInfixExpression)
	p.registerInfix(token.SLASH, p.parseInfixExpression)
	p.registerInfix(token.ASTERISK, p.parseInfixExpression)
	p.registerInfix(token.EQ, p.parseInfixExpression)
	p.registerInfix(token.NEQ, p.parseInfixExpression)
	p.registerInfix(token.LT, p.parseInfixExpression)
	p.registerInfix(token.LTE, p.parseInfixExpression)
	p.registerInfix(token.GT, p.parseInfixExpression)
	p.registerInfix(token.GTE, p.parseInfixExpression)
	p.registerInfix(token.LPAREN, p.parseCallExpression)

	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) registerPrefix(tokenType token.Type, fn prefixParseFn) {
	p.prefixParseFns[tokenType] = fn
}

func (p *Parser) registerInfix(tokenType token.Type, fn infixParseFn) {
	p.infixParseFns[tokenType] = fn
}

// Errors returns every parse error collected so far.
func (p *Parser) Errors() []*ParseError { return p.errors }

// HasErrors reports whether parsing has failed.
func (p *Parser) HasErrors() bool { return len(p.errors) > 0 }

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curTokenIs(t token.Type) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.Type) bool { return p.peekToken.Type == t }

// expectPeek advances past the peek token if it matches t, otherwise
// records a parse error and leaves the cursor in place.
func (p *Parser) expectPeek(t token.Type) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekCloseError(t)
	return false
}

func (p *Parser) peekCloseError(t token.Type) {
	kind := "UnexpectedToken"
	switch t {
	case token.SEMICOLON:
		kind = "ExpectedSemicolon"
	case token.IDENT:
		kind = "ExpectedIdentifier"
	case token.RPAREN, token.RBRACE:
		kind = "ExpectedClose"
	}
	msg := fmt.Sprintf("expected next token to be %s, got %s instead", t, p.peekToken.Type)
	p.errors = append(p.errors, &ParseError{Kind: kind, Message: msg})
}

func (p *Parser) noPrefixParseFnError(t token.Type) {
	msg := fmt.Sprintf("no prefix parse function for %s found", t)
	p.errors = append(p.errors, &ParseError{Kind: "UnexpectedToken", Message: msg})
}

func (p *Parser) peekPrecedence() int {
	if pr, ok := precedences[p.peekToken.Type]; ok {
		return pr
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if pr, ok := precedences[p.curToken.Type]; ok {
		return pr
	}
	return LOWEST
}

// ParseProgram parses the full token stream into an ast.Program, stopping
// at the first statement it cannot parse (see package doc).
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{Statements: []ast.Statement{}}

	for !p.curTokenIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt == nil || p.HasErrors() {
			return program
		}
		program.Statements = append(program.Statements, stmt)
		p.nextToken()
	}
	return program
}
