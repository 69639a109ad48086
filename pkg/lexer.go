package simplf

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"
)

type TokenType uint64
type stateFunc func(l *Lexer) stateFunc

//go:generate stringer -type=TokenType -trimprefix=Token
const (
	EOF rune = 0

	TokenError TokenType = iota
	TokenEOF
	TokenNumber
	TokenString
	TokenIdentifier
	TokenLineComment

	// Keywords
	TokenAnd
	TokenElse
	TokenFalse
	TokenFor
	TokenFun
	TokenIf
	TokenNil
	TokenOr
	TokenPrint
	TokenReturn
	TokenTrue
	TokenVar
	TokenWhile

	// Operators and punctuation
	TokenOpenParentheses
	TokenCloseParentheses
	TokenOpenCurly
	TokenCloseCurly
	TokenComma
	TokenSemicolon
	TokenQuestion
	TokenColon
	TokenPlus
	TokenMinus
	TokenMulti
	TokenDiv
	TokenBang
	TokenBangEqual
	TokenEqual
	TokenEqualEqual
	TokenGreater
	TokenGreaterEqual
	TokenLess
	TokenLessEqual
)

var keywordTable = map[string]TokenType{
	"and":    TokenAnd,
	"else":   TokenElse,
	"false":  TokenFalse,
	"for":    TokenFor,
	"fun":    TokenFun,
	"if":     TokenIf,
	"nil":    TokenNil,
	"or":     TokenOr,
	"print":  TokenPrint,
	"return": TokenReturn,
	"true":   TokenTrue,
	"var":    TokenVar,
	"while":  TokenWhile,
}

var operatorTable = map[string]TokenType{
	"(":  TokenOpenParentheses,
	")":  TokenCloseParentheses,
	"{":  TokenOpenCurly,
	"}":  TokenCloseCurly,
	",":  TokenComma,
	";":  TokenSemicolon,
	"?":  TokenQuestion,
	":":  TokenColon,
	"+":  TokenPlus,
	"-":  TokenMinus,
	"*":  TokenMulti,
	"/":  TokenDiv,
	"//": TokenLineComment,
	"!":  TokenBang,
	"!=": TokenBangEqual,
	"=":  TokenEqual,
	"==": TokenEqualEqual,
	">":  TokenGreater,
	">=": TokenGreaterEqual,
	"<":  TokenLess,
	"<=": TokenLessEqual,
}

type Token struct {
	Typ   TokenType
	Value string
	Loc   *Location
}

func (t Token) isComment() bool {
	return t.Typ == TokenLineComment
}

// Tokenizer is the source of tokens consumed by the Parser. Do produces the
// tokens and Get hands them out one at a time; once the input is exhausted Get
// keeps returning TokenEOF.
type Tokenizer interface {
	Do()
	Get() Token
	GetFilename() string
}

type Lexer struct {
	filename string
	reader   *bufio.Reader
	done     chan Token

	line  int
	col   int
	start Location
}

func NewLexer(filename string, reader io.Reader) *Lexer {
	return &Lexer{
		filename: filename,
		reader:   bufio.NewReader(reader),
		done:     make(chan Token),
		line:     1,
	}
}

func NewLexerFromReader(reader io.Reader) *Lexer {
	return NewLexer("", reader)
}

func (l *Lexer) GetFilename() string {
	return l.filename
}

// Do runs the lexer until the input is exhausted or an error is found. It is
// meant to run on its own goroutine while a consumer calls Get.
func (l *Lexer) Do() {
	for state := defaultState; state != nil; {
		state = state(l)
	}

	close(l.done)
}

func (l *Lexer) Get() Token {
	tok, ok := <-l.done
	if !ok {
		return Token{Typ: TokenEOF, Loc: l.location()}
	}

	return tok
}

// RunBlocking lexes the whole input and returns every token except the final
// EOF. Comments are included.
func (l *Lexer) RunBlocking() ([]Token, error) {
	go l.Do()

	var tokens []Token
	for {
		t := l.Get()
		if t.Typ == TokenEOF {
			return tokens, nil
		}

		if t.Typ == TokenError {
			// Drain so the producer can terminate
			for range l.done {
			}

			return nil, &SyntaxError{
				Loc:        t.Loc,
				Message:    t.Value,
				Incomplete: isIncompleteToken(t),
			}
		}

		tokens = append(tokens, t)
	}
}

// errUnterminatedString is reported when the input ends inside a string
// literal, which means more input could still complete it.
const errUnterminatedString = "unterminated string"

func isIncompleteToken(t Token) bool {
	return t.Typ == TokenError && t.Value == errUnterminatedString
}

func defaultState(l *Lexer) stateFunc {
	for {
		switch r := l.peek(); {
		case r == EOF:
			l.mark()
			return l.emmitValue(TokenEOF, "")
		case unicode.IsSpace(r):
			l.next()
			continue
		case isDigit(r):
			l.mark()
			return numberState
		case r == '"':
			l.mark()
			return stringState
		case unicode.IsLetter(r) || r == '_':
			l.mark()
			return identifierState
		default:
			l.mark()
			return operatorState
		}
	}
}

func numberState(l *Lexer) stateFunc {
	var num strings.Builder
	for r := l.peek(); isDigit(r); r = l.peek() {
		num.WriteRune(l.next())
	}

	// A fractional part needs at least one digit after the dot
	if b, err := l.reader.Peek(2); err == nil && b[0] == '.' && isDigit(rune(b[1])) {
		num.WriteRune(l.next())
		for r := l.peek(); isDigit(r); r = l.peek() {
			num.WriteRune(l.next())
		}
	}

	return l.emmitValue(TokenNumber, num.String())
}

func stringState(l *Lexer) stateFunc {
	l.next() // Skip the leading double-quote

	var str strings.Builder
	for r := l.next(); r != '"'; r = l.next() {
		if r == EOF {
			return l.errorf(errUnterminatedString)
		}

		str.WriteRune(r)
	}

	return l.emmitValue(TokenString, str.String())
}

func identifierState(l *Lexer) stateFunc {
	var id strings.Builder
	for r := l.peek(); unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'; r = l.peek() {
		id.WriteRune(l.next())
	}

	if t, ok := keywordTable[id.String()]; ok {
		return l.emmitValue(t, id.String())
	}

	return l.emmitValue(TokenIdentifier, id.String())
}

func operatorState(l *Lexer) stateFunc {
	r := l.next()
	if strings.ContainsRune("!=<>/", r) { // Some operators can be two runes
		op := string(r) + string(l.peek())
		if tok, ok := operatorTable[op]; ok {
			l.next() // Skip

			if tok == TokenLineComment {
				return lineCommentState
			}

			return l.emmitValue(tok, op)
		}
	}

	if tok, ok := operatorTable[string(r)]; ok {
		return l.emmitValue(tok, string(r))
	}

	return l.errorf("invalid symbol '%c'", r)
}

func lineCommentState(l *Lexer) stateFunc {
	var id strings.Builder
	for r := l.peek(); r != '\n' && r != EOF; r = l.peek() {
		id.WriteRune(l.next())
	}

	return l.emmitValue(TokenLineComment, id.String())
}

func (l *Lexer) errorf(format string, args ...interface{}) stateFunc {
	l.done <- Token{
		Typ:   TokenError,
		Value: fmt.Sprintf(format, args...),
		Loc:   l.tokenLocation(),
	}

	return nil
}

func (l *Lexer) emmitValue(t TokenType, val string) stateFunc {
	l.done <- Token{
		Typ:   t,
		Value: val,
		Loc:   l.tokenLocation(),
	}

	if t == TokenEOF {
		return nil
	}

	return defaultState
}

// mark records the position of the rune about to be read as the start of the
// next token.
func (l *Lexer) mark() {
	l.start = Location{Filename: l.filename, Line: l.line, Col: l.col + 1}
}

func (l *Lexer) tokenLocation() *Location {
	loc := l.start
	return &loc
}

func (l *Lexer) location() *Location {
	return &Location{Filename: l.filename, Line: l.line, Col: l.col + 1}
}

func (l *Lexer) peek() rune {
	r, _, err := l.reader.ReadRune()
	if err != nil {
		return EOF
	}

	_ = l.reader.UnreadRune()
	return r
}

func (l *Lexer) next() rune {
	r, _, err := l.reader.ReadRune()
	if err != nil {
		// Read failures end the input like io.EOF does
		return EOF
	}

	if r == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}

	return r
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}
