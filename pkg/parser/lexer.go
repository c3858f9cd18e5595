package parser

import (
	"fmt"
	"strings"
	"unicode"
)

type TokenKind string

const (
	TokEOF    TokenKind = "EOF"
	TokWord   TokenKind = "WORD"
	TokNumber TokenKind = "NUMBER"
	TokString TokenKind = "STRING"
	TokOp     TokenKind = "OP"
	TokLParen TokenKind = "LPAREN"
	TokRParen TokenKind = "RPAREN"
)

type Token struct {
	Kind TokenKind
	Val  string
	Pos  int
}

// lex tokenizes a whole selection up front. The parser backtracks over the
// token slice when disambiguating parenthesized selections from
// parenthesized numeric expressions, so streaming lexing buys nothing here.
func lex(text string) ([]Token, error) {
	var toks []Token
	pos := 0
	for pos < len(text) {
		ch := text[pos]
		switch {
		case unicode.IsSpace(rune(ch)):
			pos++
		case ch == '(':
			toks = append(toks, Token{Kind: TokLParen, Val: "(", Pos: pos})
			pos++
		case ch == ')':
			toks = append(toks, Token{Kind: TokRParen, Val: ")", Pos: pos})
			pos++
		case ch == '\'' || ch == '"':
			end := strings.IndexByte(text[pos+1:], ch)
			if end < 0 {
				return nil, &ParseError{Text: text, Pos: pos, Msg: "unterminated quoted string"}
			}
			toks = append(toks, Token{Kind: TokString, Val: text[pos+1 : pos+1+end], Pos: pos})
			pos += end + 2
		case ch == '<' || ch == '>':
			op := string(ch)
			if pos+1 < len(text) && text[pos+1] == '=' {
				op += "="
			}
			toks = append(toks, Token{Kind: TokOp, Val: op, Pos: pos})
			pos += len(op)
		case ch == '=':
			op := "="
			if pos+1 < len(text) && text[pos+1] == '=' {
				op = "=="
			}
			toks = append(toks, Token{Kind: TokOp, Val: op, Pos: pos})
			pos += len(op)
		case ch == '+' || ch == '-' || ch == '*' || ch == '/' || ch == '%':
			toks = append(toks, Token{Kind: TokOp, Val: string(ch), Pos: pos})
			pos++
		case ch >= '0' && ch <= '9' || ch == '.':
			start := pos
			sawDot := false
			for pos < len(text) {
				c := text[pos]
				if c >= '0' && c <= '9' {
					pos++
					continue
				}
				if c == '.' && !sawDot {
					sawDot = true
					pos++
					continue
				}
				break
			}
			val := text[start:pos]
			if val == "." {
				return nil, &ParseError{Text: text, Pos: start, Msg: "stray '.'"}
			}
			toks = append(toks, Token{Kind: TokNumber, Val: val, Pos: start})
		case isWordStart(ch):
			start := pos
			for pos < len(text) && isWordChar(text[pos]) {
				pos++
			}
			toks = append(toks, Token{Kind: TokWord, Val: text[start:pos], Pos: start})
		default:
			return nil, &ParseError{Text: text, Pos: pos, Msg: fmt.Sprintf("unexpected character %q", ch)}
		}
	}
	toks = append(toks, Token{Kind: TokEOF, Pos: len(text)})
	return toks, nil
}

func isWordStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isWordChar(ch byte) bool {
	return isWordStart(ch) || (ch >= '0' && ch <= '9')
}
