// Package parser turns atom-selection text into pkg/ast trees. The grammar
// follows the selection language: molecule-class keywords, categorical
// property tests with value lists and `a to b` ranges, modulo tests,
// `same <prop> as <sel>`, `within`/`exwithin <cutoff> of <sel>`, boolean
// combinators, and numeric comparisons over coordinate axes and numeric
// properties.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"molsel/atomselect-go/pkg/ast"
)

// ParseError reports a selection that could not be parsed, with the original
// text and byte offset for diagnosis.
type ParseError struct {
	Text string
	Pos  int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse selection %q at offset %d: %s", e.Text, e.Pos, e.Msg)
}

var keywords = map[string]bool{
	"lipid": true, "lipids": true,
	"ion": true, "ions": true,
	"water": true, "waters": true,
	"hydrogen": true, "noh": true,
	"backbone": true, "sidechain": true,
	"protein": true, "nucleic": true,
}

var stringProps = map[string]bool{
	"name": true, "element": true, "resname": true, "chain": true,
	"segid": true, "segname": true, "altloc": true, "insertion": true,
}

var intProps = map[string]bool{
	"serial": true, "resid": true, "index": true, "residue": true,
}

var numericProps = map[string]bool{
	"mass": true, "charge": true, "occupancy": true, "beta": true,
	"x": true, "y": true, "z": true,
}

var functions = map[string]bool{
	"abs": true, "sqr": true, "sqrt": true,
}

// Words that terminate a property-test value list.
var reserved = map[string]bool{
	"and": true, "or": true, "not": true, "of": true, "to": true,
	"same": true, "within": true, "exwithin": true,
}

type parser struct {
	text string
	toks []Token
	pos  int
}

// Parse compiles one selection string to its AST.
func Parse(text string) (ast.Expression, error) {
	toks, err := lex(text)
	if err != nil {
		return nil, err
	}
	p := &parser{text: text, toks: toks}
	expr, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.Kind != TokEOF {
		return nil, p.errorf(tok.Pos, "unexpected %q after selection", tok.Val)
	}
	return expr, nil
}

func (p *parser) peek() Token  { return p.toks[p.pos] }
func (p *parser) next() Token  { tok := p.toks[p.pos]; p.pos++; return tok }
func (p *parser) mark() int    { return p.pos }
func (p *parser) reset(at int) { p.pos = at }

func (p *parser) errorf(pos int, format string, args ...any) error {
	return &ParseError{Text: p.text, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) acceptWord(word string) bool {
	if tok := p.peek(); tok.Kind == TokWord && tok.Val == word {
		p.pos++
		return true
	}
	return false
}

func (p *parser) parseOr() (ast.Expression, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.acceptWord("or") {
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = ast.Or(left, right)
	}
	return left, nil
}

func (p *parser) parseAnd() (ast.Expression, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.acceptWord("and") {
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = ast.And(left, right)
	}
	return left, nil
}

func (p *parser) parseUnary() (ast.Expression, error) {
	if p.acceptWord("not") {
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return ast.Not(operand), nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (ast.Expression, error) {
	tok := p.peek()
	switch tok.Kind {
	case TokLParen:
		// A parenthesis opens either a grouped selection or the left side of
		// a numeric comparison, e.g. `(x + y) > sqr(5)`. Try the comparison
		// reading first and fall back to the grouped selection.
		at := p.mark()
		if cmp, err := p.parseComparison(); err == nil {
			return cmp, nil
		}
		p.reset(at)
		p.next()
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.Kind != TokRParen {
			return nil, p.errorf(closing.Pos, "expected ')', got %q", closing.Val)
		}
		return ast.Group(inner), nil
	case TokNumber:
		return p.parseComparison()
	case TokOp:
		if tok.Val == "-" {
			return p.parseComparison()
		}
	case TokWord:
		switch {
		case keywords[tok.Val]:
			p.next()
			return ast.KW(tok.Val), nil
		case tok.Val == "same":
			return p.parseSameAs()
		case tok.Val == "within" || tok.Val == "exwithin":
			return p.parseWithin()
		case functions[tok.Val]:
			return p.parseComparison()
		case stringProps[tok.Val]:
			p.next()
			value, err := p.parseStringValues(tok)
			if err != nil {
				return nil, err
			}
			return ast.Match(tok.Val, value), nil
		case intProps[tok.Val]:
			return p.parseIntProperty(tok)
		case numericProps[tok.Val]:
			return p.parseComparison()
		default:
			return nil, p.errorf(tok.Pos, "unknown selection term %q", tok.Val)
		}
	}
	return nil, p.errorf(tok.Pos, "unexpected %q", tok.Val)
}

func (p *parser) parseSameAs() (ast.Expression, error) {
	p.next() // same
	prop := p.next()
	if prop.Kind != TokWord {
		return nil, p.errorf(prop.Pos, "expected a property after \"same\", got %q", prop.Val)
	}
	if !p.acceptWord("as") {
		return nil, p.errorf(p.peek().Pos, "expected \"as\" after \"same %s\"", prop.Val)
	}
	// Special group properties aside, the property must exist; the evaluator
	// rejects ungroupable ones with its own error kind.
	sel, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return ast.Same(prop.Val, sel), nil
}

func (p *parser) parseWithin() (ast.Expression, error) {
	kind := p.next() // within | exwithin
	cutTok := p.next()
	if cutTok.Kind != TokNumber {
		return nil, p.errorf(cutTok.Pos, "expected a cutoff distance after %q, got %q", kind.Val, cutTok.Val)
	}
	cutoff, err := strconv.ParseFloat(cutTok.Val, 64)
	if err != nil {
		return nil, p.errorf(cutTok.Pos, "bad cutoff %q", cutTok.Val)
	}
	if !p.acceptWord("of") {
		return nil, p.errorf(p.peek().Pos, "expected \"of\" after \"%s %s\"", kind.Val, cutTok.Val)
	}
	sel, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return ast.NewWithin(cutoff, sel, kind.Val == "exwithin"), nil
}

// parseIntProperty handles the three readings of an integer property term:
// a modulo test (`serial % 2 == 0`), a numeric comparison (`resid < 5`), or
// a value-list membership test (`index 1 to 5`).
func (p *parser) parseIntProperty(prop Token) (ast.Expression, error) {
	at := p.mark()
	p.next()
	tok := p.peek()
	if tok.Kind == TokOp {
		switch tok.Val {
		case "%":
			return p.parseModulo(prop)
		case "-":
			// A leading minus reads as a negative value: `resid -27`.
		default:
			p.reset(at)
			return p.parseComparison()
		}
	}
	value, err := p.parseIntValues(prop)
	if err != nil {
		return nil, err
	}
	return ast.Match(prop.Val, value), nil
}

func (p *parser) parseModulo(prop Token) (ast.Expression, error) {
	p.next() // %
	divisor, err := p.parseIntToken()
	if err != nil {
		return nil, err
	}
	eq := p.next()
	if eq.Kind != TokOp || (eq.Val != "=" && eq.Val != "==") {
		return nil, p.errorf(eq.Pos, "expected \"==\" in modulo test, got %q", eq.Val)
	}
	remainder, err := p.parseIntToken()
	if err != nil {
		return nil, err
	}
	return ast.Modulo(prop.Val, divisor, remainder), nil
}

func (p *parser) parseIntToken() (int, error) {
	neg := false
	tok := p.next()
	if tok.Kind == TokOp && tok.Val == "-" {
		neg = true
		tok = p.next()
	}
	if tok.Kind == TokNumber {
		n, err := strconv.Atoi(tok.Val)
		if err == nil {
			if neg {
				n = -n
			}
			return n, nil
		}
	}
	if tok.Kind == TokString && !neg {
		if n, err := strconv.Atoi(tok.Val); err == nil {
			return n, nil
		}
	}
	return 0, p.errorf(tok.Pos, "expected an integer, got %q", tok.Val)
}

// parseIntValues collects one or more integer values, including quoted
// integers and inclusive `a to b` ranges.
func (p *parser) parseIntValues(prop Token) (ast.Expression, error) {
	var values []int
	for {
		tok := p.peek()
		if tok.Kind == TokWord && reserved[tok.Val] && tok.Val != "to" {
			break
		}
		switch {
		case tok.Kind == TokNumber || tok.Kind == TokString || (tok.Kind == TokOp && tok.Val == "-"):
			n, err := p.parseIntToken()
			if err != nil {
				return nil, err
			}
			if p.acceptWord("to") {
				end, err := p.parseIntToken()
				if err != nil {
					return nil, err
				}
				if end < n {
					return nil, p.errorf(tok.Pos, "bad range %d to %d", n, end)
				}
				for v := n; v <= end; v++ {
					values = append(values, v)
				}
			} else {
				values = append(values, n)
			}
			continue
		}
		break
	}
	if len(values) == 0 {
		return nil, p.errorf(p.peek().Pos, "expected at least one value for %q", prop.Val)
	}
	if len(values) == 1 {
		return ast.Int(values[0]), nil
	}
	return ast.Ints(values...), nil
}

// parseStringValues collects one or more string values. Bare words, quoted
// strings (which may carry the wildcard marker) and bare numbers are all
// legal; numbers keep their literal spelling, so `chain 0` matches the
// string "0".
func (p *parser) parseStringValues(prop Token) (ast.Expression, error) {
	var values []string
	for {
		tok := p.peek()
		if tok.Kind == TokWord && reserved[tok.Val] {
			break
		}
		if tok.Kind == TokWord || tok.Kind == TokString || tok.Kind == TokNumber {
			values = append(values, tok.Val)
			p.next()
			continue
		}
		if tok.Kind == TokOp && tok.Val == "-" {
			// A negative number spelled into a string property keeps its
			// textual form, e.g. insertion "-1".
			at := p.mark()
			p.next()
			if num := p.peek(); num.Kind == TokNumber {
				p.next()
				values = append(values, "-"+num.Val)
				continue
			}
			p.reset(at)
		}
		break
	}
	if len(values) == 0 {
		return nil, p.errorf(p.peek().Pos, "expected at least one value for %q", prop.Val)
	}
	if len(values) == 1 {
		return ast.Str(values[0]), nil
	}
	return ast.Strs(values...), nil
}

//-----------------------------------------------------------------------------
// Numeric comparisons
//-----------------------------------------------------------------------------

func (p *parser) parseComparison() (ast.Expression, error) {
	left, err := p.parseNumericExpr()
	if err != nil {
		return nil, err
	}
	op := p.next()
	if op.Kind != TokOp || !isComparisonOp(op.Val) {
		return nil, p.errorf(op.Pos, "expected a comparison operator, got %q", op.Val)
	}
	right, err := p.parseNumericExpr()
	if err != nil {
		return nil, err
	}
	opName := op.Val
	if opName == "==" {
		opName = "="
	}
	return ast.Cmp(opName, left, right), nil
}

func isComparisonOp(op string) bool {
	switch op {
	case "=", "==", "<", ">", "<=", ">=":
		return true
	}
	return false
}

func (p *parser) parseNumericExpr() (ast.Expression, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		if tok.Kind != TokOp || (tok.Val != "+" && tok.Val != "-") {
			return left, nil
		}
		p.next()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = ast.Arith(tok.Val, left, right)
	}
}

func (p *parser) parseTerm() (ast.Expression, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		if tok.Kind != TokOp || (tok.Val != "*" && tok.Val != "/") {
			return left, nil
		}
		p.next()
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		left = ast.Arith(tok.Val, left, right)
	}
}

func (p *parser) parseFactor() (ast.Expression, error) {
	tok := p.next()
	switch {
	case tok.Kind == TokNumber:
		if strings.Contains(tok.Val, ".") {
			f, err := strconv.ParseFloat(tok.Val, 64)
			if err != nil {
				return nil, p.errorf(tok.Pos, "bad number %q", tok.Val)
			}
			return ast.Flt(f), nil
		}
		n, err := strconv.Atoi(tok.Val)
		if err != nil {
			return nil, p.errorf(tok.Pos, "bad number %q", tok.Val)
		}
		return ast.Int(n), nil
	case tok.Kind == TokOp && tok.Val == "-":
		operand, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		return ast.Neg(operand), nil
	case tok.Kind == TokLParen:
		inner, err := p.parseNumericExpr()
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.Kind != TokRParen {
			return nil, p.errorf(closing.Pos, "expected ')', got %q", closing.Val)
		}
		return ast.Group(inner), nil
	case tok.Kind == TokWord && functions[tok.Val]:
		if open := p.next(); open.Kind != TokLParen {
			return nil, p.errorf(open.Pos, "expected '(' after %q", tok.Val)
		}
		operand, err := p.parseNumericExpr()
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.Kind != TokRParen {
			return nil, p.errorf(closing.Pos, "expected ')', got %q", closing.Val)
		}
		return ast.Fn(tok.Val, operand), nil
	case tok.Kind == TokWord && (numericProps[tok.Val] || intProps[tok.Val]):
		return ast.NumProp(tok.Val), nil
	}
	return nil, p.errorf(tok.Pos, "unexpected %q in numeric expression", tok.Val)
}
