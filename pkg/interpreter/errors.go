package interpreter

import (
	"errors"
	"fmt"

	"molsel/atomselect-go/pkg/ast"
)

// ErrorKind classifies evaluation failures. Evaluation is all-or-nothing:
// the first error aborts the whole selection, and every kind is
// deterministic for a given molecule and tree.
type ErrorKind int

const (
	UnknownOperation ErrorKind = iota
	UnknownKeyword
	UnknownProperty
	InvalidGroupProperty
	TypeMismatch
	NegativeSqrtArgument
	MalformedAST
	ParseFailure
)

func (k ErrorKind) String() string {
	switch k {
	case UnknownOperation:
		return "unknown operation"
	case UnknownKeyword:
		return "unknown keyword"
	case UnknownProperty:
		return "unknown property"
	case InvalidGroupProperty:
		return "invalid group property"
	case TypeMismatch:
		return "type mismatch"
	case NegativeSqrtArgument:
		return "negative sqrt argument"
	case MalformedAST:
		return "malformed AST"
	case ParseFailure:
		return "parse failure"
	default:
		return fmt.Sprintf("unknown_error_kind_%d", int(k))
	}
}

// EvalError carries the failing kind plus the offending node and detail for
// diagnosis. The engine performs no logging; callers surface the error
// together with the selection text.
type EvalError struct {
	Kind   ErrorKind
	Node   ast.Node
	Detail string
	Err    error
}

func (e *EvalError) Error() string {
	msg := e.Kind.String()
	if e.Node != nil {
		msg += fmt.Sprintf(" in %s node", e.Node.NodeType())
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *EvalError) Unwrap() error { return e.Err }

// KindOf extracts the ErrorKind from an evaluation error.
func KindOf(err error) (ErrorKind, bool) {
	var evalErr *EvalError
	if errors.As(err, &evalErr) {
		return evalErr.Kind, true
	}
	return 0, false
}

func evalErrf(kind ErrorKind, node ast.Node, format string, args ...any) *EvalError {
	return &EvalError{Kind: kind, Node: node, Detail: fmt.Sprintf(format, args...)}
}

func wrapEvalErr(kind ErrorKind, node ast.Node, err error) *EvalError {
	return &EvalError{Kind: kind, Node: node, Err: err}
}
