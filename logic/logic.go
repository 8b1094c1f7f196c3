// Package logic evaluates boolean expressions such as "a & !(b | c)" over
// arguments that are predicates on a user supplied type. Precedence from
// strongest to weakest is !, & and |; binary operators associate to the left.
package logic

import (
	"fmt"
	"slices"
)

type Predicate[E any] func(entity E) bool

// ArgFactory turns the text of an argument into a predicate.
type ArgFactory[E any] func(arg string) (Predicate[E], error)

type node[E any] interface {
	apply(entity E) bool
	String() string
}

type argNode[E any] struct {
	desc string
	pred Predicate[E]
}

func (n *argNode[E]) apply(entity E) bool {
	return n.pred(entity)
}

func (n *argNode[E]) String() string {
	return n.desc
}

type notNode[E any] struct {
	sub node[E]
}

func (n *notNode[E]) apply(entity E) bool {
	return !n.sub.apply(entity)
}

func (n *notNode[E]) String() string {
	return "!(" + n.sub.String() + ")"
}

type binNode[E any] struct {
	kind  TokenKind
	left  node[E]
	right node[E]
}

func (n *binNode[E]) apply(entity E) bool {
	if n.kind == TokenAnd {
		return n.left.apply(entity) && n.right.apply(entity)
	}
	return n.left.apply(entity) || n.right.apply(entity)
}

func (n *binNode[E]) String() string {
	return "(" + n.left.String() + " " + n.kind.String() + " " + n.right.String() + ")"
}

// Expression is a compiled logic expression. The empty expression is true
// for every entity.
type Expression[E any] struct {
	root node[E]
}

// Parse tokenizes and compiles input.
func Parse[E any](input string, factory ArgFactory[E]) (*Expression[E], error) {
	tokens, err := Tokenize(input, factory)
	if err != nil {
		return nil, err
	}
	return Compile(tokens)
}

// MustParse is like Parse but panics on error.
func MustParse[E any](input string, factory ArgFactory[E]) *Expression[E] {
	expr, err := Parse(input, factory)
	if err != nil {
		panic(err)
	}
	return expr
}

// Compile builds an expression from tokens in infix order.
func Compile[E any](tokens []Token[E]) (*Expression[E], error) {
	postfix, err := rpn(tokens)
	if err != nil {
		return nil, err
	}
	root, err := buildAST(postfix)
	if err != nil {
		return nil, err
	}
	return &Expression[E]{root: root}, nil
}

func (e *Expression[E]) IsEmpty() bool {
	return e.root == nil
}

func (e *Expression[E]) Apply(entity E) bool {
	if e.IsEmpty() {
		return true
	}
	return e.root.apply(entity)
}

// Args returns the text of every argument from left to right.
func (e *Expression[E]) Args() []string {
	var args []string
	var walk func(n node[E])
	walk = func(n node[E]) {
		switch n := n.(type) {
		case *argNode[E]:
			args = append(args, n.desc)
		case *notNode[E]:
			walk(n.sub)
		case *binNode[E]:
			walk(n.left)
			walk(n.right)
		}
	}
	if e.root != nil {
		walk(e.root)
	}
	return args
}

func (e *Expression[E]) String() string {
	if e.IsEmpty() {
		return "(empty)"
	}
	return e.root.String()
}

// rpn reorders infix tokens into postfix order (shunting-yard).
func rpn[E any](tokens []Token[E]) ([]Token[E], error) {
	var (
		stack  []Token[E]
		output []Token[E]
	)

	for _, tok := range tokens {
		switch tok.Kind {
		case TokenArg:
			output = append(output, tok)
		case TokenLParen, TokenNot:
			stack = append(stack, tok)
		case TokenRParen:
			for {
				if len(stack) == 0 {
					return nil, &CompileError{Offset: tok.Offset, Message: "unbalanced parentheses"}
				}
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if top.Kind == TokenLParen {
					break
				}
				output = append(output, top)
			}
		case TokenAnd, TokenOr:
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				if !top.isOperator() || top.precedence() > tok.precedence() {
					break
				}
				output = append(output, top)
				stack = stack[:len(stack)-1]
			}
			stack = append(stack, tok)
		}
	}

	for _, top := range slices.Backward(stack) {
		if top.Kind == TokenLParen {
			return nil, &CompileError{Offset: top.Offset, Message: "unbalanced parentheses"}
		}
		output = append(output, top)
	}
	return output, nil
}

func buildAST[E any](postfix []Token[E]) (node[E], error) {
	if len(postfix) == 0 {
		return nil, nil
	}

	var stack []node[E]
	pop := func() node[E] {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return n
	}

	for _, tok := range postfix {
		switch tok.Kind {
		case TokenArg:
			if tok.Pred == nil {
				return nil, &CompileError{Offset: tok.Offset, Message: fmt.Sprintf("argument %q has no predicate", tok.Arg)}
			}
			stack = append(stack, &argNode[E]{desc: tok.Arg, pred: tok.Pred})
		case TokenNot:
			if len(stack) < 1 {
				return nil, &CompileError{Offset: tok.Offset, Message: "no argument for operator " + tok.String()}
			}
			stack = append(stack, &notNode[E]{sub: pop()})
		case TokenAnd, TokenOr:
			if len(stack) < 2 {
				return nil, &CompileError{Offset: tok.Offset, Message: "no argument for operator " + tok.String()}
			}
			right := pop()
			left := pop()
			stack = append(stack, &binNode[E]{kind: tok.Kind, left: left, right: right})
		}
	}

	if len(stack) != 1 {
		return nil, &CompileError{Offset: postfix[len(postfix)-1].Offset, Message: fmt.Sprintf("expected a single expression, got %d", len(stack))}
	}
	return stack[0], nil
}
