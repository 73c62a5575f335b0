package compiler

import "github.com/kristofer/chef/pkg/token"

// precedence orders binding strength from loosest to tightest, so
// parsePrecedence(p) consumes every infix operator whose precedence is
// >= p.
type precedence int

const (
	precNone       precedence = iota
	precAssignment            // =
	precOr                    // alternatively
	precAnd                   // pairs_with
	precEquality              // == !=
	precComparison            // < > <= >=
	precTerm                  // + -
	precFactor                // * /
	precUnary                 // ! -
	precCall                  // . ()
	precPrimary
)

func (p precedence) next() precedence { return p + 1 }

// parseFn is a Pratt prefix or infix handler. canAssign is threaded
// through so that `variable` can tell whether a following `=` should
// be parsed as an assignment, per parsePrecedence's rule that `=` only
// binds at precAssignment or looser.
type parseFn func(c *Compiler, canAssign bool)

type rule struct {
	prefix     parseFn
	infix      parseFn
	precedence precedence
}

// rules is indexed by token.Kind and gives every kind's prefix parser,
// infix parser, and infix binding strength. Kinds with no entry below
// keep the zero rule{nil, nil, precNone}, meaning the kind never
// starts or continues an expression.
var rules [token.KindCount]rule

func init() {
	rules[token.LeftParen] = rule{(*Compiler).grouping, (*Compiler).call, precCall}
	rules[token.Minus] = rule{(*Compiler).unary, (*Compiler).binary, precTerm}
	rules[token.Plus] = rule{nil, (*Compiler).binary, precTerm}
	rules[token.Slash] = rule{nil, (*Compiler).binary, precFactor}
	rules[token.Star] = rule{nil, (*Compiler).binary, precFactor}
	rules[token.Bang] = rule{(*Compiler).unary, nil, precNone}
	rules[token.BangEqual] = rule{nil, (*Compiler).binary, precEquality}
	rules[token.EqualEqual] = rule{nil, (*Compiler).binary, precEquality}
	rules[token.Greater] = rule{nil, (*Compiler).binary, precComparison}
	rules[token.GreaterEqual] = rule{nil, (*Compiler).binary, precComparison}
	rules[token.Less] = rule{nil, (*Compiler).binary, precComparison}
	rules[token.LessEqual] = rule{nil, (*Compiler).binary, precComparison}
	rules[token.Identifier] = rule{(*Compiler).variable, nil, precNone}
	rules[token.String] = rule{(*Compiler).string, nil, precNone}
	rules[token.Number] = rule{(*Compiler).number, nil, precNone}
	rules[token.And] = rule{nil, (*Compiler).and, precAnd}
	rules[token.Or] = rule{nil, (*Compiler).or, precOr}
	rules[token.False] = rule{(*Compiler).literal, nil, precNone}
	rules[token.Nil] = rule{(*Compiler).literal, nil, precNone}
	rules[token.True] = rule{(*Compiler).literal, nil, precNone}
	rules[token.This] = rule{(*Compiler).unsupported, nil, precNone}
	rules[token.Super] = rule{(*Compiler).unsupported, nil, precNone}
}

func getRule(kind token.Kind) rule { return rules[kind] }
