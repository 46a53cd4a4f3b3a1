package predicate

import (
	"fmt"

	"github.com/siso-ai/siso-database/internal/value"
)

// Parse turns a WHERE clause into a predicate tree.
//
// Grammar (keywords case-insensitive):
//
//	clause    := andChain ( OR clause )?
//	andChain  := leaf ( AND andChain )?
//	leaf      := column IS [NOT] NULL
//	           | column BETWEEN literal AND literal
//	           | column IN '(' literal ( ',' literal )* ')'
//	           | column LIKE literal
//	           | column cmpOp literal          cmpOp := != <= >= <> = < >
//
// OR binds loosest, matching the split-at-first-OR shape: the clause
// splits at the first top-level OR and both halves recurse, producing a
// right-leaning tree. BETWEEN consumes its own AND inside the leaf
// production, so a range's internal AND is structurally incapable of
// being read as a combinator.
//
// Any leaf failure aborts the whole parse - no partial tree is returned.
func Parse(clause string) (Tree, error) {
	toks, err := tokenize(clause)
	if err != nil {
		return nil, err
	}
	if len(toks) == 0 {
		return nil, fmt.Errorf("empty WHERE clause")
	}

	p := &parser{toks: toks}
	tree, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if !p.done() {
		return nil, fmt.Errorf("unexpected %q after condition", p.peek().text)
	}
	return tree, nil
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) done() bool {
	return p.pos >= len(p.toks)
}

func (p *parser) peek() token {
	if p.done() {
		return token{}
	}
	return p.toks[p.pos]
}

func (p *parser) next() token {
	t := p.peek()
	p.pos++
	return t
}

func (p *parser) parseOr() (Tree, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	if !p.done() && p.peek().isKeyword("OR") {
		p.next()
		right, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		return Branch{Left: left, Op: CombOr, Right: right}, nil
	}
	return left, nil
}

func (p *parser) parseAnd() (Tree, error) {
	left, err := p.parseLeaf()
	if err != nil {
		return nil, err
	}
	if !p.done() && p.peek().isKeyword("AND") {
		p.next()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		return Branch{Left: left, Op: CombAnd, Right: right}, nil
	}
	return left, nil
}

// parseLeaf parses a single condition. Operators are tried in the fixed
// order IS [NOT] NULL, BETWEEN, IN, LIKE, then comparison.
func (p *parser) parseLeaf() (Tree, error) {
	if p.done() {
		return nil, fmt.Errorf("expected condition, found end of clause")
	}
	colTok := p.next()
	if colTok.kind != tokWord {
		return nil, fmt.Errorf("expected column name, found %q", colTok.text)
	}
	column := colTok.text

	op := p.peek()
	switch {
	case op.isKeyword("IS"):
		p.next()
		return p.parseNullTest(column)

	case op.isKeyword("BETWEEN"):
		p.next()
		return p.parseBetween(column)

	case op.isKeyword("IN"):
		p.next()
		return p.parseIn(column)

	case op.isKeyword("LIKE"):
		p.next()
		lit, err := p.literal("LIKE pattern")
		if err != nil {
			return nil, err
		}
		return Like{Column: column, Pattern: value.Render(lit)}, nil

	case op.kind == tokSymbol:
		return p.parseCompare(column)

	default:
		return nil, fmt.Errorf("expected operator after column %s, found %q", column, op.text)
	}
}

func (p *parser) parseNullTest(column string) (Tree, error) {
	if p.peek().isKeyword("NOT") {
		p.next()
		if !p.peek().isKeyword("NULL") {
			return nil, fmt.Errorf("expected NULL after %s IS NOT, found %q", column, p.peek().text)
		}
		p.next()
		return NullTest{Column: column, Negated: true}, nil
	}
	if !p.peek().isKeyword("NULL") {
		return nil, fmt.Errorf("expected NULL after %s IS, found %q", column, p.peek().text)
	}
	p.next()
	return NullTest{Column: column}, nil
}

// parseBetween consumes `literal AND literal`. The AND here belongs to the
// range production and is consumed before combinator parsing can see it.
func (p *parser) parseBetween(column string) (Tree, error) {
	low, err := p.literal("BETWEEN lower bound")
	if err != nil {
		return nil, err
	}
	if !p.peek().isKeyword("AND") {
		return nil, fmt.Errorf("expected AND between BETWEEN bounds for column %s, found %q", column, p.peek().text)
	}
	p.next()
	high, err := p.literal("BETWEEN upper bound")
	if err != nil {
		return nil, err
	}
	return Between{Column: column, Low: low, High: high}, nil
}

func (p *parser) parseIn(column string) (Tree, error) {
	if !p.peek().isSymbol("(") {
		return nil, fmt.Errorf("expected ( after %s IN, found %q", column, p.peek().text)
	}
	p.next()

	var vals []value.Value
	for {
		lit, err := p.literal("IN list element")
		if err != nil {
			return nil, err
		}
		vals = append(vals, lit)

		sep := p.next()
		if sep.isSymbol(",") {
			continue
		}
		if sep.isSymbol(")") {
			break
		}
		return nil, fmt.Errorf("expected , or ) in IN list for column %s, found %q", column, sep.text)
	}
	return In{Column: column, Values: vals}, nil
}

func (p *parser) parseCompare(column string) (Tree, error) {
	opTok := p.next()
	var op CompareOp
	switch opTok.text {
	case "=":
		op = OpEq
	case "!=", "<>":
		op = OpNe
	case "<":
		op = OpLt
	case "<=":
		op = OpLe
	case ">":
		op = OpGt
	case ">=":
		op = OpGe
	default:
		return nil, fmt.Errorf("unknown operator %q for column %s", opTok.text, column)
	}

	operand, err := p.literal(fmt.Sprintf("operand of %s %s", column, op))
	if err != nil {
		return nil, err
	}
	return Compare{Column: column, Op: op, Operand: operand}, nil
}

// literal consumes one literal token: a quoted string stays a string,
// a bare word goes through NULL / int / decimal / string inference.
func (p *parser) literal(where string) (value.Value, error) {
	if p.done() {
		return nil, fmt.Errorf("expected %s, found end of clause", where)
	}
	t := p.next()
	switch t.kind {
	case tokString:
		return value.String(t.text), nil
	case tokWord:
		return value.ParseLiteral(t.text), nil
	default:
		return nil, fmt.Errorf("expected %s, found %q", where, t.text)
	}
}
