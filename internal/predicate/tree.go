package predicate

import "github.com/siso-ai/siso-database/internal/value"

// Tree represents a parsed WHERE clause.
//
// This is a sealed interface - only types in this package implement it.
// The marker method pattern prevents external implementations and enables
// exhaustive type switches in the evaluator and renderer.
//
// Leaf types: Compare, In, Like, Between, NullTest.
// Branch combines two subtrees with AND or OR.
//
// A tree is immutable after construction and owned by the statement spec
// that carries it.
type Tree interface {
	treeNode() // Marker method - seals interface to this package
}

// CompareOp is one of the six comparison operators.
type CompareOp string

const (
	OpEq CompareOp = "="
	OpNe CompareOp = "!="
	OpLt CompareOp = "<"
	OpLe CompareOp = "<="
	OpGt CompareOp = ">"
	OpGe CompareOp = ">="
)

// Combinator joins two subtrees in a Branch.
type Combinator string

const (
	CombAnd Combinator = "AND"
	CombOr  Combinator = "OR"
)

// Compare is a leaf comparing a column against a literal operand.
type Compare struct {
	Column  string
	Op      CompareOp
	Operand value.Value
}

func (Compare) treeNode() {}

// In is a leaf testing membership of a column value in a literal list.
type In struct {
	Column string
	Values []value.Value
}

func (In) treeNode() {}

// Like is a leaf matching a column against a pattern.
// In the pattern, % matches any sequence and _ matches a single character.
// Matching is anchored and case-insensitive.
type Like struct {
	Column  string
	Pattern string
}

func (Like) treeNode() {}

// Between is a leaf testing an inclusive two-sided range.
// The operand shape is fixed by construction: exactly a low and a high
// bound, so the range's own AND can never leak out as a combinator.
type Between struct {
	Column string
	Low    value.Value
	High   value.Value
}

func (Between) treeNode() {}

// NullTest is a leaf testing IS NULL (or IS NOT NULL when negated).
type NullTest struct {
	Column  string
	Negated bool
}

func (NullTest) treeNode() {}

// Branch combines two subtrees with a logical combinator.
type Branch struct {
	Left  Tree
	Op    Combinator
	Right Tree
}

func (Branch) treeNode() {}

// Columns returns every column name referenced by the tree, in first-use
// order without duplicates. Used to validate a clause against a schema
// before any row is mutated.
func Columns(t Tree) []string {
	var out []string
	seen := make(map[string]bool)
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	walk(t, add)
	return out
}

func walk(t Tree, add func(string)) {
	switch node := t.(type) {
	case Compare:
		add(node.Column)
	case In:
		add(node.Column)
	case Like:
		add(node.Column)
	case Between:
		add(node.Column)
	case NullTest:
		add(node.Column)
	case Branch:
		walk(node.Left, add)
		walk(node.Right, add)
	}
}
