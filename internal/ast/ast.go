// Package ast defines the tagged-variant AST produced by internal/parser
// and annotated by internal/sema, per spec.md §3.
package ast

import "github.com/aledsdavies/pycc/internal/diag"

// Type is the sum type sema assigns to every typed node, per spec.md §3.
type Type struct {
	Kind Kind
	// Elem is the element type for List/Optional.
	Elem *Type
	// Key/Value are the key/value types for Dict.
	Key   *Type
	Value *Type
	// Elems holds per-slot types for Tuple.
	Elems []Type
	// Sig is the signature for FuncRef.
	Sig *Signature
	// Handle names an OpaqueHandle's runtime kind (e.g. "re.Match").
	Handle string
}

type Kind int

const (
	KInt Kind = iota
	KFloat
	KBool
	KStr
	KBytes
	KList
	KDict
	KSet
	KTuple
	KOptional
	KAny
	KNone
	KModuleRef
	KFuncRef
	KOpaqueHandle
	KVoid // for statements / functions with no return type annotation
)

func (k Kind) String() string {
	names := [...]string{"int", "float", "bool", "str", "bytes", "list", "dict",
		"set", "tuple", "optional", "any", "None", "module", "func", "handle", "void"}
	if int(k) < len(names) {
		return names[k]
	}
	return "?"
}

func (t Type) String() string {
	switch t.Kind {
	case KList:
		if t.Elem != nil {
			return "List[" + t.Elem.String() + "]"
		}
		return "List"
	case KDict:
		if t.Key != nil && t.Value != nil {
			return "Dict[" + t.Key.String() + ", " + t.Value.String() + "]"
		}
		return "Dict"
	case KSet:
		if t.Elem != nil {
			return "Set[" + t.Elem.String() + "]"
		}
		return "Set"
	case KOptional:
		if t.Elem != nil {
			return "Optional[" + t.Elem.String() + "]"
		}
		return "Optional"
	case KOpaqueHandle:
		return t.Handle
	default:
		return t.Kind.String()
	}
}

// IsMutable reports whether values of this type support in-place
// augmented assignment, per spec.md §4.3's "closed under the operator"
// rule.
func (t Type) IsMutable() bool {
	switch t.Kind {
	case KList, KDict, KSet:
		return true
	default:
		return false
	}
}

// Signature describes a callable's parameter and return types.
type Signature struct {
	Params  []Type
	Variadic bool
	Return  Type
}

// Node is satisfied by every AST node.
type Node interface {
	Loc() diag.Location
	SetLoc(diag.Location)
	nodeMarker()
}

// SetLoc stamps a source location onto any node. The parser calls this
// right after constructing a node, since the node's own fields are
// usually populated from sub-parses that consume tokens first.
func SetLoc(n Node, loc diag.Location) { n.SetLoc(loc) }

type base struct {
	Location diag.Location
	Resolved Type
}

func (b *base) Loc() diag.Location         { return b.Location }
func (b *base) SetLoc(loc diag.Location)   { b.Location = loc }
func (b *base) nodeMarker()                {}

// ResolvedType returns the type sema assigned to this node (zero Type
// before sema runs).
func (b *base) ResolvedType() Type { return b.Resolved }

// SetResolved stamps sema's inferred type onto the node.
func (b *base) SetResolved(t Type) { b.Resolved = t }

// ---- Module-level ----

type Module struct {
	base
	Name    string
	Body    []Stmt
}

// ---- Statements ----

type Stmt interface {
	Node
	stmtMarker()
}

type stmtBase struct{ base }

func (stmtBase) stmtMarker() {}

type FunctionDef struct {
	stmtBase
	Name    string
	Params  []Param
	Return  Type
	Body    []Stmt
}

type Param struct {
	Name string
	Type Type
}

type Import struct {
	stmtBase
	// Modules holds `import m[, m2]` targets.
	Modules []string
	// From, Names hold `from m import name[, name2]`; From == "" for
	// plain `import`.
	From  string
	Names []string
}

type Assign struct {
	stmtBase
	Target Expr
	Value  Expr
}

type AugAssignOp int

const (
	AugAdd AugAssignOp = iota
	AugSub
	AugMul
	AugDiv
)

func (o AugAssignOp) String() string {
	return [...]string{"+=", "-=", "*=", "/="}[o]
}

type AugAssign struct {
	stmtBase
	Target Expr
	Op     AugAssignOp
	Value  Expr
}

type If struct {
	stmtBase
	Cond   Expr
	Body   []Stmt
	Elifs  []ElifClause
	Else   []Stmt
}

type ElifClause struct {
	Cond Expr
	Body []Stmt
}

type While struct {
	stmtBase
	Cond Expr
	Body []Stmt
}

type For struct {
	stmtBase
	Target Expr
	Iter   Expr
	Body   []Stmt
}

type Try struct {
	stmtBase
	Body      []Stmt
	ExceptAs  string // bound name, "" if no `as name`
	HasExcept bool
	Except    []Stmt
	Else      []Stmt
	Finally   []Stmt
}

type Return struct {
	stmtBase
	Value Expr // nil for bare `return`
}

type ExprStmt struct {
	stmtBase
	X Expr
}

type Pass struct{ stmtBase }
type Break struct{ stmtBase }
type Continue struct{ stmtBase }

// ---- Expressions ----

type Expr interface {
	Node
	exprMarker()
}

type exprBase struct{ base }

func (exprBase) exprMarker() {}

type Name struct {
	exprBase
	Ident string
}

type LiteralKind int

const (
	LitInt LiteralKind = iota
	LitFloat
	LitStr
	LitBytes
	LitBool
	LitNone
)

type Literal struct {
	exprBase
	Kind LiteralKind
	Int  int64
	Float float64
	Str  string
	Bytes []byte
	Bool bool
}

type FString struct {
	exprBase
	// Literals[i] precedes Exprs[i]; Literals has one more entry than
	// Exprs (the trailing text after the last embedded expression).
	Literals []string
	Exprs    []Expr
}

type ListExpr struct {
	exprBase
	Elems []Expr
}

type SetExpr struct {
	exprBase
	Elems []Expr
}

type TupleExpr struct {
	exprBase
	Elems []Expr
}

type DictEntry struct {
	Key   Expr
	Value Expr
}

type DictExpr struct {
	exprBase
	Entries []DictEntry
}

type CompKind int

const (
	CompList CompKind = iota
	CompSet
	CompDict
)

type Comprehension struct {
	exprBase
	Kind    CompKind
	Elem    Expr // list/set element, or dict value
	Key     Expr // dict key (nil unless Kind == CompDict)
	Target  Expr // loop variable(s)
	Source  Expr
	Filter  Expr // nil if no `if` clause
}

type BinOpKind int

const (
	OpAdd BinOpKind = iota
	OpSub
	OpMul
	OpDiv
	OpFloorDiv
	OpMod
	OpPow
)

var binOpSymbols = [...]string{"+", "-", "*", "/", "//", "%", "**"}

func (k BinOpKind) String() string { return binOpSymbols[k] }

type BinOp struct {
	exprBase
	Op    BinOpKind
	Left  Expr
	Right Expr
}

type UnaryOpKind int

const (
	OpNeg UnaryOpKind = iota
	OpNot
)

type UnaryOp struct {
	exprBase
	Op UnaryOpKind
	X  Expr
}

type BoolOpKind int

const (
	OpAnd BoolOpKind = iota
	OpOr
)

type BoolOp struct {
	exprBase
	Op    BoolOpKind
	Left  Expr
	Right Expr
}

type CompareOp int

const (
	CmpEq CompareOp = iota
	CmpNotEq
	CmpLt
	CmpLtEq
	CmpGt
	CmpGtEq
	CmpIn
	CmpNotIn
	CmpIs
	CmpIsNot
)

var compareSymbols = [...]string{"==", "!=", "<", "<=", ">", ">=", "in", "not in", "is", "is not"}

func (c CompareOp) String() string { return compareSymbols[c] }

// Compare is always a single comparison (no chaining), per spec.md §4.1/§4.2.
type Compare struct {
	exprBase
	Op    CompareOp
	Left  Expr
	Right Expr
}

type Call struct {
	exprBase
	Func Expr
	Args []Expr
}

type Attribute struct {
	exprBase
	X    Expr
	Attr string
}

type SliceExpr struct {
	// nil component means omitted (a[:x], a[x:], a[:]).
	Low, High, Step Expr
}

type Subscript struct {
	exprBase
	X     Expr
	Index Expr       // set when not a slice
	Slice *SliceExpr // set when this is a[a:b:c]
}
