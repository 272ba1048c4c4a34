package parser

import (
	"github.com/aledsdavies/pycc/internal/ast"
	"github.com/aledsdavies/pycc/internal/diag"
	"github.com/aledsdavies/pycc/internal/lexer"
)

// parseExpr is the entry point for the full expression grammar
// (spec.md §4.2): boolean or/and, not, single-level comparison,
// arithmetic by precedence, then postfix/atoms.
func (p *parser) parseExpr() ast.Expr {
	return p.parseOr()
}

func (p *parser) parseOr() ast.Expr {
	left := p.parseAnd()
	for p.atKeyword("or") {
		loc := p.loc()
		p.advance()
		right := p.parseAnd()
		n := &ast.BoolOp{Op: ast.OpOr, Left: left, Right: right}
		ast.SetLoc(n, loc)
		left = n
	}
	return left
}

func (p *parser) parseAnd() ast.Expr {
	left := p.parseNot()
	for p.atKeyword("and") {
		loc := p.loc()
		p.advance()
		right := p.parseNot()
		n := &ast.BoolOp{Op: ast.OpAnd, Left: left, Right: right}
		ast.SetLoc(n, loc)
		left = n
	}
	return left
}

func (p *parser) parseNot() ast.Expr {
	if p.atKeyword("not") {
		loc := p.loc()
		p.advance()
		x := p.parseNot()
		n := &ast.UnaryOp{Op: ast.OpNot, X: x}
		ast.SetLoc(n, loc)
		return n
	}
	return p.parseComparison()
}

// parseComparison parses a single, non-chained comparison per spec.md
// §4.1/§4.2 ("a < b < c" is rejected): at most one comparison operator.
func (p *parser) parseComparison() ast.Expr {
	left := p.parseAddSub()
	if op, ok := p.tryCompareOp(); ok {
		loc := p.loc()
		right := p.parseAddSub()
		n := &ast.Compare{Op: op, Left: left, Right: right}
		ast.SetLoc(n, loc)
		left = n
		if _, ok := p.tryCompareOp(); ok {
			p.diags.Add(diag.New(diag.SeverityError, diag.CodeUnsupportedConstruct, p.loc(),
				"chained comparisons are not supported; split into separate 'and'-joined comparisons"))
		}
	}
	return left
}

// tryCompareOp consumes a comparison operator token if present, without
// consuming anything on a non-match.
func (p *parser) tryCompareOp() (ast.CompareOp, bool) {
	switch {
	case p.atOp("=="):
		p.advance()
		return ast.CmpEq, true
	case p.atOp("!="):
		p.advance()
		return ast.CmpNotEq, true
	case p.atOp("<="):
		p.advance()
		return ast.CmpLtEq, true
	case p.atOp(">="):
		p.advance()
		return ast.CmpGtEq, true
	case p.atOp("<"):
		p.advance()
		return ast.CmpLt, true
	case p.atOp(">"):
		p.advance()
		return ast.CmpGt, true
	case p.atKeyword("in"):
		p.advance()
		return ast.CmpIn, true
	case p.atKeyword("is"):
		p.advance()
		if p.atKeyword("not") {
			p.advance()
			return ast.CmpIsNot, true
		}
		return ast.CmpIs, true
	case p.atKeyword("not") && p.peekAt(1).Kind == lexer.KEYWORD && p.peekAt(1).Lexeme == "in":
		p.advance()
		p.advance()
		return ast.CmpNotIn, true
	default:
		return 0, false
	}
}

func (p *parser) parseAddSub() ast.Expr {
	left := p.parseMulDiv()
	for p.atOp("+") || p.atOp("-") {
		loc := p.loc()
		op := ast.OpAdd
		if p.cur().Lexeme == "-" {
			op = ast.OpSub
		}
		p.advance()
		right := p.parseMulDiv()
		n := &ast.BinOp{Op: op, Left: left, Right: right}
		ast.SetLoc(n, loc)
		left = n
	}
	return left
}

func (p *parser) parseMulDiv() ast.Expr {
	left := p.parseUnary()
	for p.atOp("*") || p.atOp("/") || p.atOp("//") || p.atOp("%") {
		loc := p.loc()
		var op ast.BinOpKind
		switch p.cur().Lexeme {
		case "*":
			op = ast.OpMul
		case "/":
			op = ast.OpDiv
		case "//":
			op = ast.OpFloorDiv
		case "%":
			op = ast.OpMod
		}
		p.advance()
		right := p.parseUnary()
		n := &ast.BinOp{Op: op, Left: left, Right: right}
		ast.SetLoc(n, loc)
		left = n
	}
	return left
}

func (p *parser) parseUnary() ast.Expr {
	if p.atOp("-") {
		loc := p.loc()
		p.advance()
		x := p.parseUnary()
		n := &ast.UnaryOp{Op: ast.OpNeg, X: x}
		ast.SetLoc(n, loc)
		return n
	}
	return p.parsePow()
}

// parsePow binds tighter than unary minus on its left (so -x**2 parses
// as -(x**2), matching the source dialect) but is right-associative.
func (p *parser) parsePow() ast.Expr {
	left := p.parsePostfix()
	if p.atOp("**") {
		loc := p.loc()
		p.advance()
		right := p.parseUnary()
		n := &ast.BinOp{Op: ast.OpPow, Left: left, Right: right}
		ast.SetLoc(n, loc)
		return n
	}
	return left
}

// parsePostfix handles left-associative attribute access, calls, and
// subscripting/slicing applied to an atom.
func (p *parser) parsePostfix() ast.Expr {
	x := p.parseAtom()
	for {
		switch {
		case p.atOp("."):
			loc := p.loc()
			p.advance()
			attr := ""
			if p.at(lexer.NAME) {
				attr = p.cur().Lexeme
				p.advance()
			} else {
				p.errorf("attribute name")
			}
			n := &ast.Attribute{X: x, Attr: attr}
			ast.SetLoc(n, loc)
			x = n
		case p.atOp("("):
			loc := p.loc()
			p.advance()
			var args []ast.Expr
			for !p.atOp(")") && !p.at(lexer.EOF) {
				args = append(args, p.parseExpr())
				if p.atOp(",") {
					p.advance()
					continue
				}
				break
			}
			p.expectOp(")")
			n := &ast.Call{Func: x, Args: args}
			ast.SetLoc(n, loc)
			x = n
		case p.atOp("["):
			x = p.parseSubscript(x)
		default:
			return x
		}
	}
}

func (p *parser) parseSubscript(x ast.Expr) ast.Expr {
	loc := p.loc()
	p.advance() // [
	var low, high, step ast.Expr
	isSlice := false
	if !p.atOp(":") && !p.atOp("]") {
		low = p.parseExpr()
	}
	if p.atOp(":") {
		isSlice = true
		p.advance()
		if !p.atOp(":") && !p.atOp("]") {
			high = p.parseExpr()
		}
		if p.atOp(":") {
			p.advance()
			if !p.atOp("]") {
				step = p.parseExpr()
			}
		}
	}
	p.expectOp("]")
	if isSlice {
		n := &ast.Subscript{X: x, Slice: &ast.SliceExpr{Low: low, High: high, Step: step}}
		ast.SetLoc(n, loc)
		return n
	}
	n := &ast.Subscript{X: x, Index: low}
	ast.SetLoc(n, loc)
	return n
}

// parseAtom parses literals, names, container literals/comprehensions,
// f-strings, and parenthesized expressions.
func (p *parser) parseAtom() ast.Expr {
	loc := p.loc()
	t := p.cur()
	switch {
	case t.Kind == lexer.NAME:
		p.advance()
		n := &ast.Name{Ident: t.Lexeme}
		ast.SetLoc(n, loc)
		return n
	case t.Kind == lexer.NUMBER:
		p.advance()
		n := &ast.Literal{}
		if t.NumForm == lexer.FloatForm {
			n.Kind = ast.LitFloat
			n.Float = t.FloatVal
		} else {
			n.Kind = ast.LitInt
			n.Int = t.IntVal
		}
		ast.SetLoc(n, loc)
		return n
	case t.Kind == lexer.STRING:
		p.advance()
		if t.StrForm == lexer.FStringForm {
			return p.splitFString(loc, t.StrVal)
		}
		n := &ast.Literal{}
		if t.StrForm == lexer.BytesForm {
			n.Kind = ast.LitBytes
			n.Bytes = t.BytesVal
		} else {
			n.Kind = ast.LitStr
			n.Str = t.StrVal
		}
		ast.SetLoc(n, loc)
		return n
	case t.Kind == lexer.KEYWORD && t.Lexeme == "True":
		p.advance()
		n := &ast.Literal{Kind: ast.LitBool, Bool: true}
		ast.SetLoc(n, loc)
		return n
	case t.Kind == lexer.KEYWORD && t.Lexeme == "False":
		p.advance()
		n := &ast.Literal{Kind: ast.LitBool, Bool: false}
		ast.SetLoc(n, loc)
		return n
	case t.Kind == lexer.KEYWORD && t.Lexeme == "None":
		p.advance()
		n := &ast.Literal{Kind: ast.LitNone}
		ast.SetLoc(n, loc)
		return n
	case p.atOp("("):
		return p.parseParenOrTuple()
	case p.atOp("["):
		return p.parseListOrComprehension()
	case p.atOp("{"):
		return p.parseSetOrDictOrComprehension()
	default:
		p.errorf("expression")
		p.advance()
		n := &ast.Literal{Kind: ast.LitNone}
		ast.SetLoc(n, loc)
		return n
	}
}

func (p *parser) parseParenOrTuple() ast.Expr {
	loc := p.loc()
	p.advance() // (
	if p.atOp(")") {
		p.advance()
		n := &ast.TupleExpr{}
		ast.SetLoc(n, loc)
		return n
	}
	first := p.parseExpr()
	if !p.atOp(",") {
		p.expectOp(")")
		return first
	}
	elems := []ast.Expr{first}
	for p.atOp(",") {
		p.advance()
		if p.atOp(")") {
			break
		}
		elems = append(elems, p.parseExpr())
	}
	p.expectOp(")")
	n := &ast.TupleExpr{Elems: elems}
	ast.SetLoc(n, loc)
	return n
}

func (p *parser) parseListOrComprehension() ast.Expr {
	loc := p.loc()
	p.advance() // [
	if p.atOp("]") {
		p.advance()
		n := &ast.ListExpr{}
		ast.SetLoc(n, loc)
		return n
	}
	first := p.parseExpr()
	if p.atKeyword("for") {
		comp := p.finishComprehension(ast.CompList, first, nil)
		p.expectOp("]")
		ast.SetLoc(comp, loc)
		return comp
	}
	elems := []ast.Expr{first}
	for p.atOp(",") {
		p.advance()
		if p.atOp("]") {
			break
		}
		elems = append(elems, p.parseExpr())
	}
	p.expectOp("]")
	n := &ast.ListExpr{Elems: elems}
	ast.SetLoc(n, loc)
	return n
}

func (p *parser) parseSetOrDictOrComprehension() ast.Expr {
	loc := p.loc()
	p.advance() // {
	if p.atOp("}") {
		p.advance()
		n := &ast.DictExpr{}
		ast.SetLoc(n, loc)
		return n
	}
	firstKeyOrElem := p.parseExpr()
	if p.atOp(":") {
		p.advance()
		firstVal := p.parseExpr()
		if p.atKeyword("for") {
			comp := p.finishComprehension(ast.CompDict, firstVal, firstKeyOrElem)
			p.expectOp("}")
			ast.SetLoc(comp, loc)
			return comp
		}
		entries := []ast.DictEntry{{Key: firstKeyOrElem, Value: firstVal}}
		for p.atOp(",") {
			p.advance()
			if p.atOp("}") {
				break
			}
			k := p.parseExpr()
			p.expectOp(":")
			v := p.parseExpr()
			entries = append(entries, ast.DictEntry{Key: k, Value: v})
		}
		p.expectOp("}")
		n := &ast.DictExpr{Entries: entries}
		ast.SetLoc(n, loc)
		return n
	}
	if p.atKeyword("for") {
		comp := p.finishComprehension(ast.CompSet, firstKeyOrElem, nil)
		p.expectOp("}")
		ast.SetLoc(comp, loc)
		return comp
	}
	elems := []ast.Expr{firstKeyOrElem}
	for p.atOp(",") {
		p.advance()
		if p.atOp("}") {
			break
		}
		elems = append(elems, p.parseExpr())
	}
	p.expectOp("}")
	n := &ast.SetExpr{Elems: elems}
	ast.SetLoc(n, loc)
	return n
}

// finishComprehension parses the `for x in src [if cond]` tail shared
// by list/set/dict comprehensions (spec.md §4.2: "a single source with
// an optional filter").
func (p *parser) finishComprehension(kind ast.CompKind, elem, key ast.Expr) *ast.Comprehension {
	p.advance() // for
	target := p.parseAtom()
	p.expectKeyword("in")
	src := p.parseOr()
	var filter ast.Expr
	if p.atKeyword("if") {
		p.advance()
		filter = p.parseOr()
	}
	return &ast.Comprehension{Kind: kind, Elem: elem, Key: key, Target: target, Source: src, Filter: filter}
}

// splitFString lowers an f-string's decoded text into literal segments
// interleaved with parsed sub-expressions, per spec.md §4.1 ("the
// parser splits f-strings into literal segments and embedded
// expressions").
func (p *parser) splitFString(loc diag.Location, text string) ast.Expr {
	n := &ast.FString{}
	ast.SetLoc(n, loc)
	var lit []byte
	i := 0
	for i < len(text) {
		if text[i] == '{' && i+1 < len(text) && text[i+1] == '{' {
			lit = append(lit, '{')
			i += 2
			continue
		}
		if text[i] == '}' && i+1 < len(text) && text[i+1] == '}' {
			lit = append(lit, '}')
			i += 2
			continue
		}
		if text[i] == '{' {
			n.Literals = append(n.Literals, string(lit))
			lit = nil
			depth := 1
			j := i + 1
			for j < len(text) && depth > 0 {
				switch text[j] {
				case '{':
					depth++
				case '}':
					depth--
				}
				if depth == 0 {
					break
				}
				j++
			}
			exprSrc := text[i+1 : j]
			sub := Parse("<fstring>", exprSrc+"\n")
			var e ast.Expr
			if len(sub.Module.Body) == 1 {
				if es, ok := sub.Module.Body[0].(*ast.ExprStmt); ok {
					e = es.X
				}
			}
			if e == nil {
				e = &ast.Literal{Kind: ast.LitStr, Str: ""}
				ast.SetLoc(e, loc)
			}
			n.Exprs = append(n.Exprs, e)
			i = j + 1
			continue
		}
		lit = append(lit, text[i])
		i++
	}
	n.Literals = append(n.Literals, string(lit))
	return n
}
