// Package parser implements the recursive-descent parser described in
// spec.md §4.2: token stream → AST, reporting every syntax error it can
// recover from rather than stopping at the first one (grounded on the
// teacher's runtime/parser.Parse → *ParseTree convention).
package parser

import (
	"fmt"

	"github.com/aledsdavies/pycc/internal/ast"
	"github.com/aledsdavies/pycc/internal/diag"
	"github.com/aledsdavies/pycc/internal/lexer"
)

// ParseTree is the result of parsing one file: the Module AST plus every
// diagnostic collected along the way.
type ParseTree struct {
	Module *ast.Module
	Diags  diag.Bag
}

func (t *ParseTree) HasErrors() bool { return t.Diags.HasErrors() }

type parser struct {
	file   string
	toks   []lexer.Token
	pos    int
	diags  diag.Bag
}

// Parse lexes and parses file's source, returning a ParseTree. Lex
// errors are copied into the same diagnostic bag; when lexing fails,
// parsing is skipped, so the tree then carries only the lex diagnostics
// and an empty module body.
func Parse(file, src string) *ParseTree {
	toks, lexDiags := lexer.New(file, src).Tokenize()
	p := &parser{file: file, toks: toks}
	for _, d := range lexDiags.All() {
		p.diags.Add(d)
	}

	mod := &ast.Module{Name: moduleNameFor(file)}
	if !lexDiags.HasErrors() {
		mod.Body = p.parseBlockStatements(true)
	}
	return &ParseTree{Module: mod, Diags: p.diags}
}

func moduleNameFor(file string) string {
	if file == "" {
		return "__main__"
	}
	return file
}

// ---- token-stream plumbing ----

func (p *parser) cur() lexer.Token {
	if p.pos >= len(p.toks) {
		return lexer.Token{Kind: lexer.EOF}
	}
	return p.toks[p.pos]
}

func (p *parser) peekAt(n int) lexer.Token {
	if p.pos+n >= len(p.toks) {
		return lexer.Token{Kind: lexer.EOF}
	}
	return p.toks[p.pos+n]
}

func (p *parser) advance() lexer.Token {
	t := p.cur()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

func (p *parser) at(kind lexer.Kind) bool { return p.cur().Kind == kind }

func (p *parser) atOp(lexeme string) bool {
	return p.cur().Kind == lexer.OP && p.cur().Lexeme == lexeme
}

func (p *parser) atKeyword(word string) bool {
	return p.cur().Kind == lexer.KEYWORD && p.cur().Lexeme == word
}

func (p *parser) loc() diag.Location {
	t := p.cur()
	if t.Kind == lexer.EOF && len(p.toks) > 0 {
		return p.toks[len(p.toks)-1].Location
	}
	return t.Location
}

func (p *parser) errorf(expected string) {
	got := p.cur()
	msg := fmt.Sprintf("expected %s, got %s", expected, describeToken(got))
	p.diags.Add(diag.New(diag.SeverityError, diag.CodeUnexpectedToken, p.loc(), "%s", msg))
}

func describeToken(t lexer.Token) string {
	switch t.Kind {
	case lexer.EOF:
		return "end of file"
	case lexer.NEWLINE:
		return "newline"
	case lexer.INDENT:
		return "indent"
	case lexer.DEDENT:
		return "dedent"
	case lexer.OP, lexer.KEYWORD:
		return fmt.Sprintf("%q", t.Lexeme)
	default:
		return fmt.Sprintf("%s %q", t.Kind, t.Lexeme)
	}
}

// expectOp consumes an operator token, recording a diagnostic if absent.
func (p *parser) expectOp(lexeme string) bool {
	if p.atOp(lexeme) {
		p.advance()
		return true
	}
	p.errorf(fmt.Sprintf("%q", lexeme))
	return false
}

func (p *parser) expectKeyword(word string) bool {
	if p.atKeyword(word) {
		p.advance()
		return true
	}
	p.errorf(fmt.Sprintf("%q", word))
	return false
}

func (p *parser) expectNewlineOrEOF() {
	for p.at(lexer.NEWLINE) {
		p.advance()
	}
}

// synchronize skips tokens until the next NEWLINE/DEDENT/EOF, used for
// panic-mode recovery after a parse error, so one bad statement doesn't
// suppress every later diagnostic.
func (p *parser) synchronize() {
	for !p.at(lexer.NEWLINE) && !p.at(lexer.DEDENT) && !p.at(lexer.EOF) {
		p.advance()
	}
	p.expectNewlineOrEOF()
}

// ---- blocks ----

// parseBlockStatements parses statements until DEDENT/EOF. At module
// level (top==true) there is no leading INDENT to consume.
func (p *parser) parseBlockStatements(top bool) []ast.Stmt {
	var stmts []ast.Stmt
	for {
		for p.at(lexer.NEWLINE) {
			p.advance()
		}
		if p.at(lexer.EOF) {
			return stmts
		}
		if !top && p.at(lexer.DEDENT) {
			p.advance()
			return stmts
		}
		before := p.pos
		s := p.parseStatement()
		if s != nil {
			stmts = append(stmts, s)
		}
		if p.pos == before {
			// Guard against infinite loops on unrecognized tokens.
			p.errorf("statement")
			p.advance()
		}
	}
}

// parseSuite parses `:` NEWLINE INDENT stmt+ DEDENT, the common suffix
// of every compound statement header.
func (p *parser) parseSuite() []ast.Stmt {
	if !p.expectOp(":") {
		p.synchronize()
		return nil
	}
	if !p.at(lexer.NEWLINE) {
		p.errorf("newline")
		p.synchronize()
		return nil
	}
	p.expectNewlineOrEOF()
	if !p.at(lexer.INDENT) {
		p.errorf("indented block")
		return nil
	}
	p.advance()
	return p.parseBlockStatements(false)
}

// ---- statements ----

func (p *parser) parseStatement() ast.Stmt {
	switch {
	case p.atKeyword("if"):
		return p.parseIf()
	case p.atKeyword("while"):
		return p.parseWhile()
	case p.atKeyword("for"):
		return p.parseFor()
	case p.atKeyword("try"):
		return p.parseTry()
	case p.atKeyword("import"):
		return p.parseImport()
	case p.atKeyword("from"):
		return p.parseFromImport()
	case p.atKeyword("def"):
		return p.parseFunctionDef()
	case p.atKeyword("return"):
		return p.parseReturn()
	case p.atKeyword("pass"):
		loc := p.loc()
		p.advance()
		p.expectNewlineOrEOF()
		n := &ast.Pass{}
		ast.SetLoc(n, loc)
		return n
	case p.atKeyword("break"):
		loc := p.loc()
		p.advance()
		p.expectNewlineOrEOF()
		n := &ast.Break{}
		ast.SetLoc(n, loc)
		return n
	case p.atKeyword("continue"):
		loc := p.loc()
		p.advance()
		p.expectNewlineOrEOF()
		n := &ast.Continue{}
		ast.SetLoc(n, loc)
		return n
	default:
		return p.parseSimpleStatement()
	}
}

func (p *parser) parseIf() ast.Stmt {
	loc := p.loc()
	p.advance() // if
	cond := p.parseExpr()
	body := p.parseSuite()
	n := &ast.If{Cond: cond, Body: body}
	ast.SetLoc(n, loc)
	for p.atKeyword("elif") {
		eloc := p.loc()
		p.advance()
		ec := p.parseExpr()
		eb := p.parseSuite()
		_ = eloc
		n.Elifs = append(n.Elifs, ast.ElifClause{Cond: ec, Body: eb})
	}
	if p.atKeyword("else") {
		p.advance()
		n.Else = p.parseSuite()
	}
	return n
}

func (p *parser) parseWhile() ast.Stmt {
	loc := p.loc()
	p.advance()
	cond := p.parseExpr()
	body := p.parseSuite()
	n := &ast.While{Cond: cond, Body: body}
	ast.SetLoc(n, loc)
	return n
}

func (p *parser) parseFor() ast.Stmt {
	loc := p.loc()
	p.advance() // for
	target := p.parseAtom()
	p.expectKeyword("in")
	iter := p.parseExpr()
	body := p.parseSuite()
	n := &ast.For{Target: target, Iter: iter, Body: body}
	ast.SetLoc(n, loc)
	return n
}

func (p *parser) parseTry() ast.Stmt {
	loc := p.loc()
	p.advance() // try
	body := p.parseSuite()
	n := &ast.Try{Body: body}
	ast.SetLoc(n, loc)
	if p.atKeyword("except") {
		n.HasExcept = true
		p.advance()
		// Optional `except Exception as e`; the exception class name is
		// parsed and ignored (spec.md §4.3 single-channel error model).
		if p.at(lexer.NAME) {
			p.advance()
		}
		if p.atKeyword("as") {
			p.advance()
			if p.at(lexer.NAME) {
				n.ExceptAs = p.cur().Lexeme
				p.advance()
			}
		}
		n.Except = p.parseSuite()
	}
	if p.atKeyword("else") {
		p.advance()
		n.Else = p.parseSuite()
	}
	if p.atKeyword("finally") {
		p.advance()
		n.Finally = p.parseSuite()
	}
	return n
}

func (p *parser) parseImport() ast.Stmt {
	loc := p.loc()
	p.advance() // import
	n := &ast.Import{}
	ast.SetLoc(n, loc)
	for {
		if !p.at(lexer.NAME) {
			p.errorf("module name")
			break
		}
		n.Modules = append(n.Modules, p.cur().Lexeme)
		p.advance()
		if p.atOp(",") {
			p.advance()
			continue
		}
		break
	}
	p.expectNewlineOrEOF()
	return n
}

func (p *parser) parseFromImport() ast.Stmt {
	loc := p.loc()
	p.advance() // from
	from := ""
	if p.at(lexer.NAME) {
		from = p.cur().Lexeme
		p.advance()
	} else {
		p.errorf("module name")
	}
	p.expectKeyword("import")
	n := &ast.Import{From: from}
	ast.SetLoc(n, loc)
	for {
		if !p.at(lexer.NAME) {
			p.errorf("imported name")
			break
		}
		n.Names = append(n.Names, p.cur().Lexeme)
		p.advance()
		if p.atOp(",") {
			p.advance()
			continue
		}
		break
	}
	p.expectNewlineOrEOF()
	return n
}

func (p *parser) parseFunctionDef() ast.Stmt {
	loc := p.loc()
	p.advance() // def
	name := ""
	if p.at(lexer.NAME) {
		name = p.cur().Lexeme
		p.advance()
	} else {
		p.errorf("function name")
	}
	p.expectOp("(")
	var params []ast.Param
	for !p.atOp(")") && !p.at(lexer.EOF) {
		if p.at(lexer.NAME) {
			pname := p.cur().Lexeme
			p.advance()
			ptyp := ast.Type{Kind: ast.KAny}
			if p.atOp(":") {
				p.advance()
				ptyp = p.parseTypeAnnotation()
			}
			params = append(params, ast.Param{Name: pname, Type: ptyp})
		}
		if p.atOp(",") {
			p.advance()
			continue
		}
		break
	}
	p.expectOp(")")
	ret := ast.Type{Kind: ast.KVoid}
	if p.atOp("->") {
		p.advance()
		ret = p.parseTypeAnnotation()
	}
	body := p.parseSuite()
	n := &ast.FunctionDef{Name: name, Params: params, Return: ret, Body: body}
	ast.SetLoc(n, loc)
	return n
}

// parseTypeAnnotation parses a bare name as a type annotation (int,
// float, bool, str, bytes, or a subscripted List[...]/Dict[...,...]).
// The subset's annotations are structural hints sema re-derives and
// checks, not a general type grammar.
func (p *parser) parseTypeAnnotation() ast.Type {
	if !p.at(lexer.NAME) {
		p.errorf("type")
		return ast.Type{Kind: ast.KAny}
	}
	name := p.cur().Lexeme
	p.advance()
	t := typeFromName(name)
	if p.atOp("[") {
		p.advance()
		inner := p.parseTypeAnnotation()
		if t.Kind == ast.KList {
			t.Elem = &inner
		} else if t.Kind == ast.KDict {
			t.Key = &inner
			if p.atOp(",") {
				p.advance()
				v := p.parseTypeAnnotation()
				t.Value = &v
			}
		}
		p.expectOp("]")
	}
	return t
}

func typeFromName(name string) ast.Type {
	switch name {
	case "int":
		return ast.Type{Kind: ast.KInt}
	case "float":
		return ast.Type{Kind: ast.KFloat}
	case "bool":
		return ast.Type{Kind: ast.KBool}
	case "str":
		return ast.Type{Kind: ast.KStr}
	case "bytes":
		return ast.Type{Kind: ast.KBytes}
	case "List":
		return ast.Type{Kind: ast.KList}
	case "Dict":
		return ast.Type{Kind: ast.KDict}
	case "Set":
		return ast.Type{Kind: ast.KSet}
	case "Any":
		return ast.Type{Kind: ast.KAny}
	default:
		return ast.Type{Kind: ast.KOpaqueHandle, Handle: name}
	}
}

func (p *parser) parseReturn() ast.Stmt {
	loc := p.loc()
	p.advance()
	n := &ast.Return{}
	ast.SetLoc(n, loc)
	if !p.at(lexer.NEWLINE) && !p.at(lexer.EOF) {
		n.Value = p.parseExpr()
	}
	p.expectNewlineOrEOF()
	return n
}

// parseSimpleStatement parses assignment/augmented-assignment/bare
// expression statements, disambiguated after parsing the first expr.
func (p *parser) parseSimpleStatement() ast.Stmt {
	loc := p.loc()
	x := p.parseExpr()

	if p.atOp("=") {
		p.advance()
		val := p.parseExpr()
		p.expectNewlineOrEOF()
		n := &ast.Assign{Target: x, Value: val}
		ast.SetLoc(n, loc)
		return n
	}
	if op, ok := augOpFor(p.cur()); ok {
		p.advance()
		val := p.parseExpr()
		p.expectNewlineOrEOF()
		n := &ast.AugAssign{Target: x, Op: op, Value: val}
		ast.SetLoc(n, loc)
		return n
	}
	p.expectNewlineOrEOF()
	n := &ast.ExprStmt{X: x}
	ast.SetLoc(n, loc)
	return n
}

func augOpFor(t lexer.Token) (ast.AugAssignOp, bool) {
	if t.Kind != lexer.OP {
		return 0, false
	}
	switch t.Lexeme {
	case "+=":
		return ast.AugAdd, true
	case "-=":
		return ast.AugSub, true
	case "*=":
		return ast.AugMul, true
	case "/=":
		return ast.AugDiv, true
	default:
		return 0, false
	}
}
