package interp

import (
	"context"
	"fmt"

	"github.com/aledsdavies/pycc/internal/ast"
	"github.com/aledsdavies/pycc/internal/ir"
	"github.com/aledsdavies/pycc/internal/runtime"
	"github.com/aledsdavies/pycc/internal/value"
)

func (it *Interp) eval(ctx context.Context, e ir.Expr, sc *scope) (value.Value, error) {
	switch x := e.(type) {
	case *ir.Name:
		v, ok := sc.get(x.Ident)
		if !ok {
			return value.Value{}, &RuntimeError{Message: fmt.Sprintf("name %q is not defined", x.Ident)}
		}
		return v, nil
	case *ir.IntLit:
		return value.Int(x.Value), nil
	case *ir.FloatLit:
		return value.Float(x.Value), nil
	case *ir.StrLit:
		return value.Str(x.Value), nil
	case *ir.BytesLit:
		return value.Bytes(x.Value), nil
	case *ir.BoolLit:
		return value.Bool(x.Value), nil
	case *ir.NoneLit:
		return value.None(), nil
	case *ir.FStringExpr:
		return it.evalFString(ctx, x, sc)
	case *ir.ListLit:
		elems, err := it.evalAll(ctx, x.Elems, sc)
		if err != nil {
			return value.Value{}, err
		}
		return value.Value{Kind: value.KList, List: value.NewList(elems...)}, nil
	case *ir.SetLit:
		elems, err := it.evalAll(ctx, x.Elems, sc)
		if err != nil {
			return value.Value{}, err
		}
		s := value.NewSet()
		for _, e := range elems {
			s.Add(e)
		}
		return value.Value{Kind: value.KSet, Set: s}, nil
	case *ir.TupleLit:
		elems, err := it.evalAll(ctx, x.Elems, sc)
		if err != nil {
			return value.Value{}, err
		}
		return value.Tuple(elems), nil
	case *ir.DictLit:
		d := value.NewDict()
		for _, en := range x.Entries {
			k, err := it.eval(ctx, en.Key, sc)
			if err != nil {
				return value.Value{}, err
			}
			v, err := it.eval(ctx, en.Value, sc)
			if err != nil {
				return value.Value{}, err
			}
			d.Set(k, v)
		}
		return value.Value{Kind: value.KDict, Dict: d}, nil
	case *ir.Comprehension:
		return it.evalComprehension(ctx, x, sc)
	case *ir.BinOp:
		l, err := it.eval(ctx, x.Left, sc)
		if err != nil {
			return value.Value{}, err
		}
		r, err := it.eval(ctx, x.Right, sc)
		if err != nil {
			return value.Value{}, err
		}
		return applyBinOp(x.Op, l, r)
	case *ir.UnaryOp:
		v, err := it.eval(ctx, x.X, sc)
		if err != nil {
			return value.Value{}, err
		}
		return applyUnaryOp(x.Op, v)
	case *ir.BoolOp:
		l, err := it.eval(ctx, x.Left, sc)
		if err != nil {
			return value.Value{}, err
		}
		if x.Op == ast.OpAnd {
			if !value.Truthy(l) {
				return l, nil
			}
			return it.eval(ctx, x.Right, sc)
		}
		if value.Truthy(l) {
			return l, nil
		}
		return it.eval(ctx, x.Right, sc)
	case *ir.Compare:
		l, err := it.eval(ctx, x.Left, sc)
		if err != nil {
			return value.Value{}, err
		}
		r, err := it.eval(ctx, x.Right, sc)
		if err != nil {
			return value.Value{}, err
		}
		return applyCompare(x.Op, l, r)
	case *ir.ModuleCall:
		args, err := it.evalAll(ctx, x.Args, sc)
		if err != nil {
			return value.Value{}, err
		}
		v, rerr := it.modules.Call(ctx, x.Module, x.Func, args)
		if se, ok := rerr.(*runtime.SysExit); ok {
			// Inside a called function, sys.exit is a recoverable
			// mark-and-return (spec.md §5): record the request and let
			// the caller's statements keep running, rather than
			// terminating the whole program.
			if it.callDepth > 0 {
				it.LastSysExit = se
				return value.None(), nil
			}
			return value.Value{}, se
		}
		if rerr != nil {
			return value.Value{}, &RuntimeError{Module: x.Module, Func: x.Func, Message: rerr.Error()}
		}
		return v, nil
	case *ir.UserCall:
		return it.callUser(ctx, x, sc)
	case *ir.Attribute:
		return value.Value{}, &RuntimeError{Message: fmt.Sprintf("unsupported attribute access %q", x.Attr)}
	case *ir.Subscript:
		return it.evalSubscript(ctx, x, sc)
	default:
		return value.Value{}, fmt.Errorf("interp: unhandled expression %T", e)
	}
}

func (it *Interp) evalAll(ctx context.Context, exprs []ir.Expr, sc *scope) ([]value.Value, error) {
	out := make([]value.Value, len(exprs))
	for i, e := range exprs {
		v, err := it.eval(ctx, e, sc)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (it *Interp) evalFString(ctx context.Context, x *ir.FStringExpr, sc *scope) (value.Value, error) {
	var out string
	for i, lit := range x.Literals {
		out += lit
		if i < len(x.Exprs) {
			v, err := it.eval(ctx, x.Exprs[i], sc)
			if err != nil {
				return value.Value{}, err
			}
			out += toDisplayString(v)
		}
	}
	return value.Str(out), nil
}

func (it *Interp) evalComprehension(ctx context.Context, x *ir.Comprehension, sc *scope) (value.Value, error) {
	src, err := it.eval(ctx, x.Source, sc)
	if err != nil {
		return value.Value{}, err
	}
	elems, err := iterate(src)
	if err != nil {
		return value.Value{}, err
	}
	switch x.Kind {
	case ast.CompDict:
		d := value.NewDict()
		for _, e := range elems {
			sc.set(x.TargetName, e)
			if x.Filter != nil {
				keep, err := it.eval(ctx, x.Filter, sc)
				if err != nil {
					return value.Value{}, err
				}
				if !value.Truthy(keep) {
					continue
				}
			}
			k, err := it.eval(ctx, x.Key, sc)
			if err != nil {
				return value.Value{}, err
			}
			v, err := it.eval(ctx, x.Elem, sc)
			if err != nil {
				return value.Value{}, err
			}
			d.Set(k, v)
		}
		return value.Value{Kind: value.KDict, Dict: d}, nil
	case ast.CompSet:
		s := value.NewSet()
		for _, e := range elems {
			sc.set(x.TargetName, e)
			if x.Filter != nil {
				keep, err := it.eval(ctx, x.Filter, sc)
				if err != nil {
					return value.Value{}, err
				}
				if !value.Truthy(keep) {
					continue
				}
			}
			v, err := it.eval(ctx, x.Elem, sc)
			if err != nil {
				return value.Value{}, err
			}
			s.Add(v)
		}
		return value.Value{Kind: value.KSet, Set: s}, nil
	default: // list comprehension
		l := value.NewList()
		for _, e := range elems {
			sc.set(x.TargetName, e)
			if x.Filter != nil {
				keep, err := it.eval(ctx, x.Filter, sc)
				if err != nil {
					return value.Value{}, err
				}
				if !value.Truthy(keep) {
					continue
				}
			}
			v, err := it.eval(ctx, x.Elem, sc)
			if err != nil {
				return value.Value{}, err
			}
			l.Append(v)
		}
		return value.Value{Kind: value.KList, List: l}, nil
	}
}

func (it *Interp) evalSubscript(ctx context.Context, x *ir.Subscript, sc *scope) (value.Value, error) {
	base, err := it.eval(ctx, x.X, sc)
	if err != nil {
		return value.Value{}, err
	}
	if x.Slice != nil {
		return it.evalSlice(ctx, base, x.Slice, sc)
	}
	idx, err := it.eval(ctx, x.Index, sc)
	if err != nil {
		return value.Value{}, err
	}
	switch base.Kind {
	case value.KList:
		i := int(idx.Int)
		if i < 0 {
			i += base.List.Len()
		}
		v, ok := base.List.Get(i)
		if !ok {
			return value.Value{}, &RuntimeError{Message: "list index out of range"}
		}
		return v, nil
	case value.KTuple:
		i := int(idx.Int)
		if i < 0 {
			i += len(base.Tuple)
		}
		if i < 0 || i >= len(base.Tuple) {
			return value.Value{}, &RuntimeError{Message: "tuple index out of range"}
		}
		return base.Tuple[i], nil
	case value.KDict:
		v, ok := base.Dict.Get(idx)
		if !ok {
			return value.Value{}, &RuntimeError{Message: "key not found"}
		}
		return v, nil
	case value.KStr:
		runes := []rune(base.Str)
		i := int(idx.Int)
		if i < 0 {
			i += len(runes)
		}
		if i < 0 || i >= len(runes) {
			return value.Value{}, &RuntimeError{Message: "string index out of range"}
		}
		return value.Str(string(runes[i])), nil
	case value.KBytes:
		i := int(idx.Int)
		if i < 0 {
			i += len(base.Bytes)
		}
		if i < 0 || i >= len(base.Bytes) {
			return value.Value{}, &RuntimeError{Message: "bytes index out of range"}
		}
		return value.Int(int64(base.Bytes[i])), nil
	default:
		return value.Value{}, &RuntimeError{Message: "value is not subscriptable"}
	}
}

func (it *Interp) evalSlice(ctx context.Context, base value.Value, sl *ir.Slice, sc *scope) (value.Value, error) {
	step := 1
	if sl.Step != nil {
		v, err := it.eval(ctx, sl.Step, sc)
		if err != nil {
			return value.Value{}, err
		}
		step = int(v.Int)
	}
	length := 0
	switch base.Kind {
	case value.KList:
		length = base.List.Len()
	case value.KStr:
		length = len([]rune(base.Str))
	case value.KBytes:
		length = len(base.Bytes)
	default:
		return value.Value{}, &RuntimeError{Message: "value does not support slicing"}
	}
	low, high := sliceDefaults(step, length)
	if sl.Low != nil {
		v, err := it.eval(ctx, sl.Low, sc)
		if err != nil {
			return value.Value{}, err
		}
		low = normalizeIndex(int(v.Int), length)
	}
	if sl.High != nil {
		v, err := it.eval(ctx, sl.High, sc)
		if err != nil {
			return value.Value{}, err
		}
		high = normalizeIndex(int(v.Int), length)
	}
	switch base.Kind {
	case value.KList:
		return value.Value{Kind: value.KList, List: base.List.Slice(low, high, step)}, nil
	case value.KStr:
		runes := []rune(base.Str)
		var out []rune
		if step > 0 {
			for i := low; i < high && i < len(runes); i += step {
				if i >= 0 {
					out = append(out, runes[i])
				}
			}
		} else {
			for i := low; i > high && i >= 0; i += step {
				if i < len(runes) {
					out = append(out, runes[i])
				}
			}
		}
		return value.Str(string(out)), nil
	case value.KBytes:
		var out []byte
		if step > 0 {
			for i := low; i < high && i < len(base.Bytes); i += step {
				if i >= 0 {
					out = append(out, base.Bytes[i])
				}
			}
		} else {
			for i := low; i > high && i >= 0; i += step {
				if i < len(base.Bytes) {
					out = append(out, base.Bytes[i])
				}
			}
		}
		return value.Bytes(out), nil
	default:
		return value.Value{}, &RuntimeError{Message: "value does not support slicing"}
	}
}

func sliceDefaults(step, length int) (int, int) {
	if step > 0 {
		return 0, length
	}
	return length - 1, -1
}

func normalizeIndex(i, length int) int {
	if i < 0 {
		i += length
	}
	return i
}

func (it *Interp) callUser(ctx context.Context, call *ir.UserCall, caller *scope) (value.Value, error) {
	fn, ok := it.funcs[call.Func]
	if !ok {
		return value.Value{}, &RuntimeError{Message: fmt.Sprintf("function %q is not defined", call.Func)}
	}
	if it.Profiler != nil {
		it.Profiler.Hit(call.Func)
	}
	args, err := it.evalAll(ctx, call.Args, caller)
	if err != nil {
		return value.Value{}, err
	}
	sc := newScope(nil)
	for i, p := range fn.Params {
		if i < len(args) {
			sc.set(p.Name, args[i])
		}
	}
	it.callDepth++
	_, ctrl, ret, err := it.execStmts(ctx, fn.Body, sc)
	it.callDepth--
	if err != nil {
		return value.Value{}, err
	}
	if ctrl == ctrlReturn {
		return ret, nil
	}
	return value.None(), nil
}

func augToBin(op ast.AugAssignOp) ast.BinOpKind {
	switch op {
	case ast.AugAdd:
		return ast.OpAdd
	case ast.AugSub:
		return ast.OpSub
	case ast.AugMul:
		return ast.OpMul
	case ast.AugDiv:
		return ast.OpDiv
	default:
		return ast.OpAdd
	}
}

func applyUnaryOp(op ast.UnaryOpKind, v value.Value) (value.Value, error) {
	switch op {
	case ast.OpNeg:
		switch v.Kind {
		case value.KInt:
			return value.Int(-v.Int), nil
		case value.KFloat:
			return value.Float(-v.Float), nil
		}
		return value.Value{}, &RuntimeError{Message: "unary - requires a number"}
	case ast.OpNot:
		return value.Bool(!value.Truthy(v)), nil
	default:
		return value.Value{}, fmt.Errorf("interp: unhandled unary op %v", op)
	}
}

func applyCompare(op ast.CompareOp, l, r value.Value) (value.Value, error) {
	switch op {
	case ast.CmpEq:
		return value.Bool(value.Equal(l, r)), nil
	case ast.CmpNotEq:
		return value.Bool(!value.Equal(l, r)), nil
	case ast.CmpLt:
		return value.Bool(value.Less(l, r)), nil
	case ast.CmpLtEq:
		return value.Bool(value.Less(l, r) || value.Equal(l, r)), nil
	case ast.CmpGt:
		return value.Bool(value.Less(r, l)), nil
	case ast.CmpGtEq:
		return value.Bool(value.Less(r, l) || value.Equal(l, r)), nil
	case ast.CmpIn:
		return containsValue(l, r)
	case ast.CmpNotIn:
		v, err := containsValue(l, r)
		if err != nil {
			return value.Value{}, err
		}
		return value.Bool(!v.Bool), nil
	case ast.CmpIs:
		return value.Bool(l.Kind == value.KNone && r.Kind == value.KNone), nil
	case ast.CmpIsNot:
		return value.Bool(!(l.Kind == value.KNone && r.Kind == value.KNone)), nil
	default:
		return value.Value{}, fmt.Errorf("interp: unhandled compare op %v", op)
	}
}

func containsValue(item, container value.Value) (value.Value, error) {
	switch container.Kind {
	case value.KList:
		for _, e := range container.List.Elems {
			if value.Equal(item, e) {
				return value.Bool(true), nil
			}
		}
		return value.Bool(false), nil
	case value.KTuple:
		for _, e := range container.Tuple {
			if value.Equal(item, e) {
				return value.Bool(true), nil
			}
		}
		return value.Bool(false), nil
	case value.KSet:
		return value.Bool(container.Set.Contains(item)), nil
	case value.KDict:
		_, ok := container.Dict.Get(item)
		return value.Bool(ok), nil
	case value.KStr:
		return value.Bool(stringsContains(container.Str, item.Str)), nil
	default:
		return value.Value{}, &RuntimeError{Message: "argument is not iterable"}
	}
}

func stringsContains(haystack, needle string) bool {
	if needle == "" {
		return true
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			return true
		}
	}
	return false
}

func applyBinOp(op ast.BinOpKind, l, r value.Value) (value.Value, error) {
	if op == ast.OpAdd && l.Kind == value.KStr && r.Kind == value.KStr {
		return value.Str(l.Str + r.Str), nil
	}
	if op == ast.OpAdd && l.Kind == value.KList && r.Kind == value.KList {
		out := value.NewList(l.List.Elems...)
		out.Elems = append(out.Elems, r.List.Elems...)
		return value.Value{Kind: value.KList, List: out}, nil
	}
	if op == ast.OpMul && l.Kind == value.KStr && r.Kind == value.KInt {
		return value.Str(repeatString(l.Str, int(r.Int))), nil
	}
	li, lok := numericOf(l)
	ri, rok := numericOf(r)
	if !lok || !rok {
		return value.Value{}, &RuntimeError{Message: "unsupported operand types for binary operator"}
	}
	bothInt := l.Kind == value.KInt && r.Kind == value.KInt
	switch op {
	case ast.OpAdd:
		return numericResult(li+ri, bothInt), nil
	case ast.OpSub:
		return numericResult(li-ri, bothInt), nil
	case ast.OpMul:
		return numericResult(li*ri, bothInt), nil
	case ast.OpDiv:
		if ri == 0 {
			return value.Value{}, &RuntimeError{Message: "division by zero"}
		}
		return value.Float(li / ri), nil
	case ast.OpFloorDiv:
		if ri == 0 {
			return value.Value{}, &RuntimeError{Message: "division by zero"}
		}
		q := floorDiv(li, ri)
		return numericResult(q, bothInt), nil
	case ast.OpMod:
		if ri == 0 {
			return value.Value{}, &RuntimeError{Message: "modulo by zero"}
		}
		return numericResult(floatMod(li, ri), bothInt), nil
	case ast.OpPow:
		return numericResult(floatPow(li, ri), bothInt), nil
	default:
		return value.Value{}, fmt.Errorf("interp: unhandled binary op %v", op)
	}
}

func numericOf(v value.Value) (float64, bool) {
	switch v.Kind {
	case value.KInt:
		return float64(v.Int), true
	case value.KFloat:
		return v.Float, true
	case value.KBool:
		if v.Bool {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

func numericResult(f float64, asInt bool) value.Value {
	if asInt {
		return value.Int(int64(f))
	}
	return value.Float(f)
}

func floorDiv(a, b float64) float64 {
	q := a / b
	if q < 0 {
		return float64(int64(q)) - boolToFloat(q != float64(int64(q)))
	}
	return float64(int64(q))
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func floatMod(a, b float64) float64 {
	m := a - b*floorDiv(a, b)
	return m
}

func floatPow(a, b float64) float64 {
	if b == 0 {
		return 1
	}
	neg := b < 0
	if neg {
		b = -b
	}
	result := 1.0
	base := a
	n := int64(b)
	for n > 0 {
		if n&1 == 1 {
			result *= base
		}
		base *= base
		n >>= 1
	}
	if neg {
		return 1 / result
	}
	return result
}

func repeatString(s string, n int) string {
	if n <= 0 {
		return ""
	}
	out := make([]byte, 0, len(s)*n)
	for i := 0; i < n; i++ {
		out = append(out, s...)
	}
	return string(out)
}

func toDisplayString(v value.Value) string {
	switch v.Kind {
	case value.KStr:
		return v.Str
	case value.KBool:
		if v.Bool {
			return "True"
		}
		return "False"
	case value.KNone:
		return "None"
	case value.KInt:
		return fmt.Sprint(v.Int)
	case value.KFloat:
		return fmt.Sprint(v.Float)
	default:
		return fmt.Sprintf("%v", v)
	}
}
