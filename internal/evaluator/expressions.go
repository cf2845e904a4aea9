package evaluator

import (
	"fmt"

	"github.com/golox-lang/golox/internal/ast"
	"github.com/golox-lang/golox/internal/errs"
	"github.com/golox-lang/golox/internal/heap"
	"github.com/golox-lang/golox/internal/token"
	"github.com/golox-lang/golox/internal/value"
)

func (e *Evaluator) evaluate(expr ast.Expr) (value.Value, error) {
	switch expr := expr.(type) {
	case *ast.Literal:
		return literalValue(expr.Value), nil
	case *ast.Grouping:
		return e.evaluate(expr.Inner)
	case *ast.Unary:
		return e.evaluateUnary(expr)
	case *ast.Binary:
		return e.evaluateBinary(expr)
	case *ast.Logical:
		return e.evaluateLogical(expr)
	case *ast.Variable:
		return e.evaluateVariable(expr)
	case *ast.Assign:
		return e.evaluateAssign(expr)
	case *ast.Call:
		return e.evaluateCall(expr)
	case *ast.Get:
		return e.evaluateGet(expr)
	case *ast.Set:
		return e.evaluateSet(expr)
	case *ast.This:
		return e.evaluateThis(expr)
	case *ast.Super:
		return e.evaluateSuper(expr)
	default:
		return value.Nil, fmt.Errorf("evaluator: unhandled expression type %T", expr)
	}
}

func literalValue(v any) value.Value {
	switch v := v.(type) {
	case nil:
		return value.Nil
	case bool:
		return value.Bool(v)
	case float64:
		return value.Number(v)
	case string:
		return value.String(v)
	default:
		return value.Nil
	}
}

func (e *Evaluator) evaluateUnary(expr *ast.Unary) (value.Value, error) {
	operand, err := e.evaluate(expr.Operand)
	if err != nil {
		return value.Nil, err
	}
	switch expr.Op.Type {
	case token.BANG:
		return value.Bool(!operand.IsTruthy()), nil
	case token.MINUS:
		if !operand.IsNumber() {
			return value.Nil, errs.NewRuntimeError(expr.Op, "Operand must be a number.")
		}
		return value.Number(-operand.Number), nil
	default:
		return value.Nil, errs.NewRuntimeError(expr.Op, "Unknown unary operator '%s'.", expr.Op.Lexeme)
	}
}

func (e *Evaluator) evaluateLogical(expr *ast.Logical) (value.Value, error) {
	left, err := e.evaluate(expr.Left)
	if err != nil {
		return value.Nil, err
	}
	if expr.Op.Type == token.OR {
		if left.IsTruthy() {
			return left, nil
		}
	} else { // AND
		if !left.IsTruthy() {
			return left, nil
		}
	}
	return e.evaluate(expr.Right)
}

func (e *Evaluator) evaluateBinary(expr *ast.Binary) (value.Value, error) {
	left, err := e.evaluate(expr.Left)
	if err != nil {
		return value.Nil, err
	}
	right, err := e.evaluate(expr.Right)
	if err != nil {
		return value.Nil, err
	}

	switch expr.Op.Type {
	case token.MINUS:
		return numberBinary(expr.Op, left, right, func(a, b float64) float64 { return a - b })
	case token.SLASH:
		return numberBinary(expr.Op, left, right, func(a, b float64) float64 { return a / b })
	case token.STAR:
		return numberBinary(expr.Op, left, right, func(a, b float64) float64 { return a * b })
	case token.PLUS:
		return e.evaluatePlus(expr, left, right)
	case token.GREATER:
		return numberCompare(expr.Op, left, right, func(a, b float64) bool { return a > b })
	case token.GREATEREQUAL:
		return numberCompare(expr.Op, left, right, func(a, b float64) bool { return a >= b })
	case token.LESS:
		return numberCompare(expr.Op, left, right, func(a, b float64) bool { return a < b })
	case token.LESSEQUAL:
		return numberCompare(expr.Op, left, right, func(a, b float64) bool { return a <= b })
	case token.BANGEQUAL:
		return value.Bool(left != right), nil
	case token.EQUALEQUAL:
		return value.Bool(left == right), nil
	default:
		return value.Nil, errs.NewRuntimeError(expr.Op, "Unknown binary operator '%s'.", expr.Op.Lexeme)
	}
}

func (e *Evaluator) evaluatePlus(expr *ast.Binary, left, right value.Value) (value.Value, error) {
	if left.IsNumber() && right.IsNumber() {
		return value.Number(left.Number + right.Number), nil
	}
	if left.IsString() && right.IsString() {
		return value.String(left.Str + right.Str), nil
	}
	return value.Nil, errs.NewRuntimeError(expr.Op, "Operands must be two numbers or two strings.")
}

func numberBinary(op token.Token, left, right value.Value, fn func(a, b float64) float64) (value.Value, error) {
	if !left.IsNumber() || !right.IsNumber() {
		return value.Nil, errs.NewRuntimeError(op, "Operands must be numbers.")
	}
	return value.Number(fn(left.Number, right.Number)), nil
}

func numberCompare(op token.Token, left, right value.Value, fn func(a, b float64) bool) (value.Value, error) {
	if !left.IsNumber() || !right.IsNumber() {
		return value.Nil, errs.NewRuntimeError(op, "Operands must be numbers.")
	}
	return value.Bool(fn(left.Number, right.Number)), nil
}

// evaluateVariable implements §4.4: a resolved distance reads the matching
// frame directly; an unresolved reference falls back to the global frame.
func (e *Evaluator) evaluateVariable(expr *ast.Variable) (value.Value, error) {
	if distance, ok := e.locals[expr]; ok {
		if v, ok := e.env.GetAt(distance, expr.Name.Lexeme); ok {
			return v, nil
		}
		return value.Nil, errs.NewRuntimeError(expr.Name, "Undefined variable '%s'.", expr.Name.Lexeme)
	}
	if v, ok := e.Globals.Get(expr.Name.Lexeme); ok {
		return v, nil
	}
	return value.Nil, errs.NewRuntimeError(expr.Name, "Undefined variable '%s'.", expr.Name.Lexeme)
}

func (e *Evaluator) evaluateAssign(expr *ast.Assign) (value.Value, error) {
	v, err := e.evaluate(expr.Value)
	if err != nil {
		return value.Nil, err
	}
	if distance, ok := e.locals[expr]; ok {
		e.env.AssignAt(distance, expr.Name.Lexeme, v)
		return v, nil
	}
	if !e.Globals.Assign(expr.Name.Lexeme, v) {
		return value.Nil, errs.NewRuntimeError(expr.Name, "Undefined variable '%s'.", expr.Name.Lexeme)
	}
	return v, nil
}

func (e *Evaluator) evaluateGet(expr *ast.Get) (value.Value, error) {
	obj, err := e.evaluate(expr.Object)
	if err != nil {
		return value.Nil, err
	}
	if !obj.IsInstance() {
		return value.Nil, errs.NewRuntimeError(expr.Name, "Only instances have properties.")
	}
	inst := e.Heap.Instance(obj.Ref)
	if v, ok := inst.Fields[expr.Name.Lexeme]; ok {
		return v, nil
	}
	class := e.Heap.Class(inst.Class)
	if methodRef, ok := findMethod(e.Heap, class, expr.Name.Lexeme); ok {
		return value.Callable(e.bind(methodRef, obj.Ref)), nil
	}
	return value.Nil, errs.NewRuntimeError(expr.Name, "Undefined property '%s'.", expr.Name.Lexeme)
}

func (e *Evaluator) evaluateSet(expr *ast.Set) (value.Value, error) {
	obj, err := e.evaluate(expr.Object)
	if err != nil {
		return value.Nil, err
	}
	if !obj.IsInstance() {
		return value.Nil, errs.NewRuntimeError(expr.Name, "Only instances have fields.")
	}
	v, err := e.evaluate(expr.Value)
	if err != nil {
		return value.Nil, err
	}
	e.Heap.Instance(obj.Ref).Fields[expr.Name.Lexeme] = v
	return v, nil
}

func (e *Evaluator) evaluateThis(expr *ast.This) (value.Value, error) {
	distance, ok := e.locals[expr]
	if !ok {
		return value.Nil, errs.NewRuntimeError(expr.Keyword, "Undefined variable 'this'.")
	}
	v, ok := e.env.GetAt(distance, expr.Keyword.Lexeme)
	if !ok {
		return value.Nil, errs.NewRuntimeError(expr.Keyword, "Undefined variable 'this'.")
	}
	return v, nil
}

func (e *Evaluator) evaluateSuper(expr *ast.Super) (value.Value, error) {
	distance, ok := e.locals[expr]
	if !ok {
		return value.Nil, errs.NewRuntimeError(expr.Keyword, "Undefined variable 'super'.")
	}
	superVal, ok := e.env.GetAt(distance, "super")
	if !ok || !superVal.IsCallable() {
		return value.Nil, errs.NewRuntimeError(expr.Keyword, "Undefined variable 'super'.")
	}
	superclass := e.Heap.Class(superVal.Ref)

	// "this" is always exactly one scope closer than "super" (§4.4: the
	// resolver's class layout nests the this-scope directly inside the
	// super-scope, §9).
	thisVal, ok := e.env.GetAt(distance-1, "this")
	if !ok {
		return value.Nil, errs.NewRuntimeError(expr.Keyword, "Undefined variable 'this'.")
	}

	methodRef, ok := findMethod(e.Heap, superclass, expr.Method.Lexeme)
	if !ok {
		return value.Nil, errs.NewRuntimeError(expr.Method, "Undefined property '%s'.", expr.Method.Lexeme)
	}
	return value.Callable(e.bind(methodRef, thisVal.Ref)), nil
}

// findMethod walks the superclass chain looking up name (§4.5's Get: an
// absent method on class is searched transitively on its superclass).
func findMethod(h *heap.Heap, class *heap.Class, name string) (value.Ref, bool) {
	for class != nil {
		if ref, ok := class.Methods[name]; ok {
			return ref, true
		}
		if class.Superclass == value.NilRef {
			return value.NilRef, false
		}
		class = h.Class(class.Superclass)
	}
	return value.NilRef, false
}
