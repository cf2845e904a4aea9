package evaluator

import (
	"github.com/golox-lang/golox/internal/ast"
	"github.com/golox-lang/golox/internal/environment"
	"github.com/golox-lang/golox/internal/errs"
	"github.com/golox-lang/golox/internal/heap"
	"github.com/golox-lang/golox/internal/token"
	"github.com/golox-lang/golox/internal/value"
)

func (e *Evaluator) evaluateCall(expr *ast.Call) (value.Value, error) {
	callee, err := e.evaluate(expr.Callee)
	if err != nil {
		return value.Nil, err
	}
	args := make([]value.Value, len(expr.Args))
	for i, a := range expr.Args {
		v, err := e.evaluate(a)
		if err != nil {
			return value.Nil, err
		}
		args[i] = v
	}
	return e.callValue(callee, args, expr.Paren)
}

// callValue implements the uniform call protocol of §4.5 over the three
// callable kinds: NativeFunction, Closure, and Class.
func (e *Evaluator) callValue(callee value.Value, args []value.Value, paren token.Token) (value.Value, error) {
	if !callee.IsCallable() {
		return value.Nil, errs.NewRuntimeError(paren, "Can only call functions and classes.")
	}
	kind, ok := e.Heap.KindOf(callee.Ref)
	if !ok {
		return value.Nil, errs.NewRuntimeError(paren, "Can only call functions and classes.")
	}
	switch kind {
	case heap.KindNativeFunction:
		return e.callNative(e.Heap.NativeFunction(callee.Ref), args, paren)
	case heap.KindClosure:
		return e.callClosure(e.Heap.Closure(callee.Ref), args, paren)
	case heap.KindClass:
		return e.callClass(callee.Ref, args, paren)
	default:
		return value.Nil, errs.NewRuntimeError(paren, "Can only call functions and classes.")
	}
}

func (e *Evaluator) callNative(fn *heap.NativeFunction, args []value.Value, paren token.Token) (value.Value, error) {
	if len(args) != fn.Arity {
		return value.Nil, errs.NewRuntimeError(paren, "Expected %d arguments but got %d.", fn.Arity, len(args))
	}
	return fn.Fn(args)
}

func (e *Evaluator) callClosure(closure *heap.Closure, args []value.Value, paren token.Token) (value.Value, error) {
	fn := e.Heap.Function(closure.Function)
	if len(args) != len(fn.Decl.Params) {
		return value.Nil, errs.NewRuntimeError(paren, "Expected %d arguments but got %d.", len(fn.Decl.Params), len(args))
	}

	callEnv := environment.Chain{Heap: e.Heap, Ref: e.Heap.NewEnvironment(closure.Env, false)}
	for i, param := range fn.Decl.Params {
		callEnv.Define(param.Lexeme, args[i])
	}

	ctrl, err := e.executeBlock(fn.Decl.Body, callEnv)
	if err != nil {
		return value.Nil, err
	}

	if closure.IsInitializer {
		// Both a normal fall-through and an empty `return;` yield the
		// instance (§4.5): getAt(0, "this") against the *captured* closure
		// environment, which is exactly the this-frame `bind` installed.
		thisVal, _ := environment.Chain{Heap: e.Heap, Ref: closure.Env}.GetAt(0, "this")
		return thisVal, nil
	}
	if ctrl.signal == signalReturn {
		return ctrl.value, nil
	}
	return value.Nil, nil
}

func (e *Evaluator) callClass(classRef value.Ref, args []value.Value, paren token.Token) (value.Value, error) {
	class := e.Heap.Class(classRef)
	instRef := e.Heap.NewInstance(&heap.Instance{Class: classRef, Fields: map[string]value.Value{}})

	if initRef, ok := findMethod(e.Heap, class, "init"); ok {
		boundRef := e.bind(initRef, instRef)
		if _, err := e.callClosure(e.Heap.Closure(boundRef), args, paren); err != nil {
			return value.Nil, err
		}
	} else if len(args) != 0 {
		return value.Nil, errs.NewRuntimeError(paren, "Expected 0 arguments but got %d.", len(args))
	}
	return value.Instance(instRef), nil
}

// bind implements Closure.bind (§4.5): a fresh Environment whose parent is
// the method's existing closure environment, defining `this`, wrapped in a
// new Closure over the same Function carrying the same IsInitializer flag.
func (e *Evaluator) bind(methodRef value.Ref, instanceRef value.Ref) value.Ref {
	method := e.Heap.Closure(methodRef)
	thisEnv := e.Heap.NewEnvironment(method.Env, false)
	e.Heap.Environment(thisEnv).Define("this", value.Instance(instanceRef))
	return e.Heap.NewClosure(&heap.Closure{
		Function:      method.Function,
		Env:           thisEnv,
		IsInitializer: method.IsInitializer,
	})
}

// executeClassStmt implements §4.5's ClassStmt evaluation: the class name is
// defined as Nil first (so methods may refer to it recursively), the
// superclass (if any) is evaluated and must be a Class, and methods are
// compiled as Closures over either the super-scope or the current
// environment.
func (e *Evaluator) executeClassStmt(s *ast.ClassStmt) (control, error) {
	e.env.Define(s.Name.Lexeme, value.Nil)

	var superclassRef value.Ref
	methodEnv := e.env
	if s.Superclass != nil {
		superVal, err := e.evaluateVariable(s.Superclass)
		if err != nil {
			return noControl, err
		}
		if !superVal.IsCallable() {
			return noControl, errs.NewRuntimeError(s.Superclass.Name, "Superclass must be a class.")
		}
		if kind, ok := e.Heap.KindOf(superVal.Ref); !ok || kind != heap.KindClass {
			return noControl, errs.NewRuntimeError(s.Superclass.Name, "Superclass must be a class.")
		}
		superclassRef = superVal.Ref

		methodEnv = e.env.NewEnclosed()
		methodEnv.Define("super", superVal)
	}

	methods := make(map[string]value.Ref, len(s.Methods))
	for _, m := range s.Methods {
		isInit := m.Name.Lexeme == "init"
		previous := e.env
		e.env = methodEnv
		closureRef := e.makeClosure(m, methodEnv.Ref, isInit)
		e.env = previous
		methods[m.Name.Lexeme] = closureRef
	}

	classRef := e.Heap.NewClass(&heap.Class{Name: s.Name.Lexeme, Superclass: superclassRef, Methods: methods})
	e.env.Assign(s.Name.Lexeme, value.Callable(classRef))
	return noControl, nil
}
