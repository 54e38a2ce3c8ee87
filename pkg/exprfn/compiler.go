// Package exprfn compiles a user-supplied scalar Lisp expression of one
// free variable t into a Go function, the mechanism behind spec.md §4.F's
// `Variable(t -> r(t))` fillet radius profile. Each evaluation runs in a
// fresh zygomys sandbox under a hard timeout, the same pattern the
// teacher's design-graph evaluator uses for user Lisp source.
package exprfn

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	zygo "github.com/glycerine/zygomys/zygo"
)

// EvalTimeout bounds a single Eval call. A user expression that diverges
// (infinite loop, pathological recursion) cannot stall a fillet build
// past this.
const EvalTimeout = 2 * time.Second

// Function is a compiled scalar expression of the free variable t.
// Each Eval creates a fresh sandbox. Concurrent calls do not race, but
// once a newer Eval has started, an earlier in-flight Eval returns an
// "evaluation superseded" error instead of its value.
type Function struct {
	source string

	mu         sync.Mutex
	generation uint64
}

// Compile parses source as a single Lisp expression in one free variable
// named t. Compilation only checks that source loads as valid syntax; the
// expression is re-evaluated with t bound fresh on every Eval call rather
// than once here, since zygomys has no notion of a reusable compiled
// closure across sandboxes.
func Compile(source string) (*Function, error) {
	env := zygo.NewZlispSandbox()
	defer env.Stop()
	if err := env.LoadString(wrap(source, 0)); err != nil {
		return nil, fmt.Errorf("exprfn: invalid expression: %w", err)
	}
	return &Function{source: source}, nil
}

// wrap binds t to the given value ahead of the user expression, so the
// expression body can refer to t directly (spec.md §4.F "t in [0,1]").
func wrap(source string, t float64) string {
	return fmt.Sprintf("(def t %s)\n%s", strconv.FormatFloat(t, 'g', -1, 64), source)
}

type evalResult struct {
	value float64
	err   error
}

// Eval evaluates the compiled expression with t bound to the given value
// in a fresh sandbox, returning a fatal error on timeout, panic, or a
// result that isn't numeric.
func (f *Function) Eval(t float64) (float64, error) {
	f.mu.Lock()
	f.generation++
	gen := f.generation
	f.mu.Unlock()

	ch := make(chan evalResult, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalResult{err: fmt.Errorf("exprfn: panic during evaluation: %v", r)}
			}
		}()
		ch <- f.eval(t)
	}()

	return waitWithTimeout(ch, gen, &f.mu, &f.generation)
}

func (f *Function) eval(t float64) evalResult {
	env := zygo.NewZlispSandbox()
	defer env.Stop()

	if err := env.LoadString(wrap(f.source, t)); err != nil {
		return evalResult{err: fmt.Errorf("exprfn: %w", err)}
	}
	res, err := env.Run()
	if err != nil {
		return evalResult{err: fmt.Errorf("exprfn: %w", err)}
	}

	v, err := asFloat(res)
	if err != nil {
		return evalResult{err: err}
	}
	return evalResult{value: v}
}

// asFloat converts a zygomys result to a float64, accepting both integer
// and floating-point Lisp values since `(* 2 t)` and `(+ 0.05 t)` are both
// reasonable ways to write a radius expression.
func asFloat(res zygo.Sexp) (float64, error) {
	switch v := res.(type) {
	case *zygo.SexpFloat:
		return v.Val, nil
	case *zygo.SexpInt:
		return float64(v.Val), nil
	default:
		return 0, fmt.Errorf("exprfn: expression did not evaluate to a number, got %v", res)
	}
}

// AsRadiusFunc adapts a compiled Function to the `func(t float64) float64`
// shape pkg/fillet's Variable radius profile expects. A fatal evaluation
// error (timeout, panic, non-numeric result) is converted to a panic,
// which pkg/fillet's own state-machine recover boundary turns into a
// ConvergenceFailure rather than letting it escape to the caller.
func AsRadiusFunc(f *Function) func(t float64) float64 {
	return func(t float64) float64 {
		v, err := f.Eval(t)
		if err != nil {
			panic(err)
		}
		return v
	}
}
