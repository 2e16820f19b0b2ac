package steps

import (
	"context"
	"fmt"
	"reflect"
	"runtime"
	"strings"
	"time"

	"github.com/sitetest/browser-test-harness/framework/harness"
)

// Func is the unit every wrapper operates on: one action against the browser,
// performed with the case's fixtures.
type Func func(ctx context.Context, fx *harness.Fixtures) error

// Step wraps an action in a named reporting span. The span opens before the
// action runs and closes when it settles, success or failure, so exactly one
// started/finished pair reaches the reporter per invocation. The action's
// error passes through unchanged.
//
// If name is empty, it is derived from the wrapped function's name.
func Step(name string, fn Func) Func {
	return func(ctx context.Context, fx *harness.Fixtures) error {
		spanName := name
		if spanName == "" {
			spanName = functionName(fn)
		}
		fx.Reporter.SpanStarted(spanName)
		start := time.Now()
		err := invoke(ctx, fx, spanName, fn)
		fx.Reporter.SpanFinished(spanName, time.Since(start), err)
		return err
	}
}

// invoke runs the action, converting a panic into an *InvocationError so the
// surrounding span still closes and only the owning test fails.
func invoke(ctx context.Context, fx *harness.Fixtures, spanName string, fn Func) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &InvocationError{Step: spanName, Cause: fmt.Errorf("%+v", r)}
		}
	}()
	return fn(ctx, fx)
}

// functionName derives a readable span name from a function value, keeping
// just the final package-qualified element ("pages.(*LoginPage).SignIn-fm").
func functionName(fn Func) string {
	f := runtime.FuncForPC(reflect.ValueOf(fn).Pointer())
	if f == nil {
		return "step"
	}
	name := f.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimSuffix(name, "-fm")
}
