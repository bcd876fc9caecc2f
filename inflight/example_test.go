package inflight_test

import (
	"context"
	"errors"
	"fmt"

	"github.com/averath/reqops/inflight"
)

func ExampleRegistry_Register() {
	r := inflight.NewRegistry()
	ctx := context.Background()

	// Registering the same identifier again supersedes the first call
	first := r.Register(ctx, "list:123")
	second := r.Register(ctx, "list:123")

	fmt.Println("first superseded:", errors.Is(first.Cause(), inflight.ErrSuperseded))
	fmt.Println("second live:", second.Cause() == nil)
	fmt.Println("live handles:", r.Len())
	// Output:
	// first superseded: true
	// second live: true
	// live handles: 1
}

func ExampleRegistry_CancelAll() {
	r := inflight.NewRegistry()
	ctx := context.Background()

	a := r.Register(ctx, "a")
	b := r.Register(ctx, "b")

	n := r.CancelAll()
	fmt.Println("cancelled:", n)
	fmt.Println("a shutdown:", errors.Is(a.Cause(), inflight.ErrShutdown))
	fmt.Println("b shutdown:", errors.Is(b.Cause(), inflight.ErrShutdown))
	// Output:
	// cancelled: 2
	// a shutdown: true
	// b shutdown: true
}
