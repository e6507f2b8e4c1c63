package cctx

import "context"

// WithValues stores key/value pairs in a derived context.
func WithValues(parent context.Context, values ...interface{}) (ctx context.Context) {
	if len(values)%2 != 0 {
		panic("cctx: odd number of arguments")
	}

	ctx = parent
	for i := 0; i < len(values); i += 2 {
		ctx = context.WithValue(ctx, values[i], values[i+1])
	}
	return
}
