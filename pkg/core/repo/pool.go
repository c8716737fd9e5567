package repo

import "context"

type ConnHandler func(context.Context, Conn) error

// Pool hands out database connections for the duration of a handler
// call. The pool is opened once at process start and held for the
// process lifetime.
type Pool interface {
	Conn(ctx context.Context, handler ConnHandler) error
}
