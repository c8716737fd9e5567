package repo

import "context"

type TxHandler func(context.Context, Tx) error

// Conn represents one database connection taken out of the pool.
// Statements run on a Conn directly are each committed on their own,
// while the Tx method wraps a handler in a single transaction.
type Conn interface {
	Queryer
	Tx(ctx context.Context, handler TxHandler) error
	IsConn()
}
