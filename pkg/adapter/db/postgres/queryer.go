package postgres

import "github.com/openshelf/libweb/pkg/core/repo"

type Queryer interface {
	*Conn | *Tx
	repo.Queryer
}
