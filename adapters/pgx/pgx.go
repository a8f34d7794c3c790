// Package pgx implements amity's storage ports on top of a pgx
// connection pool.
package pgx

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rjcastillo/amity/core"
)

type Adapter struct {
	pool *pgxpool.Pool
}

var _ core.StorageAdapter = (*Adapter)(nil)

func New(pool *pgxpool.Pool) *Adapter {
	return &Adapter{
		pool: pool,
	}
}
