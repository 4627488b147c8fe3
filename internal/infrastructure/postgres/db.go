package postgres

import (
	pkgpostgres "github.com/vigileye/vigil/pkg/postgres"
)

// DB is satisfied by *pgxpool.Pool.
type DB interface {
	pkgpostgres.Querier
	pkgpostgres.TxBeginner
}
