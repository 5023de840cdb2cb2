package db

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

const DefaultFleetSize = 40

type Repo struct {
	DB *gorm.DB

	// FleetSize bounds valid unit ids: [1, FleetSize].
	FleetSize int

	// Strict wraps every read-check-write reservation in one serializable
	// transaction, closing the double-booking window. Off, the check and
	// the write run as separate statements.
	Strict bool
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{DB: db, FleetSize: DefaultFleetSize, Strict: true}
}

// txn runs fn atomically in strict mode, or directly otherwise. Serializable
// isolation makes two concurrent conflict reads unable to both commit; a
// losing transaction surfaces as ErrConcurrentUpdate and the client retries.
func (r *Repo) txn(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if !r.Strict {
		return fn(r.DB.WithContext(ctx))
	}
	return r.DB.WithContext(ctx).Transaction(fn, &sql.TxOptions{
		Isolation: sql.LevelSerializable,
	})
}
