package repo

import (
	"github.com/bryhearnchi/tripguides/internal/batch"
	"github.com/bryhearnchi/tripguides/internal/db"
)

// Guide implements the optimized multi-entity query patterns: transactional
// trip duplication, bulk event upsert, parallel global search, the complete
// trip read-model, and the single-statement dashboard aggregate.
//
// Unlike the plain CRUD repos, Guide holds the instrumented *db.DB rather
// than a bare Querier: it needs the pool for parallel fan-out, transactions
// for the all-or-nothing writes, and db.Execute for operation timing.
type Guide struct {
	db    *db.DB
	batch *batch.Batch
}

// NewGuide constructs the optimized query repo over the instrumented
// handle and the batch builder.
func NewGuide(d *db.DB, b *batch.Batch) *Guide {
	return &Guide{db: d, batch: b}
}
