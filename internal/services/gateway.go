// gateway.go
//
// Data service for the tutor-buddy tutoring dashboard
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of tutorbuddy.
// tutorbuddy is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// tutorbuddy is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with tutorbuddy.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/localnerve/tutorbuddy/internal/config"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/hints"
)

// Options configures a Gateway
type Options struct {
	Tables           config.Tables
	OperationTimeout time.Duration
}

// Gateway is the data-access layer for users, tutors, batches, students and payments.
// It holds no mutable state; every operation acquires its connection or transaction
// for its own duration only, so a Gateway is safe for concurrent use.
type Gateway struct {
	db      *gorm.DB
	tables  config.Tables
	timeout time.Duration
}

// NewGateway creates a Gateway over db using the given table names
func NewGateway(db *gorm.DB, opts Options) *Gateway {
	return &Gateway{
		db:      db,
		tables:  opts.Tables,
		timeout: opts.OperationTimeout,
	}
}

// Tables returns the table names the gateway operates on
func (g *Gateway) Tables() config.Tables {
	return g.tables
}

// opContext bounds one operation, including connection acquisition, by the operation timeout
func (g *Gateway) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if g.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, g.timeout)
}

// conn returns a session for writes
func (g *Gateway) conn(ctx context.Context) *gorm.DB {
	return g.db.WithContext(ctx)
}

// read returns a session for SELECTs. MySQL also enforces the operation timeout server side.
func (g *Gateway) read(ctx context.Context) *gorm.DB {
	db := g.db.WithContext(ctx)
	if g.timeout > 0 && g.db.Dialector.Name() == "mysql" {
		db = db.Clauses(hints.New(fmt.Sprintf("MAX_EXECUTION_TIME(%d)", g.timeout.Milliseconds())))
	}
	return db
}

// lookup is read with record-not-found noise silenced; callers turn it into NotFoundError
func (g *Gateway) lookup(ctx context.Context) *gorm.DB {
	return g.read(ctx).Session(&gorm.Session{Logger: g.db.Logger.LogMode(logger.Silent)})
}

// withTx runs fn in a scoped transaction: commit when fn returns nil, rollback otherwise.
// A non-nil return always means the transaction was rolled back.
func (g *Gateway) withTx(ctx context.Context, op string, fn func(tx *gorm.DB) error) (err error) {
	tx := g.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		log.Printf("services: error starting transaction for %s: %v", op, tx.Error)
		return &TransactionStartError{Op: op, Err: tx.Error}
	}

	defer func() {
		if r := recover(); r != nil {
			rollback(tx, op)
			err = &StatementError{Op: op, Step: "panic", Err: fmt.Errorf("%v", r)}
		}
	}()

	if err := fn(tx); err != nil {
		rollback(tx, op)
		return txFailed(op, err)
	}

	if err := tx.Commit().Error; err != nil {
		log.Printf("services: error committing transaction in %s: %v", op, err)
		rollback(tx, op)
		return &CommitError{Op: op, Err: err}
	}

	return nil
}

func rollback(tx *gorm.DB, op string) {
	err := tx.Rollback().Error
	switch {
	case errors.Is(err, sql.ErrTxDone):
		// the driver already ended it, as after a failed commit
		log.Printf("services: transaction for %s already finished, no rollback issued", op)
	case err != nil:
		log.Printf("services: error rolling back %s: %v", op, err)
	default:
		log.Printf("services: rolled back %s", op)
	}
}

// txFailed passes typed errors through and wraps anything else as a StatementError
func txFailed(op string, err error) error {
	var (
		nf *NotFoundError
		ce *ConflictError
		se *StatementError
	)
	if errors.As(err, &nf) || errors.As(err, &ce) || errors.As(err, &se) {
		return err
	}
	return &StatementError{Op: op, Step: "unknown", Err: err}
}

// stepErr labels a failed statement inside a transaction
func stepErr(op, step string, err error) error {
	log.Printf("services: %s: error during %s: %v", op, step, err)
	return &StatementError{Op: op, Step: step, Err: err}
}

// queryFailed wraps a failed single-statement operation
func queryFailed(op string, err error) error {
	log.Printf("services: error while executing %s: %v", op, err)
	return &QueryError{Op: op, Err: err}
}
