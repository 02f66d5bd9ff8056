package database

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// WithTransaction executes fn within one transaction bound to ctx.
// fn's error rolls everything back and is returned unchanged, so domain errors keep resolving.
// A failure caused by ctx (deadline, cancel) or by begin/commit is reported as ErrStoreUnavailable:
// the outcome is unknown to the caller.
//
// Usage:
//
//	err := WithTransaction(ctx, db, func(tx *gorm.DB) error {
//	    if err := repo.Create(ctx, tx, entity); err != nil {
//	        return err // rollback
//	    }
//	    return nil // commit
//	})
func WithTransaction(ctx context.Context, db *gorm.DB, fn func(*gorm.DB) error) error {
	if fn == nil {
		return errors.New("database: transaction function is nil")
	}

	if ctx == nil {
		ctx = context.Background()
	}

	var fnErr error
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fnErr = fn(tx)
		return fnErr
	})
	if err == nil {
		return nil
	}

	if fnErr == nil {
		// begin or commit failed
		return Unavailable("transaction", err)
	}
	if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(fnErr, ErrStoreUnavailable) {
		return Unavailable("transaction", errors.Join(fnErr, ctxErr))
	}
	return fnErr
}
