// Package repositories holds one CRUD surface per stored entity.
//
// Repositories are stateless apart from the shared *database.Store. Every
// error leaving a repository is a *errors.Error from pkg/errors; store and
// driver errors are classified at the operation boundary.
package repositories

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/menumanagerpro/menumanager/pkg/database"
	apperr "github.com/menumanagerpro/menumanager/pkg/errors"
	"github.com/menumanagerpro/menumanager/pkg/event"
	"github.com/menumanagerpro/menumanager/pkg/logger"
	"github.com/menumanagerpro/menumanager/pkg/metrics"
)

// Field is one optional value of a partial update. The zero Field is
// "absent"; Set marks a value present even when it is the zero value, so an
// empty string is written rather than skipped.
type Field[T any] struct {
	value T
	set   bool
}

// Set returns a present Field holding v.
func Set[T any](v T) Field[T] {
	return Field[T]{value: v, set: true}
}

// Get returns the value and whether it is present.
func (f Field[T]) Get() (T, bool) { return f.value, f.set }

func (f Field[T]) IsSet() bool { return f.set }

// updates collects present fields into a column → value map.
type updates map[string]any

func addField[T any](u updates, column string, f Field[T]) {
	if v, ok := f.Get(); ok {
		u[column] = v
	}
}

type base struct {
	store  *database.Store
	entity string // singular name used in events, metrics and messages
	unique string // column whose UNIQUE constraint maps to DUPLICATE_KEY
	log    *slog.Logger
}

func newBase(store *database.Store, entity, unique string) base {
	return base{
		store:  store,
		entity: entity,
		unique: unique,
		log:    logger.With("repository", entity),
	}
}

// observe records the outcome of an operation; call it deferred with a
// pointer to the named error result.
func (b base) observe(op string, start time.Time, err *error) {
	metrics.ObserveStoreOp(b.entity, op, start, *err)
	if *err != nil && apperr.IsCode(*err, apperr.CodeStorage) {
		b.log.Error("store operation failed", "operation", op, "error", *err)
	}
}

func (b base) changed(action string, id uint) {
	b.log.Debug(b.entity+" "+action, "id", id)
	event.Fire(event.Change{Entity: b.entity, Action: action, ID: id})
}

func (b base) notFound(id uint) error {
	return apperr.New(apperr.CodeNotFound, fmt.Sprintf("%s %d not found", b.entity, id)).WithField("id")
}

// classify translates a store error into the taxonomy.
func (b base) classify(err error, op string) error {
	if err == nil {
		return nil
	}
	if typed := apperr.As(err); typed != nil {
		return typed
	}

	msg := err.Error()
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.Wrap(apperr.CodeNotFound, err, fmt.Sprintf("%s not found", b.entity))
	case errors.Is(err, gorm.ErrDuplicatedKey), isUniqueViolation(msg):
		return apperr.Wrap(apperr.CodeDuplicateKey, err,
			fmt.Sprintf("%s with this %s already exists", b.entity, b.unique)).WithField(b.unique)
	case errors.Is(err, gorm.ErrForeignKeyViolated), isForeignKeyViolation(msg):
		return apperr.Wrap(apperr.CodeReferenced, err,
			fmt.Sprintf("%s %s: references a missing row or is still referenced", op, b.entity))
	case errors.Is(err, gorm.ErrCheckConstraintViolated), isCheckViolation(msg):
		return apperr.Wrap(apperr.CodeValidation, err, fmt.Sprintf("%s %s: value not allowed", op, b.entity))
	default:
		return apperr.Wrap(apperr.CodeStorage, err, fmt.Sprintf("%s %s", op, b.entity))
	}
}

// The driver messages below back up gorm's error translation, which not
// every dialect implements for every constraint kind.

func isUniqueViolation(msg string) bool {
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "Duplicate entry")
}

func isForeignKeyViolation(msg string) bool {
	return strings.Contains(msg, "FOREIGN KEY constraint failed") ||
		strings.Contains(msg, "violates foreign key constraint") ||
		strings.Contains(msg, "a foreign key constraint fails")
}

func isCheckViolation(msg string) bool {
	return strings.Contains(msg, "CHECK constraint failed") ||
		strings.Contains(msg, "violates check constraint") ||
		strings.Contains(msg, "Check constraint")
}

func (b base) find(ctx context.Context, dest any, id uint) error {
	err := b.store.DB(ctx).First(dest, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return b.notFound(id)
	}
	return b.classify(err, "find")
}

// update writes the present columns of row id. It reports NOT_FOUND for a
// missing row even when no column is present.
func (b base) update(ctx context.Context, model any, id uint, u updates) error {
	err := b.store.Write(ctx, func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(model).Where("id = ?", id).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return b.notFound(id)
		}
		if len(u) == 0 {
			return nil
		}
		return tx.Model(model).Where("id = ?", id).Updates(map[string]any(u)).Error
	})
	if err != nil {
		return b.classify(err, "update")
	}
	b.changed("updated", id)
	return nil
}

func (b base) delete(ctx context.Context, model any, id uint) error {
	err := b.store.Write(ctx, func(tx *gorm.DB) error {
		res := tx.Delete(model, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return b.notFound(id)
		}
		return nil
	})
	if err != nil {
		return b.classify(err, "delete")
	}
	b.changed("deleted", id)
	return nil
}
