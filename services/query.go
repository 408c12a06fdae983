package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/edugroup/site-api/model"
	applog "github.com/edugroup/site-api/utils/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// scope narrows a query (filters, ordering, limits)
type scope func(*gorm.DB) *gorm.DB

// listRows runs a read. A failed read is logged and reported as an empty
// list so that pages keep rendering.
func listRows[T any](ctx context.Context, db *gorm.DB, entity, op string, scopes ...scope) []T {
	var rows []T
	q := db.WithContext(ctx).Model(new(T))
	for _, s := range scopes {
		q = s(q)
	}
	if err := q.Find(&rows).Error; err != nil {
		applog.L().Error("read failed",
			zap.String("entity", entity),
			zap.String("op", op),
			zap.Error(err))
		return []T{}
	}
	if rows == nil {
		rows = []T{}
	}
	return rows
}

func getRow[T any](ctx context.Context, db *gorm.DB, entity string, id uuid.UUID) (*T, error) {
	row := new(T)
	if err := db.WithContext(ctx).Where("id = ?", id).First(row).Error; err != nil {
		err = translate(err)
		if !errors.Is(err, ErrNotFound) {
			logFailure(entity, "get", id, err)
		}
		return nil, fmt.Errorf("get %s %s: %w", entity, id, err)
	}
	return row, nil
}

func createRow[T any](ctx context.Context, db *gorm.DB, entity string, row *T) error {
	if err := db.WithContext(ctx).Create(row).Error; err != nil {
		err = translate(err)
		logFailure(entity, "create", uuid.Nil, err)
		return fmt.Errorf("create %s: %w", entity, err)
	}
	return nil
}

// updateRow applies changes to one row and bumps its version. When expected
// is set the row must still carry that version, even if changes is empty.
func updateRow[T any](ctx context.Context, db *gorm.DB, entity string, id uuid.UUID, expected *int, changes map[string]interface{}) (*T, error) {
	target := func() *gorm.DB {
		q := db.WithContext(ctx).Model(new(T)).Where("id = ?", id)
		if expected != nil {
			q = q.Where("version = ?", *expected)
		}
		return q
	}

	var matched int64
	if len(changes) > 0 {
		changes["version"] = gorm.Expr("version + 1")
		res := target().Updates(changes)
		if res.Error != nil {
			err := translate(res.Error)
			logFailure(entity, "update", id, err)
			return nil, fmt.Errorf("update %s %s: %w", entity, id, err)
		}
		matched = res.RowsAffected
	} else if expected != nil {
		if err := target().Count(&matched).Error; err != nil {
			logFailure(entity, "update", id, err)
			return nil, fmt.Errorf("update %s %s: %w", entity, id, err)
		}
	} else {
		return getRow[T](ctx, db, entity, id)
	}

	if matched == 0 {
		var count int64
		if err := db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Count(&count).Error; err != nil {
			logFailure(entity, "update", id, err)
			return nil, fmt.Errorf("update %s %s: %w", entity, id, err)
		}
		if count == 0 {
			return nil, fmt.Errorf("update %s %s: %w", entity, id, ErrNotFound)
		}
		applog.L().Warn("stale update rejected",
			zap.String("entity", entity),
			zap.Stringer("id", id),
			zap.Intp("expected_version", expected))
		return nil, fmt.Errorf("update %s %s: %w", entity, id, ErrStaleVersion)
	}

	return getRow[T](ctx, db, entity, id)
}

func deleteRow[T any](ctx context.Context, db *gorm.DB, entity string, id uuid.UUID) error {
	res := db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		err := translate(res.Error)
		logFailure(entity, "delete", id, err)
		return fmt.Errorf("delete %s %s: %w", entity, id, err)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delete %s %s: %w", entity, id, ErrNotFound)
	}
	return nil
}

// increment bumps a counter column in place. It never reads the row first, so
// concurrent viewers cannot lose each other's increments. Rows outside the
// gate scopes count as missing.
func increment[T any](ctx context.Context, db *gorm.DB, entity string, id uuid.UUID, column string, gates ...scope) error {
	q := db.WithContext(ctx).Model(new(T)).Where("id = ?", id)
	for _, g := range gates {
		q = g(q)
	}
	res := q.UpdateColumn(column, gorm.Expr(column+" + ?", 1))
	if res.Error != nil {
		logFailure(entity, "increment_"+column, id, res.Error)
		return fmt.Errorf("increment %s.%s: %w", entity, column, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("increment %s.%s: %w", entity, column, ErrNotFound)
	}
	return nil
}

func logFailure(entity, op string, id uuid.UUID, err error) {
	fields := []zap.Field{
		zap.String("entity", entity),
		zap.String("op", op),
		zap.Error(err),
	}
	if id != uuid.Nil {
		fields = append(fields, zap.Stringer("id", id))
	}
	applog.L().Error("write failed", fields...)
}

func orderBy(clause string) scope {
	return func(db *gorm.DB) *gorm.DB { return db.Order(clause) }
}

func limit(n int) scope {
	return func(db *gorm.DB) *gorm.DB {
		if n <= 0 {
			return db
		}
		return db.Limit(n)
	}
}

func where(query interface{}, args ...interface{}) scope {
	return func(db *gorm.DB) *gorm.DB { return db.Where(query, args...) }
}

// gateActive limits a query to publicly visible rows
var gateActive = where("status = ?", model.StatusActive)

// patch collects the columns an update request actually sets
type patch map[string]interface{}

func setIf[V any](p patch, column string, v *V) {
	if v != nil {
		p[column] = *v
	}
}
