// Package orm is a thin fluent wrapper over gorm used by the repositories.
//
//	var products []models.Product
//	err := orm.On(db).WithContext(ctx).Order("id").Cache("catalog:products", time.Minute, &products)
package orm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shashiranjanraj/storefront/pkg/cache"
	"github.com/shashiranjanraj/storefront/pkg/database"
)

type Query struct {
	db *gorm.DB
}

// DB starts a query on the global connection.
func DB() *Query {
	return &Query{db: database.DB}
}

// On starts a query on db, typically a transaction handle.
func On(db *gorm.DB) *Query {
	return &Query{db: db}
}

// Gorm exposes the underlying handle.
func (q *Query) Gorm() *gorm.DB { return q.db }

func (q *Query) WithContext(ctx context.Context) *Query {
	return &Query{db: q.db.WithContext(ctx)}
}

func (q *Query) Model(v interface{}) *Query {
	return &Query{db: q.db.Model(v)}
}

func (q *Query) Table(name string) *Query {
	return &Query{db: q.db.Table(name)}
}

func (q *Query) Where(query interface{}, args ...interface{}) *Query {
	return &Query{db: q.db.Where(query, args...)}
}

func (q *Query) Select(query interface{}, args ...interface{}) *Query {
	return &Query{db: q.db.Select(query, args...)}
}

func (q *Query) Joins(query string, args ...interface{}) *Query {
	return &Query{db: q.db.Joins(query, args...)}
}

func (q *Query) Order(value interface{}) *Query {
	return &Query{db: q.db.Order(value)}
}

func (q *Query) Get(dest interface{}) error {
	return q.db.Find(dest).Error
}

func (q *Query) First(dest interface{}) error {
	return q.db.First(dest).Error
}

func (q *Query) Count() (int64, error) {
	var n int64
	err := q.db.Count(&n).Error
	return n, err
}

func (q *Query) Create(v interface{}) error {
	return q.db.Create(v).Error
}

// CreateIgnore inserts v, skipping rows that collide with an existing
// primary or unique key, and returns how many rows were written.
func (q *Query) CreateIgnore(v interface{}) (int64, error) {
	res := q.db.Clauses(clause.OnConflict{DoNothing: true}).Create(v)
	return res.RowsAffected, res.Error
}

// Delete removes the rows matched by the query and returns how many went.
func (q *Query) Delete(model interface{}) (int64, error) {
	res := q.db.Delete(model)
	return res.RowsAffected, res.Error
}

// Cache serves dest from the cache when present; otherwise it runs the query
// and stores the result for ttl. A failed cache write is not an error.
func (q *Query) Cache(key string, ttl time.Duration, dest interface{}) error {
	if cache.Get(key, dest) {
		return nil
	}

	if err := q.db.Find(dest).Error; err != nil {
		return err
	}

	_ = cache.Set(key, dest, ttl)
	return nil
}

// Transaction runs fn inside a database transaction. The transaction is
// rolled back if fn returns an error or panics; a panic is re-raised after
// the rollback.
func (q *Query) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) (err error) {
	tx := q.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("orm: begin: %w", tx.Error)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err = fn(tx); err != nil {
		if rbErr := tx.Rollback().Error; rbErr != nil {
			return errors.Join(err, fmt.Errorf("orm: rollback: %w", rbErr))
		}
		return err
	}

	if err = tx.Commit().Error; err != nil {
		return fmt.Errorf("orm: commit: %w", err)
	}
	return nil
}

// IsNotFound reports whether err means no row matched.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
