// Package repositories holds the data access for entities that are never
// physically removed. Every read goes through Query, which hides rows with a
// deletion timestamp unless IncludeDeleted is passed, and every delete is an
// UPDATE of that timestamp.
package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// Model is implemented by every soft-deletable entity.
type Model interface {
	TableName() string
}

type options struct {
	includeDeleted bool
}

type Option func(*options)

// IncludeDeleted lifts the soft-delete filter for one query.
func IncludeDeleted() Option {
	return func(o *options) { o.includeDeleted = true }
}

type SoftDeleteRepository[T Model] struct {
	db    *gorm.DB
	table string
}

func newSoftDeleteRepository[T Model](db *gorm.DB) SoftDeleteRepository[T] {
	var zero T
	return SoftDeleteRepository[T]{db: db, table: zero.TableName()}
}

func (r SoftDeleteRepository[T]) withDB(db *gorm.DB) SoftDeleteRepository[T] {
	r.db = db
	return r
}

func (r SoftDeleteRepository[T]) DB() *gorm.DB {
	return r.db
}

// Col qualifies a column with the repository's table name.
func (r SoftDeleteRepository[T]) Col(name string) string {
	return r.table + "." + name
}

// Query starts a scoped query on the entity's table.
func (r SoftDeleteRepository[T]) Query(ctx context.Context, opts ...Option) *gorm.DB {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	q := r.db.WithContext(ctx).Model(new(T))
	if !o.includeDeleted {
		q = q.Where(r.Col("deleted_at") + " IS NULL")
	}
	return q
}

// FindByID returns gorm.ErrRecordNotFound for missing and soft-deleted rows.
func (r SoftDeleteRepository[T]) FindByID(ctx context.Context, id string, opts ...Option) (*T, error) {
	var entity T
	if err := r.Query(ctx, opts...).Where(r.Col("id")+" = ?", id).First(&entity).Error; err != nil {
		return nil, err
	}
	return &entity, nil
}

func (r SoftDeleteRepository[T]) FindByIDs(ctx context.Context, ids []string) ([]T, error) {
	var entities []T
	err := r.Query(ctx).Where(r.Col("id")+" IN ?", ids).Find(&entities).Error
	return entities, err
}

func (r SoftDeleteRepository[T]) Count(ctx context.Context, query string, args ...interface{}) (int64, error) {
	var count int64
	q := r.Query(ctx)
	if query != "" {
		q = q.Where(query, args...)
	}
	err := q.Count(&count).Error
	return count, err
}

func (r SoftDeleteRepository[T]) Exists(ctx context.Context, query string, args ...interface{}) (bool, error) {
	count, err := r.Count(ctx, query, args...)
	return count > 0, err
}

func (r SoftDeleteRepository[T]) Create(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Create(entity).Error
}

// Updates applies values to a live row and reports how many rows changed.
func (r SoftDeleteRepository[T]) Updates(ctx context.Context, id string, values map[string]interface{}) (int64, error) {
	res := r.db.WithContext(ctx).Model(new(T)).
		Where("id = ? AND deleted_at IS NULL", id).
		Updates(values)
	return res.RowsAffected, res.Error
}

func (r SoftDeleteRepository[T]) UpdatesMany(ctx context.Context, ids []string, values map[string]interface{}) (int64, error) {
	res := r.db.WithContext(ctx).Model(new(T)).
		Where("id IN ? AND deleted_at IS NULL", ids).
		Updates(values)
	return res.RowsAffected, res.Error
}

// Delete stamps deleted_at on a live row.
func (r SoftDeleteRepository[T]) Delete(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).Model(new(T)).
		Where("id = ? AND deleted_at IS NULL", id).
		Update("deleted_at", time.Now().UTC())
	return res.RowsAffected, res.Error
}

func (r SoftDeleteRepository[T]) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).Model(new(T)).
		Where("id IN ? AND deleted_at IS NULL", ids).
		Update("deleted_at", time.Now().UTC())
	return res.RowsAffected, res.Error
}

func (r SoftDeleteRepository[T]) Restore(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).Model(new(T)).
		Where("id = ? AND deleted_at IS NOT NULL", id).
		Update("deleted_at", nil)
	return res.RowsAffected, res.Error
}
