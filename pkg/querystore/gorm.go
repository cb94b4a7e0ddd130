package querystore

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// GormStore runs raw query text through a GORM connection pool. The pool is
// safe for concurrent use, so one store can serve concurrent pipeline
// invocations.
type GormStore struct {
	db *gorm.DB
}

var _ Store = &GormStore{}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Execute(ctx context.Context, query string) *Result {
	if isSelect(query) {
		return s.executeRead(ctx, query)
	}
	return s.executeWrite(ctx, query)
}

func (s *GormStore) executeRead(ctx context.Context, query string) *Result {
	var rows []map[string]any
	if err := s.db.WithContext(ctx).Raw(query).Scan(&rows).Error; err != nil {
		return failure(err)
	}

	for _, row := range rows {
		normalizeRow(row)
	}

	return &Result{
		Success:  true,
		Rows:     rows,
		RowCount: len(rows),
		Message:  fmt.Sprintf("Query executed successfully. Returned %d rows.", len(rows)),
	}
}

// executeWrite runs non-SELECT statements inside a transaction so a failed
// statement leaves nothing behind.
func (s *GormStore) executeWrite(ctx context.Context, query string) *Result {
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return failure(tx.Error)
	}

	res := tx.Exec(query)
	if res.Error != nil {
		tx.Rollback()
		return failure(res.Error)
	}

	if err := tx.Commit().Error; err != nil {
		return failure(err)
	}

	return &Result{
		Success:  true,
		Rows:     []map[string]any{},
		RowCount: int(res.RowsAffected),
		Message:  "Query executed successfully. Returned 0 rows.",
	}
}

func failure(err error) *Result {
	return &Result{
		Success:  false,
		Rows:     []map[string]any{},
		RowCount: 0,
		Error:    err.Error(),
		Message:  fmt.Sprintf("Query execution failed: %v", err),
	}
}

func isSelect(query string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(query)), "select")
}

// normalizeRow converts binary column values to text so rows survive JSON
// serialization further down the pipeline.
func normalizeRow(row map[string]any) {
	for key, value := range row {
		if b, ok := value.([]byte); ok {
			row[key] = string(b)
		}
	}
}
