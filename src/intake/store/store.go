package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/formgate/formgate/src/intake/types"
)

// ErrNotFound is returned when no submission exists for the given id.
var ErrNotFound = errors.New("submission not found")

// Store is the durable sink for accepted submissions. Append-only: there
// is deliberately no update or delete.
type Store interface {
	Create(ctx context.Context, sub *types.Submission) error
	Get(ctx context.Context, id uint64) (*types.Submission, error)
	List(ctx context.Context, limit int) ([]types.Submission, error)
}

type MySQL struct {
	db *gorm.DB
}

func NewMySQL(db *gorm.DB) *MySQL {
	return &MySQL{db: db}
}

// Create inserts one record inside a transaction. id and created_at are
// assigned here; caller-supplied values are discarded.
func (s *MySQL) Create(ctx context.Context, sub *types.Submission) error {
	sub.ID = 0
	sub.CreatedAt = time.Time{}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(sub).Error
	})
}

func (s *MySQL) Get(ctx context.Context, id uint64) (*types.Submission, error) {
	var sub types.Submission
	err := s.db.WithContext(ctx).First(&sub, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (s *MySQL) List(ctx context.Context, limit int) ([]types.Submission, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	var subs []types.Submission
	err := s.db.WithContext(ctx).
		Order("created_at desc").
		Limit(limit).
		Find(&subs).Error
	return subs, err
}
