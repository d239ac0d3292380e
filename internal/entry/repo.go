package entry

import (
	"context"

	"gorm.io/gorm"
)

type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Create(ctx context.Context, e *Entry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *Repo) FindByID(ctx context.Context, id string) (*Entry, error) {
	var e Entry
	if err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *Repo) ListByUserID(ctx context.Context, userID string) ([]Entry, error) {
	var entries []Entry
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("start_time ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *Repo) DeleteByID(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Entry{}, "id = ?", id).Error
}
