// Package store holds the gorm primitives the feature repositories share:
// first-match lookups and find-or-create by natural key.
package store

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"cuaderno/entities"
)

// First loads the first row (by primary key) matching q into out.
// A miss is reported as found=false with a nil error.
func First(q *gorm.DB, out any) (bool, error) {
	err := q.Order("id ASC").Limit(1).Take(out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// FindOrCreate looks for a row matching key; when there is none it inserts out
// (with key applied). Either way out ends up holding the stored row.
func FindOrCreate(ctx context.Context, db *gorm.DB, out any, key map[string]any) (created bool, err error) {
	res := db.WithContext(ctx).Where(key).Order("id ASC").FirstOrCreate(out)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ContainsFold reports whether any field contains needle, ignoring case.
// Matching runs in Go because SQLite LOWER only folds ASCII.
func ContainsFold(needle string, fields ...string) bool {
	needle = strings.ToLower(strings.TrimSpace(needle))
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

// MainHolding returns the first configured holding with titleholder and
// addresses preloaded, or nil when none exists.
func MainHolding(ctx context.Context, db *gorm.DB) (*entities.Holding, error) {
	var h entities.Holding
	ok, err := First(db.WithContext(ctx).
		Preload("Address").
		Preload("Titleholder").
		Preload("Titleholder.Address"), &h)
	if err != nil || !ok {
		return nil, err
	}
	return &h, nil
}

// SaveAddress creates addr, or updates it in place when it already has an id.
// A nil or empty address is skipped and the current id is kept.
func SaveAddress(ctx context.Context, db *gorm.DB, current *uint, addr *entities.Address) (*uint, error) {
	if addr == nil || (addr.Empty() && addr.Phone == "" && addr.Mobile == "" && addr.Email == "") {
		return current, nil
	}
	if current != nil {
		err := db.WithContext(ctx).Model(&entities.Address{ID: *current}).
			Select("*").Omit("id", "created_at").Updates(addr).Error
		if err != nil {
			return nil, err
		}
		return current, nil
	}
	if err := db.WithContext(ctx).Create(addr).Error; err != nil {
		return nil, err
	}
	id := addr.ID
	return &id, nil
}
