package repositoryImp

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"cuaderno/entities"
	"cuaderno/pkg/resolve/repository"
	"cuaderno/pkg/store"
)

type resolveRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.Repository { return &resolveRepo{db} }

func (r *resolveRepo) CarrierByNIF(ctx context.Context, nif string) (*entities.Carrier, error) {
	nif = strings.TrimSpace(nif)
	if nif == "" {
		return nil, nil
	}
	var c entities.Carrier
	ok, err := store.First(r.db.WithContext(ctx).Preload("Address").Where("nif = ?", nif), &c)
	if err != nil || !ok {
		return nil, err
	}
	return &c, nil
}

func (r *resolveRepo) PersonByNIF(ctx context.Context, nif string) (*entities.Person, error) {
	nif = strings.TrimSpace(nif)
	if nif == "" {
		return nil, nil
	}
	var p entities.Person
	ok, err := store.First(r.db.WithContext(ctx).Preload("Address").Where("nif = ?", nif), &p)
	if err != nil || !ok {
		return nil, err
	}
	return &p, nil
}

func (r *resolveRepo) RecipientTwin(ctx context.Context, rc *entities.Recipient) (*entities.Person, error) {
	if rc == nil {
		return nil, nil
	}
	if rc.Document != "" {
		return r.PersonByNIF(ctx, rc.Document)
	}
	var p entities.Person
	ok, err := store.First(r.db.WithContext(ctx).Preload("Address").
		Where("name = ? AND nif = ?", rc.Name, ""), &p)
	if err != nil || !ok {
		return nil, err
	}
	return &p, nil
}

func (r *resolveRepo) PlotByText(ctx context.Context, text string, holdingID uint) (*entities.Plot, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	q := r.db.WithContext(ctx).Order("id ASC")
	if holdingID != 0 {
		q = q.Where("holding_id = ?", holdingID)
	}
	var plots []entities.Plot
	if err := q.Find(&plots).Error; err != nil {
		return nil, err
	}
	for i := range plots {
		if store.ContainsFold(text, plots[i].SigpacRef, plots[i].Species) {
			return &plots[i], nil
		}
	}
	return nil, nil
}
