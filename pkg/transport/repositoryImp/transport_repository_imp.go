package repositoryImp

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"cuaderno/entities"
	"cuaderno/pkg/store"
	"cuaderno/pkg/transport/repository"
)

type transportRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.Repository { return &transportRepo{db} }

func (r *transportRepo) MainHolding(ctx context.Context) (*entities.Holding, error) {
	return store.MainHolding(ctx, r.db)
}

func (r *transportRepo) RecipientByName(ctx context.Context, name string) (*entities.Recipient, error) {
	if strings.TrimSpace(name) == "" {
		return nil, nil
	}
	var names []entities.Recipient
	if err := r.db.WithContext(ctx).Select("id", "name").Order("id ASC").Find(&names).Error; err != nil {
		return nil, err
	}
	for _, n := range names {
		if !store.ContainsFold(name, n.Name) {
			continue
		}
		var rc entities.Recipient
		err := r.db.WithContext(ctx).Preload("Address").Preload("PreferredVehicle").First(&rc, n.ID).Error
		if err != nil {
			return nil, err
		}
		return &rc, nil
	}
	return nil, nil
}

func (r *transportRepo) CarrierByNIF(ctx context.Context, nif string) (*entities.Carrier, error) {
	if strings.TrimSpace(nif) == "" {
		return nil, nil
	}
	var c entities.Carrier
	ok, err := store.First(r.db.WithContext(ctx).Where("nif = ?", strings.TrimSpace(nif)), &c)
	if err != nil || !ok {
		return nil, err
	}
	return &c, nil
}

func (r *transportRepo) PersonByNIF(ctx context.Context, nif string) (*entities.Person, error) {
	nif = strings.TrimSpace(nif)
	if nif == "" {
		return nil, nil
	}
	var p entities.Person
	ok, err := store.First(r.db.WithContext(ctx).Where("nif = ?", nif), &p)
	if err != nil || !ok {
		return nil, err
	}
	return &p, nil
}

func (r *transportRepo) NumberTaken(ctx context.Context, number string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&entities.DATDocument{}).Where("number = ?", number).Count(&n).Error
	return n > 0, err
}

func (r *transportRepo) SavePair(ctx context.Context, doc *entities.DATDocument, rec *entities.TransportRecord) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Holding").Create(doc).Error; err != nil {
			return err
		}
		rec.DATDocumentID = &doc.ID
		rec.DATNumber = doc.Number
		return tx.Omit("DATDocument", "RecipientPerson").Create(rec).Error
	})
}

func (r *transportRepo) RecordsByDAT(ctx context.Context, number string) ([]entities.TransportRecord, error) {
	var out []entities.TransportRecord
	err := r.db.WithContext(ctx).
		Preload("DATDocument").
		Preload("RecipientPerson").
		Where("dat_number = ?", number).
		Order("id ASC").
		Find(&out).Error
	return out, err
}
