package repositoryImp

import (
	"context"
	"time"

	"gorm.io/gorm"

	"cuaderno/entities"
	"cuaderno/pkg/logbook/repository"
	"cuaderno/pkg/store"
)

type logbookRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.Repository { return &logbookRepo{db} }

func (r *logbookRepo) MainHolding(ctx context.Context) (*entities.Holding, error) {
	return store.MainHolding(ctx, r.db)
}

func (r *logbookRepo) Applicators(ctx context.Context) ([]entities.Personnel, error) {
	var out []entities.Personnel
	err := r.db.WithContext(ctx).Where("phyto_qualified = ?", true).Order("id ASC").Find(&out).Error
	return out, err
}

func (r *logbookRepo) Equipment(ctx context.Context, holdingID uint) ([]entities.ApplicationEquipment, error) {
	var out []entities.ApplicationEquipment
	err := r.db.WithContext(ctx).Where("holding_id = ?", holdingID).Order("id ASC").Find(&out).Error
	return out, err
}

func (r *logbookRepo) Advisors(ctx context.Context) ([]entities.Advisor, error) {
	var out []entities.Advisor
	err := r.db.WithContext(ctx).Preload("Person").Order("id ASC").Find(&out).Error
	return out, err
}

func (r *logbookRepo) Plots(ctx context.Context, holdingID uint) ([]entities.Plot, error) {
	var out []entities.Plot
	err := r.db.WithContext(ctx).Where("holding_id = ?", holdingID).Order("id ASC").Find(&out).Error
	return out, err
}

func (r *logbookRepo) Activities(ctx context.Context, holdingID uint, types []string, from, to time.Time) ([]entities.Activity, error) {
	var out []entities.Activity
	err := r.db.WithContext(ctx).
		Preload("Plot").Preload("Applicator").Preload("Equipment").
		Where("holding_id = ? AND type IN ? AND date BETWEEN ? AND ?", holdingID, types, from, to).
		Order("date ASC").Order("id ASC").
		Find(&out).Error
	return out, err
}

func (r *logbookRepo) TreatedSeeds(ctx context.Context, holdingID uint, from, to time.Time) ([]entities.TreatedSeed, error) {
	var out []entities.TreatedSeed
	err := r.db.WithContext(ctx).
		Preload("Plot").
		Where("holding_id = ? AND sowing_date BETWEEN ? AND ?", holdingID, from, to).
		Order("sowing_date ASC").Order("id ASC").
		Find(&out).Error
	return out, err
}

func (r *logbookRepo) Analyses(ctx context.Context, holdingID uint, from, to time.Time) ([]entities.LabAnalysis, error) {
	var out []entities.LabAnalysis
	err := r.db.WithContext(ctx).
		Where("holding_id = ? AND date BETWEEN ? AND ?", holdingID, from, to).
		Order("date ASC").Order("id ASC").
		Find(&out).Error
	return out, err
}

func (r *logbookRepo) Movements(ctx context.Context, holdingID uint, from, to time.Time) ([]entities.ProductMovement, error) {
	var out []entities.ProductMovement
	err := r.db.WithContext(ctx).
		Where("holding_id = ? AND date BETWEEN ? AND ?", holdingID, from, to).
		Order("date ASC").Order("id ASC").
		Find(&out).Error
	return out, err
}
