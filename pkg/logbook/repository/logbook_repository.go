package repository

import (
	"context"
	"time"

	"cuaderno/entities"
)

// Repository reads everything the annual logbook prints. Range queries take
// inclusive bounds.
type Repository interface {
	MainHolding(ctx context.Context) (*entities.Holding, error)
	Applicators(ctx context.Context) ([]entities.Personnel, error)
	Equipment(ctx context.Context, holdingID uint) ([]entities.ApplicationEquipment, error)
	Advisors(ctx context.Context) ([]entities.Advisor, error)
	Plots(ctx context.Context, holdingID uint) ([]entities.Plot, error)
	Activities(ctx context.Context, holdingID uint, types []string, from, to time.Time) ([]entities.Activity, error)
	TreatedSeeds(ctx context.Context, holdingID uint, from, to time.Time) ([]entities.TreatedSeed, error)
	Analyses(ctx context.Context, holdingID uint, from, to time.Time) ([]entities.LabAnalysis, error)
	Movements(ctx context.Context, holdingID uint, from, to time.Time) ([]entities.ProductMovement, error)
}
