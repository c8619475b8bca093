package repository

import (
	"context"

	"cuaderno/entities"
)

// HistoryFilter narrows the activity history. Zero values are ignored and
// the rest are ANDed.
type HistoryFilter struct {
	Year    int
	Product string
	Type    string
	Plot    string
	Pest    string
	Limit   int
}

type Repository interface {
	MainHolding(ctx context.Context) (*entities.Holding, error)
	PersonByNIF(ctx context.Context, nif string) (*entities.Person, error)
	PersonnelByDocument(ctx context.Context, doc string) (*entities.Personnel, error)
	// PersonForPersonnel returns the Person carrying the staff member's
	// document as NIF, creating it on first use.
	PersonForPersonnel(ctx context.Context, p *entities.Personnel) (*entities.Person, error)
	EquipmentByText(ctx context.Context, text string, holdingID uint) (*entities.ApplicationEquipment, error)

	CreateActivity(ctx context.Context, a *entities.Activity) error
	CreateTreatedSeed(ctx context.Context, s *entities.TreatedSeed) error
	CreateLabAnalysis(ctx context.Context, a *entities.LabAnalysis) error
	CreateMovement(ctx context.Context, m *entities.ProductMovement) error

	// History returns the total match count and the newest Limit rows.
	History(ctx context.Context, f HistoryFilter) (int64, []entities.Activity, error)
}
