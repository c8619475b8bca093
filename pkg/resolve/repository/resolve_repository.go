package repository

import (
	"context"

	"cuaderno/entities"
)

// Repository is the read side the resolution engine needs. Every lookup is
// first-match and returns nil, nil when nothing matches.
type Repository interface {
	CarrierByNIF(ctx context.Context, nif string) (*entities.Carrier, error)
	PersonByNIF(ctx context.Context, nif string) (*entities.Person, error)
	// RecipientTwin finds the Person written alongside a Recipient.
	RecipientTwin(ctx context.Context, r *entities.Recipient) (*entities.Person, error)
	PlotByText(ctx context.Context, text string, holdingID uint) (*entities.Plot, error)
}
