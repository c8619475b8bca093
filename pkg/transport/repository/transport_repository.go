package repository

import (
	"context"

	"cuaderno/entities"
)

type Repository interface {
	MainHolding(ctx context.Context) (*entities.Holding, error)
	// RecipientByName matches a name substring, ignoring case.
	RecipientByName(ctx context.Context, name string) (*entities.Recipient, error)
	CarrierByNIF(ctx context.Context, nif string) (*entities.Carrier, error)
	PersonByNIF(ctx context.Context, nif string) (*entities.Person, error)
	NumberTaken(ctx context.Context, number string) (bool, error)
	// SavePair stores the document and its transport record atomically.
	SavePair(ctx context.Context, doc *entities.DATDocument, rec *entities.TransportRecord) error
	RecordsByDAT(ctx context.Context, number string) ([]entities.TransportRecord, error)
}
