package repository

import (
	"context"

	"cuaderno/entities"
)

// Repository writes reference data. Upserts report whether a row was created.
type Repository interface {
	UpsertTitleholder(ctx context.Context, t *entities.Titleholder, addr *entities.Address) (bool, error)
	TitleholderByDocument(ctx context.Context, doc string) (*entities.Titleholder, error)
	UpsertHolding(ctx context.Context, h *entities.Holding, addr *entities.Address) (bool, error)
	MainHolding(ctx context.Context) (*entities.Holding, error)
	HoldingByNIF(ctx context.Context, nif string) (*entities.Holding, error)

	CreatePlot(ctx context.Context, p *entities.Plot) error

	FindOrCreateVehicle(ctx context.Context, v *entities.Vehicle) (bool, error)
	VehicleByPlate(ctx context.Context, plate string) (*entities.Vehicle, error)

	// CreateRecipient writes the Recipient and its Person twin (same NIF) in
	// one transaction. The Person is reused when one with that NIF exists.
	CreateRecipient(ctx context.Context, r *entities.Recipient, addr *entities.Address) (twin *entities.Person, twinCreated bool, err error)

	CreateEquipment(ctx context.Context, e *entities.ApplicationEquipment) error
	UpsertPersonnel(ctx context.Context, p *entities.Personnel) (bool, error)
	CreateAdvisor(ctx context.Context, p *entities.Person, addr *entities.Address, a *entities.Advisor) (bool, error)
	FindOrCreateCarrier(ctx context.Context, c *entities.Carrier, addr *entities.Address) (bool, error)
}
