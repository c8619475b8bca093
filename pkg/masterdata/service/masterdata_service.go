package service

import (
	"context"

	"cuaderno/entities"
)

type TitleholderInput struct {
	Name                string
	Surname             string
	DocType             string
	Document            string
	HoldingTaxID        string
	HoldingRegistration string
	Address             *entities.Address
}

type HoldingInput struct {
	Name                 string
	NIF                  string
	NationalRegistration string
	RegionalRegistration string
	Representation       string
	TitleholderDocument  string
	Address              *entities.Address
}

type PlotInput struct {
	SigpacRef      string
	Polygon        string
	Parcel         string
	Enclosure      string
	SigpacUse      string
	SigpacArea     *float64
	CultivatedArea *float64
	Species        string
	Variety        string
	Irrigation     string
	Protection     string
}

type RecipientInput struct {
	Name         string
	DocType      string
	Document     string
	VehiclePlate string
	Address      *entities.Address
}

type VehicleInput struct {
	Type  string
	Plate string
	Make  string
	Model string
}

type EquipmentInput struct {
	Description    string
	ROMANumber     string
	AcquiredAt     string
	LastInspection string
}

type ApplicatorInput struct {
	Name           string
	Surname        string
	Sex            string
	DocType        string
	Document       string
	Role           string
	PhytoQualified bool
	Phone          string
	Email          string
}

type AdvisorInput struct {
	Name          string
	NIF           string
	ROPONumber    string
	Qualification string
	Phone         string
	Email         string
	Address       *entities.Address
}

type CarrierInput struct {
	Name    string
	NIF     string
	Phone   string
	Email   string
	Address *entities.Address
}

// Service registers reference data. Every create reports whether a new row
// was inserted or an existing one reused.
type Service interface {
	CreateTitleholder(ctx context.Context, in TitleholderInput) (*entities.Titleholder, bool, error)
	ConfigureMainHolding(ctx context.Context, in HoldingInput) (*entities.Holding, bool, error)
	CreatePlot(ctx context.Context, in PlotInput) (*entities.Plot, error)
	CreateRecipient(ctx context.Context, in RecipientInput) (*entities.Recipient, *entities.Person, error)
	CreateVehicle(ctx context.Context, in VehicleInput) (*entities.Vehicle, bool, error)
	CreateEquipment(ctx context.Context, in EquipmentInput) (*entities.ApplicationEquipment, error)
	CreateApplicator(ctx context.Context, in ApplicatorInput) (*entities.Personnel, bool, error)
	CreateAdvisor(ctx context.Context, in AdvisorInput) (*entities.Advisor, bool, error)
	CreateCarrier(ctx context.Context, in CarrierInput) (*entities.Carrier, bool, error)
}
