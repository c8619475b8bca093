package service

import (
	"context"

	"cuaderno/entities"
)

// DATInput is what generar_dat receives. Products, Quantities and Units are
// parallel lists; Units may be empty (all "kg").
type DATInput struct {
	RecipientName string
	Products      []string
	Quantities    []float64
	Units         []string
	Varieties     []string

	CarrierNIF   string
	CarrierName  string
	CarrierPhone string
	CarrierEmail string

	AuthorizedNIF  string
	AuthorizedName string

	Ecological   bool
	Integrated   bool
	Conventional bool
	DOP          string
	IGP          string
	ETG          string
	OtherQuality string

	UsageInstructions     string
	Notes                 string
	TemperatureControlled bool
	// LoadingDate is YYYY-MM-DD; empty means today.
	LoadingDate string

	// Optional transport details. LoadTime and UnloadTime are HH:MM on the
	// loading date.
	GrossWeight         *float64
	NetWeight           *float64
	Pallets             *int
	Packages            *int
	Batches             []string
	DriverNIF           string
	DriverName          string
	LoadTime            string
	UnloadTime          string
	RecordedTemperature *float64
	TransportCost       *float64
}

// DAT is a generated transport document.
type DAT struct {
	Number   string
	Document *entities.DATDocument
	Record   *entities.TransportRecord
	Text     string
}

type Service interface {
	// GenerateDAT persists a new DAT with its transport record and returns the
	// rendered document. Every call creates new rows.
	GenerateDAT(ctx context.Context, in DATInput) (*DAT, error)
}
