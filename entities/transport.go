package entities

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Vehicle is identified by its plate.
type Vehicle struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Type  string `json:"tipo"` // TRACTOR|COCHE|REMOLQUE|FURGONETA|OTRO
	Plate string `json:"matricula" gorm:"uniqueIndex;not null"`
	Make  string `json:"marca"`
	Model string `json:"modelo"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Recipient is the client a transport is addressed to (destinatario).
// Every recipient has a Person twin sharing the same Document as NIF.
type Recipient struct {
	ID                 uint     `gorm:"primaryKey" json:"id"`
	Name               string   `json:"nombre" gorm:"index;not null"`
	DocType            string   `json:"tipo_documento"`
	Document           string   `json:"documento"`
	AddressID          *uint    `json:"direccion_id"`
	Address            *Address `json:"direccion,omitempty"`
	PreferredVehicleID *uint    `json:"transporte_asignado_id"`
	PreferredVehicle   *Vehicle `json:"transporte_asignado,omitempty"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Carrier is an external transport company or person (transportista).
type Carrier struct {
	ID        uint     `gorm:"primaryKey" json:"id"`
	Name      string   `json:"nombre" gorm:"not null"`
	NIF       string   `json:"nif" gorm:"index"`
	AddressID *uint    `json:"direccion_id"`
	Address   *Address `json:"direccion,omitempty"`
	Phone     string   `json:"telefono"`
	Email     string   `json:"email"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DATDocument is the transport accompanying document.
type DATDocument struct {
	ID           uint                `gorm:"primaryKey" json:"id"`
	Number       string              `json:"numero" gorm:"uniqueIndex;not null"`
	EmissionDate time.Time           `json:"fecha_emision" gorm:"index"`
	LoadingDate  time.Time           `json:"fecha_carga"`
	HoldingID    *uint               `json:"explotacion_id"`
	Holding      *Holding            `json:"explotacion,omitempty"`
	Product      string              `json:"producto"`
	Quantity     decimal.NullDecimal `json:"cantidad"`
	Unit         string              `json:"unidad"`
	Notes        string              `json:"observaciones"`

	CreatedAt time.Time
}

// TransportRecord is the operational trace of a transport issued with a DAT.
type TransportRecord struct {
	ID                    uint                `gorm:"primaryKey" json:"id"`
	DATDocumentID         *uint               `json:"documento_dat_id" gorm:"index"`
	DATDocument           *DATDocument        `json:"documento_dat,omitempty"`
	Reference             string              `json:"referencia" gorm:"index"`
	DATNumber             string              `json:"dat_numero" gorm:"index"`
	TransportedAt         time.Time           `json:"fecha_transporte" gorm:"index"`
	LoadedAt              *time.Time          `json:"tiempo_carga"`
	UnloadedAt            *time.Time          `json:"tiempo_descarga"`
	OriginHoldingID       *uint               `json:"explotacion_origen_id"`
	OriginPersonID        *uint               `json:"persona_origen_id"`
	RecipientPersonID     *uint               `json:"destinatario_id"`
	RecipientPerson       *Person             `json:"destinatario,omitempty"`
	CarrierID             *uint               `json:"transportista_id"`
	VehicleID             *uint               `json:"vehiculo_id"`
	DriverID              *uint               `json:"conductor_id"`
	Quantity              decimal.NullDecimal `json:"cantidad"`
	Unit                  string              `json:"unidad"`
	GrossWeight           decimal.NullDecimal `json:"peso_bruto"`
	NetWeight             decimal.NullDecimal `json:"peso_neto"`
	Pallets               *int                `json:"pallets"`
	Packages              *int                `json:"bultos"`
	Batches               datatypes.JSON      `json:"lotes,omitempty"`
	TemperatureControlled bool                `json:"temperatura_controlada"`
	RecordedTemperature   decimal.NullDecimal `json:"temp_registrada"`
	Route                 datatypes.JSONMap   `json:"ruta,omitempty"`
	Tracking              datatypes.JSONMap   `json:"seguimiento_gps,omitempty"`
	Permits               datatypes.JSONMap   `json:"permisos,omitempty"`
	State                 string              `json:"estado" gorm:"default:pendiente"`
	TransportCost         decimal.NullDecimal `json:"costo_transporte"`
	Notes                 string              `json:"observaciones"`
	Extra                 datatypes.JSONMap   `json:"datos_extra,omitempty"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
