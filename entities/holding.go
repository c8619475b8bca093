package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// Titleholder is the legal owner registered for a holding.
type Titleholder struct {
	ID                  uint     `gorm:"primaryKey" json:"id"`
	Name                string   `json:"nombre" gorm:"not null"`
	Surname             string   `json:"apellidos"`
	DocType             string   `json:"tipo_documento"` // DNI|NIE|PASAPORTE
	Document            string   `json:"documento" gorm:"uniqueIndex;not null"`
	AddressID           *uint    `json:"direccion_id"`
	Address             *Address `json:"direccion,omitempty"`
	HoldingTaxID        string   `json:"cif_explotacion"`
	HoldingRegistration string   `json:"registro_explotacion"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullName joins name and surname.
func (t *Titleholder) FullName() string {
	if t == nil {
		return ""
	}
	if t.Surname == "" {
		return t.Name
	}
	return t.Name + " " + t.Surname
}

// Holding is the farm business (explotación).
type Holding struct {
	ID                   uint         `gorm:"primaryKey" json:"id"`
	Name                 string       `json:"nombre" gorm:"not null"`
	NIF                  string       `json:"nif" gorm:"index"`
	NationalRegistration string       `json:"numero_registro_nacional"`
	RegionalRegistration string       `json:"numero_registro_autonomico"`
	AddressID            *uint        `json:"direccion_id"`
	Address              *Address     `json:"direccion,omitempty"`
	TitleholderID        *uint        `json:"titular_id"`
	Titleholder          *Titleholder `json:"titular,omitempty"`
	Representation       string       `json:"tipo_representacion"` // PROPIETARIO|REPRESENTANTE

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Plot is a parcel identified by its SIGPAC reference.
type Plot struct {
	ID             uint                `gorm:"primaryKey" json:"id"`
	HoldingID      uint                `json:"explotacion_id" gorm:"index;not null"`
	SigpacRef      string              `json:"referencia_sigpac" gorm:"index"`
	Polygon        string              `json:"poligono"`
	Parcel         string              `json:"parcela"`
	Enclosure      string              `json:"recinto"`
	SigpacUse      string              `json:"uso_sigpac"`
	SigpacArea     decimal.NullDecimal `json:"superficie_sigpac"`
	CultivatedArea decimal.NullDecimal `json:"superficie_cultivada"`
	Species        string              `json:"especie"`
	Variety        string              `json:"variedad"`
	Irrigation     string              `json:"secano_regadio"` // secano|regadío
	Protection     string              `json:"aire_protegido"` // aire libre|protegido

	CreatedAt time.Time
	UpdatedAt time.Time
}
