package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// Personnel is staff of the holding. Document is unique.
type Personnel struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	Name           string `json:"nombre" gorm:"not null"`
	Surname        string `json:"apellidos"`
	Sex            string `json:"sexo"`
	DocType        string `json:"tipo_documento"`
	Document       string `json:"documento" gorm:"uniqueIndex;not null"`
	Role           string `json:"cargo"`
	PhytoQualified bool   `json:"habilitado_fitosanitarios" gorm:"index"`
	Phone          string `json:"telefono"`
	Email          string `json:"email"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullName joins name and surname.
func (p *Personnel) FullName() string {
	if p.Surname == "" {
		return p.Name
	}
	return p.Name + " " + p.Surname
}

// Advisor is the advisory profile of a Person (1:1).
type Advisor struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	PersonID      uint    `json:"persona_id" gorm:"uniqueIndex;not null"`
	Person        *Person `json:"persona,omitempty"`
	ROPONumber    string  `json:"numero_inscripcion_ropo" gorm:"index"`
	Qualification string  `json:"tipo_carnet"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ApplicationEquipment is machinery used to apply products.
type ApplicationEquipment struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	Description    string     `json:"descripcion" gorm:"not null"`
	ROMANumber     string     `json:"numero_inscripcion_roma" gorm:"index"`
	AcquiredAt     *time.Time `json:"fecha_adquisicion"`
	LastInspection *time.Time `json:"fecha_ultima_inspeccion"`
	HoldingID      *uint      `json:"explotacion_id" gorm:"index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Activity is one entry of the logbook diary.
type Activity struct {
	ID               uint                  `gorm:"primaryKey" json:"id"`
	HoldingID        uint                  `json:"explotacion_id" gorm:"index;not null"`
	Date             time.Time             `json:"fecha" gorm:"index;not null"`
	Type             string                `json:"tipo" gorm:"index;default:OTRO"`
	PlotID           *uint                 `json:"parcela_id"`
	Plot             *Plot                 `json:"parcela,omitempty"`
	StartTime        string                `json:"hora_inicio"`
	EndTime          string                `json:"hora_fin"`
	TreatedArea      decimal.NullDecimal   `json:"superficie_tratada_ha"`
	Pest             string                `json:"problema_fitosanitario"`
	ApplicatorID     *uint                 `json:"aplicador_id"`
	Applicator       *Person               `json:"aplicador,omitempty"`
	EquipmentID      *uint                 `json:"equipo_id"`
	Equipment        *ApplicationEquipment `json:"equipo,omitempty"`
	ProductName      string                `json:"producto_nombre"`
	ProductRegNumber string                `json:"producto_numero_registro"`
	Dose             decimal.NullDecimal   `json:"dosis"`
	DoseText         string                `json:"dosis_text"`
	Efficacy         string                `json:"eficacia"`
	Notes            string                `json:"observaciones"`
	ValidationState  string                `json:"estado_validacion" gorm:"default:pendiente"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TreatedSeed records the use of treated seed at sowing.
type TreatedSeed struct {
	ID           uint                `gorm:"primaryKey" json:"id"`
	HoldingID    uint                `json:"explotacion_id" gorm:"index;not null"`
	SowingDate   time.Time           `json:"fecha_siembra" gorm:"index;not null"`
	PlotID       *uint               `json:"parcela_id"`
	Plot         *Plot               `json:"parcela,omitempty"`
	Crop         string              `json:"cultivo"`
	SownArea     decimal.NullDecimal `json:"superficie_sembrada_ha"`
	SeedKg       decimal.NullDecimal `json:"cantidad_semilla_kg"`
	PhytoProduct string              `json:"producto_fitosanitario"`
	RegNumber    string              `json:"numero_registro"`
	Notes        string              `json:"observaciones"`

	CreatedAt time.Time
}

// LabAnalysis is a laboratory analysis bulletin.
type LabAnalysis struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	HoldingID          uint      `json:"explotacion_id" gorm:"index;not null"`
	Date               time.Time `json:"fecha" gorm:"index;not null"`
	Material           string    `json:"material_analizado"`
	Crop               string    `json:"cultivo"`
	BulletinNumber     string    `json:"numero_boletin"`
	Laboratory         string    `json:"laboratorio"`
	DetectedSubstances string    `json:"sustancias_activas_detectadas"`

	CreatedAt time.Time
}

// ProductMovement is a sale or any product exit.
type ProductMovement struct {
	ID            uint                `gorm:"primaryKey" json:"id"`
	HoldingID     uint                `json:"explotacion_id" gorm:"index;not null"`
	Date          time.Time           `json:"fecha" gorm:"index;not null"`
	Product       string              `json:"producto" gorm:"not null"`
	QuantityKg    decimal.NullDecimal `json:"cantidad_kg"`
	InvoiceNumber string              `json:"numero_albaran"`
	BatchNumber   string              `json:"numero_lote"`
	ClientName    string              `json:"cliente_nombre"`
	ClientNIF     string              `json:"cliente_nif"`
	RGSEAANumber  string              `json:"numero_rgseaa"`

	CreatedAt time.Time
}
