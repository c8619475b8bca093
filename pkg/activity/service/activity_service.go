package service

import (
	"context"

	"cuaderno/entities"
	"cuaderno/pkg/activity/repository"
)

type TreatmentInput struct {
	Date             string
	PlotRef          string
	Product          string
	ProductRegNumber string
	Dose             *float64
	DoseText         string
	Pest             string
	TreatedArea      *float64
	StartTime        string
	EndTime          string
	// ApplicatorNIF is matched against Person NIF, then Personnel document.
	ApplicatorNIF string
	Equipment     string
	Efficacy      string
	Notes         string
}

type IrrigationInput struct {
	Date       string
	PlotRef    string
	TypeHint   string
	Fertilizer string
	RegNumber  string
	Dose       *float64
	DoseText   string
	Area       *float64
	StartTime  string
	EndTime    string
	Notes      string
}

type SeedingInput struct {
	SowingDate   string
	PlotRef      string
	Crop         string
	SownArea     *float64
	SeedKg       *float64
	PhytoProduct string
	RegNumber    string
	Notes        string
}

type AnalysisInput struct {
	Date               string
	Material           string
	Crop               string
	BulletinNumber     string
	Laboratory         string
	DetectedSubstances string
}

type SaleInput struct {
	Date          string
	Product       string
	QuantityKg    *float64
	InvoiceNumber string
	BatchNumber   string
	ClientName    string
	ClientNIF     string
	RGSEAANumber  string
}

type History struct {
	Count int64
	Rows  []entities.Activity
}

type Service interface {
	RecordTreatment(ctx context.Context, in TreatmentInput) (*entities.Activity, error)
	RecordIrrigationOrFertilization(ctx context.Context, in IrrigationInput) (*entities.Activity, error)
	RecordSeeding(ctx context.Context, in SeedingInput) (*entities.TreatedSeed, error)
	RecordAnalysis(ctx context.Context, in AnalysisInput) (*entities.LabAnalysis, error)
	RecordSale(ctx context.Context, in SaleInput) (*entities.ProductMovement, error)
	History(ctx context.Context, f repository.HistoryFilter) (History, error)
}
