package serviceImp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"cuaderno/entities"
	"cuaderno/pkg/activity/repository"
	"cuaderno/pkg/activity/repositoryImp"
	"cuaderno/pkg/activity/service"
	"cuaderno/pkg/apperr"
	"cuaderno/pkg/resolve"
	resolveRepo "cuaderno/pkg/resolve/repositoryImp"
	"cuaderno/pkg/testutil"
)

type fixture struct {
	db      *gorm.DB
	svc     service.Service
	holding entities.Holding
	plot    entities.Plot
}

func setup(t *testing.T) fixture {
	db := testutil.DB(t)
	h := entities.Holding{Name: "Finca Sol", NIF: "B123"}
	require.NoError(t, db.Create(&h).Error)
	p := entities.Plot{HoldingID: h.ID, SigpacRef: "P1", Species: "Tomate"}
	require.NoError(t, db.Create(&p).Error)
	engine := resolve.New(resolveRepo.New(db), zap.NewNop())
	return fixture{db: db, svc: New(repositoryImp.New(db), engine, zap.NewNop()), holding: h, plot: p}
}

func ptr(f float64) *float64 { return &f }

func rows(t *testing.T, db *gorm.DB, model any) int64 {
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func TestTreatmentThenHistory(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	a, err := f.svc.RecordTreatment(ctx, service.TreatmentInput{
		Date: "2024-05-01", PlotRef: "P1", Product: "FungicidaX", Dose: ptr(1.5), Pest: "Mildiu",
	})
	require.NoError(t, err)
	assert.Equal(t, entities.ActivityTreatment, a.Type)
	assert.Equal(t, "P1", a.Plot.SigpacRef)
	assert.Equal(t, "1.5", a.Dose.Decimal.String())
	assert.Equal(t, entities.ValidationPending, a.ValidationState)

	h, err := f.svc.History(ctx, repository.HistoryFilter{Year: 2024, Product: "Fungicida"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), h.Count)
	require.Len(t, h.Rows, 1)
	assert.Equal(t, a.ID, h.Rows[0].ID)
	require.NotNil(t, h.Rows[0].Plot)
	assert.Equal(t, "P1", h.Rows[0].Plot.SigpacRef)

	h, err = f.svc.History(ctx, repository.HistoryFilter{Year: 2023, Product: "Fungicida"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), h.Count)
}

func TestTreatmentValidationWritesNothing(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	tests := []struct {
		name string
		in   service.TreatmentInput
		is   error
	}{
		{"bad date", service.TreatmentInput{Date: "01-05-2024", PlotRef: "P1", Product: "X"}, apperr.ErrValidation},
		{"negative dose", service.TreatmentInput{Date: "2024-05-01", PlotRef: "P1", Product: "X", Dose: ptr(-1)}, apperr.ErrValidation},
		{"missing product", service.TreatmentInput{Date: "2024-05-01", PlotRef: "P1"}, apperr.ErrValidation},
		{"unknown plot", service.TreatmentInput{Date: "2024-05-01", PlotRef: "olivo", Product: "X"}, apperr.ErrNotFound},
		{"unknown applicator", service.TreatmentInput{Date: "2024-05-01", PlotRef: "P1", Product: "X", ApplicatorNIF: "0Z"}, apperr.ErrNotFound},
		{"unknown equipment", service.TreatmentInput{Date: "2024-05-01", PlotRef: "P1", Product: "X", Equipment: "dron"}, apperr.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.RecordTreatment(ctx, tt.in)
			assert.ErrorIs(t, err, tt.is)
		})
	}
	assert.Equal(t, int64(0), rows(t, f.db, &entities.Activity{}))
}

func TestTreatmentUnknownEquipmentKeepsStaffUnpromoted(t *testing.T) {
	f := setup(t)
	require.NoError(t, f.db.Create(&entities.Personnel{Name: "Eva", Document: "111A", PhytoQualified: true}).Error)

	_, err := f.svc.RecordTreatment(context.Background(), service.TreatmentInput{
		Date: "2024-05-01", PlotRef: "P1", Product: "X", ApplicatorNIF: "111A", Equipment: "pulverizador inexistente",
	})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.Equal(t, int64(0), rows(t, f.db, &entities.Person{}))
	assert.Equal(t, int64(0), rows(t, f.db, &entities.Activity{}))
}

func TestAccentedPlotAndHistory(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	require.NoError(t, f.db.Create(&entities.Plot{HoldingID: f.holding.ID, SigpacRef: "ÁLAMO-01", Species: "JUDÍA"}).Error)

	for _, ref := range []string{"álamo", "ÁLAMO", "judía"} {
		a, err := f.svc.RecordTreatment(ctx, service.TreatmentInput{
			Date: "2024-07-01", PlotRef: ref, Product: "AZUFRE MOJABLE", Pest: "OÍDIO",
		})
		require.NoError(t, err, ref)
		assert.Equal(t, "ÁLAMO-01", a.Plot.SigpacRef)
	}

	h, err := f.svc.History(ctx, repository.HistoryFilter{Year: 2024, Plot: "judía", Pest: "oídio", Product: "azufre"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), h.Count)
	assert.Len(t, h.Rows, 3)

	h, err = f.svc.History(ctx, repository.HistoryFilter{Year: 2024, Plot: "tomate", Pest: "oídio"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), h.Count)
}

func TestTreatmentSuggestsCreatePlot(t *testing.T) {
	f := setup(t)
	_, err := f.svc.RecordTreatment(context.Background(), service.TreatmentInput{Date: "2024-05-01", PlotRef: "viña", Product: "X"})
	assert.Contains(t, apperr.Text(err), "crear_parcela")
}

func TestTreatmentLinksApplicatorAndEquipment(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	staff := entities.Personnel{Name: "Luis", Surname: "Pérez", Document: "222B", PhytoQualified: true}
	require.NoError(t, f.db.Create(&staff).Error)
	eq := entities.ApplicationEquipment{Description: "Atomizador 1000L", ROMANumber: "ROMA-77", HoldingID: &f.holding.ID}
	require.NoError(t, f.db.Create(&eq).Error)

	a, err := f.svc.RecordTreatment(ctx, service.TreatmentInput{
		Date: "2024-06-01", PlotRef: "tomate", Product: "Cobre", ApplicatorNIF: "222b", Equipment: "roma-77",
	})
	require.NoError(t, err)
	require.NotNil(t, a.Applicator)
	assert.Equal(t, "Luis Pérez", a.Applicator.Name)
	assert.Equal(t, "222B", a.Applicator.NIF)
	require.NotNil(t, a.EquipmentID)
	assert.Equal(t, eq.ID, *a.EquipmentID)

	// the promoted person is reused next time
	_, err = f.svc.RecordTreatment(ctx, service.TreatmentInput{
		Date: "2024-06-02", PlotRef: "P1", Product: "Cobre", ApplicatorNIF: "222B",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows(t, f.db, &entities.Person{}))
}

func TestIrrigationType(t *testing.T) {
	tests := []struct {
		hint, fertilizer, want string
	}{
		{"", "", entities.ActivityIrrigation},
		{"riego por goteo", "", entities.ActivityIrrigation},
		{"Abonado de fondo", "", entities.ActivityFertilization},
		{"ABONO", "", entities.ActivityFertilization},
		{"riego", "NPK 15-15-15", entities.ActivityFertilization},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, irrigationType(tt.hint, tt.fertilizer), "%q/%q", tt.hint, tt.fertilizer)
	}
}

func TestRecordIrrigationOrFertilization(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	a, err := f.svc.RecordIrrigationOrFertilization(ctx, service.IrrigationInput{
		Date: "2024-03-10", PlotRef: "P1", Fertilizer: "Nitrato cálcico", Dose: ptr(20),
	})
	require.NoError(t, err)
	assert.Equal(t, entities.ActivityFertilization, a.Type)

	a, err = f.svc.RecordIrrigationOrFertilization(ctx, service.IrrigationInput{Date: "2024-03-11", PlotRef: "P1"})
	require.NoError(t, err)
	assert.Equal(t, entities.ActivityIrrigation, a.Type)

	_, err = f.svc.RecordIrrigationOrFertilization(ctx, service.IrrigationInput{Date: "2024-03-11", PlotRef: "P1", Dose: ptr(-2)})
	assert.ErrorIs(t, err, apperr.ErrValidation)
	assert.Equal(t, int64(2), rows(t, f.db, &entities.Activity{}))
}

func TestRecordSeeding(t *testing.T) {
	f := setup(t)
	s, err := f.svc.RecordSeeding(context.Background(), service.SeedingInput{
		SowingDate: "2024-02-15", PlotRef: "P1", SeedKg: ptr(3), PhytoProduct: "Thiram",
	})
	require.NoError(t, err)
	assert.Equal(t, "Tomate", s.Crop)
	assert.Equal(t, time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC), s.SowingDate)

	_, err = f.svc.RecordSeeding(context.Background(), service.SeedingInput{SowingDate: "2024-02-15", PlotRef: "P1", SeedKg: ptr(-3)})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestRecordAnalysisAndSale(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	an, err := f.svc.RecordAnalysis(ctx, service.AnalysisInput{Date: "2024-07-01", Material: "Hoja", BulletinNumber: "B-9"})
	require.NoError(t, err)
	assert.Equal(t, f.holding.ID, an.HoldingID)

	m, err := f.svc.RecordSale(ctx, service.SaleInput{Date: "2024-08-01", Product: "Tomate", QuantityKg: ptr(1200), ClientNIF: "b999"})
	require.NoError(t, err)
	assert.Equal(t, "B999", m.ClientNIF)

	_, err = f.svc.RecordSale(ctx, service.SaleInput{Date: "2024-08-01", Product: "Tomate", QuantityKg: ptr(-1)})
	assert.ErrorIs(t, err, apperr.ErrValidation)
	assert.Equal(t, int64(1), rows(t, f.db, &entities.ProductMovement{}))
}

func TestRecordWithoutHolding(t *testing.T) {
	db := testutil.DB(t)
	svc := New(repositoryImp.New(db), resolve.New(resolveRepo.New(db), zap.NewNop()), zap.NewNop())
	_, err := svc.RecordAnalysis(context.Background(), service.AnalysisInput{Date: "2024-07-01"})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.Contains(t, apperr.Text(err), "configurar_explotacion_principal")
}

func TestHistoryFiltersAndPreview(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	other := entities.Plot{HoldingID: f.holding.ID, SigpacRef: "P9", Species: "Pimiento"}
	require.NoError(t, f.db.Create(&other).Error)

	for day := 1; day <= 7; day++ {
		_, err := f.svc.RecordTreatment(ctx, service.TreatmentInput{
			Date: time.Date(2024, 4, day, 0, 0, 0, 0, time.UTC).Format("2006-01-02"), PlotRef: "P1", Product: "Azufre", Pest: "Oídio",
		})
		require.NoError(t, err)
	}
	_, err := f.svc.RecordTreatment(ctx, service.TreatmentInput{Date: "2024-04-03", PlotRef: "P9", Product: "Azufre", Pest: "Araña"})
	require.NoError(t, err)
	_, err = f.svc.RecordIrrigationOrFertilization(ctx, service.IrrigationInput{Date: "2025-01-01", PlotRef: "P9"})
	require.NoError(t, err)

	tests := []struct {
		name  string
		f     repository.HistoryFilter
		count int64
		rows  int
	}{
		{"all", repository.HistoryFilter{}, 9, 5},
		{"year", repository.HistoryFilter{Year: 2024}, 8, 5},
		{"type substring", repository.HistoryFilter{Type: "rieg"}, 1, 1},
		{"plot by species", repository.HistoryFilter{Plot: "pimi"}, 2, 2},
		{"plot and pest", repository.HistoryFilter{Plot: "P9", Pest: "araña"}, 1, 1},
		{"no match", repository.HistoryFilter{Product: "cobre"}, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := f.svc.History(ctx, tt.f)
			require.NoError(t, err)
			assert.Equal(t, tt.count, h.Count)
			assert.Len(t, h.Rows, tt.rows)
		})
	}

	h, err := f.svc.History(ctx, repository.HistoryFilter{Year: 2024, Plot: "P1"})
	require.NoError(t, err)
	require.Len(t, h.Rows, 5)
	assert.Equal(t, "2024-04-07", h.Rows[0].Date.Format("2006-01-02"))
	assert.Equal(t, "2024-04-03", h.Rows[4].Date.Format("2006-01-02"))
}
