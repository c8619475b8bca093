package serviceImp

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"cuaderno/entities"
	"cuaderno/pkg/activity/repository"
	"cuaderno/pkg/activity/service"
	"cuaderno/pkg/apperr"
	"cuaderno/pkg/dateutil"
	"cuaderno/pkg/resolve"
)

const historyPreview = 5

type activitySvc struct {
	r       repository.Repository
	resolve *resolve.Engine
	log     *zap.Logger
}

func New(r repository.Repository, engine *resolve.Engine, log *zap.Logger) service.Service {
	return &activitySvc{r: r, resolve: engine, log: log.With(zap.String("svc", "activity"))}
}

func (s *activitySvc) holding(ctx context.Context) (*entities.Holding, error) {
	h, err := s.r.MainHolding(ctx)
	if err != nil {
		return nil, apperr.Wrap(err, "buscar explotación")
	}
	if h == nil {
		return nil, apperr.NotFound("no hay ninguna explotación configurada", "configurar_explotacion_principal")
	}
	return h, nil
}

// plot resolves the plot a record is tied to. A miss is not-found.
func (s *activitySvc) plot(ctx context.Context, ref string, holdingID uint) (*entities.Plot, error) {
	if strings.TrimSpace(ref) == "" {
		return nil, apperr.Validation("referencia_sigpac es obligatorio")
	}
	p, err := s.resolve.ResolvePlot(ctx, ref, holdingID)
	if err != nil {
		return nil, apperr.Wrap(err, "buscar parcela")
	}
	if p == nil {
		return nil, apperr.NotFound("no se encontró ninguna parcela que coincida con '"+ref+"'", "crear_parcela")
	}
	return p, nil
}

// applicator links the Person applying a treatment. Staff without a Person
// row get one carrying their document as NIF.
func (s *activitySvc) applicator(ctx context.Context, nif string) (*entities.Person, error) {
	nif = strings.ToUpper(strings.TrimSpace(nif))
	if nif == "" {
		return nil, nil
	}
	p, err := s.r.PersonByNIF(ctx, nif)
	if err != nil || p != nil {
		return p, err
	}
	staff, err := s.r.PersonnelByDocument(ctx, nif)
	if err != nil {
		return nil, err
	}
	if staff == nil {
		return nil, apperr.NotFound("no existe ningún aplicador con NIF "+nif, "crear_personal_aplicador")
	}
	return s.r.PersonForPersonnel(ctx, staff)
}

func (s *activitySvc) RecordTreatment(ctx context.Context, in service.TreatmentInput) (*entities.Activity, error) {
	date, err := dateutil.Parse("fecha", in.Date)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Product) == "" {
		return nil, apperr.Validation("producto es obligatorio")
	}
	dose, err := dateutil.Amount("dosis", in.Dose)
	if err != nil {
		return nil, err
	}
	area, err := dateutil.Amount("superficie_tratada", in.TreatedArea)
	if err != nil {
		return nil, err
	}
	h, err := s.holding(ctx)
	if err != nil {
		return nil, err
	}
	p, err := s.plot(ctx, in.PlotRef, h.ID)
	if err != nil {
		return nil, err
	}
	a := &entities.Activity{
		HoldingID:        h.ID,
		Date:             date,
		Type:             entities.ActivityTreatment,
		PlotID:           &p.ID,
		Plot:             p,
		StartTime:        in.StartTime,
		EndTime:          in.EndTime,
		TreatedArea:      area,
		Pest:             strings.TrimSpace(in.Pest),
		ProductName:      strings.TrimSpace(in.Product),
		ProductRegNumber: in.ProductRegNumber,
		Dose:             dose,
		DoseText:         in.DoseText,
		Efficacy:         in.Efficacy,
		Notes:            in.Notes,
		ValidationState:  entities.ValidationPending,
	}
	if strings.TrimSpace(in.Equipment) != "" {
		e, err := s.r.EquipmentByText(ctx, in.Equipment, h.ID)
		if err != nil {
			return nil, apperr.Wrap(err, "buscar maquinaria")
		}
		if e == nil {
			return nil, apperr.NotFound("no se encontró maquinaria que coincida con '"+in.Equipment+"'", "crear_maquinaria_aplicacion")
		}
		a.EquipmentID, a.Equipment = &e.ID, e
	}
	// applicator last: promoting staff to a Person is the only write before the insert
	person, err := s.applicator(ctx, in.ApplicatorNIF)
	if err != nil {
		return nil, err
	}
	if person != nil {
		a.ApplicatorID, a.Applicator = &person.ID, person
	}
	if err := s.r.CreateActivity(ctx, a); err != nil {
		return nil, apperr.Wrap(err, "guardar tratamiento")
	}
	s.log.Info("treatment recorded", zap.Uint("id", a.ID), zap.String("plot", p.SigpacRef))
	return a, nil
}

// irrigationType is ABONADO when a fertilizer is named or the hint mentions
// "abono", RIEGO otherwise.
func irrigationType(hint, fertilizer string) string {
	if strings.TrimSpace(fertilizer) != "" || strings.Contains(strings.ToLower(hint), "abono") {
		return entities.ActivityFertilization
	}
	return entities.ActivityIrrigation
}

func (s *activitySvc) RecordIrrigationOrFertilization(ctx context.Context, in service.IrrigationInput) (*entities.Activity, error) {
	date, err := dateutil.Parse("fecha", in.Date)
	if err != nil {
		return nil, err
	}
	dose, err := dateutil.Amount("cantidad", in.Dose)
	if err != nil {
		return nil, err
	}
	area, err := dateutil.Amount("superficie", in.Area)
	if err != nil {
		return nil, err
	}
	h, err := s.holding(ctx)
	if err != nil {
		return nil, err
	}
	p, err := s.plot(ctx, in.PlotRef, h.ID)
	if err != nil {
		return nil, err
	}
	a := &entities.Activity{
		HoldingID:        h.ID,
		Date:             date,
		Type:             irrigationType(in.TypeHint, in.Fertilizer),
		PlotID:           &p.ID,
		Plot:             p,
		StartTime:        in.StartTime,
		EndTime:          in.EndTime,
		TreatedArea:      area,
		ProductName:      strings.TrimSpace(in.Fertilizer),
		ProductRegNumber: in.RegNumber,
		Dose:             dose,
		DoseText:         in.DoseText,
		Notes:            in.Notes,
		ValidationState:  entities.ValidationPending,
	}
	if err := s.r.CreateActivity(ctx, a); err != nil {
		return nil, apperr.Wrap(err, "guardar riego/abonado")
	}
	s.log.Info("irrigation recorded", zap.Uint("id", a.ID), zap.String("type", a.Type))
	return a, nil
}

func (s *activitySvc) RecordSeeding(ctx context.Context, in service.SeedingInput) (*entities.TreatedSeed, error) {
	date, err := dateutil.Parse("fecha_siembra", in.SowingDate)
	if err != nil {
		return nil, err
	}
	area, err := dateutil.Amount("superficie_sembrada", in.SownArea)
	if err != nil {
		return nil, err
	}
	kg, err := dateutil.Amount("cantidad_semilla_kg", in.SeedKg)
	if err != nil {
		return nil, err
	}
	h, err := s.holding(ctx)
	if err != nil {
		return nil, err
	}
	p, err := s.plot(ctx, in.PlotRef, h.ID)
	if err != nil {
		return nil, err
	}
	crop := strings.TrimSpace(in.Crop)
	if crop == "" {
		crop = p.Species
	}
	seed := &entities.TreatedSeed{
		HoldingID:    h.ID,
		SowingDate:   date,
		PlotID:       &p.ID,
		Plot:         p,
		Crop:         crop,
		SownArea:     area,
		SeedKg:       kg,
		PhytoProduct: in.PhytoProduct,
		RegNumber:    in.RegNumber,
		Notes:        in.Notes,
	}
	if err := s.r.CreateTreatedSeed(ctx, seed); err != nil {
		return nil, apperr.Wrap(err, "guardar siembra")
	}
	s.log.Info("seeding recorded", zap.Uint("id", seed.ID), zap.String("plot", p.SigpacRef))
	return seed, nil
}

func (s *activitySvc) RecordAnalysis(ctx context.Context, in service.AnalysisInput) (*entities.LabAnalysis, error) {
	date, err := dateutil.Parse("fecha", in.Date)
	if err != nil {
		return nil, err
	}
	h, err := s.holding(ctx)
	if err != nil {
		return nil, err
	}
	a := &entities.LabAnalysis{
		HoldingID:          h.ID,
		Date:               date,
		Material:           in.Material,
		Crop:               in.Crop,
		BulletinNumber:     in.BulletinNumber,
		Laboratory:         in.Laboratory,
		DetectedSubstances: in.DetectedSubstances,
	}
	if err := s.r.CreateLabAnalysis(ctx, a); err != nil {
		return nil, apperr.Wrap(err, "guardar análisis")
	}
	s.log.Info("analysis recorded", zap.Uint("id", a.ID), zap.String("bulletin", a.BulletinNumber))
	return a, nil
}

func (s *activitySvc) RecordSale(ctx context.Context, in service.SaleInput) (*entities.ProductMovement, error) {
	date, err := dateutil.Parse("fecha", in.Date)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Product) == "" {
		return nil, apperr.Validation("producto es obligatorio")
	}
	qty, err := dateutil.Amount("cantidad_kg", in.QuantityKg)
	if err != nil {
		return nil, err
	}
	h, err := s.holding(ctx)
	if err != nil {
		return nil, err
	}
	m := &entities.ProductMovement{
		HoldingID:     h.ID,
		Date:          date,
		Product:       strings.TrimSpace(in.Product),
		QuantityKg:    qty,
		InvoiceNumber: in.InvoiceNumber,
		BatchNumber:   in.BatchNumber,
		ClientName:    in.ClientName,
		ClientNIF:     strings.ToUpper(strings.TrimSpace(in.ClientNIF)),
		RGSEAANumber:  in.RGSEAANumber,
	}
	if err := s.r.CreateMovement(ctx, m); err != nil {
		return nil, apperr.Wrap(err, "guardar venta")
	}
	s.log.Info("sale recorded", zap.Uint("id", m.ID), zap.String("product", m.Product))
	return m, nil
}

func (s *activitySvc) History(ctx context.Context, f repository.HistoryFilter) (service.History, error) {
	if f.Year < 0 {
		return service.History{}, apperr.Validation("anio no válido: %d", f.Year)
	}
	if f.Limit <= 0 {
		f.Limit = historyPreview
	}
	n, rows, err := s.r.History(ctx, f)
	if err != nil {
		return service.History{}, apperr.Wrap(err, "consultar historial")
	}
	return service.History{Count: n, Rows: rows}, nil
}
