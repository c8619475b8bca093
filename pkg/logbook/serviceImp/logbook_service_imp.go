package serviceImp

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"cuaderno/entities"
	"cuaderno/pkg/apperr"
	"cuaderno/pkg/dateutil"
	"cuaderno/pkg/logbook/repository"
	"cuaderno/pkg/logbook/service"
	"cuaderno/pkg/resolve"
)

// Treated seed header, rendered with [X] on the matching answer.
const seedFlagYes = "¿Utiliza semilla tratada? [X] SÍ [ ] NO"
const seedFlagNo = "¿Utiliza semilla tratada? [ ] SÍ [X] NO"

type logbookSvc struct {
	r   repository.Repository
	log *zap.Logger
}

func New(r repository.Repository, log *zap.Logger) service.Service {
	return &logbookSvc{r: r, log: log.With(zap.String("svc", "logbook"))}
}

func cell(s string) string {
	if strings.TrimSpace(s) == "" {
		return resolve.Empty
	}
	return s
}

func plotRef(p *entities.Plot) string {
	if p == nil {
		return resolve.Empty
	}
	return cell(p.SigpacRef)
}

func plotCrop(p *entities.Plot) string {
	if p == nil {
		return resolve.Empty
	}
	return cell(strings.TrimSpace(p.Species + " " + p.Variety))
}

func dose(a entities.Activity) string {
	return cell(strings.TrimSpace(dateutil.Decimal(a.Dose) + " " + a.DoseText))
}

func (s *logbookSvc) Build(ctx context.Context, year int) (*service.Report, error) {
	if year < 1900 || year > 9999 {
		return nil, apperr.Validation("anio no válido: %d", year)
	}
	h, err := s.r.MainHolding(ctx)
	if err != nil {
		return nil, apperr.Wrap(err, "buscar explotación")
	}
	if h == nil {
		return nil, apperr.NotFound("no hay ninguna explotación configurada", "configurar_explotacion_principal")
	}
	from, to := dateutil.YearRange(year)

	rep := &service.Report{Year: year, Holding: h.Name}
	rep.Sections = append(rep.Sections, general(h, year))

	staff, err := s.r.Applicators(ctx)
	if err != nil {
		return nil, apperr.Wrap(err, "leer aplicadores")
	}
	sec := service.Section{
		Title:       "1.2 PERSONAS QUE INTERVIENEN EN EL TRATAMIENTO (APLICADORES)",
		Sheet:       "1.2 Aplicadores",
		Columns:     []string{"Nombre y apellidos", "Documento", "Cargo", "Teléfono"},
		Placeholder: "Sin aplicadores habilitados registrados.",
	}
	for _, p := range staff {
		sec.Rows = append(sec.Rows, []string{cell(p.FullName()), cell(p.Document), cell(p.Role), cell(p.Phone)})
	}
	rep.Sections = append(rep.Sections, sec)

	eq, err := s.r.Equipment(ctx, h.ID)
	if err != nil {
		return nil, apperr.Wrap(err, "leer maquinaria")
	}
	sec = service.Section{
		Title:       "1.3 EQUIPOS DE APLICACIÓN",
		Sheet:       "1.3 Maquinaria",
		Columns:     []string{"Descripción", "Nº ROMA", "Fecha adquisición", "Última inspección"},
		Placeholder: "Sin maquinaria de aplicación registrada.",
	}
	for _, e := range eq {
		sec.Rows = append(sec.Rows, []string{
			cell(e.Description), cell(e.ROMANumber), cell(dateutil.FormatPtr(e.AcquiredAt)), cell(dateutil.FormatPtr(e.LastInspection)),
		})
	}
	rep.Sections = append(rep.Sections, sec)

	adv, err := s.r.Advisors(ctx)
	if err != nil {
		return nil, apperr.Wrap(err, "leer asesores")
	}
	sec = service.Section{
		Title:       "1.4 ASESORAMIENTO",
		Sheet:       "1.4 Asesoramiento",
		Columns:     []string{"Nombre", "NIF", "Nº inscripción ROPO", "Tipo de carné"},
		Placeholder: "Sin asesores registrados.",
	}
	for _, a := range adv {
		var name, nif string
		if a.Person != nil {
			name, nif = a.Person.Name, a.Person.NIF
		}
		sec.Rows = append(sec.Rows, []string{cell(name), cell(nif), cell(a.ROPONumber), cell(a.Qualification)})
	}
	rep.Sections = append(rep.Sections, sec)

	plots, err := s.r.Plots(ctx, h.ID)
	if err != nil {
		return nil, apperr.Wrap(err, "leer parcelas")
	}
	sec = service.Section{
		Title: "2. IDENTIFICACIÓN DE LAS PARCELAS",
		Sheet: "2 Parcelas",
		Columns: []string{"Referencia SIGPAC", "Polígono", "Parcela", "Recinto", "Uso SIGPAC",
			"Sup. SIGPAC (ha)", "Sup. cultivada (ha)", "Especie", "Variedad", "Secano/Regadío", "Aire libre/Protegido"},
		Placeholder: "Sin parcelas registradas.",
	}
	for _, p := range plots {
		sec.Rows = append(sec.Rows, []string{
			cell(p.SigpacRef), cell(p.Polygon), cell(p.Parcel), cell(p.Enclosure), cell(p.SigpacUse),
			cell(dateutil.Decimal(p.SigpacArea)), cell(dateutil.Decimal(p.CultivatedArea)),
			cell(p.Species), cell(p.Variety), cell(p.Irrigation), cell(p.Protection),
		})
	}
	rep.Sections = append(rep.Sections, sec)

	treatments, err := s.r.Activities(ctx, h.ID, []string{entities.ActivityTreatment}, from, to)
	if err != nil {
		return nil, apperr.Wrap(err, "leer tratamientos")
	}
	sec = service.Section{
		Title: "3.1 REGISTRO DE TRATAMIENTOS FITOSANITARIOS",
		Sheet: "3.1 Tratamientos",
		Columns: []string{"Fecha", "Parcela", "Cultivo", "Sup. tratada (ha)", "Problema fitosanitario",
			"Aplicador", "Equipo", "Producto", "Nº registro", "Dosis", "Eficacia", "Observaciones"},
		Placeholder: "Sin tratamientos fitosanitarios en " + strconv.Itoa(year) + ".",
	}
	for _, a := range treatments {
		var applicator, equipment string
		if a.Applicator != nil {
			applicator = a.Applicator.Name
		}
		if a.Equipment != nil {
			equipment = a.Equipment.Description
		}
		sec.Rows = append(sec.Rows, []string{
			dateutil.Format(a.Date), plotRef(a.Plot), plotCrop(a.Plot), cell(dateutil.Decimal(a.TreatedArea)),
			cell(a.Pest), cell(applicator), cell(equipment), cell(a.ProductName), cell(a.ProductRegNumber),
			dose(a), cell(a.Efficacy), cell(a.Notes),
		})
	}
	rep.Sections = append(rep.Sections, sec)

	seeds, err := s.r.TreatedSeeds(ctx, h.ID, from, to)
	if err != nil {
		return nil, apperr.Wrap(err, "leer semilla tratada")
	}
	sec = service.Section{
		Title: "3.2 USO DE SEMILLA TRATADA",
		Sheet: "3.2 Semilla tratada",
		Flag:  seedFlagNo,
		Columns: []string{"Fecha siembra", "Parcela", "Cultivo", "Sup. sembrada (ha)", "Semilla (kg)",
			"Producto fitosanitario", "Nº registro"},
		Placeholder: "Sin siembras con semilla tratada en " + strconv.Itoa(year) + ".",
	}
	if len(seeds) > 0 {
		sec.Flag = seedFlagYes
	}
	for _, sd := range seeds {
		sec.Rows = append(sec.Rows, []string{
			dateutil.Format(sd.SowingDate), plotRef(sd.Plot), cell(sd.Crop), cell(dateutil.Decimal(sd.SownArea)),
			cell(dateutil.Decimal(sd.SeedKg)), cell(sd.PhytoProduct), cell(sd.RegNumber),
		})
	}
	rep.Sections = append(rep.Sections, sec)

	analyses, err := s.r.Analyses(ctx, h.ID, from, to)
	if err != nil {
		return nil, apperr.Wrap(err, "leer análisis")
	}
	sec = service.Section{
		Title:       "4. REGISTRO DE ANÁLISIS",
		Sheet:       "4 Análisis",
		Columns:     []string{"Fecha", "Material analizado", "Cultivo", "Nº boletín", "Laboratorio", "Sustancias activas detectadas"},
		Placeholder: "Sin análisis en " + strconv.Itoa(year) + ".",
	}
	for _, a := range analyses {
		sec.Rows = append(sec.Rows, []string{
			dateutil.Format(a.Date), cell(a.Material), cell(a.Crop), cell(a.BulletinNumber), cell(a.Laboratory), cell(a.DetectedSubstances),
		})
	}
	rep.Sections = append(rep.Sections, sec)

	moves, err := s.r.Movements(ctx, h.ID, from, to)
	if err != nil {
		return nil, apperr.Wrap(err, "leer ventas")
	}
	sec = service.Section{
		Title: "5. REGISTRO DE MOVIMIENTOS Y VENTAS DE PRODUCTO",
		Sheet: "5 Ventas",
		Columns: []string{"Fecha", "Producto", "Cantidad (kg)", "Nº albarán/factura", "Nº lote",
			"Cliente", "NIF cliente", "Nº RGSEAA"},
		Placeholder: "Sin movimientos de producto en " + strconv.Itoa(year) + ".",
	}
	for _, m := range moves {
		sec.Rows = append(sec.Rows, []string{
			dateutil.Format(m.Date), cell(m.Product), cell(dateutil.Decimal(m.QuantityKg)), cell(m.InvoiceNumber),
			cell(m.BatchNumber), cell(m.ClientName), cell(m.ClientNIF), cell(m.RGSEAANumber),
		})
	}
	rep.Sections = append(rep.Sections, sec)

	fert, err := s.r.Activities(ctx, h.ID, []string{entities.ActivityFertilization, entities.ActivityIrrigation}, from, to)
	if err != nil {
		return nil, apperr.Wrap(err, "leer fertilización")
	}
	sec = service.Section{
		Title:       "6. REGISTRO DE FERTILIZACIÓN Y RIEGO",
		Sheet:       "6 Fertilización",
		Columns:     []string{"Fecha", "Tipo", "Parcela", "Cultivo", "Producto", "Nº registro", "Cantidad", "Observaciones"},
		Placeholder: "Sin fertilizaciones ni riegos en " + strconv.Itoa(year) + ".",
	}
	for _, a := range fert {
		sec.Rows = append(sec.Rows, []string{
			dateutil.Format(a.Date), a.Type, plotRef(a.Plot), plotCrop(a.Plot), cell(a.ProductName),
			cell(a.ProductRegNumber), dose(a), cell(a.Notes),
		})
	}
	rep.Sections = append(rep.Sections, sec)

	s.log.Info("logbook built", zap.Int("year", year), zap.Uint("holding", h.ID),
		zap.Int("treatments", len(treatments)), zap.Int("fertilization", len(fert)))
	return rep, nil
}

// general is section 1.1; the holding address is preferred over the
// titleholder's for contact data.
func general(h *entities.Holding, year int) service.Section {
	addr := h.Address
	if addr.Empty() && h.Titleholder != nil {
		addr = h.Titleholder.Address
	}
	b := resolve.FormatAddress(addr)
	var phone, email string
	for _, a := range []*entities.Address{h.Address, titleholderAddress(h)} {
		if a == nil {
			continue
		}
		if phone == "" {
			phone = firstOf(a.Phone, a.Mobile)
		}
		if email == "" {
			email = a.Email
		}
	}
	titular, doc := resolve.FillIn, resolve.FillIn
	if t := h.Titleholder; t != nil {
		titular = cell(t.FullName())
		doc = cell(strings.TrimSpace(t.DocType + " " + t.Document))
	}
	return service.Section{
		Title:    "1.1 DATOS GENERALES DE LA EXPLOTACIÓN",
		Sheet:    "1.1 Datos generales",
		Columns:  []string{"Campo", "Valor"},
		KeyValue: true,
		Rows: [][]string{
			{"Año", strconv.Itoa(year)},
			{"Explotación", cell(h.Name)},
			{"NIF", cell(h.NIF)},
			{"Nº registro nacional", cell(h.NationalRegistration)},
			{"Nº registro autonómico", cell(h.RegionalRegistration)},
			{"Titular", titular},
			{"Documento titular", doc},
			{"Tipo de representación", cell(h.Representation)},
			{"Dirección", b.Line()},
			{"Localidad", cell(b.Locality)},
			{"Provincia", cell(b.Province)},
			{"Código postal", cell(b.PostalCode)},
			{"Teléfono", cell(phone)},
			{"Email", cell(email)},
		},
	}
}

func titleholderAddress(h *entities.Holding) *entities.Address {
	if h.Titleholder == nil {
		return nil
	}
	return h.Titleholder.Address
}

func firstOf(vs ...string) string {
	for _, v := range vs {
		if v != "" {
			return v
		}
	}
	return ""
}

func (s *logbookSvc) Generate(ctx context.Context, year int) (string, error) {
	rep, err := s.Build(ctx, year)
	if err != nil {
		return "", err
	}
	return Text(rep), nil
}

func (s *logbookSvc) ExportXLSX(ctx context.Context, year int) ([]byte, error) {
	rep, err := s.Build(ctx, year)
	if err != nil {
		return nil, err
	}
	b, err := Workbook(rep)
	if err != nil {
		return nil, apperr.Wrap(err, "generar xlsx")
	}
	return b, nil
}
