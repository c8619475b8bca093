package serviceImp

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"cuaderno/entities"
	"cuaderno/pkg/apperr"
	"cuaderno/pkg/dateutil"
	repo "cuaderno/pkg/masterdata/repository"
	"cuaderno/pkg/masterdata/service"
)

type masterSvc struct {
	r   repo.Repository
	log *zap.Logger
}

func New(r repo.Repository, log *zap.Logger) service.Service {
	return &masterSvc{r: r, log: log.With(zap.String("svc", "masterdata"))}
}

func required(field, v string) error {
	if strings.TrimSpace(v) == "" {
		return apperr.Validation("%s es obligatorio", field)
	}
	return nil
}

func (s *masterSvc) mainHolding(ctx context.Context) (*entities.Holding, error) {
	h, err := s.r.MainHolding(ctx)
	if err != nil {
		return nil, apperr.Wrap(err, "buscar explotación")
	}
	if h == nil {
		return nil, apperr.NotFound("no hay ninguna explotación configurada", "configurar_explotacion_principal")
	}
	return h, nil
}

func (s *masterSvc) CreateTitleholder(ctx context.Context, in service.TitleholderInput) (*entities.Titleholder, bool, error) {
	if err := required("nombre", in.Name); err != nil {
		return nil, false, err
	}
	if err := required("documento", in.Document); err != nil {
		return nil, false, err
	}
	docType := strings.ToUpper(strings.TrimSpace(in.DocType))
	if docType == "" {
		docType = entities.DocDNI
	}
	if !entities.ValidDocType(docType) {
		return nil, false, apperr.Validation("tipo_documento no válido: %s (DNI, NIE o PASAPORTE)", in.DocType)
	}
	t := &entities.Titleholder{
		Name:                strings.TrimSpace(in.Name),
		Surname:             strings.TrimSpace(in.Surname),
		DocType:             docType,
		Document:            strings.ToUpper(strings.TrimSpace(in.Document)),
		HoldingTaxID:        in.HoldingTaxID,
		HoldingRegistration: in.HoldingRegistration,
	}
	created, err := s.r.UpsertTitleholder(ctx, t, in.Address)
	if err != nil {
		return nil, false, apperr.Wrap(err, "guardar titular")
	}
	s.log.Info("titleholder saved", zap.String("document", t.Document), zap.Bool("created", created))
	return t, created, nil
}

func (s *masterSvc) ConfigureMainHolding(ctx context.Context, in service.HoldingInput) (*entities.Holding, bool, error) {
	if err := required("nombre", in.Name); err != nil {
		return nil, false, err
	}
	if err := required("nif", in.NIF); err != nil {
		return nil, false, err
	}
	rep := strings.ToUpper(strings.TrimSpace(in.Representation))
	if rep == "" {
		rep = entities.RepresentationOwner
	}
	if rep != entities.RepresentationOwner && rep != entities.RepresentationRepresentative {
		return nil, false, apperr.Validation("tipo_representacion no válido: %s (PROPIETARIO o REPRESENTANTE)", in.Representation)
	}
	h := &entities.Holding{
		Name:                 strings.TrimSpace(in.Name),
		NIF:                  strings.ToUpper(strings.TrimSpace(in.NIF)),
		NationalRegistration: in.NationalRegistration,
		RegionalRegistration: in.RegionalRegistration,
		Representation:       rep,
	}
	if doc := strings.TrimSpace(in.TitleholderDocument); doc != "" {
		t, err := s.r.TitleholderByDocument(ctx, strings.ToUpper(doc))
		if err != nil {
			return nil, false, apperr.Wrap(err, "buscar titular")
		}
		if t == nil {
			return nil, false, apperr.NotFound("no existe ningún titular con documento "+doc, "crear_titular")
		}
		h.TitleholderID = &t.ID
	}
	created, err := s.r.UpsertHolding(ctx, h, in.Address)
	if err != nil {
		return nil, false, apperr.Wrap(err, "guardar explotación")
	}
	s.log.Info("holding configured", zap.String("nif", h.NIF), zap.Bool("created", created))
	return h, created, nil
}

func (s *masterSvc) CreatePlot(ctx context.Context, in service.PlotInput) (*entities.Plot, error) {
	if err := required("referencia_sigpac", in.SigpacRef); err != nil {
		return nil, err
	}
	sigpacArea, err := dateutil.Amount("superficie_sigpac", in.SigpacArea)
	if err != nil {
		return nil, err
	}
	cultivated, err := dateutil.Amount("superficie_cultivada", in.CultivatedArea)
	if err != nil {
		return nil, err
	}
	h, err := s.mainHolding(ctx)
	if err != nil {
		return nil, err
	}
	p := &entities.Plot{
		HoldingID:      h.ID,
		SigpacRef:      strings.TrimSpace(in.SigpacRef),
		Polygon:        in.Polygon,
		Parcel:         in.Parcel,
		Enclosure:      in.Enclosure,
		SigpacUse:      in.SigpacUse,
		SigpacArea:     sigpacArea,
		CultivatedArea: cultivated,
		Species:        strings.TrimSpace(in.Species),
		Variety:        in.Variety,
		Irrigation:     in.Irrigation,
		Protection:     in.Protection,
	}
	if err := s.r.CreatePlot(ctx, p); err != nil {
		return nil, apperr.Wrap(err, "guardar parcela")
	}
	s.log.Info("plot created", zap.String("sigpac", p.SigpacRef), zap.Uint("holding", h.ID))
	return p, nil
}

func (s *masterSvc) CreateRecipient(ctx context.Context, in service.RecipientInput) (*entities.Recipient, *entities.Person, error) {
	if err := required("nombre", in.Name); err != nil {
		return nil, nil, err
	}
	if !entities.ValidDocType(strings.ToUpper(in.DocType)) {
		return nil, nil, apperr.Validation("tipo_documento no válido: %s (DNI, NIE o PASAPORTE)", in.DocType)
	}
	rc := &entities.Recipient{
		Name:     strings.TrimSpace(in.Name),
		DocType:  strings.ToUpper(in.DocType),
		Document: strings.ToUpper(strings.TrimSpace(in.Document)),
	}
	if plate := normalizePlate(in.VehiclePlate); plate != "" {
		v, err := s.r.VehicleByPlate(ctx, plate)
		if err != nil {
			return nil, nil, apperr.Wrap(err, "buscar vehículo")
		}
		if v == nil {
			return nil, nil, apperr.NotFound("no existe ningún vehículo con matrícula "+plate, "crear_vehiculo")
		}
		rc.PreferredVehicleID = &v.ID
	}
	twin, twinCreated, err := s.r.CreateRecipient(ctx, rc, in.Address)
	if err != nil {
		return nil, nil, apperr.Wrap(err, "guardar destinatario")
	}
	s.log.Info("recipient created",
		zap.String("name", rc.Name), zap.Uint("person", twin.ID), zap.Bool("person_created", twinCreated))
	return rc, twin, nil
}

func normalizePlate(p string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(p), " ", ""))
}

func (s *masterSvc) CreateVehicle(ctx context.Context, in service.VehicleInput) (*entities.Vehicle, bool, error) {
	plate := normalizePlate(in.Plate)
	if plate == "" {
		return nil, false, apperr.Validation("matricula es obligatorio")
	}
	typ := strings.ToUpper(strings.TrimSpace(in.Type))
	if typ == "" {
		typ = entities.VehicleOther
	}
	if !entities.ValidVehicleType(typ) {
		return nil, false, apperr.Validation("tipo de vehículo no válido: %s (TRACTOR, COCHE, REMOLQUE, FURGONETA u OTRO)", in.Type)
	}
	v := &entities.Vehicle{Type: typ, Plate: plate, Make: in.Make, Model: in.Model}
	created, err := s.r.FindOrCreateVehicle(ctx, v)
	if err != nil {
		return nil, false, apperr.Wrap(err, "guardar vehículo")
	}
	s.log.Info("vehicle saved", zap.String("plate", plate), zap.Bool("created", created))
	return v, created, nil
}

func (s *masterSvc) CreateEquipment(ctx context.Context, in service.EquipmentInput) (*entities.ApplicationEquipment, error) {
	if err := required("descripcion", in.Description); err != nil {
		return nil, err
	}
	acquired, err := dateutil.ParseOptional("fecha_adquisicion", in.AcquiredAt)
	if err != nil {
		return nil, err
	}
	inspected, err := dateutil.ParseOptional("fecha_ultima_inspeccion", in.LastInspection)
	if err != nil {
		return nil, err
	}
	h, err := s.mainHolding(ctx)
	if err != nil {
		return nil, err
	}
	e := &entities.ApplicationEquipment{
		Description:    strings.TrimSpace(in.Description),
		ROMANumber:     strings.TrimSpace(in.ROMANumber),
		AcquiredAt:     acquired,
		LastInspection: inspected,
		HoldingID:      &h.ID,
	}
	if err := s.r.CreateEquipment(ctx, e); err != nil {
		return nil, apperr.Wrap(err, "guardar maquinaria")
	}
	s.log.Info("equipment created", zap.String("roma", e.ROMANumber))
	return e, nil
}

func (s *masterSvc) CreateApplicator(ctx context.Context, in service.ApplicatorInput) (*entities.Personnel, bool, error) {
	if err := required("nombre", in.Name); err != nil {
		return nil, false, err
	}
	if err := required("documento", in.Document); err != nil {
		return nil, false, err
	}
	sex := strings.ToUpper(strings.TrimSpace(in.Sex))
	if !entities.ValidSex(sex) {
		return nil, false, apperr.Validation("sexo no válido: %s (H, M u O)", in.Sex)
	}
	docType := strings.ToUpper(strings.TrimSpace(in.DocType))
	if docType == "" {
		docType = entities.DocDNI
	}
	if !entities.ValidDocType(docType) {
		return nil, false, apperr.Validation("tipo_documento no válido: %s (DNI, NIE o PASAPORTE)", in.DocType)
	}
	p := &entities.Personnel{
		Name:           strings.TrimSpace(in.Name),
		Surname:        strings.TrimSpace(in.Surname),
		Sex:            sex,
		DocType:        docType,
		Document:       strings.ToUpper(strings.TrimSpace(in.Document)),
		Role:           in.Role,
		PhytoQualified: in.PhytoQualified,
		Phone:          in.Phone,
		Email:          in.Email,
	}
	created, err := s.r.UpsertPersonnel(ctx, p)
	if err != nil {
		return nil, false, apperr.Wrap(err, "guardar personal")
	}
	s.log.Info("applicator saved", zap.String("document", p.Document), zap.Bool("created", created))
	return p, created, nil
}

func (s *masterSvc) CreateAdvisor(ctx context.Context, in service.AdvisorInput) (*entities.Advisor, bool, error) {
	if err := required("nombre", in.Name); err != nil {
		return nil, false, err
	}
	p := &entities.Person{
		Name:  strings.TrimSpace(in.Name),
		NIF:   strings.ToUpper(strings.TrimSpace(in.NIF)),
		Phone: in.Phone,
		Email: in.Email,
	}
	a := &entities.Advisor{ROPONumber: strings.TrimSpace(in.ROPONumber), Qualification: in.Qualification}
	created, err := s.r.CreateAdvisor(ctx, p, in.Address, a)
	if err != nil {
		return nil, false, apperr.Wrap(err, "guardar asesor")
	}
	a.Person = p
	s.log.Info("advisor saved", zap.Uint("person", p.ID), zap.Bool("created", created))
	return a, created, nil
}

func (s *masterSvc) CreateCarrier(ctx context.Context, in service.CarrierInput) (*entities.Carrier, bool, error) {
	if err := required("nombre", in.Name); err != nil {
		return nil, false, err
	}
	c := &entities.Carrier{
		Name:  strings.TrimSpace(in.Name),
		NIF:   strings.ToUpper(strings.TrimSpace(in.NIF)),
		Phone: in.Phone,
		Email: in.Email,
	}
	created, err := s.r.FindOrCreateCarrier(ctx, c, in.Address)
	if err != nil {
		return nil, false, apperr.Wrap(err, "guardar transportista")
	}
	s.log.Info("carrier saved", zap.String("nif", c.NIF), zap.Bool("created", created))
	return c, created, nil
}
