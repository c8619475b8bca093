package serviceImp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"cuaderno/entities"
	"cuaderno/pkg/apperr"
	"cuaderno/pkg/dateutil"
	"cuaderno/pkg/resolve"
	"cuaderno/pkg/transport/repository"
	"cuaderno/pkg/transport/service"
)

const (
	defaultUnit = "kg"
	// maxNumberShift bounds the search for a free number to one day.
	maxNumberShift = 24 * 60
)

type transportSvc struct {
	r       repository.Repository
	resolve *resolve.Engine
	now     func() time.Time
	log     *zap.Logger
}

// New builds the DAT service. now is the clock the document number and
// emission date come from; nil means time.Now.
func New(r repository.Repository, engine *resolve.Engine, now func() time.Time, log *zap.Logger) service.Service {
	if now == nil {
		now = time.Now
	}
	return &transportSvc{r: r, resolve: engine, now: now, log: log.With(zap.String("svc", "transport"))}
}

// lineItem is one product line of the transport.
type lineItem struct {
	Product  string
	Variety  string
	Quantity decimal.Decimal
	Unit     string
}

func lineItems(in service.DATInput) ([]lineItem, error) {
	if len(in.Products) == 0 {
		return nil, apperr.Validation("debe indicar al menos un producto")
	}
	if len(in.Products) != len(in.Quantities) {
		return nil, apperr.Validation("productos y cantidades deben tener la misma longitud (%d productos, %d cantidades)",
			len(in.Products), len(in.Quantities))
	}
	if len(in.Units) != 0 && len(in.Units) != len(in.Products) {
		return nil, apperr.Validation("unidades debe estar vacío o tener la misma longitud que productos (%d productos, %d unidades)",
			len(in.Products), len(in.Units))
	}
	items := make([]lineItem, len(in.Products))
	for i, p := range in.Products {
		if strings.TrimSpace(p) == "" {
			return nil, apperr.Validation("el producto %d está vacío", i+1)
		}
		if in.Quantities[i] < 0 {
			return nil, apperr.Validation("la cantidad del producto %d no puede ser negativa (%v)", i+1, in.Quantities[i])
		}
		items[i] = lineItem{Product: strings.TrimSpace(p), Quantity: decimal.NewFromFloat(in.Quantities[i]), Unit: defaultUnit}
		if len(in.Units) != 0 && strings.TrimSpace(in.Units[i]) != "" {
			items[i].Unit = strings.TrimSpace(in.Units[i])
		}
		if i < len(in.Varieties) {
			items[i].Variety = strings.TrimSpace(in.Varieties[i])
		}
	}
	return items, nil
}

// extras holds the optional transport details once validated.
type extras struct {
	gross, net, temp, cost decimal.NullDecimal
	pallets, packages      *int
	batchList              []string
	batches                datatypes.JSON
	loadedAt, unloadedAt   *time.Time
}

func parseExtras(in service.DATInput, loadDate time.Time) (extras, error) {
	var x extras
	var err error
	if x.gross, err = dateutil.Amount("peso_bruto", in.GrossWeight); err != nil {
		return x, err
	}
	if x.net, err = dateutil.Amount("peso_neto", in.NetWeight); err != nil {
		return x, err
	}
	if x.gross.Valid && x.net.Valid && x.net.Decimal.GreaterThan(x.gross.Decimal) {
		return x, apperr.Validation("peso_neto (%s) no puede superar peso_bruto (%s)", x.net.Decimal, x.gross.Decimal)
	}
	if x.cost, err = dateutil.Amount("costo_transporte", in.TransportCost); err != nil {
		return x, err
	}
	// Refrigerated loads record temperatures below zero.
	if in.RecordedTemperature != nil {
		x.temp = decimal.NewNullDecimal(decimal.NewFromFloat(*in.RecordedTemperature))
	}
	for _, c := range []struct {
		field string
		v     *int
	}{{"pallets", in.Pallets}, {"bultos", in.Packages}} {
		if c.v != nil && *c.v < 0 {
			return x, apperr.Validation("%s no puede ser negativo (%d)", c.field, *c.v)
		}
	}
	x.pallets, x.packages = in.Pallets, in.Packages
	for _, b := range in.Batches {
		if b = strings.TrimSpace(b); b != "" {
			x.batchList = append(x.batchList, b)
		}
	}
	if len(x.batchList) > 0 {
		raw, err := json.Marshal(x.batchList)
		if err != nil {
			return x, err
		}
		x.batches = datatypes.JSON(raw)
	}
	if x.loadedAt, err = dateutil.ClockOn("hora_carga", loadDate, in.LoadTime); err != nil {
		return x, err
	}
	if x.unloadedAt, err = dateutil.ClockOn("hora_descarga", loadDate, in.UnloadTime); err != nil {
		return x, err
	}
	if x.loadedAt != nil && x.unloadedAt != nil && x.unloadedAt.Before(*x.loadedAt) {
		return x, apperr.Validation("hora_descarga (%s) no puede ser anterior a hora_carga (%s)",
			strings.TrimSpace(in.UnloadTime), strings.TrimSpace(in.LoadTime))
	}
	return x, nil
}

// trimInput drops surrounding blanks from the free-text fields that drive
// checkboxes and N/A placeholders.
func trimInput(in *service.DATInput) {
	for _, f := range []*string{&in.DOP, &in.IGP, &in.ETG, &in.OtherQuality, &in.UsageInstructions, &in.Notes, &in.DriverNIF, &in.DriverName} {
		*f = strings.TrimSpace(*f)
	}
}

func numberFor(t time.Time) string {
	return "DAT-" + t.Format("20060102-1504")
}

// freeNumber returns the first DAT-YYYYMMDD-HHMM not yet stored, moving the
// minute forward from t.
func (s *transportSvc) freeNumber(ctx context.Context, t time.Time) (string, error) {
	t = t.Truncate(time.Minute)
	for i := 0; i < maxNumberShift; i++ {
		n := numberFor(t.Add(time.Duration(i) * time.Minute))
		taken, err := s.r.NumberTaken(ctx, n)
		if err != nil {
			return "", err
		}
		if !taken {
			return n, nil
		}
	}
	return "", fmt.Errorf("no free DAT number after %s", numberFor(t))
}

func (s *transportSvc) GenerateDAT(ctx context.Context, in service.DATInput) (*service.DAT, error) {
	trimInput(&in)
	items, err := lineItems(in)
	if err != nil {
		return nil, err
	}
	now := s.now()
	loadDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if strings.TrimSpace(in.LoadingDate) != "" {
		if loadDate, err = dateutil.Parse("fecha_carga", in.LoadingDate); err != nil {
			return nil, err
		}
	}
	x, err := parseExtras(in, loadDate)
	if err != nil {
		return nil, err
	}

	rc, err := s.r.RecipientByName(ctx, in.RecipientName)
	if err != nil {
		return nil, apperr.Wrap(err, "buscar destinatario")
	}
	if rc == nil {
		return nil, apperr.NotFound("no se encontró ningún destinatario que coincida con '"+in.RecipientName+"'", "crear_cliente_destinatario")
	}
	h, err := s.r.MainHolding(ctx)
	if err != nil {
		return nil, apperr.Wrap(err, "buscar explotación")
	}
	if h == nil {
		return nil, apperr.NotFound("no hay ninguna explotación configurada", "configurar_explotacion_principal")
	}

	recipient, twin, err := s.resolve.ResolveRecipient(ctx, rc)
	if err != nil {
		return nil, apperr.Wrap(err, "resolver destinatario")
	}

	carrierIn := resolve.CarrierInput{NIF: in.CarrierNIF, Name: in.CarrierName, Phone: in.CarrierPhone, Email: in.CarrierEmail}
	own := strings.TrimSpace(in.CarrierNIF) == "" && strings.TrimSpace(in.CarrierName) == ""
	if own && h.Titleholder != nil {
		carrierIn.NIF = h.Titleholder.Document
		carrierIn.Name = h.Titleholder.FullName()
	}
	carrier, err := s.resolve.ResolveCarrier(ctx, carrierIn)
	if err != nil {
		return nil, apperr.Wrap(err, "resolver transportista")
	}
	if own && carrier.Address.IsEmpty() && h.Titleholder != nil {
		carrier.Address = resolve.FormatAddress(h.Titleholder.Address)
	}
	carrierRow, err := s.r.CarrierByNIF(ctx, carrierIn.NIF)
	if err != nil {
		return nil, apperr.Wrap(err, "buscar transportista")
	}

	authorized, err := s.resolve.ResolveAuthorizedPerson(ctx, in.AuthorizedNIF, in.AuthorizedName, h)
	if err != nil {
		return nil, apperr.Wrap(err, "resolver persona autorizada")
	}
	driver := resolve.Contact{Name: resolve.FillIn, NIF: resolve.FillIn}
	var driverRow *entities.Person
	if in.DriverNIF != "" || in.DriverName != "" {
		if driver, err = s.resolve.ResolveAuthorizedPerson(ctx, in.DriverNIF, in.DriverName, nil); err != nil {
			return nil, apperr.Wrap(err, "resolver conductor")
		}
		if driverRow, err = s.r.PersonByNIF(ctx, in.DriverNIF); err != nil {
			return nil, apperr.Wrap(err, "buscar conductor")
		}
	}
	var originRow *entities.Person
	if h.Titleholder != nil {
		if originRow, err = s.r.PersonByNIF(ctx, h.Titleholder.Document); err != nil {
			return nil, apperr.Wrap(err, "buscar persona de origen")
		}
	}
	plot, err := s.resolve.ResolvePlot(ctx, items[0].Product, h.ID)
	if err != nil {
		return nil, apperr.Wrap(err, "buscar parcela de origen")
	}

	number, err := s.freeNumber(ctx, now)
	if err != nil {
		return nil, apperr.Wrap(err, "numerar DAT")
	}
	first := items[0]
	doc := &entities.DATDocument{
		Number:       number,
		EmissionDate: now,
		LoadingDate:  loadDate,
		HoldingID:    &h.ID,
		Product:      first.Product,
		Quantity:     decimal.NewNullDecimal(first.Quantity),
		Unit:         first.Unit,
		Notes:        in.Notes,
	}
	rec := &entities.TransportRecord{
		Reference:             uuid.NewString(),
		TransportedAt:         now,
		LoadedAt:              x.loadedAt,
		UnloadedAt:            x.unloadedAt,
		OriginHoldingID:       &h.ID,
		VehicleID:             rc.PreferredVehicleID,
		Quantity:              doc.Quantity,
		Unit:                  first.Unit,
		GrossWeight:           x.gross,
		NetWeight:             x.net,
		Pallets:               x.pallets,
		Packages:              x.packages,
		Batches:               x.batches,
		State:                 entities.TransportPending,
		TemperatureControlled: in.TemperatureControlled,
		RecordedTemperature:   x.temp,
		Route:                 routeOf(h, rc),
		TransportCost:         x.cost,
		Notes:                 in.Notes,
	}
	if twin != nil {
		rec.RecipientPersonID = &twin.ID
	}
	if carrierRow != nil {
		rec.CarrierID = &carrierRow.ID
	}
	if driverRow != nil {
		rec.DriverID = &driverRow.ID
	}
	if originRow != nil {
		rec.OriginPersonID = &originRow.ID
	}
	if err := s.r.SavePair(ctx, doc, rec); err != nil {
		return nil, apperr.Wrap(err, "guardar DAT")
	}
	s.log.Info("DAT generated",
		zap.String("number", number), zap.String("reference", rec.Reference),
		zap.Int("lines", len(items)), zap.String("carrier_source", carrier.Source))

	text := render(datView{
		Number:     number,
		Emitted:    now,
		LoadDate:   loadDate,
		Reference:  rec.Reference,
		Holding:    h,
		Plot:       plot,
		Recipient:  recipient,
		Vehicle:    rc.PreferredVehicle,
		Carrier:    carrier,
		Own:        own,
		Authorized: authorized,
		Driver:     driver,
		Extras:     x,
		Items:      items,
		In:         in,
	})
	return &service.DAT{Number: number, Document: doc, Record: rec, Text: text}, nil
}

func routeOf(h *entities.Holding, rc *entities.Recipient) datatypes.JSONMap {
	route := datatypes.JSONMap{}
	if h.Address != nil && h.Address.Locality != "" {
		route["origen"] = h.Address.Locality
	}
	if rc.Address != nil && rc.Address.Locality != "" {
		route["destino"] = rc.Address.Locality
	}
	if len(route) == 0 {
		return nil
	}
	return route
}
