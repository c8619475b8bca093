package serviceImp

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"cuaderno/entities"
	"cuaderno/pkg/dateutil"
	"cuaderno/pkg/resolve"
	"cuaderno/pkg/transport/service"
)

// Section titles of the DAT, in print order.
var sectionTitles = [7]string{
	"1. ORIGEN / TITULAR",
	"2. UNIDAD DE PRODUCCIÓN (SIGPAC)",
	"3. DESTINATARIO",
	"4. TRANSPORTISTA",
	"5. DATOS DEL TRANSPORTE",
	"6. CALIDAD COMERCIAL",
	"7. FIRMAS",
}

type datView struct {
	Number     string
	Emitted    time.Time
	LoadDate   time.Time
	Reference  string
	Holding    *entities.Holding
	Plot       *entities.Plot
	Recipient  resolve.Contact
	Vehicle    *entities.Vehicle
	Carrier    resolve.Contact
	Own        bool
	Authorized resolve.Contact
	Driver     resolve.Contact
	Extras     extras
	Items      []lineItem
	In         service.DATInput
}

// flag renders a checkbox line.
func flag(on bool, label string) string {
	if on {
		return "[X] " + label
	}
	return "[ ] " + label
}

func val(s string) string {
	if strings.TrimSpace(s) == "" {
		return resolve.Empty
	}
	return s
}

func na(s string) string {
	if strings.TrimSpace(s) == "" {
		return resolve.NotApplicable
	}
	return s
}

func hhmm(t *time.Time) string {
	if t == nil {
		return resolve.NotApplicable
	}
	return t.Format("15:04")
}

func units(n *int) string {
	if n == nil {
		return resolve.NotApplicable
	}
	return strconv.Itoa(*n)
}

type doc struct{ b strings.Builder }

func (d *doc) line(format string, args ...any) {
	fmt.Fprintf(&d.b, format, args...)
	d.b.WriteByte('\n')
}

func (d *doc) field(label, value string) { d.line("%s: %s", label, value) }

func (d *doc) section(i int) {
	d.b.WriteByte('\n')
	d.line("%s", sectionTitles[i])
	d.line("%s", strings.Repeat("-", len([]rune(sectionTitles[i]))))
}

var addressLabels = [8]string{
	"Tipo de vía", "Nombre de vía", "Número", "Código postal",
	"Localidad", "Provincia", "Entidad de población", "País",
}

func (d *doc) address(b resolve.AddressBundle) {
	for i, v := range b.Fields() {
		d.field(addressLabels[i], val(v))
	}
}

func render(v datView) string {
	var d doc
	d.line("DOCUMENTO DE ACOMPAÑAMIENTO AL TRANSPORTE (DAT)")
	d.field("Nº de documento", v.Number)
	d.field("Fecha de emisión", v.Emitted.Format("2006-01-02 15:04"))
	d.field("Referencia", v.Reference)

	h := v.Holding
	d.section(0)
	d.field("Explotación", val(h.Name))
	d.field("NIF explotación", val(h.NIF))
	d.field("Nº registro nacional", val(h.NationalRegistration))
	d.field("Nº registro autonómico", val(h.RegionalRegistration))
	if t := h.Titleholder; t != nil {
		d.field("Titular", val(t.FullName()))
		d.field("Documento titular", val(strings.TrimSpace(t.DocType+" "+t.Document)))
	} else {
		d.field("Titular", resolve.FillIn)
		d.field("Documento titular", resolve.FillIn)
	}
	d.field("Tipo de representación", val(h.Representation))
	d.address(resolve.FormatAddress(h.Address))

	d.section(1)
	if p := v.Plot; p != nil {
		d.field("Referencia SIGPAC", val(p.SigpacRef))
		d.field("Polígono", val(p.Polygon))
		d.field("Parcela", val(p.Parcel))
		d.field("Recinto", val(p.Enclosure))
		d.field("Uso SIGPAC", val(p.SigpacUse))
		d.field("Superficie cultivada (ha)", val(dateutil.Decimal(p.CultivatedArea)))
		d.field("Especie", val(p.Species))
		d.field("Variedad", val(p.Variety))
	} else {
		d.field("Referencia SIGPAC", resolve.FillIn)
		for _, l := range []string{"Polígono", "Parcela", "Recinto", "Uso SIGPAC", "Superficie cultivada (ha)", "Especie", "Variedad"} {
			d.field(l, resolve.Empty)
		}
	}

	d.section(2)
	d.field("Nombre / Razón social", val(v.Recipient.Name))
	d.field("NIF", v.Recipient.NIF)
	d.field("Teléfono", v.Recipient.Phone)
	d.field("Móvil", v.Recipient.Mobile)
	d.field("Email", v.Recipient.Email)
	d.address(v.Recipient.Address)

	d.section(3)
	d.line("%s", flag(v.Own, "Transporte propio"))
	d.field("Nombre / Razón social", v.Carrier.Name)
	d.field("NIF", v.Carrier.NIF)
	d.field("Teléfono", v.Carrier.Phone)
	d.field("Email", v.Carrier.Email)
	d.field("Dirección", v.Carrier.Address.Line())
	if veh := v.Vehicle; veh != nil {
		d.field("Vehículo", strings.TrimSpace(strings.Join([]string{veh.Type, veh.Make, veh.Model}, " ")))
		d.field("Matrícula", val(veh.Plate))
	} else {
		d.field("Vehículo", resolve.FillIn)
		d.field("Matrícula", resolve.FillIn)
	}

	d.section(4)
	x := v.Extras
	d.field("Fecha de carga", dateutil.Format(v.LoadDate))
	d.field("Hora de carga", hhmm(x.loadedAt))
	d.field("Hora de descarga", hhmm(x.unloadedAt))
	d.line("%s", flag(v.In.TemperatureControlled, "Temperatura controlada"))
	d.field("Temperatura registrada (ºC)", na(dateutil.Decimal(x.temp)))
	for i, it := range v.Items {
		d.line("Línea %d:", i+1)
		d.line("  Producto: %s", it.Product)
		d.line("  Variedad: %s", na(it.Variety))
		d.line("  Cantidad: %s", it.Quantity.String())
		d.line("  Unidad: %s", it.Unit)
	}
	d.field("Peso bruto (kg)", na(dateutil.Decimal(x.gross)))
	d.field("Peso neto (kg)", na(dateutil.Decimal(x.net)))
	d.field("Palés", units(x.pallets))
	d.field("Bultos", units(x.packages))
	d.field("Lotes", na(strings.Join(x.batchList, ", ")))
	d.field("Conductor", v.Driver.Name)
	d.field("NIF conductor", v.Driver.NIF)
	d.field("Coste del transporte (€)", na(dateutil.Decimal(x.cost)))
	d.field("Instrucciones de uso", na(v.In.UsageInstructions))
	d.field("Observaciones", na(v.In.Notes))

	d.section(5)
	in := v.In
	d.line("%s", flag(in.Ecological, "Producción ecológica"))
	d.line("%s", flag(in.Integrated, "Producción integrada"))
	d.line("%s", flag(in.Conventional, "Producción convencional"))
	d.line("%s", flag(in.DOP != "" || in.IGP != "" || in.ETG != "", "Calidad diferenciada"))
	d.line("  %s", flag(in.DOP != "", "Denominación de Origen Protegida (DOP): "+na(in.DOP)))
	d.line("  %s", flag(in.IGP != "", "Indicación Geográfica Protegida (IGP): "+na(in.IGP)))
	d.line("  %s", flag(in.ETG != "", "Especialidad Tradicional Garantizada (ETG): "+na(in.ETG)))
	d.field("Otras menciones de calidad", na(in.OtherQuality))

	d.section(6)
	d.field("Persona autorizada", v.Authorized.Name)
	d.field("NIF persona autorizada", v.Authorized.NIF)
	d.line("Firma del titular o persona autorizada: ____________________")
	d.line("Firma del transportista: ____________________")
	d.line("Firma del destinatario: ____________________")
	return d.b.String()
}
