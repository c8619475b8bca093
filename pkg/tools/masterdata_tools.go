package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"cuaderno/pkg/apperr"
	"cuaderno/pkg/dateutil"
	masterdata "cuaderno/pkg/masterdata/service"
	"cuaderno/pkg/resolve"
)

func addressOptions() []mcp.ToolOption {
	fields := []struct{ key, desc string }{
		{"tipo_via", "Tipo de vía (Calle, Avenida, Camino...)"},
		{"nombre_via", "Nombre de la vía"},
		{"numero", "Número"},
		{"bloque", "Bloque"},
		{"portal", "Portal"},
		{"escalera", "Escalera"},
		{"planta", "Planta"},
		{"puerta", "Puerta"},
		{"entidad_poblacion", "Entidad de población"},
		{"localidad", "Localidad"},
		{"provincia", "Provincia"},
		{"pais", "País (por defecto ES)"},
		{"codigo_postal", "Código postal"},
		{"telefono", "Teléfono"},
		{"movil", "Móvil"},
		{"email", "Correo electrónico"},
	}
	opts := make([]mcp.ToolOption, 0, len(fields))
	for _, f := range fields {
		opts = append(opts, mcp.WithString(f.key, mcp.Description(f.desc)))
	}
	return opts
}

func tool(name, desc string, opts ...mcp.ToolOption) mcp.Tool {
	return mcp.NewTool(name, append([]mcp.ToolOption{mcp.WithDescription(desc)}, opts...)...)
}

func withAddress(opts ...mcp.ToolOption) []mcp.ToolOption {
	return append(opts, addressOptions()...)
}

func createdWord(created bool, masc bool) string {
	switch {
	case created && masc:
		return "creado"
	case created:
		return "creada"
	case masc:
		return "actualizado"
	}
	return "actualizada"
}

func yesNo(b bool) string {
	if b {
		return "sí"
	}
	return "no"
}

func orEmpty(s string) string {
	if s == "" {
		return resolve.Empty
	}
	return s
}

func (r *Registry) masterdataTools() {
	r.add(tool("crear_titular", "Crea o actualiza el titular de la explotación (por documento).",
		withAddress(
			mcp.WithString("nombre", mcp.Required(), mcp.Description("Nombre o razón social")),
			mcp.WithString("apellidos", mcp.Description("Apellidos")),
			mcp.WithString("tipo_documento", mcp.Description("DNI, NIE o PASAPORTE (por defecto DNI)")),
			mcp.WithString("documento", mcp.Required(), mcp.Description("Número de documento")),
			mcp.WithString("cif_explotacion", mcp.Description("CIF de la explotación")),
			mcp.WithString("registro_explotacion", mcp.Description("Nº de registro de la explotación")),
		)...), r.createTitleholder)

	r.add(tool("configurar_explotacion_principal", "Crea o actualiza la explotación principal (por NIF).",
		withAddress(
			mcp.WithString("nombre", mcp.Required(), mcp.Description("Nombre de la explotación")),
			mcp.WithString("nif", mcp.Required(), mcp.Description("NIF de la explotación")),
			mcp.WithString("numero_registro_nacional", mcp.Description("Nº de registro nacional (REGEPA)")),
			mcp.WithString("numero_registro_autonomico", mcp.Description("Nº de registro autonómico")),
			mcp.WithString("tipo_representacion", mcp.Description("PROPIETARIO o REPRESENTANTE")),
			mcp.WithString("documento_titular", mcp.Description("Documento del titular ya creado con crear_titular")),
		)...), r.configureMainHolding)

	r.add(tool("crear_parcela", "Registra una parcela SIGPAC en la explotación principal.",
		mcp.WithString("referencia_sigpac", mcp.Required(), mcp.Description("Referencia SIGPAC")),
		mcp.WithString("poligono", mcp.Description("Polígono")),
		mcp.WithString("parcela", mcp.Description("Parcela")),
		mcp.WithString("recinto", mcp.Description("Recinto")),
		mcp.WithString("uso_sigpac", mcp.Description("Uso SIGPAC")),
		mcp.WithNumber("superficie_sigpac", mcp.Description("Superficie SIGPAC (ha)")),
		mcp.WithNumber("superficie_cultivada", mcp.Description("Superficie cultivada (ha)")),
		mcp.WithString("especie", mcp.Description("Especie cultivada")),
		mcp.WithString("variedad", mcp.Description("Variedad")),
		mcp.WithString("secano_regadio", mcp.Description("secano o regadío")),
		mcp.WithString("aire_protegido", mcp.Description("aire libre o protegido")),
	), r.createPlot)

	r.add(tool("crear_cliente_destinatario", "Crea un cliente destinatario de transportes y su persona asociada.",
		withAddress(
			mcp.WithString("nombre", mcp.Required(), mcp.Description("Nombre o razón social")),
			mcp.WithString("tipo_documento", mcp.Description("DNI, NIE o PASAPORTE")),
			mcp.WithString("documento", mcp.Description("NIF del destinatario")),
			mcp.WithString("matricula_vehiculo", mcp.Description("Matrícula del vehículo asignado")),
		)...), r.createRecipient)

	r.add(tool("crear_vehiculo", "Crea un vehículo o reutiliza el existente con la misma matrícula.",
		mcp.WithString("matricula", mcp.Required(), mcp.Description("Matrícula")),
		mcp.WithString("tipo", mcp.Description("TRACTOR, COCHE, REMOLQUE, FURGONETA u OTRO")),
		mcp.WithString("marca", mcp.Description("Marca")),
		mcp.WithString("modelo", mcp.Description("Modelo")),
	), r.createVehicle)

	r.add(tool("crear_maquinaria_aplicacion", "Registra un equipo de aplicación de fitosanitarios.",
		mcp.WithString("descripcion", mcp.Required(), mcp.Description("Descripción del equipo")),
		mcp.WithString("numero_roma", mcp.Description("Nº de inscripción ROMA")),
		mcp.WithString("fecha_adquisicion", mcp.Description("Fecha de adquisición (YYYY-MM-DD)")),
		mcp.WithString("fecha_ultima_inspeccion", mcp.Description("Fecha de la última inspección (YYYY-MM-DD)")),
	), r.createEquipment)

	r.add(tool("crear_personal_aplicador", "Crea o actualiza personal de la explotación (por documento).",
		mcp.WithString("nombre", mcp.Required(), mcp.Description("Nombre")),
		mcp.WithString("apellidos", mcp.Description("Apellidos")),
		mcp.WithString("sexo", mcp.Description("H, M u O")),
		mcp.WithString("tipo_documento", mcp.Description("DNI, NIE o PASAPORTE")),
		mcp.WithString("documento", mcp.Required(), mcp.Description("Número de documento")),
		mcp.WithString("cargo", mcp.Description("Cargo")),
		mcp.WithBoolean("habilitado_fitosanitarios", mcp.Description("Tiene carné de aplicador")),
		mcp.WithString("telefono", mcp.Description("Teléfono")),
		mcp.WithString("email", mcp.Description("Correo electrónico")),
	), r.createApplicator)

	r.add(tool("crear_asesor", "Crea o actualiza un asesor (persona + nº ROPO).",
		withAddress(
			mcp.WithString("nombre", mcp.Required(), mcp.Description("Nombre completo")),
			mcp.WithString("nif", mcp.Description("NIF")),
			mcp.WithString("numero_ropo", mcp.Description("Nº de inscripción ROPO")),
			mcp.WithString("tipo_carnet", mcp.Description("Tipo de carné o cualificación")),
		)...), r.createAdvisor)

	r.add(tool("crear_transportista_externo", "Crea un transportista externo o reutiliza el existente con el mismo NIF.",
		withAddress(
			mcp.WithString("nombre", mcp.Required(), mcp.Description("Nombre o razón social")),
			mcp.WithString("nif", mcp.Description("NIF")),
		)...), r.createCarrier)
}

func (r *Registry) createTitleholder(ctx context.Context, a args) (string, error) {
	t, created, err := r.svc.Master.CreateTitleholder(ctx, masterdata.TitleholderInput{
		Name:                a.str("nombre"),
		Surname:             a.str("apellidos"),
		DocType:             a.str("tipo_documento"),
		Document:            a.str("documento"),
		HoldingTaxID:        a.str("cif_explotacion"),
		HoldingRegistration: a.str("registro_explotacion"),
		Address:             a.address(),
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Titular %s: %s (%s %s).", createdWord(created, true), t.FullName(), t.DocType, t.Document), nil
}

func (r *Registry) configureMainHolding(ctx context.Context, a args) (string, error) {
	h, created, err := r.svc.Master.ConfigureMainHolding(ctx, masterdata.HoldingInput{
		Name:                 a.str("nombre"),
		NIF:                  a.str("nif"),
		NationalRegistration: a.str("numero_registro_nacional"),
		RegionalRegistration: a.str("numero_registro_autonomico"),
		Representation:       a.str("tipo_representacion"),
		TitleholderDocument:  a.str("documento_titular"),
		Address:              a.address(),
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Explotación principal %s: %s (NIF %s, representación %s).",
		createdWord(created, false), h.Name, h.NIF, h.Representation), nil
}

func (r *Registry) createPlot(ctx context.Context, a args) (string, error) {
	sigpac, err := a.num("superficie_sigpac")
	if err != nil {
		return "", err
	}
	cultivated, err := a.num("superficie_cultivada")
	if err != nil {
		return "", err
	}
	p, err := r.svc.Master.CreatePlot(ctx, masterdata.PlotInput{
		SigpacRef:      a.str("referencia_sigpac"),
		Polygon:        a.str("poligono"),
		Parcel:         a.str("parcela"),
		Enclosure:      a.str("recinto"),
		SigpacUse:      a.str("uso_sigpac"),
		SigpacArea:     sigpac,
		CultivatedArea: cultivated,
		Species:        a.str("especie"),
		Variety:        a.str("variedad"),
		Irrigation:     a.str("secano_regadio"),
		Protection:     a.str("aire_protegido"),
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Parcela creada: %s (especie %s, superficie cultivada %s ha).",
		p.SigpacRef, orEmpty(p.Species), orEmpty(dateutil.Decimal(p.CultivatedArea))), nil
}

func (r *Registry) createRecipient(ctx context.Context, a args) (string, error) {
	rc, person, err := r.svc.Master.CreateRecipient(ctx, masterdata.RecipientInput{
		Name:         a.str("nombre"),
		DocType:      a.str("tipo_documento"),
		Document:     a.str("documento"),
		VehiclePlate: a.str("matricula_vehiculo"),
		Address:      a.address(),
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Destinatario creado: %s (NIF %s). Persona asociada #%d.",
		rc.Name, orEmpty(rc.Document), person.ID), nil
}

func (r *Registry) createVehicle(ctx context.Context, a args) (string, error) {
	v, created, err := r.svc.Master.CreateVehicle(ctx, masterdata.VehicleInput{
		Type:  a.str("tipo"),
		Plate: a.str("matricula"),
		Make:  a.str("marca"),
		Model: a.str("modelo"),
	})
	if err != nil {
		return "", err
	}
	if !created {
		return fmt.Sprintf("Vehículo ya existente: %s (%s).", v.Plate, v.Type), nil
	}
	return fmt.Sprintf("Vehículo creado: %s (%s).", v.Plate, v.Type), nil
}

func (r *Registry) createEquipment(ctx context.Context, a args) (string, error) {
	e, err := r.svc.Master.CreateEquipment(ctx, masterdata.EquipmentInput{
		Description:    a.str("descripcion"),
		ROMANumber:     a.str("numero_roma"),
		AcquiredAt:     a.str("fecha_adquisicion"),
		LastInspection: a.str("fecha_ultima_inspeccion"),
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Maquinaria de aplicación registrada: %s (ROMA %s).", e.Description, orEmpty(e.ROMANumber)), nil
}

func (r *Registry) createApplicator(ctx context.Context, a args) (string, error) {
	p, created, err := r.svc.Master.CreateApplicator(ctx, masterdata.ApplicatorInput{
		Name:           a.str("nombre"),
		Surname:        a.str("apellidos"),
		Sex:            a.str("sexo"),
		DocType:        a.str("tipo_documento"),
		Document:       a.str("documento"),
		Role:           a.str("cargo"),
		PhytoQualified: a.boolean("habilitado_fitosanitarios"),
		Phone:          a.str("telefono"),
		Email:          a.str("email"),
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Personal %s: %s (%s). Habilitado fitosanitarios: %s.",
		createdWord(created, true), p.FullName(), p.Document, yesNo(p.PhytoQualified)), nil
}

func (r *Registry) createAdvisor(ctx context.Context, a args) (string, error) {
	adv, created, err := r.svc.Master.CreateAdvisor(ctx, masterdata.AdvisorInput{
		Name:          a.str("nombre"),
		NIF:           a.str("nif"),
		ROPONumber:    a.str("numero_ropo"),
		Qualification: a.str("tipo_carnet"),
		Phone:         a.str("telefono"),
		Email:         a.str("email"),
		Address:       a.address(),
	})
	if err != nil {
		return "", err
	}
	if adv.Person == nil {
		return "", apperr.Wrap(fmt.Errorf("advisor %d without person", adv.ID), "crear asesor")
	}
	return fmt.Sprintf("Asesor %s: %s (NIF %s, ROPO %s).",
		createdWord(created, true), adv.Person.Name, orEmpty(adv.Person.NIF), orEmpty(adv.ROPONumber)), nil
}

func (r *Registry) createCarrier(ctx context.Context, a args) (string, error) {
	c, created, err := r.svc.Master.CreateCarrier(ctx, masterdata.CarrierInput{
		Name:    a.str("nombre"),
		NIF:     a.str("nif"),
		Phone:   a.str("telefono"),
		Email:   a.str("email"),
		Address: a.address(),
	})
	if err != nil {
		return "", err
	}
	if !created {
		return fmt.Sprintf("Transportista ya existente: %s (NIF %s).", c.Name, orEmpty(c.NIF)), nil
	}
	return fmt.Sprintf("Transportista creado: %s (NIF %s).", c.Name, orEmpty(c.NIF)), nil
}
