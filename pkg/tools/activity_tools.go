package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"cuaderno/entities"
	"cuaderno/pkg/activity/repository"
	activity "cuaderno/pkg/activity/service"
	"cuaderno/pkg/dateutil"
	"cuaderno/pkg/resolve"
)

func (r *Registry) activityTools() {
	r.add(tool("registrar_tratamiento", "Registra un tratamiento fitosanitario en una parcela.",
		mcp.WithString("fecha", mcp.Required(), mcp.Description("Fecha (YYYY-MM-DD)")),
		mcp.WithString("referencia_sigpac", mcp.Required(), mcp.Description("Referencia SIGPAC o especie de la parcela")),
		mcp.WithString("producto", mcp.Required(), mcp.Description("Nombre comercial del producto")),
		mcp.WithString("numero_registro", mcp.Description("Nº de registro del producto")),
		mcp.WithNumber("dosis", mcp.Description("Dosis (no negativa)")),
		mcp.WithString("unidad_dosis", mcp.Description("Unidad de la dosis (l/ha, kg/ha...)")),
		mcp.WithString("plaga", mcp.Description("Problema fitosanitario")),
		mcp.WithNumber("superficie_tratada", mcp.Description("Superficie tratada (ha)")),
		mcp.WithString("hora_inicio", mcp.Description("Hora de inicio")),
		mcp.WithString("hora_fin", mcp.Description("Hora de fin")),
		mcp.WithString("nif_aplicador", mcp.Description("NIF de la persona o documento del personal aplicador")),
		mcp.WithString("equipo", mcp.Description("Descripción o nº ROMA del equipo de aplicación")),
		mcp.WithString("eficacia", mcp.Description("Eficacia observada")),
		mcp.WithString("observaciones", mcp.Description("Observaciones")),
	), r.recordTreatment)

	r.add(tool("registrar_riego_abonado", "Registra un riego o un abonado. Es abonado si se indica fertilizante o el tipo contiene \"abono\".",
		mcp.WithString("fecha", mcp.Required(), mcp.Description("Fecha (YYYY-MM-DD)")),
		mcp.WithString("referencia_sigpac", mcp.Required(), mcp.Description("Referencia SIGPAC o especie de la parcela")),
		mcp.WithString("tipo", mcp.Description("Tipo de actividad (riego, abonado...)")),
		mcp.WithString("fertilizante", mcp.Description("Producto fertilizante")),
		mcp.WithString("numero_registro", mcp.Description("Nº de registro del fertilizante")),
		mcp.WithNumber("cantidad", mcp.Description("Cantidad aplicada (no negativa)")),
		mcp.WithString("unidad", mcp.Description("Unidad de la cantidad")),
		mcp.WithNumber("superficie", mcp.Description("Superficie (ha)")),
		mcp.WithString("hora_inicio", mcp.Description("Hora de inicio")),
		mcp.WithString("hora_fin", mcp.Description("Hora de fin")),
		mcp.WithString("observaciones", mcp.Description("Observaciones")),
	), r.recordIrrigation)

	r.add(tool("registrar_siembra", "Registra una siembra con semilla tratada.",
		mcp.WithString("fecha_siembra", mcp.Required(), mcp.Description("Fecha de siembra (YYYY-MM-DD)")),
		mcp.WithString("referencia_sigpac", mcp.Required(), mcp.Description("Referencia SIGPAC o especie de la parcela")),
		mcp.WithString("cultivo", mcp.Description("Cultivo (por defecto la especie de la parcela)")),
		mcp.WithNumber("superficie_sembrada", mcp.Description("Superficie sembrada (ha)")),
		mcp.WithNumber("cantidad_semilla_kg", mcp.Description("Cantidad de semilla (kg)")),
		mcp.WithString("producto_fitosanitario", mcp.Description("Producto con el que se trató la semilla")),
		mcp.WithString("numero_registro", mcp.Description("Nº de registro del producto")),
		mcp.WithString("observaciones", mcp.Description("Observaciones")),
	), r.recordSeeding)

	r.add(tool("registrar_analisis", "Registra un boletín de análisis de laboratorio.",
		mcp.WithString("fecha", mcp.Required(), mcp.Description("Fecha (YYYY-MM-DD)")),
		mcp.WithString("material_analizado", mcp.Description("Material analizado (hoja, fruto, suelo...)")),
		mcp.WithString("cultivo", mcp.Description("Cultivo")),
		mcp.WithString("numero_boletin", mcp.Description("Nº de boletín")),
		mcp.WithString("laboratorio", mcp.Description("Laboratorio")),
		mcp.WithString("sustancias_detectadas", mcp.Description("Sustancias activas detectadas")),
	), r.recordAnalysis)

	r.add(tool("consultar_historial", "Consulta las actividades registradas con filtros opcionales.",
		mcp.WithNumber("anio", mcp.Description("Año")),
		mcp.WithString("producto", mcp.Description("Texto contenido en el producto")),
		mcp.WithString("tipo", mcp.Description("Texto contenido en el tipo (tratamiento, riego...)")),
		mcp.WithString("parcela", mcp.Description("Texto contenido en la referencia SIGPAC o especie")),
		mcp.WithString("plaga", mcp.Description("Texto contenido en el problema fitosanitario")),
	), r.queryHistory)
}

func (r *Registry) recordTreatment(ctx context.Context, a args) (string, error) {
	dose, err := a.num("dosis")
	if err != nil {
		return "", err
	}
	area, err := a.num("superficie_tratada")
	if err != nil {
		return "", err
	}
	act, err := r.svc.Activity.RecordTreatment(ctx, activity.TreatmentInput{
		Date:             a.str("fecha"),
		PlotRef:          a.str("referencia_sigpac"),
		Product:          a.str("producto"),
		ProductRegNumber: a.str("numero_registro"),
		Dose:             dose,
		DoseText:         a.str("unidad_dosis"),
		Pest:             a.str("plaga"),
		TreatedArea:      area,
		StartTime:        a.str("hora_inicio"),
		EndTime:          a.str("hora_fin"),
		ApplicatorNIF:    a.str("nif_aplicador"),
		Equipment:        a.str("equipo"),
		Efficacy:         a.str("eficacia"),
		Notes:            a.str("observaciones"),
	})
	if err != nil {
		return "", err
	}
	msg := fmt.Sprintf("Tratamiento registrado: %s en la parcela %s el %s (dosis %s, plaga %s).",
		act.ProductName, act.Plot.SigpacRef, dateutil.Format(act.Date),
		orEmpty(strings.TrimSpace(dateutil.Decimal(act.Dose)+" "+act.DoseText)), orEmpty(act.Pest))
	if act.Applicator != nil {
		msg += " Aplicador: " + act.Applicator.Name + "."
	}
	return msg, nil
}

func (r *Registry) recordIrrigation(ctx context.Context, a args) (string, error) {
	qty, err := a.num("cantidad")
	if err != nil {
		return "", err
	}
	area, err := a.num("superficie")
	if err != nil {
		return "", err
	}
	act, err := r.svc.Activity.RecordIrrigationOrFertilization(ctx, activity.IrrigationInput{
		Date:       a.str("fecha"),
		PlotRef:    a.str("referencia_sigpac"),
		TypeHint:   a.str("tipo"),
		Fertilizer: a.str("fertilizante"),
		RegNumber:  a.str("numero_registro"),
		Dose:       qty,
		DoseText:   a.str("unidad"),
		Area:       area,
		StartTime:  a.str("hora_inicio"),
		EndTime:    a.str("hora_fin"),
		Notes:      a.str("observaciones"),
	})
	if err != nil {
		return "", err
	}
	label := "Riego registrado"
	if act.Type == entities.ActivityFertilization {
		label = "Abonado registrado"
	}
	return fmt.Sprintf("%s (%s) en la parcela %s el %s. Producto: %s.",
		label, act.Type, act.Plot.SigpacRef, dateutil.Format(act.Date), orNA(act.ProductName)), nil
}

func orNA(s string) string {
	if s == "" {
		return resolve.NotApplicable
	}
	return s
}

func (r *Registry) recordSeeding(ctx context.Context, a args) (string, error) {
	area, err := a.num("superficie_sembrada")
	if err != nil {
		return "", err
	}
	kg, err := a.num("cantidad_semilla_kg")
	if err != nil {
		return "", err
	}
	s, err := r.svc.Activity.RecordSeeding(ctx, activity.SeedingInput{
		SowingDate:   a.str("fecha_siembra"),
		PlotRef:      a.str("referencia_sigpac"),
		Crop:         a.str("cultivo"),
		SownArea:     area,
		SeedKg:       kg,
		PhytoProduct: a.str("producto_fitosanitario"),
		RegNumber:    a.str("numero_registro"),
		Notes:        a.str("observaciones"),
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Siembra registrada: %s en la parcela %s el %s (semilla %s kg, producto %s).",
		orEmpty(s.Crop), s.Plot.SigpacRef, dateutil.Format(s.SowingDate),
		orEmpty(dateutil.Decimal(s.SeedKg)), orNA(s.PhytoProduct)), nil
}

func (r *Registry) recordAnalysis(ctx context.Context, a args) (string, error) {
	an, err := r.svc.Activity.RecordAnalysis(ctx, activity.AnalysisInput{
		Date:               a.str("fecha"),
		Material:           a.str("material_analizado"),
		Crop:               a.str("cultivo"),
		BulletinNumber:     a.str("numero_boletin"),
		Laboratory:         a.str("laboratorio"),
		DetectedSubstances: a.str("sustancias_detectadas"),
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Análisis registrado el %s: boletín %s, laboratorio %s.",
		dateutil.Format(an.Date), orEmpty(an.BulletinNumber), orEmpty(an.Laboratory)), nil
}

// historyLine is one activity in the history preview.
func historyLine(a entities.Activity) string {
	plot := resolve.Empty
	if a.Plot != nil {
		plot = a.Plot.SigpacRef
	}
	return fmt.Sprintf("- %s | %s | %s | %s | %s",
		dateutil.Format(a.Date), a.Type, plot, orEmpty(a.ProductName), orEmpty(a.Pest))
}

func (r *Registry) queryHistory(ctx context.Context, a args) (string, error) {
	year, err := a.integer("anio")
	if err != nil {
		return "", err
	}
	h, err := r.svc.Activity.History(ctx, repository.HistoryFilter{
		Year:    year,
		Product: a.str("producto"),
		Type:    a.str("tipo"),
		Plot:    a.str("parcela"),
		Pest:    a.str("plaga"),
	})
	if err != nil {
		return "", err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Actividades encontradas: %d", h.Count)
	if int64(len(h.Rows)) < h.Count {
		fmt.Fprintf(&b, " (se muestran las %d más recientes)", len(h.Rows))
	}
	for _, row := range h.Rows {
		b.WriteString("\n" + historyLine(row))
	}
	return b.String(), nil
}
