package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	activity "cuaderno/pkg/activity/service"
	"cuaderno/pkg/apperr"
	"cuaderno/pkg/dateutil"
	transport "cuaderno/pkg/transport/service"
)

func (r *Registry) documentTools() {
	r.add(tool("generar_dat", "Genera un Documento de Acompañamiento al Transporte y guarda su registro de transporte. Cada llamada crea un documento nuevo.",
		mcp.WithString("destinatario", mcp.Required(), mcp.Description("Nombre (o parte) del cliente destinatario")),
		mcp.WithArray("productos", mcp.Required(), mcp.Description("Productos transportados"), mcp.Items(map[string]any{"type": "string"})),
		mcp.WithArray("cantidades", mcp.Required(), mcp.Description("Cantidad de cada producto"), mcp.Items(map[string]any{"type": "number"})),
		mcp.WithArray("unidades", mcp.Description("Unidad de cada producto (por defecto kg)"), mcp.Items(map[string]any{"type": "string"})),
		mcp.WithArray("variedades", mcp.Description("Variedad de cada producto"), mcp.Items(map[string]any{"type": "string"})),
		mcp.WithString("transportista_nif", mcp.Description("NIF del transportista (vacío: transporte propio)")),
		mcp.WithString("transportista_nombre", mcp.Description("Nombre del transportista")),
		mcp.WithString("transportista_telefono", mcp.Description("Teléfono del transportista")),
		mcp.WithString("transportista_email", mcp.Description("Email del transportista")),
		mcp.WithString("autorizado_nif", mcp.Description("NIF de la persona autorizada")),
		mcp.WithString("autorizado_nombre", mcp.Description("Nombre de la persona autorizada")),
		mcp.WithBoolean("es_ecologico", mcp.Description("Producción ecológica")),
		mcp.WithBoolean("es_produccion_integrada", mcp.Description("Producción integrada")),
		mcp.WithBoolean("es_convencional", mcp.Description("Producción convencional")),
		mcp.WithString("dop", mcp.Description("Denominación de Origen Protegida")),
		mcp.WithString("igp", mcp.Description("Indicación Geográfica Protegida")),
		mcp.WithString("etg", mcp.Description("Especialidad Tradicional Garantizada")),
		mcp.WithString("otra_calidad", mcp.Description("Otras menciones de calidad")),
		mcp.WithString("instrucciones_uso", mcp.Description("Instrucciones de uso")),
		mcp.WithString("observaciones", mcp.Description("Observaciones")),
		mcp.WithBoolean("temperatura_controlada", mcp.Description("Transporte a temperatura controlada")),
		mcp.WithString("fecha_carga", mcp.Description("Fecha de carga (YYYY-MM-DD, por defecto hoy)")),
		mcp.WithString("hora_carga", mcp.Description("Hora de carga (HH:MM)")),
		mcp.WithString("hora_descarga", mcp.Description("Hora de descarga (HH:MM)")),
		mcp.WithNumber("peso_bruto", mcp.Description("Peso bruto (kg)")),
		mcp.WithNumber("peso_neto", mcp.Description("Peso neto (kg), no mayor que el bruto")),
		mcp.WithNumber("pallets", mcp.Description("Número de palés")),
		mcp.WithNumber("bultos", mcp.Description("Número de bultos")),
		mcp.WithArray("lotes", mcp.Description("Lotes transportados"), mcp.Items(map[string]any{"type": "string"})),
		mcp.WithString("conductor_nif", mcp.Description("NIF del conductor")),
		mcp.WithString("conductor_nombre", mcp.Description("Nombre del conductor")),
		mcp.WithNumber("temperatura_registrada", mcp.Description("Temperatura registrada (ºC)")),
		mcp.WithNumber("costo_transporte", mcp.Description("Coste del transporte (€)")),
	), r.generateDAT)

	r.add(tool("registrar_venta", "Registra una venta o salida de producto.",
		mcp.WithString("fecha", mcp.Required(), mcp.Description("Fecha (YYYY-MM-DD)")),
		mcp.WithString("producto", mcp.Required(), mcp.Description("Producto")),
		mcp.WithNumber("cantidad_kg", mcp.Description("Cantidad (kg, no negativa)")),
		mcp.WithString("numero_albaran", mcp.Description("Nº de albarán o factura")),
		mcp.WithString("numero_lote", mcp.Description("Nº de lote")),
		mcp.WithString("cliente_nombre", mcp.Description("Nombre del cliente")),
		mcp.WithString("cliente_nif", mcp.Description("NIF del cliente")),
		mcp.WithString("numero_rgseaa", mcp.Description("Nº RGSEAA del cliente")),
	), r.recordSale)

	r.add(tool("generar_cuaderno_anual", "Genera el cuaderno de explotación de un año.",
		mcp.WithNumber("anio", mcp.Required(), mcp.Description("Año del cuaderno")),
	), r.generateLogbook)
}

func (r *Registry) generateDAT(ctx context.Context, a args) (string, error) {
	qty, err := a.nums("cantidades")
	if err != nil {
		return "", err
	}
	var nums [4]*float64
	for i, k := range []string{"peso_bruto", "peso_neto", "temperatura_registrada", "costo_transporte"} {
		if nums[i], err = a.num(k); err != nil {
			return "", err
		}
	}
	pallets, err := a.optInteger("pallets")
	if err != nil {
		return "", err
	}
	packages, err := a.optInteger("bultos")
	if err != nil {
		return "", err
	}
	dat, err := r.svc.Transport.GenerateDAT(ctx, transport.DATInput{
		RecipientName:         a.str("destinatario"),
		Products:              a.strs("productos"),
		Quantities:            qty,
		Units:                 a.strs("unidades"),
		Varieties:             a.strs("variedades"),
		CarrierNIF:            a.str("transportista_nif"),
		CarrierName:           a.str("transportista_nombre"),
		CarrierPhone:          a.str("transportista_telefono"),
		CarrierEmail:          a.str("transportista_email"),
		AuthorizedNIF:         a.str("autorizado_nif"),
		AuthorizedName:        a.str("autorizado_nombre"),
		Ecological:            a.boolean("es_ecologico"),
		Integrated:            a.boolean("es_produccion_integrada"),
		Conventional:          a.boolean("es_convencional"),
		DOP:                   a.str("dop"),
		IGP:                   a.str("igp"),
		ETG:                   a.str("etg"),
		OtherQuality:          a.str("otra_calidad"),
		UsageInstructions:     a.str("instrucciones_uso"),
		Notes:                 a.str("observaciones"),
		TemperatureControlled: a.boolean("temperatura_controlada"),
		LoadingDate:           a.str("fecha_carga"),
		GrossWeight:           nums[0],
		NetWeight:             nums[1],
		RecordedTemperature:   nums[2],
		TransportCost:         nums[3],
		Pallets:               pallets,
		Packages:              packages,
		Batches:               a.strs("lotes"),
		DriverNIF:             a.str("conductor_nif"),
		DriverName:            a.str("conductor_nombre"),
		LoadTime:              a.str("hora_carga"),
		UnloadTime:            a.str("hora_descarga"),
	})
	if err != nil {
		return "", err
	}
	return dat.Text, nil
}

func (r *Registry) recordSale(ctx context.Context, a args) (string, error) {
	qty, err := a.num("cantidad_kg")
	if err != nil {
		return "", err
	}
	m, err := r.svc.Activity.RecordSale(ctx, activity.SaleInput{
		Date:          a.str("fecha"),
		Product:       a.str("producto"),
		QuantityKg:    qty,
		InvoiceNumber: a.str("numero_albaran"),
		BatchNumber:   a.str("numero_lote"),
		ClientName:    a.str("cliente_nombre"),
		ClientNIF:     a.str("cliente_nif"),
		RGSEAANumber:  a.str("numero_rgseaa"),
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Venta registrada el %s: %s, %s kg, cliente %s (albarán %s).",
		dateutil.Format(m.Date), m.Product, orEmpty(dateutil.Decimal(m.QuantityKg)),
		orEmpty(m.ClientName), orEmpty(m.InvoiceNumber)), nil
}

func (r *Registry) generateLogbook(ctx context.Context, a args) (string, error) {
	year, err := a.integer("anio")
	if err != nil {
		return "", err
	}
	if year == 0 {
		return "", apperr.Validation("anio es obligatorio")
	}
	return r.svc.Logbook.Generate(ctx, year)
}
