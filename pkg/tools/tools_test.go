package tools

import (
	"context"
	"testing"
	"time"

	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"cuaderno/entities"
	activityRepo "cuaderno/pkg/activity/repositoryImp"
	activitySvc "cuaderno/pkg/activity/serviceImp"
	logbookRepo "cuaderno/pkg/logbook/repositoryImp"
	logbookSvc "cuaderno/pkg/logbook/serviceImp"
	masterRepo "cuaderno/pkg/masterdata/repositoryImp"
	masterSvc "cuaderno/pkg/masterdata/serviceImp"
	"cuaderno/pkg/metrics"
	"cuaderno/pkg/resolve"
	resolveRepo "cuaderno/pkg/resolve/repositoryImp"
	"cuaderno/pkg/testutil"
	transportRepo "cuaderno/pkg/transport/repositoryImp"
	transportSvc "cuaderno/pkg/transport/serviceImp"
)

func newRegistry(t *testing.T) (*Registry, *gorm.DB) {
	db := testutil.DB(t)
	log := zap.NewNop()
	engine := resolve.New(resolveRepo.New(db), log)
	clock := func() time.Time { return time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC) }
	svc := Services{
		Master:    masterSvc.New(masterRepo.New(db), log),
		Activity:  activitySvc.New(activityRepo.New(db), engine, log),
		Transport: transportSvc.New(transportRepo.New(db), engine, clock, log),
		Logbook:   logbookSvc.New(logbookRepo.New(db), log),
	}
	return NewRegistry(svc, log, nil), db
}

func call(t *testing.T, r *Registry, name string, a map[string]any) string {
	t.Helper()
	out, err := r.Call(context.Background(), name, a)
	require.NoError(t, err)
	return out
}

func TestDefinitions(t *testing.T) {
	r, _ := newRegistry(t)
	var names []string
	for _, d := range r.Definitions() {
		names = append(names, d.Name)
		assert.NotEmpty(t, d.Description, d.Name)
	}
	assert.Equal(t, []string{
		"configurar_explotacion_principal",
		"consultar_historial",
		"crear_asesor",
		"crear_cliente_destinatario",
		"crear_maquinaria_aplicacion",
		"crear_parcela",
		"crear_personal_aplicador",
		"crear_titular",
		"crear_transportista_externo",
		"crear_vehiculo",
		"generar_cuaderno_anual",
		"generar_dat",
		"registrar_analisis",
		"registrar_riego_abonado",
		"registrar_siembra",
		"registrar_tratamiento",
		"registrar_venta",
	}, names)
}

func TestScenario(t *testing.T) {
	r, db := newRegistry(t)

	out := call(t, r, "registrar_tratamiento", map[string]any{
		"fecha": "2024-03-10", "referencia_sigpac": "P1", "producto": "FungicidaX",
	})
	assert.Equal(t, "Error: no hay ninguna explotación configurada. Sugerencia: usa 'configurar_explotacion_principal' primero.", out)

	out = call(t, r, "configurar_explotacion_principal", map[string]any{
		"nombre": "Finca Sol", "nif": "b123", "localidad": "Lorca", "provincia": "Murcia",
	})
	assert.Contains(t, out, "Explotación principal creada: Finca Sol (NIF B123")

	out = call(t, r, "crear_parcela", map[string]any{
		"referencia_sigpac": "P1", "especie": "Tomate", "superficie_cultivada": "1,5",
	})
	assert.Contains(t, out, "Parcela creada: P1")

	out = call(t, r, "registrar_tratamiento", map[string]any{
		"fecha": "2024-03-10", "referencia_sigpac": "p1", "producto": "FungicidaX",
		"dosis": 2.0, "unidad_dosis": "l/ha", "plaga": "Mildiu",
	})
	assert.Equal(t, "Tratamiento registrado: FungicidaX en la parcela P1 el 2024-03-10 (dosis 2 l/ha, plaga Mildiu).", out)

	out = call(t, r, "consultar_historial", map[string]any{"anio": 2024.0})
	assert.Contains(t, out, "Actividades encontradas: 1")
	assert.Contains(t, out, "2024-03-10")
	assert.Contains(t, out, "FungicidaX")

	out = call(t, r, "crear_cliente_destinatario", map[string]any{
		"nombre": "Frutas del Sur SL", "documento": "B999", "localidad": "Murcia",
	})
	assert.Contains(t, out, "Destinatario creado: Frutas del Sur SL")

	out = call(t, r, "generar_dat", map[string]any{
		"destinatario": "frutas", "productos": []any{"Tomate"}, "cantidades": []any{100.0}, "unidades": []any{"kg"},
	})
	assert.Contains(t, out, "DAT-20240501-1030")
	assert.Contains(t, out, "[X] Transporte propio")

	out = call(t, r, "generar_cuaderno_anual", map[string]any{"anio": 2024.0})
	assert.Contains(t, out, "CUADERNO DE EXPLOTACIÓN 2024")
	assert.Contains(t, out, "FungicidaX")

	var n int64
	require.NoError(t, db.Model(&entities.TransportRecord{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestGenerateDATMismatchWritesNothing(t *testing.T) {
	r, db := newRegistry(t)
	out := call(t, r, "generar_dat", map[string]any{
		"destinatario": "x", "productos": []any{"Tomate", "Pimiento"}, "cantidades": []any{100.0},
	})
	assert.Equal(t, "Error: productos y cantidades deben tener la misma longitud (2 productos, 1 cantidades)", out)

	var n int64
	require.NoError(t, db.Model(&entities.DATDocument{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestGenerateDATTransportDetails(t *testing.T) {
	r, db := newRegistry(t)
	call(t, r, "configurar_explotacion_principal", map[string]any{"nombre": "Finca Sol", "nif": "B123"})
	call(t, r, "crear_cliente_destinatario", map[string]any{"nombre": "Frutas del Sur SL", "documento": "B999"})

	base := map[string]any{"destinatario": "frutas", "productos": []any{"Tomate"}, "cantidades": []any{100.0}}
	with := func(extra map[string]any) map[string]any {
		m := map[string]any{}
		for k, v := range base {
			m[k] = v
		}
		for k, v := range extra {
			m[k] = v
		}
		return m
	}

	assert.Equal(t, "Error: pallets debe ser un número entero", call(t, r, "generar_dat", with(map[string]any{"pallets": 1.5})))
	assert.Equal(t, `Error: hora_carga debe tener el formato HH:MM (recibido "tarde")`,
		call(t, r, "generar_dat", with(map[string]any{"hora_carga": "tarde"})))
	var n int64
	require.NoError(t, db.Model(&entities.TransportRecord{}).Count(&n).Error)
	assert.Zero(t, n)

	out := call(t, r, "generar_dat", with(map[string]any{
		"peso_bruto": "1050,5", "pallets": 2.0, "bultos": "40",
		"lotes": []any{"L-7"}, "conductor_nombre": "Luis Gil", "hora_carga": "08:00",
		"temperatura_registrada": -1.0, "costo_transporte": 60.0,
	}))
	assert.Contains(t, out, "Peso bruto (kg): 1050.5\n")
	assert.Contains(t, out, "Peso neto (kg): N/A")
	assert.Contains(t, out, "Palés: 2\nBultos: 40\nLotes: L-7")
	assert.Contains(t, out, "Conductor: Luis Gil")
	assert.Contains(t, out, "Hora de carga: 08:00")
	assert.Contains(t, out, "Temperatura registrada (ºC): -1")
}

func TestBadArguments(t *testing.T) {
	r, _ := newRegistry(t)
	tests := []struct {
		name string
		tool string
		args map[string]any
		want string
	}{
		{"not a number", "crear_parcela", map[string]any{"referencia_sigpac": "P1", "superficie_cultivada": "mucho"},
			`Error: superficie_cultivada debe ser un número (recibido "mucho")`},
		{"fractional year", "generar_cuaderno_anual", map[string]any{"anio": 2024.5}, "Error: anio debe ser un número entero"},
		{"missing year", "generar_cuaderno_anual", map[string]any{}, "Error: anio es obligatorio"},
		{"missing name", "crear_titular", map[string]any{"documento": "1"}, "Error: nombre es obligatorio"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, call(t, r, tt.tool, tt.args))
		})
	}
}

func TestMetricsOutcomes(t *testing.T) {
	m := metrics.New()
	r := NewRegistry(Services{}, zap.NewNop(), m)
	r.add(tool("explota", "siempre falla"), func(context.Context, args) (string, error) { panic("x") })

	call(t, r, "generar_cuaderno_anual", map[string]any{})
	call(t, r, "explota", nil)

	assert.Equal(t, 1.0, promtest.ToFloat64(m.Calls("generar_cuaderno_anual", metrics.OutcomeRejected)))
	assert.Equal(t, 1.0, promtest.ToFloat64(m.Calls("explota", metrics.OutcomePanic)))
}

func TestUnknownTool(t *testing.T) {
	r, _ := newRegistry(t)
	_, err := r.Call(context.Background(), "borrar_todo", nil)
	assert.ErrorIs(t, err, ErrUnknownTool)
}

func TestPanicBecomesText(t *testing.T) {
	r, _ := newRegistry(t)
	r.add(tool("explota", "siempre falla"), func(context.Context, args) (string, error) {
		panic("sin conexión")
	})
	out := call(t, r, "explota", nil)
	assert.Equal(t, "Error: fallo interno: sin conexión", out)
}

func TestArgs(t *testing.T) {
	a := args{
		"s": "  hola ", "n": "2,5", "f": 3.0, "b": "sí", "list": "uno", "nums": []any{1.0, "2"}, "blank": " ",
	}
	assert.Equal(t, "hola", a.str("s"))
	assert.Equal(t, "3", a.str("f"))

	n, err := a.num("n")
	require.NoError(t, err)
	assert.Equal(t, 2.5, *n)

	n, err = a.num("blank")
	require.NoError(t, err)
	assert.Nil(t, n)

	assert.Equal(t, []string{"uno"}, a.strs("list"))
	nums, err := a.nums("nums")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, nums)
	assert.Nil(t, a.address())

	a = args{"whole": 3.0, "half": 2.5}
	i, err := a.optInteger("whole")
	require.NoError(t, err)
	assert.Equal(t, 3, *i)
	i, err = a.optInteger("absent")
	require.NoError(t, err)
	assert.Nil(t, i)
	_, err = a.optInteger("half")
	assert.Error(t, err)
}
