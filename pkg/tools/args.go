package tools

import (
	"encoding/json"
	"strconv"
	"strings"

	"cuaderno/entities"
	"cuaderno/pkg/apperr"
)

// args reads tool arguments decoded from JSON. Accessors are lenient about
// representation (numbers as strings, single values for lists) and strict
// about meaning.
type args map[string]any

func (a args) str(k string) string {
	switch v := a[k].(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	default:
		b, _ := json.Marshal(v)
		return string(b)
	}
}

func toFloat(k string, v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case json.Number:
		return n.Float64()
	case string:
		f, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(n), ",", "."), 64)
		if err != nil {
			return 0, apperr.Validation("%s debe ser un número (recibido %q)", k, n)
		}
		return f, nil
	}
	return 0, apperr.Validation("%s debe ser un número", k)
}

// num returns nil when the argument is absent or blank.
func (a args) num(k string) (*float64, error) {
	v, ok := a[k]
	if !ok || v == nil {
		return nil, nil
	}
	if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
		return nil, nil
	}
	f, err := toFloat(k, v)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (a args) integer(k string) (int, error) {
	f, err := a.num(k)
	if err != nil || f == nil {
		return 0, err
	}
	if *f != float64(int(*f)) {
		return 0, apperr.Validation("%s debe ser un número entero", k)
	}
	return int(*f), nil
}

// optInteger is integer with absence kept as nil.
func (a args) optInteger(k string) (*int, error) {
	f, err := a.num(k)
	if err != nil || f == nil {
		return nil, err
	}
	if *f != float64(int(*f)) {
		return nil, apperr.Validation("%s debe ser un número entero", k)
	}
	n := int(*f)
	return &n, nil
}

func (a args) boolean(k string) bool {
	switch v := a[k].(type) {
	case bool:
		return v
	case float64:
		return v != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "1", "si", "sí", "yes", "x":
			return true
		}
	}
	return false
}

func (a args) strs(k string) []string {
	switch v := a[k].(type) {
	case nil:
		return nil
	case []string:
		return v
	case []any:
		out := make([]string, len(v))
		for i, e := range v {
			out[i] = args{"v": e}.str("v")
		}
		return out
	case string:
		if strings.TrimSpace(v) == "" {
			return nil
		}
		return []string{strings.TrimSpace(v)}
	}
	return []string{a.str(k)}
}

func (a args) nums(k string) ([]float64, error) {
	var raw []any
	switch v := a[k].(type) {
	case nil:
		return nil, nil
	case []any:
		raw = v
	case []float64:
		return v, nil
	default:
		raw = []any{v}
	}
	out := make([]float64, len(raw))
	for i, e := range raw {
		f, err := toFloat(k, e)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

// address reads the shared address arguments; nil when none is given.
func (a args) address() *entities.Address {
	addr := &entities.Address{
		ViaType:          a.str("tipo_via"),
		StreetName:       a.str("nombre_via"),
		Number:           a.str("numero"),
		Block:            a.str("bloque"),
		Portal:           a.str("portal"),
		Stair:            a.str("escalera"),
		Floor:            a.str("planta"),
		Door:             a.str("puerta"),
		PopulationEntity: a.str("entidad_poblacion"),
		Locality:         a.str("localidad"),
		Province:         a.str("provincia"),
		Country:          a.str("pais"),
		PostalCode:       a.str("codigo_postal"),
		Phone:            a.str("telefono"),
		Mobile:           a.str("movil"),
		Email:            a.str("email"),
	}
	if addr.Empty() && addr.Phone == "" && addr.Mobile == "" && addr.Email == "" {
		return nil
	}
	return addr
}
