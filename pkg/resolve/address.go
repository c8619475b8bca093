package resolve

import (
	"strings"

	"cuaderno/entities"
)

// AddressBundle is the fixed 8-field address layout used by the documents.
type AddressBundle struct {
	ViaType          string
	Street           string
	Number           string
	PostalCode       string
	Locality         string
	Province         string
	PopulationEntity string
	Country          string
}

// FormatAddress never fails; a nil address yields the all-empty bundle.
func FormatAddress(a *entities.Address) AddressBundle {
	if a == nil {
		return AddressBundle{}
	}
	b := AddressBundle{
		ViaType:          a.ViaType,
		Street:           a.StreetName,
		Number:           a.Number,
		PostalCode:       a.PostalCode,
		Locality:         a.Locality,
		Province:         a.Province,
		PopulationEntity: a.PopulationEntity,
		Country:          a.Country,
	}
	if b.PopulationEntity == "" {
		b.PopulationEntity = b.Locality
	}
	switch strings.ToUpper(strings.TrimSpace(b.Country)) {
	case "", "ES", "ESP":
		b.Country = "España"
	}
	return b
}

// Fields returns the bundle in layout order.
func (b AddressBundle) Fields() []string {
	return []string{b.ViaType, b.Street, b.Number, b.PostalCode, b.Locality, b.Province, b.PopulationEntity, b.Country}
}

// IsEmpty reports whether the bundle came from a missing address.
func (b AddressBundle) IsEmpty() bool { return b == AddressBundle{} }

// Line renders "Calle Mayor 5, 30800 Lorca (Murcia)", or Empty when there is
// no postal data.
func (b AddressBundle) Line() string {
	street := strings.TrimSpace(strings.Join(nonEmpty(b.ViaType, b.Street, b.Number), " "))
	place := strings.TrimSpace(strings.Join(nonEmpty(b.PostalCode, b.Locality), " "))
	if b.Province != "" {
		place = strings.TrimSpace(place + " (" + b.Province + ")")
	}
	line := strings.Join(nonEmpty(street, place), ", ")
	if line == "" {
		return Empty
	}
	return line
}

func nonEmpty(ss ...string) []string {
	out := ss[:0:0]
	for _, s := range ss {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
