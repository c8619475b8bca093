package entities

import "time"

// Address is a postal and contact address shared by several entities.
type Address struct {
	ID               uint   `gorm:"primaryKey" json:"id"`
	ViaType          string `json:"tipo_via"`
	StreetName       string `json:"nombre_via"`
	Number           string `json:"numero"`
	Block            string `json:"bloque"`
	Portal           string `json:"portal"`
	Stair            string `json:"escalera"`
	Floor            string `json:"planta"`
	Door             string `json:"puerta"`
	PopulationEntity string `json:"entidad_poblacion"`
	Locality         string `json:"localidad" gorm:"index"`
	Province         string `json:"provincia" gorm:"index"`
	Country          string `json:"pais" gorm:"default:ES"`
	PostalCode       string `json:"codigo_postal"`
	Phone            string `json:"telefono"`
	Mobile           string `json:"movil"`
	Email            string `json:"email"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Empty reports whether no postal field is set.
func (a *Address) Empty() bool {
	return a == nil || (a.ViaType == "" && a.StreetName == "" && a.Number == "" &&
		a.Locality == "" && a.Province == "" && a.PostalCode == "")
}

// Person is a natural or legal person. NIF is not unique.
type Person struct {
	ID        uint     `gorm:"primaryKey" json:"id"`
	Name      string   `json:"nombre" gorm:"not null"`
	NIF       string   `json:"nif" gorm:"index"`
	Sex       string   `json:"sexo"` // H|M|O
	AddressID *uint    `json:"direccion_id"`
	Address   *Address `json:"direccion,omitempty"`
	Phone     string   `json:"telefono"`
	Mobile    string   `json:"movil"`
	Email     string   `json:"email"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
