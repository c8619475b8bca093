package entities

// Sex values as stored (H|M|O).
const (
	SexMale   = "H"
	SexFemale = "M"
	SexOther  = "O"
)

// Identity document types.
const (
	DocDNI      = "DNI"
	DocNIE      = "NIE"
	DocPassport = "PASAPORTE"
)

// Vehicle types.
const (
	VehicleTractor = "TRACTOR"
	VehicleCar     = "COCHE"
	VehicleTrailer = "REMOLQUE"
	VehicleVan     = "FURGONETA"
	VehicleOther   = "OTRO"
)

// Representation decides who signs for the holding.
const (
	RepresentationOwner          = "PROPIETARIO"
	RepresentationRepresentative = "REPRESENTANTE"
)

// Activity types of the logbook diary.
const (
	ActivitySeeding       = "SIEMBRA"
	ActivityIrrigation    = "RIEGO"
	ActivityFertilization = "ABONADO"
	ActivityTreatment     = "TRATAMIENTO"
	ActivityHarvest       = "COSECHA"
	ActivityOther         = "OTRO"
)

// Default workflow states.
const (
	ValidationPending = "pendiente"
	TransportPending  = "pendiente"
	TransportIssued   = "emitido"
)

var vehicleTypes = map[string]bool{
	VehicleTractor: true, VehicleCar: true, VehicleTrailer: true, VehicleVan: true, VehicleOther: true,
}

// ValidVehicleType reports whether t is one of the known vehicle types.
func ValidVehicleType(t string) bool { return vehicleTypes[t] }

// ValidDocType accepts the empty string as "not given".
func ValidDocType(t string) bool {
	switch t {
	case "", DocDNI, DocNIE, DocPassport:
		return true
	}
	return false
}

// ValidSex accepts the empty string as "not given".
func ValidSex(s string) bool {
	switch s {
	case "", SexMale, SexFemale, SexOther:
		return true
	}
	return false
}
