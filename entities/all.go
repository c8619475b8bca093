package entities

// All lists every model in migration order.
func All() []any {
	return []any{
		&Address{},
		&Person{},
		&Titleholder{},
		&Holding{},
		&Plot{},
		&Vehicle{},
		&Recipient{},
		&Carrier{},
		&Personnel{},
		&Advisor{},
		&ApplicationEquipment{},
		&Activity{},
		&TreatedSeed{},
		&LabAnalysis{},
		&ProductMovement{},
		&DATDocument{},
		&TransportRecord{},
	}
}
