package entity

// Per-seat fares by bus type. Single source of truth: the reservation
// service and the revenue reports both price through FareFor.
const (
	FareAC    int64 = 800
	FareNonAC int64 = 500
)

// FareFor returns the per-seat fare for a bus type.
func FareFor(busType BusType) int64 {
	if busType == BusTypeAC {
		return FareAC
	}
	return FareNonAC
}
