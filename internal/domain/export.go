package domain

// ExportRow is a single row in the full-data export.
// It is a flat, denormalized view: one row per stop, with trip and fuel
// purchase fields repeated for every stop on that trip. Trips with no stops
// yield one row with zero values for all stop fields.
type ExportRow struct {
	// Trip fields, repeated for every stop on the trip.
	TripID        string
	TripDate      string // "2006-01-02"
	CompanyName   string
	DriverName    string
	TruckNo       string
	TrailerNo     string
	StartLocation string
	EndLocation   string
	StartMileage  string
	EndMileage    string

	// Stop fields, zero values when the trip has no stops.
	StopPosition    int
	CustomerName    string
	CustomerAddress string
	PalletsIn       int
	PalletsOut      int
	StopComments    string

	// Fuel fields, empty when the trip has no linked fuel purchase.
	FuelInvoice string
	FuelGallons string
	FuelDollars string
}
