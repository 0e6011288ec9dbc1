// Package report generates trip itineraries by asking a hosted LLM completion
// API to expand a trip's stops into timed, routed journey entries.
//
// The flow is: NewInput (trip → prompt data) → BuildPrompt → Completer →
// Parse (strict schema check) → Cost. Generator ties the steps together.
package report

import (
	"strings"
	"unicode"

	"github.com/routr/backend/internal/domain"
)

// Input is everything the prompt embeds for one trip.
type Input struct {
	StartLocation string
	EndLocation   string
	// StartMileage and EndMileage are fixed-point odometer readings as text.
	StartMileage string
	EndMileage   string
	// DepartureTime is the trip's "HH:MM" start time, or empty.
	DepartureTime string
	Stops         []StopInput
}

// StopInput is one stop as serialised into the prompt.
type StopInput struct {
	CustomerName    string `json:"customer_name"`
	CustomerAddress string `json:"customer_address"`
	City            string `json:"city"`
	State           string `json:"state"`
	PalletsIn       int    `json:"pallets_in"`
	PalletsOut      int    `json:"pallets_out"`
	Comments        string `json:"comments"`
}

// NewInput builds the prompt input for trip, keeping stop order.
func NewInput(trip domain.TripRecord) Input {
	in := Input{
		StartLocation: trip.StartLocation,
		EndLocation:   trip.EndLocation,
		StartMileage:  trip.StartMileage.StringFixed(2),
		EndMileage:    trip.EndMileage.StringFixed(2),
		DepartureTime: trip.StartTime.String(),
		Stops:         make([]StopInput, 0, len(trip.Stops)),
	}
	for _, s := range trip.Stops {
		city, state := SplitCityState(s.CustomerAddress)
		in.Stops = append(in.Stops, StopInput{
			CustomerName:    s.CustomerName,
			CustomerAddress: s.CustomerAddress,
			City:            city,
			State:           state,
			PalletsIn:       s.PalletsIn,
			PalletsOut:      s.PalletsOut,
			Comments:        s.Comments,
		})
	}
	return in
}

// SplitCityState extracts city and state from a US-style address such as
// "12 Main St, Springfield, OH 45501". The city is the second-to-last comma
// separated part; the state is the leading alphabetic token of the last part.
// Either result is empty when the address does not have that shape.
func SplitCityState(address string) (city, state string) {
	var parts []string
	for _, p := range strings.Split(address, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) < 2 {
		return "", ""
	}

	city = parts[len(parts)-2]
	if fields := strings.Fields(parts[len(parts)-1]); len(fields) > 0 && isAlpha(fields[0]) {
		state = strings.ToUpper(fields[0])
	}
	if strings.IndexFunc(city, unicode.IsLetter) < 0 {
		city = ""
	}
	return city, state
}

func isAlpha(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return s != ""
}
