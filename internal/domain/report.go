package domain

// JourneyEntry is the generated itinerary line for one stop of a trip.
// TimeIn and TimeOut are "HH:MM" strings; Mileage is the model's estimate
// as free text (e.g. "42" or "42 miles").
type JourneyEntry struct {
	CustomerName string `json:"customer_name"`
	City         string `json:"city"`
	State        string `json:"state"`
	PalletsIn    int    `json:"pallets_in"`
	PalletsOut   int    `json:"pallets_out"`
	TimeIn       string `json:"time_in"`
	TimeOut      string `json:"time_out"`
	Mileage      string `json:"mileage"`
	StartRoute   string `json:"start_route"`
	EndRoute     string `json:"end_route"`
	Comments     string `json:"comments"`
}

// RouteLeg is one inferred leg between consecutive locations, with
// turn-by-turn instructions.
type RouteLeg struct {
	RouteName         string   `json:"route_name"`
	Route             []string `json:"route"`
	Distance          int      `json:"distance"`
	CumulativeMileage int      `json:"cumulative_mileage"`
}

// Usage is the token accounting reported by a completion call.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
}

// Report is the structured itinerary generated for a trip.
// It is never persisted.
type Report struct {
	Journey []JourneyEntry `json:"journey"`
	Routes  []RouteLeg     `json:"routes"`
	Usage   Usage          `json:"usage"`
	// Cost is the nominal dollar cost of the completion call.
	Cost float64 `json:"cost"`
}
