package report

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/routr/backend/internal/domain"
	"github.com/routr/backend/internal/validate"
)

// ErrSchema is returned by Parse when the reply is valid JSON but a required
// field is missing or malformed.
var ErrSchema = errors.New("reply does not match report schema")

// The wire types use pointers so that an absent field can be told apart from
// a zero value: `required` on a pointer fails only when the key was missing
// (or null).
type wireReport struct {
	Journey []wireJourney `json:"journey" validate:"required,dive"`
	Routes  []wireRoute   `json:"routes" validate:"required,dive"`
}

type wireJourney struct {
	CustomerName *string `json:"customer_name" validate:"required"`
	City         *string `json:"city" validate:"required"`
	State        *string `json:"state" validate:"required"`
	PalletsIn    *int    `json:"pallets_in" validate:"required"`
	PalletsOut   *int    `json:"pallets_out" validate:"required"`
	TimeIn       *string `json:"time_in" validate:"required,datetime=15:04"`
	TimeOut      *string `json:"time_out" validate:"required,datetime=15:04"`
	Mileage      *figure `json:"mileage" validate:"required"`
	StartRoute   *string `json:"start_route" validate:"required"`
	EndRoute     *string `json:"end_route" validate:"required"`
	Comments     *string `json:"comments" validate:"required"`
}

type wireRoute struct {
	RouteName         *string  `json:"route_name" validate:"required"`
	Route             []string `json:"route" validate:"required"`
	Distance          *int     `json:"distance" validate:"required"`
	CumulativeMileage *int     `json:"cumulative_mileage" validate:"required"`
}

// figure is free text that also accepts a bare JSON number, since models
// often emit mileage as 42 rather than "42".
type figure string

func (f *figure) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = figure(s)
		return nil
	}
	if _, err := strconv.ParseFloat(string(b), 64); err != nil {
		return fmt.Errorf("mileage must be a string or number, got %s", b)
	}
	*f = figure(b)
	return nil
}

var schemaValidator = validate.New()

// Parse decodes and validates a completion reply. It never fills in defaults:
// any missing or mistyped field makes it fail.
func Parse(raw string) (domain.Report, error) {
	var w wireReport
	if err := json.Unmarshal([]byte(stripFence(raw)), &w); err != nil {
		return domain.Report{}, fmt.Errorf("report.Parse: decode: %w", err)
	}
	if err := schemaValidator.Struct(w); err != nil {
		return domain.Report{}, fmt.Errorf("report.Parse: %w: %s", ErrSchema, validate.Summary(err))
	}

	out := domain.Report{
		Journey: make([]domain.JourneyEntry, len(w.Journey)),
		Routes:  make([]domain.RouteLeg, len(w.Routes)),
	}
	for i, j := range w.Journey {
		out.Journey[i] = domain.JourneyEntry{
			CustomerName: *j.CustomerName,
			City:         *j.City,
			State:        *j.State,
			PalletsIn:    *j.PalletsIn,
			PalletsOut:   *j.PalletsOut,
			TimeIn:       *j.TimeIn,
			TimeOut:      *j.TimeOut,
			Mileage:      string(*j.Mileage),
			StartRoute:   *j.StartRoute,
			EndRoute:     *j.EndRoute,
			Comments:     *j.Comments,
		}
	}
	for i, r := range w.Routes {
		out.Routes[i] = domain.RouteLeg{
			RouteName:         *r.RouteName,
			Route:             r.Route,
			Distance:          *r.Distance,
			CumulativeMileage: *r.CumulativeMileage,
		}
	}
	return out, nil
}

// stripFence removes a surrounding ```json fence, which some models add even
// in JSON mode.
func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
