package handler

import (
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"github.com/routr/backend/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"trip_id", "date", "company_name", "driver_name", "truck_no", "trailer_no",
	"start_location", "end_location", "starting_mileage", "ending_mileage",
	"stop_position", "customer_name", "customer_address", "pallets_in", "pallets_out",
	"stop_comments", "fuel_invoice_number", "fuel_gallons", "fuel_dollar_amount",
}

// ExportRow is one row of the JSON export. Stop fields are omitted for trips
// without stops and fuel fields for trips without a fuel purchase.
type ExportRow struct {
	TripID          string `json:"trip_id"`
	Date            string `json:"date"`
	CompanyName     string `json:"company_name"`
	DriverName      string `json:"driver_name"`
	TruckNo         string `json:"truck_no"`
	TrailerNo       string `json:"trailer_no"`
	StartLocation   string `json:"start_location"`
	EndLocation     string `json:"end_location"`
	StartMileage    string `json:"starting_mileage"`
	EndMileage      string `json:"ending_mileage"`
	StopPosition    *int   `json:"stop_position,omitempty"`
	CustomerName    string `json:"customer_name,omitempty"`
	CustomerAddress string `json:"customer_address,omitempty"`
	PalletsIn       *int   `json:"pallets_in,omitempty"`
	PalletsOut      *int   `json:"pallets_out,omitempty"`
	StopComments    string `json:"stop_comments,omitempty"`
	FuelInvoice     string `json:"fuel_invoice_number,omitempty"`
	FuelGallons     string `json:"fuel_gallons,omitempty"`
	FuelDollars     string `json:"fuel_dollar_amount,omitempty"`
}

// GetExport handles GET /export.
// It returns a flat table of every trip and stop, with the trip's fuel
// purchase repeated on each row. Use ?format=csv to receive CSV; default is JSON.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format != "" && format != "json" && format != "csv" {
		writeJSON(w, http.StatusBadRequest, errorBody("bad_request", "format must be json or csv"))
		return
	}

	rows, err := s.export.Export(r.Context())
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}

	if format == "csv" {
		filename := "routr-export-" + time.Now().UTC().Format("20060102") + ".csv"
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
		w.WriteHeader(http.StatusOK)

		cw := csv.NewWriter(w)
		_ = cw.Write(csvHeaders)
		for _, row := range rows {
			_ = cw.Write(exportRowToCSV(row))
		}
		cw.Flush()
		return
	}

	out := make([]ExportRow, len(rows))
	for i, row := range rows {
		out[i] = exportRowToJSON(row)
	}
	writeJSON(w, http.StatusOK, out)
}

func exportRowToJSON(r domain.ExportRow) ExportRow {
	row := ExportRow{
		TripID:        r.TripID,
		Date:          r.TripDate,
		CompanyName:   r.CompanyName,
		DriverName:    r.DriverName,
		TruckNo:       r.TruckNo,
		TrailerNo:     r.TrailerNo,
		StartLocation: r.StartLocation,
		EndLocation:   r.EndLocation,
		StartMileage:  r.StartMileage,
		EndMileage:    r.EndMileage,
		FuelInvoice:   r.FuelInvoice,
		FuelGallons:   r.FuelGallons,
		FuelDollars:   r.FuelDollars,
	}
	if r.CustomerName != "" {
		pos, in, out := r.StopPosition, r.PalletsIn, r.PalletsOut
		row.StopPosition = &pos
		row.CustomerName = r.CustomerName
		row.CustomerAddress = r.CustomerAddress
		row.PalletsIn = &in
		row.PalletsOut = &out
		row.StopComments = r.StopComments
	}
	return row
}

// exportRowToCSV encodes a row as a flat string slice in csvHeaders order.
// Stop columns are empty for trips without stops.
func exportRowToCSV(r domain.ExportRow) []string {
	var pos, in, out string
	if r.CustomerName != "" {
		pos = strconv.Itoa(r.StopPosition)
		in = strconv.Itoa(r.PalletsIn)
		out = strconv.Itoa(r.PalletsOut)
	}
	return []string{
		r.TripID, r.TripDate, r.CompanyName, r.DriverName, r.TruckNo, r.TrailerNo,
		r.StartLocation, r.EndLocation, r.StartMileage, r.EndMileage,
		pos, r.CustomerName, r.CustomerAddress, in, out,
		r.StopComments, r.FuelInvoice, r.FuelGallons, r.FuelDollars,
	}
}
