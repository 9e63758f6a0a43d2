package domain

import (
	"encoding/csv"
	"io"
	"strconv"
)

// ExportRow is a single row in the flat (CSV) export.
// It is a denormalized view: one row per itinerary item, with trip fields
// repeated for every item on that trip. Trips with no items yield one row
// with empty item fields.
type ExportRow struct {
	// Trip fields, repeated for every item on the trip.
	TripID     string
	TripName   string
	Location   string
	Start      string
	End        string
	Category   Category
	ImageCount int

	// Item fields, empty when the trip has no itinerary.
	ItemTime string
	ItemText string
	ItemDone bool
}

// ExportHeaders is the header row of the CSV export.
var ExportHeaders = []string{
	"trip_id", "trip_name", "location", "start", "end", "category", "images",
	"item_time", "item_text", "item_done",
}

// Record encodes r as a CSV record matching ExportHeaders.
func (r ExportRow) Record() []string {
	done := ""
	if r.ItemText != "" || r.ItemTime != "" {
		done = strconv.FormatBool(r.ItemDone)
	}
	return []string{
		r.TripID,
		r.TripName,
		r.Location,
		r.Start,
		r.End,
		string(r.Category),
		strconv.Itoa(r.ImageCount),
		r.ItemTime,
		r.ItemText,
		done,
	}
}

// ExportRows flattens trips into rows, preserving trip and itinerary order.
func ExportRows(trips []Trip) []ExportRow {
	var rows []ExportRow
	for _, t := range trips {
		base := ExportRow{
			TripID:     t.ID,
			TripName:   t.Name,
			Location:   t.Location,
			Start:      t.Start,
			End:        t.End,
			Category:   t.Category,
			ImageCount: len(t.Images),
		}
		if len(t.Itinerary) == 0 {
			rows = append(rows, base)
			continue
		}
		for _, it := range t.Itinerary {
			row := base
			row.ItemTime = it.Time
			row.ItemText = it.Text
			row.ItemDone = it.Done
			rows = append(rows, row)
		}
	}
	return rows
}

// WriteCSV writes the header row followed by one record per row.
func WriteCSV(w io.Writer, rows []ExportRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ExportHeaders); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write(r.Record()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
