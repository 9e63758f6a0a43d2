package domain

import "math"

// ItineraryItem is one scheduled activity. Order within the owning trip's
// Itinerary is the schedule order.
type ItineraryItem struct {
	ID   string `json:"id"`
	Time string `json:"time"` // optional time of day, e.g. "09:30"
	Text string `json:"text"`
	Done bool   `json:"done"`
}

// ItemIndex returns the position of the item with the given id, or -1.
func ItemIndex(items []ItineraryItem, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

// Reorder moves the item movedID so that it sits immediately before beforeID.
// The moved item is removed first; the target's index is then looked up in
// the shortened slice. It reports false, leaving items untouched, when either
// id is missing, both name the same item, or the moved item already sits
// right before the target.
func Reorder(items []ItineraryItem, movedID, beforeID string) ([]ItineraryItem, bool) {
	if movedID == beforeID {
		return items, false
	}
	from := ItemIndex(items, movedID)
	if from < 0 || ItemIndex(items, beforeID) < 0 {
		return items, false
	}

	moved := items[from]
	rest := make([]ItineraryItem, 0, len(items))
	rest = append(rest, items[:from]...)
	rest = append(rest, items[from+1:]...)

	to := ItemIndex(rest, beforeID)
	if to == from {
		return items, false
	}
	out := make([]ItineraryItem, 0, len(items))
	out = append(out, rest[:to]...)
	out = append(out, moved)
	out = append(out, rest[to:]...)
	return out, true
}

// CompletionPercent is round(100 * done / total), or 0 for an empty itinerary.
func CompletionPercent(items []ItineraryItem) int {
	if len(items) == 0 {
		return 0
	}
	done := 0
	for _, it := range items {
		if it.Done {
			done++
		}
	}
	return int(math.Round(float64(done) * 100 / float64(len(items))))
}
