package itinerary

import (
	"testing"

	"globetrotter/models"
)

func TestSortItemsNumericTimes(t *testing.T) {
	items := []models.ItineraryItem{
		{ItemID: "a", Day: 2, StartTime: "08:00"},
		{ItemID: "b", Day: 1, StartTime: "10:00"},
		{ItemID: "c", Day: 1, StartTime: "9:30"},
		{ItemID: "d", Day: 1, StartTime: ""},
		{ItemID: "e", Day: 1, StartTime: "09:45"},
	}

	SortItems(items)

	want := []string{"d", "c", "e", "b", "a"}
	for i, id := range want {
		if items[i].ItemID != id {
			t.Fatalf("position %d: got %s, want %s", i, items[i].ItemID, id)
		}
	}
}

func TestSortItemsStableWithinSameSlot(t *testing.T) {
	items := []models.ItineraryItem{
		{ItemID: "first", Day: 1, StartTime: "bogus"},
		{ItemID: "second", Day: 1, StartTime: ""},
	}

	SortItems(items)

	if items[0].ItemID != "first" || items[1].ItemID != "second" {
		t.Fatalf("order changed for equal keys: %s, %s", items[0].ItemID, items[1].ItemID)
	}
}
