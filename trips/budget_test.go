package trips

import (
	"testing"

	"globetrotter/models"
)

func TestSummarize(t *testing.T) {
	trip := &models.Trip{Budget: 1000}
	items := []models.ItineraryItem{
		{Type: models.ItemTypeTransport, Cost: 450},
		{Type: models.ItemTypeStay, Cost: 300},
		{Type: models.ItemTypeStay, Cost: 150},
		{Type: models.ItemTypeActivity, Cost: 0},
	}

	s := Summarize(trip, items)

	if s.TotalSpent != 900 {
		t.Fatalf("total: got %v, want 900", s.TotalSpent)
	}
	if s.Remaining != 100 {
		t.Fatalf("remaining: got %v, want 100", s.Remaining)
	}
	if s.ByType[models.ItemTypeStay] != 450 {
		t.Fatalf("stay total: got %v, want 450", s.ByType[models.ItemTypeStay])
	}
	if s.ItemCount != 4 {
		t.Fatalf("count: got %d, want 4", s.ItemCount)
	}
}

func TestSummarizeOverBudget(t *testing.T) {
	trip := &models.Trip{Budget: 100}
	items := []models.ItineraryItem{{Type: models.ItemTypeFood, Cost: 250}}

	s := Summarize(trip, items)
	if s.Remaining != -150 {
		t.Fatalf("remaining: got %v, want -150", s.Remaining)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(&models.Trip{Budget: 500}, nil)
	if s.TotalSpent != 0 || s.Remaining != 500 || s.ItemCount != 0 {
		t.Fatalf("unexpected summary: %+v", s)
	}
}
