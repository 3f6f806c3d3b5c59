package calculator

import (
	"fmt"
	"testing"
)

func TestHistoryCapsAtLimit(t *testing.T) {
	history := NewHistory(10)
	for i := 0; i < 15; i++ {
		history.Push(TariffCalculation{ID: fmt.Sprintf("calc-%d", i)})
	}

	entries := history.List()
	if len(entries) != 10 {
		t.Fatalf("expected 10 entries, got %d", len(entries))
	}
	if entries[0].ID != "calc-14" {
		t.Fatalf("expected newest first, got %s", entries[0].ID)
	}
	if entries[9].ID != "calc-5" {
		t.Fatalf("expected oldest surviving entry calc-5, got %s", entries[9].ID)
	}
}

func TestHistoryListReturnsCopy(t *testing.T) {
	history := NewHistory(10)
	history.Push(TariffCalculation{ID: "original"})

	entries := history.List()
	entries[0].ID = "mutated"

	if history.List()[0].ID != "original" {
		t.Fatal("list exposed internal storage")
	}
}
