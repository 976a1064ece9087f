package services

import (
	"testing"
	"time"

	"garage-tracker-service/internal/domain"
)

func singleItemState(key string, item domain.MaintenanceItem) domain.AppState {
	return domain.AppState{Bikes: []domain.Vehicle{{
		Name:  "Fazer 600",
		Items: map[string]domain.MaintenanceItem{key: item},
	}}}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestEvaluateDistanceRuleInsideWindow(t *testing.T) {
	state := singleItemState("tagliando", domain.MaintenanceItem{LastKm: 11600, IntervalKm: 12000})

	alerts := EvaluateMaintenance(state, date(2025, 5, 28))
	if len(alerts) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(alerts))
	}

	a := alerts[0]
	if a.Message != "Tagliando tra 400 km" {
		t.Fatalf("message = %q", a.Message)
	}
	if a.VehicleName != "Fazer 600" || a.ItemKey != "tagliando" {
		t.Fatalf("alert identity = %q/%q", a.VehicleName, a.ItemKey)
	}
}

func TestEvaluateDistanceRuleBounds(t *testing.T) {
	today := date(2025, 5, 28)

	// remaining = 600: outside the 500 km window.
	state := singleItemState("tagliando", domain.MaintenanceItem{LastKm: 11400, IntervalKm: 12000})
	if alerts := EvaluateMaintenance(state, today); len(alerts) != 0 {
		t.Fatalf("remaining=600 produced %d alerts, want 0", len(alerts))
	}

	// remaining = 0: due now, not "due soon".
	state = singleItemState("tagliando", domain.MaintenanceItem{LastKm: 12000, IntervalKm: 12000})
	if alerts := EvaluateMaintenance(state, today); len(alerts) != 0 {
		t.Fatalf("remaining=0 produced %d alerts, want 0", len(alerts))
	}

	// remaining = 500: the inclusive upper bound.
	state = singleItemState("gomme", domain.MaintenanceItem{LastKm: 11500, IntervalKm: 12000})
	alerts := EvaluateMaintenance(state, today)
	if len(alerts) != 1 {
		t.Fatalf("remaining=500 produced %d alerts, want 1", len(alerts))
	}
	if alerts[0].Message != "Gomme tra 500 km" {
		t.Fatalf("message = %q", alerts[0].Message)
	}

	// intervalKm = 0: item not distance-configured, skipped.
	state = singleItemState("tagliando", domain.MaintenanceItem{LastKm: 100})
	if alerts := EvaluateMaintenance(state, today); len(alerts) != 0 {
		t.Fatalf("intervalKm=0 produced %d alerts, want 0", len(alerts))
	}
}

func TestEvaluateFixedCalendarRule(t *testing.T) {
	// Revisione: fixed 2-year interval. lastDate 2023-06-01 -> expiry 2025-06-01.
	state := singleItemState("revisione", domain.MaintenanceItem{LastDate: "2023-06-01"})

	alerts := EvaluateMaintenance(state, date(2025, 5, 28))
	if len(alerts) != 1 {
		t.Fatalf("expected 1 alert inside window, got %d", len(alerts))
	}
	if alerts[0].Message != "Revisione tra 4 giorni" {
		t.Fatalf("message = %q", alerts[0].Message)
	}

	// Past expiry: overdue items stay silent.
	if alerts := EvaluateMaintenance(state, date(2025, 6, 2)); len(alerts) != 0 {
		t.Fatalf("overdue item produced %d alerts, want 0", len(alerts))
	}

	// Before the warning window opens.
	if alerts := EvaluateMaintenance(state, date(2025, 5, 20)); len(alerts) != 0 {
		t.Fatalf("outside window produced %d alerts, want 0", len(alerts))
	}

	// On expiry day itself: strict upper bound.
	if alerts := EvaluateMaintenance(state, date(2025, 6, 1)); len(alerts) != 0 {
		t.Fatalf("expiry day produced %d alerts, want 0", len(alerts))
	}
}

func TestEvaluateOneYearCalendarKinds(t *testing.T) {
	// Assicurazione and bollo use a fixed 1-year interval.
	state := singleItemState("assicurazione", domain.MaintenanceItem{LastDate: "2024-08-10"})

	alerts := EvaluateMaintenance(state, date(2025, 8, 7))
	if len(alerts) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(alerts))
	}
	if alerts[0].Message != "Assicurazione tra 3 giorni" {
		t.Fatalf("message = %q", alerts[0].Message)
	}
}

func TestEvaluateVariableCalendarRule(t *testing.T) {
	// Unknown key with 6-month interval: expiry 2024-07-15, window opens after 2024-07-08.
	item := domain.MaintenanceItem{LastDate: "2024-01-15", IntervalMonths: 6}
	state := singleItemState("catena", item)

	alerts := EvaluateMaintenance(state, date(2024, 7, 10))
	if len(alerts) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(alerts))
	}
	if alerts[0].Message != "Catena tra 5 giorni" {
		t.Fatalf("message = %q", alerts[0].Message)
	}

	// Midnight on the window boundary: strict lower bound.
	if alerts := EvaluateMaintenance(state, date(2024, 7, 8)); len(alerts) != 0 {
		t.Fatalf("window boundary produced %d alerts, want 0", len(alerts))
	}

	// Later the same day the evaluator does run: days truncate toward zero.
	midday := time.Date(2024, 7, 8, 9, 0, 0, 0, time.UTC)
	alerts = EvaluateMaintenance(state, midday)
	if len(alerts) != 1 {
		t.Fatalf("expected 1 alert at midday, got %d", len(alerts))
	}
	if alerts[0].Message != "Catena tra 6 giorni" {
		t.Fatalf("message = %q", alerts[0].Message)
	}
}

func TestEvaluateVariableCalendarDefaultsToTwelveMonths(t *testing.T) {
	state := singleItemState("carburante", domain.MaintenanceItem{LastDate: "2024-03-01"})

	// expiry 2025-03-01; 2025-02-25 is inside the 7-day window.
	alerts := EvaluateMaintenance(state, date(2025, 2, 25))
	if len(alerts) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(alerts))
	}
	if alerts[0].Message != "Carburante tra 4 giorni" {
		t.Fatalf("message = %q", alerts[0].Message)
	}
}

func TestEvaluateSkipsMalformedItemsIndividually(t *testing.T) {
	state := domain.AppState{Bikes: []domain.Vehicle{{
		Name: "Fazer 600",
		Items: map[string]domain.MaintenanceItem{
			"revisione": {LastDate: "not-a-date"},
			"tagliando": {LastKm: 11600, IntervalKm: 12000},
			"bollo":     {}, // no lastDate at all
		},
	}}}

	alerts := EvaluateMaintenance(state, date(2025, 5, 28))
	if len(alerts) != 1 {
		t.Fatalf("expected exactly the valid alert, got %d", len(alerts))
	}
	if alerts[0].ItemKey != "tagliando" {
		t.Fatalf("surviving alert = %q, want tagliando", alerts[0].ItemKey)
	}
}

func TestEvaluateEmptyStateYieldsNoAlerts(t *testing.T) {
	if alerts := EvaluateMaintenance(domain.AppState{}, date(2025, 5, 28)); len(alerts) != 0 {
		t.Fatalf("empty state produced %d alerts", len(alerts))
	}

	noLedger := domain.AppState{Bikes: []domain.Vehicle{{Name: "Fazer 600"}}}
	if alerts := EvaluateMaintenance(noLedger, date(2025, 5, 28)); len(alerts) != 0 {
		t.Fatalf("ledger-less vehicle produced %d alerts", len(alerts))
	}
}

func TestEvaluateCoversAllVehicles(t *testing.T) {
	state := domain.AppState{Bikes: []domain.Vehicle{
		{Name: "Fazer 600", Items: map[string]domain.MaintenanceItem{
			"tagliando": {LastKm: 11600, IntervalKm: 12000},
		}},
		{Name: "Tenere 700", Items: map[string]domain.MaintenanceItem{
			"gomme": {LastKm: 7800, IntervalKm: 8000},
		}},
	}}

	alerts := EvaluateMaintenance(state, date(2025, 5, 28))
	if len(alerts) != 2 {
		t.Fatalf("expected 2 alerts, got %d", len(alerts))
	}
	if alerts[0].VehicleName != "Fazer 600" || alerts[1].VehicleName != "Tenere 700" {
		t.Fatalf("alert order = %q, %q", alerts[0].VehicleName, alerts[1].VehicleName)
	}
}
