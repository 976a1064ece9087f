package domain

import (
	"testing"
	"time"
)

func TestRuleForKnownKeys(t *testing.T) {
	r := RuleFor("revisione")
	if r.Kind != RuleFixedCalendar || r.Years != 2 {
		t.Fatalf("revisione rule = %+v, want fixed 2-year calendar", r)
	}
	if r.Label != "Revisione" {
		t.Fatalf("revisione label = %q", r.Label)
	}

	for _, key := range []string{"assicurazione", "bollo"} {
		r := RuleFor(key)
		if r.Kind != RuleFixedCalendar || r.Years != 1 {
			t.Errorf("%s rule = %+v, want fixed 1-year calendar", key, r)
		}
	}

	for _, key := range []string{"tagliando", "gomme", "trasmissione", "liquido_freni"} {
		if r := RuleFor(key); r.Kind != RuleDistance {
			t.Errorf("%s rule kind = %v, want RuleDistance", key, r.Kind)
		}
	}
}

func TestRuleForUnknownKeyFallsBackToVariableCalendar(t *testing.T) {
	r := RuleFor("catena")
	if r.Kind != RuleVariableCalendar {
		t.Fatalf("unknown key rule kind = %v, want RuleVariableCalendar", r.Kind)
	}
	if r.Label != "Catena" {
		t.Fatalf("unknown key label = %q, want %q", r.Label, "Catena")
	}

	if r := RuleFor("liquido_frizione"); r.Label != "Liquido Frizione" {
		t.Fatalf("multi-word label = %q, want %q", r.Label, "Liquido Frizione")
	}
}

func TestDecodeAppState(t *testing.T) {
	blob := []byte(`{"bikes":[{"name":"Fazer 600","maintenance":{
		"tagliando":{"lastKm":11600,"intervalKm":12000},
		"bollo":{"lastDate":"2024-08-01"},
		"catena":{"lastDate":"2024-01-15","intervalMonths":6}
	}}]}`)

	state, err := DecodeAppState(blob)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(state.Bikes) != 1 {
		t.Fatalf("expected 1 vehicle, got %d", len(state.Bikes))
	}

	bike := state.Bikes[0]
	if bike.Name != "Fazer 600" {
		t.Fatalf("vehicle name = %q", bike.Name)
	}
	if len(bike.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(bike.Items))
	}

	tagliando := bike.Items["tagliando"]
	if tagliando.LastKm != 11600 || tagliando.IntervalKm != 12000 {
		t.Fatalf("tagliando = %+v", tagliando)
	}

	// Missing fields decode to zero values, not errors.
	bollo := bike.Items["bollo"]
	if bollo.IntervalKm != 0 || bollo.LastDate != "2024-08-01" {
		t.Fatalf("bollo = %+v", bollo)
	}
}

func TestDecodeAppStateEmptyInput(t *testing.T) {
	state, err := DecodeAppState(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(state.Bikes) != 0 {
		t.Fatalf("expected empty state, got %d vehicles", len(state.Bikes))
	}
}

func TestDecodeAppStateMalformedBlob(t *testing.T) {
	if _, err := DecodeAppState([]byte(`{"bikes":`)); err == nil {
		t.Fatal("expected decode error for truncated blob")
	}
}

func TestAlertKeyIsStablePerDay(t *testing.T) {
	day := time.Date(2025, 5, 28, 0, 0, 0, 0, time.UTC)
	a := Alert{VehicleName: "Fazer 600", ItemKey: "bollo", Message: "Bollo tra 3 giorni", Day: day}

	want := "Fazer 600|bollo|2025-05-28"
	if a.Key() != want {
		t.Fatalf("Key = %q, want %q", a.Key(), want)
	}
}
