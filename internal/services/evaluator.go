package services

import (
	"fmt"
	"sort"
	"time"

	"garage-tracker-service/internal/domain"
)

const (
	// Warning window for distance-ruled items, in the interval's unit.
	distanceWarnKm = 500
	// Warning window for calendar-ruled items.
	calendarWarnDays = 7

	ledgerDateLayout = "2006-01-02"
)

// EvaluateMaintenance inspects every vehicle's ledger and returns at most one
// alert per item whose remaining distance or time falls inside the warning
// window. The state is read-only; a malformed item is skipped without
// affecting its siblings, and an empty state yields no alerts.
//
// The evaluator performs no de-duplication across invocations: each alert
// carries a (vehicle, item, day) identity and idempotent presentation is the
// dispatcher's concern.
func EvaluateMaintenance(state domain.AppState, today time.Time) []domain.Alert {
	alerts := []domain.Alert{}

	for _, bike := range state.Bikes {
		if len(bike.Items) == 0 {
			continue
		}

		// Deterministic item order keeps output stable across runs.
		keys := make([]string, 0, len(bike.Items))
		for k := range bike.Items {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, key := range keys {
			alert, due := evaluateItem(bike.Name, key, bike.Items[key], today)
			if due {
				alerts = append(alerts, alert)
			}
		}
	}

	return alerts
}

func evaluateItem(vehicle, key string, item domain.MaintenanceItem, today time.Time) (domain.Alert, bool) {
	rule := domain.RuleFor(key)

	var message string
	switch rule.Kind {
	case domain.RuleDistance:
		if item.IntervalKm <= 0 {
			return domain.Alert{}, false
		}
		remaining := item.IntervalKm - item.LastKm
		if remaining <= 0 || remaining > distanceWarnKm {
			return domain.Alert{}, false
		}
		message = fmt.Sprintf("%s tra %d km", rule.Label, remaining)

	case domain.RuleFixedCalendar, domain.RuleVariableCalendar:
		last, err := parseLedgerDate(item.LastDate)
		if err != nil {
			// Absent or unparseable date: skip silently, no alert.
			return domain.Alert{}, false
		}

		var expiry time.Time
		if rule.Kind == domain.RuleFixedCalendar {
			expiry = last.AddDate(rule.Years, 0, 0)
		} else {
			months := item.IntervalMonths
			if months <= 0 {
				months = 12
			}
			expiry = last.AddDate(0, months, 0)
		}

		// Strict bounds on both sides: an item already overdue stays silent.
		warnFrom := expiry.AddDate(0, 0, -calendarWarnDays)
		if !today.After(warnFrom) || !today.Before(expiry) {
			return domain.Alert{}, false
		}

		days := int(expiry.Sub(today) / (24 * time.Hour))
		message = fmt.Sprintf("%s tra %d giorni", rule.Label, days)

	default:
		return domain.Alert{}, false
	}

	return domain.Alert{
		VehicleName: vehicle,
		ItemKey:     key,
		Message:     message,
		Day:         today.Truncate(24 * time.Hour),
	}, true
}

func parseLedgerDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("parse ledger date: empty value")
	}
	if t, err := time.Parse(ledgerDateLayout, value); err == nil {
		return t, nil
	}
	// The mobile shell occasionally stores full timestamps.
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse ledger date %q: %w", value, err)
	}
	return t, nil
}
