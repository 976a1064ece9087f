package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// RuleKind selects the interval semantics of a maintenance item.
type RuleKind int

const (
	// Due after a fixed distance interval (lastKm/intervalKm).
	RuleDistance RuleKind = iota
	// Due after a fixed number of years from the last service date.
	RuleFixedCalendar
	// Due after a per-item number of months (default 12) from the last service date.
	RuleVariableCalendar
)

// Rule describes how one ledger key is evaluated.
type Rule struct {
	Label string
	Kind  RuleKind
	Years int // interval for RuleFixedCalendar
}

// Known ledger keys and their interval semantics. Unknown keys fall through
// to a variable calendar rule so a new category never silently disappears
// from evaluation.
var ruleCatalog = map[string]Rule{
	"tagliando":     {Label: "Tagliando", Kind: RuleDistance},
	"gomme":         {Label: "Gomme", Kind: RuleDistance},
	"trasmissione":  {Label: "Trasmissione", Kind: RuleDistance},
	"liquido_freni": {Label: "Liquido Freni", Kind: RuleDistance},
	"revisione":     {Label: "Revisione", Kind: RuleFixedCalendar, Years: 2},
	"assicurazione": {Label: "Assicurazione", Kind: RuleFixedCalendar, Years: 1},
	"bollo":         {Label: "Bollo", Kind: RuleFixedCalendar, Years: 1},
}

// RuleFor resolves the evaluation rule for a ledger key.
func RuleFor(key string) Rule {
	if r, ok := ruleCatalog[key]; ok {
		return r
	}
	return Rule{Label: labelFromKey(key), Kind: RuleVariableCalendar}
}

func labelFromKey(key string) string {
	words := strings.Split(strings.ReplaceAll(key, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// One ledger entry: the last-service marker plus its interval. Items are
// immutable snapshots read at evaluation time; the evaluator never writes
// them back. Absent JSON fields decode to zero values.
type MaintenanceItem struct {
	LastKm         int    `json:"lastKm,omitempty"`
	IntervalKm     int    `json:"intervalKm,omitempty"`
	LastDate       string `json:"lastDate,omitempty"`
	IntervalMonths int    `json:"intervalMonths,omitempty"`
}

// Vehicle is one garage entry with its maintenance ledger.
type Vehicle struct {
	Name  string                     `json:"name"`
	Items map[string]MaintenanceItem `json:"maintenance"`
}

// AppState is the persisted application state, deserialized fresh on every
// evaluator invocation and discarded after. The top-level key is "bikes" for
// compatibility with the mobile shell's stored blob.
type AppState struct {
	Bikes []Vehicle `json:"bikes"`
}

// DecodeAppState parses the persisted state blob. Empty input is a legitimate
// first-run condition and yields an empty state.
func DecodeAppState(data []byte) (AppState, error) {
	if len(data) == 0 {
		return AppState{}, nil
	}

	var state AppState
	if err := json.Unmarshal(data, &state); err != nil {
		return AppState{}, fmt.Errorf("decode app state: %w", err)
	}
	return state, nil
}

// EncodeAppState serializes the state in the shared blob format.
func EncodeAppState(state AppState) ([]byte, error) {
	data, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("encode app state: %w", err)
	}
	return data, nil
}

// A maintenance deadline falling inside its warning window.
// Day anchors the alert identity so re-running the evaluator on the same day
// is idempotent at the dispatcher.
type Alert struct {
	VehicleName string
	ItemKey     string
	Message     string
	Day         time.Time
}

// Key returns the stable dispatch identity: one alert per vehicle, item and day.
func (a Alert) Key() string {
	return fmt.Sprintf("%s|%s|%s", a.VehicleName, a.ItemKey, a.Day.Format("2006-01-02"))
}
