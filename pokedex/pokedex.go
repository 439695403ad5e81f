// Package pokedex holds the fixed type tables used by the community feed and
// the type calculator.
package pokedex

import "sort"

// Type is a favorite-type choice and its indicator icon.
type Type struct {
	Name string
	Icon string
}

// UnknownIcon marks a favorite type that is not in the table.
const UnknownIcon = "❓"

var types = map[string]Type{
	"Normal":   {"Normal", "⚪"},
	"Fire":     {"Fire", "🔥"},
	"Water":    {"Water", "💧"},
	"Grass":    {"Grass", "🌿"},
	"Electric": {"Electric", "⚡"},
	"Ice":      {"Ice", "❄️"},
	"Fighting": {"Fighting", "🥊"},
	"Flying":   {"Flying", "🕊️"},
	"Ground":   {"Ground", "⛰️"},
	"Psychic":  {"Psychic", "🔮"},
	"Dragon":   {"Dragon", "🐉"},
	"Dark":     {"Dark", "🌑"},
	"Steel":    {"Steel", "⚙️"},
	"Fairy":    {"Fairy", "✨"},
}

// Lookup returns the table entry for name.
func Lookup(name string) (Type, bool) {
	t, ok := types[name]
	return t, ok
}

// Icon returns the indicator for name, or UnknownIcon.
func Icon(name string) string {
	if t, ok := types[name]; ok {
		return t.Icon
	}
	return UnknownIcon
}

// Names lists every known type in alphabetical order.
func Names() []string {
	out := make([]string, 0, len(types))
	for n := range types {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Damage multipliers.
const (
	NoEffect         = 0.0
	NotVeryEffective = 0.5
	Neutral          = 1.0
	SuperEffective   = 2.0
)

// effectiveness lists attacker → defender multipliers. Only one direction of
// some matchups is present; anything not listed is neutral.
var effectiveness = map[string]map[string]float64{
	"Fire":     {"Grass": 2, "Water": 0.5, "Fire": 0.5, "Ice": 2, "Dragon": 0.5},
	"Water":    {"Fire": 2, "Grass": 0.5, "Water": 0.5, "Ground": 2, "Dragon": 0.5},
	"Grass":    {"Water": 2, "Fire": 0.5, "Grass": 0.5, "Ground": 2, "Dragon": 0.5},
	"Electric": {"Water": 2, "Grass": 0.5, "Electric": 0.5, "Ground": 0, "Dragon": 0.5},
	"Psychic":  {"Fighting": 2, "Psychic": 0.5, "Steel": 0.5, "Dark": 0},
	"Dragon":   {"Dragon": 2, "Steel": 0.5, "Fairy": 0},
	"Ice":      {"Grass": 2, "Fire": 0.5, "Water": 0.5, "Dragon": 2, "Steel": 0.5},
	"Fighting": {"Normal": 2, "Ice": 2, "Psychic": 0.5, "Flying": 0.5, "Fairy": 0.5},
}

// Effectiveness returns the multiplier for attacker hitting defender.
func Effectiveness(attacker, defender string) float64 {
	if m, ok := effectiveness[attacker][defender]; ok {
		return m
	}
	return Neutral
}

// Attackers lists the types with table entries, alphabetically.
func Attackers() []string {
	out := make([]string, 0, len(effectiveness))
	for n := range effectiveness {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Verdict is the calculator's rendering of a multiplier.
type Verdict struct {
	Message string
	Tone    string
}

// PromptVerdict is shown until both types are chosen.
var PromptVerdict = Verdict{Message: "Select both types to see effectiveness...", Tone: "prompt"}

// Describe turns a multiplier into the calculator message.
func Describe(multiplier float64) Verdict {
	switch multiplier {
	case SuperEffective:
		return Verdict{Message: "🔥 Super Effective! (2x damage)", Tone: "super"}
	case NotVeryEffective:
		return Verdict{Message: "⚠️ Not Very Effective (0.5x damage)", Tone: "weak"}
	case NoEffect:
		return Verdict{Message: "❌ No Effect (0x damage)", Tone: "none"}
	default:
		return Verdict{Message: "➡️ Normal Effectiveness (1x damage)", Tone: "neutral"}
	}
}

// Calculate returns the verdict for the pair, or PromptVerdict when either
// side is empty.
func Calculate(attacker, defender string) Verdict {
	if attacker == "" || defender == "" {
		return PromptVerdict
	}
	return Describe(Effectiveness(attacker, defender))
}
