package pokedex

import "testing"

func TestEffectivenessListedPairsOnly(t *testing.T) {
	if got := Effectiveness("Fire", "Grass"); got != SuperEffective {
		t.Errorf("Fire→Grass = %v, want 2", got)
	}
	if got := Effectiveness("Electric", "Ground"); got != NoEffect {
		t.Errorf("Electric→Ground = %v, want 0", got)
	}
	// Dragon→Fairy is listed, the reverse is not.
	if got := Effectiveness("Fairy", "Dragon"); got != Neutral {
		t.Errorf("Fairy→Dragon = %v, want neutral", got)
	}
	if got := Effectiveness("Ghost", "Normal"); got != Neutral {
		t.Errorf("unknown attacker = %v, want neutral", got)
	}
}

func TestCalculate(t *testing.T) {
	if got := Calculate("", "Water"); got != PromptVerdict {
		t.Errorf("missing attacker = %+v", got)
	}
	if got := Calculate("Psychic", "Dark"); got.Tone != "none" {
		t.Errorf("Psychic→Dark tone = %q, want none", got.Tone)
	}
	if got := Calculate("Water", "Grass"); got.Tone != "weak" {
		t.Errorf("Water→Grass tone = %q, want weak", got.Tone)
	}
	if got := Calculate("Normal", "Normal"); got.Tone != "neutral" {
		t.Errorf("Normal→Normal tone = %q, want neutral", got.Tone)
	}
}

func TestIconFallback(t *testing.T) {
	if Icon("Water") != "💧" {
		t.Errorf("Icon(Water) = %q", Icon("Water"))
	}
	if Icon("Cosmic") != UnknownIcon {
		t.Errorf("Icon(Cosmic) = %q, want unknown marker", Icon("Cosmic"))
	}
}
