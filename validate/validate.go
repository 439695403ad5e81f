// Package validate checks community form fields and shows the result on the
// page.
package validate

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/eringen/pokefans/ui"
)

// Kind describes which rules apply to a field. Kinds combine as flags.
type Kind uint8

const (
	Plain    Kind = 0
	Required Kind = 1 << iota
	Email
	TrainerName
)

// Has reports whether k includes flag.
func (k Kind) Has(flag Kind) bool {
	return k&flag != 0
}

// Messages shown for failing rules.
const (
	MsgRequired    = "This field is required."
	MsgEmail       = "Please enter a valid email address."
	MsgTrainerName = "Trainer name must be at least 3 characters."
)

// MinTrainerName is the minimum trimmed length of a trainer name.
const MinTrainerName = 3

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Field is one form input as the validator sees it.
type Field struct {
	ID    string
	Kind  Kind
	Value string
}

// Result is the outcome of validating a field.
type Result struct {
	Valid   bool
	Message string
}

// IsEmail reports whether s has the shape of an email address.
func IsEmail(s string) bool {
	return emailPattern.MatchString(strings.TrimSpace(s))
}

// Validate applies the rules for f.Kind; the first failing rule wins.
func Validate(f Field) Result {
	trimmed := strings.TrimSpace(f.Value)
	if f.Kind.Has(Required) && trimmed == "" {
		return Result{Message: MsgRequired}
	}
	if f.Kind.Has(Email) && trimmed != "" && !IsEmail(trimmed) {
		return Result{Message: MsgEmail}
	}
	if f.Kind.Has(TrainerName) && utf8.RuneCountInString(trimmed) < MinTrainerName {
		return Result{Message: MsgTrainerName}
	}
	return Result{Valid: true}
}

// Show updates the field's error slot and invalid flag to reflect r.
func Show(s *ui.Surface, f Field, r Result) {
	slot := s.Get(ui.ErrorSlot(f.ID))
	input := s.Get(f.ID)
	if r.Valid {
		slot.SetText("")
		slot.Hide()
		input.SetAttr("aria-invalid", "false")
		input.RemoveClass("error")
		return
	}
	slot.SetText(r.Message)
	slot.Show()
	input.SetAttr("aria-invalid", "true")
	input.AddClass("error")
}

// Check validates f and shows the result.
func Check(s *ui.Surface, f Field) Result {
	r := Validate(f)
	Show(s, f, r)
	return r
}

// All validates every required or email-typed field, showing each result.
// It does not stop at the first failure so every message appears at once.
func All(s *ui.Surface, fields []Field) bool {
	ok := true
	for _, f := range fields {
		if !f.Kind.Has(Required) && !f.Kind.Has(Email) {
			continue
		}
		if !Check(s, f).Valid {
			ok = false
		}
	}
	return ok
}

// Clear hides every field's error affordance.
func Clear(s *ui.Surface, fields []Field) {
	for _, f := range fields {
		Show(s, f, Result{Valid: true})
	}
}
