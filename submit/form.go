package submit

import (
	"maps"

	"github.com/eringen/pokefans/validate"
)

// Community form field IDs.
const (
	FieldTrainerName  = "trainerName"
	FieldEmail        = "email"
	FieldFavoriteType = "favoriteType"
	FieldMessage      = "message"
	FieldTimestamp    = "timestamp"
)

// MessageLimit is the longest message accepted, in characters.
const MessageLimit = 500

// DefaultFields describes the community form.
func DefaultFields() []validate.Field {
	return []validate.Field{
		{ID: FieldTrainerName, Kind: validate.Required | validate.TrainerName},
		{ID: FieldEmail, Kind: validate.Email},
		{ID: FieldFavoriteType, Kind: validate.Required},
		{ID: FieldMessage, Kind: validate.Plain},
		{ID: FieldTimestamp, Kind: validate.Plain},
	}
}

// FieldIDs lists the IDs of fields in order.
func FieldIDs(fields []validate.Field) []string {
	ids := make([]string, len(fields))
	for i, f := range fields {
		ids[i] = f.ID
	}
	return ids
}

// Form holds the current value of every field.
type Form struct {
	fields []validate.Field
	index  map[string]int
}

// NewForm returns a form with the given fields, values as supplied.
func NewForm(fields []validate.Field) *Form {
	f := &Form{fields: make([]validate.Field, len(fields)), index: make(map[string]int, len(fields))}
	copy(f.fields, fields)
	for i, fd := range fields {
		f.index[fd.ID] = i
	}
	return f
}

// Field returns the descriptor for id with its current value.
func (f *Form) Field(id string) (validate.Field, bool) {
	i, ok := f.index[id]
	if !ok {
		return validate.Field{}, false
	}
	return f.fields[i], true
}

// Set stores value for id. Unknown IDs are ignored and report false.
func (f *Form) Set(id, value string) bool {
	i, ok := f.index[id]
	if !ok {
		return false
	}
	f.fields[i].Value = value
	return true
}

// Fields returns a copy of every field.
func (f *Form) Fields() []validate.Field {
	out := make([]validate.Field, len(f.fields))
	copy(out, f.fields)
	return out
}

// Values maps field IDs to their current values.
func (f *Form) Values() map[string]string {
	out := make(map[string]string, len(f.fields))
	for _, fd := range f.fields {
		out[fd.ID] = fd.Value
	}
	return out
}

// DraftIDs lists the fields whose input is kept as a draft.
func (f *Form) DraftIDs() []string {
	ids := make([]string, 0, len(f.fields))
	for _, fd := range f.fields {
		if fd.ID != FieldTimestamp {
			ids = append(ids, fd.ID)
		}
	}
	return ids
}

// Reset empties every field.
func (f *Form) Reset() {
	for i := range f.fields {
		f.fields[i].Value = ""
	}
}

// Snapshot returns the values keyed by ID; it is safe to keep.
func (f *Form) Snapshot() map[string]string {
	return maps.Clone(f.Values())
}
