package log

// Field names shared across components.
const (
	FieldComponent = "component"
	FieldAction    = "action"
	FieldCategory  = "category"
	FieldAmount    = "amount"
	FieldAccepted  = "accepted"
	FieldError     = "error"
	FieldStatus    = "status"
	FieldBalance   = "balance"
	FieldSession   = "session_id"
	FieldSeq       = "seq"
	FieldPath      = "path"
	FieldLine      = "line"
)

// Component names.
const (
	ComponentApp     = "app"
	ComponentSession = "session"
	ComponentJournal = "journal"
	ComponentReplay  = "replay"
	ComponentTUI     = "tui"
	ComponentConfig  = "config"
)

// Fields builds structured log attributes.
type Fields map[string]any

// NewFields creates an empty Fields.
func NewFields() Fields {
	return make(Fields)
}

// WithAction adds the dispatched action and its arguments. Empty
// arguments are omitted.
func (f Fields) WithAction(kind, category, amount string) Fields {
	f[FieldAction] = kind
	if category != "" {
		f[FieldCategory] = category
	}
	if amount != "" {
		f[FieldAmount] = amount
	}
	return f
}

// WithError adds the error text and marks the record rejected.
func (f Fields) WithError(err error) Fields {
	f[FieldAccepted] = err == nil
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// With adds an arbitrary field.
func (f Fields) With(key string, value any) Fields {
	f[key] = value
	return f
}

// ToSlice flattens the fields into slog key/value args.
func (f Fields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
