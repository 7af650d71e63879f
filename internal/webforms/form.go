package webforms

// Form accumulates the fields of a postback request.
type Form struct {
	values map[string]string
}

// NewForm starts a postback form carrying the fields of state. Fields absent
// from state are left out of the request entirely.
func NewForm(state State) *Form {
	f := &Form{values: make(map[string]string)}
	f.setField(FieldViewState, state.ViewState)
	f.setField(FieldEventValidation, state.EventValidation)
	f.setField(FieldViewStateGenerator, state.ViewStateGenerator)
	return f
}

func (f *Form) setField(name string, field Field) {
	if field.Present {
		f.values[name] = field.Value
	}
}

// Set adds or replaces a form field.
func (f *Form) Set(name, value string) *Form {
	f.values[name] = value
	return f
}

// Event sets the __EVENTTARGET/__EVENTARGUMENT pair that tells the server which
// control raised the postback, and clears __LASTFOCUS.
func (f *Form) Event(target, argument string) *Form {
	f.values[FieldEventTarget] = target
	f.values[FieldEventArgument] = argument
	f.values[FieldLastFocus] = ""
	return f
}

// Values returns a copy of the form fields.
func (f *Form) Values() map[string]string {
	out := make(map[string]string, len(f.values))
	for k, v := range f.values {
		out[k] = v
	}
	return out
}
