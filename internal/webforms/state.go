package webforms

import (
	"github.com/PuerkitoBio/goquery"
)

// Hidden field ids and form names.
const (
	FieldViewState          = "__VIEWSTATE"
	FieldEventValidation    = "__EVENTVALIDATION"
	FieldViewStateGenerator = "__VIEWSTATEGENERATOR"
	FieldEventTarget        = "__EVENTTARGET"
	FieldEventArgument      = "__EVENTARGUMENT"
	FieldLastFocus          = "__LASTFOCUS"
)

// Field is one hidden value. Present is false when the page had no such input.
type Field struct {
	Value   string
	Present bool
}

// State is the postback state extracted from a single response.
type State struct {
	ViewState          Field
	EventValidation    Field
	ViewStateGenerator Field
}

// Empty reports whether none of the fields were found.
func (s State) Empty() bool {
	return !s.ViewState.Present && !s.EventValidation.Present && !s.ViewStateGenerator.Present
}

// ExtractState reads the hidden postback fields from doc. Each field is looked
// up on its own; when several inputs share an id the first one wins.
func ExtractState(doc *goquery.Document) State {
	return State{
		ViewState:          hiddenValue(doc, FieldViewState),
		EventValidation:    hiddenValue(doc, FieldEventValidation),
		ViewStateGenerator: hiddenValue(doc, FieldViewStateGenerator),
	}
}

func hiddenValue(doc *goquery.Document, id string) Field {
	// inputs without a value attribute do not count as a match
	var field Field
	doc.Find(`input[id="` + id + `"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		value, ok := s.Attr("value")
		if !ok {
			return true
		}
		field = Field{Value: value, Present: true}
		return false
	})
	return field
}
