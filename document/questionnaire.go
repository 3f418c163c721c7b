package document

import (
	"encoding/json"
	"fmt"
)

// Extension URLs carrying numeric answer bounds on a question item.
const (
	ExtensionMinValue = "http://hl7.org/fhir/StructureDefinition/minValue"
	ExtensionMaxValue = "http://hl7.org/fhir/StructureDefinition/maxValue"
)

// Item types that are pure grouping or display nodes and therefore carry no
// answerable content of their own.
const (
	ItemTypeGroup   = "group"
	ItemTypeDisplay = "display"
)

// Questionnaire is the generic structured-document tree used for
// questionnaire-like content: an ordered list of items with scalar fields,
// possibly nested items and arbitrary extension blocks. It is deliberately
// schema-light; only the fields the validator judges are modelled.
type Questionnaire struct {
	Identifier string      `json:"id,omitempty"`
	Title      string      `json:"title,omitempty"`
	Language   string      `json:"language,omitempty"`
	Status     string      `json:"status,omitempty"`
	Items      []Item      `json:"item,omitempty"`
	Extensions []Extension `json:"extension,omitempty"`
}

// Item is one node of the questionnaire tree.
type Item struct {
	LinkID        string         `json:"linkId,omitempty"`
	Text          string         `json:"text,omitempty"`
	Type          string         `json:"type,omitempty"`
	Required      *bool          `json:"required,omitempty"`
	Repeats       *bool          `json:"repeats,omitempty"`
	ReadOnly      *bool          `json:"readOnly,omitempty"`
	EnableWhen    []Condition    `json:"enableWhen,omitempty"`
	AnswerOptions []AnswerOption `json:"answerOption,omitempty"`
	Extensions    []Extension    `json:"extension,omitempty"`
	Items         []Item         `json:"item,omitempty"`
}

// IsGrouping reports whether the item only structures or displays content and
// so is not required to carry human-readable question text.
func (i Item) IsGrouping() bool {
	return i.Type == ItemTypeGroup || i.Type == ItemTypeDisplay
}

// Condition is one branching rule: the item is enabled when the answer to the
// named question satisfies the operator.
type Condition struct {
	Question      string  `json:"question,omitempty"`
	Operator      string  `json:"operator,omitempty"`
	AnswerCoding  *Coding `json:"answerCoding,omitempty"`
	AnswerString  *string `json:"answerString,omitempty"`
	AnswerInteger *int    `json:"answerInteger,omitempty"`
	AnswerBoolean *bool   `json:"answerBoolean,omitempty"`
}

// AnswerOption is one selectable choice of a question item.
type AnswerOption struct {
	Coding *Coding `json:"valueCoding,omitempty"`
	String *string `json:"valueString,omitempty"`
}

// Coding is a machine-readable code within a coding system, with an optional
// human-readable display text.
type Coding struct {
	System  string `json:"system,omitempty"`
	Code    string `json:"code,omitempty"`
	Display string `json:"display,omitempty"`
}

// Extension is an arbitrary keyed block attached to the questionnaire or an
// item. Only scalar payloads are modelled.
type Extension struct {
	URL          string   `json:"url,omitempty"`
	ValueInteger *int     `json:"valueInteger,omitempty"`
	ValueDecimal *float64 `json:"valueDecimal,omitempty"`
	ValueString  *string  `json:"valueString,omitempty"`
}

// BoundValue extracts the numeric payload of a bound extension, if any.
func (e Extension) BoundValue() (float64, bool) {
	switch {
	case e.ValueInteger != nil:
		return float64(*e.ValueInteger), true
	case e.ValueDecimal != nil:
		return *e.ValueDecimal, true
	default:
		return 0, false
	}
}

// DecodeQuestionnaire parses raw bytes into a questionnaire tree. A failure
// here is a hard error: the file is unreadable and no structural comparison
// is possible.
func DecodeQuestionnaire(data []byte) (*Questionnaire, error) {
	var q Questionnaire
	if err := json.Unmarshal(data, &q); err != nil {
		return nil, fmt.Errorf("could not decode questionnaire document: %w", err)
	}

	return &q, nil
}
