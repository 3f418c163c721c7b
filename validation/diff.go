package validation

import (
	"github.com/pitabwire/tafiti/diag"
	"github.com/pitabwire/tafiti/document"
	"github.com/pitabwire/tafiti/resource"
)

// differ accumulates mismatching-field issues of one (base, other) pair so
// the reference identities do not have to be threaded through every compare
// call.
type differ struct {
	baseRef  resource.LocalizedFileReference
	otherRef resource.LocalizedFileReference
	issues   []diag.Issue
}

// CompareQuestionnaires diffs every structural field that must be identical
// across localizations of the same logical questionnaire: stable identifiers,
// item count and ordering, item kinds and flags, branching conditions,
// numeric bound extensions and choice-option codes. Translated text is
// deliberately not compared.
func CompareQuestionnaires(
	base *document.Questionnaire, baseRef resource.LocalizedFileReference,
	other *document.Questionnaire, otherRef resource.LocalizedFileReference,
) []diag.Issue {
	d := &differ{baseRef: baseRef, otherRef: otherRef}

	d.compareValues(diag.Root.Field("id"), diag.Identifier(base.Identifier), diag.Identifier(other.Identifier))
	d.compareItems(diag.Root.Field("item"), base.Items, other.Items)

	return d.issues
}

func (d *differ) mismatch(path diag.Path, baseValue, otherValue diag.Value) {
	d.issues = append(d.issues, diag.MismatchingFieldValues(
		diag.ScopeQuestionnaire, d.baseRef, d.otherRef, path, baseValue, otherValue))
}

func (d *differ) compareValues(path diag.Path, baseValue, otherValue diag.Value) {
	if !baseValue.Equal(otherValue) {
		d.mismatch(path, baseValue, otherValue)
	}
}

// compareItems short-circuits on differing lengths with a single issue at
// <path>.length rather than attempting an element-wise comparison of lists
// that no longer line up.
func (d *differ) compareItems(path diag.Path, base, other []document.Item) {
	if len(base) != len(other) {
		d.mismatch(path.Field("length"), diag.Int(len(base)), diag.Int(len(other)))
		return
	}

	for i := range base {
		d.compareItem(path.Index(i), base[i], other[i])
	}
}

func (d *differ) compareItem(path diag.Path, base, other document.Item) {
	d.compareValues(path.Field("linkId"), diag.Identifier(base.LinkID), diag.Identifier(other.LinkID))
	d.compareValues(path.Field("type"), diag.String(base.Type), diag.String(other.Type))
	d.compareValues(path.Field("required"), diag.ValueOf(base.Required), diag.ValueOf(other.Required))
	d.compareValues(path.Field("repeats"), diag.ValueOf(base.Repeats), diag.ValueOf(other.Repeats))
	d.compareValues(path.Field("readOnly"), diag.ValueOf(base.ReadOnly), diag.ValueOf(other.ReadOnly))

	d.compareConditions(path.Field("enableWhen"), base.EnableWhen, other.EnableWhen)
	d.compareAnswerOptions(path.Field("answerOption"), base.AnswerOptions, other.AnswerOptions)
	d.compareBounds(path, base, other)

	d.compareItems(path.Field("item"), base.Items, other.Items)
}

func (d *differ) compareConditions(path diag.Path, base, other []document.Condition) {
	if len(base) != len(other) {
		d.mismatch(path.Field("length"), diag.Int(len(base)), diag.Int(len(other)))
		return
	}

	for i := range base {
		p := path.Index(i)
		d.compareValues(p.Field("question"), diag.Identifier(base[i].Question), diag.Identifier(other[i].Question))
		d.compareValues(p.Field("operator"), diag.String(base[i].Operator), diag.String(other[i].Operator))
		d.compareValues(p.Field("answer"), conditionAnswer(base[i]), conditionAnswer(other[i]))
	}
}

// conditionAnswer flattens whichever answer variant the condition carries
// into a single reportable value. Coded answers compare by their
// machine-readable code.
func conditionAnswer(c document.Condition) diag.Value {
	switch {
	case c.AnswerCoding != nil:
		return diag.Identifier(c.AnswerCoding.System + "|" + c.AnswerCoding.Code)
	case c.AnswerString != nil:
		return diag.String(*c.AnswerString)
	case c.AnswerInteger != nil:
		return diag.Int(*c.AnswerInteger)
	case c.AnswerBoolean != nil:
		return diag.Bool(*c.AnswerBoolean)
	default:
		return diag.Absent()
	}
}

func (d *differ) compareAnswerOptions(path diag.Path, base, other []document.AnswerOption) {
	if len(base) != len(other) {
		d.mismatch(path.Field("length"), diag.Int(len(base)), diag.Int(len(other)))
		return
	}

	for i := range base {
		p := path.Index(i)

		baseCoding, otherCoding := base[i].Coding, other[i].Coding
		switch {
		case baseCoding != nil && otherCoding != nil:
			d.compareValues(p.Field("system"), diag.Identifier(baseCoding.System), diag.Identifier(otherCoding.System))
			d.compareValues(p.Field("code"), diag.Identifier(baseCoding.Code), diag.Identifier(otherCoding.Code))
		case baseCoding != nil || otherCoding != nil:
			d.mismatch(p.Field("code"), optionCode(base[i]), optionCode(other[i]))
		}
	}
}

func optionCode(o document.AnswerOption) diag.Value {
	if o.Coding != nil {
		return diag.Identifier(o.Coding.System + "|" + o.Coding.Code)
	}

	return diag.Absent()
}

// compareBounds diffs the numeric bound extensions of an item. Bounds are
// addressed by their extension URL rather than position so reordering the
// extension block is not a defect.
func (d *differ) compareBounds(path diag.Path, base, other document.Item) {
	bounds := []struct {
		field string
		url   string
	}{
		{field: "minValue", url: document.ExtensionMinValue},
		{field: "maxValue", url: document.ExtensionMaxValue},
	}

	for _, bound := range bounds {
		d.compareValues(path.Field(bound.field), boundValue(base, bound.url), boundValue(other, bound.url))
	}
}

func boundValue(item document.Item, url string) diag.Value {
	for _, ext := range item.Extensions {
		if ext.URL != url {
			continue
		}
		if v, ok := ext.BoundValue(); ok {
			return diag.Float(v)
		}
	}

	return diag.Absent()
}
