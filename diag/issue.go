package diag

import (
	"strings"

	"github.com/pitabwire/tafiti/resource"
)

// Scope names the document family an issue was raised against.
type Scope int

const (
	ScopeGeneral Scope = iota
	ScopeArticle
	ScopeQuestionnaire
)

func (s Scope) String() string {
	switch s {
	case ScopeArticle:
		return "article"
	case ScopeQuestionnaire:
		return "questionnaire"
	default:
		return "resource"
	}
}

// IssueKind is the closed taxonomy of validation defects.
type IssueKind int

const (
	IssueMissingField IssueKind = iota
	IssueInvalidField
	IssueMismatchingFieldValues
	IssueConflictingFieldValues
	IssueLanguageDiffersFromFilenameLocalization
)

func (k IssueKind) String() string {
	switch k {
	case IssueMissingField:
		return "missing field"
	case IssueInvalidField:
		return "invalid field"
	case IssueMismatchingFieldValues:
		return "mismatching field values"
	case IssueConflictingFieldValues:
		return "conflicting field values"
	case IssueLanguageDiffersFromFilenameLocalization:
		return "language differs from filename localization"
	default:
		return "unknown issue"
	}
}

// Issue is one reported validation defect. Issues are immutable values
// accumulated during a validation walk and surfaced to the caller, which
// decides whether any of them abort bundle creation.
type Issue struct {
	Scope Scope
	Kind  IssueKind

	// Ref is the localized file the defect was observed in. BaseRef is set
	// for cross-locale mismatches and names the base localization the file
	// was compared against.
	Ref     resource.LocalizedFileReference
	BaseRef *resource.LocalizedFileReference

	Path Path
	// SecondPath is set for conflicting-value issues, which name two
	// locations within the same file.
	SecondPath *Path

	BaseValue Value
	Value     Value
}

// MissingField reports a required field that is absent.
func MissingField(scope Scope, ref resource.LocalizedFileReference, path Path) Issue {
	return Issue{
		Scope:     scope,
		Kind:      IssueMissingField,
		Ref:       ref,
		Path:      path,
		BaseValue: Absent(),
		Value:     Absent(),
	}
}

// InvalidField reports a field whose value cannot be interpreted.
func InvalidField(scope Scope, ref resource.LocalizedFileReference, path Path, value Value) Issue {
	return Issue{
		Scope:     scope,
		Kind:      IssueInvalidField,
		Ref:       ref,
		Path:      path,
		BaseValue: Absent(),
		Value:     value,
	}
}

// MismatchingFieldValues reports a structural field that differs between the
// base localization and another localization of the same logical resource.
func MismatchingFieldValues(
	scope Scope,
	baseRef, otherRef resource.LocalizedFileReference,
	path Path,
	baseValue, otherValue Value,
) Issue {
	return Issue{
		Scope:     scope,
		Kind:      IssueMismatchingFieldValues,
		Ref:       otherRef,
		BaseRef:   &baseRef,
		Path:      path,
		BaseValue: baseValue,
		Value:     otherValue,
	}
}

// ConflictingFieldValues reports two locations within a single localization
// that disagree about the same logical value.
func ConflictingFieldValues(
	scope Scope,
	ref resource.LocalizedFileReference,
	path, secondPath Path,
	value, secondValue Value,
) Issue {
	return Issue{
		Scope:      scope,
		Kind:       IssueConflictingFieldValues,
		Ref:        ref,
		Path:       path,
		SecondPath: &secondPath,
		BaseValue:  value,
		Value:      secondValue,
	}
}

// LanguageMismatch reports a document whose declared language disagrees with
// the localization encoded in its filename.
func LanguageMismatch(scope Scope, ref resource.LocalizedFileReference, declared Value) Issue {
	return Issue{
		Scope:     scope,
		Kind:      IssueLanguageDiffersFromFilenameLocalization,
		Ref:       ref,
		Path:      Root.Field("language"),
		BaseValue: Identifier(ref.Localization.String()),
		Value:     declared,
	}
}

// Render produces the multi-line human message for the issue. Rows for base
// and localized values are omitted when both are absent.
func (i Issue) Render() string {
	var b strings.Builder
	b.WriteString(i.Kind.String())
	b.WriteString(" in ")
	b.WriteString(i.Scope.String())
	b.WriteString(" ")
	b.WriteString(i.Ref.String())

	if i.BaseRef != nil {
		b.WriteString("\n  base: ")
		b.WriteString(i.BaseRef.String())
	}

	if i.SecondPath != nil {
		b.WriteString("\n  paths: ")
		b.WriteString(i.Path.String())
		b.WriteString(", ")
		b.WriteString(i.SecondPath.String())
		b.WriteString("\n  values: ")
		b.WriteString(i.BaseValue.String())
		b.WriteString(", ")
		b.WriteString(i.Value.String())

		return b.String()
	}

	b.WriteString("\n  path: ")
	b.WriteString(i.Path.String())

	if i.BaseValue.IsAbsent() && i.Value.IsAbsent() {
		return b.String()
	}

	switch i.Kind {
	case IssueMismatchingFieldValues:
		b.WriteString("\n  base value: ")
		b.WriteString(i.BaseValue.String())
		b.WriteString("\n  localized value: ")
		b.WriteString(i.Value.String())
	case IssueLanguageDiffersFromFilenameLocalization:
		b.WriteString("\n  filename localization: ")
		b.WriteString(i.BaseValue.String())
		b.WriteString("\n  declared language: ")
		b.WriteString(i.Value.String())
	case IssueMissingField, IssueInvalidField, IssueConflictingFieldValues:
		if !i.Value.IsAbsent() {
			b.WriteString("\n  value: ")
			b.WriteString(i.Value.String())
		}
	}

	return b.String()
}
