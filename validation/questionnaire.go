// Package validation implements the structural checks that run before a
// bundle ships: per-localization completeness checks, cross-localization
// structural diffs against a base localization, and the duplicate
// choice-option pass. All findings are soft diag.Issue values; the caller
// decides whether a non-empty list aborts bundle creation.
package validation

import (
	"github.com/pitabwire/tafiti/diag"
	"github.com/pitabwire/tafiti/document"
	"github.com/pitabwire/tafiti/locale"
	"github.com/pitabwire/tafiti/resource"
)

// CheckQuestionnaire verifies a single localization for required-field
// completeness: a stable identifier, a human-readable title, at least one
// item, and per-item identifiers and question text. When the document
// declares its own language, the declaration must agree with the localization
// encoded in the filename.
func CheckQuestionnaire(q *document.Questionnaire, at resource.LocalizedFileReference) []diag.Issue {
	var issues []diag.Issue

	if q.Identifier == "" {
		issues = append(issues, diag.MissingField(diag.ScopeQuestionnaire, at, diag.Root.Field("id")))
	}
	if q.Title == "" {
		issues = append(issues, diag.MissingField(diag.ScopeQuestionnaire, at, diag.Root.Field("title")))
	}
	if len(q.Items) == 0 {
		issues = append(issues, diag.MissingField(diag.ScopeQuestionnaire, at, diag.Root.Field("item")))
	}

	issues = append(issues, checkDeclaredLanguage(diag.ScopeQuestionnaire, q.Language, at)...)
	issues = append(issues, checkItems(q.Items, diag.Root.Field("item"), at)...)

	return issues
}

// checkDeclaredLanguage validates a document's own language metadata against
// the localization its filename encodes. An unparseable declaration is an
// invalid field, never a crash.
func checkDeclaredLanguage(scope diag.Scope, declared string, at resource.LocalizedFileReference) []diag.Issue {
	if declared == "" {
		return nil
	}

	key, err := locale.Parse(declared)
	if err != nil {
		return []diag.Issue{diag.InvalidField(scope, at, diag.Root.Field("language"), diag.String(declared))}
	}

	if !key.Equal(at.Localization) {
		return []diag.Issue{diag.LanguageMismatch(scope, at, diag.Identifier(declared))}
	}

	return nil
}

func checkItems(items []document.Item, path diag.Path, at resource.LocalizedFileReference) []diag.Issue {
	var issues []diag.Issue

	for i, item := range items {
		p := path.Index(i)

		if item.LinkID == "" {
			issues = append(issues, diag.MissingField(diag.ScopeQuestionnaire, at, p.Field("linkId")))
		}
		if !item.IsGrouping() && item.Text == "" {
			issues = append(issues, diag.MissingField(diag.ScopeQuestionnaire, at, p.Field("text")))
		}

		issues = append(issues, checkItems(item.Items, p.Field("item"), at)...)
	}

	return issues
}
