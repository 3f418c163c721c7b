package validation

import (
	"strings"

	"github.com/pitabwire/tafiti/diag"
	"github.com/pitabwire/tafiti/document"
	"github.com/pitabwire/tafiti/resource"
)

// CheckArticle verifies a single article localization: stable identifier,
// human-readable title, a body with visible content, and agreement between
// the declared language and the filename localization.
func CheckArticle(a *document.Article, at resource.LocalizedFileReference) []diag.Issue {
	var issues []diag.Issue

	if a.Identifier() == "" {
		issues = append(issues, diag.MissingField(diag.ScopeArticle, at, diag.Root.Field("id")))
	}
	if a.Title() == "" {
		issues = append(issues, diag.MissingField(diag.ScopeArticle, at, diag.Root.Field("title")))
	}

	if rendered, err := a.RenderBody(); err != nil {
		issues = append(issues, diag.InvalidField(diag.ScopeArticle, at, diag.Root.Field("body"), diag.String(err.Error())))
	} else if strings.TrimSpace(rendered) == "" {
		issues = append(issues, diag.MissingField(diag.ScopeArticle, at, diag.Root.Field("body")))
	}

	issues = append(issues, checkDeclaredLanguage(diag.ScopeArticle, a.Language(), at)...)

	return issues
}

// CompareArticles diffs the structural metadata of two article localizations.
// The identifier must carry the same value; every other metadata key only has
// to be present on both sides, since its value is translatable content.
func CompareArticles(
	base *document.Article, baseRef resource.LocalizedFileReference,
	other *document.Article, otherRef resource.LocalizedFileReference,
) []diag.Issue {
	var issues []diag.Issue

	if base.Identifier() != other.Identifier() {
		issues = append(issues, diag.MismatchingFieldValues(
			diag.ScopeArticle, baseRef, otherRef,
			diag.Root.Field("id"),
			diag.Identifier(base.Identifier()), diag.Identifier(other.Identifier())))
	}

	for _, key := range sortedKeys(base.Meta) {
		if key == "language" {
			continue
		}
		if _, ok := other.Meta[key]; !ok {
			issues = append(issues, diag.MismatchingFieldValues(
				diag.ScopeArticle, baseRef, otherRef,
				diag.Root.Field(key),
				diag.String(base.Meta[key]), diag.Absent()))
		}
	}

	for _, key := range sortedKeys(other.Meta) {
		if key == "language" {
			continue
		}
		if _, ok := base.Meta[key]; !ok {
			issues = append(issues, diag.MismatchingFieldValues(
				diag.ScopeArticle, baseRef, otherRef,
				diag.Root.Field(key),
				diag.Absent(), diag.String(other.Meta[key])))
		}
	}

	return issues
}
