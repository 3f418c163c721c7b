package tafiti

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/rs/xid"

	"github.com/pitabwire/tafiti/diag"
	"github.com/pitabwire/tafiti/document"
	"github.com/pitabwire/tafiti/locale"
	"github.com/pitabwire/tafiti/resource"
	"github.com/pitabwire/tafiti/validation"
	"github.com/pitabwire/tafiti/workerpool"
)

// ErrNoDefinition is returned when Validate is called without explicit
// references and the bundle has no loaded definition to take them from.
var ErrNoDefinition = errors.New("bundle has no study definition loaded")

// FamilyResult is the outcome of checking one logical resource family. A
// non-nil Err is a hard failure (unreadable file, undecodable document) that
// aborted the family's check; Issues are soft localization defects.
type FamilyResult struct {
	Ref    resource.FileReference
	Issues []diag.Issue
	Err    error
}

// Report collects the results of one validation run over a bundle.
type Report struct {
	ID      string
	Results []FamilyResult
}

// Issues concatenates all soft issues in family order.
func (r *Report) Issues() []diag.Issue {
	var issues []diag.Issue
	for _, result := range r.Results {
		issues = append(issues, result.Issues...)
	}

	return issues
}

// HasIssues reports whether any family produced a soft issue.
func (r *Report) HasIssues() bool {
	for _, result := range r.Results {
		if len(result.Issues) > 0 {
			return true
		}
	}

	return false
}

// Err joins the hard failures of all families, or nil when every family was
// readable.
func (r *Report) Err() error {
	var errs []error
	for _, result := range r.Results {
		if result.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", result.Ref, result.Err))
		}
	}

	return errors.Join(errs...)
}

// Render joins the rendered messages of every issue, one block per issue, so
// an author can fix all localization defects from a single failed build.
func (r *Report) Render() string {
	rendered := make([]string, 0, len(r.Results))
	for _, issue := range r.Issues() {
		rendered = append(rendered, issue.Render())
	}

	return strings.Join(rendered, "\n")
}

// Validate checks every supplied resource family, or every family the study
// definition references when none are given. Families are independent, so
// they are fanned out over a worker pool; each job owns its own issue buffer
// and results are concatenated in sorted family order to keep output
// deterministic.
func (b *Bundle) Validate(ctx context.Context, refs ...resource.FileReference) (*Report, error) {
	if len(refs) == 0 {
		if b.definition == nil {
			return nil, ErrNoDefinition
		}
		refs = b.definition.References()
	}

	sorted := make([]resource.FileReference, len(refs))
	copy(sorted, refs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].String() < sorted[j].String() })

	poolOptions := append([]workerpool.Option{workerpool.WithLogger(b.Log(ctx))}, b.poolOptions...)
	pool, err := workerpool.New(ctx, poolOptions...)
	if err != nil {
		return nil, err
	}
	defer pool.Shutdown()

	results := make([]FamilyResult, len(sorted))

	var wg sync.WaitGroup
	for i, ref := range sorted {
		wg.Add(1)

		submitErr := pool.Submit(ctx, func() {
			defer wg.Done()
			issues, familyErr := b.validateFamily(ctx, ref)
			results[i] = FamilyResult{Ref: ref, Issues: issues, Err: familyErr}
		})
		if submitErr != nil {
			wg.Done()
			results[i] = FamilyResult{Ref: ref, Err: submitErr}
		}
	}
	wg.Wait()

	report := &Report{ID: xid.New().String(), Results: results}

	b.Log(ctx).
		WithField("report", report.ID).
		WithField("families", len(results)).
		WithField("issues", len(report.Issues())).
		Debug("bundle validation finished")

	return report, nil
}

// familyDocument is one decoded localization of a resource family.
type familyDocument struct {
	ref           resource.LocalizedFileReference
	questionnaire *document.Questionnaire
	article       *document.Article
}

// validateFamily runs both validation passes over one logical resource:
// per-localization completeness (plus the choice-option conflict pass for
// questionnaires) and the cross-locale structural diff against the elected
// base. Decode failures abort the family; soft issues never do.
func (b *Bundle) validateFamily(
	ctx context.Context,
	ref resource.FileReference,
) ([]diag.Issue, error) {
	localized, err := b.candidates(ctx, ref)
	if err != nil {
		return nil, err
	}
	if len(localized) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrReferenceNotFound, ref)
	}

	docs := make([]familyDocument, 0, len(localized))
	for _, lref := range localized {
		data, readErr := b.store.Read(ctx, lref)
		if readErr != nil {
			return nil, readErr
		}

		doc, decodeErr := decodeFamilyDocument(lref, data)
		if decodeErr != nil {
			return nil, decodeErr
		}

		docs = append(docs, doc)
	}

	base := b.electBase(docs)

	var issues []diag.Issue

	for _, doc := range docs {
		if doc.questionnaire != nil {
			issues = append(issues, validation.CheckQuestionnaire(doc.questionnaire, doc.ref)...)
			issues = append(issues,
				validation.OptionConflicts(doc.ref, validation.CollectOptions(doc.questionnaire))...)
			continue
		}

		issues = append(issues, validation.CheckArticle(doc.article, doc.ref)...)
	}

	for _, doc := range docs {
		if doc.ref.Equal(base.ref) {
			continue
		}

		if doc.questionnaire != nil {
			issues = append(issues,
				validation.CompareQuestionnaires(base.questionnaire, base.ref, doc.questionnaire, doc.ref)...)
			continue
		}

		issues = append(issues,
			validation.CompareArticles(base.article, base.ref, doc.article, doc.ref)...)
	}

	return issues, nil
}

func decodeFamilyDocument(
	ref resource.LocalizedFileReference,
	data []byte,
) (familyDocument, error) {
	doc := familyDocument{ref: ref}

	switch ref.Extension {
	case "json":
		questionnaire, err := document.DecodeQuestionnaire(data)
		if err != nil {
			return familyDocument{}, fmt.Errorf("%s: %w", ref, err)
		}
		doc.questionnaire = questionnaire

	case "md", "markdown":
		article, err := document.DecodeArticle(data)
		if err != nil {
			return familyDocument{}, fmt.Errorf("%s: %w", ref, err)
		}
		doc.article = article

	default:
		return familyDocument{}, fmt.Errorf("unsupported resource extension %q in %s", ref.Extension, ref)
	}

	return doc, nil
}

// electBase picks the localization every sibling is compared against. The
// choice is load-bearing: diffs read "other differs from base", so the
// election must be deterministic for a given candidate set. Preference
// order: the designated fallback localization, then the first candidate
// whose language is the bundle's base language, then the first candidate in
// sorted order.
func (b *Bundle) electBase(docs []familyDocument) familyDocument {
	if !b.fallback.IsZero() {
		for _, doc := range docs {
			if doc.ref.Localization.Equal(b.fallback) {
				return doc
			}
		}
	}

	for _, doc := range docs {
		if strings.EqualFold(declaredLanguage(doc), b.baseLanguage) {
			return doc
		}
	}

	return docs[0]
}

// declaredLanguage is the language a document claims for itself, falling
// back to its filename localization when it claims none.
func declaredLanguage(doc familyDocument) string {
	declared := ""
	switch {
	case doc.questionnaire != nil:
		declared = doc.questionnaire.Language
	case doc.article != nil:
		declared = doc.article.Language()
	}

	if declared != "" {
		if key, err := locale.Parse(declared); err == nil {
			return key.Language
		}
		return declared
	}

	return doc.ref.Localization.Language
}
