package validation

import (
	"github.com/pitabwire/tafiti/diag"
	"github.com/pitabwire/tafiti/document"
	"github.com/pitabwire/tafiti/resource"
)

// OptionOccurrence is one coded choice option observed while walking a single
// localization, with the path it was seen at.
type OptionOccurrence struct {
	System  string
	Code    string
	Display string
	Path    diag.Path
}

// CollectOptions gathers every coded answer option of the questionnaire in
// document order. The conflict judgement is deliberately decoupled from the
// walk: only once all occurrences are known can duplicate codes be reported
// exactly once per conflicting pair.
func CollectOptions(q *document.Questionnaire) []OptionOccurrence {
	return collectItemOptions(q.Items, diag.Root.Field("item"))
}

func collectItemOptions(items []document.Item, path diag.Path) []OptionOccurrence {
	var occurrences []OptionOccurrence

	for i, item := range items {
		p := path.Index(i)

		for j, option := range item.AnswerOptions {
			coding := option.Coding
			if coding == nil || coding.System == "" || coding.Code == "" {
				continue
			}

			occurrences = append(occurrences, OptionOccurrence{
				System:  coding.System,
				Code:    coding.Code,
				Display: coding.Display,
				Path:    p.Field("answerOption").Index(j),
			})
		}

		occurrences = append(occurrences, collectItemOptions(item.Items, p.Field("item"))...)
	}

	return occurrences
}

// OptionConflicts groups the collected occurrences by (system, code) and
// reports every pair of distinct display texts sharing a code as one
// conflicting-field-values issue. A display seen at several locations is
// represented by its first occurrence, so each ambiguous pair surfaces once
// rather than once per location.
func OptionConflicts(at resource.LocalizedFileReference, occurrences []OptionOccurrence) []diag.Issue {
	type displayEntry struct {
		display string
		first   OptionOccurrence
	}

	groupOrder := make([]string, 0, len(occurrences))
	groups := map[string][]displayEntry{}

	for _, occ := range occurrences {
		key := occ.System + "|" + occ.Code

		entries, seen := groups[key]
		if !seen {
			groupOrder = append(groupOrder, key)
		}

		known := false
		for _, entry := range entries {
			if entry.display == occ.Display {
				known = true
				break
			}
		}
		if !known {
			entries = append(entries, displayEntry{display: occ.Display, first: occ})
		}

		groups[key] = entries
	}

	var issues []diag.Issue
	for _, key := range groupOrder {
		entries := groups[key]
		for i := 0; i < len(entries); i++ {
			for j := i + 1; j < len(entries); j++ {
				issues = append(issues, diag.ConflictingFieldValues(
					diag.ScopeQuestionnaire,
					at,
					entries[i].first.Path, entries[j].first.Path,
					diag.String(entries[i].display), diag.String(entries[j].display),
				))
			}
		}
	}

	return issues
}
