package tafiti

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/pitabwire/tafiti/locale"
	"github.com/pitabwire/tafiti/resource"
)

var (
	// ErrReferenceNotFound is returned when no candidate scores above the
	// threshold and no usable fallback localization exists.
	ErrReferenceNotFound = errors.New("no localized file resolves the reference")

	// ErrAmbiguousMatch is returned when two or more candidates tie for the
	// top score. The bundle shipped two equally valid files for one logical
	// resource and locale, which is an authoring defect the resolver refuses
	// to guess its way around.
	ErrAmbiguousMatch = errors.New("multiple localized files tie for the reference")
)

// Resolution is the successful outcome of resolving a logical reference: the
// concrete localized file chosen and the score it won with.
type Resolution struct {
	Ref   resource.LocalizedFileReference
	Score float64
}

// StorageKey is the bundle-relative location of the chosen file.
func (r Resolution) StorageKey() string {
	return r.Ref.StorageKey()
}

// Resolve finds the best concrete localized file for a logical reference and
// a requested locale. It is a pure function of the candidate set, the
// requested locale and the bundle's matching behaviour; nothing is cached
// between calls.
func (b *Bundle) Resolve(
	ctx context.Context,
	ref resource.FileReference,
	requested locale.Key,
) (Resolution, error) {
	localized, err := b.candidates(ctx, ref)
	if err != nil {
		return Resolution{}, err
	}
	if len(localized) == 0 {
		return Resolution{}, fmt.Errorf("%w: %s", ErrReferenceNotFound, ref)
	}

	candidates := make([]resource.Candidate, 0, len(localized))
	for _, lref := range localized {
		candidates = append(candidates, resource.Candidate{
			Ref:   lref,
			Score: lref.Localization.Score(requested, b.behaviour),
		})
	}

	// Stable order: by score descending, then by filename so equal scores
	// keep the listing order regardless of how the walk produced them.
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].Ref.Filename() < candidates[j].Ref.Filename()
	})

	best := candidates[0]

	if best.Score > b.minimumScore {
		if len(candidates) > 1 && candidates[1].Score == best.Score {
			return Resolution{}, fmt.Errorf("%w: %s and %s both score %.2f for %s",
				ErrAmbiguousMatch,
				best.Ref.Filename(), candidates[1].Ref.Filename(), best.Score, requested)
		}

		return Resolution{Ref: best.Ref, Score: best.Score}, nil
	}

	if !b.fallback.IsZero() {
		for _, candidate := range candidates {
			if candidate.Ref.Localization.Equal(b.fallback) {
				b.Log(ctx).
					WithField("reference", ref.String()).
					WithField("requested", requested.String()).
					WithField("fallback", b.fallback.String()).
					Warn("no candidate scored above threshold, using fallback localization")

				return Resolution{Ref: candidate.Ref, Score: candidate.Score}, nil
			}
		}
	}

	return Resolution{}, fmt.Errorf("%w: %s for locale %s", ErrReferenceNotFound, ref, requested)
}

// candidates lists the reference's category folder and keeps the files that
// parse and belong to the reference's family. Unparseable filenames are
// logged by the codec and skipped; they never abort resolution of siblings.
func (b *Bundle) candidates(
	ctx context.Context,
	ref resource.FileReference,
) ([]resource.LocalizedFileReference, error) {
	if b.store == nil {
		return nil, ErrNoStore
	}

	filenames, err := b.store.ListFolder(ctx, ref.Category.String())
	if err != nil {
		return nil, err
	}

	var localized []resource.LocalizedFileReference
	for _, filename := range filenames {
		parsed, ok := locale.ParseFilename(ctx, filename)
		if !ok {
			continue
		}
		if parsed.Name != ref.Name || parsed.Extension != ref.Extension {
			continue
		}

		localized = append(localized, resource.LocalizedFileReference{
			FileReference: ref,
			Localization:  parsed.Localization,
		})
	}

	return localized, nil
}
