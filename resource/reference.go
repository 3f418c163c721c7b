package resource

import (
	"path"

	"github.com/pitabwire/tafiti/locale"
)

// Category names a family of resources and doubles as the folder the family's
// files live in inside a bundle.
type Category string

const (
	CategoryConsent       Category = "consent"
	CategoryInformational Category = "informational"
	CategoryQuestionnaire Category = "questionnaire"
)

func (c Category) String() string {
	return string(c)
}

// FileReference identifies a logical resource independent of language: the
// whole family of localized files that share a category, name and extension.
type FileReference struct {
	Category  Category
	Name      string
	Extension string
}

// String renders the reference as "category/name.extension".
func (r FileReference) String() string {
	name := r.Name
	if r.Extension != "" {
		name += "." + r.Extension
	}

	return path.Join(r.Category.String(), name)
}

// LocalizedFileReference identifies one concrete localized file of a logical
// resource. It is derived from a physical filename and never outlives it.
type LocalizedFileReference struct {
	FileReference

	Localization locale.Key
}

// Filename rebuilds the physical filename this reference points at.
func (r LocalizedFileReference) Filename() string {
	return locale.Filename(r.Name, r.Extension, r.Localization)
}

// StorageKey is the bundle-relative location of the file, i.e. the filename
// inside the category folder.
func (r LocalizedFileReference) StorageKey() string {
	return path.Join(r.Category.String(), r.Filename())
}

func (r LocalizedFileReference) String() string {
	return r.StorageKey()
}

// Equal compares the logical identity and the localization.
func (r LocalizedFileReference) Equal(o LocalizedFileReference) bool {
	return r.FileReference == o.FileReference && r.Localization.Equal(o.Localization)
}

// Candidate is a scored localized file considered during one resolution call.
type Candidate struct {
	Ref   LocalizedFileReference
	Score float64
}
