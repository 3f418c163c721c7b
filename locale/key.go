package locale

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// ErrInvalidKey is returned when a localization string cannot be split into a
// language and a region component.
var ErrInvalidKey = errors.New("invalid localization key")

const keySeparator = "-"

// Key identifies one translated variant of a resource as a (language, region)
// pair. Both components are always non-empty; the zero Key is not a valid
// localization and only shows up as a "no key" marker.
type Key struct {
	Language string
	Region   string
}

// New creates a Key after canonicalising the component casing.
func New(lang, region string) (Key, error) {
	lang = strings.TrimSpace(lang)
	region = strings.TrimSpace(region)
	if lang == "" || region == "" {
		return Key{}, fmt.Errorf("%w: language %q region %q", ErrInvalidKey, lang, region)
	}

	return Key{Language: strings.ToLower(lang), Region: strings.ToUpper(region)}, nil
}

// Parse reads a "<language>-<REGION>" string into a Key.
func Parse(s string) (Key, error) {
	lang, region, ok := strings.Cut(s, keySeparator)
	if !ok {
		return Key{}, fmt.Errorf("%w: %q has no %q separator", ErrInvalidKey, s, keySeparator)
	}

	return New(lang, region)
}

// FromTag derives a Key from a BCP-47 tag such as one obtained from a runtime
// locale. Tags without an explicit region resolve to the tag's most likely
// region.
func FromTag(tag language.Tag) (Key, error) {
	base, _ := tag.Base()
	region, _ := tag.Region()

	return New(base.String(), region.String())
}

// IsZero reports whether the key carries no localization at all.
func (k Key) IsZero() bool {
	return k.Language == "" && k.Region == ""
}

// String serialises the key back to its wire form, e.g. "en-US".
func (k Key) String() string {
	return k.Language + keySeparator + k.Region
}

// Equal compares keys component-wise, ignoring case differences.
func (k Key) Equal(o Key) bool {
	return strings.EqualFold(k.Language, o.Language) && strings.EqualFold(k.Region, o.Region)
}

// sameLanguage compares two language subtags through their canonical base so
// that e.g. "en" and the language of "en-GB" collapse to the same value.
// Unparseable subtags fall back to a case-insensitive string comparison.
func sameLanguage(a, b string) bool {
	tagA, errA := language.Parse(a)
	tagB, errB := language.Parse(b)
	if errA != nil || errB != nil {
		return strings.EqualFold(a, b)
	}

	baseA, confA := tagA.Base()
	baseB, confB := tagB.Base()
	if confA == language.No || confB == language.No {
		return strings.EqualFold(a, b)
	}

	return baseA == baseB
}

// sameRegion compares region subtags.
func sameRegion(a, b string) bool {
	return strings.EqualFold(a, b)
}
