package locale

import (
	"context"
	"path"
	"strings"

	"github.com/pitabwire/util"
)

// NameSeparator splits the logical resource name from the localization suffix
// in a physical filename. The on-disk convention is
// "<name>+<language>-<REGION>.<extension>" and is the addressing scheme for
// every resource in a bundle, so it must stay stable.
const NameSeparator = "+"

// ParsedFilename is the logical identity recovered from a physical filename.
type ParsedFilename struct {
	Name         string
	Extension    string
	Localization Key
}

// ParseFilename splits a physical filename into its unlocalized name, its
// extension and its localization key. Filenames without the separator or with
// an unparseable localization suffix are reported with ok == false and a
// logged warning; they never abort processing of sibling files.
func ParseFilename(ctx context.Context, filename string) (ParsedFilename, bool) {
	log := util.Log(ctx).WithField("filename", filename)

	ext := strings.TrimPrefix(path.Ext(filename), ".")
	stem := strings.TrimSuffix(filename, path.Ext(filename))

	name, suffix, ok := strings.Cut(stem, NameSeparator)
	if !ok || name == "" {
		log.Warn("filename has no localization separator")
		return ParsedFilename{}, false
	}

	key, err := Parse(suffix)
	if err != nil {
		log.WithError(err).Warn("filename has an unparseable localization suffix")
		return ParsedFilename{}, false
	}

	return ParsedFilename{Name: name, Extension: ext, Localization: key}, true
}

// Filename is the inverse of ParseFilename: it deterministically rebuilds the
// physical filename for a logical name, extension and localization.
func Filename(name, extension string, localization Key) string {
	var b strings.Builder
	b.WriteString(name)
	b.WriteString(NameSeparator)
	b.WriteString(localization.String())
	if extension != "" {
		b.WriteString(".")
		b.WriteString(extension)
	}

	return b.String()
}
