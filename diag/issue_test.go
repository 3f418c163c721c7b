package diag_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/pitabwire/tafiti/diag"
	"github.com/pitabwire/tafiti/locale"
	"github.com/pitabwire/tafiti/resource"
)

type IssueSuite struct {
	suite.Suite
}

func TestIssueSuite(t *testing.T) {
	suite.Run(t, new(IssueSuite))
}

func localizedRef(name, lang, region string) resource.LocalizedFileReference {
	return resource.LocalizedFileReference{
		FileReference: resource.FileReference{
			Category:  resource.CategoryQuestionnaire,
			Name:      name,
			Extension: "json",
		},
		Localization: locale.Key{Language: lang, Region: region},
	}
}

func (s *IssueSuite) TestMissingFieldRenderOmitsValueRows() {
	issue := diag.MissingField(diag.ScopeQuestionnaire, localizedRef("phq-9", "de", "DE"), diag.Root.Field("id"))

	rendered := issue.Render()
	s.Contains(rendered, "missing field in questionnaire questionnaire/phq-9+de-DE.json")
	s.Contains(rendered, "path: id")
	s.NotContains(rendered, "value")
}

func (s *IssueSuite) TestMismatchRenderListsBothValues() {
	base := localizedRef("phq-9", "en", "US")
	other := localizedRef("phq-9", "de", "DE")

	issue := diag.MismatchingFieldValues(
		diag.ScopeQuestionnaire,
		base, other,
		diag.Root.Field("item").Field("length"),
		diag.Int(2), diag.Int(3),
	)

	rendered := issue.Render()
	s.Contains(rendered, "base: questionnaire/phq-9+en-US.json")
	s.Contains(rendered, "path: item.length")
	s.Contains(rendered, "base value: 2")
	s.Contains(rendered, "localized value: 3")
}

func (s *IssueSuite) TestConflictRenderNamesBothPaths() {
	ref := localizedRef("phq-9", "en", "US")

	issue := diag.ConflictingFieldValues(
		diag.ScopeQuestionnaire,
		ref,
		diag.Root.Field("item").Index(0).Field("answerOption").Index(0),
		diag.Root.Field("item").Index(3).Field("answerOption").Index(1),
		diag.String("A"), diag.String("B"),
	)

	rendered := issue.Render()
	s.Contains(rendered, "paths: item[0].answerOption[0], item[3].answerOption[1]")
	s.Contains(rendered, `values: "A", "B"`)
}

func (s *IssueSuite) TestLanguageMismatchRender() {
	ref := localizedRef("phq-9", "en", "US")
	issue := diag.LanguageMismatch(diag.ScopeQuestionnaire, ref, diag.Identifier("de-DE"))

	rendered := issue.Render()
	lines := strings.Split(rendered, "\n")
	s.GreaterOrEqual(len(lines), 3)
	s.Contains(rendered, "path: language")
	s.Contains(rendered, `filename localization: "en-US"`)
	s.Contains(rendered, `declared language: "de-DE"`)
}
