package localization_test

import (
	"context"
	"testing"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/stretchr/testify/suite"

	"github.com/pitabwire/tafiti/localization"
)

type LocalizationSuite struct {
	suite.Suite
}

func TestLocalizationSuite(t *testing.T) {
	suite.Run(t, new(LocalizationSuite))
}

func (s *LocalizationSuite) TestTranslations() {
	testCases := []struct {
		name         string
		languages    []string
		messageID    string
		templateData map[string]any
		expectedEn   string
		expectedSw   string
	}{
		{
			name:      "issue count summary",
			languages: []string{"en", "sw"},
			messageID: "IssuesFound",
			templateData: map[string]any{
				"Count": 3,
			},
			expectedEn: "Found 3 issues",
			expectedSw: "Tumepata hitilafu 3",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			lm := localization.NewManager("test_data", tc.languages...)

			ctx := context.Background()

			english := lm.TranslateWithMapAndCount(ctx, "en", tc.messageID, tc.templateData, 3)
			s.Equal(tc.expectedEn, english)

			swahili := lm.TranslateWithMapAndCount(ctx, "sw", tc.messageID, tc.templateData, 3)
			s.Equal(tc.expectedSw, swahili)
		})
	}
}

func (s *LocalizationSuite) TestTranslateFallsBackToMessageID() {
	lm := localization.NewManager("test_data", "en")

	ctx := context.Background()
	s.Equal("NoSuchMessage", lm.Translate(ctx, "en", "NoSuchMessage"))

	// An unusable request object falls back to the message id as well.
	s.Equal("IssuesFound", lm.Translate(ctx, 42, "IssuesFound"))
}

func (s *LocalizationSuite) TestContextCarriesLanguages() {
	ctx := localization.ToContext(context.Background(), []string{"sw", "en"})
	s.Equal([]string{"sw", "en"}, localization.FromContext(ctx))
	s.Nil(localization.FromContext(context.Background()))
}

func (s *LocalizationSuite) TestParseAcceptLanguage() {
	s.Equal([]string{"sw-KE", "en"}, localization.ParseAcceptLanguage("sw-KE, en;q=0.8"))
	s.Nil(localization.ParseAcceptLanguage(""))
}

func (s *LocalizationSuite) TestBundleExposesLoadedMessages() {
	lm := localization.NewManager("test_data", "en", "sw")

	localizer := i18n.NewLocalizer(lm.Bundle(), "en")
	version, err := localizer.Localize(&i18n.LocalizeConfig{
		DefaultMessage: &i18n.Message{ID: "IssuesFound"},
		TemplateData:   map[string]any{"Count": 1},
		PluralCount:    1,
	})
	s.Require().NoError(err)
	s.Equal("Found 1 issue", version)
}
