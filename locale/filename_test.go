package locale_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/pitabwire/tafiti/locale"
)

type FilenameSuite struct {
	suite.Suite
}

func TestFilenameSuite(t *testing.T) {
	suite.Run(t, new(FilenameSuite))
}

func (s *FilenameSuite) TestParseFilename() {
	ctx := context.Background()

	testCases := []struct {
		name     string
		filename string
		ok       bool
		expected locale.ParsedFilename
	}{
		{
			name:     "well formed",
			filename: "consent+en-US.md",
			ok:       true,
			expected: locale.ParsedFilename{
				Name:         "consent",
				Extension:    "md",
				Localization: locale.Key{Language: "en", Region: "US"},
			},
		},
		{
			name:     "questionnaire json",
			filename: "social-support+sw-KE.json",
			ok:       true,
			expected: locale.ParsedFilename{
				Name:         "social-support",
				Extension:    "json",
				Localization: locale.Key{Language: "sw", Region: "KE"},
			},
		},
		{
			name:     "missing separator",
			filename: "consent.md",
			ok:       false,
		},
		{
			name:     "suffix without region",
			filename: "consent+en.md",
			ok:       false,
		},
		{
			name:     "empty name",
			filename: "+en-US.md",
			ok:       false,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			parsed, ok := locale.ParseFilename(ctx, tc.filename)
			s.Require().Equal(tc.ok, ok)
			if ok {
				s.Equal(tc.expected, parsed)
			}
		})
	}
}

func (s *FilenameSuite) TestRoundTrip() {
	ctx := context.Background()

	for _, filename := range []string{
		"consent+en-US.md",
		"welcome+de-DE.md",
		"phq-9+es-MX.json",
	} {
		parsed, ok := locale.ParseFilename(ctx, filename)
		s.Require().True(ok, filename)
		s.Equal(filename, locale.Filename(parsed.Name, parsed.Extension, parsed.Localization))
	}
}
