package tafiti_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/pitabwire/tafiti/locale"
	"github.com/pitabwire/tafiti/resource"
)

type StoreTestSuite struct {
	suite.Suite
}

func TestStoreTestSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

func (s *StoreTestSuite) TestListFolderIsSortedAndShallow() {
	ctx := s.T().Context()
	store := newMemoryStore(ctx, s.T(), map[string]string{
		"consent/zeta+en-US.md":        "z",
		"consent/alpha+en-US.md":       "a",
		"consent/nested/deep+en-US.md": "hidden",
		"informational/other+en-US.md": "elsewhere",
	})

	filenames, err := store.ListFolder(ctx, "consent")
	s.Require().NoError(err)
	s.Equal([]string{"alpha+en-US.md", "zeta+en-US.md"}, filenames)
}

func (s *StoreTestSuite) TestListFolderEmpty() {
	ctx := s.T().Context()
	store := newMemoryStore(ctx, s.T(), map[string]string{})

	filenames, err := store.ListFolder(ctx, "consent")
	s.Require().NoError(err)
	s.Empty(filenames)
}

func (s *StoreTestSuite) TestReadLocalizedFile() {
	ctx := s.T().Context()
	store := newMemoryStore(ctx, s.T(), map[string]string{
		"consent/main+sw-TZ.md": "maudhui",
	})

	key, err := locale.Parse("sw-TZ")
	s.Require().NoError(err)

	data, err := store.Read(ctx, resource.LocalizedFileReference{
		FileReference: resource.FileReference{
			Category:  resource.CategoryConsent,
			Name:      "main",
			Extension: "md",
		},
		Localization: key,
	})
	s.Require().NoError(err)
	s.Equal("maudhui", string(data))
}

func (s *StoreTestSuite) TestReadMissingFile() {
	ctx := s.T().Context()
	store := newMemoryStore(ctx, s.T(), map[string]string{})

	_, err := store.ReadKey(ctx, "definition.yaml")
	s.Require().Error(err)
	s.Contains(err.Error(), "definition.yaml")
}
