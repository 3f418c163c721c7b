package document_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/pitabwire/tafiti/document"
)

type DocumentSuite struct {
	suite.Suite
}

func TestDocumentSuite(t *testing.T) {
	suite.Run(t, new(DocumentSuite))
}

func (s *DocumentSuite) TestDecodeQuestionnaire() {
	data := []byte(`{
		"id": "phq-9",
		"title": "Patient Health Questionnaire",
		"language": "en-US",
		"status": "active",
		"item": [
			{
				"linkId": "1",
				"text": "Little interest or pleasure in doing things",
				"type": "choice",
				"required": true,
				"answerOption": [
					{"valueCoding": {"system": "urn:phq", "code": "0", "display": "Not at all"}},
					{"valueCoding": {"system": "urn:phq", "code": "1", "display": "Several days"}}
				]
			},
			{
				"linkId": "group-1",
				"type": "group",
				"item": [
					{
						"linkId": "1.1",
						"text": "Nested question",
						"type": "integer",
						"extension": [
							{"url": "http://hl7.org/fhir/StructureDefinition/minValue", "valueInteger": 0},
							{"url": "http://hl7.org/fhir/StructureDefinition/maxValue", "valueInteger": 27}
						]
					}
				]
			}
		]
	}`)

	q, err := document.DecodeQuestionnaire(data)
	s.Require().NoError(err)

	s.Equal("phq-9", q.Identifier)
	s.Equal("en-US", q.Language)
	s.Require().Len(q.Items, 2)
	s.Require().NotNil(q.Items[0].Required)
	s.True(*q.Items[0].Required)
	s.Len(q.Items[0].AnswerOptions, 2)
	s.True(q.Items[1].IsGrouping())
	s.Require().Len(q.Items[1].Items, 1)

	min, ok := q.Items[1].Items[0].Extensions[0].BoundValue()
	s.True(ok)
	s.InDelta(0, min, 0.0001)
}

func (s *DocumentSuite) TestDecodeQuestionnaireRejectsMalformedBytes() {
	_, err := document.DecodeQuestionnaire([]byte(`{"item": [`))
	s.Require().Error(err)
}

func (s *DocumentSuite) TestDecodeArticleYAMLFrontMatter() {
	data := []byte("---\ntitle: Welcome\nid: welcome\nlanguage: en-US\n---\n\n# Welcome\n\nSome study information.\n")

	a, err := document.DecodeArticle(data)
	s.Require().NoError(err)

	s.Equal("Welcome", a.Title())
	s.Equal("welcome", a.Identifier())
	s.Equal("en-US", a.Language())
	s.Contains(a.Body, "# Welcome")

	html, err := a.RenderBody()
	s.Require().NoError(err)
	s.Contains(html, "<h1>")
}

func (s *DocumentSuite) TestDecodeArticleTOMLFrontMatter() {
	data := []byte("+++\ntitle = \"Karibu\"\nlanguage = \"sw-KE\"\n+++\nMaelezo ya utafiti.\n")

	a, err := document.DecodeArticle(data)
	s.Require().NoError(err)
	s.Equal("Karibu", a.Title())
	s.Equal("sw-KE", a.Language())
	s.Contains(a.Body, "Maelezo")
}

func (s *DocumentSuite) TestDecodeArticleWithoutFrontMatter() {
	a, err := document.DecodeArticle([]byte("Just a body.\n"))
	s.Require().NoError(err)
	s.Empty(a.Meta)
	s.Contains(a.Body, "Just a body.")
}

func (s *DocumentSuite) TestDecodeArticleUnterminatedFence() {
	_, err := document.DecodeArticle([]byte("---\ntitle: Broken\n"))
	s.Require().ErrorIs(err, document.ErrMalformedFrontMatter)
}
