package diag_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/pitabwire/tafiti/diag"
)

type ValueSuite struct {
	suite.Suite
}

func TestValueSuite(t *testing.T) {
	suite.Run(t, new(ValueSuite))
}

func (s *ValueSuite) TestValueOfUnwrapsPointers() {
	text := "hello"
	number := 5
	flag := true

	s.Equal(diag.String("hello"), diag.ValueOf(&text))
	s.Equal(diag.Int(5), diag.ValueOf(&number))
	s.Equal(diag.Bool(true), diag.ValueOf(&flag))

	var absent *string
	s.True(diag.ValueOf(absent).IsAbsent())
	s.True(diag.ValueOf(nil).IsAbsent())
}

func (s *ValueSuite) TestEqualityRequiresMatchingKind() {
	// An integer five is not the string "5".
	s.False(diag.Int(5).Equal(diag.String("5")))
	s.True(diag.Int(5).Equal(diag.Int(5)))
	s.False(diag.Int(5).Equal(diag.Int(6)))

	// Identifiers and strings render alike but stay distinct kinds.
	s.False(diag.Identifier("urn:x").Equal(diag.String("urn:x")))
	s.True(diag.Identifier("urn:x").Equal(diag.Identifier("urn:x")))
}

func (s *ValueSuite) TestRendering() {
	testCases := []struct {
		name     string
		value    diag.Value
		expected string
	}{
		{name: "absent", value: diag.Absent(), expected: "absent"},
		{name: "string", value: diag.String("title"), expected: `"title"`},
		{name: "int", value: diag.Int(3), expected: "3"},
		{name: "float", value: diag.Float(2.5), expected: "2.5"},
		{name: "bool", value: diag.Bool(false), expected: "false"},
		{name: "identifier", value: diag.Identifier("urn:x"), expected: `"urn:x"`},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Equal(tc.expected, tc.value.String())
		})
	}
}
