package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sctr/internal/models"
)

func TestFormatKey(t *testing.T) {
	cases := map[string]string{
		"person_by_policy":  "Person by policy",
		"startDateValidity": "Start Date Validity",
		"date_of_issuance":  "Date of issuance",
		"PolicyNumber":      " Policy Number",
		"signatories":       "Signatories",
		"ruc":               "Ruc",
		"x_Y":               "X  Y",
		"ñandú":             "Ñandú",
		"":                  "",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatKey(in), "FormatKey(%q)", in)
	}
}

func TestFormatNullIsPlaceholder(t *testing.T) {
	assert.Equal(t, Display{Text: Placeholder}, Format("anything", models.Null()))
}

func TestFormatLists(t *testing.T) {
	assert.Equal(t, "A, B", Format("signatories", models.List("A", "B")).Text)
	assert.Equal(t, Placeholder, Format("signatories", models.List()).Text)
	assert.Equal(t, Placeholder, Format("signatories", models.List("")).Text, "a list that joins to nothing is a placeholder")
	assert.Equal(t, ", x", Format("signatories", models.List("", "x")).Text)
}

func TestFormatEmptyPeopleIsPlaceholder(t *testing.T) {
	d := Format(models.KeyPersonByPolicy, models.People())
	assert.False(t, d.IsTable())
	assert.Equal(t, Placeholder, d.Text)
}

func TestFormatPeopleTable(t *testing.T) {
	d := Format(models.KeyPersonByPolicy, models.People(
		models.PersonRecord{FullName: "Juan Perez", DocumentNumber: "123", CoverageStartDate: "01/02/2024"},
		models.PersonRecord{FullName: "Ana Ruiz", DocumentNumber: "456"},
	))
	require.True(t, d.IsTable())
	assert.Equal(t, []PersonRow{
		{Name: "Juan Perez", Document: "123", CoverageStart: "01/02/2024"},
		{Name: "Ana Ruiz", Document: "456", CoverageStart: Placeholder},
	}, d.People)
}

func TestFormatScalars(t *testing.T) {
	assert.Equal(t, "ACME", Format("company", models.String("ACME")).Text)
	assert.Equal(t, "", Format("note", models.String("")).Text, "present empty strings stay empty")
}
