package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sctr/internal/models"
)

func TestRenderSectionWithoutOptionalKeys(t *testing.T) {
	card := RenderSection(1, models.NewRecord(field("ruc", models.String("20100"))))

	assert.Equal(t, "Póliza #1", card.Title)
	assert.False(t, card.HasPolicyNumber)
	assert.Equal(t, LabelGeneralInfo, card.General.Title)
	assert.Equal(t, LabelValidityPeriod, card.Validity.Title)
	assert.NotNil(t, card.Validity.Rows)
	assert.Empty(t, card.Validity.Rows)
	assert.Nil(t, card.Insured)

	require.Len(t, card.General.Rows, 1)
	assert.Equal(t, Row{Key: "ruc", Label: "Ruc", Value: Display{Text: "20100"}}, card.General.Rows[0])
}

func TestRenderSectionFullCard(t *testing.T) {
	sec := models.NewRecord(
		field(models.KeyPolicyNumber, models.String("SCTR-99")),
		field("date_of_issuance", models.String("01/01/2024")),
		field(models.KeyInsuranceCompany, models.String("Rimac")),
		field(models.KeyCompany, models.String("ACME")),
		field(models.KeyStartDateValidity, models.String("01/01/2024")),
		field(models.KeyEndDateValidity, models.String("31/12/2024")),
		field(models.KeyValidity, models.String("Anual")),
		field(models.KeyPersonByPolicy, models.People(
			models.PersonRecord{FullName: "Juan Perez", DocumentNumber: "123"},
		)),
	)
	card := RenderSection(2, sec)

	assert.Equal(t, "Póliza #2", card.Title)
	assert.True(t, card.HasPolicyNumber)
	assert.Equal(t, "SCTR-99", card.PolicyNumber)

	labels := func(g Group) []string {
		out := make([]string, 0, len(g.Rows))
		for _, r := range g.Rows {
			out = append(out, r.Label)
		}
		return out
	}
	assert.Equal(t, []string{LabelCompany, LabelInsuranceCompany, LabelIssueDate, "Date of issuance"}, labels(card.General))
	assert.Equal(t, []string{LabelValidity, LabelStartDate, LabelEndDate}, labels(card.Validity))

	require.NotNil(t, card.Insured)
	assert.Equal(t, LabelInsuredPersons, card.Insured.Title)
	assert.Equal(t, PersonColumns, card.Insured.Columns)
	assert.Equal(t, []PersonRow{{Name: "Juan Perez", Document: "123", CoverageStart: Placeholder}}, card.Insured.Rows)
}

func TestRenderSectionsKeepsOrder(t *testing.T) {
	cards := RenderSections([]models.PolicySection{
		models.NewRecord(field(models.KeyPolicyNumber, models.String("A"))),
		models.NewRecord(field(models.KeyPolicyNumber, models.String("B"))),
	})
	require.Len(t, cards, 2)
	assert.Equal(t, "Póliza #1", cards[0].Title)
	assert.Equal(t, "A", cards[0].PolicyNumber)
	assert.Equal(t, "Póliza #2", cards[1].Title)
	assert.Equal(t, "B", cards[1].PolicyNumber)
}

func TestRenderSectionsEmpty(t *testing.T) {
	cards := RenderSections(nil)
	assert.NotNil(t, cards)
	assert.Empty(t, cards)
}
