package report

import "sctr/internal/models"

type Row struct {
	Key   string  `json:"key"`
	Label string  `json:"label"`
	Value Display `json:"value"`
}

// Group is a titled block of rows. An empty group still has its title.
type Group struct {
	Title string `json:"title"`
	Rows  []Row  `json:"rows"`
}

type PeopleGroup struct {
	Title   string      `json:"title"`
	Columns []string    `json:"columns"`
	Rows    []PersonRow `json:"rows"`
}

// PolicyCard is the rendering of one policy section.
type PolicyCard struct {
	Index           int          `json:"index"`
	Title           string       `json:"title"`
	PolicyNumber    string       `json:"policy_number,omitempty"`
	HasPolicyNumber bool         `json:"has_policy_number"`
	General         Group        `json:"general"`
	Validity        Group        `json:"validity"`
	Insured         *PeopleGroup `json:"insured,omitempty"`
}

// RenderSection renders sec as the card with the given 1-based index. It is total over
// any section, including an empty one.
func RenderSection(index int, sec models.PolicySection) PolicyCard {
	c := Classify(sec)
	card := PolicyCard{
		Index:    index,
		Title:    PolicyTitle(index),
		General:  Group{Title: LabelGeneralInfo, Rows: []Row{}},
		Validity: Group{Title: LabelValidityPeriod, Rows: []Row{}},
	}
	if c.HasPolicyNumber {
		card.HasPolicyNumber = true
		card.PolicyNumber = Format(models.KeyPolicyNumber, c.PolicyNumber).Text
	}
	for _, f := range c.General {
		card.General.Rows = append(card.General.Rows, Row{Key: f.Key, Label: f.Label, Value: Format(f.Key, f.Value)})
	}
	for _, f := range c.Generic {
		card.General.Rows = append(card.General.Rows, Row{Key: f.Key, Label: FormatKey(f.Key), Value: Format(f.Key, f.Value)})
	}
	for _, f := range c.Validity {
		card.Validity.Rows = append(card.Validity.Rows, Row{Key: f.Key, Label: f.Label, Value: Format(f.Key, f.Value)})
	}
	if c.HasPeople() {
		card.Insured = &PeopleGroup{
			Title:   LabelInsuredPersons,
			Columns: PersonColumns,
			Rows:    PersonRows(c.People),
		}
	}
	return card
}

// RenderSections keeps detection order; card N renders sections[N-1].
func RenderSections(sections []models.PolicySection) []PolicyCard {
	cards := make([]PolicyCard, 0, len(sections))
	for i, sec := range sections {
		cards = append(cards, RenderSection(i+1, sec))
	}
	return cards
}
