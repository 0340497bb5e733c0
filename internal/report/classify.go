package report

import "sctr/internal/models"

type ReservedField struct {
	Key   string
	Label string
}

// GeneralFields are shown first in the general group, in this order.
var GeneralFields = []ReservedField{
	{Key: models.KeyCompany, Label: LabelCompany},
	{Key: models.KeyInsuranceCompany, Label: LabelInsuranceCompany},
	{Key: models.KeyValidity, Label: LabelIssueDate},
}

// ValidityFields make up the validity group. validity also appears in GeneralFields;
// both groups show it.
var ValidityFields = []ReservedField{
	{Key: models.KeyValidity, Label: LabelValidity},
	{Key: models.KeyStartDateValidity, Label: LabelStartDate},
	{Key: models.KeyEndDateValidity, Label: LabelEndDate},
}

var reservedKeys = map[string]struct{}{
	models.KeyCompany:           {},
	models.KeyInsuranceCompany:  {},
	models.KeyPolicyNumber:      {},
	models.KeyPersonByPolicy:    {},
	models.KeyStartDateValidity: {},
	models.KeyEndDateValidity:   {},
	models.KeyValidity:          {},
}

// IsReserved reports whether key is excluded from the generic listing.
func IsReserved(key string) bool {
	_, ok := reservedKeys[key]
	return ok
}

type LabeledField struct {
	Key   string
	Label string
	Value models.Value
}

// Classification partitions the keys of one policy section.
type Classification struct {
	PolicyNumber    models.Value
	HasPolicyNumber bool
	General         []LabeledField
	Validity        []LabeledField
	People          []models.PersonRecord
	Generic         []models.Field
}

// HasPeople reports whether the insured-persons group should be shown.
func (c Classification) HasPeople() bool { return len(c.People) > 0 }

func Classify(sec models.PolicySection) Classification {
	var c Classification
	if v, ok := sec.Get(models.KeyPolicyNumber); ok && !v.IsNull() {
		c.PolicyNumber, c.HasPolicyNumber = v, true
	}
	c.General = presentFields(sec, GeneralFields)
	c.Validity = presentFields(sec, ValidityFields)
	if v, ok := sec.Get(models.KeyPersonByPolicy); ok && v.Kind == models.KindPeople {
		c.People = v.People
	}
	for _, f := range sec.Fields() {
		if IsReserved(f.Key) {
			continue
		}
		c.Generic = append(c.Generic, f)
	}
	return c
}

func presentFields(sec models.PolicySection, fields []ReservedField) []LabeledField {
	out := make([]LabeledField, 0, len(fields))
	for _, rf := range fields {
		v, ok := sec.Get(rf.Key)
		if !ok || v.IsNull() {
			continue
		}
		out = append(out, LabeledField{Key: rf.Key, Label: rf.Label, Value: v})
	}
	return out
}
