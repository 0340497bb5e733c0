package models

// Reserved PolicySection keys.
const (
	KeyPolicyNumber      = "policy_number"
	KeyCompany           = "company"
	KeyInsuranceCompany  = "insurance_company"
	KeyValidity          = "validity"
	KeyStartDateValidity = "start_date_validity"
	KeyEndDateValidity   = "end_date_validity"
	KeyPersonByPolicy    = "person_by_policy"
)

// ValidationResult is one completed analysis as returned by the extraction service.
type ValidationResult struct {
	ExtractedText     string            `json:"extracted_text"`
	Component         StructuredContent `json:"component"`
	PersonName        string            `json:"person_name"`
	SegmentedSections SegmentedSections `json:"segmented_sections"`
}

type StructuredContent struct {
	Metadata DocumentMetadata  `json:"metadata"`
	Sections []DocumentSection `json:"sections"`
}

type DocumentMetadata struct {
	TotalLength    int64  `json:"total_length"`
	SectionCount   int64  `json:"section_count"`
	AdditionalInfo Record `json:"additional_info,omitzero"`
}

type DocumentSection struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// SegmentedSections holds the detected policies in detection order.
type SegmentedSections struct {
	Content []PolicySection `json:"content"`
}

// PolicySection is one detected policy: an open-ended record whose reserved keys
// carry specific meaning.
type PolicySection = Record

type PersonRecord struct {
	FullName          string `json:"full_name"`
	DocumentNumber    string `json:"document_number"`
	CoverageStartDate string `json:"coverage_start_date,omitempty"`
}
