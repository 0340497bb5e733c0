package report

import "fmt"

// Placeholder stands in for any value that was not extracted.
const Placeholder = "-"

const (
	LabelPoliciesHeading = "Análisis de Pólizas"
	LabelGeneralInfo     = "Información General"
	LabelValidityPeriod  = "Período de Vigencia"
	LabelInsuredPersons  = "Personas Aseguradas"

	LabelCompany          = "Empresa"
	LabelInsuranceCompany = "Aseguradora"
	LabelIssueDate        = "Fecha de Emisión"
	LabelValidity         = "Vigencia"
	LabelStartDate        = "Fecha de Inicio"
	LabelEndDate          = "Fecha de Fin"

	ColumnName          = "Nombre"
	ColumnDocument      = "Documento"
	ColumnCoverageStart = "Fecha Inicio"

	LabelMetadata       = "Metadatos del Documento"
	LabelTotalLength    = "Longitud total"
	LabelSectionCount   = "Número de secciones"
	LabelUntitled       = "Sección sin título"
	LabelExtractedText  = "Texto Extraído"
	LabelSearchedPerson = "Persona buscada"
	LabelNoPolicies     = "No se detectaron pólizas en el documento"

	TabLabelAnalysis   = "Análisis del Documento"
	TabLabelStructured = "Contenido Estructurado"
	TabLabelRaw        = "Texto Extraído"
)

// PersonColumns are the insured-persons table headers, in display order.
var PersonColumns = []string{ColumnName, ColumnDocument, ColumnCoverageStart}

// PolicyTitle is the card title for the 1-based detection index.
func PolicyTitle(index int) string {
	return fmt.Sprintf("Póliza #%d", index)
}
