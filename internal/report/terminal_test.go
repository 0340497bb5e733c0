package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, Build(mustParse(t, sampleResult), "sctr"), TextOptions{}))
	out := buf.String()

	assert.Contains(t, out, LabelSearchedPerson+": Juan Perez")
	assert.Contains(t, out, "Póliza #1  [P-1]")
	assert.Contains(t, out, "Póliza #2  [P-2]")
	assert.Less(t, strings.Index(out, "Póliza #1"), strings.Index(out, "Póliza #2"))
	assert.Contains(t, out, LabelInsuredPersons)
	assert.Contains(t, out, ColumnDocument)
	assert.Contains(t, out, "1.234.567")
	assert.Contains(t, out, "### "+LabelUntitled)
	assert.Contains(t, out, "«SCTR»")
	assert.NotContains(t, out, ansiMatch)
}

func TestWriteTextColorAndSkipRaw(t *testing.T) {
	r := Build(mustParse(t, sampleResult), "juan")

	var colored bytes.Buffer
	require.NoError(t, WriteText(&colored, r, TextOptions{Color: true}))
	assert.Contains(t, colored.String(), ansiMatch+"Juan"+ansiReset)

	var skipped bytes.Buffer
	require.NoError(t, WriteText(&skipped, r, TextOptions{SkipRawText: true}))
	assert.NotContains(t, skipped.String(), "== "+TabLabelRaw+" ==")
}

func TestWriteTextNoPolicies(t *testing.T) {
	var buf bytes.Buffer
	r := Build(mustParse(t, `{"extracted_text":"x","component":{},"segmented_sections":{"content":[]}}`), "")
	require.NoError(t, WriteText(&buf, r, TextOptions{}))
	assert.Contains(t, buf.String(), LabelNoPolicies)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteTextReportsWriteError(t *testing.T) {
	err := WriteText(failingWriter{}, Build(mustParse(t, sampleResult), ""), TextOptions{})
	require.EqualError(t, err, "disk full")
}
