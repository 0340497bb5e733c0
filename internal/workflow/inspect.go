package workflow

import (
	"bytes"

	"github.com/ledongthuc/pdf"

	"sctr/internal/util"
)

// inspect fills the informational fields of a staged file. A file the PDF reader
// cannot open is still staged, with zero pages.
func inspect(f *StagedFile) {
	f.Checksum = util.SHA256Hex(f.Data)
	f.Pages = pageCount(f.Data)
}

func pageCount(data []byte) (n int) {
	defer func() {
		// The reader panics on some malformed cross-reference tables.
		if recover() != nil {
			n = 0
		}
	}()
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0
	}
	return r.NumPage()
}
