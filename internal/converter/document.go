package converter

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/ginjaninja78/stormworks-definitions-converter/internal/definition"
	"github.com/ginjaninja78/stormworks-definitions-converter/internal/xmltree"
)

// Indent is the pretty-print indentation of the output document.
const Indent = "  "

// Document is the aggregated output: {"definitions": [...]}.
type Document struct {
	Definitions []definition.Definition `json:"definitions"`
}

// Encode renders the document as indented JSON. HTML characters in
// descriptions are kept verbatim and no trailing newline is added, so the
// same input always yields the same bytes.
func (d *Document) Encode() ([]byte, error) {
	defs := d.Definitions
	if defs == nil {
		defs = []definition.Definition{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", Indent)
	if err := enc.Encode(Document{Definitions: defs}); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func isMalformed(err error) bool {
	var malformed *xmltree.MalformedXMLError
	return errors.As(err, &malformed)
}
