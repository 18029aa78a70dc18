package mxl

import (
	"encoding/xml"
	"fmt"
	"io"
)

// Parse reads a score-partwise document from r.
func Parse(r io.Reader) (*ScorePartwise, error) {
	var doc ScorePartwise
	decoder := xml.NewDecoder(r)
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse MusicXML: %w", err)
	}
	return &doc, nil
}

// WriteTo writes the document as indented XML with the standard header.
func (s *ScorePartwise) WriteTo(w io.Writer) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	encoder := xml.NewEncoder(w)
	encoder.Indent("", "  ")
	if err := encoder.Encode(s); err != nil {
		return fmt.Errorf("failed to encode MusicXML: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}
