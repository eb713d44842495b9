package document

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
)

// gzipMagic is the two-byte header of a gzip stream.
var gzipMagic = []byte{0x1f, 0x8b}

// Load reads an analyzed document from a file. Both plain JSON and
// gzip-compressed JSON are accepted; compression is detected from the
// stream, not the file name.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open analysis file: %w", err)
	}
	defer f.Close() //nolint:errcheck
	return Decode(f)
}

// Decode reads an analyzed document from r, transparently decompressing
// gzip input.
func Decode(r io.Reader) (*Document, error) {
	br := bufio.NewReader(r)

	head, err := br.Peek(2)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("unable to read analysis: %w", err)
	}

	var src io.Reader = br
	if bytes.Equal(head, gzipMagic) {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("unable to open gzip stream: %w", err)
		}
		defer gz.Close() //nolint:errcheck
		src = gz
	}

	var doc Document
	dec := json.NewDecoder(src)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("unable to decode analysis: %w", err)
	}

	doc.applyDefaults()
	return &doc, nil
}

// applyDefaults fills in answer times the analyzer left at zero. The
// engine itself never mutates documents; this runs once at the input
// boundary.
func (d *Document) applyDefaults() {
	for i := range d.Paragraphs {
		for j := range d.Paragraphs[i].Questions {
			if d.Paragraphs[i].Questions[j].AnswerTimeSeconds <= 0 {
				d.Paragraphs[i].Questions[j].AnswerTimeSeconds = DefaultAnswerTimeSeconds
			}
		}
	}
	for j := range d.FinalQuestions {
		if d.FinalQuestions[j].AnswerTimeSeconds <= 0 {
			d.FinalQuestions[j].AnswerTimeSeconds = DefaultAnswerTimeSeconds
		}
		d.FinalQuestions[j].IsFinalQuestion = true
	}
	if d.TotalParagraphs == 0 {
		d.TotalParagraphs = len(d.Paragraphs)
	}
}
