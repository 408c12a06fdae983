// Package pdfvalidation checks uploaded exam papers and resource documents
// before they are stored.
package pdfvalidation

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// Limits bounds an uploaded PDF
type Limits struct {
	MaxFileSizeMB int
	MaxPages      int
	Kind          string // used in messages, e.g. "exam paper"
}

var (
	PaperLimits = Limits{
		MaxFileSizeMB: 20,
		MaxPages:      60,
		Kind:          "exam paper",
	}

	ResourceLimits = Limits{
		MaxFileSizeMB: 50,
		MaxPages:      500,
		Kind:          "resource document",
	}
)

// Result of checking one document. Problem is empty when the document is
// acceptable.
type Result struct {
	PageCount int
	FileSize  int64
	Problem   string
}

func (r Result) Valid() bool { return r.Problem == "" }

// Check validates PDF content against limits. A rejected document is
// reported through Result.Problem.
func Check(content []byte, limits Limits) Result {
	res := Result{FileSize: int64(len(content))}

	if res.FileSize > int64(limits.MaxFileSizeMB)*1024*1024 {
		res.Problem = fmt.Sprintf("file is larger than %dMB", limits.MaxFileSizeMB)
		return res
	}
	if !bytes.HasPrefix(content, []byte("%PDF-")) {
		res.Problem = "not a PDF file"
		return res
	}

	pages, err := PageCount(content)
	if err != nil {
		res.Problem = fmt.Sprintf("unreadable PDF: %v", err)
		return res
	}
	res.PageCount = pages

	switch {
	case pages == 0:
		res.Problem = "PDF has no pages"
	case pages > limits.MaxPages:
		res.Problem = fmt.Sprintf("%s has %d pages, the maximum is %d", limits.Kind, pages, limits.MaxPages)
	}
	return res
}

// PageCount returns the number of pages of a PDF document
func PageCount(content []byte) (int, error) {
	content = trimTrailer(content)
	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return 0, fmt.Errorf("failed to parse PDF: %w", err)
	}
	return r.NumPage(), nil
}

// trimTrailer drops bytes after the last %%EOF marker, which some scanners
// append and which the parser rejects
func trimTrailer(content []byte) []byte {
	if !bytes.HasPrefix(content, []byte("%PDF-")) {
		return content
	}

	marker := []byte("%%EOF")
	last := bytes.LastIndex(content, marker)
	if last == -1 {
		return content
	}

	end := last + len(marker)
	for end < len(content) && (content[end] == '\n' || content[end] == '\r') {
		end++
	}
	return content[:end]
}
