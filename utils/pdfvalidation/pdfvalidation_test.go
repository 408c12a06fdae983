package pdfvalidation

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckRejectsNonPDF(t *testing.T) {
	res := Check([]byte("hello world"), PaperLimits)
	assert.False(t, res.Valid())
	assert.Equal(t, "not a PDF file", res.Problem)
}

func TestCheckRejectsOversizedFile(t *testing.T) {
	limits := Limits{MaxFileSizeMB: 1, MaxPages: 10, Kind: "exam paper"}
	big := append([]byte("%PDF-1.4\n"), bytes.Repeat([]byte{'x'}, 1024*1024)...)

	res := Check(big, limits)
	assert.False(t, res.Valid())
	assert.Contains(t, res.Problem, "larger than 1MB")
}

func TestCheckRejectsBrokenPDF(t *testing.T) {
	res := Check([]byte("%PDF-1.4\nnot really a pdf"), PaperLimits)
	assert.False(t, res.Valid())
	assert.Contains(t, res.Problem, "unreadable PDF")
}

func TestTrimTrailer(t *testing.T) {
	in := []byte("%PDF-1.4\nbody\n%%EOF\r\ngarbage")
	assert.Equal(t, []byte("%PDF-1.4\nbody\n%%EOF\r\n"), trimTrailer(in))

	noMarker := []byte("%PDF-1.4\nbody")
	assert.Equal(t, noMarker, trimTrailer(noMarker))

	notPDF := []byte("plain%%EOFtext")
	assert.Equal(t, notPDF, trimTrailer(notPDF))
}
