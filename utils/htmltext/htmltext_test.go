package htmltext

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlainTextStripsMarkup(t *testing.T) {
	in := `<h2>Results</h2><p>Our students <b>topped</b> the board.</p><script>alert(1)</script><ul><li>One</li><li>Two</li></ul>`
	assert.Equal(t, "Results Our students topped the board. One Two", PlainText(in))
}

func TestPlainTextOfPlainInput(t *testing.T) {
	assert.Equal(t, "just words here", PlainText("  just   words\nhere "))
}

func TestReadTime(t *testing.T) {
	assert.Equal(t, 1, ReadTime(""))
	assert.Equal(t, 1, ReadTime("<p>short</p>"))

	long := "<p>" + strings.Repeat("word ", 401) + "</p>"
	assert.Equal(t, 3, ReadTime(long))
}

func TestExcerpt(t *testing.T) {
	body := "<p>Admissions for the new session are now open at every campus.</p>"

	assert.Equal(t, "Admissions for the new session are now open at every campus.", Excerpt(body, 0))
	assert.Equal(t, "Admissions for the new…", Excerpt(body, 25))
	assert.Equal(t, "short", Excerpt("short", 25))
}
