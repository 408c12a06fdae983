package storage

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientRequiresConfig(t *testing.T) {
	_, err := NewClient(Config{Bucket: "site"})
	require.ErrorIs(t, err, ErrNotConfigured)
}

func TestURLPrefersCDN(t *testing.T) {
	c, err := NewClient(Config{
		AccessKey: "key",
		SecretKey: "secret",
		Bucket:    "site-media",
		Region:    "blr1",
		Endpoint:  "https://blr1.digitaloceanspaces.com",
		CDNURL:    "https://cdn.example.org/",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.org/carousel/a.jpg", c.URL("carousel/a.jpg"))

	c.cdnURL = ""
	assert.Equal(t, "https://site-media.blr1.digitaloceanspaces.com/carousel/a.jpg", c.URL("carousel/a.jpg"))

	c.endpoint = ""
	assert.Equal(t, "https://site-media.s3.amazonaws.com/carousel/a.jpg", c.URL("carousel/a.jpg"))
}

func TestKey(t *testing.T) {
	at := time.Date(2025, 3, 9, 10, 0, 0, 0, time.UTC)

	k := Key("papers", "PDF", at)
	assert.Regexp(t, regexp.MustCompile(`^papers/2025/03/[0-9a-f-]{36}\.pdf$`), k)
	assert.NotEqual(t, k, Key("papers", ".pdf", at))
}
