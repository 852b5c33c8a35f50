package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	assert.Equal(t, "/uploads", s.Storage.PublicPrefix)
	assert.Equal(t, "mhtml", s.Images.MHTMLDir)
	assert.Equal(t, "downloads", s.Images.DownloadDir)
	assert.True(t, s.Images.Download)
	assert.InDelta(t, 2.0, s.Fetch.RatePerSecond, 0.0001)
	assert.NotEmpty(t, s.Fetch.UserAgent)
	assert.Equal(t, "AliExpress", s.Scraper.SourceName)
	assert.Equal(t, "https://www.aliexpress.com", s.Scraper.BaseURL)
	assert.Equal(t, "alicdn.com", s.Scraper.CDNHost)
	assert.Equal(t, "640x640", s.Scraper.ImageSize)
	assert.Empty(t, s.Scraper.ContainerSelectors)
}
