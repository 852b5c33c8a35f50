package domain

// Default settings values.
const (
	DefaultPublicPrefix   = "/uploads"
	DefaultMHTMLImageDir  = "mhtml"
	DefaultDownloadDir    = "downloads"
	DefaultSourceName     = "AliExpress"
	DefaultBaseURL        = "https://www.aliexpress.com"
	DefaultCDNHost        = "alicdn.com"
	DefaultImageSize      = "640x640"
	DefaultFetchRate      = 2.0
	DefaultFetchUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
)

// StorageSettings configures where images are materialised.
type StorageSettings struct {
	// Root is the local directory that backs PublicPrefix.
	Root string

	// PublicPrefix is the URL prefix under which Root is served.
	PublicPrefix string
}

// ImageSettings configures image materialisation and download.
type ImageSettings struct {
	// MHTMLDir is the directory (relative to Root) for archive images.
	MHTMLDir string

	// DownloadDir is the directory (relative to Root) for downloaded images.
	DownloadDir string

	// Download enables fetching external images.
	Download bool
}

// FetchSettings configures the HTTP image fetcher.
type FetchSettings struct {
	// RatePerSecond caps request rate against the image host.
	RatePerSecond float64

	// UserAgent is sent with every request.
	UserAgent string
}

// ScraperSettings configures the order scraper.
type ScraperSettings struct {
	// SourceName is the marketplace name used as supplier.
	SourceName string

	// BaseURL resolves site-relative links.
	BaseURL string

	// CDNHost is the image CDN preferred when picking item images.
	CDNHost string

	// ImageSize replaces thumbnail size tokens in CDN image URLs.
	ImageSize string

	// ContainerSelectors are tried before the built-in order container cascade.
	ContainerSelectors []string

	// ItemSelectors are tried before the built-in item container cascade.
	ItemSelectors []string
}

// Settings holds all application configuration.
type Settings struct {
	Storage     StorageSettings
	Images      ImageSettings
	Fetch       FetchSettings
	Scraper     ScraperSettings
	DatabaseDir string
}

// DefaultSettings returns settings with sensible defaults.
func DefaultSettings() Settings {
	return Settings{
		Storage: StorageSettings{
			PublicPrefix: DefaultPublicPrefix,
		},
		Images: ImageSettings{
			MHTMLDir:    DefaultMHTMLImageDir,
			DownloadDir: DefaultDownloadDir,
			Download:    true,
		},
		Fetch: FetchSettings{
			RatePerSecond: DefaultFetchRate,
			UserAgent:     DefaultFetchUserAgent,
		},
		Scraper: ScraperSettings{
			SourceName: DefaultSourceName,
			BaseURL:    DefaultBaseURL,
			CDNHost:    DefaultCDNHost,
			ImageSize:  DefaultImageSize,
		},
	}
}
