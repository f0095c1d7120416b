package folioapi

import (
	"context"
	"fmt"
	"net/url"
)

const (
	logoBaseURL   = "https://assets.parqet.com/logos/symbol/"
	avatarBaseURL = "https://ui-avatars.com/api/"

	// CardLogoSize is the avatar size used for holding cards.
	CardLogoSize = 128
	// ResultLogoSize is the avatar size used for search rows.
	ResultLogoSize = 64
)

// LogoURL returns the logo URL derived from a symbol.
func LogoURL(symbol string) string {
	return logoBaseURL + url.PathEscape(symbol) + "?format=png"
}

// AvatarURL returns the generated placeholder image for a symbol.
func AvatarURL(symbol string, size int) string {
	return fmt.Sprintf("%s?name=%s&background=random&color=fff&size=%d", avatarBaseURL, url.QueryEscape(symbol), size)
}

// Logo resolves the image shown for a symbol. It starts at the override or
// derived URL and falls back to the avatar at most once.
type Logo struct {
	Symbol  string
	Primary string
	Size    int

	fellBack bool
}

// NewLogo returns the logo for symbol, preferring override when it is set.
func NewLogo(symbol, override string, size int) Logo {
	primary := override
	if primary == "" {
		primary = LogoURL(symbol)
	}
	return Logo{Symbol: symbol, Primary: primary, Size: size}
}

// URL returns the URL currently in use.
func (l Logo) URL() string {
	if l.fellBack {
		return AvatarURL(l.Symbol, l.Size)
	}
	return l.Primary
}

// FellBack reports whether the avatar is in use.
func (l Logo) FellBack() bool {
	return l.fellBack
}

// Fail records a load failure of the current URL. The first failure switches
// to the avatar and returns true; later failures change nothing.
func (l *Logo) Fail() bool {
	if l.fellBack {
		return false
	}
	l.fellBack = true
	return true
}

// CheckLogo reports whether an image URL can be loaded.
func (c *Client) CheckLogo(ctx context.Context, imageURL string) error {
	resp, err := c.rc.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Head(imageURL)
	if err != nil {
		return &TransportError{Op: "HEAD " + imageURL, Err: err}
	}
	if resp.Body != nil {
		defer func() { _ = resp.Body.Close() }()
	}

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return &APIError{StatusCode: resp.StatusCode(), Endpoint: imageURL}
	}
	return nil
}
