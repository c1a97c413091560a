package wishlist

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrBadToken is returned when a share token cannot be decoded. Callers
// treat it as "no shared wishlist present", never as a fatal condition.
var ErrBadToken = errors.New("malformed share token")

// ShareParam is the query parameter carrying the encoded wishlist in a
// share link.
const ShareParam = "wishlist"

// EncodeToken encodes an ordered name list into an opaque URL-safe token.
// DecodeToken inverts it exactly.
func EncodeToken(names []string) string {
	if names == nil {
		names = []string{}
	}
	data, _ := json.Marshal(names)
	return base64.URLEncoding.EncodeToString(data)
}

// DecodeToken decodes a share token back into the name list. It never
// panics on malformed input.
func DecodeToken(token string) ([]string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, fmt.Errorf("%w: empty token", ErrBadToken)
	}

	data, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		// Tolerate tokens minted by standard-alphabet encoders.
		if data, err = base64.StdEncoding.DecodeString(token); err != nil {
			if data, err = base64.RawURLEncoding.DecodeString(token); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrBadToken, err)
			}
		}
	}

	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadToken, err)
	}
	return names, nil
}

// ShareURL builds the shareable link for names on top of base.
func ShareURL(base string, names []string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid share base URL %q: %w", base, err)
	}
	q := u.Query()
	q.Set(ShareParam, EncodeToken(names))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// FromURL extracts and decodes a shared wishlist from raw, which may be a
// full share link or a bare token. A URL without the parameter decodes to
// ErrBadToken, matching "no shared wishlist present".
func FromURL(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if u, err := url.Parse(raw); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		token := u.Query().Get(ShareParam)
		if token == "" {
			return nil, fmt.Errorf("%w: no %s parameter", ErrBadToken, ShareParam)
		}
		return DecodeToken(token)
	}
	return DecodeToken(raw)
}
