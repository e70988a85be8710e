package twitterapi

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha1" //nolint:gosec // G505: HMAC-SHA1 is what OAuth 1.0a specifies
	"encoding/base64"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

const (
	signatureMethod = "HMAC-SHA1"
	oauthVersion    = "1.0"
	nonceBytes      = 32
)

// authorizationHeader computes a one-time OAuth 1.0a credential for the call.
// Field order in the header follows the order the set is constructed in,
// with the signature appended last.
func (c *Client) authorizationHeader(method, rawURL string, params map[string]string) (string, error) {
	if c.signingKey == "" {
		return "", ErrNotInitialized
	}

	nonce, err := c.nonce()
	if err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	oauth := [][2]string{
		{"oauth_consumer_key", c.Credentials.ConsumerKey},
		{"oauth_nonce", nonce},
		{"oauth_signature_method", signatureMethod},
		{"oauth_timestamp", strconv.FormatInt(c.now().Unix(), 10)},
		{"oauth_token", c.Credentials.AccessToken},
		{"oauth_version", oauthVersion},
	}

	merged := make([][2]string, 0, len(oauth)+len(params))
	merged = append(merged, oauth...)
	for k, v := range params {
		merged = append(merged, [2]string{k, v})
	}

	base := signatureBase(method, rawURL, canonicalParams(merged))
	mac := hmac.New(sha1.New, []byte(c.signingKey))
	mac.Write([]byte(base))
	signature := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	fields := append(oauth, [2]string{"oauth_signature", signature})
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f[0]+`="`+percentEncode(f[1])+`"`)
	}
	return "OAuth " + strings.Join(parts, ", "), nil
}

// canonicalParams percent-encodes every key and value, sorts pairs by encoded
// key, and joins them k=v with & — the canonical parameter string of the
// signature base.
func canonicalParams(pairs [][2]string) string {
	encoded := make([][2]string, len(pairs))
	for i, p := range pairs {
		encoded[i] = [2]string{percentEncode(p[0]), percentEncode(p[1])}
	}
	sort.Slice(encoded, func(i, j int) bool {
		if encoded[i][0] != encoded[j][0] {
			return encoded[i][0] < encoded[j][0]
		}
		return encoded[i][1] < encoded[j][1]
	})
	parts := make([]string, len(encoded))
	for i, p := range encoded {
		parts[i] = p[0] + "=" + p[1]
	}
	return strings.Join(parts, "&")
}

// signatureBase builds METHOD&encoded-url&encoded-params per RFC 5849 §3.4.1.
func signatureBase(method, rawURL, canonical string) string {
	return strings.ToUpper(method) + "&" + percentEncode(rawURL) + "&" + percentEncode(canonical)
}

// nonce returns 32 random bytes in standard base64.
func (c *Client) nonce() (string, error) {
	if c.nonceFn != nil {
		return c.nonceFn()
	}
	buf := make([]byte, nonceBytes)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf), nil
}

// percentEncode implements RFC 3986 encoding as OAuth requires it: only
// unreserved characters pass through, everything else becomes %XX uppercase.
func percentEncode(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case ch >= 'A' && ch <= 'Z', ch >= 'a' && ch <= 'z', ch >= '0' && ch <= '9',
			ch == '-', ch == '.', ch == '_', ch == '~':
			b.WriteByte(ch)
		default:
			fmt.Fprintf(&b, "%%%02X", ch)
		}
	}
	return b.String()
}
