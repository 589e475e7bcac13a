package httpd

import (
	"fmt"
	"net/url"
	"strings"
)

// renderFormTable decodes an application/x-www-form-urlencoded body and
// renders one HTML table row per key/value pair, in arrival order.
//
// The whole body is plus/percent decoded first, then split on "&"; each
// pair splits at its first "=" with the remainder as the value, so a
// value containing "=" survives intact. A pair with no "=" rejects the
// whole body rather than silently dropping data.
func renderFormTable(body string) (string, error) {
	decoded, err := url.QueryUnescape(body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadForm, err)
	}
	var sb strings.Builder
	sb.WriteString("<table>")
	for _, pair := range strings.Split(decoded, "&") {
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			return "", fmt.Errorf("%w: pair %q", ErrBadForm, pair)
		}
		sb.WriteString("<tr><td>")
		sb.WriteString(k)
		sb.WriteString("</td><td>")
		sb.WriteString(v)
		sb.WriteString("</td></tr>")
	}
	sb.WriteString("</table>")
	return sb.String(), nil
}
