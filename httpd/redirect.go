package httpd

import (
	"fmt"
	"net/url"
)

// buildRedirectURL turns a redirect request target into an outbound
// search URL. The "selector" query parameter picks the engine and
// "text" carries the query, form-encoded into the result.
func buildRedirectURL(target string) (string, error) {
	u, err := url.Parse(target)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadQuery, err)
	}
	params, err := url.ParseQuery(u.RawQuery)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadQuery, err)
	}
	text := params.Get("text")
	switch sel := params.Get("selector"); sel {
	case "youtube":
		return "https://www.youtube.com/results?search_query=" + url.QueryEscape(text), nil
	case "google":
		return "https://www.google.com/search?q=" + url.QueryEscape(text), nil
	default:
		return "", fmt.Errorf("%w: selector %q", ErrBadQuery, sel)
	}
}
