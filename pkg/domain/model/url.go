package model

import "regexp"

// URLKind represents the shape of an accepted YouTube URL
type URLKind string

const (
	URLKindVideo     URLKind = "video"
	URLKindPlaylist  URLKind = "playlist"
	URLKindShortLink URLKind = "short_link"
	URLKindUnknown   URLKind = "unknown"
)

// Accepted URL shapes. Each pattern is anchored at the start only: trailing
// garbage after a valid prefix is accepted. Tightening this to a full-string
// anchor would change observable behavior, so the looseness stays.
var urlPatterns = []struct {
	kind URLKind
	re   *regexp.Regexp
}{
	{URLKindVideo, regexp.MustCompile(`^https?://(www\.)?youtube\.com/watch\?v=[^&\s]+`)},
	{URLKindPlaylist, regexp.MustCompile(`^https?://(www\.)?youtube\.com/playlist\?list=[^&\s]+`)},
	{URLKindVideo, regexp.MustCompile(`^https?://(m\.)?youtube\.com/watch\?v=[^&\s]+`)},
	{URLKindShortLink, regexp.MustCompile(`^https?://(www\.)?youtu\.be/[^?\s]+`)},
}

// ClassifyURL returns the kind of the given URL, or URLKindUnknown if it
// matches none of the accepted shapes
func ClassifyURL(url string) URLKind {
	for _, p := range urlPatterns {
		if p.re.MatchString(url) {
			return p.kind
		}
	}
	return URLKindUnknown
}

// IsSupportedURL checks if the URL matches one of the accepted shapes
func IsSupportedURL(url string) bool {
	return ClassifyURL(url) != URLKindUnknown
}
