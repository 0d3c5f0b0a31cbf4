package utils

import "regexp"

// Recognized video-hosting URL forms: youtube.com/watch?v=ID, youtu.be/ID and
// youtube.com/embed/ID, each with an optional www. prefix.
var (
	youtubeURLPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^https?://(www\.)?(youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/)[\w-]+`),
		regexp.MustCompile(`^https?://(www\.)?youtube\.com/watch\?.*v=[\w-]+`),
	}
	videoIDPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/)([^&\n?#]+)`),
		regexp.MustCompile(`youtube\.com/watch\?.*v=([^&\n?#]+)`),
	}
)

func ValidateYouTubeURL(url string) bool {
	for _, p := range youtubeURLPatterns {
		if p.MatchString(url) {
			return true
		}
	}
	return false
}

// ExtractVideoID returns the video id substring, cut at the next &, newline,
// ? or #. The second return is false when no pattern matches.
func ExtractVideoID(url string) (string, bool) {
	for _, p := range videoIDPatterns {
		if m := p.FindStringSubmatch(url); m != nil {
			return m[1], true
		}
	}
	return "", false
}
