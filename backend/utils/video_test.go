package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateYouTubeURL(t *testing.T) {
	cases := []struct {
		name  string
		url   string
		valid bool
	}{
		{"watch url", "https://www.youtube.com/watch?v=riXcZT2ICjA", true},
		{"watch url no www", "https://youtube.com/watch?v=riXcZT2ICjA", true},
		{"short url", "https://youtu.be/riXcZT2ICjA", true},
		{"embed url", "https://www.youtube.com/embed/riXcZT2ICjA", true},
		{"http scheme", "http://youtu.be/riXcZT2ICjA", true},
		{"v not first param", "https://www.youtube.com/watch?t=30&v=riXcZT2ICjA", true},
		{"other host", "https://vimeo.com/12345", false},
		{"not a url", "not a url", false},
		{"empty", "", false},
		{"channel url", "https://www.youtube.com/c/some-channel", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.valid, ValidateYouTubeURL(tc.url))
		})
	}
}

func TestExtractVideoID(t *testing.T) {
	cases := []struct {
		name string
		url  string
		id   string
		ok   bool
	}{
		{"watch url", "https://www.youtube.com/watch?v=riXcZT2ICjA", "riXcZT2ICjA", true},
		{"short url", "https://youtu.be/abc123", "abc123", true},
		{"embed url", "https://www.youtube.com/embed/riXcZT2ICjA", "riXcZT2ICjA", true},
		{"id cut at ampersand", "https://www.youtube.com/watch?v=riXcZT2ICjA&t=30", "riXcZT2ICjA", true},
		{"id cut at hash", "https://youtu.be/riXcZT2ICjA#t=30", "riXcZT2ICjA", true},
		{"v not first param", "https://www.youtube.com/watch?t=30&v=riXcZT2ICjA", "riXcZT2ICjA", true},
		{"not a url", "not a url", "", false},
		{"empty", "", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			id, ok := ExtractVideoID(tc.url)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.id, id)
		})
	}
}
