package domain

import (
	"fmt"
	"regexp"
	"strings"
)

const URLPrefix = "https://claude.ai/code/session_"

var (
	sessionURLPattern     = regexp.MustCompile(`https://claude\.ai/code/session_\w+`)
	sessionURLFullPattern = regexp.MustCompile(`^https://claude\.ai/code/session_\w+$`)
)

func BuildURL(sessionID string) string {
	return URLPrefix + sessionID
}

// ExtractSessionID returns the id part of url, or "" when url does not carry
// the session prefix.
func ExtractSessionID(url string) string {
	id, ok := strings.CutPrefix(url, URLPrefix)
	if !ok {
		return ""
	}

	return id
}

// ExtractURLs returns every session URL found in text, in order of first
// appearance and without duplicates.
func ExtractURLs(text string) []string {
	matches := sessionURLPattern.FindAllString(text, -1)
	seen := make(map[string]struct{}, len(matches))
	urls := make([]string, 0, len(matches))
	for _, match := range matches {
		if _, ok := seen[match]; ok {
			continue
		}
		seen[match] = struct{}{}
		urls = append(urls, match)
	}

	return urls
}

func ValidateSessionURL(raw string) (string, error) {
	url := strings.TrimSpace(raw)
	if !sessionURLFullPattern.MatchString(url) {
		return "", fmt.Errorf("%w: %s", ErrInvalidSessionURL, url)
	}

	return url, nil
}
