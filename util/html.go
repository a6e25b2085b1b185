package util

import (
	"strings"

	"golang.org/x/net/html"
)

// StripTags removes HTML tags from the input, keeping the text content.
// Editors occasionally paste markup into part bodies; the search index wants
// plain text.
func StripTags(input string) string {

	if !strings.ContainsRune(input, '<') {
		return input
	}

	tokenizer := html.NewTokenizerFragment(strings.NewReader(input), "body")

	var b strings.Builder
	for {
		tt := tokenizer.Next()
		if tt == html.ErrorToken {
			break // assuming tokenizer.Err() == io.EOF
		}
		if tt == html.TextToken {
			b.Write(tokenizer.Text())
		}
	}

	return b.String()
}
