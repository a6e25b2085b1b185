package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSlug(t *testing.T) {
	assert.Equal(t, "childcare", NormalizeSlug("Childcare"))
	assert.Equal(t, "child-care-costs", NormalizeSlug("  Child care: costs?  "))
	assert.Equal(t, "creme-brulee", NormalizeSlug("Crème Brûlée"))
	assert.Equal(t, "a-b", NormalizeSlug("a---b"))
	assert.Equal(t, "", NormalizeSlug("!?"))
	assert.Equal(t, "42-days", NormalizeSlug("42 days"))
}

func TestTrunc(t *testing.T) {
	assert.Equal(t, "hello", Trunc("hello", 10))
	assert.Equal(t, "hello", Trunc("hello world", 7))
	assert.Equal(t, "héllo", Trunc("héllo wörld", 7))
	assert.Equal(t, "", Trunc("", 10))
}

func TestStripTags(t *testing.T) {
	assert.Equal(t, "plain text", StripTags("plain text"))
	assert.Equal(t, "Lots of info", StripTags("<p>Lots of info</p>"))
	assert.Equal(t, "a link here", StripTags(`a <a href="/x">link</a> here`))
}
