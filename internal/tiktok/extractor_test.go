package tiktok

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jsonLDBlock = `<script type="application/ld+json">{"@type":"Person","description":"Bio from JSON-LD"}</script>`
const metaBlock = `<meta name="description" content="Bio from meta tag">`
const sigiBlock = `<script id="SIGI_STATE" type="application/json">{"UserModule":{"users":{"example":{"signature":"Bio from state blob"}}}}</script>`
const inlineBlock = `<h2 data-e2e="user-bio">  Bio from <strong>inline</strong> element  </h2>`

func page(body string) string {
	return "<html><head></head><body>" + body + "</body></html>"
}

func TestExtractBio_JSONLDTakesPriority(t *testing.T) {
	// All four representations present; the JSON-LD one must win.
	html := page(jsonLDBlock + metaBlock + sigiBlock + inlineBlock)

	bio, ok := ExtractBio(html)

	require.True(t, ok)
	assert.Equal(t, "Bio from JSON-LD", bio)
}

func TestExtractBio_FallsBackToMetaDescription(t *testing.T) {
	bio, ok := ExtractBio(page(metaBlock + sigiBlock + inlineBlock))

	require.True(t, ok)
	assert.Equal(t, "Bio from meta tag", bio)
}

func TestExtractBio_MalformedJSONLDFallsThrough(t *testing.T) {
	broken := `<script type="application/ld+json">{not json at all</script>`

	bio, ok := ExtractBio(page(broken + metaBlock))

	require.True(t, ok)
	assert.Equal(t, "Bio from meta tag", bio)
}

func TestExtractBio_EmptyMetaContentFallsThrough(t *testing.T) {
	empty := `<meta name="description" content="">`

	bio, ok := ExtractBio(page(empty + inlineBlock))

	require.True(t, ok)
	assert.Equal(t, "Bio from inline element", bio)
}

func TestExtractBio_StateBlobUserModule(t *testing.T) {
	bio, ok := ExtractBio(page(sigiBlock + inlineBlock))

	require.True(t, ok)
	assert.Equal(t, "Bio from state blob", bio)
}

func TestExtractBio_StateBlobMobileUsersFallback(t *testing.T) {
	mobile := `<script id="SIGI_STATE" type="application/json">{"MobileUsers":{"example":{"signature":"Bio from mobile record"}}}</script>`

	bio, ok := ExtractBio(page(mobile))

	require.True(t, ok)
	assert.Equal(t, "Bio from mobile record", bio)
}

func TestExtractBio_MalformedStateBlobFallsThrough(t *testing.T) {
	broken := `<script id="SIGI_STATE">{"UserModule":broken}</script>`

	bio, ok := ExtractBio(page(broken + inlineBlock))

	require.True(t, ok)
	assert.Equal(t, "Bio from inline element", bio)
}

func TestExtractBio_InlineElementStripsTagsAndTrims(t *testing.T) {
	bio, ok := ExtractBio(page(inlineBlock))

	require.True(t, ok)
	assert.Equal(t, "Bio from inline element", bio)
}

func TestExtractBio_EmptyInlineElementIsNoResult(t *testing.T) {
	_, ok := ExtractBio(page(`<h2 data-e2e="user-bio">   </h2>`))

	assert.False(t, ok)
}

func TestExtractBio_NoRecognizedPattern(t *testing.T) {
	bio, ok := ExtractBio(page(`<h1>Some unrelated page</h1>`))

	assert.False(t, ok)
	assert.Empty(t, bio)
}

func TestExtractBio_NotHTMLAtAll(t *testing.T) {
	_, ok := ExtractBio("just a plain string, nothing to see")

	assert.False(t, ok)
}
