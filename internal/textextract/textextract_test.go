package textextract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPlainText(t *testing.T) {
	text, err := Extract([]byte("Jane Doe\nSoftware Engineer\n"))
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nSoftware Engineer\n", text)
}

func TestExtractUnsupported(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

	_, err := Extract(png)

	var unsupported *UnsupportedTypeError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "image/png", unsupported.MIME)
	assert.Equal(t, "unsupported file type: image/png", err.Error())
}

func TestExtractEmptyText(t *testing.T) {
	_, err := Extract([]byte("   \n\t "))
	assert.ErrorIs(t, err, ErrNoText)
}

func TestExtractBrokenPDF(t *testing.T) {
	_, err := Extract([]byte("%PDF-1.4\nthis is not really a pdf"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read pdf")
}

func TestDetect(t *testing.T) {
	assert.Equal(t, MIMEPDF, Detect([]byte("%PDF-1.7\n")))
}

func TestDocumentText(t *testing.T) {
	xml := `<w:document><w:body>` +
		`<w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>Go</w:t><w:tab/><w:t>R&amp;D</w:t></w:r></w:p>` +
		`</w:body></w:document>`

	assert.Equal(t, "Jane Doe\nGo\tR&D", documentText(xml))
}
