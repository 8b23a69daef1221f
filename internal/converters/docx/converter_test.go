package docx

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/catalog-cli/internal/core/domain"
)

const documentXMLFixture = `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>First paragraph.</w:t></w:r></w:p>
    <w:p><w:r><w:t>Second </w:t></w:r><w:r><w:t>paragraph.</w:t></w:r></w:p>
  </w:body>
</w:document>`

func writeDocx(t *testing.T, withDocument bool) domain.SourceFile {
	t.Helper()
	path := filepath.Join(t.TempDir(), "report.docx")

	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)

	if withDocument {
		w, err := zw.Create("word/document.xml")
		require.NoError(t, err)
		_, err = w.Write([]byte(documentXMLFixture))
		require.NoError(t, err)
	}

	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	return domain.SourceFile{Path: path, Format: domain.FormatDocx}
}

func TestConvert(t *testing.T) {
	text, err := New().Convert(context.Background(), writeDocx(t, true))
	require.NoError(t, err)
	assert.Equal(t, "First paragraph.\nSecond paragraph.", text)
}

func TestConvert_NotAZip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fake.docx")
	require.NoError(t, os.WriteFile(path, []byte("plain text, not a zip"), 0600))

	_, err := New().Convert(context.Background(), domain.SourceFile{Path: path, Format: domain.FormatDocx})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestConvert_MissingDocumentXML(t *testing.T) {
	_, err := New().Convert(context.Background(), writeDocx(t, false))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
