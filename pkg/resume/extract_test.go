package resume

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const relsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`

func buildDocx(t *testing.T, paragraphs ...string) []byte {
	t.Helper()

	var body strings.Builder
	for _, p := range paragraphs {
		body.WriteString(`<w:p><w:r><w:t xml:space="preserve">`)
		body.WriteString(p)
		body.WriteString(`</w:t></w:r></w:p>`)
	}
	document := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		body.String() +
		`</w:body></w:document>`

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range map[string]string{
		"word/document.xml":            document,
		"word/_rels/document.xml.rels": relsXML,
	} {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestExtract_Docx(t *testing.T) {
	data := buildDocx(t,
		"Jane Doe - Senior Backend Engineer",
		"Built payment services in Go and PostgreSQL for five years.",
	)

	text, err := Extract("Resume.DOCX", data)

	require.NoError(t, err)
	assert.Equal(t,
		"Jane Doe - Senior Backend Engineer\nBuilt payment services in Go and PostgreSQL for five years.",
		text,
	)
}

func TestExtract_CountsCharacters(t *testing.T) {
	text := strings.Repeat("软件工程师", MinTextLen/5)

	got, err := Extract("resume.docx", buildDocx(t, text))

	require.NoError(t, err)
	assert.Equal(t, text, got)
}

func TestExtract_Errors(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		data     []byte
		wantErr  error
	}{
		{
			name:     "unsupported extension",
			filename: "resume.txt",
			data:     []byte("plain text resume"),
			wantErr:  ErrUnsupportedFormat,
		},
		{
			name:     "legacy doc is unsupported",
			filename: "resume.doc",
			data:     []byte("binary"),
			wantErr:  ErrUnsupportedFormat,
		},
		{
			name:     "file too large",
			filename: "resume.pdf",
			data:     make([]byte, MaxFileSize+1),
			wantErr:  ErrTooLarge,
		},
		{
			name:     "too little text",
			filename: "resume.docx",
			data:     buildDocx(t, "Jane Doe  "),
			wantErr:  ErrInsufficientText,
		},
		{
			name:     "too few characters in multibyte text",
			filename: "resume.docx",
			data:     buildDocx(t, strings.Repeat("软件工程师", 4)),
			wantErr:  ErrInsufficientText,
		},
		{
			name:     "corrupt docx",
			filename: "resume.docx",
			data:     []byte("not a zip archive"),
			wantErr:  ErrUnreadable,
		},
		{
			name:     "corrupt pdf",
			filename: "resume.pdf",
			data:     []byte("not a pdf"),
			wantErr:  ErrUnreadable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Extract(tt.filename, tt.data)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDocumentXMLText(t *testing.T) {
	xmlBody := `<w:document xmlns:w="x"><w:body>` +
		`<w:p><w:r><w:t>Go</w:t></w:r><w:r><w:tab/><w:t>Rust</w:t></w:r></w:p>` +
		`<w:p><w:r><w:instrText>ignored</w:instrText><w:t>Kafka</w:t></w:r></w:p>` +
		`</w:body></w:document>`

	text, err := documentXMLText(xmlBody)

	require.NoError(t, err)
	assert.Equal(t, "Go\tRust\nKafka\n", text)
}
