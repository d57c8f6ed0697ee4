package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilename(t *testing.T) {
	cases := map[string]string{
		"":                                    "stdin",
		"-":                                   "stdin",
		"README.md":                           "README",
		"docs/getting started.markdown":       "getting_started",
		"/tmp/notes.v2.md":                    "notes_v2",
		"https://example.com":                 "example_com",
		"https://example.com/docs/intro.md":   "example_com_docs_intro",
		"http://localhost:3001/raw/readme.md": "localhost_3001_raw_readme",
	}
	for in, want := range cases {
		assert.Equal(t, want, Filename(in), in)
	}
}

func TestWriterWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	w, err := New(dir)
	require.NoError(t, err)

	path, err := w.Write("notes/readme.md", []byte("<p>x</p>"), ".html")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "readme.html"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<p>x</p>", string(data))
}
