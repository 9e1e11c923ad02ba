package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinPath(t *testing.T) {
	assert.Equal(t, "public/css/style.min.css", minPath("public/css/style.css"))
	assert.Equal(t, "app.min.js", minPath("app.js"))
}

func TestMediaType(t *testing.T) {
	assert.Equal(t, "text/css", mediaType("a.css"))
	assert.Equal(t, "application/javascript", mediaType("a.js"))
	assert.Empty(t, mediaType("a.png"))
}

func TestRun_WritesMinifiedCopies(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "style.css")
	require.NoError(t, os.WriteFile(src, []byte("body {\n  color: #ffffff;\n}\n"), 0644))

	require.NoError(t, run(dir, true))

	out, err := os.ReadFile(filepath.Join(dir, "style.min.css"))
	require.NoError(t, err)
	assert.Equal(t, "body{color:#fff}", string(out))
}

func TestRun_SkipsAlreadyMinified(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "style.min.css"), []byte("body{}"), 0644))

	require.NoError(t, run(dir, true))

	_, err := os.Stat(filepath.Join(dir, "style.min.min.css"))
	assert.True(t, os.IsNotExist(err))
}
