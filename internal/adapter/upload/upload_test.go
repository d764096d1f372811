package upload

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileHeaders(t *testing.T, files map[string]string) []*multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for name, content := range files {
		fw, err := w.CreateFormFile("images", name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	r := httptest.NewRequest("POST", "/", &body)
	r.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, r.ParseMultipartForm(1<<20))
	return r.MultipartForm.File["images"]
}

func TestFileName(t *testing.T) {
	name, err := FileName("My Fancy Photo.PNG")
	require.NoError(t, err)
	assert.Regexp(t,
		regexp.MustCompile(`^my-fancy-photo-[0-9a-f-]{36}\.png$`), name)

	name, err = FileName("../../.jpg")
	require.NoError(t, err)
	assert.Regexp(t, `^file-[0-9a-f-]{36}\.jpg$`, name)

	_, err = FileName("script.sh")
	assert.ErrorIs(t, err, ErrNotAllowed)
}

func TestDiskStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "images")
	s, err := NewDiskStore(dir)
	require.NoError(t, err)

	t.Run("SaveAll", func(t *testing.T) {
		names, err := s.SaveAll(fileHeaders(t, map[string]string{
			"a.png": "png-bytes",
		}))
		require.NoError(t, err)
		require.Len(t, names, 1)

		b, err := os.ReadFile(filepath.Join(dir, names[0]))
		require.NoError(t, err)
		assert.Equal(t, "png-bytes", string(b))

		s.Remove(names...)
		_, err = os.Stat(filepath.Join(dir, names[0]))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("RejectedTypeLeavesNothing", func(t *testing.T) {
		_, err := s.SaveAll(fileHeaders(t, map[string]string{
			"evil.exe": "x",
		}))
		assert.ErrorIs(t, err, ErrNotAllowed)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}
