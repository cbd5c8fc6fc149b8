package render

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUploadContext(t *testing.T, contentType string, body *bytes.Buffer) echo.Context {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/product/create", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	return echo.New().NewContext(req, httptest.NewRecorder())
}

// A photo-less urlencoded submission is a normal case for every form in the
// app: it must read as "no file", never as an upload failure.
func TestSavePhotoURLEncodedFormIsNotAnUpload(t *testing.T) {
	form := url.Values{"name": {"Laptop"}}
	c := newUploadContext(t, echo.MIMEApplicationForm, bytes.NewBufferString(form.Encode()))

	name, err := SavePhoto(c, "photo", t.TempDir())

	require.NoError(t, err)
	assert.Nil(t, name)
}

func TestSavePhotoMissingFieldKeepsExistingPhoto(t *testing.T) {
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	require.NoError(t, mw.WriteField("name", "Laptop"))
	require.NoError(t, mw.Close())
	c := newUploadContext(t, mw.FormDataContentType(), body)

	name, err := SavePhoto(c, "photo", t.TempDir())

	require.NoError(t, err)
	assert.Nil(t, name)
}

func TestSavePhotoStoresFileUnderDir(t *testing.T) {
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	part, err := mw.CreateFormFile("photo", "laptop.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("png-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	c := newUploadContext(t, mw.FormDataContentType(), body)

	dir := t.TempDir()
	name, err := SavePhoto(c, "photo", dir)

	require.NoError(t, err)
	require.NotNil(t, name)
	assert.True(t, strings.HasSuffix(*name, ".png"))
	stored, err := os.ReadFile(filepath.Join(dir, *name))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(stored))
}
