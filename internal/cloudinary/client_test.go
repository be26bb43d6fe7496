package cloudinary

import (
	"context"
	"crypto/sha1"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSign(t *testing.T) {
	c := New("demo", "key", "secret", "")
	got := c.sign(map[string]string{"timestamp": "1700000000", "folder": "sangha/photo", "api_key": "key"})
	want := fmt.Sprintf("%x", sha1.Sum([]byte("folder=sangha/photo&timestamp=1700000000secret")))
	assert.Equal(t, want, got)
}

func TestParseKind(t *testing.T) {
	assert.Equal(t, KindPhoto, ParseKind(" Photo "))
	assert.Equal(t, KindSubmission, ParseKind("submission"))
	assert.Equal(t, KindAttachment, ParseKind(""))
	assert.Equal(t, KindAttachment, ParseKind("video"))
}

func TestUploadBytes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/demo/image/upload", r.URL.Path)
		assert.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "sangha/photo", r.FormValue("folder"))
		assert.Equal(t, "1700000000", r.FormValue("timestamp"))
		assert.NotEmpty(t, r.FormValue("signature"))
		f, _, err := r.FormFile("file")
		if assert.NoError(t, err) {
			b, _ := io.ReadAll(f)
			assert.Equal(t, "jpegbytes", string(b))
		}
		_, _ = w.Write([]byte(`{"public_id":"sangha/photo/abc","secure_url":"https://res.example.org/abc.jpg"}`))
	}))
	defer srv.Close()

	c := New("demo", "key", "secret", "sangha")
	c.BaseURL = srv.URL
	c.now = func() time.Time { return time.Unix(1700000000, 0) }

	res, err := c.UploadBytes(context.Background(), KindPhoto, []byte("jpegbytes"), "me.jpg")
	require.NoError(t, err)
	assert.Equal(t, "https://res.example.org/abc.jpg", res.SecureURL)

	_, err = c.UploadBytes(context.Background(), KindPhoto, nil, "me.jpg")
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestUploadBase64Failure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/demo/auto/upload", r.URL.Path)
		assert.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "data:application/octet-stream;base64,aGk=", r.FormValue("file"))
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid Signature"}}`))
	}))
	defer srv.Close()

	c := New("demo", "key", "secret", "sangha")
	c.BaseURL = srv.URL

	_, err := c.UploadBase64(context.Background(), KindSubmission, "aGk=")
	assert.ErrorContains(t, err, "Invalid Signature")
}
