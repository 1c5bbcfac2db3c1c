package upload

import (
	"PlanPhotos/internal/handler"
	"PlanPhotos/internal/metrics"
	"PlanPhotos/internal/model"
	"PlanPhotos/internal/storage"
	"bytes"
	"context"
	"image"
	"image/png"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUploadServer(t *testing.T) (*httptest.Server, *storage.Local) {
	t.Helper()
	store, err := storage.NewLocal(t.TempDir())
	require.NoError(t, err)

	logger, _ := test.NewNullLogger()
	srv := httptest.NewServer(handler.Upload(store, metrics.New(), logrus.NewEntry(logger)))
	t.Cleanup(srv.Close)
	return srv, store
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8))))
	return buf.Bytes()
}

func TestClient_Upload(t *testing.T) {
	srv, store := newUploadServer(t)
	c := NewClient(srv.URL, srv.Client())

	meta := model.UploadMeta{TargetDirectory: "images/", OwnerDirectoryName: "acme"}
	results, err := c.Upload(context.Background(), meta, "/home/me/porch.png", bytes.NewReader(pngBytes(t)))
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, strings.HasSuffix(results[0].FileName, ".png"))

	key := "acme/images/" + results[0].FileName
	rc, err := store.Open(context.Background(), key)
	require.NoError(t, err)
	rc.Close()

	rc, err = store.Open(context.Background(), storage.ThumbKey(key))
	require.NoError(t, err)
	rc.Close()
}

func TestClient_UploadRejected(t *testing.T) {
	srv, _ := newUploadServer(t)
	c := NewClient(srv.URL, nil)

	meta := model.UploadMeta{TargetDirectory: "images/", OwnerDirectoryName: "acme"}
	_, err := c.Upload(context.Background(), meta, "notes.txt", strings.NewReader("just text"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "415")
}
