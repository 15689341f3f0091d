package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nrandle/image-downloader/config"
	"github.com/nrandle/image-downloader/internal/database"
	"github.com/nrandle/image-downloader/internal/entity"
	"github.com/nrandle/image-downloader/internal/pkg/fetcher"
	"github.com/nrandle/image-downloader/internal/pkg/kafka"
	"github.com/nrandle/image-downloader/internal/pkg/processor"
	"github.com/nrandle/image-downloader/internal/pkg/storage"
)

// testPNG renders a small solid PNG.
func testPNG(t *testing.T) []byte {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 40, G: 90, B: 160, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// newImageServer serves a PNG at /a.png and 404s everywhere else.
func newImageServer(t *testing.T) *httptest.Server {
	t.Helper()

	payload := testPNG(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/a.png" {
			w.Header().Set("Content-Type", "image/png")
			w.Write(payload)
			return
		}
		http.NotFound(w, r)
	}))
	t.Cleanup(server.Close)
	return server
}

// newTestService wires the full pipeline over a temp directory.
func newTestService(t *testing.T) ImageService {
	t.Helper()

	fileStorage := storage.NewFileStorage(t.TempDir())
	app := config.AppConfig{
		DefaultColumn:  "1000image",
		DefaultQuality: 80,
		TokenTTL:       time.Minute,
		FetchTimeout:   2 * time.Second,
		MaxWorkers:     4,
	}

	return NewImageService(
		database.NewTokenStore(app.TokenTTL),
		database.NewFolderStore(fileStorage, "sessions"),
		fetcher.NewHTTPFetcher(app.FetchTimeout),
		processor.NewImageConverter(),
		kafka.NewMockProducer(),
		fileStorage,
		app,
	)
}

func TestPrepareCSV(t *testing.T) {
	svc := newTestService(t)

	prep, err := svc.PrepareCSV("products.csv", []byte("name,1000image\nshirt,https://x/a.png\n"))
	require.NoError(t, err)

	assert.NotEmpty(t, prep.Token)
	assert.Equal(t, []string{"name", "1000image"}, prep.Columns)
	assert.Equal(t, "1000image", prep.DefaultColumn, "configured default column wins when present")
	assert.Equal(t, "products.csv", prep.Filename)
}

func TestPrepareCSVFallsBackToFirstColumn(t *testing.T) {
	svc := newTestService(t)

	prep, err := svc.PrepareCSV("other.csv", []byte("pictures,name\nhttps://x/a.png,shirt\n"))
	require.NoError(t, err)
	assert.Equal(t, "pictures", prep.DefaultColumn)
}

func TestPrepareCSVMalformed(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.PrepareCSV("bad.csv", nil)
	assert.ErrorIs(t, err, entity.ErrMalformedCSV)
}

func TestProcessCSVBatch(t *testing.T) {
	svc := newTestService(t)
	server := newImageServer(t)

	csv := fmt.Sprintf("name,1000image\nok,%s/a.png\nbad,not a url\nempty,\n", server.URL)
	prep, err := svc.PrepareCSV("batch.csv", []byte(csv))
	require.NoError(t, err)

	result, err := svc.ProcessCSV(context.Background(), entity.ProcessRequest{
		Token:   prep.Token,
		Column:  "1000image",
		Quality: 80,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"a.jpg"}, result.ProcessedNames())
	assert.Equal(t, []string{
		"not a url (fetch failed)",
		"row 3 (empty)",
	}, result.SkippedEntries())
	assert.NotEmpty(t, result.FolderKey)
}

func TestProcessCSVUnreachableURL(t *testing.T) {
	svc := newTestService(t)
	server := newImageServer(t)

	csv := fmt.Sprintf("name,1000image\nmissing,%s/gone.png\n", server.URL)
	prep, err := svc.PrepareCSV("batch.csv", []byte(csv))
	require.NoError(t, err)

	result, err := svc.ProcessCSV(context.Background(), entity.ProcessRequest{Token: prep.Token, Column: "1000image"})
	require.NoError(t, err)

	assert.Empty(t, result.ProcessedNames())
	require.Len(t, result.SkippedEntries(), 1)
	assert.Contains(t, result.SkippedEntries()[0], "fetch failed")
}

func TestProcessCSVTokenSingleUse(t *testing.T) {
	svc := newTestService(t)
	server := newImageServer(t)

	csv := fmt.Sprintf("name,1000image\nok,%s/a.png\n", server.URL)
	prep, err := svc.PrepareCSV("batch.csv", []byte(csv))
	require.NoError(t, err)

	req := entity.ProcessRequest{Token: prep.Token, Column: "1000image"}

	_, err = svc.ProcessCSV(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.ProcessCSV(context.Background(), req)
	assert.ErrorIs(t, err, entity.ErrUnknownToken)
}

func TestProcessCSVUnknownToken(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.ProcessCSV(context.Background(), entity.ProcessRequest{Token: "bogus", Column: "1000image"})
	assert.ErrorIs(t, err, entity.ErrUnknownToken)
}

func TestProcessCSVUnknownColumn(t *testing.T) {
	svc := newTestService(t)

	prep, err := svc.PrepareCSV("batch.csv", []byte("name,1000image\nok,x\n"))
	require.NoError(t, err)

	_, err = svc.ProcessCSV(context.Background(), entity.ProcessRequest{Token: prep.Token, Column: "no_such_column"})
	assert.ErrorIs(t, err, entity.ErrUnknownColumn)

	// the token is consumed even when the column was wrong
	_, err = svc.ProcessCSV(context.Background(), entity.ProcessRequest{Token: prep.Token, Column: "1000image"})
	assert.ErrorIs(t, err, entity.ErrUnknownToken)
}

func TestProcessCSVNonImagePayload(t *testing.T) {
	svc := newTestService(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>definitely not an image</html>"))
	}))
	t.Cleanup(server.Close)

	csv := fmt.Sprintf("name,1000image\npage,%s/page.html\n", server.URL)
	prep, err := svc.PrepareCSV("batch.csv", []byte(csv))
	require.NoError(t, err)

	result, err := svc.ProcessCSV(context.Background(), entity.ProcessRequest{Token: prep.Token, Column: "1000image"})
	require.NoError(t, err)

	require.Len(t, result.SkippedEntries(), 1)
	assert.Contains(t, result.SkippedEntries()[0], "unsupported type")
}
