package service

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/nrandle/image-downloader/internal/entity"
	"github.com/nrandle/image-downloader/internal/pkg/csvfile"
	"github.com/nrandle/image-downloader/internal/pkg/processor"
)

const (
	uploadsDir   = "uploads"
	downloadsDir = "downloads"
)

// legacyQuality matches the original single-shot converter.
const legacyQuality = 95

// ProcessUploads runs multipart files through the conversion pipeline.
// Bytes are already present, so the fetch stage is skipped.
func (s *imageService) ProcessUploads(ctx context.Context, files []entity.Upload, opts entity.ConversionOptions, folderKey string) (*entity.BatchResult, error) {
	if len(files) == 0 {
		return nil, entity.ErrNoFiles
	}

	candidates := make([]entity.Candidate, len(files))
	for i, file := range files {
		candidates[i] = entity.Candidate{
			Index:  i,
			Source: file.Filename,
			Kind:   entity.SourceFile,
			Data:   file.Data,
		}
	}

	return s.runBatch(ctx, "upload", candidates, opts, folderKey)
}

// ImportCSV is the legacy single-shot route: download every URL of the
// configured default column into the shared downloads folder, best effort.
func (s *imageService) ImportCSV(ctx context.Context, filename string, data []byte) (int, string, error) {
	if filename != "" {
		if err := s.storage.Save(filepath.Join(uploadsDir, filepath.Base(filename)), bytes.NewReader(data)); err != nil {
			logrus.Warnf("failed to keep uploaded CSV: %v", err)
		}
	}

	prep, err := csvfile.Parse(filename, data)
	if err != nil {
		return 0, "", err
	}

	cells, ok := prep.Column(s.app.DefaultColumn)
	if !ok {
		return 0, "", entity.ErrUnknownColumn
	}

	urls := make([]string, 0, len(cells))
	for _, cell := range cells {
		if strings.TrimSpace(cell) != "" {
			urls = append(urls, cell)
		}
	}
	if len(urls) == 0 {
		return 0, "", entity.ErrNoImageURLs
	}

	for _, url := range urls {
		data, err := s.fetcher.Fetch(ctx, url)
		if err != nil {
			logrus.Warnf("failed to download %s: %v", url, err)
			continue
		}

		name := downloadName(url)
		if name == "" {
			logrus.Warnf("could not derive a filename from %s", url)
			continue
		}

		if err := s.storage.Save(filepath.Join(downloadsDir, name), bytes.NewReader(data)); err != nil {
			logrus.Warnf("failed to save %s: %v", name, err)
		}
	}

	return len(urls), s.storage.FullPath(downloadsDir), nil
}

// ConvertDownloads converts every png/gif/bmp in the downloads folder to JPG,
// removing the source file on success. Per-file failures are logged and the
// walk continues.
func (s *imageService) ConvertDownloads() (int, error) {
	names, err := s.storage.List(downloadsDir)
	if err != nil {
		return 0, err
	}

	converted := 0
	for _, name := range names {
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".png" && ext != ".gif" && ext != ".bmp" {
			continue
		}

		srcPath := filepath.Join(downloadsDir, name)
		reader, err := s.storage.Get(srcPath)
		if err != nil {
			logrus.Warnf("failed to open %s: %v", name, err)
			continue
		}

		var buf bytes.Buffer
		_, copyErr := buf.ReadFrom(reader)
		reader.Close()
		if copyErr != nil {
			logrus.Warnf("failed to read %s: %v", name, copyErr)
			continue
		}

		jpg, err := s.converter.Convert(buf.Bytes(), legacyQuality)
		if err != nil {
			logrus.Warnf("failed to convert %s: %v", name, err)
			continue
		}

		dstName := strings.TrimSuffix(name, filepath.Ext(name)) + processor.TargetExt
		if err := s.storage.Save(filepath.Join(downloadsDir, dstName), bytes.NewReader(jpg)); err != nil {
			logrus.Warnf("failed to save %s: %v", dstName, err)
			continue
		}

		if err := s.storage.Delete(srcPath); err != nil {
			logrus.Warnf("failed to remove %s: %v", name, err)
		}
		converted++
	}

	return converted, nil
}

// downloadName mirrors the naming of the original importer: the last URL
// path segment, query string dropped, kept verbatim.
func downloadName(url string) string {
	if i := strings.IndexAny(url, "?#"); i >= 0 {
		url = url[:i]
	}
	name := filepath.Base(url)
	if name == "." || name == "/" || name == string(filepath.Separator) {
		return ""
	}
	return name
}
