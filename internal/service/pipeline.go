package service

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nrandle/image-downloader/internal/entity"
	"github.com/nrandle/image-downloader/internal/pkg/processor"
)

// runBatch drives candidates through fetch, validation, naming, conversion
// and the folder session. One candidate's failure never aborts the batch;
// outcomes keep the original candidate order.
func (s *imageService) runBatch(ctx context.Context, source string, candidates []entity.Candidate, opts entity.ConversionOptions, folderKey string) (*entity.BatchResult, error) {
	start := time.Now()

	opts.Normalize(s.app.DefaultQuality)

	key, dir, err := s.folders.Resolve(folderKey)
	if err != nil {
		return nil, err
	}

	s.fetchAll(ctx, candidates)

	outcomes := make([]entity.Outcome, len(candidates))
	for i := range candidates {
		outcomes[i] = s.convertOne(key, &candidates[i], opts)
	}

	result := &entity.BatchResult{FolderKey: key, Outcomes: outcomes}

	processed := len(result.ProcessedNames())
	logrus.WithFields(logrus.Fields{
		"source":     source,
		"folder_key": key,
		"dir":        dir,
		"processed":  processed,
		"skipped":    len(candidates) - processed,
	}).Info("Batch completed")

	s.publishSummary(source, result, time.Since(start))
	return result, nil
}

// fetchAll resolves URL candidates to bytes across a bounded worker pool.
// Results land back on the candidates, so order is untouched.
func (s *imageService) fetchAll(ctx context.Context, candidates []entity.Candidate) {
	workers := s.app.MaxWorkers
	if workers < 1 {
		workers = 1
	}
	sem := make(chan struct{}, workers)

	var wg sync.WaitGroup
	for i := range candidates {
		c := &candidates[i]
		if c.Kind != entity.SourceURL || c.Source == "" {
			continue
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(c *entity.Candidate) {
			defer wg.Done()
			defer func() { <-sem }()

			data, err := s.fetcher.Fetch(ctx, c.Source)
			if err != nil {
				logrus.Debugf("fetch failed for %s: %v", c.Source, err)
				c.FetchErr = err
				return
			}
			c.Data = data
		}(c)
	}
	wg.Wait()
}

// convertOne classifies and converts a single candidate.
func (s *imageService) convertOne(key string, c *entity.Candidate, opts entity.ConversionOptions) entity.Outcome {
	skip := func(reason entity.SkipReason) entity.Outcome {
		return entity.Outcome{Index: c.Index, Source: c.Label(), Reason: reason}
	}

	if c.Source == "" && len(c.Data) == 0 {
		return skip(entity.SkipEmpty)
	}
	if c.Kind == entity.SourceURL && c.FetchErr != nil {
		return skip(entity.SkipFetchFailed)
	}
	if len(c.Data) == 0 {
		return skip(entity.SkipEmpty)
	}
	if !processor.IsImage(c.Data) {
		return skip(entity.SkipUnsupportedType)
	}

	converted, err := s.converter.Convert(c.Data, opts.Quality)
	if err != nil {
		return skip(entity.SkipDecodeFailed)
	}

	base, err := s.folders.ReserveName(key, c.Source, opts.EnhanceFilenames)
	if err != nil {
		return skip(entity.SkipWriteFailed)
	}

	finalName := base + processor.TargetExt
	if err := s.folders.Write(key, finalName, converted); err != nil {
		logrus.Errorf("write failed for %s: %v", finalName, err)
		return skip(entity.SkipWriteFailed)
	}

	if opts.KeepOriginal {
		s.writeOriginal(key, base, c)
	}

	return entity.Outcome{
		Index:     c.Index,
		Source:    c.Label(),
		Processed: true,
		FinalName: finalName,
		Size:      int64(len(converted)),
	}
}

// writeOriginal stores the undecoded source bytes next to the converted file,
// unless the source already carries the target extension and would collide
// with its own output.
func (s *imageService) writeOriginal(key string, base string, c *entity.Candidate) {
	ext := processor.SourceExt(c.Source)
	if ext == "" {
		ext = processor.SniffExtension(c.Data)
	}
	if ext == "" || ext == ".jpg" || ext == ".jpeg" {
		return
	}

	if err := s.folders.Write(key, base+ext, c.Data); err != nil {
		logrus.Warnf("failed to keep original for %s: %v", c.Label(), err)
	}
}

func (s *imageService) publishSummary(source string, result *entity.BatchResult, elapsed time.Duration) {
	processed := len(result.ProcessedNames())
	event := entity.BatchEvent{
		Source:     source,
		FolderKey:  result.FolderKey,
		Processed:  processed,
		Skipped:    len(result.Outcomes) - processed,
		DurationMs: elapsed.Milliseconds(),
	}

	if err := s.producer.SendMessage("image-batches", event); err != nil {
		logrus.Warnf("failed to publish batch event: %v", err)
	}
}
