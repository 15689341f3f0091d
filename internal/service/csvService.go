package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/nrandle/image-downloader/internal/entity"
	"github.com/nrandle/image-downloader/internal/pkg/csvfile"
)

// PrepareCSV parses an uploaded CSV and issues a single-use token bound to
// its rows, so the client can pick a column before committing to a run.
func (s *imageService) PrepareCSV(filename string, data []byte) (*entity.PrepareResponse, error) {
	prep, err := csvfile.Parse(filename, data)
	if err != nil {
		return nil, err
	}

	defaultColumn := prep.Columns[0]
	if prep.HasColumn(s.app.DefaultColumn) {
		defaultColumn = s.app.DefaultColumn
	}

	token := s.tokens.Create(prep)

	logrus.WithFields(logrus.Fields{
		"filename": filename,
		"columns":  len(prep.Columns),
		"rows":     len(prep.Records),
	}).Info("CSV prepared")

	return &entity.PrepareResponse{
		Token:         token,
		Columns:       prep.Columns,
		DefaultColumn: defaultColumn,
		Filename:      filename,
	}, nil
}

// ProcessCSV redeems a preparation token and runs the chosen column through
// the acquisition pipeline. The token is consumed up front, so it is
// invalidated no matter how individual candidates fare.
func (s *imageService) ProcessCSV(ctx context.Context, req entity.ProcessRequest) (*entity.BatchResult, error) {
	prep, err := s.tokens.Consume(req.Token)
	if err != nil {
		return nil, err
	}

	cells, ok := prep.Column(req.Column)
	if !ok {
		return nil, entity.ErrUnknownColumn
	}

	candidates := make([]entity.Candidate, len(cells))
	for i, cell := range cells {
		candidates[i] = entity.Candidate{Index: i, Source: cell, Kind: entity.SourceURL}
	}

	opts := entity.ConversionOptions{
		Quality:          req.Quality,
		KeepOriginal:     req.KeepPNG,
		EnhanceFilenames: req.EnhanceFilenames,
	}

	return s.runBatch(ctx, "csv", candidates, opts, "")
}
