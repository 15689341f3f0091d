package service

import (
	"context"

	"github.com/nrandle/image-downloader/config"
	"github.com/nrandle/image-downloader/internal/database"
	"github.com/nrandle/image-downloader/internal/entity"
	"github.com/nrandle/image-downloader/internal/pkg/fetcher"
	"github.com/nrandle/image-downloader/internal/pkg/kafka"
	"github.com/nrandle/image-downloader/internal/pkg/processor"
	"github.com/nrandle/image-downloader/internal/pkg/storage"
)

type ImageService interface {
	PrepareCSV(filename string, data []byte) (*entity.PrepareResponse, error)
	ProcessCSV(ctx context.Context, req entity.ProcessRequest) (*entity.BatchResult, error)
	ProcessUploads(ctx context.Context, files []entity.Upload, opts entity.ConversionOptions, folderKey string) (*entity.BatchResult, error)
	ImportCSV(ctx context.Context, filename string, data []byte) (int, string, error)
	ConvertDownloads() (int, error)
}

type imageService struct {
	tokens    database.TokenStore
	folders   database.FolderStore
	fetcher   fetcher.Fetcher
	converter processor.ImageConverter
	producer  kafka.Producer
	storage   storage.FileStorage
	app       config.AppConfig
}

func NewImageService(
	tokens database.TokenStore,
	folders database.FolderStore,
	imageFetcher fetcher.Fetcher,
	converter processor.ImageConverter,
	producer kafka.Producer,
	fileStorage storage.FileStorage,
	app config.AppConfig,
) ImageService {
	return &imageService{
		tokens:    tokens,
		folders:   folders,
		fetcher:   imageFetcher,
		converter: converter,
		producer:  producer,
		storage:   fileStorage,
		app:       app,
	}
}
