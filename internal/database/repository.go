package database

import (
	"github.com/nrandle/image-downloader/internal/entity"
)

// TokenStore is the process-wide registry of CSV preparations.
// Tokens are single-use and expire after the store TTL.
type TokenStore interface {
	Create(prep *entity.CSVPreparation) string
	Consume(token string) (*entity.CSVPreparation, error)
	Cleanup() int
}

// FolderStore maps opaque folder keys to output directories and owns the
// per-folder name registry and write serialization.
type FolderStore interface {
	Resolve(key string) (string, string, error)
	ReserveName(key string, source string, enhance bool) (string, error)
	Write(key string, filename string, data []byte) error
}
