package database

import (
	"bytes"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/nrandle/image-downloader/internal/pkg/processor"
	"github.com/nrandle/image-downloader/internal/pkg/storage"
)

type folderSession struct {
	mu    sync.Mutex
	dir   string
	names map[string]bool
}

type folderStore struct {
	mu      sync.Mutex
	storage storage.FileStorage
	base    string
	folders map[string]*folderSession
}

// NewFolderStore returns a FolderStore rooted at base inside the file storage.
func NewFolderStore(fileStorage storage.FileStorage, base string) FolderStore {
	return &folderStore{
		storage: fileStorage,
		base:    base,
		folders: make(map[string]*folderSession),
	}
}

// Resolve maps a folder key to its directory, allocating a new key and a
// fresh directory when the key is empty or unknown. A known key always
// resolves to the same directory for the life of the process.
func (s *folderStore) Resolve(key string) (string, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if key != "" {
		if session, ok := s.folders[key]; ok {
			return key, s.storage.FullPath(session.dir), nil
		}
	}

	key = uuid.New().String()
	dir := filepath.Join(s.base, key)
	if err := s.storage.EnsureDir(dir); err != nil {
		return "", "", fmt.Errorf("failed to create session folder: %w", err)
	}

	s.folders[key] = &folderSession{dir: dir, names: make(map[string]bool)}
	return key, s.storage.FullPath(dir), nil
}

// ReserveName resolves a unique base name within the folder and records it.
func (s *folderStore) ReserveName(key string, source string, enhance bool) (string, error) {
	session, err := s.session(key)
	if err != nil {
		return "", err
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	return processor.ResolveName(source, enhance, session.names), nil
}

// Write stores one file into the folder. Writes to the same folder are
// serialized so overlapping requests sharing a key cannot interleave.
func (s *folderStore) Write(key string, filename string, data []byte) error {
	session, err := s.session(key)
	if err != nil {
		return err
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	return s.storage.Save(filepath.Join(session.dir, filename), bytes.NewReader(data))
}

func (s *folderStore) session(key string) (*folderSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.folders[key]
	if !ok {
		return nil, fmt.Errorf("unknown folder key: %s", key)
	}
	return session, nil
}
