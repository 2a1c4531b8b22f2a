package store

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pulsefit/data"
	"github.com/pulsefit/models"
)

const (
	manifestFile = "manifest.json"
	// sortable prefix so a plain directory listing orders uploads by time
	storedNameLayout = "20060102T150405.000000000Z"
)

// UploadStore keeps uploaded exports in a directory together with a JSON
// manifest of what was stored and when.
type UploadStore struct {
	Dir string

	mu  sync.Mutex
	now func() time.Time
}

// NewUploadStore creates the upload directory if it does not exist
func NewUploadStore(dir string) (*UploadStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &UploadStore{Dir: dir, now: time.Now}, nil
}

// Save validates the file type, writes r to the upload directory and records
// it in the manifest.
func (s *UploadStore) Save(filename string, r io.Reader) (models.Upload, error) {
	base := filepath.Base(filename)
	format, err := data.DetectFormat(base)
	if err != nil {
		return models.Upload{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	uploadedAt := s.now().UTC()
	storedName := uploadedAt.Format(storedNameLayout) + "_" + base
	path := filepath.Join(s.Dir, storedName)

	out, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return models.Upload{}, fmt.Errorf("failed to create %s: %w", storedName, err)
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		os.Remove(path)
		return models.Upload{}, fmt.Errorf("failed to write %s: %w", storedName, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(path)
		return models.Upload{}, fmt.Errorf("failed to close %s: %w", storedName, err)
	}

	upload := models.Upload{
		ID:         uuid.New(),
		Filename:   base,
		Path:       path,
		Format:     format.String(),
		UploadedAt: uploadedAt,
	}

	manifest, err := s.loadManifest()
	if err != nil {
		os.Remove(path)
		return models.Upload{}, err
	}
	manifest = append(manifest, upload)
	if err := s.writeManifest(manifest); err != nil {
		os.Remove(path)
		return models.Upload{}, err
	}

	log.Printf("Stored upload %s as %s", upload.ID, storedName)
	return upload, nil
}

// List returns every stored upload, newest first
func (s *UploadStore) List() ([]models.Upload, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	uploads, err := s.loadManifest()
	if err != nil {
		return nil, err
	}
	if len(uploads) == 0 {
		uploads, err = s.scanDir()
		if err != nil {
			return nil, err
		}
	}
	sort.SliceStable(uploads, func(i, j int) bool {
		if uploads[i].UploadedAt.Equal(uploads[j].UploadedAt) {
			return filepath.Base(uploads[i].Path) > filepath.Base(uploads[j].Path)
		}
		return uploads[i].UploadedAt.After(uploads[j].UploadedAt)
	})
	return uploads, nil
}

// Latest returns the most recently added upload. Without a manifest it falls
// back to the lexically last data file in the directory.
func (s *UploadStore) Latest() (models.Upload, error) {
	uploads, err := s.List()
	if err != nil {
		return models.Upload{}, err
	}
	if len(uploads) == 0 {
		return models.Upload{}, &models.NoDataError{Reason: "No files have been uploaded yet."}
	}
	return uploads[0], nil
}

func (s *UploadStore) loadManifest() ([]models.Upload, error) {
	path := filepath.Join(s.Dir, manifestFile)
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var uploads []models.Upload
	if err := json.Unmarshal(raw, &uploads); err != nil {
		return nil, fmt.Errorf("failed to unmarshal manifest: %w", err)
	}

	// drop records whose file was removed behind our back
	kept := uploads[:0]
	for _, u := range uploads {
		if _, err := os.Stat(u.Path); err == nil {
			kept = append(kept, u)
		}
	}
	return kept, nil
}

func (s *UploadStore) writeManifest(uploads []models.Upload) error {
	raw, err := json.MarshalIndent(uploads, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	tmp := filepath.Join(s.Dir, manifestFile+".tmp")
	if err := os.WriteFile(tmp, raw, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	if err := os.Rename(tmp, filepath.Join(s.Dir, manifestFile)); err != nil {
		return fmt.Errorf("failed to replace manifest: %w", err)
	}
	return nil
}

// scanDir lists data files for directories populated without the manifest,
// e.g. by copying exports in by hand. UploadedAt stays zero so List orders
// them by name.
func (s *UploadStore) scanDir() ([]models.Upload, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list upload directory: %w", err)
	}

	var uploads []models.Upload
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), manifestFile) {
			continue
		}
		format, err := data.DetectFormat(e.Name())
		if err != nil {
			continue
		}
		uploads = append(uploads, models.Upload{
			Filename: e.Name(),
			Path:     filepath.Join(s.Dir, e.Name()),
			Format:   format.String(),
		})
	}
	return uploads, nil
}
