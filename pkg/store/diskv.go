package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/dreams/pkg/config"
	"tableflip.dev/dreams/pkg/dream"
)

const (
	// StorageKey is the fixed key holding the serialized dream collection.
	StorageKey = "dream-storage"
	// CurrentSchema tags the stored document layout.
	CurrentSchema = "v1"

	tempDirName = ".tmp"
)

// Persistence defines the durable storage contract for the dream collection.
type Persistence interface {
	Load(ctx context.Context) ([]*dream.Dream, error)
	Save(ctx context.Context, dreams []*dream.Dream) error
	Watch(ctx context.Context) (<-chan Event, error)
}

// Config locates the storage directory.
type Config interface {
	BasePath() string
}

// document is the stored value.
type document struct {
	Schema string         `json:"schema"`
	Dreams []*dream.Dream `json:"dreams"`
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		TempDir:      filepath.Join(basePath, tempDirName),
		Transform:    flatTransform,
		CacheSizeMax: 1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
}

// Load reads the stored collection. A missing key is an empty collection.
func (p *persistence) Load(_ context.Context) ([]*dream.Dream, error) {
	// Read around the cache so writes by other processes are seen.
	rc, err := p.d.ReadStream(StorageKey, true)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []*dream.Dream{}, nil
		}
		return nil, fmt.Errorf("store: read %s: %w", StorageKey, err)
	}
	defer rc.Close()

	val, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", StorageKey, err)
	}
	if len(val) == 0 {
		return []*dream.Dream{}, nil
	}
	doc := document{}
	if err := json.Unmarshal(val, &doc); err != nil {
		return nil, fmt.Errorf("store: decode %s: %w", StorageKey, err)
	}
	if doc.Dreams == nil {
		doc.Dreams = []*dream.Dream{}
	}
	return doc.Dreams, nil
}

// Save replaces the stored collection.
func (p *persistence) Save(_ context.Context, dreams []*dream.Dream) error {
	if dreams == nil {
		dreams = []*dream.Dream{}
	}
	data, err := json.Marshal(document{Schema: CurrentSchema, Dreams: dreams})
	if err != nil {
		return fmt.Errorf("store: encode: %w", err)
	}
	if err := p.d.Write(StorageKey, data); err != nil {
		return fmt.Errorf("store: write %s: %w", StorageKey, err)
	}
	return nil
}

// flatTransform keeps every key directly under the base path.
func flatTransform(string) []string {
	return []string{}
}
