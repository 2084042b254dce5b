package runs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/provision/internal/config"
)

// Repository defines persistence operations for delivery records.
type Repository interface {
	Load(ctx context.Context) ([]*Record, error)
	Append(ctx context.Context, record *Record) error
}

// FileRepository persists delivery records to a YAML file on disk.
type FileRepository struct {
	// path is the filesystem location of the YAML file.
	path string
	// mu protects concurrent access to the file.
	mu sync.Mutex
}

// document is the on-disk layout.
type document struct {
	Runs []*Record `yaml:"runs"`
}

// NewFileRepository creates a repository that reads/writes YAML at the provided path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{
		path: filepath.Clean(path),
	}
}

// Load returns every stored record, oldest first. A missing file yields no records.
func (r *FileRepository) Load(_ context.Context) ([]*Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.read()
	if err != nil {
		return nil, err
	}

	return doc.Runs, nil
}

// Append adds a record to the file.
func (r *FileRepository) Append(_ context.Context, record *Record) error {
	if record == nil {
		return errNilRecord
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.read()
	if err != nil {
		return err
	}

	doc.Runs = append(doc.Runs, record)

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode runs: %w", err)
	}

	if err = os.WriteFile(r.path, data, config.DefaultFilePermissions); err != nil {
		return fmt.Errorf("write runs file: %w", err)
	}

	return nil
}

// errNilRecord is returned when Append is called without a record.
var errNilRecord = errors.New("record must be provided")

func (r *FileRepository) read() (*document, error) {
	doc := new(document)

	contents, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return doc, nil
		}

		return nil, fmt.Errorf("read runs file: %w", err)
	}

	if err = yaml.Unmarshal(contents, doc); err != nil {
		return nil, fmt.Errorf("decode runs file: %w", err)
	}

	return doc, nil
}
