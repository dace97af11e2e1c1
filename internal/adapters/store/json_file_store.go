package store

import (
	"context"
	"designer-finder-service/internal/domain"
	"designer-finder-service/internal/platform/obs"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// JSONFileStore keeps the whole designer collection in one JSON document.
// Every operation reads the full document and every mutation rewrites it.
// Mutations are not serialized: two concurrent writers can lose an update,
// so run a single writer per file.
type JSONFileStore struct {
	path  string
	now   func() time.Time
	newID func() string
}

func NewJSONFileStore(path string) *JSONFileStore {
	return &JSONFileStore{
		path:  path,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
}

// Init creates an empty document (and its directory) when none exists.
func (s *JSONFileStore) Init() error {
	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return storeFailure("init json store", err)
	}

	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return storeFailure("init json store: create directory", err)
		}
	}

	if err := s.write(Document{Designers: []Record{}}); err != nil {
		return fmt.Errorf("init json store: %w", err)
	}
	return nil
}

func (s *JSONFileStore) List(ctx context.Context) (_ []domain.Designer, err error) {
	defer obs.Time(ctx, "store.json.List")(&err)

	doc, err := s.read()
	if err != nil {
		return nil, fmt.Errorf("list designers: %w", err)
	}

	out := make([]domain.Designer, 0, len(doc.Designers))
	for _, r := range doc.Designers {
		out = append(out, r.toDomain())
	}
	return out, nil
}

func (s *JSONFileStore) Add(ctx context.Context, nd domain.NewDesigner) (_ domain.Designer, err error) {
	defer obs.Time(ctx, "store.json.Add")(&err)

	doc, err := s.read()
	if err != nil {
		return domain.Designer{}, fmt.Errorf("add designer: %w", err)
	}

	d := domain.Designer{
		ID:             s.newID(),
		Name:           nd.Name,
		Address:        nd.Address,
		DisplayAddress: nd.DisplayAddress,
		Coords:         nd.Coords,
		CreatedAt:      s.now(),
	}
	doc.Designers = append(doc.Designers, toRecord(d))

	if err := s.write(doc); err != nil {
		return domain.Designer{}, fmt.Errorf("add designer: %w", err)
	}
	return d, nil
}

// Insert appends d with its identity preserved. Used by document import.
func (s *JSONFileStore) Insert(ctx context.Context, d domain.Designer) (err error) {
	defer obs.Time(ctx, "store.json.Insert")(&err)

	doc, err := s.read()
	if err != nil {
		return fmt.Errorf("insert designer: %w", err)
	}
	doc.Designers = append(doc.Designers, toRecord(d))

	if err := s.write(doc); err != nil {
		return fmt.Errorf("insert designer: %w", err)
	}
	return nil
}

func (s *JSONFileStore) Remove(ctx context.Context, id string) (err error) {
	defer obs.Time(ctx, "store.json.Remove")(&err)

	doc, err := s.read()
	if err != nil {
		return fmt.Errorf("remove designer: %w", err)
	}

	kept := make([]Record, 0, len(doc.Designers))
	for _, r := range doc.Designers {
		if r.ID != id {
			kept = append(kept, r)
		}
	}

	if len(kept) == len(doc.Designers) {
		return fmt.Errorf("remove designer id=%q: %w", id, domain.ErrNotFound)
	}

	doc.Designers = kept
	if err := s.write(doc); err != nil {
		return fmt.Errorf("remove designer: %w", err)
	}
	return nil
}

func (s *JSONFileStore) read() (Document, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		return Document{}, storeFailure(fmt.Sprintf("read %q", s.path), err)
	}

	var doc Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return Document{}, storeFailure(fmt.Sprintf("parse %q", s.path), err)
	}
	if doc.Designers == nil {
		doc.Designers = []Record{}
	}
	return doc, nil
}

// write replaces the whole document via a temp file and rename.
func (s *JSONFileStore) write(doc Document) error {
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return storeFailure("encode document", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return storeFailure("write document", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return storeFailure("write document", err)
	}
	if err := tmp.Close(); err != nil {
		return storeFailure("write document", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return storeFailure("write document", err)
	}
	return nil
}
