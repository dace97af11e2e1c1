package store

import (
	"context"
	"designer-finder-service/internal/domain"
	"designer-finder-service/internal/ports"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

// Document is the persisted shape of the whole designer collection.
type Document struct {
	Designers []Record `json:"designers"`
}

// Record is the persisted shape of one designer.
type Record struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	Address        string       `json:"address"`
	DisplayAddress string       `json:"displayAddress,omitempty"`
	Coords         RecordCoords `json:"coords"`
	CreatedAt      time.Time    `json:"createdAt"`
}

type RecordCoords struct {
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	DisplayName string  `json:"displayName,omitempty"`
	CountryCode string  `json:"countryCode,omitempty"`
}

func toRecord(d domain.Designer) Record {
	return Record{
		ID:             d.ID,
		Name:           d.Name,
		Address:        d.Address,
		DisplayAddress: d.DisplayAddress,
		Coords: RecordCoords{
			Lat:         d.Coords.Lat,
			Lon:         d.Coords.Lon,
			DisplayName: d.Coords.DisplayName,
			CountryCode: d.Coords.CountryCode,
		},
		CreatedAt: d.CreatedAt,
	}
}

func (r Record) toDomain() domain.Designer {
	return domain.Designer{
		ID:             r.ID,
		Name:           r.Name,
		Address:        r.Address,
		DisplayAddress: r.DisplayAddress,
		Coords: domain.ResolvedLocation{
			Coordinates: domain.Coordinates{Lon: r.Coords.Lon, Lat: r.Coords.Lat},
			CountryCode: r.Coords.CountryCode,
			DisplayName: r.Coords.DisplayName,
		},
		CreatedAt: r.CreatedAt,
	}
}

// Importer is a store that can take records with their identity preserved.
type Importer interface {
	ports.DesignerStore
	Insert(ctx context.Context, d domain.Designer) error
}

// ImportDocument reads a persisted document from r and inserts every designer
// whose id is not already present in dst. It returns the number inserted.
func ImportDocument(ctx context.Context, dst Importer, r io.Reader) (int, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return 0, fmt.Errorf("import designers: parse json: %w", err)
	}

	existing, err := dst.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("import designers: %w", err)
	}
	seen := make(map[string]struct{}, len(existing))
	for _, d := range existing {
		seen[d.ID] = struct{}{}
	}

	inserted := 0
	for i, rec := range doc.Designers {
		if strings.TrimSpace(rec.ID) == "" {
			return inserted, fmt.Errorf("import designers: item at index %d: id cannot be empty", i+1)
		}
		if strings.TrimSpace(rec.Name) == "" {
			return inserted, fmt.Errorf("import designers: item %q: name cannot be empty", rec.ID)
		}
		if _, ok := seen[rec.ID]; ok {
			continue
		}
		seen[rec.ID] = struct{}{}

		if err := dst.Insert(ctx, rec.toDomain()); err != nil {
			return inserted, fmt.Errorf("import designers: insert id=%q: %w", rec.ID, err)
		}
		inserted++
	}

	return inserted, nil
}

// ExportDocument writes every designer in src to w as a persisted document.
func ExportDocument(ctx context.Context, src ports.DesignerStore, w io.Writer) error {
	designers, err := src.List(ctx)
	if err != nil {
		return fmt.Errorf("export designers: %w", err)
	}

	doc := Document{Designers: make([]Record, 0, len(designers))}
	for _, d := range designers {
		doc.Designers = append(doc.Designers, toRecord(d))
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("export designers: encode json: %w", err)
	}
	return nil
}

// storeFailure wraps err so that it matches domain.ErrStoreFailure, unless it
// already carries a domain sentinel.
func storeFailure(op string, err error) error {
	if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrStoreFailure) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStoreFailure, err)
}
