package store

import (
	"context"
	"database/sql"
	"designer-finder-service/internal/domain"
	"designer-finder-service/internal/platform/obs"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SQL-backed implementation of the DesignerStore port.
// Insertion order is kept by the auto-incrementing seq column.
type SQLStore struct {
	DB      *sql.DB
	dialect Dialect
	now     func() time.Time
	newID   func() string
}

func NewSQLStore(db *sql.DB, d Dialect) *SQLStore {
	return &SQLStore{
		DB:      db,
		dialect: d,
		now:     func() time.Time { return time.Now().UTC() },
		newID:   uuid.NewString,
	}
}

// Init creates the schema when it does not exist yet.
func (s *SQLStore) Init() error {
	if err := InitSchema(s.DB, s.dialect); err != nil {
		return storeFailure(s.dialect.Name+" store", err)
	}
	return nil
}

// Return all designers in insertion order.
func (s *SQLStore) List(ctx context.Context) (_ []domain.Designer, err error) {
	defer obs.Time(ctx, "store."+s.dialect.Name+".List")(&err)

	if s.DB == nil {
		return nil, storeFailure("list designers", errors.New("DB is nil"))
	}

	query := `
	SELECT
		id,
		name,
		address,
		display_address,
		lat,
		lon,
		country_code,
		display_name,
		created_at
	FROM designers
	ORDER BY seq;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, storeFailure("list designers: query designers table", err)
	}
	defer rows.Close()

	designers := make([]domain.Designer, 0, 16)
	for rows.Next() {
		var (
			d         domain.Designer
			createdAt string
		)
		err := rows.Scan(
			&d.ID,
			&d.Name,
			&d.Address,
			&d.DisplayAddress,
			&d.Coords.Lat,
			&d.Coords.Lon,
			&d.Coords.CountryCode,
			&d.Coords.DisplayName,
			&createdAt,
		)
		if err != nil {
			return nil, storeFailure("list designers: scan row", err)
		}

		d.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, storeFailure(fmt.Sprintf("list designers: parse created_at of %q", d.ID), err)
		}
		designers = append(designers, d)
	}

	if err := rows.Err(); err != nil {
		return nil, storeFailure("list designers: row iteration", err)
	}

	return designers, nil
}

func (s *SQLStore) Add(ctx context.Context, nd domain.NewDesigner) (_ domain.Designer, err error) {
	defer obs.Time(ctx, "store."+s.dialect.Name+".Add")(&err)

	d := domain.Designer{
		ID:             s.newID(),
		Name:           nd.Name,
		Address:        nd.Address,
		DisplayAddress: nd.DisplayAddress,
		Coords:         nd.Coords,
		CreatedAt:      s.now(),
	}
	if err := s.insert(ctx, d); err != nil {
		return domain.Designer{}, fmt.Errorf("add designer: %w", err)
	}
	return d, nil
}

// Insert stores d with its identity preserved. Used by document import.
func (s *SQLStore) Insert(ctx context.Context, d domain.Designer) (err error) {
	defer obs.Time(ctx, "store."+s.dialect.Name+".Insert")(&err)

	if err := s.insert(ctx, d); err != nil {
		return fmt.Errorf("insert designer: %w", err)
	}
	return nil
}

func (s *SQLStore) insert(ctx context.Context, d domain.Designer) error {
	if s.DB == nil {
		return storeFailure("insert", errors.New("DB is nil"))
	}

	query := fmt.Sprintf(`
	INSERT INTO designers (
		id,
		name,
		address,
		display_address,
		lat,
		lon,
		country_code,
		display_name,
		created_at
	)
	VALUES (%s);
	`, s.dialect.params(9))

	_, err := s.DB.ExecContext(ctx, query,
		d.ID,
		d.Name,
		d.Address,
		d.DisplayAddress,
		d.Coords.Lat,
		d.Coords.Lon,
		d.Coords.CountryCode,
		d.Coords.DisplayName,
		d.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return storeFailure(fmt.Sprintf("insert id=%q", d.ID), err)
	}
	return nil
}

func (s *SQLStore) Remove(ctx context.Context, id string) (err error) {
	defer obs.Time(ctx, "store."+s.dialect.Name+".Remove")(&err)

	if s.DB == nil {
		return storeFailure("remove designer", errors.New("DB is nil"))
	}

	query := "DELETE FROM designers WHERE id = " + s.dialect.placeholder(1) + ";"
	res, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return storeFailure(fmt.Sprintf("remove designer id=%q", id), err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return storeFailure(fmt.Sprintf("remove designer id=%q: rows affected", id), err)
	}
	if n == 0 {
		return fmt.Errorf("remove designer id=%q: %w", id, domain.ErrNotFound)
	}
	return nil
}
