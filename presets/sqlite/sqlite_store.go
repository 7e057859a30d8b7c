// Package sqlite is a reference implementation of presets.Store: a working
// example of the consumed persistence port, not a component the core wires
// in itself (spec §6 names the on-disk format "consumed, not owned").
package sqlite

import (
	"context"
	"database/sql"
	"time"

	_ "modernc.org/sqlite" // pure Go sqlite driver

	"github.com/soundcore-oss/soundcore-go/presets"
	"github.com/soundcore-oss/soundcore-go/transport"
)

// Store implements presets.Store against a local sqlite database.
type Store struct {
	db *sql.DB
}

// Open creates or opens the sqlite database at path and ensures its schema
// exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	s := &Store{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	const schema = `
	CREATE TABLE IF NOT EXISTS presets (
		service_uuid TEXT NOT NULL,
		kind INTEGER NOT NULL,
		name TEXT NOT NULL,
		payload BLOB,
		updated_at DATETIME,
		PRIMARY KEY (service_uuid, kind, name)
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *Store) List(ctx context.Context, serviceUUID transport.UUID, kind presets.Kind) ([]presets.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, payload, updated_at FROM presets WHERE service_uuid = ? AND kind = ? ORDER BY name`,
		serviceUUID.String(), int(kind))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []presets.Record
	for rows.Next() {
		rec := presets.Record{ServiceUUID: serviceUUID, Kind: kind}
		var updatedAt time.Time
		if err := rows.Scan(&rec.Name, &rec.Payload, &updatedAt); err != nil {
			return nil, err
		}
		rec.UpdatedAt = updatedAt
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *Store) Get(ctx context.Context, serviceUUID transport.UUID, kind presets.Kind, name string) (presets.Record, error) {
	rec := presets.Record{ServiceUUID: serviceUUID, Kind: kind, Name: name}
	row := s.db.QueryRowContext(ctx,
		`SELECT payload, updated_at FROM presets WHERE service_uuid = ? AND kind = ? AND name = ?`,
		serviceUUID.String(), int(kind), name)
	var updatedAt time.Time
	if err := row.Scan(&rec.Payload, &updatedAt); err != nil {
		if err == sql.ErrNoRows {
			return presets.Record{}, presets.ErrNotFound
		}
		return presets.Record{}, err
	}
	rec.UpdatedAt = updatedAt
	return rec, nil
}

func (s *Store) Put(ctx context.Context, rec presets.Record) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO presets (service_uuid, kind, name, payload, updated_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(service_uuid, kind, name) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		rec.ServiceUUID.String(), int(rec.Kind), rec.Name, rec.Payload, rec.UpdatedAt)
	return err
}

func (s *Store) Delete(ctx context.Context, serviceUUID transport.UUID, kind presets.Kind, name string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM presets WHERE service_uuid = ? AND kind = ? AND name = ?`,
		serviceUUID.String(), int(kind), name)
	return err
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
