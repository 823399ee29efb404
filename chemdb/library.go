/*
 * library.go, part of goavo.
 *
 *
 * Copyright 2024 Raul Mera <rmeraatusachdotcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

package chemdb

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const (
	libraryDriver = "sqlite"
	libraryDSNOpt = "?_pragma=busy_timeout(3000)&_pragma=journal_mode(WAL)"
)

//Library is a local collection of records kept in a SQLite file, so
//search results can be browsed again without the database server.
//Records come back in the order they were first stored.
type Library struct {
	db *sql.DB
}

//OpenLibrary opens, creating it if needed, the library at path.
func OpenLibrary(path string) (*Library, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("chemdb: library path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("chemdb: create dir: %w", err)
	}
	db, err := sql.Open(libraryDriver, path+libraryDSNOpt)
	if err != nil {
		return nil, fmt.Errorf("chemdb: open library: %w", err)
	}
	L := &Library{db: db}
	if err := L.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return L, nil
}

func (L *Library) migrate(ctx context.Context) error {
	const q = `
CREATE TABLE IF NOT EXISTS records (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	id  TEXT NOT NULL UNIQUE,
	doc TEXT NOT NULL
)`
	if _, err := L.db.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("chemdb: migrate library: %w", err)
	}
	return nil
}

//Close closes the underlying database.
func (L *Library) Close() error {
	if L == nil || L.db == nil {
		return nil
	}
	return L.db.Close()
}

//Put stores r, replacing any record with the same id but keeping the
//position of the first one. Records without an "_id" get a random one,
//which is written into r and returned.
func (L *Library) Put(ctx context.Context, r Record) (string, error) {
	if r == nil {
		return "", fmt.Errorf("chemdb: nil record")
	}
	id := r.ID()
	if id == "" {
		id = uuid.NewString()
		r["_id"] = id
	}
	doc, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("chemdb: encoding record %s: %w", id, err)
	}
	const q = `
INSERT INTO records (id, doc) VALUES (?, ?)
ON CONFLICT(id) DO UPDATE SET doc = excluded.doc`
	if _, err := L.db.ExecContext(ctx, q, id, string(doc)); err != nil {
		return "", fmt.Errorf("chemdb: storing record %s: %w", id, err)
	}
	return id, nil
}

//Delete removes the record with the given id. It is not an error if there
//is no such record; the return value tells whether something was deleted.
func (L *Library) Delete(ctx context.Context, id string) (bool, error) {
	res, err := L.db.ExecContext(ctx, `DELETE FROM records WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("chemdb: deleting record %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

//All returns every record in insertion order.
func (L *Library) All(ctx context.Context) ([]Record, error) {
	rows, err := L.db.QueryContext(ctx, `SELECT id, doc FROM records ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("chemdb: listing records: %w", err)
	}
	defer rows.Close()
	var recs []Record
	for rows.Next() {
		var id, doc string
		if err := rows.Scan(&id, &doc); err != nil {
			return nil, fmt.Errorf("chemdb: listing records: %w", err)
		}
		dec := json.NewDecoder(bytes.NewReader([]byte(doc)))
		dec.UseNumber()
		var r Record
		if err := dec.Decode(&r); err != nil {
			return nil, fmt.Errorf("chemdb: decoding record %s: %w", id, err)
		}
		recs = append(recs, r)
	}
	return recs, rows.Err()
}

//Fill appends every record in the library to m.
func (L *Library) Fill(ctx context.Context, m *Model) error {
	recs, err := L.All(ctx)
	if err != nil {
		return err
	}
	for _, r := range recs {
		m.Append(r)
	}
	return nil
}
