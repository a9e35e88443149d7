package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/ViegasWedjat/Revit01-Serpa/internal/model"

	_ "github.com/mattn/go-sqlite3"
)

// Store is a sqlite snapshot of a host model: elements, their parameters,
// assembly membership, the current selection and the document path.
type Store struct {
	db *sql.DB
}

// Open connects to the snapshot database and creates the schema if needed
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}
	s := &Store{db: db}
	if err := s.Init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

// Init creates tables if not exists
func (s *Store) Init() error {
	tables := []string{`
	CREATE TABLE IF NOT EXISTS document (
		key TEXT PRIMARY KEY,
		value TEXT
	);`, `
	CREATE TABLE IF NOT EXISTS elements (
		id INTEGER PRIMARY KEY,
		unique_id TEXT,
		category TEXT,
		type_id INTEGER,
		assembly_id INTEGER
	);`, `
	CREATE TABLE IF NOT EXISTS parameters (
		element_id INTEGER,
		name TEXT,
		kind TEXT,
		value REAL,
		text TEXT,
		display TEXT,
		updated_at DATETIME,
		PRIMARY KEY (element_id, name)
	);`, `
	CREATE TABLE IF NOT EXISTS assembly_members (
		assembly_id INTEGER,
		member_id INTEGER,
		position INTEGER,
		PRIMARY KEY (assembly_id, member_id)
	);`, `
	CREATE TABLE IF NOT EXISTS selection (
		position INTEGER PRIMARY KEY AUTOINCREMENT,
		element_id INTEGER
	);`,
	}
	for _, t := range tables {
		if _, err := s.db.Exec(t); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

// SetDocumentPath records where the model is saved
func (s *Store) SetDocumentPath(path string) error {
	_, err := s.db.Exec(`INSERT INTO document (key, value) VALUES ('path', ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, path)
	return err
}

// PutElement stores an element with its parameters and assembly members
func (s *Store) PutElement(el *model.Element) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`INSERT OR REPLACE INTO elements (id, unique_id, category, type_id, assembly_id) VALUES (?, ?, ?, ?, ?)`,
		int64(el.ID), el.UniqueID, string(el.Category), int64(el.TypeID), int64(el.AssemblyID)); err != nil {
		return fmt.Errorf("put element %d: %w", el.ID, err)
	}
	now := time.Now().UTC()
	for name, p := range el.Params {
		if _, err := tx.Exec(`INSERT OR REPLACE INTO parameters (element_id, name, kind, value, text, display, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			int64(el.ID), name, p.Kind.String(), p.Value, p.Text, p.Display, now); err != nil {
			return fmt.Errorf("put parameter %s of %d: %w", name, el.ID, err)
		}
	}
	if _, err := tx.Exec(`DELETE FROM assembly_members WHERE assembly_id = ?`, int64(el.ID)); err != nil {
		return err
	}
	for i, m := range el.Members {
		if _, err := tx.Exec(`INSERT INTO assembly_members (assembly_id, member_id, position) VALUES (?, ?, ?)`,
			int64(el.ID), int64(m), i); err != nil {
			return fmt.Errorf("put member %d of %d: %w", m, el.ID, err)
		}
	}
	return tx.Commit()
}

// Select replaces the stored selection
func (s *Store) Select(ids ...model.ElementID) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if _, err := tx.Exec(`DELETE FROM selection`); err != nil {
		return err
	}
	for _, id := range ids {
		if _, err := tx.Exec(`INSERT INTO selection (element_id) VALUES (?)`, int64(id)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// SaveSnapshot writes every element, the selection and the path of snap
func (s *Store) SaveSnapshot(snap *model.Snapshot) error {
	for _, el := range snap.Elements() {
		if err := s.PutElement(el); err != nil {
			return err
		}
	}
	if err := s.Select(snap.Selection()...); err != nil {
		return err
	}
	return s.SetDocumentPath(snap.DocumentPath())
}

// LoadSnapshot reads the whole model into memory
func (s *Store) LoadSnapshot() (*model.Snapshot, error) {
	var path sql.NullString
	err := s.db.QueryRow(`SELECT value FROM document WHERE key = 'path'`).Scan(&path)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}
	snap := model.NewSnapshot(path.String)

	elements := make(map[model.ElementID]*model.Element)
	var order []model.ElementID
	rows, err := s.db.Query(`SELECT id, unique_id, category, type_id, assembly_id FROM elements ORDER BY id`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var id, typeID, asmID sql.NullInt64
		var uid, cat sql.NullString
		if err := rows.Scan(&id, &uid, &cat, &typeID, &asmID); err != nil {
			rows.Close()
			return nil, err
		}
		el := &model.Element{
			ID:         model.ElementID(id.Int64),
			UniqueID:   uid.String,
			Category:   model.Category(cat.String),
			TypeID:     model.ElementID(typeID.Int64),
			AssemblyID: model.ElementID(asmID.Int64),
			Params:     make(map[string]model.Parameter),
		}
		elements[el.ID] = el
		order = append(order, el.ID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.db.Query(`SELECT element_id, name, kind, value, text, display FROM parameters`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var id int64
		var name string
		var kind, text, display sql.NullString
		var value sql.NullFloat64
		if err := rows.Scan(&id, &name, &kind, &value, &text, &display); err != nil {
			rows.Close()
			return nil, err
		}
		if el, ok := elements[model.ElementID(id)]; ok {
			el.Params[name] = model.Parameter{
				Kind:    model.ParseStorageKind(kind.String),
				Value:   value.Float64,
				Text:    text.String,
				Display: display.String,
			}
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.db.Query(`SELECT assembly_id, member_id FROM assembly_members ORDER BY assembly_id, position`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var asm, member int64
		if err := rows.Scan(&asm, &member); err != nil {
			rows.Close()
			return nil, err
		}
		if el, ok := elements[model.ElementID(asm)]; ok {
			el.Members = append(el.Members, model.ElementID(member))
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, id := range order {
		snap.Add(elements[id])
	}

	rows, err = s.db.Query(`SELECT element_id FROM selection ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		snap.Select(model.ElementID(id))
	}
	return snap, rows.Err()
}

// SetParameter updates an existing parameter as text.
// It reports false when the element has no such parameter.
func (s *Store) SetParameter(id model.ElementID, name, value string) (bool, error) {
	now := time.Now().UTC()
	res, err := s.db.Exec(`UPDATE parameters SET kind = 'text', text = ?, display = ?, updated_at = ? WHERE element_id = ? AND name = ?`,
		value, value, now, int64(id), name)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
