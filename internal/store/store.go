// Package store owns all database access for the contacts table. Every
// operation is a single parameterized statement; failures propagate to the
// caller as error values carrying the underlying driver message.
package store

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/contactdesk/contacts-api/pkg/model"
)

//go:embed schema.sql
var schema string

// ErrNotFound is returned when no row exists for the given id.
var ErrNotFound = errors.New("contact not found")

// Store wraps the database handle and the prepared statements for the five
// contact operations. It is safe for concurrent use; SQLite serializes
// conflicting writes itself.
type Store struct {
	db            *sqlx.DB
	insert        *sqlx.NamedStmt
	selectAll     *sqlx.Stmt
	selectWhereId *sqlx.Stmt
	update        *sqlx.NamedStmt
	deleteWhereId *sqlx.Stmt
}

// Open opens the SQLite database at the given path, applies the embedded
// schema and prepares all statements. WAL mode keeps readers unblocked
// while a write transaction is running.
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000", path)
	sqlDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	s, err := New(sqlDB)
	if err != nil {
		sqlDB.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an already opened database connection and prepares all
// statements. The connection can be a real database for production use or a
// mock database within unit tests.
func New(sqlDB *sql.DB) (*Store, error) {
	s := &Store{db: sqlx.NewDb(sqlDB, "sqlite3")}

	// Prepared statements offer a significant speed increase if executed many times.
	var err error
	s.insert, err = s.db.PrepareNamed(`
		INSERT INTO contacts (name, phone, email, address, created_at)
		VALUES (:name, :phone, :email, :address, :created_at)
	`)
	if err != nil {
		return nil, fmt.Errorf("prepare insert: %w", err)
	}
	s.selectAll, err = s.db.Preparex(`
		SELECT * FROM contacts ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("prepare select all: %w", err)
	}
	s.selectWhereId, err = s.db.Preparex(`
		SELECT * FROM contacts WHERE id = ?
	`)
	if err != nil {
		return nil, fmt.Errorf("prepare select by id: %w", err)
	}
	s.update, err = s.db.PrepareNamed(`
		UPDATE contacts
		SET name = :name, phone = :phone, email = :email, address = :address
		WHERE id = :id
	`)
	if err != nil {
		return nil, fmt.Errorf("prepare update: %w", err)
	}
	s.deleteWhereId, err = s.db.Preparex(`
		DELETE FROM contacts WHERE id = ?
	`)
	if err != nil {
		return nil, fmt.Errorf("prepare delete: %w", err)
	}
	return s, nil
}

// FindAll returns all contacts, most recently created first. An empty slice
// is a valid result, not an error.
func (s *Store) FindAll() ([]model.Contact, error) {
	contacts := []model.Contact{}
	if err := s.selectAll.Select(&contacts); err != nil {
		return nil, err
	}
	return contacts, nil
}

// FindByID returns the contact with the given id or ErrNotFound.
func (s *Store) FindByID(id int64) (model.Contact, error) {
	var contact model.Contact
	err := s.selectWhereId.Get(&contact, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Contact{}, ErrNotFound
	}
	if err != nil {
		return model.Contact{}, err
	}
	return contact, nil
}

// Insert stores a new contact. The id and the creation timestamp are
// assigned here, never taken from the caller, and the completed record is
// returned.
func (s *Store) Insert(contact model.Contact) (model.Contact, error) {
	contact.CreatedAt = time.Now().UTC()
	result, err := s.insert.Exec(contact)
	if err != nil {
		return model.Contact{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return model.Contact{}, err
	}
	contact.Id = id
	return contact, nil
}

// Update overwrites the mutable fields of the contact identified by
// contact.Id. The creation timestamp is left untouched. Returns ErrNotFound
// if no row matches.
func (s *Store) Update(contact model.Contact) error {
	result, err := s.update.Exec(contact)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the contact with the given id. Returns ErrNotFound if no
// row matches.
func (s *Store) Delete(id int64) error {
	result, err := s.deleteWhereId.Exec(id)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Ping verifies that the database is still reachable.
func (s *Store) Ping() error {
	return s.db.Ping()
}

// Close releases the database connection. Called once during orderly
// shutdown.
func (s *Store) Close() error {
	return s.db.Close()
}

// IsUniqueViolation reports whether the error is a uniqueness constraint
// violation, e.g. a duplicate email.
func IsUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrConstraint &&
			(sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
				sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey)
	}
	return false
}
