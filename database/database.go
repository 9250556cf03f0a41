package database

import (
	"log/slog"
	"maps"
	"slices"
	"sync"

	"github.com/ardnew/santa/lang"
)

// defaultTable names the empty table every new database starts with.
const defaultTable = "default"

// Database is a set of named tables with one selected as current.
// It is safe for concurrent use.
type Database struct {
	mu      sync.RWMutex
	tables  map[string]*Table
	current string
}

// New returns a database holding only an empty table named "default",
// selected as current.
func New() *Database {
	return &Database{
		tables:  map[string]*Table{defaultTable: NewTable(defaultTable)},
		current: defaultTable,
	}
}

// AddTable adds t, replacing any table with the same name.
func (db *Database) AddTable(t *Table) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.tables[t.Name] = t
}

// Table returns the named table.
func (db *Database) Table(name string) (*Table, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	t, ok := db.tables[name]

	return t, ok
}

// TableNames returns the table names in sorted order.
func (db *Database) TableNames() []string {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return slices.Sorted(maps.Keys(db.tables))
}

// SetCurrent selects the named table for subsequent record operations.
func (db *Database) SetCurrent(name string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.tables[name]; !ok {
		return ErrDatabase.Wrap(errNoTable).With(slog.String("table", name))
	}

	db.current = name

	return nil
}

// Current returns the selected table.
func (db *Database) Current() *Table {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return db.tables[db.current]
}

// Columns returns a copy of the current table's column list.
func (db *Database) Columns() []string {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return slices.Clone(db.tables[db.current].Columns)
}

// AddRecord appends a record to the current table.
func (db *Database) AddRecord(values ...lang.Value) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	return db.tables[db.current].AddRecord(values...)
}

// GetFirst returns a copy of the first record of the current table whose
// column equals value.
func (db *Database) GetFirst(column string, value lang.Value) (Record, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	r, err := db.tables[db.current].GetFirst(column, value)
	if err != nil {
		return nil, err
	}

	return slices.Clone(r), nil
}

// SetFirst updates the first matching record of the current table.
// See [Table.SetFirst].
func (db *Database) SetFirst(column string, value lang.Value, newcolumn string, newvalue lang.Value) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	return db.tables[db.current].SetFirst(column, value, newcolumn, newvalue)
}

// GetAll returns copies of every record of the current table whose column
// equals value.
func (db *Database) GetAll(column string, value lang.Value) ([]Record, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	recs, err := db.tables[db.current].GetAll(column, value)
	if err != nil {
		return nil, err
	}

	return cloneRecords(recs), nil
}

// Records returns copies of all records of the current table.
func (db *Database) Records() []Record {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return cloneRecords(db.tables[db.current].Records)
}

// Len returns the number of records in the current table.
func (db *Database) Len() int {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return len(db.tables[db.current].Records)
}

// Query returns copies of the records of the current table matching filter.
// See [Table.Query].
func (db *Database) Query(filter string) ([]Record, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	recs, err := db.tables[db.current].Query(filter)
	if err != nil {
		return nil, err
	}

	return cloneRecords(recs), nil
}

// Clone returns a deep copy of db.
func (db *Database) Clone() *Database {
	db.mu.RLock()
	defer db.mu.RUnlock()

	c := &Database{
		tables:  make(map[string]*Table, len(db.tables)),
		current: db.current,
	}

	for name, t := range db.tables {
		c.tables[name] = t.Clone()
	}

	return c
}

// Equal reports whether db and other select the same current table and hold
// equal tables.
func (db *Database) Equal(other *Database) bool {
	if db == other {
		return true
	}

	if db == nil || other == nil {
		return false
	}

	a, b := db.Clone(), other.Clone()

	return a.current == b.current &&
		maps.EqualFunc(a.tables, b.tables, (*Table).Equal)
}

func cloneRecords(recs []Record) []Record {
	out := make([]Record, 0, len(recs))
	for _, r := range recs {
		out = append(out, slices.Clone(r))
	}

	return out
}
