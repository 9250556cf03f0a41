package database

import (
	"encoding/json"
	"io"
	"log/slog"
	"maps"
	"slices"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/santa/lang"
)

// document is the serialized form of a [Database].
type document struct {
	Current string          `json:"current" yaml:"current"`
	Tables  []tableDocument `json:"tables"  yaml:"tables"`
}

type tableDocument struct {
	Name    string   `json:"name"    yaml:"name"`
	Columns []string `json:"columns" yaml:"columns"`
	Records [][]any  `json:"records" yaml:"records"`
}

func (db *Database) document() document {
	db.mu.RLock()
	defer db.mu.RUnlock()

	doc := document{Current: db.current}

	for _, name := range slices.Sorted(maps.Keys(db.tables)) {
		t := db.tables[name]

		td := tableDocument{
			Name:    t.Name,
			Columns: slices.Clone(t.Columns),
			Records: make([][]any, 0, len(t.Records)),
		}

		for _, r := range t.Records {
			td.Records = append(td.Records, r.Native())
		}

		doc.Tables = append(doc.Tables, td)
	}

	return doc
}

// WriteYAML writes db to w as a YAML document.
func (db *Database) WriteYAML(w io.Writer) error {
	err := yaml.NewEncoder(w, yaml.Indent(2)).Encode(db.document())
	if err != nil {
		return ErrDatabase.Wrap(err)
	}

	return nil
}

// WriteJSON writes db to w as an indented JSON document.
func (db *Database) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(db.document()); err != nil {
		return ErrDatabase.Wrap(err)
	}

	return nil
}

// LoadYAML replaces the contents of db with the YAML document read from r.
// The document must select one of its own tables as current. On error db
// is left unchanged.
func (db *Database) LoadYAML(r io.Reader) error {
	var doc document

	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return ErrDatabase.Wrap(err)
	}

	tables := make(map[string]*Table, len(doc.Tables))

	for _, td := range doc.Tables {
		t := NewTable(td.Name, td.Columns...)

		for i, raw := range td.Records {
			rec := make(Record, 0, len(raw))

			for _, v := range raw {
				value, err := lang.FromNative(v)
				if err != nil {
					return ErrDatabase.Wrap(err).With(
						slog.String("table", td.Name),
						slog.Int("record", i),
					)
				}

				rec = append(rec, value)
			}

			if err := t.AddRecord(rec...); err != nil {
				return err
			}
		}

		tables[t.Name] = t
	}

	if _, ok := tables[doc.Current]; !ok {
		return ErrDatabase.Wrap(errNoTable).With(slog.String("table", doc.Current))
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	db.tables = tables
	db.current = doc.Current

	return nil
}
