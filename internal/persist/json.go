package persist

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/siso-ai/siso-database/internal/table"
	"github.com/siso-ai/siso-database/internal/value"
)

// jsonDatabase is the on-disk document. Tables keep creation order.
type jsonDatabase struct {
	Tables []jsonTable `json:"tables"`
}

type jsonTable struct {
	Name    string       `json:"name"`
	Columns []jsonColumn `json:"columns"`
	Rows    []jsonRow    `json:"rows"`
}

type jsonColumn struct {
	Name       string          `json:"name"`
	Type       string          `json:"type,omitempty"`
	PrimaryKey bool            `json:"primary_key,omitempty"`
	NotNull    bool            `json:"not_null,omitempty"`
	Default    json.RawMessage `json:"default,omitempty"`
}

// jsonRow stores raw JSON per cell so integers never degrade to floats
// on the way back in.
type jsonRow map[string]json.RawMessage

// SaveJSON writes the store as an indented JSON document at path.
func SaveJSON(s *table.Store, path string) error {
	doc := jsonDatabase{Tables: make([]jsonTable, 0, len(s.Tables()))}
	for _, t := range s.Tables() {
		jt, err := encodeTable(t)
		if err != nil {
			return fmt.Errorf("encode table %s: %w", t.Schema.Name, err)
		}
		doc.Tables = append(doc.Tables, jt)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// LoadJSON reads a JSON snapshot into a fresh store.
func LoadJSON(path string) (*table.Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc jsonDatabase
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse database file %s: %w", path, err)
	}

	s := table.NewStore()
	for _, jt := range doc.Tables {
		if err := decodeTable(s, jt); err != nil {
			return nil, fmt.Errorf("load table %s: %w", jt.Name, err)
		}
	}
	return s, nil
}

func encodeTable(t *table.Table) (jsonTable, error) {
	jt := jsonTable{
		Name:    t.Schema.Name,
		Columns: make([]jsonColumn, 0, len(t.Schema.Columns)),
		Rows:    make([]jsonRow, 0, len(t.Rows)),
	}

	for _, c := range t.Schema.Columns {
		jc := jsonColumn{
			Name:       c.Name,
			Type:       c.Type,
			PrimaryKey: c.PrimaryKey,
			NotNull:    c.NotNull,
		}
		if c.Default != nil {
			raw, err := value.MarshalValue(c.Default)
			if err != nil {
				return jsonTable{}, fmt.Errorf("column %s default: %w", c.Name, err)
			}
			jc.Default = raw
		}
		jt.Columns = append(jt.Columns, jc)
	}

	for _, row := range t.Rows {
		jr := make(jsonRow, len(row))
		for col, v := range row {
			raw, err := value.MarshalValue(v)
			if err != nil {
				return jsonTable{}, fmt.Errorf("column %s: %w", col, err)
			}
			jr[col] = raw
		}
		jt.Rows = append(jt.Rows, jr)
	}
	return jt, nil
}

func decodeTable(s *table.Store, jt jsonTable) error {
	schema := table.Schema{Name: jt.Name}
	for _, jc := range jt.Columns {
		c := table.Column{
			Name:       jc.Name,
			Type:       jc.Type,
			PrimaryKey: jc.PrimaryKey,
			NotNull:    jc.NotNull,
		}
		if jc.Default != nil {
			v, err := value.UnmarshalValue(jc.Default)
			if err != nil {
				return fmt.Errorf("column %s default: %w", jc.Name, err)
			}
			c.Default = v
		}
		schema.Columns = append(schema.Columns, c)
	}

	if err := s.CreateTable(schema); err != nil {
		return err
	}

	rows := make([]table.Row, 0, len(jt.Rows))
	for _, jr := range jt.Rows {
		row, err := decodeRow(jr)
		if err != nil {
			return err
		}
		rows = append(rows, row)
	}
	return s.InsertAll(jt.Name, rows)
}

func decodeRow(jr jsonRow) (table.Row, error) {
	row := make(table.Row, len(jr))
	for col, raw := range jr {
		v, err := value.UnmarshalValue(raw)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", col, err)
		}
		row[col] = v
	}
	return row, nil
}
