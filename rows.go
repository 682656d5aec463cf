package mapper

import (
	"database/sql"
	"reflect"
)

// scanRows maps each result row onto a new record. Result columns are
// matched to fields by column label, which can be the column name or the
// property name used as an alias. Columns that match no field are
// discarded.
func scanRows[T any](tbl *Table, rows *sql.Rows) ([]*T, error) {
	labels, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	cols := make([]*Column, len(labels))
	for i, label := range labels {
		if col := tbl.column(label); col != nil && col.index != nil {
			cols[i] = col
		}
	}

	var list []*T
	dests := make([]interface{}, len(labels))
	for rows.Next() {
		row := new(T)
		rowValue := reflect.ValueOf(row).Elem()
		var jsonCells []*jsonCell
		for i, col := range cols {
			if col == nil {
				dests[i] = new(interface{})
				continue
			}
			fieldValue := col.index.ValueRW(rowValue)
			if col.json {
				cell := newJSONCell(col.name, fieldValue)
				jsonCells = append(jsonCells, cell)
				dests[i] = cell.ScanValue()
				continue
			}
			dests[i] = scanDest(col.name, fieldValue)
		}
		if err := rows.Scan(dests...); err != nil {
			return nil, err
		}
		for _, cell := range jsonCells {
			if err := cell.Unmarshal(); err != nil {
				return nil, err
			}
		}
		list = append(list, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}
