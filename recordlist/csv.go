package recordlist

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/ncobase/recordlist/store"
)

// ExportCSV streams the complete collection behind req as CSV, ignoring any
// paging the request carries. The first record is the header.
func (e *Engine) ExportCSV(ctx context.Context, w io.Writer, req *ListRequest) error {
	schema, ok := e.Pager.Schemas.Get(req.Table)
	if !ok {
		return fmt.Errorf("unknown table %q: %w", req.Table, store.ErrNotFound)
	}

	header := e.header(schema, req.Fields)
	filter := languageFilter(schema, req.Filter)
	rows, err := e.Pager.Store.FetchWindow(ctx, req.Table, req.Scope, filter, exportSort(schema, req.Sort), 0, 0)
	if err != nil {
		return fmt.Errorf("export %s: %w", req.Table, err)
	}

	cw := csv.NewWriter(w)
	record := make([]string, 0, len(header)+1)
	record = append(record, "uid")
	record = append(record, header...)
	if err := cw.Write(record); err != nil {
		return err
	}
	for _, row := range rows {
		record = record[:0]
		record = append(record, fmt.Sprint(row.Uid))
		for _, f := range header {
			record = append(record, csvValue(row.Fields[f]))
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func exportSort(schema store.Schema, sort store.Sort) store.Sort {
	if sort.Field != "" {
		return sort
	}
	if schema.SortField != "" {
		return store.Sort{Field: schema.SortField}
	}
	return store.Sort{}
}

func csvValue(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}
