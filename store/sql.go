package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/ncobase/recordlist/config"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLStore implements RecordStore on a database/sql connection. It is used
// with SQLite in the default deployment, any driver with standard
// placeholder syntax works.
type SQLStore struct {
	db      *sql.DB
	schemas Schemas

	// RefIndexTable names the reference-index table consulted for delete
	// warnings. Empty disables reference counting.
	RefIndexTable string
}

// OpenSQL opens the configured database and verifies the connection.
func OpenSQL(ctx context.Context, cfg *config.DBNode, schemas Schemas) (*SQLStore, error) {
	if cfg.Source == "" {
		return nil, fmt.Errorf("sql store: connection source is empty")
	}

	driver := cfg.Driver
	if driver == "" {
		driver = "sqlite3"
	}

	db, err := sql.Open(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("sql store: failed to open connection: %w", err)
	}

	if cfg.MaxIdleConn > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConn)
	} else {
		db.SetMaxIdleConns(2)
	}
	if cfg.MaxOpenConn > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConn)
	} else {
		// SQLite works best with a single writer.
		db.SetMaxOpenConns(1)
	}
	if cfg.ConnMaxLifeTime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifeTime)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sql store: failed to ping database: %w", err)
	}

	return &SQLStore{db: db, schemas: schemas, RefIndexTable: "sys_refindex"}, nil
}

// NewSQLStore wraps an existing connection.
func NewSQLStore(db *sql.DB, schemas Schemas) *SQLStore {
	return &SQLStore{db: db, schemas: schemas, RefIndexTable: "sys_refindex"}
}

// Close closes the underlying connection.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// Count implements RecordStore.
func (s *SQLStore) Count(ctx context.Context, table string, scope Scope, filter Filter) (int, error) {
	sc, ok := s.schemas.Get(table)
	if !ok {
		return 0, fmt.Errorf("sql store: unknown table %q", table)
	}

	where, args := s.buildWhere(sc, scope, filter)
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s%s", table, where)

	var n int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, Unavailable("count "+table, err)
	}
	return n, nil
}

// FetchWindow implements RecordStore.
func (s *SQLStore) FetchWindow(ctx context.Context, table string, scope Scope, filter Filter, sort Sort, offset, limit int) ([]Row, error) {
	sc, ok := s.schemas.Get(table)
	if !ok {
		return nil, fmt.Errorf("sql store: unknown table %q", table)
	}

	where, args := s.buildWhere(sc, scope, filter)
	query := fmt.Sprintf("SELECT * FROM %s%s%s", table, where, s.buildOrder(sc, sort))
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset)
	} else if offset > 0 {
		query += fmt.Sprintf(" LIMIT -1 OFFSET %d", offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, Unavailable("fetch "+table, err)
	}
	defer rows.Close()

	var result []Row
	for rows.Next() {
		row, err := scanRow(rows, sc)
		if err != nil {
			return nil, Unavailable("scan "+table, err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, Unavailable("fetch "+table, err)
	}
	return result, nil
}

// ResolveAlias implements RecordStore.
func (s *SQLStore) ResolveAlias(ctx context.Context, table, alias string) (int, error) {
	sc, ok := s.schemas.Get(table)
	if !ok || sc.AliasField == "" {
		return 0, ErrNotFound
	}

	query := fmt.Sprintf("SELECT uid FROM %s WHERE %s = ? LIMIT 1", table, sc.AliasField)
	var uid int
	err := s.db.QueryRowContext(ctx, query, alias).Scan(&uid)
	if err == sql.ErrNoRows {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, Unavailable("resolve alias "+table, err)
	}
	return uid, nil
}

// GetRecord implements RecordStore.
func (s *SQLStore) GetRecord(ctx context.Context, table string, uid int) (Row, error) {
	sc, ok := s.schemas.Get(table)
	if !ok {
		return Row{}, fmt.Errorf("sql store: unknown table %q", table)
	}

	query := fmt.Sprintf("SELECT * FROM %s WHERE uid = ? LIMIT 1", table)
	rows, err := s.db.QueryContext(ctx, query, uid)
	if err != nil {
		return Row{}, Unavailable("get "+table, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return Row{}, Unavailable("get "+table, err)
		}
		return Row{}, ErrNotFound
	}
	return scanRow(rows, sc)
}

// CountReferences implements RecordStore.
func (s *SQLStore) CountReferences(ctx context.Context, table string, uid int) (int, error) {
	if s.RefIndexTable == "" {
		return 0, nil
	}
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE ref_table = ? AND ref_uid = ?", s.RefIndexTable)
	var n int
	if err := s.db.QueryRowContext(ctx, query, table, uid).Scan(&n); err != nil {
		return 0, Unavailable("count references "+table, err)
	}
	return n, nil
}

func (s *SQLStore) buildWhere(sc Schema, scope Scope, filter Filter) (string, []any) {
	var conds []string
	var args []any

	if scope.Search != "" {
		if sc.TitleField != "" {
			conds = append(conds, fmt.Sprintf("%s LIKE ?", sc.TitleField))
			args = append(args, "%"+scope.Search+"%")
		}
		if scope.SearchLevels == 0 {
			conds = append(conds, "pid = ?")
			args = append(args, scope.PageID)
		}
	} else {
		conds = append(conds, "pid = ?")
		args = append(args, scope.PageID)
	}

	for field, value := range filter {
		conds = append(conds, fmt.Sprintf("%s = ?", field))
		args = append(args, value)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (s *SQLStore) buildOrder(sc Schema, sort Sort) string {
	field := sort.Field
	if field == "" {
		field = sc.SortField
	}
	if field == "" {
		return " ORDER BY uid"
	}
	dir := ""
	if sort.Desc {
		dir = " DESC"
	}
	// Secondary uid ordering keeps pagination deterministic on ties.
	return fmt.Sprintf(" ORDER BY %s%s, uid", field, dir)
}

// scanRow scans the current result row into a Row, mapping all selected
// columns into Fields.
func scanRow(rows *sql.Rows, sc Schema) (Row, error) {
	cols, err := rows.Columns()
	if err != nil {
		return Row{}, err
	}

	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}
	if err := rows.Scan(ptrs...); err != nil {
		return Row{}, err
	}

	row := Row{Fields: make(map[string]any, len(cols))}
	for i, col := range cols {
		v := values[i]
		if b, ok := v.([]byte); ok {
			v = string(b)
		}
		row.Fields[col] = v

		switch col {
		case "uid":
			row.Uid = toInt(v)
		case "pid":
			row.Pid = toInt(v)
		case sc.SortField:
			row.SortIndex = toFloat(v)
		}
	}
	return row, nil
}

func toInt(v any) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case int:
		return n
	case float64:
		return int(n)
	}
	return 0
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case int64:
		return float64(n)
	case int:
		return float64(n)
	case float64:
		return n
	}
	return 0
}
