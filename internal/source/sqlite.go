package source

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	"github.com/spf13/cast"
	_ "modernc.org/sqlite" // CGO-free SQLite

	"github.com/galois26/medal-bot/internal/model"
)

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

type sqliteSource struct {
	path    string
	table   string
	columns map[string]string
}

func NewSQLiteSource(path, table string, columns map[string]string) (Source, error) {
	if !identRe.MatchString(table) {
		return nil, fmt.Errorf("invalid sqlite table name %q", table)
	}
	return &sqliteSource{path: path, table: table, columns: columns}, nil
}

func (s *sqliteSource) Name() string { return "sqlite:" + s.path + "#" + s.table }

func (s *sqliteSource) Load(ctx context.Context) ([]model.Row, error) {
	db, err := sql.Open("sqlite", "file:"+s.path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("%s: open: %w", s.Name(), err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT * FROM "`+s.table+`"`)
	if err != nil {
		return nil, fmt.Errorf("%s: query: %w", s.Name(), err)
	}
	defer rows.Close()

	header, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("%s: columns: %w", s.Name(), err)
	}
	cols, err := mapColumns(header, s.columns)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Name(), err)
	}

	values := make([]any, len(header))
	ptrs := make([]any, len(header))
	for i := range values {
		ptrs[i] = &values[i]
	}
	c := &collector{cols: cols}
	for line := 2; rows.Next(); line++ {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("%s: row %d: %w", s.Name(), line-1, err)
		}
		record := make([]string, len(values))
		for i, v := range values {
			record[i] = cast.ToString(v)
		}
		if !c.add(line, record) {
			break
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", s.Name(), err)
	}
	return c.result(s.Name())
}
