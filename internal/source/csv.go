package source

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/galois26/medal-bot/internal/model"
)

type csvSource struct {
	path    string
	columns map[string]string
}

func NewCSVSource(path string, columns map[string]string) Source {
	return &csvSource{path: path, columns: columns}
}

func (s *csvSource) Name() string { return "csv:" + s.path }

func (s *csvSource) Load(ctx context.Context) ([]model.Row, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readCSV(ctx, s.Name(), f, s.columns)
}

func readCSV(ctx context.Context, name string, r io.Reader, overrides map[string]string) ([]model.Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = false

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: empty file", name)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: read header: %w", name, err)
	}
	cols, err := mapColumns(header, overrides)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	c := &collector{cols: cols}
	for n := 1; ; n++ {
		if n%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// *csv.ParseError already names the physical line.
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		// Quoted fields may span lines, so report where the record starts.
		line, _ := cr.FieldPos(0)
		if !c.add(line, record) {
			break
		}
	}
	return c.result(name)
}
