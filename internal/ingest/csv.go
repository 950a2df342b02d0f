// Package ingest loads a rectangular CSV table into an mds.Matrix, resolving
// the configured column names to indices the way the teacher's data.go
// resolves a symbol to a directory — by building a name->index table once
// and failing fast on an unresolved name.
package ingest

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/icos-etc/gapfill-mds/mds"
)

// Table is a parsed CSV: the header name->column index map and the
// underlying matrix.
type Table struct {
	Matrix  mds.Matrix
	Columns map[string]int
}

// LoadCSV reads a header + numeric-rows CSV file from path into a Table.
// Cells that fail to parse as float64 or equal the literal NA/empty string
// become mds.InvalidValue rather than aborting the whole load.
func LoadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ingest: open %s: %w", path, err)
	}
	defer f.Close()
	return ParseCSV(f)
}

// ParseCSV reads a header + numeric-rows CSV from r.
func ParseCSV(r io.Reader) (*Table, error) {
	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("ingest: read header: %w", err)
		}
		return nil, fmt.Errorf("ingest: empty CSV")
	}
	header := strings.Split(scanner.Text(), ",")
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}
	cols := len(header)

	var data []float64
	rows := 0
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) != cols {
			return nil, fmt.Errorf("ingest: row %d has %d fields, want %d", rows+1, len(fields), cols)
		}
		for _, field := range fields {
			data = append(data, parseCell(field))
		}
		rows++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("ingest: scan rows: %w", err)
	}

	return &Table{
		Matrix:  mds.Matrix{RowsCount: rows, ColsCount: cols, Data: data},
		Columns: columns,
	}, nil
}

func parseCell(field string) float64 {
	field = strings.TrimSpace(field)
	if field == "" || field == "NA" || field == "NaN" {
		return mds.InvalidValue
	}
	v, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return mds.InvalidValue
	}
	return v
}

// ResolveColumns maps the configured target/driver/driver-QC names onto
// table column indices, returning -1 for any name left blank. It fails
// fast on a name that doesn't exist in the header, the same way the
// teacher's symbol lookup fails fast on an unknown symbol.
func ResolveColumns(columns map[string]int, target string, drivers, driverQC [3]string) (mds.Columns, error) {
	resolve := func(name string) (int, error) {
		if name == "" {
			return -1, nil
		}
		idx, ok := columns[name]
		if !ok {
			return 0, fmt.Errorf("ingest: column %q not found in CSV header", name)
		}
		return idx, nil
	}

	targetIdx, err := resolve(target)
	if err != nil {
		return mds.Columns{}, err
	}
	if targetIdx < 0 {
		return mds.Columns{}, fmt.Errorf("ingest: target column name is required")
	}

	var out mds.Columns
	out.Target = targetIdx
	for i := 0; i < 3; i++ {
		idx, err := resolve(drivers[i])
		if err != nil {
			return mds.Columns{}, err
		}
		out.Drivers[i] = idx

		qcIdx, err := resolve(driverQC[i])
		if err != nil {
			return mds.Columns{}, err
		}
		out.DriverQC[i] = qcIdx
	}
	return out, nil
}

// WriteResultCSV writes one row per mds.Result to path: row index, filled
// value, std_dev, samples_count, time_window, method, quality.
func WriteResultCSV(path string, table *mds.ResultTable) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("ingest: create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, "row,filled,std_dev,samples_count,time_window,method,quality")

	for i, row := range table.Rows {
		fmt.Fprintf(w, "%d,%s,%s,%d,%d,%d,%d\n",
			i,
			strconv.FormatFloat(row.Filled, 'f', -1, 64),
			strconv.FormatFloat(row.StdDev, 'f', -1, 64),
			row.SamplesCount, row.TimeWindow, row.Method, row.Quality)
	}
	return w.Flush()
}
