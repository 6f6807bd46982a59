// Package importer reads CSV files into the raw tabular buffer the data
// model consumes. It owns the parsing mechanics only: delimiter and
// encoding handling, header treatment, batch transformations. The
// resulting DataSource arrives fully populated before it is attached to
// a project.
package importer

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/datainspect/datainspect/internal/model"
	"github.com/datainspect/datainspect/internal/table"
)

// MaxFileSize is the import bound for a single source file. Larger
// inputs are rejected at import; the core never streams or pages.
const MaxFileSize = 100 * 1024 * 1024

// ErrFileTooLarge indicates a source file above the import bound.
var ErrFileTooLarge = errors.New("file exceeds the 100 MB import limit")

// Options controls how a CSV file is read.
type Options struct {
	// Delimiter is the column separator. Empty means detect.
	Delimiter string
	// Encoding is one of utf-8, latin-1, windows-1252, utf-16.
	Encoding string
	// Header reports whether the first (post-skip) row names the columns.
	Header bool
	// SkipRows is the number of leading rows to discard.
	SkipRows int
	// Decimal and Thousands are the numeric separators in the source.
	Decimal   string
	Thousands string
	// PreviewRows bounds Preview output.
	PreviewRows int
}

// DefaultOptions returns the standard import settings.
func DefaultOptions() Options {
	return Options{
		Delimiter:   ",",
		Encoding:    "utf-8",
		Header:      true,
		Decimal:     ".",
		Thousands:   ",",
		PreviewRows: 5,
	}
}

// Import reads a CSV file, applies the given transformations as a batch
// and wraps the result into a DataSource with a fully populated Dataset.
// The name defaults to the file name.
func Import(path, name string, opts Options, transforms []Transform) (*model.DataSource, error) {
	tbl, err := readTable(path, opts, 0)
	if err != nil {
		return nil, err
	}
	if len(transforms) > 0 {
		tbl, err = Apply(tbl, transforms)
		if err != nil {
			return nil, fmt.Errorf("transforming %s: %w", path, err)
		}
	}

	dataset, err := model.NewDataset(tbl)
	if err != nil {
		return nil, err
	}
	dataset.GenerateMetadata(map[string]any{
		"file":      filepath.Base(path),
		"delimiter": opts.Delimiter,
		"encoding":  opts.Encoding,
		"header":    opts.Header,
		"skip_rows": opts.SkipRows,
		"decimal":   opts.Decimal,
		"thousands": opts.Thousands,
	})

	if name == "" {
		name = filepath.Base(path)
	}
	source, err := model.NewDataSource(name, model.SourceCSV, path, dataset)
	if err != nil {
		return nil, err
	}
	slog.Info("imported csv file", "path", path, "rows", tbl.RowCount(), "columns", tbl.ColumnCount())
	return source, nil
}

// Preview reads at most opts.PreviewRows data rows without constructing
// model objects.
func Preview(path string, opts Options) (*table.Table, error) {
	limit := opts.PreviewRows
	if limit <= 0 {
		limit = DefaultOptions().PreviewRows
	}
	return readTable(path, opts, limit)
}

func readTable(path string, opts Options, limit int) (*table.Table, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if info.Size() > MaxFileSize {
		return nil, fmt.Errorf("%s: %w", path, ErrFileTooLarge)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	defer f.Close()

	delimiter := opts.Delimiter
	if delimiter == "" {
		delimiter, err = DetectDelimiter(path, opts.Encoding)
		if err != nil {
			return nil, err
		}
	}

	reader, err := decodeReader(f, opts.Encoding)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(reader)
	cr.Comma = rune(delimiter[0])
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	for i := 0; i < opts.SkipRows; i++ {
		if _, err := cr.Read(); err != nil {
			if err == io.EOF {
				return nil, table.ErrEmptyData
			}
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
	}

	var columns []string
	if opts.Header {
		record, err := cr.Read()
		if err != nil {
			if err == io.EOF {
				return nil, table.ErrEmptyData
			}
			return nil, fmt.Errorf("reading %s header: %w", path, err)
		}
		columns = make([]string, len(record))
		for i, c := range record {
			columns[i] = strings.TrimSpace(c)
		}
	}

	parseOpts := table.ParseOptions{Decimal: opts.Decimal, Thousands: opts.Thousands}
	var rows [][]table.Value
	for {
		if limit > 0 && len(rows) >= limit {
			break
		}
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s row %d: %w", path, len(rows)+1, err)
		}
		if columns == nil {
			// Headerless files get generated column names.
			columns = make([]string, len(record))
			for i := range record {
				columns[i] = fmt.Sprintf("column_%d", i+1)
			}
		}
		row := make([]table.Value, len(record))
		for i, cell := range record {
			row[i] = table.ParseValue(cell, parseOpts)
		}
		rows = append(rows, row)
	}

	if columns == nil {
		return nil, table.ErrEmptyData
	}
	return table.New(columns, rows)
}

// DetectDelimiter sniffs the delimiter by counting candidate characters
// over the first three lines. Comma wins ties and is the fallback.
func DetectDelimiter(path, encodingName string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	defer f.Close()

	reader, err := decodeReader(f, encodingName)
	if err != nil {
		return "", err
	}

	counts := map[string]int{",": 0, ";": 0, "\t": 0, "|": 0}
	scanner := bufio.NewScanner(reader)
	for i := 0; i < 3 && scanner.Scan(); i++ {
		line := scanner.Text()
		for d := range counts {
			counts[d] += strings.Count(line, d)
		}
	}

	detected, best := ",", 0
	for _, d := range []string{",", ";", "\t", "|"} {
		if counts[d] > best {
			detected, best = d, counts[d]
		}
	}
	return detected, nil
}

func decodeReader(r io.Reader, name string) (io.Reader, error) {
	var enc encoding.Encoding
	switch strings.ToLower(name) {
	case "", "utf-8", "utf8":
		return r, nil
	case "latin-1", "latin1", "iso-8859-1":
		enc = charmap.ISO8859_1
	case "windows-1252", "cp1252":
		enc = charmap.Windows1252
	case "utf-16", "utf16":
		enc = unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	default:
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}
	return enc.NewDecoder().Reader(r), nil
}
