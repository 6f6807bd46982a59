package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datainspect/datainspect/internal/model"
	"github.com/datainspect/datainspect/internal/table"
)

func writeCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestImport_Basic(t *testing.T) {
	path := writeCSV(t, "sales.csv", "name,value\nA,1\nB,2\nC,3\n")

	src, err := Import(path, "", DefaultOptions(), nil)
	require.NoError(t, err)

	assert.Equal(t, "sales.csv", src.Name)
	assert.Equal(t, model.SourceCSV, src.SourceType)
	assert.Equal(t, path, src.FilePath)
	require.NotNil(t, src.Dataset)
	assert.Equal(t, 3, src.Dataset.RowCount())
	assert.Equal(t, 2, src.Dataset.ColumnCount())

	value, ok := src.Dataset.Column("value")
	require.True(t, ok)
	assert.Equal(t, model.DataTypeNumeric, value.DataType)
	assert.Equal(t, 1.0, *value.Stats.Min)
	assert.Equal(t, 3.0, *value.Stats.Max)
	assert.Equal(t, 2.0, *value.Stats.Mean)

	name, ok := src.Dataset.Column("name")
	require.True(t, ok)
	assert.Equal(t, model.DataTypeText, name.DataType)

	source, ok := src.Dataset.Metadata["source"].(map[string]any)
	require.True(t, ok, "import provenance is recorded in dataset metadata")
	assert.Equal(t, "sales.csv", source["file"])
	assert.Equal(t, ",", source["delimiter"])
}

func TestImport_ExplicitName(t *testing.T) {
	path := writeCSV(t, "sales.csv", "a\n1\n")
	src, err := Import(path, "Q1 Sales", DefaultOptions(), nil)
	require.NoError(t, err)
	assert.Equal(t, "Q1 Sales", src.Name)
}

func TestImport_MissingValues(t *testing.T) {
	path := writeCSV(t, "gaps.csv", "v\n1\nNA\nn/a\n3\n")
	src, err := Import(path, "", DefaultOptions(), nil)
	require.NoError(t, err)

	col, ok := src.Dataset.Column("v")
	require.True(t, ok)
	assert.Equal(t, 2, col.Stats.Count)
	assert.Equal(t, 2, col.Stats.MissingCount)
}

func TestImport_SemicolonDetected(t *testing.T) {
	path := writeCSV(t, "eu.csv", "name;value\nA;1\nB;2\n")
	opts := DefaultOptions()
	opts.Delimiter = ""

	src, err := Import(path, "", opts, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, src.Dataset.ColumnCount())
	assert.Equal(t, 2, src.Dataset.RowCount())
}

func TestImport_NoHeader(t *testing.T) {
	path := writeCSV(t, "raw.csv", "1,2\n3,4\n")
	opts := DefaultOptions()
	opts.Header = false

	src, err := Import(path, "", opts, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"column_1", "column_2"}, src.Dataset.Table.Columns())
	assert.Equal(t, 2, src.Dataset.RowCount())
}

func TestImport_SkipRows(t *testing.T) {
	path := writeCSV(t, "noisy.csv", "generated report\n\nname,value\nA,1\n")
	opts := DefaultOptions()
	opts.SkipRows = 2
	opts.Delimiter = ","

	src, err := Import(path, "", opts, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "value"}, src.Dataset.Table.Columns())
	assert.Equal(t, 1, src.Dataset.RowCount())
}

func TestImport_GermanNumbers(t *testing.T) {
	path := writeCSV(t, "de.csv", "betrag\n\"1.234,5\"\n\"2,5\"\n")
	opts := DefaultOptions()
	opts.Decimal = ","
	opts.Thousands = "."

	src, err := Import(path, "", opts, nil)
	require.NoError(t, err)
	col, ok := src.Dataset.Column("betrag")
	require.True(t, ok)
	require.Equal(t, model.DataTypeNumeric, col.DataType)
	assert.Equal(t, 1234.5, *col.Stats.Max)
	assert.Equal(t, 2.5, *col.Stats.Min)
}

func TestImport_Latin1(t *testing.T) {
	// "Müller" with the u-umlaut as a single latin-1 byte.
	raw := []byte("name\nM\xfcller\n")
	path := filepath.Join(t.TempDir(), "latin.csv")
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	opts := DefaultOptions()
	opts.Encoding = "latin-1"
	src, err := Import(path, "", opts, nil)
	require.NoError(t, err)

	values, ok := src.Dataset.Table.ColumnValues("name")
	require.True(t, ok)
	assert.Equal(t, "Müller", values[0].StringValue())
}

func TestImport_UnsupportedEncoding(t *testing.T) {
	path := writeCSV(t, "x.csv", "a\n1\n")
	opts := DefaultOptions()
	opts.Encoding = "ebcdic"

	_, err := Import(path, "", opts, nil)
	assert.Error(t, err)
}

func TestImport_EmptyFile(t *testing.T) {
	path := writeCSV(t, "empty.csv", "")
	_, err := Import(path, "", DefaultOptions(), nil)
	assert.ErrorIs(t, err, table.ErrEmptyData)
}

func TestImport_HeaderOnly(t *testing.T) {
	path := writeCSV(t, "header.csv", "a,b\n")
	_, err := Import(path, "", DefaultOptions(), nil)
	assert.ErrorIs(t, err, table.ErrEmptyData)
}

func TestImport_MissingFile(t *testing.T) {
	_, err := Import(filepath.Join(t.TempDir(), "nope.csv"), "", DefaultOptions(), nil)
	assert.Error(t, err)
}

func TestDetectDelimiter(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"comma", "a,b,c\n1,2,3\n", ","},
		{"semicolon", "a;b;c\n1;2;3\n", ";"},
		{"tab", "a\tb\tc\n1\t2\t3\n", "\t"},
		{"pipe", "a|b|c\n1|2|3\n", "|"},
		{"no delimiter falls back to comma", "justonecolumn\nvalue\n", ","},
		{"comma wins ties", "a,b;c\n1,2;3\nx,y;z\n", ","},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeCSV(t, "sniff.csv", tt.content)
			got, err := DetectDelimiter(path, "utf-8")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPreview_Limit(t *testing.T) {
	path := writeCSV(t, "big.csv", "v\n1\n2\n3\n4\n5\n6\n7\n8\n")
	opts := DefaultOptions()
	opts.PreviewRows = 3

	tbl, err := Preview(path, opts)
	require.NoError(t, err)
	assert.Equal(t, 3, tbl.RowCount())
}
