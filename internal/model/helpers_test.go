package model

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/datainspect/datainspect/internal/table"
)

// testDataset builds a small dataset with a text column "name" and a
// numeric column "value".
func testDataset(t *testing.T) *Dataset {
	t.Helper()
	tbl, err := table.New([]string{"name", "value"}, [][]table.Value{
		{table.String("A"), table.Int(1)},
		{table.String("B"), table.Int(2)},
		{table.String("C"), table.Int(3)},
	})
	require.NoError(t, err)
	ds, err := NewDataset(tbl)
	require.NoError(t, err)
	return ds
}

func testSource(t *testing.T, name string) *DataSource {
	t.Helper()
	d, err := NewDataSource(name, SourceCSV, "/data/"+name+".csv", testDataset(t))
	require.NoError(t, err)
	return d
}

func testProject(t *testing.T) *Project {
	t.Helper()
	p, err := NewProject("analysis")
	require.NoError(t, err)
	return p
}

// recordingObserver counts notifications and remembers the subjects.
type recordingObserver struct {
	subjects []any
}

func (o *recordingObserver) SubjectChanged(subject any) {
	o.subjects = append(o.subjects, subject)
}

func (o *recordingObserver) count() int { return len(o.subjects) }

// panickyObserver always panics when notified.
type panickyObserver struct{}

func (panickyObserver) SubjectChanged(any) { panic("observer failure") }
