package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datainspect/datainspect/internal/table"
)

func transformTable(t *testing.T) *table.Table {
	t.Helper()
	tbl, err := table.New([]string{"name", "value"}, [][]table.Value{
		{table.String(" Alice "), table.Int(1)},
		{table.String("bob"), table.Missing()},
		{table.String("Carol"), table.Int(3)},
	})
	require.NoError(t, err)
	return tbl
}

func column(t *testing.T, tbl *table.Table, name string) []table.Value {
	t.Helper()
	values, ok := tbl.ColumnValues(name)
	require.True(t, ok, "column %q", name)
	return values
}

func TestApply_DropMissing(t *testing.T) {
	out, err := Apply(transformTable(t), []Transform{{Column: "value", Op: OpDropMissing}})
	require.NoError(t, err)
	assert.Equal(t, 2, out.RowCount())
	for _, v := range column(t, out, "value") {
		assert.False(t, v.IsMissing())
	}
}

func TestApply_FillMean(t *testing.T) {
	out, err := Apply(transformTable(t), []Transform{{Column: "value", Op: OpFillMean}})
	require.NoError(t, err)

	values := column(t, out, "value")
	assert.Equal(t, 2.0, values[1].FloatValue(), "the gap is filled with the mean of 1 and 3")
}

func TestApply_FillMedianAndMode(t *testing.T) {
	tbl, err := table.New([]string{"v"}, [][]table.Value{
		{table.Int(1)}, {table.Int(1)}, {table.Int(5)}, {table.Missing()},
	})
	require.NoError(t, err)

	out, err := Apply(tbl, []Transform{{Column: "v", Op: OpFillMedian}})
	require.NoError(t, err)
	assert.Equal(t, 1.0, column(t, out, "v")[3].FloatValue())

	out, err = Apply(tbl, []Transform{{Column: "v", Op: OpFillMode}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), column(t, out, "v")[3].IntValue())
}

func TestApply_FillCustom(t *testing.T) {
	out, err := Apply(transformTable(t), []Transform{{Column: "value", Op: OpFillCustom, Value: "0"}})
	require.NoError(t, err)
	assert.Equal(t, int64(0), column(t, out, "value")[1].IntValue())
}

func TestApply_FillMean_NoNumericValues(t *testing.T) {
	_, err := Apply(transformTable(t), []Transform{{Column: "name", Op: OpFillMean}})
	assert.Error(t, err)
}

func TestApply_TextOps(t *testing.T) {
	out, err := Apply(transformTable(t), []Transform{
		{Column: "name", Op: OpTrim},
		{Column: "name", Op: OpLowercase},
	})
	require.NoError(t, err)

	values := column(t, out, "name")
	assert.Equal(t, "alice", values[0].StringValue())
	assert.Equal(t, "bob", values[1].StringValue())

	out, err = Apply(transformTable(t), []Transform{{Column: "name", Op: OpUppercase}})
	require.NoError(t, err)
	assert.Equal(t, "BOB", column(t, out, "name")[1].StringValue())

	out, err = Apply(transformTable(t), []Transform{{Column: "name", Op: OpReplace, Value: "o", With: "0"}})
	require.NoError(t, err)
	assert.Equal(t, "b0b", column(t, out, "name")[1].StringValue())
}

func TestApply_ToNumeric(t *testing.T) {
	tbl, err := table.New([]string{"v"}, [][]table.Value{
		{table.String("10")}, {table.String("2.5")}, {table.Missing()},
	})
	require.NoError(t, err)

	out, err := Apply(tbl, []Transform{{Column: "v", Op: OpToNumeric}})
	require.NoError(t, err)
	values := column(t, out, "v")
	assert.Equal(t, int64(10), values[0].IntValue())
	assert.Equal(t, 2.5, values[1].FloatValue())
	assert.True(t, values[2].IsMissing())
}

func TestApply_ToNumeric_Unparseable(t *testing.T) {
	tbl, err := table.New([]string{"v"}, [][]table.Value{{table.String("ten")}})
	require.NoError(t, err)

	_, err = Apply(tbl, []Transform{{Column: "v", Op: OpToNumeric}})
	var ve *table.ValueError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "v", ve.Column)
	assert.Equal(t, 0, ve.Row)
}

func TestApply_ToText(t *testing.T) {
	out, err := Apply(transformTable(t), []Transform{{Column: "value", Op: OpToText}})
	require.NoError(t, err)
	values := column(t, out, "value")
	assert.Equal(t, "1", values[0].StringValue())
	assert.True(t, values[1].IsMissing(), "missing cells stay missing through a type override")
}

func TestApply_Rename(t *testing.T) {
	out, err := Apply(transformTable(t), []Transform{{Column: "value", Op: OpRename, Value: "amount"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "amount"}, out.Columns())

	_, err = Apply(transformTable(t), []Transform{{Column: "value", Op: OpRename, Value: "name"}})
	assert.Error(t, err, "renaming onto an existing column must fail")

	_, err = Apply(transformTable(t), []Transform{{Column: "value", Op: OpRename, Value: ""}})
	assert.Error(t, err)
}

func TestApply_UnknownColumn(t *testing.T) {
	_, err := Apply(transformTable(t), []Transform{{Column: "nope", Op: OpTrim}})
	assert.Error(t, err)
}

func TestApply_UnknownOp(t *testing.T) {
	_, err := Apply(transformTable(t), []Transform{{Column: "name", Op: TransformOp("explode")}})
	assert.Error(t, err)
}

func TestApply_InputUntouched(t *testing.T) {
	tbl := transformTable(t)
	_, err := Apply(tbl, []Transform{
		{Column: "name", Op: OpUppercase},
		{Column: "value", Op: OpFillMean},
	})
	require.NoError(t, err)

	values := column(t, tbl, "name")
	assert.Equal(t, " Alice ", values[0].StringValue(), "the source buffer is never mutated")
	assert.True(t, column(t, tbl, "value")[1].IsMissing())
}

func TestApply_OrderMatters(t *testing.T) {
	// Dropping missing rows before filling leaves nothing to fill;
	// the reverse order fills first. Both must work, with different
	// results.
	dropThenFill, err := Apply(transformTable(t), []Transform{
		{Column: "value", Op: OpDropMissing},
		{Column: "value", Op: OpFillMean},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, dropThenFill.RowCount())

	fillThenDrop, err := Apply(transformTable(t), []Transform{
		{Column: "value", Op: OpFillMean},
		{Column: "value", Op: OpDropMissing},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, fillThenDrop.RowCount())
}
