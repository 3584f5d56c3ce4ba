package orders

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ordersCSV = `reference,status,container_no,status,trucker
EN2400123,in transit,MSKU1234567,delayed,Huber Logistik
TB512345,delivered,TCLU7654321,on time,Schmidt Trucking
SNUE0012,pending,NaN,nan,
EN2400124,in transit,HLXU1111111,on time,Huber Logistik
`

func loadTestTable(t *testing.T) *Table {
	t.Helper()
	path := filepath.Join(t.TempDir(), "orders.csv")
	require.NoError(t, os.WriteFile(path, []byte(ordersCSV), 0o644))

	table, err := Load(path)
	require.NoError(t, err)
	return table
}

func TestLoad(t *testing.T) {
	table := loadTestTable(t)

	// The second "status" column is renamed instead of shadowing the first.
	assert.Equal(t, []string{"reference", "status", "container_no", "status.1", "trucker"}, table.Columns)
	require.Len(t, table.Rows, 4)

	assert.Equal(t, "in transit", table.Rows[0]["status"])
	assert.Equal(t, "delayed", table.Rows[0]["status.1"])

	// NaN markers from dataframe exports become empty cells.
	assert.Equal(t, "", table.Rows[2]["container_no"])
	assert.Equal(t, "", table.Rows[2]["status.1"])
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open orders CSV")
}

func TestHasColumn(t *testing.T) {
	table := loadTestTable(t)

	assert.True(t, table.HasColumn("reference"))
	assert.True(t, table.HasColumn("status.1"))
	assert.False(t, table.HasColumn("price"))
}

func TestFilter(t *testing.T) {
	table := loadTestTable(t)

	t.Run("exact match wins over substring", func(t *testing.T) {
		rows := table.Filter("reference", "EN2400123", 0)
		require.Len(t, rows, 1)
		assert.Equal(t, "MSKU1234567", rows[0]["container_no"])
	})

	t.Run("case-insensitive", func(t *testing.T) {
		rows := table.Filter("reference", "en2400123", 0)
		require.Len(t, rows, 1)
	})

	t.Run("substring fallback", func(t *testing.T) {
		rows := table.Filter("trucker", "huber", 0)
		assert.Len(t, rows, 2)
	})

	t.Run("limit applies", func(t *testing.T) {
		rows := table.Filter("status", "in transit", 1)
		assert.Len(t, rows, 1)
	})

	t.Run("no match", func(t *testing.T) {
		assert.Empty(t, table.Filter("reference", "ZZ999", 0))
	})

	t.Run("empty value matches nothing", func(t *testing.T) {
		assert.Empty(t, table.Filter("status", "", 0))
		assert.Empty(t, table.Filter("status", "   ", 0))
	})
}

func TestRender(t *testing.T) {
	table := loadTestTable(t)

	rendered := table.Render(table.Filter("reference", "TB512345", 0))
	assert.Equal(t, "reference: TB512345 | status: delivered | container_no: TCLU7654321 | status.1: on time | trucker: Schmidt Trucking", rendered)

	// Empty cells are skipped entirely.
	rendered = table.Render(table.Filter("reference", "SNUE0012", 0))
	assert.Equal(t, "reference: SNUE0012 | status: pending", rendered)
}
