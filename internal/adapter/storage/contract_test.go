package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMissingColumns(t *testing.T) {
	want := map[string][]string{
		"categories": {"categoryid", "categoryname"},
		"orders":     {"id", "orderno"},
	}

	t.Run("AllPresent", func(t *testing.T) {
		present := []columnRow{
			{"categories", "categoryid"},
			{"categories", "categoryname"},
			{"categories", "extra"},
			{"orders", "id"},
			{"orders", "orderno"},
		}
		assert.Empty(t, missingColumns(want, present))
	})

	t.Run("MissingTableAndColumn", func(t *testing.T) {
		present := []columnRow{
			{"categories", "categoryid"},
		}
		assert.Equal(t,
			[]string{"categories.categoryname", "orders"},
			missingColumns(want, present))
	})
}

func TestContractMatchesMigrations(t *testing.T) {
	files, err := filepath.Glob("../../../migrations/*.up.sql")
	require.NoError(t, err)
	require.Len(t, files, RequiredSchemaVersion)

	var ddl strings.Builder
	for _, f := range files {
		b, err := os.ReadFile(f)
		require.NoError(t, err)
		ddl.Write(b)
	}

	for table, cols := range contract {
		t.Run(table, func(t *testing.T) {
			header := "CREATE TABLE IF NOT EXISTS " + table + " ("
			start := strings.Index(ddl.String(), header)
			require.NotEqual(t, -1, start, "table is not created by migrations")

			block := ddl.String()[start+len(header):]
			block = block[:strings.Index(block, ");")]
			for _, c := range cols {
				assert.Regexp(t, `(?m)^\s+`+c+`\s`, block)
			}
		})
	}
}
