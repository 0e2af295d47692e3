package migrations

import (
	"io/fs"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var categoryColumn = regexp.MustCompile(`(?m)^\s*category_name\s+(\S+)`)

// Sub-ledger rows hold one name taken from a free-text category list, so they
// must accept anything the parent list column accepts.
func TestCategoryNameColumnsAreUnbounded(t *testing.T) {
	files, err := fs.Glob(FS, "*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	seen := 0
	for _, name := range files {
		body, err := fs.ReadFile(FS, name)
		require.NoError(t, err)
		for _, m := range categoryColumn.FindAllStringSubmatch(string(body), -1) {
			seen++
			assert.Equal(t, "TEXT", m[1], "%s: category_name column", name)
		}
	}
	assert.Equal(t, 4, seen)
}
