package migration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/tally/internal/storage"
)

func codes(report *IntegrityReport) []string {
	out := make([]string, 0, len(report.Violations))
	for _, v := range report.Violations {
		out = append(out, v.Code)
	}
	return out
}

func TestValidateIntegrity_Clean(t *testing.T) {
	t.Parallel()

	m, _ := newTestMigrator(t, `{"version":2,"items":[{"id":"1","labelIds":["a","b"]},{"id":"2","labelIds":[]}]}`)
	report, err := m.ValidateIntegrity(context.Background())
	require.NoError(t, err)
	assert.True(t, report.Valid())
	assert.Equal(t, 2, report.Total)
}

func TestValidateIntegrity_Violations(t *testing.T) {
	t.Parallel()

	blob := `{"version":2,"items":[
		{"id":"missing"},
		{"id":"string","labelIds":"a"},
		{"id":"null","labelIds":null},
		{"id":"dup","labelIds":["a","a"]},
		{"id":"num","labelIds":["a",7]},
		{"id":"many","labelIds":["1","2","3","4","5","6","7","8","9","10","11","12","13"]},
		"not an object"
	]}`
	m, _ := newTestMigrator(t, blob)

	report, err := m.ValidateIntegrity(context.Background())
	require.NoError(t, err)
	assert.False(t, report.Valid())
	assert.Equal(t, 7, report.Total)
	assert.Equal(t, []string{
		ViolationMissing,
		ViolationNotArray,
		ViolationNotArray,
		ViolationDuplicate,
		ViolationNotString,
		ViolationTooMany,
		ViolationNotObject,
	}, codes(report))

	assert.Equal(t, "missing", report.Violations[0].TaskID)
	assert.Equal(t, 6, report.Violations[6].Index)
}

func TestValidateIntegrity_DanglingLabels(t *testing.T) {
	t.Parallel()

	m, store := newTestMigrator(t, `{"version":2,"items":[{"id":"1","labelIds":["keep","gone"]}]}`)
	labels := `{"version":1,"items":[{"id":"keep","name":"Keep","color":"#fff"}],"lastUpdated":"2024-01-01T00:00:00Z"}`
	require.NoError(t, store.SetItem(context.Background(), storage.KeyLabels, []byte(labels)))

	report, err := m.ValidateIntegrity(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Violations, 1)
	assert.Equal(t, ViolationDanglingLabel, report.Violations[0].Code)
	assert.Equal(t, "1", report.Violations[0].TaskID)
}

func TestValidateIntegrity_MissingBlob(t *testing.T) {
	t.Parallel()

	m, _ := newTestMigrator(t, "")
	report, err := m.ValidateIntegrity(context.Background())
	require.NoError(t, err)
	assert.True(t, report.Valid())
	assert.Zero(t, report.Total)
}
