package demandsource

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftforge/rosterengine/internal/roster/domain"
)

func writeTempDoc(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "demand.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestJSONFileSource_Load(t *testing.T) {
	rows := make([][]int, domain.DaysInWeek)
	for d := range rows {
		rows[d] = make([]int, domain.HoursInDay)
	}
	rows[0][10] = 12

	path := writeTempDoc(t, `{
		"demand": [
			[0,0,0,0,0,0,0,0,0,0,12,0,0,0,0,0,0,0,0,0,0,0,0,0],
			[0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0],
			[0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0],
			[0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0],
			[0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0],
			[0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0],
			[0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0,0]
		],
		"config": {"productivity_rate": 12, "pt_cap_pct": 20.4, "weekender_cap_pct": 30, "allow_weekend_day_off": false}
	}`)

	req, err := JSONFileSource{Path: path}.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12, req.Demand[domain.Monday][10])
	assert.Equal(t, 12, req.Config.ProductivityRate)
	assert.Equal(t, 20, req.Config.PTCapPct) // 20.4 rounds half-up to 20
	assert.Equal(t, 30, req.Config.WeekenderCapPct)
}

func TestJSONFileSource_Load_InvalidShape(t *testing.T) {
	path := writeTempDoc(t, `{"demand": [[1,2,3]], "config": {"productivity_rate": 12}}`)

	_, err := JSONFileSource{Path: path}.Load(context.Background())
	assert.Error(t, err)
}

func TestJSONFileSource_Load_MissingFile(t *testing.T) {
	_, err := JSONFileSource{Path: "/nonexistent/path.json"}.Load(context.Background())
	assert.Error(t, err)
}
