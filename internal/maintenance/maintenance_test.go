// Package maintenance
package maintenance

import (
	"fmt"
	"github.com/half-nothing/smallcraft-designer/internal/base"
	"github.com/half-nothing/smallcraft-designer/internal/database"
	"github.com/half-nothing/smallcraft-designer/internal/interchange"
	"github.com/half-nothing/smallcraft-designer/internal/interfaces/config"
	"github.com/half-nothing/smallcraft-designer/internal/interfaces/craft"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

var memoryDatabaseCounter atomic.Int64

func newTestOperation(t *testing.T) *database.DesignOperation {
	t.Helper()
	cfg := &config.DatabaseConfig{
		DBType:               config.SQLite,
		ConnectIdleDuration:  time.Hour,
		QueryDuration:        5 * time.Second,
		ServerMaxConnections: 4,
	}
	dsn := fmt.Sprintf("file:maintenance_%d?mode=memory&cache=shared", memoryDatabaseCounter.Add(1))
	db, err := database.OpenDatabase(base.NewLogger(), sqlite.Open(dsn), cfg, false)
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		_ = sqlDB.Close()
	})
	return database.NewDesignOperation(db, cfg.QueryDuration)
}

func cutter(name string) craft.Design {
	return craft.NewDesign().
		WithName(name).
		WithHull(craft.NewHull(name, craft.TechLevelB, 50, "")).
		WithFittings(craft.NewCockpit(2, 50))
}

func TestOptionsTask(t *testing.T) {
	tests := []struct {
		options  Options
		expected Task
	}{
		{Options{}, NoTask},
		{Options{ExtractFile: "out.json"}, ExtractTask},
		{Options{PreloadFile: "in.json"}, PreloadTask},
		{Options{Flush: true}, FlushTask},
		{Options{ExtractFile: "out.json", PreloadFile: "in.json"}, PreloadTask},
		{Options{ExtractFile: "out.json", PreloadFile: "in.json", Flush: true}, FlushTask},
	}
	pass := 0
	fail := 0
	for _, test := range tests {
		result := test.options.Task()
		if result != test.expected {
			fail++
			t.Errorf("%+v.Task() = %d; expected %d", test.options, result, test.expected)
			continue
		}
		pass++
	}
	t.Logf("TestOptionsTask: %d pass, %d fail", pass, fail)
}

func TestExtractPreloadFlush(t *testing.T) {
	logger := base.NewLogger()
	source := newTestOperation(t)
	for _, name := range []string{"Cutter", "Launch"} {
		_, err := source.SaveDesign(cutter(name))
		require.NoError(t, err)
	}

	path := filepath.Join(t.TempDir(), "nested", "designs.json")
	require.NoError(t, Run(logger, source, Options{ExtractFile: path}))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	extracted, err := interchange.ImportJSON(content)
	require.NoError(t, err)
	require.Len(t, extracted, 2)
	assert.NotZero(t, extracted[0].Id)

	target := newTestOperation(t)
	_, err = target.SaveDesign(cutter("Launch"))
	require.NoError(t, err)

	result, err := Preload(logger, target, path)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Saved)
	assert.Equal(t, 1, result.Failed)

	total, err := target.CountDesigns()
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	require.NoError(t, Run(logger, target, Options{Flush: true}))
	total, err = target.CountDesigns()
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestRunErrors(t *testing.T) {
	logger := base.NewLogger()
	designOperation := newTestOperation(t)

	assert.ErrorIs(t, Run(logger, designOperation, Options{}), ErrNoTask)

	missing := filepath.Join(t.TempDir(), "missing.json")
	assert.ErrorIs(t, Run(logger, designOperation, Options{PreloadFile: missing}), os.ErrNotExist)

	invalid := filepath.Join(t.TempDir(), "invalid.json")
	require.NoError(t, os.WriteFile(invalid, []byte(`{"name":"x"}`), 0644))
	assert.ErrorIs(t, Run(logger, designOperation, Options{PreloadFile: invalid}), interchange.ErrNotDesignArray)
}
