// Package database
package database

import (
	"fmt"
	"github.com/half-nothing/smallcraft-designer/internal/base"
	"github.com/half-nothing/smallcraft-designer/internal/interchange"
	"github.com/half-nothing/smallcraft-designer/internal/interfaces/config"
	"github.com/half-nothing/smallcraft-designer/internal/interfaces/craft"
	"github.com/half-nothing/smallcraft-designer/internal/interfaces/operation"
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

func newTestOperation(t *testing.T) *DesignOperation {
	t.Helper()
	cfg := &config.DatabaseConfig{
		DBType:               config.SQLite,
		ConnectIdleDuration:  time.Hour,
		QueryDuration:        5 * time.Second,
		ServerMaxConnections: 4,
	}
	dsn := fmt.Sprintf("file:designs_%d?mode=memory&cache=shared", memoryDatabaseCounter.Add(1))
	db, err := OpenDatabase(base.NewLogger(), sqlite.Open(dsn), cfg, false)
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		_ = sqlDB.Close()
	})
	return NewDesignOperation(db, cfg.QueryDuration)
}

func gunboat(t *testing.T, name string) craft.Design {
	t.Helper()
	hull := craft.NewHull(name, craft.TechLevelC, 30, "")
	powerPlant, ok := craft.NewDrive(craft.FusionPowerPlant, "sC", 30)
	require.True(t, ok)
	turret, ok := craft.NewShipWeapon(craft.PulseLaserSingle)
	require.True(t, ok)
	return craft.NewDesign().
		WithName(name).
		WithHull(hull).
		WithDrives(powerPlant).
		WithFittings(craft.NewCockpit(1, 30)).
		WithWeapons(turret)
}

func TestSaveAndGetDesign(t *testing.T) {
	designOperation := newTestOperation(t)
	design := gunboat(t, "Gunboat")
	design.Staff.Gunner = 9

	id, err := designOperation.SaveDesign(design)
	require.NoError(t, err)
	assert.NotZero(t, id)

	stored, err := designOperation.GetDesignById(id)
	require.NoError(t, err)
	assert.Equal(t, id, stored.Id)
	assert.Equal(t, "Gunboat", stored.Name)
	assert.Equal(t, 30, stored.Hull.Tonnage)
	assert.Equal(t, 1, stored.Staff.Gunner)
	assert.NotEmpty(t, stored.CreatedAt)
	_, err = time.Parse(time.RFC3339, stored.UpdatedAt)
	assert.NoError(t, err)

	_, err = designOperation.GetDesignById(id + 100)
	assert.ErrorIs(t, err, operation.ErrDesignNotFound)
}

func TestSaveDesignUpdatesInPlace(t *testing.T) {
	designOperation := newTestOperation(t)
	id, err := designOperation.SaveDesign(gunboat(t, "Gunboat"))
	require.NoError(t, err)
	original, err := designOperation.GetDesignById(id)
	require.NoError(t, err)

	updated := original.WithName("Gunboat Mk II")
	updated.Description = "refit"
	sameId, err := designOperation.SaveDesign(updated)
	require.NoError(t, err)
	assert.Equal(t, id, sameId)

	stored, err := designOperation.GetDesignById(id)
	require.NoError(t, err)
	assert.Equal(t, "Gunboat Mk II", stored.Name)
	assert.Equal(t, "refit", stored.Description)
	assert.Equal(t, original.CreatedAt, stored.CreatedAt)

	total, err := designOperation.CountDesigns()
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestSaveDesignWithUnknownIdCreates(t *testing.T) {
	designOperation := newTestOperation(t)
	design := gunboat(t, "Imported")
	design.Id = 42
	id, err := designOperation.SaveDesign(design)
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)
}

func TestNameUniqueness(t *testing.T) {
	designOperation := newTestOperation(t)
	first, err := designOperation.SaveDesign(gunboat(t, "Cutter"))
	require.NoError(t, err)

	_, err = designOperation.SaveDesign(gunboat(t, "Cutter"))
	assert.ErrorIs(t, err, operation.ErrDesignNameTaken)

	_, err = designOperation.SaveDesign(gunboat(t, "  "))
	assert.ErrorIs(t, err, operation.ErrDesignNameEmpty)

	tests := []struct {
		name      string
		excludeId uint
		expected  bool
	}{
		{"Cutter", 0, true},
		{"Cutter", first, false},
		{" Cutter ", 0, true},
		{"cutter", 0, false},
		{"Shuttle", 0, false},
	}
	pass := 0
	fail := 0
	for _, test := range tests {
		taken, err := designOperation.IsNameTaken(test.name, test.excludeId)
		if err != nil || taken != test.expected {
			fail++
			t.Errorf("IsNameTaken(%q, %d) = %v, %v; expected %v", test.name, test.excludeId, taken, err, test.expected)
			continue
		}
		pass++
	}
	t.Logf("TestNameUniqueness: %d pass, %d fail", pass, fail)
}

func TestSaveDesignsIsAtomic(t *testing.T) {
	designOperation := newTestOperation(t)
	ids, err := designOperation.SaveDesigns([]craft.Design{gunboat(t, "A"), gunboat(t, "B")})
	require.NoError(t, err)
	assert.Len(t, ids, 2)

	_, err = designOperation.SaveDesigns([]craft.Design{gunboat(t, "C"), gunboat(t, "A")})
	assert.ErrorIs(t, err, operation.ErrDesignNameTaken)

	designs, err := designOperation.GetDesigns()
	require.NoError(t, err)
	require.Len(t, designs, 2)
	assert.Equal(t, "A", designs[0].Name)
	assert.Equal(t, "B", designs[1].Name)
	assert.Less(t, designs[0].Id, designs[1].Id)
}

func TestDeleteDesigns(t *testing.T) {
	designOperation := newTestOperation(t)
	id, err := designOperation.SaveDesign(gunboat(t, "A"))
	require.NoError(t, err)
	_, err = designOperation.SaveDesign(gunboat(t, "B"))
	require.NoError(t, err)

	require.NoError(t, designOperation.DeleteDesign(id))
	assert.ErrorIs(t, designOperation.DeleteDesign(id), operation.ErrDesignNotFound)

	deleted, err := designOperation.DeleteAllDesigns()
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	total, err := designOperation.CountDesigns()
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestImportDesignsSkipsTakenNames(t *testing.T) {
	designOperation := newTestOperation(t)
	_, err := designOperation.SaveDesign(gunboat(t, "Existing"))
	require.NoError(t, err)

	incoming := []craft.Design{gunboat(t, "Fresh"), gunboat(t, "Existing"), gunboat(t, "Other")}
	incoming[0].Id = 1
	result := ImportDesigns(base.NewLogger(), designOperation, incoming)
	assert.Equal(t, 2, result.Saved)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "Existing", result.Failures[0].Name)
	assert.ErrorIs(t, result.Failures[0].Err, operation.ErrDesignNameTaken)

	total, err := designOperation.CountDesigns()
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
}

func writeInitialData(t *testing.T, designs []craft.Design) string {
	t.Helper()
	data, err := interchange.ExportJSON(designs)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "initial.json")
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestBootstrap(t *testing.T) {
	logger := base.NewLogger()
	path := writeInitialData(t, []craft.Design{gunboat(t, "Seed A"), gunboat(t, "Seed B")})
	cfg := &config.BootstrapConfig{Enabled: true, InitialDataFile: path}

	designOperation := newTestOperation(t)
	result := Bootstrap(logger, cfg, designOperation)
	require.NotNil(t, result)
	assert.Equal(t, 2, result.Saved)

	// a populated store is left alone
	assert.Nil(t, Bootstrap(logger, cfg, designOperation))
	total, err := designOperation.CountDesigns()
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestBootstrapSkips(t *testing.T) {
	logger := base.NewLogger()
	emptyFile := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, os.WriteFile(emptyFile, []byte("[]"), 0644))
	invalidFile := filepath.Join(t.TempDir(), "invalid.json")
	require.NoError(t, os.WriteFile(invalidFile, []byte(`{"name":"x"}`), 0644))

	tests := []struct {
		name string
		cfg  *config.BootstrapConfig
	}{
		{"disabled", &config.BootstrapConfig{Enabled: false}},
		{"missing file without url", &config.BootstrapConfig{Enabled: true, InitialDataFile: filepath.Join(t.TempDir(), "none.json")}},
		{"empty array", &config.BootstrapConfig{Enabled: true, InitialDataFile: emptyFile}},
		{"not an array", &config.BootstrapConfig{Enabled: true, InitialDataFile: invalidFile}},
	}
	pass := 0
	fail := 0
	for _, test := range tests {
		designOperation := newTestOperation(t)
		if result := Bootstrap(logger, test.cfg, designOperation); result != nil {
			fail++
			t.Errorf("%s: Bootstrap() = %+v; expected nil", test.name, result)
			continue
		}
		pass++
	}
	t.Logf("TestBootstrapSkips: %d pass, %d fail", pass, fail)
}
