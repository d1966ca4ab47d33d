// Package service
package service

import (
	"bytes"
	"fmt"
	"github.com/half-nothing/smallcraft-designer/internal/base"
	"github.com/half-nothing/smallcraft-designer/internal/database"
	"github.com/half-nothing/smallcraft-designer/internal/http_server/service/store"
	"github.com/half-nothing/smallcraft-designer/internal/interchange"
	"github.com/half-nothing/smallcraft-designer/internal/interfaces/config"
	"github.com/half-nothing/smallcraft-designer/internal/interfaces/craft"
	. "github.com/half-nothing/smallcraft-designer/internal/interfaces/service"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

var memoryDatabaseCounter atomic.Int64

type testServices struct {
	design   *DesignService
	rules    *RulesService
	exchange *ExchangeService
	store    *config.ExportStoreConfig
}

func testLimits() *config.HttpServerLimit {
	return &config.HttpServerLimit{
		RateLimit:            120,
		RateLimitWindow:      "1m",
		RateLimitDuration:    time.Minute,
		NameLengthMin:        1,
		NameLengthMax:        16,
		DescriptionLengthMax: 32,
		ImportBatchMax:       3,
	}
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()
	logger := base.NewLogger()
	dbConfig := &config.DatabaseConfig{
		DBType:               config.SQLite,
		ConnectIdleDuration:  time.Hour,
		QueryDuration:        5 * time.Second,
		ServerMaxConnections: 4,
	}
	dsn := fmt.Sprintf("file:services_%d?mode=memory&cache=shared", memoryDatabaseCounter.Add(1))
	db, err := database.OpenDatabase(logger, sqlite.Open(dsn), dbConfig, false)
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		_ = sqlDB.Close()
	})
	designOperation := database.NewDesignOperation(db, dbConfig.QueryDuration)

	general := &config.GeneralConfig{PowerPlantWeeks: craft.DefaultPowerPlantWeeks, ManeuverHours: craft.DefaultManeuverHours}
	storeConfig := &config.ExportStoreConfig{
		StoreType:      config.LocalStore,
		LocalStorePath: t.TempDir(),
		StorePrefix:    "designs",
		MaxFileSize:    1024 * 1024,
	}
	limits := testLimits()
	return &testServices{
		design:   NewDesignService(logger, general, limits, designOperation),
		rules:    NewRulesService(logger, general),
		exchange: NewExchangeService(logger, limits, storeConfig, store.NewLocalStoreService(logger, storeConfig), designOperation),
		store:    storeConfig,
	}
}

// fighter is a 30 ton TL C hull whose sG plant can feed one energy weapon.
func fighter(t *testing.T, name string) craft.Design {
	t.Helper()
	powerPlant, ok := craft.NewDrive(craft.FusionPowerPlant, "sG", 30)
	require.True(t, ok)
	thruster, ok := craft.NewDrive(craft.GraviticManeuver, "sE", 30)
	require.True(t, ok)
	return craft.NewDesign().
		WithName(name).
		WithHull(craft.NewHull(name, craft.TechLevelC, 30, "")).
		WithDrives(powerPlant, thruster).
		WithFittings(craft.NewCockpit(1, 30))
}

func mustSave(t *testing.T, services *testServices, design craft.Design) craft.Design {
	t.Helper()
	res := services.design.SaveDesign(&RequestSaveDesign{Design: design})
	require.Equal(t, SuccessSaveDesign.StatusName, res.Code, res.Message)
	require.NotNil(t, res.Data)
	return craft.Design(*res.Data)
}

func TestDesignValidator(t *testing.T) {
	validator := NewDesignValidator(testLimits())
	tests := []struct {
		name        string
		description string
		expected    *ApiStatus
	}{
		{"Pinnace", "", nil},
		{"  ", "", &ErrDesignNameEmpty},
		{"", "anything", &ErrDesignNameEmpty},
		{"巡逻艇", "中文描述", nil},
		{strings.Repeat("x", 17), "", &ErrDesignNameTooLong},
		{strings.Repeat("舰", 16), "", nil},
		{"Pinnace", strings.Repeat("d", 33), &ErrDescriptionLong},
	}
	pass := 0
	fail := 0
	for _, test := range tests {
		result := validator.Check(test.name, test.description)
		if result != test.expected {
			fail++
			t.Errorf("Check(%q, %q) = %v; expected %v", test.name, test.description, result, test.expected)
			continue
		}
		pass++
	}
	t.Logf("TestDesignValidator: %d pass, %d fail", pass, fail)
}

func TestAssignLineItemIds(t *testing.T) {
	design := fighter(t, "Dart")
	design.Drives[0].Id = "keep-me"
	assigned := AssignLineItemIds(design)

	assert.Equal(t, "keep-me", assigned.Drives[0].Id)
	assert.Len(t, assigned.Drives[1].Id, 2*lineItemIdBytes)
	assert.NotEmpty(t, assigned.Fittings[0].Id)
	assert.Empty(t, design.Drives[1].Id)
}

func TestSaveDesign(t *testing.T) {
	services := newTestServices(t)
	stored := mustSave(t, services, fighter(t, "  Dart  "))
	assert.NotZero(t, stored.Id)
	assert.Equal(t, "Dart", stored.Name)
	assert.NotEmpty(t, stored.CreatedAt)
	for _, drive := range stored.Drives {
		assert.NotEmpty(t, drive.Id)
	}

	res := services.design.SaveDesign(&RequestSaveDesign{Design: fighter(t, "Dart")})
	assert.Equal(t, ErrDesignNameTaken.StatusName, res.Code)
	assert.Equal(t, Conflict.Code(), res.HttpCode)

	update := stored
	update.Description = "patrol"
	res = services.design.SaveDesign(&RequestSaveDesign{DesignId: stored.Id, Design: update})
	require.Equal(t, SuccessSaveDesign.StatusName, res.Code)
	assert.Equal(t, stored.Id, res.Data.Id)
	assert.Equal(t, "patrol", res.Data.Description)
	assert.Equal(t, stored.CreatedAt, res.Data.CreatedAt)

	res = services.design.SaveDesign(&RequestSaveDesign{DesignId: stored.Id + 10, Design: update})
	assert.Equal(t, ErrDesignNotFound.StatusName, res.Code)
	assert.Equal(t, NotFound.Code(), res.HttpCode)

	invalid := fighter(t, "Ghost")
	invalid.Hull.TechLevel = "Z"
	res = services.design.SaveDesign(&RequestSaveDesign{Design: invalid})
	assert.Equal(t, ErrInvalidTechLevel.StatusName, res.Code)
}

func TestGetAndDeleteDesign(t *testing.T) {
	services := newTestServices(t)
	first := mustSave(t, services, fighter(t, "Alpha"))
	mustSave(t, services, fighter(t, "Beta"))

	list := services.design.GetDesigns(&RequestGetDesigns{})
	require.NotNil(t, list.Data)
	assert.Equal(t, 2, list.Data.Total)
	assert.Equal(t, "Alpha", list.Data.Items[0].Name)

	info := services.design.GetDesignInfo(&RequestDesignInfo{DesignId: first.Id})
	require.NotNil(t, info.Data)
	assert.Equal(t, "Alpha", info.Data.Name)

	assert.Equal(t, ErrIllegalParam.StatusName, services.design.GetDesignInfo(&RequestDesignInfo{}).Code)

	deleted := services.design.DeleteDesign(&RequestDeleteDesign{DesignId: first.Id})
	assert.Equal(t, SuccessDeleteDesign.StatusName, deleted.Code)
	deleted = services.design.DeleteDesign(&RequestDeleteDesign{DesignId: first.Id})
	assert.Equal(t, ErrDesignNotFound.StatusName, deleted.Code)
}

func TestCheckNameAvailability(t *testing.T) {
	services := newTestServices(t)
	stored := mustSave(t, services, fighter(t, "Alpha"))

	tests := []struct {
		name      string
		excludeId uint
		code      string
		available bool
	}{
		{"Alpha", 0, SuccessCheckName.StatusName, false},
		{" Alpha ", 0, SuccessCheckName.StatusName, false},
		{"Alpha", stored.Id, SuccessCheckName.StatusName, true},
		{"alpha", 0, SuccessCheckName.StatusName, true},
		{"Gamma", 0, SuccessCheckName.StatusName, true},
		{" ", 0, ErrLackParam.StatusName, false},
	}
	pass := 0
	fail := 0
	for _, test := range tests {
		res := services.design.CheckNameAvailability(&RequestCheckName{Name: test.name, ExcludeId: test.excludeId})
		available := res.Data != nil && res.Data.Available
		if res.Code != test.code || available != test.available {
			fail++
			t.Errorf("CheckNameAvailability(%q, %d) = %s/%v; expected %s/%v", test.name, test.excludeId, res.Code, available, test.code, test.available)
			continue
		}
		pass++
	}
	t.Logf("TestCheckNameAvailability: %d pass, %d fail", pass, fail)
}

func TestEvaluateDesignFuelPlan(t *testing.T) {
	services := newTestServices(t)
	design := fighter(t, "Dart")

	res := services.design.EvaluateDesign(&RequestEvaluateDesign{Design: design})
	require.NotNil(t, res.Data)
	assert.InDelta(t, 1.5, res.Data.FuelRequired.PowerPlant, 1e-9)

	res = services.design.EvaluateDesign(&RequestEvaluateDesign{Design: design, Weeks: 4})
	require.NotNil(t, res.Data)
	assert.InDelta(t, 3.0, res.Data.FuelRequired.PowerPlant, 1e-9)

	res = services.design.EvaluateDesign(&RequestEvaluateDesign{Design: design, Hours: -1})
	assert.Equal(t, ErrInvalidFuelPlan.StatusName, res.Code)
}

func TestResolveHullService(t *testing.T) {
	services := newTestServices(t)
	tests := []struct {
		tonnage int
		code    string
		hull    string
		cost    float64
	}{
		{10, SuccessGetRules.StatusName, "s1", 1.0},
		{45, SuccessGetRules.StatusName, "s5", 1.5},
		{100, SuccessGetRules.StatusName, "s10", 2.0},
		{9, ErrInvalidTonnage.StatusName, "", 0},
		{101, ErrInvalidTonnage.StatusName, "", 0},
	}
	pass := 0
	fail := 0
	for _, test := range tests {
		res := services.rules.ResolveHull(&RequestResolveHull{Tonnage: test.tonnage})
		if res.Code != test.code {
			fail++
			t.Errorf("ResolveHull(%d) code = %s; expected %s", test.tonnage, res.Code, test.code)
			continue
		}
		if res.Data != nil && (res.Data.TonnageCode != test.hull || res.Data.Cost != test.cost) {
			fail++
			t.Errorf("ResolveHull(%d) = %s/%v; expected %s/%v", test.tonnage, res.Data.TonnageCode, res.Data.Cost, test.hull, test.cost)
			continue
		}
		pass++
	}
	t.Logf("TestResolveHullService: %d pass, %d fail", pass, fail)
}

func TestArmorOptionsService(t *testing.T) {
	services := newTestServices(t)
	res := services.rules.GetArmorOptions(&RequestArmorOptions{TechLevel: craft.TechLevelD})
	require.NotNil(t, res.Data)
	options := *res.Data
	require.Len(t, options, 2)
	assert.Equal(t, craft.TitaniumSteel, options[0].Type)
	assert.Equal(t, 9, options[0].MaxRating)
	assert.Equal(t, 13, options[1].MaxRating)

	res = services.rules.GetArmorOptions(&RequestArmorOptions{TechLevel: "Q"})
	assert.Equal(t, ErrInvalidTechLevel.StatusName, res.Code)

	armor := services.rules.BuildArmor(&RequestBuildArmor{
		Type:   craft.BondedSuperdense,
		Rating: 3,
		Hull:   craft.NewHull("Dart", craft.TechLevelD, 30, ""),
	})
	assert.Equal(t, ErrArmorUnavailable.StatusName, armor.Code)
}

func TestDriveOptionsService(t *testing.T) {
	services := newTestServices(t)
	res := services.rules.GetDriveOptions(&RequestDriveOptions{Tonnage: 10, DriveType: craft.FusionPowerPlant})
	require.NotNil(t, res.Data)
	require.Len(t, res.Data.Models, 6)
	assert.Equal(t, "P-2", res.Data.Models[0].Performance)
	assert.Zero(t, res.Data.Models[len(res.Data.Models)-1].EnergyCapacity)

	res = services.rules.GetDriveOptions(&RequestDriveOptions{Tonnage: 30, DriveType: craft.FusionPowerPlant})
	require.NotNil(t, res.Data)
	sG, ok := lo.Find(res.Data.Models, func(option DriveOption) bool { return option.Model == "sG" })
	require.True(t, ok)
	assert.Equal(t, 1, sG.EnergyCapacity)

	untyped := services.rules.GetDriveOptions(&RequestDriveOptions{Tonnage: 10})
	require.NotNil(t, untyped.Data)
	assert.Equal(t, SuccessGetRules.StatusName, untyped.Code)
	assert.Len(t, untyped.Data.Models, len(craft.AvailableDriveModels(10)))
	assert.NotEmpty(t, untyped.Data.Models)
	assert.Equal(t, 2, untyped.Data.Models[0].Rating)
	assert.Zero(t, untyped.Data.Models[0].Mass)

	unknown := services.rules.GetDriveOptions(&RequestDriveOptions{Tonnage: 10, DriveType: "warp"})
	assert.Equal(t, ErrDriveUnavailable.StatusName, unknown.Code)
}

func TestCalculateFuelService(t *testing.T) {
	services := newTestServices(t)
	design := fighter(t, "Dart")
	weeks := 4.0
	res := services.rules.CalculateFuel(&RequestCalculateFuel{Drives: design.Drives, HullTonnage: 30, Weeks: &weeks})
	require.NotNil(t, res.Data)
	assert.InDelta(t, 3.0, res.Data.PowerPlant, 1e-9)
	assert.Zero(t, res.Data.Maneuver)

	res = services.rules.CalculateFuel(&RequestCalculateFuel{Drives: design.Drives})
	assert.Equal(t, ErrInvalidFuelPlan.StatusName, res.Code)
}

func TestCheckWeaponService(t *testing.T) {
	services := newTestServices(t)
	design := fighter(t, "Dart")

	res := services.rules.CheckWeapon(&RequestCheckWeapon{Design: design, Type: craft.PulseLaserSingle})
	require.NotNil(t, res.Data)
	assert.True(t, res.Data.Allowed)

	turret, ok := craft.NewShipWeapon(craft.PulseLaserSingle)
	require.True(t, ok)
	res = services.rules.CheckWeapon(&RequestCheckWeapon{Design: design.WithWeapons(turret), Type: craft.MissileRackSingle})
	require.NotNil(t, res.Data)
	assert.False(t, res.Data.Allowed)
	assert.NotEmpty(t, res.Data.Reason)

	res = services.rules.CheckWeapon(&RequestCheckWeapon{Design: design, Type: "railgun"})
	assert.Equal(t, ErrUnknownWeaponType.StatusName, res.Code)
}

func TestStaffOptionsService(t *testing.T) {
	services := newTestServices(t)
	turret, ok := craft.NewShipWeapon(craft.PulseLaserSingle)
	require.True(t, ok)
	design := fighter(t, "Dart").WithWeapons(turret)
	design.Staff.Pilot = 1

	res := services.rules.GetStaffOptions(&RequestStaffOptions{Design: design})
	require.NotNil(t, res.Data)
	assert.Equal(t, 1, res.Data.RequiredGunners)
	assert.False(t, res.Data.Engineer)
	assert.True(t, res.Data.Sensors)
}

func TestExportImportDesigns(t *testing.T) {
	services := newTestServices(t)
	mustSave(t, services, fighter(t, "Alpha"))
	mustSave(t, services, fighter(t, "Beta"))

	document, res := services.exchange.ExportDesigns()
	require.Nil(t, res)
	assert.Equal(t, "designs.json", document.FileName)
	exported, err := interchange.ImportJSON(document.Content)
	require.NoError(t, err)
	require.Len(t, exported, 2)

	exported[1].Name = "Gamma"
	imported := services.exchange.ImportDesigns(&RequestImportDesigns{Content: mustExportJSON(t, exported)})
	require.NotNil(t, imported.Data)
	assert.Equal(t, 1, imported.Data.Saved)
	assert.Equal(t, 1, imported.Data.Failed)
	require.Len(t, imported.Data.Failures, 1)
	assert.Equal(t, "Alpha", imported.Data.Failures[0].Name)
	assert.Equal(t, ErrDesignNameTaken.StatusName, imported.Data.Failures[0].Code)

	invalid := services.exchange.ImportDesigns(&RequestImportDesigns{Content: []byte(`{"name":"x"}`)})
	assert.Equal(t, ErrInvalidDocument.StatusName, invalid.Code)

	batch := make([]craft.Design, 0, 4)
	for i := 0; i < 4; i++ {
		batch = append(batch, fighter(t, fmt.Sprintf("Batch %d", i)))
	}
	tooLarge := services.exchange.ImportDesigns(&RequestImportDesigns{Content: mustExportJSON(t, batch)})
	assert.Equal(t, ErrImportBatchTooLarge.StatusName, tooLarge.Code)
}

func mustExportJSON(t *testing.T, designs []craft.Design) []byte {
	t.Helper()
	content, err := interchange.ExportJSON(designs)
	require.NoError(t, err)
	return content
}

func uploadedFile(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["file"][0]
}

func TestCSVExchange(t *testing.T) {
	services := newTestServices(t)
	stored := mustSave(t, services, fighter(t, "Dart"))

	document, res := services.exchange.ExportDesignCSV(&RequestExportCSV{DesignId: stored.Id})
	require.Nil(t, res)
	assert.Equal(t, "Dart.csv", document.FileName)
	assert.True(t, strings.HasPrefix(string(document.Content), "Name,Dart\n"))

	_, res = services.exchange.ExportDesignCSV(&RequestExportCSV{DesignId: stored.Id + 1})
	require.NotNil(t, res)
	assert.Equal(t, ErrDesignNotFound.StatusName, res.Code)

	renamed := bytes.Replace(document.Content, []byte("Name,Dart"), []byte("Name,Dart II"), 1)
	imported := services.exchange.ImportDesignCSV(&RequestImportCSV{File: uploadedFile(t, "Dart II.csv", renamed)})
	require.NotNil(t, imported.Data, imported.Message)
	assert.Equal(t, 1, imported.Data.Saved)

	missing := services.exchange.ImportDesignCSV(&RequestImportCSV{})
	assert.Equal(t, ErrLackParam.StatusName, missing.Code)
}

func TestSaveSnapshotLocal(t *testing.T) {
	services := newTestServices(t)
	stored := mustSave(t, services, fighter(t, "Dart"))

	res := services.exchange.SaveSnapshot(&RequestSaveSnapshot{Format: interchange.FormatCSV, DesignId: stored.Id})
	require.NotNil(t, res.Data, res.Message)
	assert.True(t, strings.HasPrefix(res.Data.AccessPath, "/api/designs/Dart_"))
	assert.True(t, strings.HasSuffix(res.Data.AccessPath, ".csv"))

	relative := strings.TrimPrefix(res.Data.AccessPath, "/api/")
	content, err := os.ReadFile(filepath.Join(services.store.LocalStorePath, filepath.FromSlash(relative)))
	require.NoError(t, err)
	assert.Equal(t, res.Data.FileSize, int64(len(content)))

	res = services.exchange.SaveSnapshot(&RequestSaveSnapshot{Format: interchange.FormatJSON})
	require.NotNil(t, res.Data)
	assert.True(t, strings.HasSuffix(res.Data.AccessPath, ".json"))

	res = services.exchange.SaveSnapshot(&RequestSaveSnapshot{Format: "xml"})
	assert.Equal(t, ErrUnsupportedFormat.StatusName, res.Code)

	res = services.exchange.SaveSnapshot(&RequestSaveSnapshot{Format: interchange.FormatCSV})
	assert.Equal(t, ErrLackParam.StatusName, res.Code)
}
