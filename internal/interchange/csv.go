// Package interchange
package interchange

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"github.com/half-nothing/smallcraft-designer/internal/interfaces/craft"
	"github.com/half-nothing/smallcraft-designer/internal/utils"
	"github.com/samber/lo"
	"math"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

var ErrMalformedCSV = errors.New("malformed csv report")

const (
	csvCategoryHeader = "Category"
	csvTotals         = "TOTALS"
	csvTotalMass      = "Total Mass"
)

var (
	fileNamePattern       = regexp.MustCompile(`[^a-zA-Z0-9]`)
	csvExtensionPattern   = regexp.MustCompile(`(?i)\.csv$`)
	headerTonsPattern     = regexp.MustCompile(`(?i)^(\d+(?:\.\d+)?)\s*tons?$`)
	hullCodePattern       = regexp.MustCompile(`(?i)^\s*S\d+\s*\(`)
	ratingPattern         = regexp.MustCompile(`Rating\s+(\d+)`)
	leadingWordPattern    = regexp.MustCompile(`^(\w+)`)
	modelPattern          = regexp.MustCompile(`Model\s+(\w+)`)
	parenPattern          = regexp.MustCompile(`\(([^)]+)\)`)
	digitsPattern         = regexp.MustCompile(`(\d+)`)
	tonsPattern           = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*tons`)
	hoursPattern          = regexp.MustCompile(`(\d+)\s*hours`)
	quantitySuffixPattern = regexp.MustCompile(`\s*x(\d+)$`)
	crewPattern           = regexp.MustCompile(`\((\d+) crew\)`)
	passengerPattern      = regexp.MustCompile(`\((\d+) passengers?\)`)
	annotationPattern     = regexp.MustCompile(`\s*\((\d+ crew|\d+ passengers?|DM [+-]?\d+)\)$`)
	weaponPattern         = regexp.MustCompile(`^(.*?)\s*x(\d+)(?:\s*\(([^)]*)\))?\s*$`)
	staffPattern          = regexp.MustCompile(`(\w+):\s*(\d+)`)
)

// CSVFileName turns a design name into a safe report file name.
func CSVFileName(name string) string {
	return fileNamePattern.ReplaceAllString(name, "_") + FormatCSV.Extension()
}

func formatTons(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func formatMCr(value craft.Credits) string {
	return fmt.Sprintf("%.1f", value.MCr())
}

type csvReport struct {
	records [][]string
}

func (r *csvReport) line(fields ...string) {
	r.records = append(r.records, fields)
}

func (r *csvReport) row(category, item, tons, cost string) {
	r.line(category, item, tons, cost)
}

// section writes items under one category label shown on the first row only.
func (r *csvReport) section(category string, items [][3]string) {
	for i, item := range items {
		r.row(lo.Ternary(i == 0, category, ""), item[0], item[1], item[2])
	}
}

// ExportCSV renders the flattened summary report of a design. The report is
// meant for reading; ImportCSV recovers only part of it.
func ExportCSV(design craft.Design) ([]byte, error) {
	design = design.Normalize()
	mass := craft.Mass(design)
	cost := craft.Cost(design)
	report := &csvReport{}

	report.line("Name", design.Name)
	if strings.TrimSpace(design.Description) != "" {
		report.line("Description", design.Description)
	}
	report.line("Hull", fmt.Sprintf("%d tons", design.Hull.Tonnage), formatMCr(cost.Total)+" MCr")
	report.line("")
	report.row(csvCategoryHeader, "Item", "Tons", "Cost (MCr)")

	hullItem := design.Hull.Description
	if hullItem == "" {
		hullItem = fmt.Sprintf("%s (%d tons)", design.Hull.TonnageCode, design.Hull.Tonnage)
	}
	report.row("Hull", hullItem, strconv.Itoa(design.Hull.Tonnage), formatMCr(design.Hull.Cost))
	if design.Armor != nil {
		report.row("", fmt.Sprintf("%s Rating %d", design.Armor.Type, design.Armor.Rating), formatTons(design.Armor.Mass), formatMCr(design.Armor.Cost))
	}

	report.section("Drives", lo.Map(design.Drives, func(drive craft.Drive, _ int) [3]string {
		item := fmt.Sprintf("%s - Model %s (%s)", drive.Category, drive.Model, craft.FormatPerformanceRating(drive.Rating, drive.Category))
		if drive.Quantity > 1 {
			item += fmt.Sprintf(" x%d", drive.Quantity)
		}
		return [3]string{item, formatTons(drive.Mass), formatMCr(drive.Cost)}
	}))

	report.row("Fuel", fmt.Sprintf("%s tons (%d hours)", formatTons(design.Fuel.Amount), design.Fuel.Duration), formatTons(design.Fuel.Mass), "0.0")

	report.section("Fittings", lo.Map(design.Fittings, func(fitting craft.Fitting, _ int) [3]string {
		return [3]string{fittingItem(fitting), formatTons(fitting.Mass), formatMCr(fitting.Cost)}
	}))

	if len(design.Weapons) == 0 {
		report.row("Weapons", "Unarmed", "0", "0.0")
	} else {
		report.section("Weapons", lo.Map(design.Weapons, func(weapon craft.Weapon, _ int) [3]string {
			item := fmt.Sprintf("%s x%d (%s)", weapon.Name, weapon.Quantity, weapon.MountType)
			return [3]string{item, formatTons(weapon.Mass), formatMCr(weapon.Cost)}
		}))
	}

	report.section("Cargo", cargoItems(design.Cargo))

	staff := design.Staff
	staffItems := []string{fmt.Sprintf("Pilots: %d", staff.Pilot)}
	if staff.Gunner > 0 {
		staffItems = append(staffItems, fmt.Sprintf("Gunners: %d", staff.Gunner))
	}
	if staff.Engineer {
		staffItems = append(staffItems, "Engineer: 1")
	}
	if staff.Comms {
		staffItems = append(staffItems, "Communications: 1")
	}
	if staff.Sensors {
		staffItems = append(staffItems, "Sensors: 1")
	}
	if staff.ECM {
		staffItems = append(staffItems, "ECM: 1")
	}
	if staff.Other > 0 {
		staffItems = append(staffItems, fmt.Sprintf("Other: %d", staff.Other))
	}
	report.section("Staff", lo.Map(staffItems, func(item string, _ int) [3]string {
		return [3]string{item, "0", "0.0"}
	}))
	report.row("", fmt.Sprintf("Total Crew: %d", craft.TotalCrew(staff)), "0", "0.0")

	report.row("", "", "", "")
	report.row(csvTotals, csvTotalMass, fmt.Sprintf("%.2f", mass.Total), "")
	report.row("", "Hull Capacity", strconv.Itoa(design.Hull.Tonnage), "")
	report.row("", "Total Cost", "", formatMCr(cost.Total))

	buffer := &bytes.Buffer{}
	writer := csv.NewWriter(buffer)
	if err := writer.WriteAll(report.records); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buffer.Bytes(), []byte("\n")), nil
}

func fittingItem(fitting craft.Fitting) string {
	switch {
	case fitting.Type == craft.Cockpit || fitting.Type == craft.ControlCabin:
		return fmt.Sprintf("%s (%d crew)", fitting.Name, max(fitting.Crew, 1))
	case fitting.Type == craft.PassengerCabin:
		passengers := max(fitting.Passengers, 1)
		return fmt.Sprintf("%s (%d passenger%s)", fitting.Name, passengers, lo.Ternary(passengers > 1, "s", ""))
	case fitting.Type == craft.Electronics && fitting.DieModifier != nil:
		return fmt.Sprintf("%s (DM %+d)", fitting.Name, *fitting.DieModifier)
	case fitting.Type != craft.Electronics && fitting.Quantity > 1:
		return fmt.Sprintf("%s x%d", fitting.Name, fitting.Quantity)
	default:
		return fitting.Name
	}
}

func cargoItems(cargo craft.Cargo) [][3]string {
	items := make([][3]string, 0, 4)
	if cargo.CargoBay > 0 {
		items = append(items, [3]string{fmt.Sprintf("Cargo Bay (%s tons)", formatTons(cargo.CargoBay)), formatTons(cargo.CargoBay), "0.0"})
	}
	if cargo.ShipsLocker > 0 {
		lockerCost := craft.Credits(math.Round(cargo.ShipsLocker * float64(craft.ShipsLockerCostPerTon)))
		items = append(items, [3]string{fmt.Sprintf("Ship's Locker (%s tons)", formatTons(cargo.ShipsLocker)), formatTons(cargo.ShipsLocker), formatMCr(lockerCost)})
	}
	if cargo.MissileReloads > 0 {
		items = append(items, [3]string{fmt.Sprintf("Missile Reloads (%s tons)", formatTons(cargo.MissileReloads)), formatTons(cargo.MissileReloads), "0.0"})
	}
	if cargo.ModularCutterBay {
		items = append(items, [3]string{fmt.Sprintf("Modular Cutter Bay (%s tons)", formatTons(craft.ModularCutterBayMass)), formatTons(craft.ModularCutterBayMass), "0.0"})
	}
	return items
}

type csvHeader struct {
	name        string
	description string
	tonnage     int
}

type csvRow struct {
	category string
	item     string
	tons     string
	cost     string
}

func (r csvRow) mass() float64 {
	return utils.StrToFloat(r.tons, 0)
}

func (r csvRow) credits() craft.Credits {
	return craft.MCr(utils.StrToFloat(r.cost, 0))
}

func cell(record []string, index int) string {
	if index >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[index])
}

func parseCSVHeader(records [][]string, filename string) (csvHeader, [][]string) {
	header := csvHeader{name: csvExtensionPattern.ReplaceAllString(filepath.Base(filename), "")}
	index := 0
	if index < len(records) && strings.EqualFold(cell(records[index], 0), "name") && cell(records[index], 1) != "" {
		header.name = cell(records[index], 1)
		index++
	}
	if index < len(records) && strings.EqualFold(cell(records[index], 0), "description") && cell(records[index], 1) != "" {
		header.description = cell(records[index], 1)
		index++
	}
	if index < len(records) && strings.EqualFold(cell(records[index], 0), "hull") {
		if match := headerTonsPattern.FindStringSubmatch(cell(records[index], 1)); match != nil {
			header.tonnage = int(math.Round(utils.StrToFloat(match[1], 0)))
			index++
		}
	}
	return header, records[index:]
}

// parseCSVRows reads the category table, carrying the category label down
// onto the rows that leave it blank.
func parseCSVRows(records [][]string) []csvRow {
	rows := make([]csvRow, 0, len(records))
	foundHeader := false
	category := ""
	for _, record := range records {
		if !foundHeader {
			foundHeader = strings.EqualFold(cell(record, 0), csvCategoryHeader)
			continue
		}
		if len(record) < 2 || cell(record, 0) == csvTotals || cell(record, 1) == csvTotalMass {
			continue
		}
		if label := cell(record, 0); label != "" {
			category = label
		}
		rows = append(rows, csvRow{
			category: category,
			item:     cell(record, 1),
			tons:     lo.Ternary(cell(record, 2) == "", "0", cell(record, 2)),
			cost:     lo.Ternary(cell(record, 3) == "", "0", cell(record, 3)),
		})
	}
	return rows
}

func rowsIn(rows []csvRow, category string) []csvRow {
	return lo.Filter(rows, func(row csvRow, _ int) bool { return row.category == category })
}

// ImportCSV rebuilds a design from a summary report on a best-effort basis.
// Tech level is not part of the report and falls back to A; the file name
// stands in when the report carries no name line.
func ImportCSV(content []byte, filename string) (craft.Design, error) {
	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return craft.Design{}, fmt.Errorf("%w: %w", ErrMalformedCSV, err)
	}
	if len(records) == 0 {
		return craft.Design{}, ErrEmptyDocument
	}

	header, rest := parseCSVHeader(records, filename)
	rows := parseCSVRows(rest)
	if header.name == "" {
		return craft.Design{}, ErrUnnamedDesign
	}

	design := craft.NewDesign()
	design.Name = header.name
	design.Description = header.description
	design.Hull = craft.Hull{Name: header.name, TechLevel: craft.TechLevelA}
	if header.tonnage > 0 {
		design.Hull = craft.NewHull(header.name, craft.TechLevelA, header.tonnage, "")
	}

	for _, row := range rowsIn(rows, "Hull") {
		if row.item != "" && !hullCodePattern.MatchString(row.item) && !ratingPattern.MatchString(row.item) {
			design.Hull.Description = row.item
			break
		}
	}
	design.Armor = parseArmor(rows)
	for _, row := range rowsIn(rows, "Drives") {
		if drive, ok := parseDrive(row); ok {
			design.Drives = append(design.Drives, drive)
		}
	}
	if row, ok := lo.Find(rows, func(row csvRow) bool { return row.category == "Fuel" }); ok {
		design.Fuel = parseFuel(row)
	}
	for _, row := range rowsIn(rows, "Fittings") {
		design.Fittings = append(design.Fittings, parseFitting(row))
	}
	for _, row := range rowsIn(rows, "Weapons") {
		if row.item != "Unarmed" {
			design.Weapons = append(design.Weapons, parseWeapon(row))
		}
	}
	for _, row := range rowsIn(rows, "Cargo") {
		parseCargo(&design.Cargo, row)
	}
	for _, row := range rowsIn(rows, "Staff") {
		parseStaff(&design.Staff, row)
	}
	return design.Normalize(), nil
}

func parseArmor(rows []csvRow) *craft.Armor {
	row, ok := lo.Find(rows, func(row csvRow) bool {
		return (row.category == "Armor" || row.category == "Hull") && ratingPattern.MatchString(row.item)
	})
	if !ok {
		return nil
	}
	rating := ratingPattern.FindStringSubmatch(row.item)
	armorType := leadingWordPattern.FindStringSubmatch(row.item)
	if armorType == nil {
		return nil
	}
	return &craft.Armor{
		Type:   craft.ArmorType(armorType[1]),
		Rating: utils.StrToInt(rating[1], 0),
		Mass:   row.mass(),
		Cost:   row.credits(),
	}
}

// inferDriveType picks the drive type of the category whose table mass
// matches the row, defaulting to the first type of that category.
func inferDriveType(category craft.DriveCategory, model craft.DriveModel, mass float64) craft.DriveType {
	candidates := lo.Filter(craft.DriveTypes, func(driveType craft.DriveType, _ int) bool {
		return driveType.Category() == category
	})
	for _, driveType := range candidates {
		if spec, ok := craft.DriveSpecFor(driveType, model); ok && math.Abs(spec.Tonnage-mass) < 1e-6 {
			return driveType
		}
	}
	return candidates[0]
}

func parseDrive(row csvRow) (craft.Drive, bool) {
	model := modelPattern.FindStringSubmatch(row.item)
	kind := leadingWordPattern.FindStringSubmatch(row.item)
	if model == nil || kind == nil {
		return craft.Drive{}, false
	}
	var category craft.DriveCategory
	switch {
	case strings.EqualFold(kind[1], string(craft.Maneuver)):
		category = craft.Maneuver
	case strings.EqualFold(kind[1], string(craft.PowerPlant)):
		category = craft.PowerPlant
	default:
		return craft.Drive{}, false
	}
	rating := 0
	if paren := parenPattern.FindStringSubmatch(row.item); paren != nil {
		if digits := digitsPattern.FindStringSubmatch(paren[1]); digits != nil {
			rating = utils.StrToInt(digits[1], 0)
		}
	}
	quantity := 1
	if suffix := quantitySuffixPattern.FindStringSubmatch(row.item); suffix != nil {
		quantity = utils.StrToInt(suffix[1], 1)
	}
	driveModel := craft.DriveModel(model[1])
	return craft.Drive{
		Category:  category,
		DriveType: inferDriveType(category, driveModel, row.mass()),
		Model:     driveModel,
		Rating:    rating,
		Mass:      row.mass(),
		Cost:      row.credits(),
		Quantity:  quantity,
	}, true
}

func parseFuel(row csvRow) craft.Fuel {
	fuel := craft.Fuel{}
	if amount := tonsPattern.FindStringSubmatch(row.item); amount != nil {
		fuel.Amount = utils.StrToFloat(amount[1], 0)
		fuel.Mass = fuel.Amount
	}
	if hours := hoursPattern.FindStringSubmatch(row.item); hours != nil {
		fuel.Duration = utils.StrToInt(hours[1], 0)
	}
	return fuel
}

func parseFitting(row csvRow) craft.Fitting {
	item := row.item
	quantity := 1
	if suffix := quantitySuffixPattern.FindStringSubmatch(item); suffix != nil {
		quantity = utils.StrToInt(suffix[1], 1)
		item = strings.TrimSpace(strings.TrimSuffix(item, suffix[0]))
	}
	fitting := craft.Fitting{
		Type:     craft.OtherFitting,
		Name:     strings.TrimSpace(annotationPattern.ReplaceAllString(item, "")),
		Mass:     row.mass(),
		Cost:     row.credits(),
		Quantity: quantity,
	}
	if crew := crewPattern.FindStringSubmatch(item); crew != nil {
		fitting.Crew = utils.StrToInt(crew[1], 1)
	}
	if passengers := passengerPattern.FindStringSubmatch(item); passengers != nil {
		fitting.Passengers = utils.StrToInt(passengers[1], 1)
	}

	switch fitting.Name {
	case "Cockpit":
		fitting.Type = craft.Cockpit
	case "Control Cabin":
		fitting.Type = craft.ControlCabin
		fitting.Passengers = craft.ControlCabinPassengers(fitting.Crew)
	case "Cabin Space":
		fitting.Type = craft.PassengerCabin
	case "Airlock":
		fitting.Type = craft.Airlock
	case "Fresher":
		fitting.Type = craft.Fresher
	case "Galley":
		fitting.Type = craft.Galley
	default:
		spec, ok := lo.Find(craft.ElectronicsSpecs(), func(spec *craft.ElectronicsSpec) bool {
			return spec.Name == fitting.Name
		})
		if ok {
			dm := spec.DieModifier
			fitting.Type = craft.Electronics
			fitting.ElectronicsType = spec.Type
			fitting.DieModifier = &dm
			fitting.Includes = spec.Includes
		}
	}
	return fitting
}

func parseWeapon(row csvRow) craft.Weapon {
	weapon := craft.Weapon{
		Type:      "other",
		Name:      row.item,
		Mass:      row.mass(),
		Cost:      row.credits(),
		Quantity:  1,
		MountType: "fixed",
	}
	if match := weaponPattern.FindStringSubmatch(row.item); match != nil {
		weapon.Name = strings.TrimSpace(match[1])
		weapon.Quantity = utils.StrToInt(match[2], 1)
		if match[3] != "" {
			weapon.MountType = match[3]
		}
	}
	spec, ok := lo.Find(craft.ShipWeaponSpecs(), func(spec *craft.ShipWeaponSpec) bool {
		return spec.Name == weapon.Name
	})
	if ok {
		weapon.Type = spec.Type
		weapon.Category = craft.ShipWeapon
		weapon.SlotsUsed = spec.SlotsUsed
	}
	return weapon
}

func parseCargo(cargo *craft.Cargo, row csvRow) {
	tons := 0.0
	if match := tonsPattern.FindStringSubmatch(row.item); match != nil {
		tons = utils.StrToFloat(match[1], 0)
	}
	switch {
	case strings.Contains(row.item, "Cargo Bay"):
		cargo.CargoBay = tons
	case strings.Contains(row.item, "Ship's Locker"):
		cargo.ShipsLocker = tons
	case strings.Contains(row.item, "Missile Reloads"):
		cargo.MissileReloads = tons
	case strings.Contains(row.item, "Modular Cutter Bay"):
		cargo.ModularCutterBay = true
	}
}

func parseStaff(staff *craft.Staff, row csvRow) {
	match := staffPattern.FindStringSubmatch(row.item)
	if match == nil {
		return
	}
	count := utils.StrToInt(match[2], 0)
	switch strings.ToLower(match[1]) {
	case "pilots":
		staff.Pilot = count
	case "gunners":
		staff.Gunner = count
	case "engineer":
		staff.Engineer = count > 0
	case "communications":
		staff.Comms = count > 0
	case "sensors":
		staff.Sensors = count > 0
	case "ecm":
		staff.ECM = count > 0
	case "other":
		staff.Other = count
	}
}
