// Package craft
package craft

import "github.com/samber/lo"

// StaffOptions tells which optional positions a design can carry.
type StaffOptions struct {
	Engineer bool `json:"engineer"`
	Comms    bool `json:"comms"`
	Sensors  bool `json:"sensors"`
	ECM      bool `json:"ecm"`
}

func countDrives(drives []Drive, category DriveCategory) int {
	return lo.SumBy(drives, func(drive Drive) int {
		if drive.Category != category {
			return 0
		}
		return drive.Quantity
	})
}

// StaffOptionsFor: an engineer needs two or more power plants or maneuver
// drives, ECM needs an advanced or very advanced electronics suite.
func StaffOptionsFor(design Design) StaffOptions {
	ecm := lo.ContainsBy(design.Fittings, func(fitting Fitting) bool {
		return fitting.Type == Electronics &&
			(fitting.ElectronicsType == AdvancedElectronics || fitting.ElectronicsType == VeryAdvancedElectronics)
	})
	return StaffOptions{
		Engineer: countDrives(design.Drives, PowerPlant) >= 2 || countDrives(design.Drives, Maneuver) >= 2,
		Comms:    true,
		Sensors:  true,
		ECM:      ecm,
	}
}

func TotalCrew(staff Staff) int {
	total := staff.Pilot + staff.Gunner + staff.Other
	for _, flag := range []bool{staff.Engineer, staff.Comms, staff.Sensors, staff.ECM} {
		if flag {
			total++
		}
	}
	return total
}
