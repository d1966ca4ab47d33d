// Package craft
package craft

const DefaultDesignName = "Unnamed Small Craft"

type Hull struct {
	Name        string    `json:"name"`
	TechLevel   TechLevel `json:"techLevel"`
	TonnageCode string    `json:"tonnageCode"`
	Tonnage     int       `json:"tonnage"`
	Cost        Credits   `json:"cost"`
	Description string    `json:"description,omitempty"`
}

type Armor struct {
	Type   ArmorType `json:"type"`
	Rating int       `json:"rating"`
	Mass   float64   `json:"mass"`
	Cost   Credits   `json:"cost"`
}

type Drive struct {
	Id        string        `json:"id"`
	Category  DriveCategory `json:"type"`
	DriveType DriveType     `json:"driveType,omitempty"`
	Model     DriveModel    `json:"model"`
	Rating    int           `json:"rating"`
	Mass      float64       `json:"mass"`
	Cost      Credits       `json:"cost"`
	Quantity  int           `json:"quantity"`
}

type Fuel struct {
	Amount   float64 `json:"amount"`
	Duration int     `json:"duration"` // hours
	Mass     float64 `json:"mass"`
}

type Fitting struct {
	Id              string          `json:"id"`
	Type            FittingType     `json:"type"`
	Name            string          `json:"name"`
	Mass            float64         `json:"mass"`
	Cost            Credits         `json:"cost"`
	Quantity        int             `json:"quantity"`
	Crew            int             `json:"crew,omitempty"`
	Passengers      int             `json:"passengers,omitempty"`
	Description     string          `json:"description,omitempty"`
	ElectronicsType ElectronicsType `json:"electronicsType,omitempty"`
	DieModifier     *int            `json:"dieModifier,omitempty"`
	Includes        string          `json:"includes,omitempty"`
}

type Weapon struct {
	Id         string         `json:"id"`
	Type       WeaponType     `json:"type"`
	Name       string         `json:"name"`
	Category   WeaponCategory `json:"category,omitempty"`
	Mass       float64        `json:"mass"`
	Cost       Credits        `json:"cost"`
	Quantity   int            `json:"quantity"`
	SlotsUsed  int            `json:"slotsUsed,omitempty"`
	MountType  string         `json:"mountType,omitempty"`
	Ammunition int            `json:"ammunition,omitempty"`
}

type Cargo struct {
	CargoBay         float64 `json:"cargoBay"`
	ShipsLocker      float64 `json:"shipsLocker"`
	MissileReloads   float64 `json:"missileReloads,omitempty"`
	ModularCutterBay bool    `json:"modularCutterBay,omitempty"`
	Description      string  `json:"description,omitempty"`
}

type Staff struct {
	Pilot    int  `json:"pilot"`
	Gunner   int  `json:"gunner"` // derived from weapons, see Design.Normalize
	Engineer bool `json:"engineer"`
	Comms    bool `json:"comms"`
	Sensors  bool `json:"sensors"`
	ECM      bool `json:"ecm"`
	Other    int  `json:"other"`
}

// Design is treated as a value: every With* method returns an updated copy
// and leaves the receiver untouched.
type Design struct {
	Id          uint      `json:"id,omitempty"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Hull        Hull      `json:"hull"`
	Armor       *Armor    `json:"armor,omitempty"`
	Drives      []Drive   `json:"drives"`
	Fuel        Fuel      `json:"fuel"`
	Fittings    []Fitting `json:"fittings"`
	Weapons     []Weapon  `json:"weapons"`
	Cargo       Cargo     `json:"cargo"`
	Staff       Staff     `json:"staff"`
	CreatedAt   string    `json:"createdAt,omitempty"`
	UpdatedAt   string    `json:"updatedAt,omitempty"`
}

// NewDesign returns the zeroed design the wizard starts from.
func NewDesign() Design {
	return Design{
		Name: DefaultDesignName,
		Hull: Hull{
			Name:      DefaultDesignName,
			TechLevel: TechLevelA,
		},
		Drives:   make([]Drive, 0),
		Fittings: make([]Fitting, 0),
		Weapons:  make([]Weapon, 0),
		Staff:    Staff{Pilot: 1},
	}
}

// Clone 深拷贝设计, 切片与指针字段均重新分配
func (d Design) Clone() Design {
	clone := d
	if d.Armor != nil {
		armor := *d.Armor
		clone.Armor = &armor
	}
	clone.Drives = append(make([]Drive, 0, len(d.Drives)), d.Drives...)
	clone.Fittings = make([]Fitting, 0, len(d.Fittings))
	for _, fitting := range d.Fittings {
		if fitting.DieModifier != nil {
			dm := *fitting.DieModifier
			fitting.DieModifier = &dm
		}
		clone.Fittings = append(clone.Fittings, fitting)
	}
	clone.Weapons = append(make([]Weapon, 0, len(d.Weapons)), d.Weapons...)
	return clone
}

func (d Design) WithName(name string) Design {
	clone := d.Clone()
	clone.Name = name
	return clone
}

func (d Design) WithHull(hull Hull) Design {
	clone := d.Clone()
	clone.Hull = hull
	return clone
}

func (d Design) WithArmor(armor *Armor) Design {
	clone := d.Clone()
	if armor == nil {
		clone.Armor = nil
	} else {
		value := *armor
		clone.Armor = &value
	}
	return clone
}

func (d Design) WithDrives(drives ...Drive) Design {
	clone := d.Clone()
	clone.Drives = append(make([]Drive, 0, len(drives)), drives...)
	return clone
}

func (d Design) WithFuel(fuel Fuel) Design {
	clone := d.Clone()
	clone.Fuel = fuel
	return clone
}

func (d Design) WithFittings(fittings ...Fitting) Design {
	clone := d.Clone()
	clone.Fittings = append(make([]Fitting, 0, len(fittings)), fittings...)
	return clone
}

func (d Design) WithWeapons(weapons ...Weapon) Design {
	clone := d.Clone()
	clone.Weapons = append(make([]Weapon, 0, len(weapons)), weapons...)
	return clone.Normalize()
}

func (d Design) WithCargo(cargo Cargo) Design {
	clone := d.Clone()
	clone.Cargo = cargo
	return clone
}

func (d Design) WithStaff(staff Staff) Design {
	clone := d.Clone()
	clone.Staff = staff
	clone.Staff.Gunner = RequiredGunners(clone.Weapons)
	return clone
}

// Normalize recomputes derived fields. Gunner count always follows the
// installed weapons; any stored value is informational only.
func (d Design) Normalize() Design {
	clone := d.Clone()
	clone.Staff.Gunner = RequiredGunners(clone.Weapons)
	clone.Fuel.Mass = clone.Fuel.Amount
	return clone
}
