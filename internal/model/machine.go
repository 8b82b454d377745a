package model

// Machine is a locker as reported by the ESI vendor API.
type Machine struct {
	Online bool            `json:"online"`
	Cells  map[string]Cell `json:"cells"`
}

type Cell struct {
	State            string `json:"state"`
	Open             bool   `json:"open"`
	BacklightEnabled bool   `json:"backlight_enabled"`
	Height           int    `json:"height,omitempty"`
	Pin              string `json:"pin,omitempty"`
}

// MachineStats summarizes the cells of one machine.
type MachineStats struct {
	ID          string `json:"id"`
	Online      bool   `json:"online"`
	TotalCells  int    `json:"totalCells"`
	Vacant      int    `json:"vacant"`
	Occupied    int    `json:"occupied"`
	Other       int    `json:"other"`
	OpenNow     int    `json:"openNow"`
	BacklightOn int    `json:"backlightOn"`
}

// BoxOverview is a machine merged with its database record.
type BoxOverview struct {
	MachineStats
	BoxID   *int64  `json:"box_id"`
	Title   string  `json:"title"`
	Address *string `json:"address"`
}

type CellPin struct {
	Num string `json:"num"`
	Pin string `json:"pin"`
}
