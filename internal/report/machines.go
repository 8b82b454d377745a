package report

import (
	"sort"
	"strconv"
	"strings"

	"github.com/ruslanminnebaev21-del/beri-prosto-service/internal/model"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const (
	cellVacant   = "vacant"
	cellOccupied = "occupied"
)

// MachineStats counts cells of m by state.
func MachineStats(id string, m model.Machine) model.MachineStats {
	st := model.MachineStats{
		ID:         id,
		Online:     m.Online,
		TotalCells: len(m.Cells),
	}

	for _, c := range m.Cells {
		switch strings.ToLower(c.State) {
		case cellVacant:
			st.Vacant++
		case cellOccupied:
			st.Occupied++
		default:
			st.Other++
		}
		if c.Open {
			st.OpenNow++
		}
		if c.BacklightEnabled {
			st.BacklightOn++
		}
	}

	return st
}

func newCollator() *collate.Collator {
	return collate.New(language.Und)
}

// SortMachineIDs orders machine ids by collation.
func SortMachineIDs(ids []string) {
	c := newCollator()
	sort.SliceStable(ids, func(i, j int) bool {
		return c.CompareString(ids[i], ids[j]) < 0
	})
}

// canonicalInt reports whether s is an integer written without sign,
// padding or fraction, e.g. "12" but not "012" or "1.0".
func canonicalInt(s string) (int64, bool) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || strconv.FormatInt(n, 10) != s {
		return 0, false
	}
	return n, true
}

// SortCellNums orders cell numbers: integers first in numeric order,
// then everything else by collation.
func SortCellNums(nums []string) {
	c := newCollator()
	sort.SliceStable(nums, func(i, j int) bool {
		a, aNum := canonicalInt(nums[i])
		b, bNum := canonicalInt(nums[j])
		switch {
		case aNum && bNum:
			return a < b
		case aNum:
			return true
		case bNum:
			return false
		}
		return c.CompareString(nums[i], nums[j]) < 0
	})
}

// CellPins lists the cells of m with their pins in display order.
func CellPins(m model.Machine) []model.CellPin {
	nums := make([]string, 0, len(m.Cells))
	for num := range m.Cells {
		nums = append(nums, num)
	}
	SortCellNums(nums)

	out := make([]model.CellPin, 0, len(nums))
	for _, num := range nums {
		out = append(out, model.CellPin{Num: num, Pin: m.Cells[num].Pin})
	}
	return out
}

// Overview merges vendor machines with their database records, sorted
// by machine id. Machines without a record are titled by their id.
func Overview(machines map[string]model.Machine, meta map[string]model.BoxMeta) []model.BoxOverview {
	ids := make([]string, 0, len(machines))
	for id := range machines {
		ids = append(ids, id)
	}
	SortMachineIDs(ids)

	out := make([]model.BoxOverview, 0, len(ids))
	for _, id := range ids {
		b := model.BoxOverview{
			MachineStats: MachineStats(id, machines[id]),
			Title:        id,
		}
		if m, ok := meta[id]; ok {
			boxID := m.ID
			b.BoxID = &boxID
			b.Address = m.FullAddress
			if m.Name != nil && *m.Name != "" {
				b.Title = *m.Name
			}
		}
		out = append(out, b)
	}
	return out
}

// AllStats returns the stats of every machine, sorted by id.
func AllStats(machines map[string]model.Machine) []model.MachineStats {
	ids := make([]string, 0, len(machines))
	for id := range machines {
		ids = append(ids, id)
	}
	SortMachineIDs(ids)

	out := make([]model.MachineStats, 0, len(ids))
	for _, id := range ids {
		out = append(out, MachineStats(id, machines[id]))
	}
	return out
}
