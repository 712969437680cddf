// Package capacity holds the physical bin topology, the occupancy snapshot
// built from located lots, and the placement rules the allocators use.
package capacity

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/ARCANAFRISIA/arcanafrisia-buylist-sub000/constant"
)

const (
	BinCapacity int64 = 900
	MaxBatch          = 99
	CoreDrawer        = "C"
)

var (
	ErrCapacityExhausted = errors.New("allocation capacity exhausted")
	ErrInvalidLocation   = errors.New("invalid location code")
)

var regularDrawers = []string{"D", "E", "F", "A", "B", "G", "H", "I", "J"}

// Bin is one fixed-capacity (drawer,row) slot.
type Bin struct {
	Drawer string
	Row    int
}

func (b Bin) String() string {
	return fmt.Sprintf("%s%02d", b.Drawer, b.Row)
}

type Location struct {
	Bin
	Batch int
}

func (l Location) String() string {
	return fmt.Sprintf("%s%02d.%02d", l.Drawer, l.Row, l.Batch)
}

var locationPattern = regexp.MustCompile(`^([A-Z])([0-9]{2})\.([0-9]{2})$`)

func ParseLocation(s string) (Location, error) {
	m := locationPattern.FindStringSubmatch(s)
	if m == nil {
		return Location{}, fmt.Errorf("%w: %q", ErrInvalidLocation, s)
	}
	row, _ := strconv.Atoi(m[2])
	batch, _ := strconv.Atoi(m[3])
	if row < 1 || batch < 1 {
		return Location{}, fmt.Errorf("%w: %q", ErrInvalidLocation, s)
	}
	return Location{Bin: Bin{Drawer: m[1], Row: row}, Batch: batch}, nil
}

// Group is an ordered run of rows in one drawer. A contiguous span never
// crosses a group boundary.
type Group struct {
	Drawer string
	Rows   []int
}

func (g Group) Bins() []Bin {
	bins := make([]Bin, 0, len(g.Rows))
	for _, r := range g.Rows {
		bins = append(bins, Bin{Drawer: g.Drawer, Row: r})
	}
	return bins
}

// Groups returns the bins a stock class may occupy, in priority order.
func Groups(class constant.StockClass) []Group {
	switch class {
	case constant.StockClassCore:
		return []Group{{Drawer: CoreDrawer, Rows: []int{1, 2}}}
	case constant.StockClassCommander:
		return []Group{{Drawer: CoreDrawer, Rows: []int{3, 4, 5, 6}}}
	default:
		groups := make([]Group, 0, len(regularDrawers))
		for _, d := range regularDrawers {
			groups = append(groups, Group{Drawer: d, Rows: []int{1, 2, 3, 4, 5, 6}})
		}
		return groups
	}
}

// IsDedicated reports whether the class has its own bins in drawer C.
func IsDedicated(class constant.StockClass) bool {
	return class == constant.StockClassCore || class == constant.StockClassCommander
}
