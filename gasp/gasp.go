// fontkit.dev/sfnt - a library for reading OpenType/TrueType font files
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package gasp decodes the "gasp" grid-fitting and anti-aliasing suggestion
// table: a small ordered list of {maxPPEM, behaviorFlags} ranges.
package gasp

import "fontkit.dev/sfnt/table"

// Behavior flag bits.
const (
	GriddfitFlag          = 0x0001
	DoGrayFlag            = 0x0002
	SymmetricGriddfitFlag = 0x0004
	SymmetricSmoothingFlag = 0x0008
)

// Range is one {rangeMaxPPEM, rangeGaspBehavior} entry. Ranges are ordered
// by increasing rangeMaxPPEM; the last entry's rangeMaxPPEM is conventionally
// 0xFFFF, covering all larger sizes.
type Range struct {
	RangeMaxPPEM     uint16
	RangeGaspBehavior uint16
}

// Table is the decoded "gasp" table.
type Table struct {
	Version   uint16
	NumRanges uint16
	GaspRanges []Range
}

// Read decodes a "gasp" table from buf.
func Read(buf *table.Buffer) (*Table, error) {
	t := &Table{}
	var err error
	if t.Version, err = buf.U16(); err != nil {
		return nil, err
	}
	if t.NumRanges, err = buf.U16(); err != nil {
		return nil, err
	}
	t.GaspRanges = make([]Range, t.NumRanges)
	for i := range t.GaspRanges {
		var r Range
		if r.RangeMaxPPEM, err = buf.U16(); err != nil {
			return nil, err
		}
		if r.RangeGaspBehavior, err = buf.U16(); err != nil {
			return nil, err
		}
		t.GaspRanges[i] = r
	}
	return t, nil
}

// BehaviorFor returns the gasp behavior flags that apply at ppem, the
// smallest range whose RangeMaxPPEM is >= ppem, or the last range's flags
// if ppem exceeds every range (matching the "0xFFFF catches everything
// larger" convention).
func (t *Table) BehaviorFor(ppem uint16) uint16 {
	for _, r := range t.GaspRanges {
		if ppem <= r.RangeMaxPPEM {
			return r.RangeGaspBehavior
		}
	}
	if len(t.GaspRanges) > 0 {
		return t.GaspRanges[len(t.GaspRanges)-1].RangeGaspBehavior
	}
	return 0
}
