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

// Package hmtx decodes the "hmtx" horizontal metrics table. It depends on
// hhea.numberOfHMetrics and maxp.numGlyphs, which the caller supplies
// explicitly rather than this package reaching back into a parent Font.
package hmtx

import "fontkit.dev/sfnt/table"

// LongHorMetric is one {advanceWidth, lsb} pair.
type LongHorMetric struct {
	AdvanceWidth uint16
	LSB          int16
}

// Info is the decoded "hmtx" table: numberOfHMetrics full metrics records
// followed by numGlyphs-numberOfHMetrics trailing left-side-bearing-only
// values (glyphs past the last full record share the last advance width).
type Info struct {
	HMetrics        []LongHorMetric
	LeftSideBearing []int16
}

// Read decodes an "hmtx" table given the glyph and metrics counts from the
// sibling "maxp" and "hhea" tables.
func Read(buf *table.Buffer, numGlyphs, numberOfHMetrics int) (*Info, error) {
	info := &Info{
		HMetrics: make([]LongHorMetric, numberOfHMetrics),
	}
	for i := range info.HMetrics {
		aw, err := buf.U16()
		if err != nil {
			return nil, err
		}
		lsb, err := buf.I16()
		if err != nil {
			return nil, err
		}
		info.HMetrics[i] = LongHorMetric{AdvanceWidth: aw, LSB: lsb}
	}
	trailing := numGlyphs - numberOfHMetrics
	if trailing > 0 {
		lsbs, err := buf.I16Vec(trailing)
		if err != nil {
			return nil, err
		}
		info.LeftSideBearing = lsbs
	}
	return info, nil
}

// AdvanceWidth returns the advance width for glyph gid, honoring the rule
// that glyphs beyond the last full metrics record reuse the final advance
// width.
func (info *Info) AdvanceWidth(gid int) uint16 {
	if len(info.HMetrics) == 0 {
		return 0
	}
	if gid < len(info.HMetrics) {
		return info.HMetrics[gid].AdvanceWidth
	}
	return info.HMetrics[len(info.HMetrics)-1].AdvanceWidth
}
