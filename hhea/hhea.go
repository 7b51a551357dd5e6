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

// Package hhea decodes the "hhea" horizontal header table, which supplies
// numberOfHMetrics, the one value "hmtx" depends on.
package hhea

import "fontkit.dev/sfnt/table"

// Info is the decoded "hhea" table.
type Info struct {
	MajorVersion        uint16
	MinorVersion        uint16
	Ascender            int16
	Descender           int16
	LineGap             int16
	AdvanceWidthMax     uint16
	MinLeftSideBearing  int16
	MinRightSideBearing int16
	XMaxExtent          int16
	CaretSlopeRise      int16
	CaretSlopeRun       int16
	CaretOffset         int16
	MetricDataFormat    int16
	NumberOfHMetrics    uint16
}

// Read decodes an "hhea" table from buf. Four reserved int16 fields between
// caretOffset and metricDataFormat are skipped.
func Read(buf *table.Buffer) (*Info, error) {
	info := &Info{}
	var err error
	if info.MajorVersion, err = buf.U16(); err != nil {
		return nil, err
	}
	if info.MinorVersion, err = buf.U16(); err != nil {
		return nil, err
	}
	if info.Ascender, err = buf.I16(); err != nil {
		return nil, err
	}
	if info.Descender, err = buf.I16(); err != nil {
		return nil, err
	}
	if info.LineGap, err = buf.I16(); err != nil {
		return nil, err
	}
	if info.AdvanceWidthMax, err = buf.U16(); err != nil {
		return nil, err
	}
	if info.MinLeftSideBearing, err = buf.I16(); err != nil {
		return nil, err
	}
	if info.MinRightSideBearing, err = buf.I16(); err != nil {
		return nil, err
	}
	if info.XMaxExtent, err = buf.I16(); err != nil {
		return nil, err
	}
	if info.CaretSlopeRise, err = buf.I16(); err != nil {
		return nil, err
	}
	if info.CaretSlopeRun, err = buf.I16(); err != nil {
		return nil, err
	}
	if info.CaretOffset, err = buf.I16(); err != nil {
		return nil, err
	}
	buf.SkipU16(4) // reserved
	if info.MetricDataFormat, err = buf.I16(); err != nil {
		return nil, err
	}
	if info.NumberOfHMetrics, err = buf.U16(); err != nil {
		return nil, err
	}
	return info, nil
}
