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

// Package vorg decodes the "VORG" vertical origin table, which overrides
// the default per-glyph vertical origin Y coordinate for CFF fonts with
// vertical writing support.
package vorg

import "fontkit.dev/sfnt/table"

// VertOriginYMetric is one glyph's explicit vertical origin override.
type VertOriginYMetric struct {
	GlyphIndex  uint16
	VertOriginY int16
}

// VORG is the decoded "VORG" table.
type VORG struct {
	MajorVersion, MinorVersion uint16
	DefaultVertOriginY         int16
	VertOriginYMetrics         []VertOriginYMetric
}

// Read decodes a "VORG" table from buf.
func Read(buf *table.Buffer) (*VORG, error) {
	v := &VORG{}
	var err error
	if v.MajorVersion, err = buf.U16(); err != nil {
		return nil, err
	}
	if v.MinorVersion, err = buf.U16(); err != nil {
		return nil, err
	}
	if v.DefaultVertOriginY, err = buf.I16(); err != nil {
		return nil, err
	}
	numVertOriginYMetrics, err := buf.U16()
	if err != nil {
		return nil, err
	}
	v.VertOriginYMetrics = make([]VertOriginYMetric, numVertOriginYMetrics)
	for i := range v.VertOriginYMetrics {
		var m VertOriginYMetric
		if m.GlyphIndex, err = buf.U16(); err != nil {
			return nil, err
		}
		if m.VertOriginY, err = buf.I16(); err != nil {
			return nil, err
		}
		v.VertOriginYMetrics[i] = m
	}
	return v, nil
}

// OriginY returns the vertical origin Y for gid, falling back to
// DefaultVertOriginY when no explicit override exists. Metrics are stored
// sorted by GlyphIndex in a well-formed "VORG" table; this does a linear
// scan, which is adequate for the metric counts real fonts carry.
func (v *VORG) OriginY(gid uint16) int16 {
	for _, m := range v.VertOriginYMetrics {
		if m.GlyphIndex == gid {
			return m.VertOriginY
		}
	}
	return v.DefaultVertOriginY
}
