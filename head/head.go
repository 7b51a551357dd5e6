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

// Package head decodes the "head" font header table: units-per-em, the
// font-wide bounding box, the creation/modification timestamps, and the
// indexToLocFormat flag that "loca" and "glyf" depend on.
package head

import "fontkit.dev/sfnt/table"

// Info is the decoded "head" table.
type Info struct {
	MajorVersion       uint16
	MinorVersion       uint16
	FontRevision       table.Fixed
	CheckSumAdjustment uint32
	MagicNumber        uint32
	Flags              uint16
	UnitsPerEm         uint16
	Created            table.LongDateTime
	Modified           table.LongDateTime
	XMin               int16
	YMin               int16
	XMax               int16
	YMax               int16
	MacStyle           uint16
	LowestRecPPEM      uint16
	FontDirectionHint  int16

	// IndexToLocFormat selects the width of "loca" table offsets: 0 for
	// 16-bit (halved) offsets, 1 for 32-bit offsets.
	IndexToLocFormat int16
	GlyphDataFormat  int16
}

const tag = "head"

// Read decodes a "head" table from buf, which must be positioned at the
// start of the table.
func Read(buf *table.Buffer) (*Info, error) {
	t := table.MakeTag(tag)
	info := &Info{}
	var err error
	if info.MajorVersion, err = buf.U16(); err != nil {
		return nil, table.Wrap(table.KindUnexpectedEnd, t, err)
	}
	if info.MinorVersion, err = buf.U16(); err != nil {
		return nil, err
	}
	if info.FontRevision, err = buf.Fixed(); err != nil {
		return nil, err
	}
	if info.CheckSumAdjustment, err = buf.U32(); err != nil {
		return nil, err
	}
	if info.MagicNumber, err = buf.U32(); err != nil {
		return nil, err
	}
	if info.Flags, err = buf.U16(); err != nil {
		return nil, err
	}
	if info.UnitsPerEm, err = buf.U16(); err != nil {
		return nil, err
	}
	if info.Created, err = buf.LongDateTime(); err != nil {
		return nil, err
	}
	if info.Modified, err = buf.LongDateTime(); err != nil {
		return nil, err
	}
	if info.XMin, err = buf.I16(); err != nil {
		return nil, err
	}
	if info.YMin, err = buf.I16(); err != nil {
		return nil, err
	}
	if info.XMax, err = buf.I16(); err != nil {
		return nil, err
	}
	if info.YMax, err = buf.I16(); err != nil {
		return nil, err
	}
	if info.MacStyle, err = buf.U16(); err != nil {
		return nil, err
	}
	if info.LowestRecPPEM, err = buf.U16(); err != nil {
		return nil, err
	}
	if info.FontDirectionHint, err = buf.I16(); err != nil {
		return nil, err
	}
	if info.IndexToLocFormat, err = buf.I16(); err != nil {
		return nil, err
	}
	if info.GlyphDataFormat, err = buf.I16(); err != nil {
		return nil, err
	}
	return info, nil
}
