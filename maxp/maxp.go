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

// Package maxp decodes the "maxp" maximum profile table, which supplies
// numGlyphs, the glyph count every other table-family decoder sizes its
// arrays from.
package maxp

import "fontkit.dev/sfnt/table"

// Version-0.5 vs version-1.0 maxp tables carry a different field set; the
// unknown-version case reads only NumGlyphs.
const (
	Version05 uint32 = 0x00005000
	Version10 uint32 = 0x00010000
)

// Info is the decoded "maxp" table. The V1 fields are zero when the table
// is version 0.5 or an unrecognized version.
type Info struct {
	Version   uint32
	NumGlyphs uint16

	MaxPoints             uint16
	MaxContours            uint16
	MaxCompositePoints     uint16
	MaxCompositeContours   uint16
	MaxZones               uint16
	MaxTwilightPoints      uint16
	MaxStorage             uint16
	MaxFunctionDefs        uint16
	MaxInstructionDefs     uint16
	MaxStackElements       uint16
	MaxSizeOfInstructions  uint16
	MaxComponentElements   uint16
	MaxComponentDepth      uint16
}

// Read decodes a "maxp" table from buf. Versions other than 0.5 and 1.0 are
// tolerated: only numGlyphs is read, matching what a reader can assume
// about any future version's shared prefix.
func Read(buf *table.Buffer) (*Info, error) {
	info := &Info{}
	var err error
	if info.Version, err = buf.U32(); err != nil {
		return nil, err
	}
	if info.NumGlyphs, err = buf.U16(); err != nil {
		return nil, err
	}
	if info.Version != Version10 {
		return info, nil
	}
	fields := []*uint16{
		&info.MaxPoints, &info.MaxContours,
		&info.MaxCompositePoints, &info.MaxCompositeContours,
		&info.MaxZones, &info.MaxTwilightPoints,
		&info.MaxStorage, &info.MaxFunctionDefs, &info.MaxInstructionDefs,
		&info.MaxStackElements, &info.MaxSizeOfInstructions,
		&info.MaxComponentElements, &info.MaxComponentDepth,
	}
	for _, f := range fields {
		if *f, err = buf.U16(); err != nil {
			return nil, err
		}
	}
	return info, nil
}
