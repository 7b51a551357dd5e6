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

// Package loca decodes the "loca" glyph location table: an array of byte
// offsets into "glyf", one per glyph plus a trailing sentinel, in either a
// 16-bit (half the real offset) or 32-bit encoding selected by
// head.IndexToLocFormat.
package loca

import "fontkit.dev/sfnt/table"

// Read decodes numGlyphs+1 offsets from buf. longFormat selects the 32-bit
// encoding (head.IndexToLocFormat == 1); otherwise each entry is a 16-bit
// value representing half the real byte offset.
func Read(buf *table.Buffer, numGlyphs int, longFormat bool) ([]uint32, error) {
	n := numGlyphs + 1
	offsets := make([]uint32, n)
	if longFormat {
		for i := range offsets {
			v, err := buf.U32()
			if err != nil {
				return nil, err
			}
			offsets[i] = v
		}
		return offsets, nil
	}
	for i := range offsets {
		v, err := buf.U16()
		if err != nil {
			return nil, err
		}
		offsets[i] = uint32(v) * 2
	}
	return offsets, nil
}

// EmptyGlyph reports whether glyph gid has a zero-length outline (offsets[gid]
// == offsets[gid+1]), the standard encoding for glyphs with no contours
// (e.g. space).
func EmptyGlyph(offsets []uint32, gid int) bool {
	if gid < 0 || gid+1 >= len(offsets) {
		return true
	}
	return offsets[gid] == offsets[gid+1]
}
