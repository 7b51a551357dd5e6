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

// Package post decodes the "post" PostScript information table. Version
// 2.0 additionally carries per-glyph PostScript names; version 2.5 (now
// deprecated) carries per-glyph index deltas instead. Other versions carry
// only the shared header.
package post

import "fontkit.dev/sfnt/table"

const (
	Version10 uint32 = 0x00010000
	Version20 uint32 = 0x00020000
	Version25 uint32 = 0x00025000
	Version30 uint32 = 0x00030000
)

// Header is the version-agnostic prefix every "post" table carries.
type Header struct {
	Version            table.Fixed
	ItalicAngle        table.Fixed
	UnderlinePosition  int16
	UnderlineThickness int16
	IsFixedPitch       uint32
	MinMemType42       uint32
	MaxMemType42       uint32
	MinMemType1        uint32
	MaxMemType1        uint32
}

// V2 is the version-2.0 extension: a glyph name index into either the 258
// Macintosh standard glyph names or a following pool of Pascal strings.
type V2 struct {
	NumGlyphs      uint16
	GlyphNameIndex []uint16
	Names          []int8
}

// V25 is the deprecated version-2.5 extension.
type V25 struct {
	NumGlyphs uint16
	Offset    []int8
}

// Info is the decoded "post" table.
type Info struct {
	Header
	V2  *V2
	V25 *V25
}

// Read decodes a "post" table from buf.
func Read(buf *table.Buffer) (*Info, error) {
	info := &Info{}
	var err error
	if info.Version, err = buf.Fixed(); err != nil {
		return nil, err
	}
	if info.ItalicAngle, err = buf.Fixed(); err != nil {
		return nil, err
	}
	if info.UnderlinePosition, err = buf.I16(); err != nil {
		return nil, err
	}
	if info.UnderlineThickness, err = buf.I16(); err != nil {
		return nil, err
	}
	if info.IsFixedPitch, err = buf.U32(); err != nil {
		return nil, err
	}
	if info.MinMemType42, err = buf.U32(); err != nil {
		return nil, err
	}
	if info.MaxMemType42, err = buf.U32(); err != nil {
		return nil, err
	}
	if info.MinMemType1, err = buf.U32(); err != nil {
		return nil, err
	}
	if info.MaxMemType1, err = buf.U32(); err != nil {
		return nil, err
	}

	switch uint32(info.Version) {
	case Version20:
		v2 := &V2{}
		if v2.NumGlyphs, err = buf.U16(); err != nil {
			return nil, err
		}
		if v2.GlyphNameIndex, err = buf.U16Vec(int(v2.NumGlyphs)); err != nil {
			return nil, err
		}
		if v2.Names, err = buf.I8Vec(int(v2.NumGlyphs)); err != nil {
			return nil, err
		}
		info.V2 = v2
	case Version25:
		v25 := &V25{}
		if v25.NumGlyphs, err = buf.U16(); err != nil {
			return nil, err
		}
		if v25.Offset, err = buf.I8Vec(int(v25.NumGlyphs)); err != nil {
			return nil, err
		}
		info.V25 = v25
	}
	return info, nil
}
