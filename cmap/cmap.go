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

// Package cmap decodes the "cmap" character-to-glyph mapping table: the
// encoding record header, plus a format-specific decoder for each of the
// nine recognized subtable formats. Distinct (platform, encoding) records
// that share one byte offset are decoded once and shared, as real fonts
// routinely point multiple records at the same subtable.
package cmap

import "fontkit.dev/sfnt/table"

// EncodingRecord names one (platform, encoding) pairing and the byte
// offset, relative to the start of the "cmap" table, of its subtable.
type EncodingRecord struct {
	PlatformID uint16
	EncodingID uint16
	Offset     uint32
}

// Table is the decoded "cmap" table.
type Table struct {
	Version   uint16
	Encodings []EncodingRecord

	// Subtables is keyed by the byte offset (relative to the table start)
	// subtables were read from, so encoding records that share an offset
	// share a decoded Subtable.
	Subtables map[uint32]*Subtable
}

// Find returns the subtable registered for (platformID, encodingID), if
// any encoding record names that pair.
func (t *Table) Find(platformID, encodingID uint16) (*Subtable, bool) {
	for _, enc := range t.Encodings {
		if enc.PlatformID == platformID && enc.EncodingID == encodingID {
			sub, ok := t.Subtables[enc.Offset]
			return sub, ok
		}
	}
	return nil, false
}

// Subtable holds the decoded payload for exactly one cmap format. Only the
// field matching Format is non-nil.
type Subtable struct {
	Format uint16

	F0  *Format0
	F2  *Format2
	F4  *Format4
	F6  *Format6
	F8  *Format8
	F10 *Format10
	F12 *Format12
	F13 *Format13
	F14 *Format14
}

// Map returns the code-point-to-glyph-ID mapping for formats that define
// one. Format 2 (high-byte mapping, multi-byte charsets) and format 14
// (variation selectors) are not flat code->gid maps and return nil; callers
// that need those decode the format-specific struct directly.
func (s *Subtable) Map() map[uint32]uint32 {
	switch s.Format {
	case 0:
		return s.F0.Map
	case 4:
		return s.F4.Map
	case 6:
		return s.F6.Map
	case 8:
		return s.F8.Map
	case 10:
		return s.F10.Map
	case 12:
		return s.F12.Map
	case 13:
		return s.F13.Map
	default:
		return nil
	}
}

const tableTag = "cmap"

// Read decodes a "cmap" table from buf, which must be positioned at the
// start of the table.
func Read(buf *table.Buffer) (*Table, error) {
	tableStart := buf.Offset()

	tbl := &Table{Subtables: map[uint32]*Subtable{}}
	var err error
	if tbl.Version, err = buf.U16(); err != nil {
		return nil, err
	}
	numTables, err := buf.U16()
	if err != nil {
		return nil, err
	}
	tbl.Encodings = make([]EncodingRecord, numTables)
	for i := range tbl.Encodings {
		var enc EncodingRecord
		if enc.PlatformID, err = buf.U16(); err != nil {
			return nil, err
		}
		if enc.EncodingID, err = buf.U16(); err != nil {
			return nil, err
		}
		if enc.Offset, err = buf.U32(); err != nil {
			return nil, err
		}
		tbl.Encodings[i] = enc
	}

	for _, enc := range tbl.Encodings {
		if _, done := tbl.Subtables[enc.Offset]; done {
			continue
		}
		buf.SetOffsetFrom(tableStart, int(enc.Offset))
		sub, err := readSubtable(buf, tableStart, int(enc.Offset))
		if err != nil {
			return nil, err
		}
		tbl.Subtables[enc.Offset] = sub
	}
	return tbl, nil
}

func readSubtable(buf *table.Buffer, tableStart, subtableStart int) (*Subtable, error) {
	t := table.MakeTag(tableTag)
	format, err := buf.U16()
	if err != nil {
		return nil, err
	}
	sub := &Subtable{Format: format}
	switch format {
	case 0:
		sub.F0, err = readFormat0(buf)
	case 2:
		sub.F2, err = readFormat2(buf)
	case 4:
		sub.F4, err = readFormat4(buf)
	case 6:
		sub.F6, err = readFormat6(buf)
	case 8:
		sub.F8, err = readFormat8(buf)
	case 10:
		sub.F10, err = readFormat10(buf)
	case 12:
		sub.F12, err = readFormat12(buf)
	case 13:
		sub.F13, err = readFormat13(buf)
	case 14:
		sub.F14, err = readFormat14(buf)
	default:
		return nil, table.Errorf(table.KindBadFormat, t, "unsupported cmap subtable format %d", format)
	}
	if err != nil {
		return nil, err
	}
	return sub, nil
}

// Format0 is the byte encoding table: a flat 256-entry glyph index array.
type Format0 struct {
	Length       uint16
	Language     uint16
	GlyphIDArray [256]uint8
	Map          map[uint32]uint32
}

func readFormat0(buf *table.Buffer) (*Format0, error) {
	f := &Format0{}
	var err error
	if f.Length, err = buf.U16(); err != nil {
		return nil, err
	}
	if f.Language, err = buf.U16(); err != nil {
		return nil, err
	}
	raw, err := buf.Bytes(256)
	if err != nil {
		return nil, err
	}
	f.Map = make(map[uint32]uint32, 256)
	for i, gid := range raw {
		f.GlyphIDArray[i] = gid
		f.Map[uint32(i)] = uint32(gid)
	}
	return f, nil
}

// SubHeader is one high-byte mapping entry in a Format2 table.
type SubHeader struct {
	FirstCode       uint16
	EntryCount      uint16
	IDDelta         int16
	IDRangeOffset   uint16
	GlyphIDArray    []uint16
}

// Format2 is the high-byte mapping through table subtable, used by legacy
// multi-byte CJK encodings.
type Format2 struct {
	Length          uint16
	Language        uint16
	SubHeaderKeys   [256]uint16
	SubHeaders      []SubHeader
}

func readFormat2(buf *table.Buffer) (*Format2, error) {
	f := &Format2{}
	var err error
	if f.Length, err = buf.U16(); err != nil {
		return nil, err
	}
	if f.Language, err = buf.U16(); err != nil {
		return nil, err
	}
	keys, err := buf.U16Vec(256)
	if err != nil {
		return nil, err
	}
	var maxKey uint16
	for i, k := range keys {
		f.SubHeaderKeys[i] = k
		if k > maxKey {
			maxKey = k
		}
	}
	numSubHeaders := int(maxKey)/8 + 1
	f.SubHeaders = make([]SubHeader, numSubHeaders)
	for i := range f.SubHeaders {
		var sh SubHeader
		if sh.FirstCode, err = buf.U16(); err != nil {
			return nil, err
		}
		if sh.EntryCount, err = buf.U16(); err != nil {
			return nil, err
		}
		if sh.IDDelta, err = buf.I16(); err != nil {
			return nil, err
		}
		fieldAddr := buf.Offset()
		if sh.IDRangeOffset, err = buf.U16(); err != nil {
			return nil, err
		}
		save := buf.Offset()
		buf.SetOffset(fieldAddr + int(sh.IDRangeOffset))
		sh.GlyphIDArray, err = buf.U16Vec(int(sh.EntryCount))
		if err != nil {
			return nil, err
		}
		buf.SetOffset(save)
		f.SubHeaders[i] = sh
	}
	return f, nil
}

// Format4 is the segment-mapping-to-delta table, the most common cmap
// subtable for BMP (platform 3, encoding 1) and Unicode (platform 0)
// encodings.
type Format4 struct {
	Length        uint16
	Language      uint16
	SegCountX2    uint16
	SearchRange   uint16
	EntrySelector uint16
	RangeShift    uint16
	EndCode       []uint16
	StartCode     []uint16
	IDDelta       []int16
	IDRangeOffset []uint16
	Map           map[uint32]uint32
}

func readFormat4(buf *table.Buffer) (*Format4, error) {
	f := &Format4{}
	var err error
	if f.Length, err = buf.U16(); err != nil {
		return nil, err
	}
	if f.Language, err = buf.U16(); err != nil {
		return nil, err
	}
	if f.SegCountX2, err = buf.U16(); err != nil {
		return nil, err
	}
	if f.SearchRange, err = buf.U16(); err != nil {
		return nil, err
	}
	if f.EntrySelector, err = buf.U16(); err != nil {
		return nil, err
	}
	if f.RangeShift, err = buf.U16(); err != nil {
		return nil, err
	}
	segCount := int(f.SegCountX2) / 2
	if f.EndCode, err = buf.U16Vec(segCount); err != nil {
		return nil, err
	}
	buf.SkipU16(1) // reservedPad
	if f.StartCode, err = buf.U16Vec(segCount); err != nil {
		return nil, err
	}
	if f.IDDelta, err = buf.I16Vec(segCount); err != nil {
		return nil, err
	}
	idRangeOffsetFieldStart := buf.Offset()
	if f.IDRangeOffset, err = buf.U16Vec(segCount); err != nil {
		return nil, err
	}

	f.Map = make(map[uint32]uint32)
	for i := 0; i < segCount; i++ {
		start, end := uint32(f.StartCode[i]), uint32(f.EndCode[i])
		for c := start; c <= end; c++ {
			if c == 0xFFFF {
				continue
			}
			var gid uint32
			if f.IDRangeOffset[i] == 0 {
				gid = uint32(int32(c)+int32(f.IDDelta[i])) % 0x10000
			} else {
				addr := idRangeOffsetFieldStart + i*2 + int(f.IDRangeOffset[i]) + int(c-start)*2
				save := buf.Offset()
				buf.SetOffset(addr)
				raw, err := buf.U16()
				buf.SetOffset(save)
				if err != nil {
					return nil, err
				}
				if raw != 0 {
					gid = uint32(int32(raw)+int32(f.IDDelta[i])) % 0x10000
				}
			}
			f.Map[c] = gid
		}
	}
	return f, nil
}

// Format6 is the trimmed table mapping: a dense run of consecutive codes.
type Format6 struct {
	Length       uint16
	Language     uint16
	FirstCode    uint16
	EntryCount   uint16
	GlyphIDArray []uint16
	Map          map[uint32]uint32
}

func readFormat6(buf *table.Buffer) (*Format6, error) {
	f := &Format6{}
	var err error
	if f.Length, err = buf.U16(); err != nil {
		return nil, err
	}
	if f.Language, err = buf.U16(); err != nil {
		return nil, err
	}
	if f.FirstCode, err = buf.U16(); err != nil {
		return nil, err
	}
	if f.EntryCount, err = buf.U16(); err != nil {
		return nil, err
	}
	if f.GlyphIDArray, err = buf.U16Vec(int(f.EntryCount)); err != nil {
		return nil, err
	}
	f.Map = make(map[uint32]uint32, len(f.GlyphIDArray))
	for i, gid := range f.GlyphIDArray {
		f.Map[uint32(f.FirstCode)+uint32(i)] = uint32(gid)
	}
	return f, nil
}

// SequentialMapGroup is a contiguous {startCharCode, endCharCode,
// startGlyphID} run used by formats 8 and 12.
type SequentialMapGroup struct {
	StartCharCode uint32
	EndCharCode   uint32
	StartGlyphID  uint32
}

func readSequentialMapGroup(buf *table.Buffer) (SequentialMapGroup, error) {
	var g SequentialMapGroup
	var err error
	if g.StartCharCode, err = buf.U32(); err != nil {
		return g, err
	}
	if g.EndCharCode, err = buf.U32(); err != nil {
		return g, err
	}
	if g.StartGlyphID, err = buf.U32(); err != nil {
		return g, err
	}
	return g, nil
}

// Format8 is the mixed 16/32-bit coverage table.
type Format8 struct {
	Length   uint32
	Language uint32
	Is32     [8192]byte
	Groups   []SequentialMapGroup
	Map      map[uint32]uint32
}

func readFormat8(buf *table.Buffer) (*Format8, error) {
	buf.SkipU16(1) // reserved
	f := &Format8{}
	var err error
	if f.Length, err = buf.U32(); err != nil {
		return nil, err
	}
	if f.Language, err = buf.U32(); err != nil {
		return nil, err
	}
	is32, err := buf.Bytes(8192)
	if err != nil {
		return nil, err
	}
	copy(f.Is32[:], is32)
	numGroups, err := buf.U32()
	if err != nil {
		return nil, err
	}
	f.Groups = make([]SequentialMapGroup, numGroups)
	f.Map = map[uint32]uint32{}
	for i := range f.Groups {
		g, err := readSequentialMapGroup(buf)
		if err != nil {
			return nil, err
		}
		f.Groups[i] = g
		for c := g.StartCharCode; c <= g.EndCharCode; c++ {
			f.Map[c] = g.StartGlyphID + (c - g.StartCharCode)
		}
	}
	return f, nil
}

// Format10 is the trimmed array covering an arbitrary contiguous range of
// 32-bit character codes.
type Format10 struct {
	Length        uint32
	Language      uint32
	StartCharCode uint32
	NumChars      uint32
	Glyphs        []uint16
	Map           map[uint32]uint32
}

func readFormat10(buf *table.Buffer) (*Format10, error) {
	buf.SkipU16(1) // reserved
	f := &Format10{}
	var err error
	if f.Length, err = buf.U32(); err != nil {
		return nil, err
	}
	if f.Language, err = buf.U32(); err != nil {
		return nil, err
	}
	if f.StartCharCode, err = buf.U32(); err != nil {
		return nil, err
	}
	if f.NumChars, err = buf.U32(); err != nil {
		return nil, err
	}
	if f.Glyphs, err = buf.U16Vec(int(f.NumChars)); err != nil {
		return nil, err
	}
	f.Map = make(map[uint32]uint32, len(f.Glyphs))
	for i, gid := range f.Glyphs {
		f.Map[f.StartCharCode+uint32(i)] = uint32(gid)
	}
	return f, nil
}

// Format12 is the segmented coverage table for full Unicode (including
// supplementary planes).
type Format12 struct {
	Length   uint32
	Language uint32
	Groups   []SequentialMapGroup
	Map      map[uint32]uint32
}

func readFormat12(buf *table.Buffer) (*Format12, error) {
	buf.SkipU16(1) // reserved
	f := &Format12{}
	var err error
	if f.Length, err = buf.U32(); err != nil {
		return nil, err
	}
	if f.Language, err = buf.U32(); err != nil {
		return nil, err
	}
	numGroups, err := buf.U32()
	if err != nil {
		return nil, err
	}
	f.Groups = make([]SequentialMapGroup, numGroups)
	f.Map = map[uint32]uint32{}
	for i := range f.Groups {
		g, err := readSequentialMapGroup(buf)
		if err != nil {
			return nil, err
		}
		f.Groups[i] = g
		for c := g.StartCharCode; c <= g.EndCharCode; c++ {
			f.Map[c] = g.StartGlyphID + (c - g.StartCharCode)
		}
	}
	return f, nil
}

// ConstantMapGroup is a contiguous character range that all maps to one
// glyph ID, used by format 13 (commonly for "last resort" fonts).
type ConstantMapGroup struct {
	StartCharCode uint32
	EndCharCode   uint32
	GlyphID       uint32
}

// Format13 is the many-to-one range mapping table.
type Format13 struct {
	Length   uint32
	Language uint32
	Groups   []ConstantMapGroup
	Map      map[uint32]uint32
}

func readFormat13(buf *table.Buffer) (*Format13, error) {
	buf.SkipU16(1) // reserved
	f := &Format13{}
	var err error
	if f.Length, err = buf.U32(); err != nil {
		return nil, err
	}
	if f.Language, err = buf.U32(); err != nil {
		return nil, err
	}
	numGroups, err := buf.U32()
	if err != nil {
		return nil, err
	}
	f.Groups = make([]ConstantMapGroup, numGroups)
	f.Map = map[uint32]uint32{}
	for i := range f.Groups {
		var g ConstantMapGroup
		if g.StartCharCode, err = buf.U32(); err != nil {
			return nil, err
		}
		if g.EndCharCode, err = buf.U32(); err != nil {
			return nil, err
		}
		if g.GlyphID, err = buf.U32(); err != nil {
			return nil, err
		}
		f.Groups[i] = g
		for c := g.StartCharCode; c <= g.EndCharCode; c++ {
			f.Map[c] = g.GlyphID
		}
	}
	return f, nil
}

// VariationSelector names one Unicode variation selector and the (possibly
// absent) default/non-default UVS tables describing its glyph mappings.
// The UVS tables themselves are not decoded further; this core keeps their
// offsets for a higher layer to resolve.
type VariationSelector struct {
	VarSelector         table.Uint24
	DefaultUVSOffset    uint32
	NonDefaultUVSOffset uint32
}

// Format14 is the Unicode variation sequences subtable.
type Format14 struct {
	Length        uint32
	VarSelectors  []VariationSelector
}

func readFormat14(buf *table.Buffer) (*Format14, error) {
	f := &Format14{}
	var err error
	if f.Length, err = buf.U32(); err != nil {
		return nil, err
	}
	numVarSelectors, err := buf.U32()
	if err != nil {
		return nil, err
	}
	f.VarSelectors = make([]VariationSelector, numVarSelectors)
	for i := range f.VarSelectors {
		var vs VariationSelector
		if vs.VarSelector, err = buf.U24(); err != nil {
			return nil, err
		}
		if vs.DefaultUVSOffset, err = buf.U32(); err != nil {
			return nil, err
		}
		if vs.NonDefaultUVSOffset, err = buf.U32(); err != nil {
			return nil, err
		}
		f.VarSelectors[i] = vs
	}
	return f, nil
}
