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

// Package cff decodes the "CFF " Compact Font Format table far enough to
// identify the font and expose its Top DICT metadata: the Name, Top DICT,
// and String INDEX structures, and the Top DICT operand/operator stack
// machine (including CID-keyed font detection). Per-glyph CharString (Type
// 2) decoding is out of scope — CharStrings are retained as an unparsed
// byte region addressed by the Top DICT's charstrings offset, since
// rendering a glyph's outline is a consumer concern distinct from reading
// the table directory this package exists to serve.
package cff

import (
	"strconv"

	"fontkit.dev/sfnt/table"
)

const tableTag = "CFF "

// Index is a CFF INDEX: a sequence of variable-length byte strings, used
// for the Name, Top DICT, String, GlobalSubr, CharStrings, and related
// structures.
type Index struct {
	Data [][]byte
}

// readIndex decodes an INDEX structure at buf's current position.
func readIndex(buf *table.Buffer) (*Index, error) {
	tag := table.MakeTag(tableTag)
	count, err := buf.U16()
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return &Index{}, nil
	}
	offSize, err := buf.U8()
	if err != nil {
		return nil, err
	}
	offsets := make([]int, int(count)+1)
	for i := range offsets {
		var v int
		switch offSize {
		case 1:
			b, err := buf.U8()
			if err != nil {
				return nil, err
			}
			v = int(b)
		case 2:
			b, err := buf.U16()
			if err != nil {
				return nil, err
			}
			v = int(b)
		case 3:
			b, err := buf.U24()
			if err != nil {
				return nil, err
			}
			v = int(b)
		case 4:
			b, err := buf.U32()
			if err != nil {
				return nil, err
			}
			v = int(b)
		default:
			return nil, table.Errorf(table.KindBadFormat, tag, "unsupported INDEX offset size %d", offSize)
		}
		offsets[i] = v
	}
	// Offsets are 1-based relative to the byte preceding the data block.
	dataStart := buf.Offset() - 1
	data := make([][]byte, count)
	for i := range data {
		lo, hi := offsets[i], offsets[i+1]
		if hi < lo {
			return nil, table.Errorf(table.KindBadFormat, tag, "INDEX offsets out of order")
		}
		buf.SetOffset(dataStart + lo)
		b, err := buf.Bytes(hi - lo)
		if err != nil {
			return nil, err
		}
		data[i] = b
	}
	buf.SetOffset(dataStart + offsets[count])
	return &Index{Data: data}, nil
}

func (idx *Index) strings() []string {
	out := make([]string, len(idx.Data))
	for i, d := range idx.Data {
		out[i] = string(d)
	}
	return out
}

// Number is a Top DICT numeric operand: either an exact integer or a
// decoded real (nibble-packed BCD) value.
type Number struct {
	IsInt bool
	Int   int32
	Real  float64
}

// Float64 returns the number's value as a float64 regardless of encoding.
func (n Number) Float64() float64 {
	if n.IsInt {
		return float64(n.Int)
	}
	return n.Real
}

func intNumber(v int32) Number { return Number{IsInt: true, Int: v} }

// CID holds the CIDFont operator group (operators 12 30 through 12 38),
// present only for CID-keyed CFF fonts.
type CID struct {
	Registry        string
	Ordering        string
	Supplement      int32
	CIDFontVersion  Number
	CIDFontRevision Number
	CIDFontType     int32
	CIDCount        int32
	UIDBase         int32
	FDArray         int32
	FDSelect        int32
	FontName        string
}

// TopDict is the decoded Top DICT, the CFF font's primary metadata
// dictionary.
type TopDict struct {
	Version            string
	Notice             string
	Copyright          string
	FullName           string
	FamilyName         string
	Weight             string
	IsFixedPitch       bool
	ItalicAngle        Number
	UnderlinePosition  Number
	UnderlineThickness Number
	PaintType          int32
	CharstringType     int32
	FontMatrix         []Number
	UniqueID           *int32
	FontBBox           []Number
	StrokeWidth        Number
	XUID               []Number
	Charset            int32
	Encoding           int32
	CharStrings        *int32 // offset, from the CFF table start
	Private            *PrivateDictRef
	SyntheticBase      *int32
	PostScript         *string
	BaseFontName       *string
	BaseFontBlend      []Number

	CID *CID
}

// PrivateDictRef is the {size, offset} pair operator 18 carries, locating
// (but not decoding) the Private DICT.
type PrivateDictRef struct {
	Size   int32
	Offset int32
}

func defaultTopDict() TopDict {
	return TopDict{
		ItalicAngle:        intNumber(0),
		UnderlinePosition:  intNumber(-100),
		UnderlineThickness: intNumber(50),
		PaintType:          0,
		CharstringType:     2,
		FontMatrix:         []Number{{Real: 0.001}, intNumber(0), intNumber(0), {Real: 0.001}, intNumber(0), intNumber(0)},
		FontBBox:           []Number{intNumber(0), intNumber(0), intNumber(0), intNumber(0)},
		StrokeWidth:        intNumber(0),
		Charset:            0,
		Encoding:           0,
	}
}

// parseTopDict runs the Top DICT stack machine over raw DICT bytes,
// resolving string SID operands against the standard strings table and the
// font's own String INDEX.
func parseTopDict(raw []byte, strings []string) (*TopDict, error) {
	tag := table.MakeTag(tableTag)
	td := defaultTopDict()
	var stack []Number

	resolveString := func(sid int32) (string, error) {
		if int(sid) < numStandardStrings {
			return standardStrings[sid], nil
		}
		idx := int(sid) - numStandardStrings
		if idx < 0 || idx >= len(strings) {
			return "", table.Errorf(table.KindBadFormat, tag, "SID %d out of range", sid)
		}
		return strings[idx], nil
	}
	popNumber := func() (Number, error) {
		if len(stack) == 0 {
			return Number{}, table.Errorf(table.KindBadFormat, tag, "Top DICT operator with empty operand stack")
		}
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return n, nil
	}
	popInt := func() (int32, error) {
		n, err := popNumber()
		if err != nil {
			return 0, err
		}
		if !n.IsInt {
			return int32(n.Real), nil
		}
		return n.Int, nil
	}
	popString := func() (string, error) {
		sid, err := popInt()
		if err != nil {
			return "", err
		}
		return resolveString(sid)
	}
	array := func() []Number {
		out := append([]Number(nil), stack...)
		return out
	}

	i := 0
	for i < len(raw) {
		b0 := int(raw[i])
		switch {
		case b0 == 12:
			if i+1 >= len(raw) {
				return nil, table.Errorf(table.KindBadFormat, tag, "truncated two-byte Top DICT operator")
			}
			b1 := int(raw[i+1])
			var err error
			switch {
			case b1 == 0:
				td.Copyright, err = popString()
			case b1 == 1:
				var v int32
				v, err = popInt()
				td.IsFixedPitch = v != 0
			case b1 == 2:
				td.ItalicAngle, err = popNumber()
			case b1 == 3:
				td.UnderlinePosition, err = popNumber()
			case b1 == 4:
				td.UnderlineThickness, err = popNumber()
			case b1 == 5:
				td.PaintType, err = popInt()
			case b1 == 6:
				td.CharstringType, err = popInt()
			case b1 == 7:
				td.FontMatrix = array()
			case b1 == 8:
				td.StrokeWidth, err = popNumber()
			case b1 == 20:
				var v int32
				v, err = popInt()
				td.SyntheticBase = &v
			case b1 == 21:
				var s string
				s, err = popString()
				td.PostScript = &s
			case b1 == 22:
				var s string
				s, err = popString()
				td.BaseFontName = &s
			case b1 == 23:
				td.BaseFontBlend = array()
			case b1 >= 30 && b1 <= 38:
				if td.CID == nil {
					td.CID = &CID{CIDCount: 8720}
				}
				switch b1 {
				case 30:
					supplement, e1 := popInt()
					ordering, e2 := popString()
					registry, e3 := popString()
					if e1 != nil {
						err = e1
					} else if e2 != nil {
						err = e2
					} else if e3 != nil {
						err = e3
					} else {
						td.CID.Supplement = supplement
						td.CID.Ordering = ordering
						td.CID.Registry = registry
					}
				case 31:
					td.CID.CIDFontVersion, err = popNumber()
				case 32:
					td.CID.CIDFontRevision, err = popNumber()
				case 33:
					td.CID.CIDFontType, err = popInt()
				case 34:
					td.CID.CIDCount, err = popInt()
				case 35:
					td.CID.UIDBase, err = popInt()
				case 36:
					td.CID.FDArray, err = popInt()
				case 37:
					td.CID.FDSelect, err = popInt()
				case 38:
					td.CID.FontName, err = popString()
				}
			}
			if err != nil {
				return nil, err
			}
			stack = stack[:0]
			i += 2
			continue
		case b0 == 0:
			s, err := popString()
			if err != nil {
				return nil, err
			}
			td.Version = s
		case b0 == 1:
			s, err := popString()
			if err != nil {
				return nil, err
			}
			td.Notice = s
		case b0 == 2:
			s, err := popString()
			if err != nil {
				return nil, err
			}
			td.FullName = s
		case b0 == 3:
			s, err := popString()
			if err != nil {
				return nil, err
			}
			td.FamilyName = s
		case b0 == 4:
			s, err := popString()
			if err != nil {
				return nil, err
			}
			td.Weight = s
		case b0 == 5:
			td.FontBBox = array()
		case b0 == 13:
			v, err := popInt()
			if err != nil {
				return nil, err
			}
			td.UniqueID = &v
		case b0 == 14:
			td.XUID = array()
		case b0 == 15:
			v, err := popInt()
			if err != nil {
				return nil, err
			}
			td.Charset = v
		case b0 == 16:
			v, err := popInt()
			if err != nil {
				return nil, err
			}
			td.Encoding = v
		case b0 == 17:
			v, err := popInt()
			if err != nil {
				return nil, err
			}
			td.CharStrings = &v
		case b0 == 18:
			if len(stack) < 2 {
				return nil, table.Errorf(table.KindBadFormat, tag, "private operator with too few operands")
			}
			offset := stack[len(stack)-1].Int
			size := stack[len(stack)-2].Int
			td.Private = &PrivateDictRef{Size: size, Offset: offset}
		case b0 >= 32 && b0 <= 246:
			stack = append(stack, intNumber(int32(b0-139)))
			i++
			continue
		case b0 >= 247 && b0 <= 250:
			if i+1 >= len(raw) {
				return nil, table.Errorf(table.KindBadFormat, tag, "truncated Top DICT integer operand")
			}
			b1 := int32(raw[i+1])
			stack = append(stack, intNumber(int32(b0-247)*256+b1+108))
			i += 2
			continue
		case b0 >= 251 && b0 <= 254:
			if i+1 >= len(raw) {
				return nil, table.Errorf(table.KindBadFormat, tag, "truncated Top DICT integer operand")
			}
			b1 := int32(raw[i+1])
			stack = append(stack, intNumber(-int32(b0-251)*256-b1-108))
			i += 2
			continue
		case b0 == 28:
			if i+2 >= len(raw) {
				return nil, table.Errorf(table.KindBadFormat, tag, "truncated 16-bit Top DICT integer operand")
			}
			v := int32(int16(uint16(raw[i+1])<<8 | uint16(raw[i+2])))
			stack = append(stack, intNumber(v))
			i += 3
			continue
		case b0 == 29:
			if i+4 >= len(raw) {
				return nil, table.Errorf(table.KindBadFormat, tag, "truncated 32-bit Top DICT integer operand")
			}
			v := int32(uint32(raw[i+1])<<24 | uint32(raw[i+2])<<16 | uint32(raw[i+3])<<8 | uint32(raw[i+4]))
			stack = append(stack, intNumber(v))
			i += 5
			continue
		case b0 == 30:
			n, consumed, err := parseRealOperand(raw[i+1:])
			if err != nil {
				return nil, err
			}
			stack = append(stack, n)
			i += 1 + consumed
			continue
		default:
			return nil, table.Errorf(table.KindBadFormat, tag, "unrecognized Top DICT byte 0x%02x", b0)
		}
		stack = stack[:0]
		i++
	}
	return &td, nil
}

// parseRealOperand decodes a nibble-packed BCD real number starting right
// after the 0x1E (30) opcode byte. Returns the number and how many bytes of
// raw (beyond the opcode) were consumed.
func parseRealOperand(raw []byte) (Number, int, error) {
	tag := table.MakeTag(tableTag)
	var s []byte
	consumed := 0
	for {
		if consumed >= len(raw) {
			return Number{}, 0, table.Errorf(table.KindBadFormat, tag, "truncated Top DICT real operand")
		}
		b := raw[consumed]
		consumed++
		done := false
		for _, nibble := range [2]byte{b >> 4, b & 0x0F} {
			switch {
			case nibble <= 9:
				s = append(s, '0'+nibble)
			case nibble == 0xA:
				s = append(s, '.')
			case nibble == 0xB:
				s = append(s, 'e')
			case nibble == 0xC:
				s = append(s, 'e', '-')
			case nibble == 0xE:
				s = append(s, '-')
			case nibble == 0xF:
				done = true
			default:
				return Number{}, 0, table.Errorf(table.KindBadFormat, tag, "invalid real-operand nibble 0x%x", nibble)
			}
			if done {
				break
			}
		}
		if done {
			break
		}
	}
	f, err := strconv.ParseFloat(string(s), 64)
	if err != nil {
		return Number{}, 0, table.Errorf(table.KindBadFormat, tag, "invalid real operand %q: %v", string(s), err)
	}
	return Number{Real: f}, consumed, nil
}

// Table is the decoded "CFF " table.
type Table struct {
	HeaderSize  uint8
	OffsetSize  uint8
	Name        string
	TopDict     *TopDict
	Strings     []string
	// CharStrings is the font's CharStrings INDEX located via
	// TopDict.CharStrings, one raw Type 2 charstring per glyph. Decoding a
	// charstring into an outline is left to a rendering layer; see the
	// package doc comment.
	CharStrings *Index
}

// IsCID reports whether this is a CID-keyed CFF font.
func (t *Table) IsCID() bool {
	return t.TopDict != nil && t.TopDict.CID != nil
}

// NumGlyphs returns the number of CharStrings (equivalently, glyphs) if
// the CharStrings INDEX was located, or 0 otherwise.
func (t *Table) NumGlyphs() int {
	if t.CharStrings == nil {
		return 0
	}
	return len(t.CharStrings.Data)
}

// Glyph returns the raw Type 2 charstring for glyph gid.
func (t *Table) Glyph(gid int) ([]byte, bool) {
	if t.CharStrings == nil || gid < 0 || gid >= len(t.CharStrings.Data) {
		return nil, false
	}
	return t.CharStrings.Data[gid], true
}

// Read decodes a "CFF " table from buf, which must be positioned at the
// table's start.
func Read(buf *table.Buffer) (*Table, error) {
	cffStart := buf.Offset()
	t := &Table{}

	if _, err := buf.VersionU16(); err != nil {
		return nil, err
	}
	headerSize, err := buf.U8()
	if err != nil {
		return nil, err
	}
	offsetSize, err := buf.U8()
	if err != nil {
		return nil, err
	}
	t.HeaderSize = headerSize
	t.OffsetSize = offsetSize

	buf.SetOffset(cffStart + int(headerSize))

	nameIndex, err := readIndex(buf)
	if err != nil {
		return nil, err
	}
	if len(nameIndex.Data) > 0 {
		t.Name = string(nameIndex.Data[0])
	}

	topDictIndex, err := readIndex(buf)
	if err != nil {
		return nil, err
	}
	var topDictRaw []byte
	if len(topDictIndex.Data) > 0 {
		topDictRaw = topDictIndex.Data[0]
	}

	stringIndex, err := readIndex(buf)
	if err != nil {
		return nil, err
	}
	t.Strings = stringIndex.strings()

	t.TopDict, err = parseTopDict(topDictRaw, t.Strings)
	if err != nil {
		return nil, err
	}

	if t.TopDict.CharStrings != nil {
		buf.SetOffset(cffStart + int(*t.TopDict.CharStrings))
		t.CharStrings, err = readIndex(buf)
		if err != nil {
			return nil, err
		}
	}
	return t, nil
}
