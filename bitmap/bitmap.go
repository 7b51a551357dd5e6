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

// Package bitmap decodes the embedded bitmap table family: EBLC/CBLC
// (bitmap location: the strike size tables and each strike's
// index-subtable array; the IndexSubtable headers and bodies those arrays
// point at are not decoded) and EBDT/CBDT (the bitmap image payloads
// themselves). CBLC/CBDT (color
// bitmaps, used by sbix-less color emoji fonts) share an identical layout
// with EBLC/EBDT and are decoded with the same code.
package bitmap

import (
	"golang.org/x/exp/slices"

	"fontkit.dev/sfnt/table"
)

// SbitLineMetrics describes ascent/descent/advance metrics for one
// orientation (horizontal or vertical) at one strike size.
type SbitLineMetrics struct {
	Ascender              int8
	Descender             int8
	WidthMax              uint8
	CaretSlopeNumerator   int8
	CaretSlopeDenominator int8
	CaretOffset           int8
	MinOriginSB           int8
	MinAdvanceSB          int8
	MaxBeforeBL           int8
	MinAfterBL            int8
}

func readSbitLineMetrics(buf *table.Buffer) (SbitLineMetrics, error) {
	var m SbitLineMetrics
	fields := []*int8{
		&m.Ascender, &m.Descender,
	}
	for _, f := range fields {
		v, err := buf.I8()
		if err != nil {
			return m, err
		}
		*f = v
	}
	w, err := buf.U8()
	if err != nil {
		return m, err
	}
	m.WidthMax = w
	rest := []*int8{
		&m.CaretSlopeNumerator, &m.CaretSlopeDenominator, &m.CaretOffset,
		&m.MinOriginSB, &m.MinAdvanceSB, &m.MaxBeforeBL, &m.MinAfterBL,
	}
	for _, f := range rest {
		v, err := buf.I8()
		if err != nil {
			return m, err
		}
		*f = v
	}
	buf.SkipU8(2) // pad1, pad2
	return m, nil
}

// IndexSubTableArray is one {firstGlyphIndex, lastGlyphIndex} range and the
// offset (relative to the BitmapSizeTable's indexSubTableArrayOffset) of
// its IndexSubtable.
type IndexSubTableArray struct {
	FirstGlyphIndex uint16
	LastGlyphIndex  uint16
	AdditionalOffsetToIndexSubtable uint32
}

// SizeTable is one BitmapSizeTable entry: the strike's PPEM, bit depth, and
// the index subtables that locate its glyph images.
type SizeTable struct {
	IndexSubTableArrayOffset uint32
	IndexTablesSize          uint32
	NumberOfIndexSubTables   uint32
	ColorRef                 uint32
	Hori, Vert               SbitLineMetrics
	StartGlyphIndex          uint16
	EndGlyphIndex            uint16
	PPEMX, PPEMY             uint8
	BitDepth                 uint8
	Flags                    int8

	IndexSubTables []IndexSubTableArray
}

// Location is the decoded EBLC/CBLC table.
type Location struct {
	MajorVersion, MinorVersion uint16
	Sizes                      []SizeTable
}

// ReadLocation decodes an EBLC/CBLC table from buf.
func ReadLocation(buf *table.Buffer) (*Location, error) {
	tableStart := buf.Offset()

	loc := &Location{}
	var err error
	if loc.MajorVersion, err = buf.U16(); err != nil {
		return nil, err
	}
	if loc.MinorVersion, err = buf.U16(); err != nil {
		return nil, err
	}
	numSizes, err := buf.U32()
	if err != nil {
		return nil, err
	}
	loc.Sizes = make([]SizeTable, numSizes)
	for i := range loc.Sizes {
		var s SizeTable
		if s.IndexSubTableArrayOffset, err = buf.U32(); err != nil {
			return nil, err
		}
		if s.IndexTablesSize, err = buf.U32(); err != nil {
			return nil, err
		}
		if s.NumberOfIndexSubTables, err = buf.U32(); err != nil {
			return nil, err
		}
		if s.ColorRef, err = buf.U32(); err != nil {
			return nil, err
		}
		if s.Hori, err = readSbitLineMetrics(buf); err != nil {
			return nil, err
		}
		if s.Vert, err = readSbitLineMetrics(buf); err != nil {
			return nil, err
		}
		if s.StartGlyphIndex, err = buf.U16(); err != nil {
			return nil, err
		}
		if s.EndGlyphIndex, err = buf.U16(); err != nil {
			return nil, err
		}
		if s.PPEMX, err = buf.U8(); err != nil {
			return nil, err
		}
		if s.PPEMY, err = buf.U8(); err != nil {
			return nil, err
		}
		if s.BitDepth, err = buf.U8(); err != nil {
			return nil, err
		}
		if s.Flags, err = buf.I8(); err != nil {
			return nil, err
		}
		loc.Sizes[i] = s
	}

	for i := range loc.Sizes {
		s := &loc.Sizes[i]
		buf.SetOffsetFrom(tableStart, int(s.IndexSubTableArrayOffset))
		s.IndexSubTables = make([]IndexSubTableArray, s.NumberOfIndexSubTables)
		for j := range s.IndexSubTables {
			var a IndexSubTableArray
			if a.FirstGlyphIndex, err = buf.U16(); err != nil {
				return nil, err
			}
			if a.LastGlyphIndex, err = buf.U16(); err != nil {
				return nil, err
			}
			if a.AdditionalOffsetToIndexSubtable, err = buf.U32(); err != nil {
				return nil, err
			}
			s.IndexSubTables[j] = a
		}
	}
	return loc, nil
}

// IndexSubTableFor returns the IndexSubTableArray covering gid, if any.
// IndexSubTables are stored in ascending FirstGlyphIndex order, so this
// binary-searches rather than scanning linearly.
func (s *SizeTable) IndexSubTableFor(gid uint16) (*IndexSubTableArray, bool) {
	i, found := slices.BinarySearchFunc(s.IndexSubTables, gid, func(a IndexSubTableArray, gid uint16) int {
		switch {
		case gid < a.FirstGlyphIndex:
			return 1
		case gid > a.LastGlyphIndex:
			return -1
		default:
			return 0
		}
	})
	if !found {
		return nil, false
	}
	return &s.IndexSubTables[i], true
}

// SmallGlyphMetrics is the compact per-glyph metrics record used by image
// formats 1, 2, and 5 (and stored inline ahead of the bitmap for 1 and 2).
type SmallGlyphMetrics struct {
	Height, Width       uint8
	BearingX, BearingY  int8
	Advance             uint8
}

func readSmallGlyphMetrics(buf *table.Buffer) (SmallGlyphMetrics, error) {
	var m SmallGlyphMetrics
	var err error
	if m.Height, err = buf.U8(); err != nil {
		return m, err
	}
	if m.Width, err = buf.U8(); err != nil {
		return m, err
	}
	if m.BearingX, err = buf.I8(); err != nil {
		return m, err
	}
	if m.BearingY, err = buf.I8(); err != nil {
		return m, err
	}
	if m.Advance, err = buf.U8(); err != nil {
		return m, err
	}
	return m, nil
}

// GlyphBitmap is one decoded EBDT/CBDT image: its small metrics (when the
// format carries them inline) and format-specific payload. The bit-aligned
// and byte-aligned pixel data is kept as raw bytes; expanding it to pixels
// is a rendering concern outside this table's scope.
type GlyphBitmap struct {
	ImageFormat uint16
	Metrics     SmallGlyphMetrics
	Data        []byte // bit-aligned (format 2, 5) or byte-aligned (format 1) bitmap data
	PNGData     []byte // format 17: raw PNG bytes
}

// ReadGlyphBitmap decodes one EBDT/CBDT glyph image at buf's current
// position, which must already be positioned at imageDataOffset +
// glyph-specific offset. dataLen bounds the image's byte length within the
// EBDT/CBDT table, derived from consecutive IndexSubtable offsets.
func ReadGlyphBitmap(buf *table.Buffer, imageFormat uint16, dataLen int) (*GlyphBitmap, error) {
	g := &GlyphBitmap{ImageFormat: imageFormat}
	tag := table.MakeTag("EBDT")
	var err error
	switch imageFormat {
	case 1, 2:
		if g.Metrics, err = readSmallGlyphMetrics(buf); err != nil {
			return nil, err
		}
		remaining := dataLen - 5
		if remaining < 0 {
			return nil, table.Errorf(table.KindBadFormat, tag, "glyph bitmap data length too short for format %d", imageFormat)
		}
		if g.Data, err = buf.Bytes(remaining); err != nil {
			return nil, err
		}
	case 5:
		if g.Data, err = buf.Bytes(dataLen); err != nil {
			return nil, err
		}
	case 17:
		pngLen, err := buf.U32()
		if err != nil {
			return nil, err
		}
		if g.PNGData, err = buf.Bytes(int(pngLen)); err != nil {
			return nil, err
		}
	default:
		return nil, table.Errorf(table.KindUnsupportedImageFormat, tag, "unsupported bitmap image format %d", imageFormat)
	}
	return g, nil
}
