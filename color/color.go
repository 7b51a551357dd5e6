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

// Package color decodes the color glyph table family: COLR version 0
// (layered, palette-indexed outlines), CPAL (the palettes COLR indexes
// into), sbix (embedded bitmap strikes keyed by PPEM), and SVG (inline SVG
// documents per glyph range).
package color

import "fontkit.dev/sfnt/table"

// BaseGlyphRecord names a color glyph's layer run within COLR's shared
// layer list.
type BaseGlyphRecord struct {
	GlyphID         uint16
	FirstLayerIndex uint16
	NumLayers       uint16
}

// LayerRecord is one layer: the outline glyph to draw and the CPAL palette
// entry to fill it with.
type LayerRecord struct {
	GlyphID      uint16
	PaletteIndex uint16
}

// COLR is the decoded "COLR" table (version 0: flat base-glyph/layer
// lists; later versions adding paint graphs are not decoded).
type COLR struct {
	Version          uint16
	BaseGlyphRecords []BaseGlyphRecord
	LayerRecords     []LayerRecord
}

const colrTag = "COLR"

// ReadCOLR decodes a "COLR" table from buf.
func ReadCOLR(buf *table.Buffer) (*COLR, error) {
	tag := table.MakeTag(colrTag)
	tableStart := buf.Offset()

	c := &COLR{}
	var err error
	if c.Version, err = buf.U16(); err != nil {
		return nil, err
	}
	numBaseGlyphRecords, err := buf.U16()
	if err != nil {
		return nil, err
	}
	baseGlyphRecordsOffset, err := buf.U32()
	if err != nil {
		return nil, err
	}
	layerRecordsOffset, err := buf.U32()
	if err != nil {
		return nil, err
	}
	numLayerRecords, err := buf.U16()
	if err != nil {
		return nil, err
	}
	if c.Version != 0 {
		return c, table.Errorf(table.KindBadFormat, tag, "unsupported COLR version %d", c.Version)
	}

	buf.SetOffsetFrom(tableStart, int(baseGlyphRecordsOffset))
	c.BaseGlyphRecords = make([]BaseGlyphRecord, numBaseGlyphRecords)
	for i := range c.BaseGlyphRecords {
		var r BaseGlyphRecord
		if r.GlyphID, err = buf.U16(); err != nil {
			return nil, err
		}
		if r.FirstLayerIndex, err = buf.U16(); err != nil {
			return nil, err
		}
		if r.NumLayers, err = buf.U16(); err != nil {
			return nil, err
		}
		c.BaseGlyphRecords[i] = r
	}

	buf.SetOffsetFrom(tableStart, int(layerRecordsOffset))
	c.LayerRecords = make([]LayerRecord, numLayerRecords)
	for i := range c.LayerRecords {
		var r LayerRecord
		if r.GlyphID, err = buf.U16(); err != nil {
			return nil, err
		}
		if r.PaletteIndex, err = buf.U16(); err != nil {
			return nil, err
		}
		c.LayerRecords[i] = r
	}
	return c, nil
}

// ColorRecord is one BGRA palette entry.
type ColorRecord struct {
	Blue, Green, Red, Alpha uint8
}

// CPAL is the decoded "CPAL" color palette table.
type CPAL struct {
	Version              uint16
	NumPaletteEntries    uint16
	ColorRecords         []ColorRecord
	ColorRecordIndices   []uint16 // per palette, index of its first color record

	// Present when Version == 1.
	PaletteTypes  []uint32
	PaletteLabels []uint16
	PaletteEntryLabels []uint16
}

const cpalTag = "CPAL"

// ReadCPAL decodes a "CPAL" table from buf.
func ReadCPAL(buf *table.Buffer) (*CPAL, error) {
	tableStart := buf.Offset()
	c := &CPAL{}
	var err error
	if c.Version, err = buf.U16(); err != nil {
		return nil, err
	}
	if c.NumPaletteEntries, err = buf.U16(); err != nil {
		return nil, err
	}
	numPalettes, err := buf.U16()
	if err != nil {
		return nil, err
	}
	numColorRecords, err := buf.U16()
	if err != nil {
		return nil, err
	}
	colorRecordsArrayOffset, err := buf.U32()
	if err != nil {
		return nil, err
	}
	if c.ColorRecordIndices, err = buf.U16Vec(int(numPalettes)); err != nil {
		return nil, err
	}

	if c.Version == 1 {
		paletteTypesArrayOffset, err := buf.U32()
		if err != nil {
			return nil, err
		}
		paletteLabelsArrayOffset, err := buf.U32()
		if err != nil {
			return nil, err
		}
		paletteEntryLabelsArrayOffset, err := buf.U32()
		if err != nil {
			return nil, err
		}
		if paletteTypesArrayOffset != 0 {
			buf.SetOffsetFrom(tableStart, int(paletteTypesArrayOffset))
			if c.PaletteTypes, err = readU32Vec(buf, int(numPalettes)); err != nil {
				return nil, err
			}
		}
		if paletteLabelsArrayOffset != 0 {
			buf.SetOffsetFrom(tableStart, int(paletteLabelsArrayOffset))
			if c.PaletteLabels, err = buf.U16Vec(int(numPalettes)); err != nil {
				return nil, err
			}
		}
		if paletteEntryLabelsArrayOffset != 0 {
			buf.SetOffsetFrom(tableStart, int(paletteEntryLabelsArrayOffset))
			if c.PaletteEntryLabels, err = buf.U16Vec(int(c.NumPaletteEntries)); err != nil {
				return nil, err
			}
		}
	}

	buf.SetOffsetFrom(tableStart, int(colorRecordsArrayOffset))
	c.ColorRecords = make([]ColorRecord, numColorRecords)
	for i := range c.ColorRecords {
		var r ColorRecord
		if r.Blue, err = buf.U8(); err != nil {
			return nil, err
		}
		if r.Green, err = buf.U8(); err != nil {
			return nil, err
		}
		if r.Red, err = buf.U8(); err != nil {
			return nil, err
		}
		if r.Alpha, err = buf.U8(); err != nil {
			return nil, err
		}
		c.ColorRecords[i] = r
	}
	return c, nil
}

func readU32Vec(buf *table.Buffer, n int) ([]uint32, error) {
	out := make([]uint32, n)
	for i := range out {
		v, err := buf.U32()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// Strike is one sbix bitmap strike: all glyph images rendered at one PPEM.
type Strike struct {
	PPEM  uint16
	PPI   uint16
	Glyphs map[int]*GlyphData // keyed by glyph ID
}

// GlyphData is one sbix glyph image: an origin offset and a tagged image
// payload (commonly "png ", "jpg ", "tiff", or "dupe" aliasing another
// glyph).
type GlyphData struct {
	OriginOffsetX int16
	OriginOffsetY int16
	GraphicType   table.Tag
	Data          []byte
}

// Sbix is the decoded "sbix" table.
type Sbix struct {
	Version uint16
	Flags   uint16
	Strikes []Strike
}

const sbixTag = "sbix"

// ReadSbix decodes an "sbix" table from buf. numGlyphs is read from the
// sibling "maxp" table and bounds each strike's glyph data offset array.
func ReadSbix(buf *table.Buffer, numGlyphs int) (*Sbix, error) {
	tableStart := buf.Offset()
	s := &Sbix{}
	var err error
	if s.Version, err = buf.U16(); err != nil {
		return nil, err
	}
	if s.Flags, err = buf.U16(); err != nil {
		return nil, err
	}
	numStrikes, err := buf.U32()
	if err != nil {
		return nil, err
	}
	strikeOffsets, err := readU32Vec(buf, int(numStrikes))
	if err != nil {
		return nil, err
	}

	s.Strikes = make([]Strike, numStrikes)
	for i, strikeOffset := range strikeOffsets {
		buf.SetOffsetFrom(tableStart, int(strikeOffset))
		strikeStart := buf.Offset()
		strike := Strike{Glyphs: map[int]*GlyphData{}}
		if strike.PPEM, err = buf.U16(); err != nil {
			return nil, err
		}
		if strike.PPI, err = buf.U16(); err != nil {
			return nil, err
		}
		glyphDataOffsets, err := readU32Vec(buf, numGlyphs+1)
		if err != nil {
			return nil, err
		}
		for gid := 0; gid < numGlyphs; gid++ {
			start, end := glyphDataOffsets[gid], glyphDataOffsets[gid+1]
			if start == end {
				continue
			}
			buf.SetOffset(strikeStart + int(start))
			gd := &GlyphData{}
			if gd.OriginOffsetX, err = buf.I16(); err != nil {
				return nil, err
			}
			if gd.OriginOffsetY, err = buf.I16(); err != nil {
				return nil, err
			}
			if gd.GraphicType, err = buf.Tag(); err != nil {
				return nil, err
			}
			dataLen := int(end-start) - 8
			if dataLen < 0 {
				return nil, table.Errorf(table.KindBadFormat, table.MakeTag(sbixTag), "glyph %d has negative data length", gid)
			}
			if gd.Data, err = buf.Bytes(dataLen); err != nil {
				return nil, err
			}
			strike.Glyphs[gid] = gd
		}
		s.Strikes[i] = strike
	}
	return s, nil
}

// SVGDocumentRecord locates one glyph range's SVG document within the SVG
// table's document list.
type SVGDocumentRecord struct {
	StartGlyphID uint16
	EndGlyphID   uint16
	Data         []byte // gzip-compressed documents (1F 8B 08 prefix) are stored inflated
}

// SVG is the decoded "SVG " table.
type SVG struct {
	Version   uint16
	Documents []SVGDocumentRecord
}

// ReadSVG decodes an "SVG " table from buf.
func ReadSVG(buf *table.Buffer) (*SVG, error) {
	tableStart := buf.Offset()
	s := &SVG{}
	var err error
	if s.Version, err = buf.U16(); err != nil {
		return nil, err
	}
	svgDocumentListOffset, err := buf.U32()
	if err != nil {
		return nil, err
	}
	buf.SkipU32(1) // reserved

	buf.SetOffsetFrom(tableStart, int(svgDocumentListOffset))
	listStart := buf.Offset()
	numEntries, err := buf.U16()
	if err != nil {
		return nil, err
	}
	type rawEntry struct {
		startGlyphID, endGlyphID uint16
		svgDocOffset, svgDocLength uint32
	}
	raws := make([]rawEntry, numEntries)
	for i := range raws {
		var e rawEntry
		if e.startGlyphID, err = buf.U16(); err != nil {
			return nil, err
		}
		if e.endGlyphID, err = buf.U16(); err != nil {
			return nil, err
		}
		if e.svgDocOffset, err = buf.U32(); err != nil {
			return nil, err
		}
		if e.svgDocLength, err = buf.U32(); err != nil {
			return nil, err
		}
		raws[i] = e
	}
	s.Documents = make([]SVGDocumentRecord, numEntries)
	for i, e := range raws {
		data, err := buf.SliceAbsolute(listStart+int(e.svgDocOffset), listStart+int(e.svgDocOffset)+int(e.svgDocLength))
		if err != nil {
			return nil, err
		}
		if len(data) >= 3 && data[0] == 0x1F && data[1] == 0x8B && data[2] == 0x08 {
			inflated, err := table.NewBuffer(data).GzDecompress(len(data))
			if err != nil {
				return nil, err
			}
			if data, err = inflated.Bytes(inflated.Len()); err != nil {
				return nil, err
			}
		}
		s.Documents[i] = SVGDocumentRecord{StartGlyphID: e.startGlyphID, EndGlyphID: e.endGlyphID, Data: data}
	}
	return s, nil
}
