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

// Package dsig decodes two small, loosely related tables: "DSIG" (digital
// signature records, parsed for structure only — signature validation is
// out of scope for a font reader) and "LTSH" (linear threshold per-glyph
// hinting data).
package dsig

import "fontkit.dev/sfnt/table"

// SignatureRecord locates one signature block within the "DSIG" table.
type SignatureRecord struct {
	Format uint32
	Length uint32
	Offset uint32
}

// SignatureBlock is one decoded PKCS#7 signature payload, kept as raw bytes.
type SignatureBlock struct {
	Reserved1 uint16
	Reserved2 uint16
	SignatureData []byte
}

// DSIG is the decoded "DSIG" table.
type DSIG struct {
	Version        uint32
	NumSignatures  uint16
	Flags          uint16
	SignatureRecords []SignatureRecord
	SignatureBlocks  []SignatureBlock
}

// ReadDSIG decodes a "DSIG" table from buf.
func ReadDSIG(buf *table.Buffer) (*DSIG, error) {
	tableStart := buf.Offset()
	d := &DSIG{}
	var err error
	if d.Version, err = buf.U32(); err != nil {
		return nil, err
	}
	if d.NumSignatures, err = buf.U16(); err != nil {
		return nil, err
	}
	if d.Flags, err = buf.U16(); err != nil {
		return nil, err
	}
	d.SignatureRecords = make([]SignatureRecord, d.NumSignatures)
	for i := range d.SignatureRecords {
		var r SignatureRecord
		if r.Format, err = buf.U32(); err != nil {
			return nil, err
		}
		if r.Length, err = buf.U32(); err != nil {
			return nil, err
		}
		if r.Offset, err = buf.U32(); err != nil {
			return nil, err
		}
		d.SignatureRecords[i] = r
	}
	d.SignatureBlocks = make([]SignatureBlock, d.NumSignatures)
	for i, r := range d.SignatureRecords {
		buf.SetOffsetFrom(tableStart, int(r.Offset))
		var b SignatureBlock
		if b.Reserved1, err = buf.U16(); err != nil {
			return nil, err
		}
		if b.Reserved2, err = buf.U16(); err != nil {
			return nil, err
		}
		length, err := buf.U32()
		if err != nil {
			return nil, err
		}
		if b.SignatureData, err = buf.Bytes(int(length)); err != nil {
			return nil, err
		}
		d.SignatureBlocks[i] = b
	}
	return d, nil
}

// LTSH is the decoded "LTSH" linear threshold table: the pixels-per-em
// threshold below which each glyph's hints stop applying linear scaling.
type LTSH struct {
	Version  uint16
	YPels    []uint8
}

// ReadLTSH decodes an "LTSH" table from buf. numGlyphs comes from the
// sibling "maxp" table.
func ReadLTSH(buf *table.Buffer, numGlyphs int) (*LTSH, error) {
	l := &LTSH{}
	var err error
	if l.Version, err = buf.U16(); err != nil {
		return nil, err
	}
	buf.SkipU16(1) // numGlyphs, redundant with maxp
	raw, err := buf.Bytes(numGlyphs)
	if err != nil {
		return nil, err
	}
	l.YPels = raw
	return l, nil
}
