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

package head

import (
	"encoding/binary"
	"testing"

	"fontkit.dev/sfnt/table"
)

func u16be(v uint16) []byte {
	b := make([]byte, 2)
	binary.BigEndian.PutUint16(b, v)
	return b
}

func u32be(v uint32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, v)
	return b
}

func i16be(v int16) []byte { return u16be(uint16(v)) }

func buildHead(unitsPerEm uint16, indexToLocFormat int16) []byte {
	var raw []byte
	raw = append(raw, u16be(1)...)        // majorVersion
	raw = append(raw, u16be(0)...)        // minorVersion
	raw = append(raw, u32be(0x00010000)...) // fontRevision = 1.0
	raw = append(raw, u32be(0)...)        // checkSumAdjustment
	raw = append(raw, u32be(0x5F0F3CF5)...) // magicNumber
	raw = append(raw, u16be(0)...)        // flags
	raw = append(raw, u16be(unitsPerEm)...)
	raw = append(raw, u32be(0)...) // created high
	raw = append(raw, u32be(0)...) // created low
	raw = append(raw, u32be(0)...) // modified high
	raw = append(raw, u32be(0)...) // modified low
	raw = append(raw, i16be(0)...) // xMin
	raw = append(raw, i16be(0)...) // yMin
	raw = append(raw, i16be(1000)...) // xMax
	raw = append(raw, i16be(1000)...) // yMax
	raw = append(raw, u16be(0)...) // macStyle
	raw = append(raw, u16be(9)...) // lowestRecPPEM
	raw = append(raw, i16be(2)...) // fontDirectionHint
	raw = append(raw, i16be(indexToLocFormat)...)
	raw = append(raw, i16be(0)...) // glyphDataFormat
	return raw
}

func TestReadHeadLongFormat(t *testing.T) {
	raw := buildHead(2048, 1)
	info, err := Read(table.NewBuffer(raw))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if info.UnitsPerEm != 2048 {
		t.Errorf("UnitsPerEm = %d, want 2048", info.UnitsPerEm)
	}
	if info.IndexToLocFormat != 1 {
		t.Errorf("IndexToLocFormat = %d, want 1 (32-bit loca)", info.IndexToLocFormat)
	}
	if info.XMax != 1000 || info.YMax != 1000 {
		t.Errorf("XMax/YMax = %d/%d, want 1000/1000", info.XMax, info.YMax)
	}
}

func TestReadHeadShortFormat(t *testing.T) {
	raw := buildHead(1000, 0)
	info, err := Read(table.NewBuffer(raw))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if info.IndexToLocFormat != 0 {
		t.Errorf("IndexToLocFormat = %d, want 0 (16-bit loca)", info.IndexToLocFormat)
	}
}

func TestReadHeadTruncatedIsUnexpectedEnd(t *testing.T) {
	raw := buildHead(2048, 0)
	_, err := Read(table.NewBuffer(raw[:10]))
	if !table.IsKind(err, table.KindUnexpectedEnd) {
		t.Fatalf("Read() error = %v, want KindUnexpectedEnd", err)
	}
}
