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

package os2

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

// buildBase returns the 68 bytes shared by every OS/2 version, up to and
// including usLastCharIndex.
func buildBase(version uint16) []byte {
	var raw []byte
	raw = append(raw, u16be(version)...)
	raw = append(raw, u16be(0)...) // xAvgCharWidth
	raw = append(raw, u16be(400)...) // usWeightClass
	raw = append(raw, u16be(5)...) // usWidthClass
	raw = append(raw, u16be(0)...) // fsType
	for i := 0; i < 11; i++ {
		raw = append(raw, u16be(0)...)
	}
	raw = append(raw, make([]byte, 10)...) // panose
	for i := 0; i < 4; i++ {
		raw = append(raw, u32be(0)...)
	}
	raw = append(raw, []byte("ABCD")...) // achVendID
	raw = append(raw, u16be(0)...)       // fsSelection
	raw = append(raw, u16be(0x20)...)    // usFirstCharIndex
	raw = append(raw, u16be(0x7E)...)    // usLastCharIndex
	return raw
}

func TestReadOS2Version0ShortOmitsMicrosoftExt(t *testing.T) {
	raw := buildBase(0)
	info, err := Read(table.NewBuffer(raw), len(raw))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if info.HasMicrosoftExt {
		t.Errorf("HasMicrosoftExt = true, want false for a 68-byte version-0 record")
	}
	if info.USWeightClass != 400 {
		t.Errorf("USWeightClass = %d, want 400", info.USWeightClass)
	}
}

func TestReadOS2Version0LongIncludesMicrosoftExt(t *testing.T) {
	raw := buildBase(0)
	raw = append(raw, u16be(0)...)   // sTypoAscender
	raw = append(raw, u16be(0)...)   // sTypoDescender
	raw = append(raw, u16be(0)...)   // sTypoLineGap
	raw = append(raw, u16be(900)...) // usWinAscent
	raw = append(raw, u16be(200)...) // usWinDescent

	info, err := Read(table.NewBuffer(raw), len(raw))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if !info.HasMicrosoftExt {
		t.Fatalf("HasMicrosoftExt = false, want true for a 78-byte record")
	}
	if info.UsWinAscent != 900 || info.UsWinDescent != 200 {
		t.Errorf("UsWinAscent/Descent = %d/%d, want 900/200", info.UsWinAscent, info.UsWinDescent)
	}
	if info.HasCodePageRanges {
		t.Errorf("HasCodePageRanges = true, want false for version 0")
	}
}

func TestReadOS2Version5HasAllExtensions(t *testing.T) {
	raw := buildBase(5)
	raw = append(raw, u16be(0)...)   // sTypoAscender
	raw = append(raw, u16be(0)...)   // sTypoDescender
	raw = append(raw, u16be(0)...)   // sTypoLineGap
	raw = append(raw, u16be(900)...) // usWinAscent
	raw = append(raw, u16be(200)...) // usWinDescent
	raw = append(raw, u32be(1)...)   // ulCodePageRange1
	raw = append(raw, u32be(0)...)   // ulCodePageRange2
	raw = append(raw, u16be(500)...) // sxHeight
	raw = append(raw, u16be(700)...) // sCapHeight
	raw = append(raw, u16be(0)...)   // usDefaultChar
	raw = append(raw, u16be(32)...)  // usBreakChar
	raw = append(raw, u16be(1)...)   // usMaxContext
	raw = append(raw, u16be(8)...)   // usLowerOpticalPointSize
	raw = append(raw, u16be(72)...)  // usUpperOpticalPointSize

	info, err := Read(table.NewBuffer(raw), len(raw))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if !info.HasMicrosoftExt || !info.HasCodePageRanges || !info.HasV2 || !info.HasV5 {
		t.Fatalf("version-5 table did not enable all extensions: %+v", info)
	}
	if info.SCapHeight != 700 {
		t.Errorf("SCapHeight = %d, want 700", info.SCapHeight)
	}
	if info.UsUpperOpticalPointSize != 72 {
		t.Errorf("UsUpperOpticalPointSize = %d, want 72", info.UsUpperOpticalPointSize)
	}
}
