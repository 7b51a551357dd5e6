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

package program

import (
	"encoding/binary"
	"testing"

	"fontkit.dev/sfnt/table"
)

func TestReadCVTDecodesFWordArray(t *testing.T) {
	raw := make([]byte, 6)
	binary.BigEndian.PutUint16(raw[0:], 100)
	binary.BigEndian.PutUint16(raw[2:], 0xFF9C) // -100
	binary.BigEndian.PutUint16(raw[4:], 0)

	cvt, err := ReadCVT(table.NewBuffer(raw), len(raw))
	if err != nil {
		t.Fatalf("ReadCVT() error = %v", err)
	}
	want := ControlValues{100, -100, 0}
	if len(cvt) != len(want) {
		t.Fatalf("len(ControlValues) = %d, want %d", len(cvt), len(want))
	}
	for i := range want {
		if cvt[i] != want[i] {
			t.Errorf("cvt[%d] = %d, want %d", i, cvt[i], want[i])
		}
	}
}

func TestReadFpgmAndPrepPassThroughRawBytes(t *testing.T) {
	raw := []byte{0x40, 0x01, 0x02, 0x2C} // arbitrary bytecode

	fpgm, err := ReadFpgm(table.NewBuffer(raw), len(raw))
	if err != nil {
		t.Fatalf("ReadFpgm() error = %v", err)
	}
	if string(fpgm) != string(raw) {
		t.Errorf("ReadFpgm() = %v, want %v", []byte(fpgm), raw)
	}

	prep, err := ReadPrep(table.NewBuffer(raw), len(raw))
	if err != nil {
		t.Fatalf("ReadPrep() error = %v", err)
	}
	if string(prep) != string(raw) {
		t.Errorf("ReadPrep() = %v, want %v", []byte(prep), raw)
	}
}
