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

package table

import "testing"

func TestUIntBase128Valid(t *testing.T) {
	cases := []struct {
		name string
		in   []byte
		want uint32
	}{
		{"single_byte_max", []byte{0x7F}, 127},
		{"single_byte_zero", []byte{0x00}, 0},
		{"two_bytes", []byte{0x8E, 0x00}, 1792},
		{"spec_example", []byte{0x8B, 0x34}, 0x5B4},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b := NewBuffer(c.in)
			got, err := b.UIntBase128()
			if err != nil {
				t.Fatalf("UIntBase128() error = %v", err)
			}
			if got != c.want {
				t.Errorf("UIntBase128() = %d, want %d", got, c.want)
			}
		})
	}
}

func TestUIntBase128RejectsLeadingContinuationByte(t *testing.T) {
	b := NewBuffer([]byte{0x80, 0x3F})
	_, err := b.UIntBase128()
	if !IsKind(err, KindVariableLengthOverflow) {
		t.Fatalf("UIntBase128() error = %v, want KindVariableLengthOverflow", err)
	}
}

func TestUIntBase128RejectsTooManyBytes(t *testing.T) {
	// Five continuation bytes (high bit set throughout) whose accumulated
	// value stays well under the overflow threshold, so this exercises the
	// "more than 5 bytes" branch rather than the accumulator-overflow one.
	b := NewBuffer([]byte{0x81, 0x80, 0x80, 0x80, 0x80})
	_, err := b.UIntBase128()
	if !IsKind(err, KindVariableLengthOverflow) {
		t.Fatalf("UIntBase128() error = %v, want KindVariableLengthOverflow", err)
	}
}

func TestUIntBase128RejectsAccumulatorOverflow(t *testing.T) {
	b := NewBuffer([]byte{0xFF, 0xFF, 0xFF, 0xFF, 0x7F})
	_, err := b.UIntBase128()
	if !IsKind(err, KindVariableLengthOverflow) {
		t.Fatalf("UIntBase128() error = %v, want KindVariableLengthOverflow", err)
	}
}
