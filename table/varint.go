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

// UIntBase128 reads a WOFF2-style base-128 variable-length unsigned integer:
// seven useful bits per byte, high bit set means "more bytes follow". The
// encoding additionally forbids a leading 0x80 byte (no leading zero
// digits), more than five bytes, and any accumulation that
// would overflow the top seven bits of a uint32.
func (b *Buffer) UIntBase128() (uint32, error) {
	var result uint32
	for i := 0; i < 5; i++ {
		byt, err := b.U8()
		if err != nil {
			return 0, err
		}
		if i == 0 && byt == 0x80 {
			return 0, Errorf(KindVariableLengthOverflow, Tag{}, "UIntBase128: leading continuation byte")
		}
		if result&0xFE000000 != 0 {
			return 0, Errorf(KindVariableLengthOverflow, Tag{}, "UIntBase128: accumulator overflow")
		}
		result = (result << 7) | uint32(byt&0x7F)
		if byt&0x80 == 0 {
			return result, nil
		}
	}
	return 0, Errorf(KindVariableLengthOverflow, Tag{}, "UIntBase128: more than 5 bytes")
}
