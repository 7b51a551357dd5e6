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

import "fmt"

// Fixed is a signed 32-bit fixed-point number with 16 bits of fraction
// (16.16).
type Fixed int32

// Float64 returns the fixed-point value as a float64.
func (f Fixed) Float64() float64 {
	return float64(f) / 65536
}

func (f Fixed) String() string {
	return fmt.Sprintf("%.3f", f.Float64())
}

// F2Dot14 is a signed 16-bit fixed-point number with 14 bits of fraction
// (2.14), used for variation deltas and component scale factors.
type F2Dot14 int16

// Float64 returns the fixed-point value as a float64.
func (f F2Dot14) Float64() float64 {
	return float64(f) / 16384
}

func (f F2Dot14) String() string {
	return fmt.Sprintf("%.3f", f.Float64())
}

// dateTimeEpochOffset is the number of seconds between 1904-01-01 00:00 UTC
// (the LongDateTime epoch) and the Unix epoch.
const dateTimeEpochOffset = 2_082_844_800

// LongDateTime is a signed count of seconds since 1904-01-01 00:00 UTC.
type LongDateTime int64

// Unix returns the number of seconds since the Unix epoch.
func (d LongDateTime) Unix() int64 {
	return int64(d) - dateTimeEpochOffset
}

func (d LongDateTime) String() string {
	return fmt.Sprintf("%d", d.Unix())
}

// Uint24 is a 24-bit unsigned integer, stored widened to 32 bits.
type Uint24 uint32
