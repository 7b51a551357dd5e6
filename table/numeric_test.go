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

func TestFixedString(t *testing.T) {
	cases := []struct {
		name string
		in   Fixed
		want string
	}{
		{"one", Fixed(0x00010000), "1.000"},
		{"zero", Fixed(0), "0.000"},
		{"negative_one", Fixed(-0x00010000), "-1.000"},
		{"one_and_a_half", Fixed(0x00018000), "1.500"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.in.String(); got != c.want {
				t.Errorf("Fixed(%#x).String() = %q, want %q", uint32(c.in), got, c.want)
			}
		})
	}
}

func TestF2Dot14String(t *testing.T) {
	cases := []struct {
		name string
		in   F2Dot14
		want string
	}{
		{"one", F2Dot14(0x4000), "1.000"},
		{"minus_one", F2Dot14(-0x4000), "-1.000"},
		{"zero", F2Dot14(0), "0.000"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.in.String(); got != c.want {
				t.Errorf("F2Dot14(%#x).String() = %q, want %q", uint16(c.in), got, c.want)
			}
		})
	}
}

func TestLongDateTimeUnix(t *testing.T) {
	// 1904-01-01 00:00 UTC expressed as LONGDATETIME is exactly
	// dateTimeEpochOffset seconds before the Unix epoch.
	d := LongDateTime(dateTimeEpochOffset)
	if got, want := d.Unix(), int64(0); got != want {
		t.Errorf("LongDateTime(%d).Unix() = %d, want %d", int64(d), got, want)
	}
}

func TestLongDateTimeBeforeEpoch(t *testing.T) {
	d := LongDateTime(0)
	if got, want := d.Unix(), int64(-dateTimeEpochOffset); got != want {
		t.Errorf("LongDateTime(0).Unix() = %d, want %d", got, want)
	}
}
