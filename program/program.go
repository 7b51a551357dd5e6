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

// Package program decodes the three opaque TrueType bytecode/control tables
// that carry no internal structure beyond their raw contents: "cvt " (the
// control value table, an array of FWord values), "fpgm" (the font
// program), and "prep" (the control value program).
package program

import "fontkit.dev/sfnt/table"

// ControlValues is a decoded "cvt " table: a flat array of FWord (int16)
// values indexed by the instructions that reference them.
type ControlValues []int16

// ReadCVT decodes a "cvt " table of byteLen bytes from buf.
func ReadCVT(buf *table.Buffer, byteLen int) (ControlValues, error) {
	return buf.I16Vec(byteLen / 2)
}

// Bytecode is the raw instruction stream of an "fpgm" or "prep" table.
type Bytecode []byte

// ReadFpgm decodes an "fpgm" table of byteLen bytes from buf.
func ReadFpgm(buf *table.Buffer, byteLen int) (Bytecode, error) {
	b, err := buf.Bytes(byteLen)
	return Bytecode(b), err
}

// ReadPrep decodes a "prep" table of byteLen bytes from buf.
func ReadPrep(buf *table.Buffer, byteLen int) (Bytecode, error) {
	b, err := buf.Bytes(byteLen)
	return Bytecode(b), err
}
