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

import (
	"bytes"
	"compress/zlib"
	"testing"
)

func TestBufferTypedReads(t *testing.T) {
	raw := []byte{
		0x01,             // U8 = 1
		0xFF,             // I8 = -1
		0x00, 0x02,       // U16 = 2
		0xFF, 0xFE,       // I16 = -2
		0x00, 0x00, 0x03, // U24 = 3
		0x00, 0x00, 0x00, 0x04, // U32 = 4
	}
	b := NewBuffer(raw)

	if v, err := b.U8(); err != nil || v != 1 {
		t.Fatalf("U8() = (%d, %v), want (1, nil)", v, err)
	}
	if v, err := b.I8(); err != nil || v != -1 {
		t.Fatalf("I8() = (%d, %v), want (-1, nil)", v, err)
	}
	if v, err := b.U16(); err != nil || v != 2 {
		t.Fatalf("U16() = (%d, %v), want (2, nil)", v, err)
	}
	if v, err := b.I16(); err != nil || v != -2 {
		t.Fatalf("I16() = (%d, %v), want (-2, nil)", v, err)
	}
	if v, err := b.U24(); err != nil || v != 3 {
		t.Fatalf("U24() = (%d, %v), want (3, nil)", v, err)
	}
	if v, err := b.U32(); err != nil || v != 4 {
		t.Fatalf("U32() = (%d, %v), want (4, nil)", v, err)
	}
	if b.Offset() != len(raw) {
		t.Errorf("Offset() = %d, want %d", b.Offset(), len(raw))
	}
}

func TestBufferReadPastEndReturnsUnexpectedEnd(t *testing.T) {
	b := NewBuffer([]byte{0x00})
	_, err := b.U32()
	if !IsKind(err, KindUnexpectedEnd) {
		t.Fatalf("U32() error = %v, want KindUnexpectedEnd", err)
	}
}

func TestBufferSetOffsetFromIsRelativeToAnchor(t *testing.T) {
	raw := []byte{0, 0, 0, 0, 0x12, 0x34}
	b := NewBuffer(raw)
	anchor := 2
	b.SetOffsetFrom(anchor, 2)
	v, err := b.U16()
	if err != nil {
		t.Fatalf("U16() error = %v", err)
	}
	if v != 0x1234 {
		t.Errorf("U16() = %#x, want 0x1234", v)
	}
}

func TestBufferU16OrNoneNullOffset(t *testing.T) {
	raw := []byte{0x00, 0x01}
	b := NewBuffer(raw)
	v, ok, err := b.U16OrNone(0, 0)
	if err != nil {
		t.Fatalf("U16OrNone() error = %v", err)
	}
	if ok {
		t.Errorf("U16OrNone() ok = true, want false for a null offset")
	}
	if v != 0 {
		t.Errorf("U16OrNone() = %d, want 0", v)
	}
	// the cursor must be untouched by the probe
	if b.Offset() != 0 {
		t.Errorf("Offset() = %d, want 0 (unchanged)", b.Offset())
	}
}

func TestBufferU16OrNoneRestoresCursor(t *testing.T) {
	raw := []byte{0, 0, 0, 0, 0x00, 0x2A}
	b := NewBuffer(raw)
	b.SetOffset(1)
	v, ok, err := b.U16OrNone(0, 4)
	if err != nil {
		t.Fatalf("U16OrNone() error = %v", err)
	}
	if !ok || v != 0x2A {
		t.Errorf("U16OrNone() = (%d, %v), want (42, true)", v, ok)
	}
	if b.Offset() != 1 {
		t.Errorf("Offset() = %d, want 1 (restored)", b.Offset())
	}
}

func TestBufferZlibDecompressRoundTrip(t *testing.T) {
	want := []byte("the quick brown fox jumps over the lazy dog")
	var compressed bytes.Buffer
	w := zlib.NewWriter(&compressed)
	if _, err := w.Write(want); err != nil {
		t.Fatalf("zlib.Write() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("zlib.Close() error = %v", err)
	}

	b := NewBuffer(compressed.Bytes())
	out, err := b.ZlibDecompress(compressed.Len())
	if err != nil {
		t.Fatalf("ZlibDecompress() error = %v", err)
	}
	got, err := out.Bytes(len(want))
	if err != nil {
		t.Fatalf("Bytes() error = %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("ZlibDecompress() round trip = %q, want %q", got, want)
	}
}

func TestBufferZlibDecompressRejectsGarbage(t *testing.T) {
	b := NewBuffer([]byte{0x00, 0x01, 0x02, 0x03})
	_, err := b.ZlibDecompress(4)
	if !IsKind(err, KindDecompression) {
		t.Fatalf("ZlibDecompress() error = %v, want KindDecompression", err)
	}
}

func TestBufferSliceDoesNotMoveCursor(t *testing.T) {
	raw := []byte{1, 2, 3, 4, 5}
	b := NewBuffer(raw)
	b.SetOffset(1)
	got, err := b.Slice(0, 3)
	if err != nil {
		t.Fatalf("Slice() error = %v", err)
	}
	want := []byte{2, 3, 4}
	if !bytes.Equal(got, want) {
		t.Errorf("Slice(0, 3) = %v, want %v", got, want)
	}
	if b.Offset() != 1 {
		t.Errorf("Offset() = %d, want 1 (unchanged)", b.Offset())
	}
}
