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
	"compress/gzip"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"io"
)

// Buffer is a byte-addressable cursor over an immutable backing array. All
// typed reads advance the cursor and use big-endian byte order, the only
// order OpenType ever uses. A Buffer never copies its backing array; slicing
// and decompression both borrow or allocate new arrays as documented below.
type Buffer struct {
	raw    []byte
	offset int
}

// NewBuffer wraps raw in a Buffer positioned at offset 0. raw is borrowed,
// not copied: the caller must not mutate it while the Buffer is in use.
func NewBuffer(raw []byte) *Buffer {
	return &Buffer{raw: raw}
}

// Len returns the length of the backing array.
func (b *Buffer) Len() int {
	return len(b.raw)
}

// Offset returns the current cursor position.
func (b *Buffer) Offset() int {
	return b.offset
}

// SetOffset moves the cursor to an absolute position.
func (b *Buffer) SetOffset(abs int) {
	b.offset = abs
}

// Advance moves the cursor by delta bytes, which may be negative.
func (b *Buffer) Advance(delta int) {
	b.offset += delta
}

// SetOffsetFrom moves the cursor to start+relative. Nearly every subtable
// offset in OpenType is relative to some "start" anchor (the enclosing
// table, an enclosing list); callers track that anchor locally and pass it
// here.
func (b *Buffer) SetOffsetFrom(start, relative int) {
	b.offset = start + relative
}

func (b *Buffer) need(n int) error {
	if n < 0 || b.offset < 0 || b.offset+n > len(b.raw) {
		return Errorf(KindUnexpectedEnd, Tag{}, "read of %d bytes at offset %d exceeds buffer length %d", n, b.offset, len(b.raw))
	}
	return nil
}

// U8 reads an unsigned 8-bit integer and advances the cursor.
func (b *Buffer) U8() (uint8, error) {
	if err := b.need(1); err != nil {
		return 0, err
	}
	v := b.raw[b.offset]
	b.offset++
	return v, nil
}

// I8 reads a signed 8-bit integer and advances the cursor.
func (b *Buffer) I8() (int8, error) {
	v, err := b.U8()
	return int8(v), err
}

// U16 reads a big-endian unsigned 16-bit integer and advances the cursor.
func (b *Buffer) U16() (uint16, error) {
	if err := b.need(2); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint16(b.raw[b.offset:])
	b.offset += 2
	return v, nil
}

// I16 reads a big-endian signed 16-bit integer and advances the cursor.
func (b *Buffer) I16() (int16, error) {
	v, err := b.U16()
	return int16(v), err
}

// U24 reads a big-endian unsigned 24-bit integer and advances the cursor.
func (b *Buffer) U24() (Uint24, error) {
	if err := b.need(3); err != nil {
		return 0, err
	}
	v := uint32(b.raw[b.offset])<<16 | uint32(b.raw[b.offset+1])<<8 | uint32(b.raw[b.offset+2])
	b.offset += 3
	return Uint24(v), nil
}

// U32 reads a big-endian unsigned 32-bit integer and advances the cursor.
func (b *Buffer) U32() (uint32, error) {
	if err := b.need(4); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint32(b.raw[b.offset:])
	b.offset += 4
	return v, nil
}

// I32 reads a big-endian signed 32-bit integer and advances the cursor.
func (b *Buffer) I32() (int32, error) {
	v, err := b.U32()
	return int32(v), err
}

// U64 reads a big-endian unsigned 64-bit integer and advances the cursor.
func (b *Buffer) U64() (uint64, error) {
	if err := b.need(8); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint64(b.raw[b.offset:])
	b.offset += 8
	return v, nil
}

// I64 reads a big-endian signed 64-bit integer and advances the cursor.
func (b *Buffer) I64() (int64, error) {
	v, err := b.U64()
	return int64(v), err
}

// Fixed reads a 16.16 fixed-point number.
func (b *Buffer) Fixed() (Fixed, error) {
	v, err := b.I32()
	return Fixed(v), err
}

// F2Dot14 reads a 2.14 fixed-point number.
func (b *Buffer) F2Dot14() (F2Dot14, error) {
	v, err := b.I16()
	return F2Dot14(v), err
}

// LongDateTime reads a LONGDATETIME value.
func (b *Buffer) LongDateTime() (LongDateTime, error) {
	v, err := b.I64()
	return LongDateTime(v), err
}

// Tag reads a four byte Tag.
func (b *Buffer) Tag() (Tag, error) {
	if err := b.need(4); err != nil {
		return Tag{}, err
	}
	var t Tag
	copy(t[:], b.raw[b.offset:b.offset+4])
	b.offset += 4
	return t, nil
}

// VersionU16 reads two adjacent uint16 values and renders them as
// "major.minor".
func (b *Buffer) VersionU16() (string, error) {
	major, err := b.U16()
	if err != nil {
		return "", err
	}
	minor, err := b.U16()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d.%d", major, minor), nil
}

// SkipU16 advances the cursor by n uint16-sized slots.
func (b *Buffer) SkipU16(n int) { b.offset += 2 * n }

// SkipU8 advances the cursor by n byte-sized slots.
func (b *Buffer) SkipU8(n int) { b.offset += n }

// SkipU32 advances the cursor by n uint32-sized slots.
func (b *Buffer) SkipU32(n int) { b.offset += 4 * n }

// U16OrNone reads a uint16 at start+relative, unless relative is 0 (the
// universal OpenType convention for a null offset), in which case it
// returns (0, false, nil) without touching the cursor's prior position.
func (b *Buffer) U16OrNone(start, relative int) (uint16, bool, error) {
	if relative == 0 {
		return 0, false, nil
	}
	save := b.offset
	b.SetOffsetFrom(start, relative)
	v, err := b.U16()
	b.offset = save
	if err != nil {
		return 0, false, err
	}
	return v, true, nil
}

// U32OrNone reads a uint32 at start+relative, unless relative is 0.
func (b *Buffer) U32OrNone(start, relative int) (uint32, bool, error) {
	if relative == 0 {
		return 0, false, nil
	}
	save := b.offset
	b.SetOffsetFrom(start, relative)
	v, err := b.U32()
	b.offset = save
	if err != nil {
		return 0, false, err
	}
	return v, true, nil
}

// Bytes reads n raw bytes and advances the cursor.
func (b *Buffer) Bytes(n int) ([]byte, error) {
	if err := b.need(n); err != nil {
		return nil, err
	}
	v := make([]byte, n)
	copy(v, b.raw[b.offset:b.offset+n])
	b.offset += n
	return v, nil
}

// U16Vec reads n consecutive uint16 values.
func (b *Buffer) U16Vec(n int) ([]uint16, error) {
	out := make([]uint16, n)
	for i := range out {
		v, err := b.U16()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// I16Vec reads n consecutive int16 values.
func (b *Buffer) I16Vec(n int) ([]int16, error) {
	out := make([]int16, n)
	for i := range out {
		v, err := b.I16()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// U32Vec reads n consecutive uint32 values.
func (b *Buffer) U32Vec(n int) ([]uint32, error) {
	out := make([]uint32, n)
	for i := range out {
		v, err := b.U32()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// I8Vec reads n consecutive int8 values.
func (b *Buffer) I8Vec(n int) ([]int8, error) {
	out := make([]int8, n)
	for i := range out {
		v, err := b.I8()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// Slice returns a read-only view of the backing array between
// offset+start and offset+end, without moving the cursor.
func (b *Buffer) Slice(start, end int) ([]byte, error) {
	lo, hi := b.offset+start, b.offset+end
	if lo < 0 || hi < lo || hi > len(b.raw) {
		return nil, Errorf(KindUnexpectedEnd, Tag{}, "slice [%d:%d] out of range", lo, hi)
	}
	return b.raw[lo:hi], nil
}

// SliceAbsolute returns a read-only view of the backing array between
// absolute positions start and end.
func (b *Buffer) SliceAbsolute(start, end int) ([]byte, error) {
	if start < 0 || end < start || end > len(b.raw) {
		return nil, Errorf(KindUnexpectedEnd, Tag{}, "slice [%d:%d] out of range", start, end)
	}
	return b.raw[start:end], nil
}

// ZlibDecompress reads the next length bytes as a zlib (RFC 1950) stream
// and returns a new Buffer over the inflated bytes, positioned at offset 0.
// Unlike the original rustotf implementation this never falls back to
// returning the compressed bytes unchanged: a corrupt stream is reported as
// a KindDecompression error so downstream table decoders never run against
// garbage.
func (b *Buffer) ZlibDecompress(length int) (*Buffer, error) {
	raw, err := b.Bytes(length)
	if err != nil {
		return nil, err
	}
	r, err := zlib.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, Wrap(KindDecompression, Tag{}, err)
	}
	defer r.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, Wrap(KindDecompression, Tag{}, err)
	}
	return NewBuffer(out), nil
}

// GzDecompress reads the next length bytes as a gzip (RFC 1952) stream and
// returns a new Buffer over the inflated bytes, positioned at offset 0.
func (b *Buffer) GzDecompress(length int) (*Buffer, error) {
	raw, err := b.Bytes(length)
	if err != nil {
		return nil, err
	}
	r, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, Wrap(KindDecompression, Tag{}, err)
	}
	defer r.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, Wrap(KindDecompression, Tag{}, err)
	}
	return NewBuffer(out), nil
}
