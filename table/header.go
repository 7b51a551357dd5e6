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

// Format names the on-disk envelope a Font was read from.
type Format int

const (
	FormatSFNT Format = iota
	FormatWOFF
	FormatWOFF2
)

func (f Format) String() string {
	switch f {
	case FormatSFNT:
		return "SFNT"
	case FormatWOFF:
		return "WOFF"
	case FormatWOFF2:
		return "WOFF2"
	default:
		return "unknown"
	}
}

// Flavor names the outline technology a Font uses, derived from the
// signature/"flavor" field of its envelope.
type Flavor int

const (
	FlavorTTF Flavor = iota
	FlavorCFF
)

func (f Flavor) String() string {
	if f == FlavorCFF {
		return "CFF"
	}
	return "TTF"
}

// The four-byte signatures that classify a font resource's outer envelope.
const (
	SignatureOTF     uint32 = 0x4F54544F // "OTTO": OpenType fonts with CFF data.
	SignatureTTF     uint32 = 0x00010000 // SFNT version 1.0: TrueType outlines.
	SignatureTTFTrue uint32 = 0x74727565 // "true": legacy Apple TrueType.
	SignatureTTFTyp1 uint32 = 0x74797031 // "typ1": legacy Apple TrueType.
	SignatureTTC     uint32 = 0x74746366 // "ttcf": TrueType Collection.
	SignatureWOFF    uint32 = 0x774F4646 // "wOFF": WOFF version 1.
	SignatureWOFF2   uint32 = 0x774F4632 // "wOF2": WOFF version 2.
)

// Envelope classifies the outer four-byte signature of a font resource.
type Envelope int

const (
	EnvelopeSFNT Envelope = iota
	EnvelopeTTC
	EnvelopeWOFF
	EnvelopeWOFF2
)

// ClassifySignature inspects a raw 32-bit signature and decides which
// envelope it names. It never consumes from a Buffer itself so callers can
// peek the signature, then rewind before doing the real read.
func ClassifySignature(sig uint32) (Envelope, error) {
	switch sig {
	case SignatureOTF, SignatureTTF, SignatureTTFTrue, SignatureTTFTyp1:
		return EnvelopeSFNT, nil
	case SignatureTTC:
		return EnvelopeTTC, nil
	case SignatureWOFF:
		return EnvelopeWOFF, nil
	case SignatureWOFF2:
		return EnvelopeWOFF2, nil
	default:
		return 0, Errorf(KindUnknownSignature, Tag{}, "0x%08X matches no known envelope", sig)
	}
}

// FlavorFromSignature derives the outline flavor from an SFNT/WOFF
// "flavor" field.
func FlavorFromSignature(sig uint32) Flavor {
	if sig == SignatureOTF {
		return FlavorCFF
	}
	return FlavorTTF
}

// SFNTHeader is the decoded file header of a single-font SFNT resource:
// {signature, numTables, searchRange, entrySelector, rangeShift} followed
// by numTables table records.
type SFNTHeader struct {
	Signature     uint32
	NumTables     uint16
	SearchRange   uint16
	EntrySelector uint16
	RangeShift    uint16
	Directory     *Directory
}

// ReadSFNTHeader reads an SFNT file header and its table directory at the
// buffer's current offset.
func ReadSFNTHeader(buf *Buffer) (*SFNTHeader, error) {
	h := &SFNTHeader{Directory: NewDirectory()}
	var err error
	if h.Signature, err = buf.U32(); err != nil {
		return nil, err
	}
	if h.NumTables, err = buf.U16(); err != nil {
		return nil, err
	}
	if h.SearchRange, err = buf.U16(); err != nil {
		return nil, err
	}
	if h.EntrySelector, err = buf.U16(); err != nil {
		return nil, err
	}
	if h.RangeShift, err = buf.U16(); err != nil {
		return nil, err
	}
	for i := 0; i < int(h.NumTables); i++ {
		var rec Record
		if rec.Tag, err = buf.Tag(); err != nil {
			return nil, err
		}
		if rec.Checksum, err = buf.U32(); err != nil {
			return nil, err
		}
		if rec.Offset, err = buf.U32(); err != nil {
			return nil, err
		}
		if rec.Length, err = buf.U32(); err != nil {
			return nil, err
		}
		h.Directory.Add(rec)
	}
	return h, nil
}

// TTCHeader is the decoded header of a TrueType Collection: a tag, a
// version, and the absolute offset of each member font's SFNT header. For
// version 2 collections the trailing digital-signature triplet is decoded
// but, per the OpenType format, not otherwise acted on.
type TTCHeader struct {
	TTCTag        Tag
	MajorVersion  uint16
	MinorVersion  uint16
	Offsets       []uint32
	DSIGTag       Tag
	DSIGLength    uint32
	DSIGOffset    uint32
	HasDSIGRecord bool
}

// ReadTTCHeader reads a TTC header at the buffer's current offset.
func ReadTTCHeader(buf *Buffer) (*TTCHeader, error) {
	h := &TTCHeader{}
	var err error
	if h.TTCTag, err = buf.Tag(); err != nil {
		return nil, err
	}
	if h.MajorVersion, err = buf.U16(); err != nil {
		return nil, err
	}
	if h.MinorVersion, err = buf.U16(); err != nil {
		return nil, err
	}
	numFonts, err := buf.U32()
	if err != nil {
		return nil, err
	}
	if h.Offsets, err = buf.U32Vec(int(numFonts)); err != nil {
		return nil, err
	}
	if h.MajorVersion == 2 {
		h.HasDSIGRecord = true
		if h.DSIGTag, err = buf.Tag(); err != nil {
			return nil, err
		}
		if h.DSIGLength, err = buf.U32(); err != nil {
			return nil, err
		}
		if h.DSIGOffset, err = buf.U32(); err != nil {
			return nil, err
		}
	}
	return h, nil
}

// WOFFHeader is the decoded header of a WOFF1 resource.
type WOFFHeader struct {
	Signature      uint32
	Flavor         uint32
	Length         uint32
	NumTables      uint16
	TotalSfntSize  uint32
	MajorVersion   uint16
	MinorVersion   uint16
	MetaOffset     uint32
	MetaLength     uint32
	MetaOrigLength uint32
	PrivOffset     uint32
	PrivLength     uint32
	Directory      *Directory
}

// ReadWOFFHeader reads a WOFF1 header and its table directory. Note the
// on-disk record field order differs from SFNT: {tag, offset, compLength,
// origLength, origChecksum}.
func ReadWOFFHeader(buf *Buffer) (*WOFFHeader, error) {
	h := &WOFFHeader{Directory: NewDirectory()}
	var err error
	if h.Signature, err = buf.U32(); err != nil {
		return nil, err
	}
	if h.Flavor, err = buf.U32(); err != nil {
		return nil, err
	}
	if h.Length, err = buf.U32(); err != nil {
		return nil, err
	}
	if h.NumTables, err = buf.U16(); err != nil {
		return nil, err
	}
	buf.SkipU16(1) // reserved
	if h.TotalSfntSize, err = buf.U32(); err != nil {
		return nil, err
	}
	if h.MajorVersion, err = buf.U16(); err != nil {
		return nil, err
	}
	if h.MinorVersion, err = buf.U16(); err != nil {
		return nil, err
	}
	if h.MetaOffset, err = buf.U32(); err != nil {
		return nil, err
	}
	if h.MetaLength, err = buf.U32(); err != nil {
		return nil, err
	}
	if h.MetaOrigLength, err = buf.U32(); err != nil {
		return nil, err
	}
	if h.PrivOffset, err = buf.U32(); err != nil {
		return nil, err
	}
	if h.PrivLength, err = buf.U32(); err != nil {
		return nil, err
	}
	for i := 0; i < int(h.NumTables); i++ {
		var rec Record
		if rec.Tag, err = buf.Tag(); err != nil {
			return nil, err
		}
		if rec.Offset, err = buf.U32(); err != nil {
			return nil, err
		}
		if rec.CompressedLength, err = buf.U32(); err != nil {
			return nil, err
		}
		if rec.Length, err = buf.U32(); err != nil {
			return nil, err
		}
		if rec.Checksum, err = buf.U32(); err != nil {
			return nil, err
		}
		h.Directory.Add(rec)
	}
	return h, nil
}

// WOFF2Header is the decoded header of a WOFF2 resource. The full WOFF2
// table transform (brotli-compressed, bit-packed table directory) is out
// of scope for this engine; only the fixed-size header is decoded, which
// is enough to report the envelope and fail cleanly on any attempt to read
// a table from it.
type WOFF2Header struct {
	Signature           uint32
	Flavor              uint32
	Length              uint32
	NumTables           uint16
	TotalSfntSize       uint32
	TotalCompressedSize uint32
	MajorVersion        uint16
	MinorVersion        uint16
	MetaOffset          uint32
	MetaLength          uint32
	MetaOrigLength      uint32
	PrivOffset          uint32
	PrivLength          uint32
}

// ReadWOFF2Header reads a WOFF2 header at the buffer's current offset.
func ReadWOFF2Header(buf *Buffer) (*WOFF2Header, error) {
	h := &WOFF2Header{}
	var err error
	if h.Signature, err = buf.U32(); err != nil {
		return nil, err
	}
	if h.Flavor, err = buf.U32(); err != nil {
		return nil, err
	}
	if h.Length, err = buf.U32(); err != nil {
		return nil, err
	}
	if h.NumTables, err = buf.U16(); err != nil {
		return nil, err
	}
	buf.SkipU16(1) // reserved
	if h.TotalSfntSize, err = buf.U32(); err != nil {
		return nil, err
	}
	if h.TotalCompressedSize, err = buf.U32(); err != nil {
		return nil, err
	}
	if h.MajorVersion, err = buf.U16(); err != nil {
		return nil, err
	}
	if h.MinorVersion, err = buf.U16(); err != nil {
		return nil, err
	}
	if h.MetaOffset, err = buf.U32(); err != nil {
		return nil, err
	}
	if h.MetaLength, err = buf.U32(); err != nil {
		return nil, err
	}
	if h.MetaOrigLength, err = buf.U32(); err != nil {
		return nil, err
	}
	if h.PrivOffset, err = buf.U32(); err != nil {
		return nil, err
	}
	if h.PrivLength, err = buf.U32(); err != nil {
		return nil, err
	}
	return h, nil
}
