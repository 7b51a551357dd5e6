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

// Package name decodes the "name" naming table: a list of platform-tagged
// string records plus, for version 1, an IETF language-tag extension. Each
// record's bytes are decoded to a Go string using the legacy charset its
// (platformID, encodingID, languageID) triplet implies.
package name

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"

	"fontkit.dev/sfnt/table"
)

// Platform IDs.
const (
	PlatformUnicode   uint16 = 0
	PlatformMacintosh uint16 = 1
	PlatformISO       uint16 = 2
	PlatformWindows   uint16 = 3
	PlatformCustom    uint16 = 4
)

// Well-known Macintosh platform (platform 1) encoding IDs.
const (
	macRoman             uint16 = 0
	macJapanese          uint16 = 1
	macChineseTraditional uint16 = 2
	macKorean            uint16 = 3
	macChineseSimplified uint16 = 25
	macRussian           uint16 = 7
)

// NameID is a well-known name record semantic ID (there are others,
// vendor- and variable-font-specific, that are passed through unmodified).
type NameID uint16

const (
	NameCopyright       NameID = 0
	NameFamily          NameID = 1
	NameSubfamily       NameID = 2
	NameUniqueID        NameID = 3
	NameFullName        NameID = 4
	NameVersion         NameID = 5
	NamePostScriptName  NameID = 6
	NameTrademark       NameID = 7
	NameManufacturer    NameID = 8
	NameDesigner        NameID = 9
	NameDescription     NameID = 10
	NameLicense         NameID = 13
	NameLicenseURL      NameID = 14
	NameTypographicFamily    NameID = 16
	NameTypographicSubfamily NameID = 17
)

// Record is one decoded name record: the platform/encoding/language/name
// IDs that select it, its raw bytes, and the UTF-8 string decoded from
// them (best-effort; Value is empty and DecodeErr is set if the charset
// could not be decoded).
type Record struct {
	PlatformID uint16
	EncodingID uint16
	LanguageID uint16
	NameID     NameID
	Raw        []byte
	Value      string
	DecodeErr  error
}

// LangTagRecord is one version-1 IETF BCP 47 language tag, addressed by
// Record.LanguageID values >= 0x8000 (LanguageID - 0x8000 indexes this
// slice).
type LangTagRecord struct {
	Tag string
}

// Table is the decoded "name" table.
type Table struct {
	Format       uint16
	Records      []Record
	LangTagRecords []LangTagRecord
}

const tableTag = "name"

// Read decodes a "name" table from buf, which must be positioned at the
// table's start.
func Read(buf *table.Buffer) (*Table, error) {
	tag := table.MakeTag(tableTag)
	tableStart := buf.Offset()

	t := &Table{}
	var err error
	if t.Format, err = buf.U16(); err != nil {
		return nil, err
	}
	count, err := buf.U16()
	if err != nil {
		return nil, err
	}
	stringOffset, err := buf.U16()
	if err != nil {
		return nil, err
	}
	storageStart := tableStart + int(stringOffset)

	type rawRecord struct {
		platformID, encodingID, languageID, nameID uint16
		length, offset                             uint16
	}
	raws := make([]rawRecord, count)
	for i := range raws {
		var r rawRecord
		if r.platformID, err = buf.U16(); err != nil {
			return nil, err
		}
		if r.encodingID, err = buf.U16(); err != nil {
			return nil, err
		}
		if r.languageID, err = buf.U16(); err != nil {
			return nil, err
		}
		if r.nameID, err = buf.U16(); err != nil {
			return nil, err
		}
		if r.length, err = buf.U16(); err != nil {
			return nil, err
		}
		if r.offset, err = buf.U16(); err != nil {
			return nil, err
		}
		raws[i] = r
	}

	if t.Format == 1 {
		langTagCount, err := buf.U16()
		if err != nil {
			return nil, err
		}
		type rawLangTag struct{ length, offset uint16 }
		rawTags := make([]rawLangTag, langTagCount)
		for i := range rawTags {
			var lt rawLangTag
			if lt.length, err = buf.U16(); err != nil {
				return nil, err
			}
			if lt.offset, err = buf.U16(); err != nil {
				return nil, err
			}
			rawTags[i] = lt
		}
		t.LangTagRecords = make([]LangTagRecord, len(rawTags))
		for i, lt := range rawTags {
			raw, err := buf.SliceAbsolute(storageStart+int(lt.offset), storageStart+int(lt.offset)+int(lt.length))
			if err != nil {
				return nil, err
			}
			dec, _ := decodeUTF16BE(raw)
			t.LangTagRecords[i] = LangTagRecord{Tag: dec}
		}
	}

	t.Records = make([]Record, len(raws))
	for i, r := range raws {
		raw, err := buf.SliceAbsolute(storageStart+int(r.offset), storageStart+int(r.offset)+int(r.length))
		if err != nil {
			return nil, table.Wrap(table.KindUnexpectedEnd, tag, err)
		}
		rec := Record{
			PlatformID: r.platformID,
			EncodingID: r.encodingID,
			LanguageID: r.languageID,
			NameID:     NameID(r.nameID),
			Raw:        raw,
		}
		rec.Value, rec.DecodeErr = decodeRecord(r.platformID, r.encodingID, raw)
		t.Records[i] = rec
	}
	return t, nil
}

// decodeRecord decodes raw name-record bytes to UTF-8 using the legacy
// charset implied by (platformID, encodingID). Unrecognized combinations
// fall back to UTF-16BE, which covers the overwhelming majority of fonts in
// the wild (Windows-platform records are UTF-16BE regardless of the
// specific encoding ID).
func decodeRecord(platformID, encodingID uint16, raw []byte) (string, error) {
	if platformID == PlatformMacintosh {
		if dec := macintoshDecoder(encodingID); dec != nil {
			return decodeWith(dec, raw)
		}
	}
	return decodeUTF16BE(raw)
}

func macintoshDecoder(encodingID uint16) encoding.Encoding {
	switch encodingID {
	case macRoman:
		return charmap.Macintosh
	case macJapanese:
		return japanese.ShiftJIS
	case macChineseTraditional:
		return traditionalchinese.Big5
	case macKorean:
		return korean.EUCKR
	case macChineseSimplified:
		return simplifiedchinese.GBK
	case macRussian:
		return charmap.MacintoshCyrillic
	default:
		return nil
	}
}

func decodeWith(enc encoding.Encoding, raw []byte) (string, error) {
	out, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func decodeUTF16BE(raw []byte) (string, error) {
	enc := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	out, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
