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

// Package os2 decodes the "OS/2" OS/2 and Windows metrics table. The table
// grew several times since TrueType 1.0; each extension's presence is
// gated the way the OpenType format requires: the Microsoft version-0
// extension by the table record's byte length (some legacy version-0 fonts
// omit it), and every later extension by the version field.
package os2

import "fontkit.dev/sfnt/table"

// Info is the decoded "OS/2" table. Fields introduced by a later version or
// the length-gated Microsoft extension are zero when not present; callers
// that need to know whether a field was actually written should consult
// HasMicrosoftExt/Version instead of trusting a zero value.
type Info struct {
	Version            uint16
	XAvgCharWidth      int16
	USWeightClass      uint16
	USWidthClass       uint16
	FSType             uint16
	YSubscriptXSize    int16
	YSubscriptYSize    int16
	YSubscriptXOffset  int16
	YSubscriptYOffset  int16
	YSuperscriptXSize  int16
	YSuperscriptYSize  int16
	YSuperscriptXOffset int16
	YSuperscriptYOffset int16
	YStrikeoutSize     int16
	YStrikeoutPosition int16
	SFamilyClass       int16
	Panose             [10]byte
	UlUnicodeRange1    uint32
	UlUnicodeRange2    uint32
	UlUnicodeRange3    uint32
	UlUnicodeRange4    uint32
	AchVendID          table.Tag
	FSSelection        uint16
	USFirstCharIndex   uint16
	USLastCharIndex    uint16

	// HasMicrosoftExt reports whether the fields below were present: gated
	// by the table record's byte length (>= 78), not by Version.
	HasMicrosoftExt  bool
	STypoAscender    int16
	STypoDescender   int16
	STypoLineGap     int16
	UsWinAscent      uint16
	UsWinDescent     uint16

	// Present when Version >= 1.
	HasCodePageRanges bool
	UlCodePageRange1  uint32
	UlCodePageRange2  uint32

	// Present when Version >= 2.
	HasV2 bool
	SxHeight    int16
	SCapHeight  int16
	UsDefaultChar uint16
	UsBreakChar   uint16
	UsMaxContext  uint16

	// Present when Version >= 5.
	HasV5 bool
	UsLowerOpticalPointSize uint16
	UsUpperOpticalPointSize uint16
}

// Read decodes an "OS/2" table from buf. recordLength is the table
// record's declared byte length, which (not the version number) gates the
// Microsoft version-0 extension.
func Read(buf *table.Buffer, recordLength int) (*Info, error) {
	info := &Info{}
	var err error
	if info.Version, err = buf.U16(); err != nil {
		return nil, err
	}
	if info.XAvgCharWidth, err = buf.I16(); err != nil {
		return nil, err
	}
	if info.USWeightClass, err = buf.U16(); err != nil {
		return nil, err
	}
	if info.USWidthClass, err = buf.U16(); err != nil {
		return nil, err
	}
	if info.FSType, err = buf.U16(); err != nil {
		return nil, err
	}
	for _, f := range []*int16{
		&info.YSubscriptXSize, &info.YSubscriptYSize,
		&info.YSubscriptXOffset, &info.YSubscriptYOffset,
		&info.YSuperscriptXSize, &info.YSuperscriptYSize,
		&info.YSuperscriptXOffset, &info.YSuperscriptYOffset,
		&info.YStrikeoutSize, &info.YStrikeoutPosition,
		&info.SFamilyClass,
	} {
		if *f, err = buf.I16(); err != nil {
			return nil, err
		}
	}
	panose, err := buf.Bytes(10)
	if err != nil {
		return nil, err
	}
	copy(info.Panose[:], panose)
	for _, f := range []*uint32{
		&info.UlUnicodeRange1, &info.UlUnicodeRange2,
		&info.UlUnicodeRange3, &info.UlUnicodeRange4,
	} {
		if *f, err = buf.U32(); err != nil {
			return nil, err
		}
	}
	if info.AchVendID, err = buf.Tag(); err != nil {
		return nil, err
	}
	if info.FSSelection, err = buf.U16(); err != nil {
		return nil, err
	}
	if info.USFirstCharIndex, err = buf.U16(); err != nil {
		return nil, err
	}
	if info.USLastCharIndex, err = buf.U16(); err != nil {
		return nil, err
	}

	if recordLength >= 78 {
		info.HasMicrosoftExt = true
		if info.STypoAscender, err = buf.I16(); err != nil {
			return nil, err
		}
		if info.STypoDescender, err = buf.I16(); err != nil {
			return nil, err
		}
		if info.STypoLineGap, err = buf.I16(); err != nil {
			return nil, err
		}
		if info.UsWinAscent, err = buf.U16(); err != nil {
			return nil, err
		}
		if info.UsWinDescent, err = buf.U16(); err != nil {
			return nil, err
		}
	}

	if info.Version >= 1 {
		info.HasCodePageRanges = true
		if info.UlCodePageRange1, err = buf.U32(); err != nil {
			return nil, err
		}
		if info.UlCodePageRange2, err = buf.U32(); err != nil {
			return nil, err
		}
	}

	if info.Version >= 2 {
		info.HasV2 = true
		if info.SxHeight, err = buf.I16(); err != nil {
			return nil, err
		}
		if info.SCapHeight, err = buf.I16(); err != nil {
			return nil, err
		}
		if info.UsDefaultChar, err = buf.U16(); err != nil {
			return nil, err
		}
		if info.UsBreakChar, err = buf.U16(); err != nil {
			return nil, err
		}
		if info.UsMaxContext, err = buf.U16(); err != nil {
			return nil, err
		}
	}

	if info.Version >= 5 {
		info.HasV5 = true
		if info.UsLowerOpticalPointSize, err = buf.U16(); err != nil {
			return nil, err
		}
		if info.UsUpperOpticalPointSize, err = buf.U16(); err != nil {
			return nil, err
		}
	}

	return info, nil
}
