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

// Package variation decodes the variable-font table family: "fvar" (the
// axis and named-instance definitions that make a font variable), "avar"
// (per-axis coordinate remapping), and "MVAR"/"HVAR" (metric value
// variation stores). The item variation store payload HVAR and MVAR point
// into is kept as an opaque byte region rather than fully decoded: its
// region-list/delta-set structure is a large, mostly self-contained
// sub-format whose consumption (resolving a variation delta for a given
// normalized design-space coordinate) belongs to a text-shaping layer built
// on top of this table, not to the table decoder itself.
package variation

import "fontkit.dev/sfnt/table"

// Axis is one "fvar" variation axis.
type Axis struct {
	AxisTag      table.Tag
	MinValue     table.Fixed
	DefaultValue table.Fixed
	MaxValue     table.Fixed
	Flags        uint16
	AxisNameID   uint16
}

// Instance is one "fvar" named instance: a point in the variation space
// with a human-readable name.
type Instance struct {
	SubfamilyNameID  uint16
	Flags            uint16
	Coordinates      []table.Fixed
	PostScriptNameID uint16 // 0 when absent
}

// Fvar is the decoded "fvar" table.
type Fvar struct {
	MajorVersion, MinorVersion uint16
	Axes                       []Axis
	Instances                  []Instance
}

// ReadFvar decodes an "fvar" table from buf.
func ReadFvar(buf *table.Buffer) (*Fvar, error) {
	tableStart := buf.Offset()

	f := &Fvar{}
	var err error
	if f.MajorVersion, err = buf.U16(); err != nil {
		return nil, err
	}
	if f.MinorVersion, err = buf.U16(); err != nil {
		return nil, err
	}
	axesArrayOffset, err := buf.U16()
	if err != nil {
		return nil, err
	}
	buf.SkipU16(1) // reserved
	axisCount, err := buf.U16()
	if err != nil {
		return nil, err
	}
	axisSize, err := buf.U16()
	if err != nil {
		return nil, err
	}
	instanceCount, err := buf.U16()
	if err != nil {
		return nil, err
	}
	instanceSize, err := buf.U16()
	if err != nil {
		return nil, err
	}

	buf.SetOffsetFrom(tableStart, int(axesArrayOffset))
	f.Axes = make([]Axis, axisCount)
	for i := range f.Axes {
		recordStart := buf.Offset()
		var a Axis
		if a.AxisTag, err = buf.Tag(); err != nil {
			return nil, err
		}
		if a.MinValue, err = buf.Fixed(); err != nil {
			return nil, err
		}
		if a.DefaultValue, err = buf.Fixed(); err != nil {
			return nil, err
		}
		if a.MaxValue, err = buf.Fixed(); err != nil {
			return nil, err
		}
		if a.Flags, err = buf.U16(); err != nil {
			return nil, err
		}
		if a.AxisNameID, err = buf.U16(); err != nil {
			return nil, err
		}
		f.Axes[i] = a
		buf.SetOffset(recordStart + int(axisSize))
	}

	instancesStart := buf.Offset()
	f.Instances = make([]Instance, instanceCount)
	hasPostScriptNameID := int(instanceSize) >= int(axisCount)*4+6
	for i := range f.Instances {
		recordStart := instancesStart + i*int(instanceSize)
		buf.SetOffset(recordStart)
		var inst Instance
		if inst.SubfamilyNameID, err = buf.U16(); err != nil {
			return nil, err
		}
		if inst.Flags, err = buf.U16(); err != nil {
			return nil, err
		}
		if inst.Coordinates, err = readFixedVec(buf, int(axisCount)); err != nil {
			return nil, err
		}
		if hasPostScriptNameID {
			if inst.PostScriptNameID, err = buf.U16(); err != nil {
				return nil, err
			}
		}
		f.Instances[i] = inst
	}
	return f, nil
}

func readFixedVec(buf *table.Buffer, n int) ([]table.Fixed, error) {
	out := make([]table.Fixed, n)
	for i := range out {
		v, err := buf.Fixed()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// AxisValueMap is one {fromCoordinate, toCoordinate} remapping pair in an
// "avar" segment map.
type AxisValueMap struct {
	FromCoordinate table.F2Dot14
	ToCoordinate   table.F2Dot14
}

// SegmentMap is one axis's full remapping curve.
type SegmentMap struct {
	AxisValueMaps []AxisValueMap
}

// Avar is the decoded "avar" table.
type Avar struct {
	MajorVersion, MinorVersion uint16
	SegmentMaps                []SegmentMap
}

// ReadAvar decodes an "avar" table from buf. axisCount comes from the
// sibling "fvar" table.
func ReadAvar(buf *table.Buffer, axisCount int) (*Avar, error) {
	a := &Avar{}
	var err error
	if a.MajorVersion, err = buf.U16(); err != nil {
		return nil, err
	}
	if a.MinorVersion, err = buf.U16(); err != nil {
		return nil, err
	}
	buf.SkipU16(1) // reserved
	declaredAxisCount, err := buf.U16()
	if err != nil {
		return nil, err
	}
	if int(declaredAxisCount) != axisCount {
		axisCount = int(declaredAxisCount)
	}
	a.SegmentMaps = make([]SegmentMap, axisCount)
	for i := range a.SegmentMaps {
		positionMapCount, err := buf.U16()
		if err != nil {
			return nil, err
		}
		maps := make([]AxisValueMap, positionMapCount)
		for j := range maps {
			var m AxisValueMap
			if m.FromCoordinate, err = buf.F2Dot14(); err != nil {
				return nil, err
			}
			if m.ToCoordinate, err = buf.F2Dot14(); err != nil {
				return nil, err
			}
			maps[j] = m
		}
		a.SegmentMaps[i] = SegmentMap{AxisValueMaps: maps}
	}
	return a, nil
}

// ValueRecord ties one metric tag to a location in an item variation
// store's delta sets.
type ValueRecord struct {
	ValueTag          table.Tag
	DeltaSetOuterIndex uint16
	DeltaSetInnerIndex uint16
}

// MVAR is the decoded "MVAR" metrics variation table. ItemVariationStore
// is the raw byte region starting at the table's itemVariationStoreOffset;
// see the package doc comment for why it is not decoded further here.
type MVAR struct {
	MajorVersion, MinorVersion uint16
	ValueRecordSize            uint16
	ValueRecords               []ValueRecord
	ItemVariationStore         []byte
}

// ReadMVAR decodes an "MVAR" table from buf.
func ReadMVAR(buf *table.Buffer) (*MVAR, error) {
	tableStart := buf.Offset()
	m := &MVAR{}
	var err error
	if m.MajorVersion, err = buf.U16(); err != nil {
		return nil, err
	}
	if m.MinorVersion, err = buf.U16(); err != nil {
		return nil, err
	}
	buf.SkipU16(1) // reserved
	if m.ValueRecordSize, err = buf.U16(); err != nil {
		return nil, err
	}
	valueRecordCount, err := buf.U16()
	if err != nil {
		return nil, err
	}
	itemVariationStoreOffset, err := buf.U16()
	if err != nil {
		return nil, err
	}
	m.ValueRecords = make([]ValueRecord, valueRecordCount)
	for i := range m.ValueRecords {
		var r ValueRecord
		if r.ValueTag, err = buf.Tag(); err != nil {
			return nil, err
		}
		if r.DeltaSetOuterIndex, err = buf.U16(); err != nil {
			return nil, err
		}
		if r.DeltaSetInnerIndex, err = buf.U16(); err != nil {
			return nil, err
		}
		m.ValueRecords[i] = r
	}
	if itemVariationStoreOffset != 0 {
		buf.SetOffsetFrom(tableStart, int(itemVariationStoreOffset))
		rest, err := buf.Bytes(buf.Len() - buf.Offset())
		if err != nil {
			return nil, err
		}
		m.ItemVariationStore = rest
	}
	return m, nil
}

// HVAR is the decoded "HVAR" table header. Its three mapping tables
// (advance width, LSB, RSB) and item variation store are kept as raw byte
// regions; see the package doc comment.
type HVAR struct {
	MajorVersion, MinorVersion uint16
	ItemVariationStoreOffset   uint32
	AdvanceWidthMappingOffset  uint32
	LSBMappingOffset           uint32
	RSBMappingOffset           uint32
	Raw                        []byte
}

// ReadHVAR decodes an "HVAR" table from buf.
func ReadHVAR(buf *table.Buffer, tableLength int) (*HVAR, error) {
	tableStart := buf.Offset()
	h := &HVAR{}
	var err error
	if h.MajorVersion, err = buf.U16(); err != nil {
		return nil, err
	}
	if h.MinorVersion, err = buf.U16(); err != nil {
		return nil, err
	}
	if h.ItemVariationStoreOffset, err = buf.U32(); err != nil {
		return nil, err
	}
	if h.AdvanceWidthMappingOffset, err = buf.U32(); err != nil {
		return nil, err
	}
	if h.LSBMappingOffset, err = buf.U32(); err != nil {
		return nil, err
	}
	if h.RSBMappingOffset, err = buf.U32(); err != nil {
		return nil, err
	}
	buf.SetOffsetFrom(tableStart, 0)
	raw, err := buf.Bytes(tableLength)
	if err != nil {
		return nil, err
	}
	h.Raw = raw
	return h, nil
}
