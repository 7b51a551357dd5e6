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

package variation

import (
	"encoding/binary"
	"testing"

	"fontkit.dev/sfnt/table"
)

func u16be(v uint16) []byte {
	b := make([]byte, 2)
	binary.BigEndian.PutUint16(b, v)
	return b
}

func u32be(v uint32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, v)
	return b
}

func i16be(v int16) []byte { return u16be(uint16(v)) }

func fixed(v int32) []byte { return u32be(uint32(v)) }

func f2dot14(v int16) []byte { return i16be(v) }

const axisRecordSize = 4 + 4 + 4 + 4 + 2 + 2 // 20

func buildAxisRecord(tag string, min, def, max int32) []byte {
	var raw []byte
	raw = append(raw, []byte(tag)...)
	raw = append(raw, fixed(min)...)
	raw = append(raw, fixed(def)...)
	raw = append(raw, fixed(max)...)
	raw = append(raw, u16be(0)...)   // flags
	raw = append(raw, u16be(256)...) // axisNameID
	return raw
}

func TestReadFvarOneAxisOneInstanceWithPostScriptName(t *testing.T) {
	const headerLen = 16
	axesOff := headerLen
	axisCount := 1
	instanceSize := axisCount*4 + 6 // has room for postScriptNameID
	instancesOff := axesOff + axisCount*axisRecordSize

	var raw []byte
	raw = append(raw, u16be(1)...)                        // majorVersion
	raw = append(raw, u16be(0)...)                        // minorVersion
	raw = append(raw, u16be(uint16(axesOff))...)          // axesArrayOffset
	raw = append(raw, u16be(0)...)                        // reserved
	raw = append(raw, u16be(uint16(axisCount))...)        // axisCount
	raw = append(raw, u16be(axisRecordSize)...)           // axisSize
	raw = append(raw, u16be(1)...)                        // instanceCount
	raw = append(raw, u16be(uint16(instanceSize))...)     // instanceSize

	raw = append(raw, buildAxisRecord("wght", 100<<16, 400<<16, 900<<16)...)

	if got := len(raw); got != instancesOff {
		t.Fatalf("test fixture miscounted offsets: len(raw) = %d, want %d", got, instancesOff)
	}

	raw = append(raw, u16be(258)...)    // subfamilyNameID
	raw = append(raw, u16be(0)...)      // flags
	raw = append(raw, fixed(700<<16)...) // coordinates[0]
	raw = append(raw, u16be(259)...)    // postScriptNameID

	f, err := ReadFvar(table.NewBuffer(raw))
	if err != nil {
		t.Fatalf("ReadFvar() error = %v", err)
	}
	if len(f.Axes) != 1 || f.Axes[0].AxisTag.String() != "wght" {
		t.Fatalf("Axes = %+v, want one 'wght' axis", f.Axes)
	}
	if f.Axes[0].DefaultValue != 400<<16 {
		t.Errorf("Axes[0].DefaultValue = %v, want 400<<16", f.Axes[0].DefaultValue)
	}
	if len(f.Instances) != 1 {
		t.Fatalf("len(Instances) = %d, want 1", len(f.Instances))
	}
	inst := f.Instances[0]
	if inst.PostScriptNameID != 259 {
		t.Errorf("PostScriptNameID = %d, want 259 (present when instanceSize allows it)", inst.PostScriptNameID)
	}
	if len(inst.Coordinates) != 1 || inst.Coordinates[0] != 700<<16 {
		t.Errorf("Coordinates = %v, want [700<<16]", inst.Coordinates)
	}
}

func TestReadFvarInstanceWithoutPostScriptName(t *testing.T) {
	const headerLen = 16
	axesOff := headerLen
	axisCount := 1
	instanceSize := axisCount * 4 // no room for postScriptNameID
	instancesOff := axesOff + axisCount*axisRecordSize

	var raw []byte
	raw = append(raw, u16be(1)...)
	raw = append(raw, u16be(0)...)
	raw = append(raw, u16be(uint16(axesOff))...)
	raw = append(raw, u16be(0)...)
	raw = append(raw, u16be(uint16(axisCount))...)
	raw = append(raw, u16be(axisRecordSize)...)
	raw = append(raw, u16be(1)...)
	raw = append(raw, u16be(uint16(instanceSize))...)

	raw = append(raw, buildAxisRecord("wght", 100<<16, 400<<16, 900<<16)...)

	if got := len(raw); got != instancesOff {
		t.Fatalf("test fixture miscounted offsets: len(raw) = %d, want %d", got, instancesOff)
	}

	raw = append(raw, u16be(258)...)     // subfamilyNameID
	raw = append(raw, u16be(0)...)       // flags
	raw = append(raw, fixed(550<<16)...) // coordinates[0]

	f, err := ReadFvar(table.NewBuffer(raw))
	if err != nil {
		t.Fatalf("ReadFvar() error = %v", err)
	}
	if len(f.Instances) != 1 {
		t.Fatalf("len(Instances) = %d, want 1", len(f.Instances))
	}
	if got := f.Instances[0].PostScriptNameID; got != 0 {
		t.Errorf("PostScriptNameID = %d, want 0 when instanceSize leaves no room for it", got)
	}
}

func TestReadFvarAxisRecordStrideAllowsOversizedRecords(t *testing.T) {
	const headerLen = 16
	axesOff := headerLen
	oversizedAxisSize := axisRecordSize + 4 // forward-compatible padding after each record

	var raw []byte
	raw = append(raw, u16be(1)...)
	raw = append(raw, u16be(0)...)
	raw = append(raw, u16be(uint16(axesOff))...)
	raw = append(raw, u16be(0)...)
	raw = append(raw, u16be(2)...) // axisCount
	raw = append(raw, u16be(uint16(oversizedAxisSize))...)
	raw = append(raw, u16be(0)...) // instanceCount
	raw = append(raw, u16be(0)...) // instanceSize

	raw = append(raw, buildAxisRecord("wght", 100<<16, 400<<16, 900<<16)...)
	raw = append(raw, u32be(0)...) // padding after record 0
	raw = append(raw, buildAxisRecord("wdth", 50<<16, 100<<16, 200<<16)...)
	raw = append(raw, u32be(0)...) // padding after record 1

	f, err := ReadFvar(table.NewBuffer(raw))
	if err != nil {
		t.Fatalf("ReadFvar() error = %v", err)
	}
	if len(f.Axes) != 2 || f.Axes[1].AxisTag.String() != "wdth" {
		t.Fatalf("Axes = %+v, want ['wght', 'wdth'] read at the declared stride", f.Axes)
	}
}

func TestReadAvarSegmentMapsPerAxis(t *testing.T) {
	var raw []byte
	raw = append(raw, u16be(1)...) // majorVersion
	raw = append(raw, u16be(0)...) // minorVersion
	raw = append(raw, u16be(0)...) // reserved
	raw = append(raw, u16be(1)...) // axisCount

	raw = append(raw, u16be(2)...) // positionMapCount for axis 0
	raw = append(raw, f2dot14(-1<<14)...)
	raw = append(raw, f2dot14(-1<<14)...)
	raw = append(raw, f2dot14(0)...)
	raw = append(raw, f2dot14(0)...)

	a, err := ReadAvar(table.NewBuffer(raw), 1)
	if err != nil {
		t.Fatalf("ReadAvar() error = %v", err)
	}
	if len(a.SegmentMaps) != 1 || len(a.SegmentMaps[0].AxisValueMaps) != 2 {
		t.Fatalf("SegmentMaps = %+v, want one axis with two value maps", a.SegmentMaps)
	}
	if a.SegmentMaps[0].AxisValueMaps[1].ToCoordinate != 0 {
		t.Errorf("AxisValueMaps[1].ToCoordinate = %v, want 0", a.SegmentMaps[0].AxisValueMaps[1].ToCoordinate)
	}
}

func TestReadAvarDeclaredAxisCountOverridesCaller(t *testing.T) {
	var raw []byte
	raw = append(raw, u16be(1)...)
	raw = append(raw, u16be(0)...)
	raw = append(raw, u16be(0)...)
	raw = append(raw, u16be(1)...) // declared axisCount = 1, caller passes 2

	raw = append(raw, u16be(0)...) // positionMapCount for the one axis

	a, err := ReadAvar(table.NewBuffer(raw), 2)
	if err != nil {
		t.Fatalf("ReadAvar() error = %v", err)
	}
	if len(a.SegmentMaps) != 1 {
		t.Errorf("len(SegmentMaps) = %d, want 1 (table's own axisCount wins)", len(a.SegmentMaps))
	}
}

func TestReadMVARValueRecordsAndItemVariationStore(t *testing.T) {
	const headerLen = 12
	const recordSize = 8
	recordCount := 1
	storeOff := headerLen + recordCount*recordSize

	var raw []byte
	raw = append(raw, u16be(1)...) // majorVersion
	raw = append(raw, u16be(0)...) // minorVersion
	raw = append(raw, u16be(0)...) // reserved
	raw = append(raw, u16be(recordSize)...)
	raw = append(raw, u16be(uint16(recordCount))...)
	raw = append(raw, u16be(uint16(storeOff))...)

	raw = append(raw, []byte("xhgt")...) // valueTag
	raw = append(raw, u16be(0)...)       // deltaSetOuterIndex
	raw = append(raw, u16be(3)...)       // deltaSetInnerIndex

	raw = append(raw, 0xDE, 0xAD, 0xBE, 0xEF) // opaque item variation store bytes

	m, err := ReadMVAR(table.NewBuffer(raw))
	if err != nil {
		t.Fatalf("ReadMVAR() error = %v", err)
	}
	if len(m.ValueRecords) != 1 || m.ValueRecords[0].ValueTag.String() != "xhgt" {
		t.Fatalf("ValueRecords = %+v, want one 'xhgt' record", m.ValueRecords)
	}
	want := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	if len(m.ItemVariationStore) != len(want) {
		t.Fatalf("ItemVariationStore = %v, want %v", m.ItemVariationStore, want)
	}
	for i := range want {
		if m.ItemVariationStore[i] != want[i] {
			t.Errorf("ItemVariationStore[%d] = %#x, want %#x", i, m.ItemVariationStore[i], want[i])
		}
	}
}

func TestReadMVARZeroStoreOffsetLeavesStoreNil(t *testing.T) {
	var raw []byte
	raw = append(raw, u16be(1)...)
	raw = append(raw, u16be(0)...)
	raw = append(raw, u16be(0)...)
	raw = append(raw, u16be(8)...)
	raw = append(raw, u16be(0)...) // valueRecordCount
	raw = append(raw, u16be(0)...) // itemVariationStoreOffset = 0

	m, err := ReadMVAR(table.NewBuffer(raw))
	if err != nil {
		t.Fatalf("ReadMVAR() error = %v", err)
	}
	if m.ItemVariationStore != nil {
		t.Errorf("ItemVariationStore = %v, want nil when the offset field is 0", m.ItemVariationStore)
	}
}

func TestReadHVARKeepsRawBytesForLaterDeltaResolution(t *testing.T) {
	var raw []byte
	raw = append(raw, u16be(1)...) // majorVersion
	raw = append(raw, u16be(0)...) // minorVersion
	raw = append(raw, u32be(20)...) // itemVariationStoreOffset
	raw = append(raw, u32be(0)...)  // advanceWidthMappingOffset
	raw = append(raw, u32be(0)...)  // lsbMappingOffset
	raw = append(raw, u32be(0)...)  // rsbMappingOffset
	raw = append(raw, 1, 2, 3, 4)   // trailing bytes, part of the table

	h, err := ReadHVAR(table.NewBuffer(raw), len(raw))
	if err != nil {
		t.Fatalf("ReadHVAR() error = %v", err)
	}
	if h.ItemVariationStoreOffset != 20 {
		t.Errorf("ItemVariationStoreOffset = %d, want 20", h.ItemVariationStoreOffset)
	}
	if len(h.Raw) != len(raw) {
		t.Fatalf("len(Raw) = %d, want %d (whole table kept verbatim)", len(h.Raw), len(raw))
	}
}
