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

package layout

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

func TestReadCoverageFormat1ListsGlyphsInOrder(t *testing.T) {
	var raw []byte
	raw = append(raw, u16be(1)...) // format
	raw = append(raw, u16be(3)...) // glyphCount
	raw = append(raw, u16be(10)...)
	raw = append(raw, u16be(20)...)
	raw = append(raw, u16be(30)...)

	c, err := ReadCoverage(table.NewBuffer(raw))
	if err != nil {
		t.Fatalf("ReadCoverage() error = %v", err)
	}
	if idx, ok := c.Index(20); !ok || idx != 1 {
		t.Errorf("Index(20) = (%d, %v), want (1, true)", idx, ok)
	}
	if _, ok := c.Index(99); ok {
		t.Errorf("Index(99) = ok, want not covered")
	}
}

func TestReadCoverageFormat2Ranges(t *testing.T) {
	var raw []byte
	raw = append(raw, u16be(2)...) // format
	raw = append(raw, u16be(1)...) // rangeCount
	raw = append(raw, u16be(100)...)
	raw = append(raw, u16be(105)...)
	raw = append(raw, u16be(0)...) // startCoverageIndex

	c, err := ReadCoverage(table.NewBuffer(raw))
	if err != nil {
		t.Fatalf("ReadCoverage() error = %v", err)
	}
	if idx, ok := c.Index(103); !ok || idx != 3 {
		t.Errorf("Index(103) = (%d, %v), want (3, true)", idx, ok)
	}
	if _, ok := c.Index(106); ok {
		t.Errorf("Index(106) = ok, want not covered (past range end)")
	}
}

func TestReadCoverageRejectsUnsupportedFormat(t *testing.T) {
	raw := append(u16be(3), u16be(0)...)
	_, err := ReadCoverage(table.NewBuffer(raw))
	if !table.IsKind(err, table.KindBadFormat) {
		t.Fatalf("ReadCoverage() error = %v, want KindBadFormat", err)
	}
}

func TestReadClassDefFormat1FlatArray(t *testing.T) {
	var raw []byte
	raw = append(raw, u16be(1)...)  // format
	raw = append(raw, u16be(50)...) // startGlyphID
	raw = append(raw, u16be(3)...)  // glyphCount
	raw = append(raw, u16be(1)...)
	raw = append(raw, u16be(2)...)
	raw = append(raw, u16be(1)...)

	c, err := ReadClassDef(table.NewBuffer(raw))
	if err != nil {
		t.Fatalf("ReadClassDef() error = %v", err)
	}
	if got := c.Class(51); got != 2 {
		t.Errorf("Class(51) = %d, want 2", got)
	}
	if got := c.Class(49); got != 0 {
		t.Errorf("Class(49) = %d, want 0 (before startGlyphID)", got)
	}
	if got := c.Class(100); got != 0 {
		t.Errorf("Class(100) = %d, want 0 (past the flat array)", got)
	}
}

func TestReadClassDefFormat2Ranges(t *testing.T) {
	var raw []byte
	raw = append(raw, u16be(2)...) // format
	raw = append(raw, u16be(1)...) // classRangeCount
	raw = append(raw, u16be(10)...)
	raw = append(raw, u16be(20)...)
	raw = append(raw, u16be(5)...)

	c, err := ReadClassDef(table.NewBuffer(raw))
	if err != nil {
		t.Fatalf("ReadClassDef() error = %v", err)
	}
	if got := c.Class(15); got != 5 {
		t.Errorf("Class(15) = %d, want 5", got)
	}
	if got := c.Class(25); got != 0 {
		t.Errorf("Class(25) = %d, want 0 (outside every declared range)", got)
	}
}

// buildLangSys appends a LangSys record: lookupOrderOffset=0,
// requiredFeatureIndex, then the feature index array.
func buildLangSys(requiredFeatureIndex uint16, featureIndices []uint16) []byte {
	var raw []byte
	raw = append(raw, u16be(0)...) // lookupOrderOffset
	raw = append(raw, u16be(requiredFeatureIndex)...)
	raw = append(raw, u16be(uint16(len(featureIndices)))...)
	for _, idx := range featureIndices {
		raw = append(raw, u16be(idx)...)
	}
	return raw
}

func TestReadGSUBScriptFeatureLookupLists(t *testing.T) {
	// Layout: header(10) | scriptList | featureList | lookupList
	const headerLen = 10

	// ScriptList: one script "latn" with a default LangSys and no
	// language-specific systems.
	scriptListOffset := headerLen
	scriptListHeaderLen := 2 + 6 // count + one ScriptRecord
	scriptTableOffset := 4       // defaultLangSysOffset + langSysCount, relative to the script table
	langSysBytes := buildLangSys(0xFFFF, []uint16{0})

	var scriptList []byte
	scriptList = append(scriptList, u16be(1)...) // scriptCount
	scriptList = append(scriptList, []byte("latn")...)
	scriptList = append(scriptList, u16be(uint16(scriptListHeaderLen))...) // script offset, relative to scriptList start
	scriptList = append(scriptList, u16be(uint16(scriptTableOffset))...)   // defaultLangSysOffset
	scriptList = append(scriptList, u16be(0)...)                           // langSysCount
	scriptList = append(scriptList, langSysBytes...)

	featureListOffset := scriptListOffset + len(scriptList)
	var featureList []byte
	featureList = append(featureList, u16be(1)...) // featureCount
	featureList = append(featureList, []byte("liga")...)
	featureRecHeaderLen := 2 + 6
	featureList = append(featureList, u16be(uint16(featureRecHeaderLen))...)
	featureList = append(featureList, u16be(0)...) // featureParamsOffset
	featureList = append(featureList, u16be(1)...) // lookupIndexCount
	featureList = append(featureList, u16be(0)...) // lookupIndices[0]

	lookupListOffset := featureListOffset + len(featureList)
	var lookupList []byte
	lookupList = append(lookupList, u16be(1)...) // lookupCount
	lookupHeaderLen := 2 + 2
	lookupList = append(lookupList, u16be(uint16(lookupHeaderLen))...) // lookup offset, relative to lookupList start
	lookupList = append(lookupList, u16be(1)...)                       // lookupType
	lookupList = append(lookupList, u16be(0)...)                       // lookupFlag
	lookupList = append(lookupList, u16be(1)...)                       // subtableCount
	lookupList = append(lookupList, u16be(100)...)                     // subtableOffsets[0]

	var raw []byte
	raw = append(raw, u16be(1)...) // majorVersion
	raw = append(raw, u16be(0)...) // minorVersion
	raw = append(raw, u16be(uint16(scriptListOffset))...)
	raw = append(raw, u16be(uint16(featureListOffset))...)
	raw = append(raw, u16be(uint16(lookupListOffset))...)
	raw = append(raw, scriptList...)
	raw = append(raw, featureList...)
	raw = append(raw, lookupList...)

	g, err := ReadGSUB(table.NewBuffer(raw))
	if err != nil {
		t.Fatalf("ReadGSUB() error = %v", err)
	}
	if len(g.Scripts) != 1 || g.Scripts[0].ScriptTag.String() != "latn" {
		t.Fatalf("Scripts = %+v, want one 'latn' script", g.Scripts)
	}
	if g.Scripts[0].DefaultLangSys == nil || g.Scripts[0].DefaultLangSys.RequiredFeatureIndex != 0xFFFF {
		t.Errorf("DefaultLangSys = %+v, want RequiredFeatureIndex=0xFFFF", g.Scripts[0].DefaultLangSys)
	}
	if len(g.Features) != 1 || g.Features[0].FeatureTag.String() != "liga" {
		t.Fatalf("Features = %+v, want one 'liga' feature", g.Features)
	}
	if len(g.Lookups) != 1 || g.Lookups[0].SubtableOffsets[0] != 100 {
		t.Fatalf("Lookups = %+v, want one lookup with subtable offset 100", g.Lookups)
	}
}

func TestReadGSUBVersion11ReadsFeatureVariationsOffset(t *testing.T) {
	var raw []byte
	raw = append(raw, u16be(1)...) // majorVersion
	raw = append(raw, u16be(1)...) // minorVersion
	raw = append(raw, u16be(14)...) // scriptListOffset
	raw = append(raw, u16be(16)...) // featureListOffset
	raw = append(raw, u16be(18)...) // lookupListOffset
	raw = append(raw, u32be(99)...) // featureVariationsOffset

	raw = append(raw, u16be(0)...) // scriptList: scriptCount=0
	raw = append(raw, u16be(0)...) // featureList: featureCount=0
	raw = append(raw, u16be(0)...) // lookupList: lookupCount=0

	g, err := ReadGSUB(table.NewBuffer(raw))
	if err != nil {
		t.Fatalf("ReadGSUB() error = %v", err)
	}
	if g.FeatureVariationsOffset != 99 {
		t.Errorf("FeatureVariationsOffset = %d, want 99", g.FeatureVariationsOffset)
	}
}

func TestReadBASEHorizAndVertAxes(t *testing.T) {
	const headerLen = 8
	axisOff := headerLen

	var axis []byte
	baseTagListOff := 4
	baseScriptListOff := baseTagListOff + (2 + 4)
	axis = append(axis, u16be(uint16(baseTagListOff))...)
	axis = append(axis, u16be(uint16(baseScriptListOff))...)
	axis = append(axis, u16be(1)...) // baseTagCount
	axis = append(axis, []byte("romn")...)
	axis = append(axis, u16be(1)...) // baseScriptCount
	axis = append(axis, []byte("latn")...)
	axis = append(axis, u16be(0)...) // offset (unused by this test)

	var raw []byte
	raw = append(raw, u16be(1)...) // majorVersion
	raw = append(raw, u16be(0)...) // minorVersion
	raw = append(raw, u16be(uint16(axisOff))...) // horizAxisOffset
	raw = append(raw, u16be(0)...)               // vertAxisOffset (absent)
	raw = append(raw, axis...)

	b, err := ReadBASE(table.NewBuffer(raw))
	if err != nil {
		t.Fatalf("ReadBASE() error = %v", err)
	}
	if b.HorizAxis == nil {
		t.Fatalf("HorizAxis = nil, want a decoded axis")
	}
	if b.HorizAxis.BaseTagList == nil || b.HorizAxis.BaseTagList.BaselineTags[0].String() != "romn" {
		t.Errorf("BaseTagList = %+v, want ['romn']", b.HorizAxis.BaseTagList)
	}
	if len(b.HorizAxis.BaseScripts) != 1 || b.HorizAxis.BaseScripts[0].BaseScriptTag.String() != "latn" {
		t.Errorf("BaseScripts = %+v, want one 'latn' script", b.HorizAxis.BaseScripts)
	}
	if b.VertAxis != nil {
		t.Errorf("VertAxis = %+v, want nil when vertAxisOffset is 0", b.VertAxis)
	}
}

func TestReadJSTFKeepsRawBytesAlongsideScriptRecords(t *testing.T) {
	var raw []byte
	raw = append(raw, u16be(1)...) // majorVersion
	raw = append(raw, u16be(0)...) // minorVersion
	raw = append(raw, u16be(1)...) // scriptCount
	raw = append(raw, []byte("latn")...)
	raw = append(raw, u16be(20)...) // offset

	j, err := ReadJSTF(table.NewBuffer(raw), len(raw))
	if err != nil {
		t.Fatalf("ReadJSTF() error = %v", err)
	}
	if len(j.ScriptRecords) != 1 || j.ScriptRecords[0].BaseScriptTag.String() != "latn" {
		t.Fatalf("ScriptRecords = %+v, want one 'latn' record", j.ScriptRecords)
	}
	if len(j.Raw) != len(raw) {
		t.Errorf("len(Raw) = %d, want %d", len(j.Raw), len(raw))
	}
}

func TestReadMATHHeaderOffsetsAndRawBytes(t *testing.T) {
	var raw []byte
	raw = append(raw, u16be(1)...)  // majorVersion
	raw = append(raw, u16be(0)...)  // minorVersion
	raw = append(raw, u16be(10)...) // mathConstantsOffset
	raw = append(raw, u16be(20)...) // mathGlyphInfoOffset
	raw = append(raw, u16be(30)...) // mathVariantsOffset
	raw = append(raw, make([]byte, 20)...)

	m, err := ReadMATH(table.NewBuffer(raw), len(raw))
	if err != nil {
		t.Fatalf("ReadMATH() error = %v", err)
	}
	if m.MathConstantsOffset != 10 || m.MathGlyphInfoOffset != 20 || m.MathVariantsOffset != 30 {
		t.Errorf("offsets = (%d, %d, %d), want (10, 20, 30)", m.MathConstantsOffset, m.MathGlyphInfoOffset, m.MathVariantsOffset)
	}
	if len(m.Raw) != len(raw) {
		t.Errorf("len(Raw) = %d, want %d", len(m.Raw), len(raw))
	}
}
