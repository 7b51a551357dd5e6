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

// Package layout decodes the OpenType Layout table family's shared
// primitives (Coverage, ClassDef) and the tables built from them: "GSUB"
// (glyph substitution; lookup subtables are kept as raw byte offsets —
// each of GSUB's eight lookup types has its own involved subformat, and
// resolving one requires the shaping engine's context, not just the glyph
// model this package builds), "BASE" (baseline positioning), "JSTF"
// (justification), and "MATH" (math layout constants). JSTF and MATH
// structures beyond their top-level offsets are likewise kept raw for the
// same reason.
package layout

import "fontkit.dev/sfnt/table"

// Coverage lists the glyphs a lookup or rule applies to, either as an
// explicit sorted glyph array (format 1) or as sorted ranges (format 2).
type Coverage struct {
	Format uint16
	Glyphs []uint16       // format 1
	Ranges []RangeRecord  // format 2
}

// RangeRecord is one contiguous glyph-ID run in a format-2 Coverage table,
// with the coverage index of its first glyph.
type RangeRecord struct {
	StartGlyphID        uint16
	EndGlyphID          uint16
	StartCoverageIndex  uint16
}

// ReadCoverage decodes a Coverage table from buf.
func ReadCoverage(buf *table.Buffer) (*Coverage, error) {
	tag := table.MakeTag("cov ")
	c := &Coverage{}
	var err error
	if c.Format, err = buf.U16(); err != nil {
		return nil, err
	}
	switch c.Format {
	case 1:
		count, err := buf.U16()
		if err != nil {
			return nil, err
		}
		if c.Glyphs, err = buf.U16Vec(int(count)); err != nil {
			return nil, err
		}
	case 2:
		count, err := buf.U16()
		if err != nil {
			return nil, err
		}
		c.Ranges = make([]RangeRecord, count)
		for i := range c.Ranges {
			var r RangeRecord
			if r.StartGlyphID, err = buf.U16(); err != nil {
				return nil, err
			}
			if r.EndGlyphID, err = buf.U16(); err != nil {
				return nil, err
			}
			if r.StartCoverageIndex, err = buf.U16(); err != nil {
				return nil, err
			}
			c.Ranges[i] = r
		}
	default:
		return nil, table.Errorf(table.KindBadFormat, tag, "unsupported Coverage format %d", c.Format)
	}
	return c, nil
}

// Index returns the coverage index of gid, or (0, false) if gid is not
// covered.
func (c *Coverage) Index(gid uint16) (int, bool) {
	switch c.Format {
	case 1:
		for i, g := range c.Glyphs {
			if g == gid {
				return i, true
			}
		}
	case 2:
		for _, r := range c.Ranges {
			if gid >= r.StartGlyphID && gid <= r.EndGlyphID {
				return int(r.StartCoverageIndex) + int(gid-r.StartGlyphID), true
			}
		}
	}
	return 0, false
}

// ClassRangeRecord assigns one contiguous glyph-ID run to a class in a
// format-2 ClassDef table.
type ClassRangeRecord struct {
	StartGlyphID uint16
	EndGlyphID   uint16
	Class        uint16
}

// ClassDef partitions a glyph set into numbered classes, either as a flat
// array over a contiguous glyph range (format 1) or as class ranges
// (format 2). Glyphs outside every declared range are class 0.
type ClassDef struct {
	Format        uint16
	StartGlyphID  uint16 // format 1
	ClassValues   []uint16 // format 1
	ClassRanges   []ClassRangeRecord // format 2
}

// ReadClassDef decodes a ClassDef table from buf.
func ReadClassDef(buf *table.Buffer) (*ClassDef, error) {
	tag := table.MakeTag("clsd")
	c := &ClassDef{}
	var err error
	if c.Format, err = buf.U16(); err != nil {
		return nil, err
	}
	switch c.Format {
	case 1:
		if c.StartGlyphID, err = buf.U16(); err != nil {
			return nil, err
		}
		count, err := buf.U16()
		if err != nil {
			return nil, err
		}
		if c.ClassValues, err = buf.U16Vec(int(count)); err != nil {
			return nil, err
		}
	case 2:
		count, err := buf.U16()
		if err != nil {
			return nil, err
		}
		c.ClassRanges = make([]ClassRangeRecord, count)
		for i := range c.ClassRanges {
			var r ClassRangeRecord
			if r.StartGlyphID, err = buf.U16(); err != nil {
				return nil, err
			}
			if r.EndGlyphID, err = buf.U16(); err != nil {
				return nil, err
			}
			if r.Class, err = buf.U16(); err != nil {
				return nil, err
			}
			c.ClassRanges[i] = r
		}
	default:
		return nil, table.Errorf(table.KindBadFormat, tag, "unsupported ClassDef format %d", c.Format)
	}
	return c, nil
}

// Class returns the class assigned to gid (0 if none).
func (c *ClassDef) Class(gid uint16) uint16 {
	switch c.Format {
	case 1:
		if gid < c.StartGlyphID {
			return 0
		}
		i := int(gid - c.StartGlyphID)
		if i >= len(c.ClassValues) {
			return 0
		}
		return c.ClassValues[i]
	case 2:
		for _, r := range c.ClassRanges {
			if gid >= r.StartGlyphID && gid <= r.EndGlyphID {
				return r.Class
			}
		}
	}
	return 0
}

// LangSysRecord names one language system within a ScriptRecord.
type LangSysRecord struct {
	LangSysTag    table.Tag
	LookupOrderOffset uint16 // reserved, always 0 in practice
	RequiredFeatureIndex uint16
	FeatureIndices []uint16
}

// ScriptRecord is one script's default and language-specific feature sets.
type ScriptRecord struct {
	ScriptTag      table.Tag
	DefaultLangSys *LangSysRecord
	LangSysRecords []LangSysRecord
}

// FeatureRecord names one feature and the lookups it applies.
type FeatureRecord struct {
	FeatureTag    table.Tag
	LookupIndices []uint16
}

// LookupRecord is one lookup's shared header: its type and flags, plus the
// raw subtable byte offsets within the owning table. Subtable contents are
// not decoded here; see the package doc comment.
type LookupRecord struct {
	LookupType      uint16
	LookupFlag      uint16
	SubtableOffsets []uint16
	MarkFilteringSet uint16 // valid only when LookupFlag has the USE_MARK_FILTERING_SET bit set
}

const markFilteringSetFlag = 0x0010

func readLookupRecord(buf *table.Buffer) (LookupRecord, error) {
	var l LookupRecord
	var err error
	if l.LookupType, err = buf.U16(); err != nil {
		return l, err
	}
	if l.LookupFlag, err = buf.U16(); err != nil {
		return l, err
	}
	subtableCount, err := buf.U16()
	if err != nil {
		return l, err
	}
	if l.SubtableOffsets, err = buf.U16Vec(int(subtableCount)); err != nil {
		return l, err
	}
	if l.LookupFlag&markFilteringSetFlag != 0 {
		if l.MarkFilteringSet, err = buf.U16(); err != nil {
			return l, err
		}
	}
	return l, nil
}

// GSUB is the decoded "GSUB" glyph substitution table: the shared
// script/feature/lookup list structure common to every OpenType Layout
// table.
type GSUB struct {
	MajorVersion, MinorVersion uint16
	Scripts   []ScriptRecord
	Features  []FeatureRecord
	Lookups   []LookupRecord
	// FeatureVariationsOffset is non-zero only for version 1.1 tables; the
	// feature variations structure is not decoded.
	FeatureVariationsOffset uint32
}

// ReadGSUB decodes a "GSUB" table from buf.
func ReadGSUB(buf *table.Buffer) (*GSUB, error) {
	tableStart := buf.Offset()
	g := &GSUB{}
	var err error
	if g.MajorVersion, err = buf.U16(); err != nil {
		return nil, err
	}
	if g.MinorVersion, err = buf.U16(); err != nil {
		return nil, err
	}
	scriptListOffset, err := buf.U16()
	if err != nil {
		return nil, err
	}
	featureListOffset, err := buf.U16()
	if err != nil {
		return nil, err
	}
	lookupListOffset, err := buf.U16()
	if err != nil {
		return nil, err
	}
	if g.MinorVersion == 1 {
		if g.FeatureVariationsOffset, err = buf.U32(); err != nil {
			return nil, err
		}
	}

	if g.Scripts, err = readScriptList(buf, tableStart, int(scriptListOffset)); err != nil {
		return nil, err
	}
	if g.Features, err = readFeatureList(buf, tableStart, int(featureListOffset)); err != nil {
		return nil, err
	}
	if g.Lookups, err = readLookupList(buf, tableStart, int(lookupListOffset)); err != nil {
		return nil, err
	}
	return g, nil
}

func readLangSys(buf *table.Buffer) (LangSysRecord, error) {
	var l LangSysRecord
	var err error
	if l.LookupOrderOffset, err = buf.U16(); err != nil {
		return l, err
	}
	if l.RequiredFeatureIndex, err = buf.U16(); err != nil {
		return l, err
	}
	count, err := buf.U16()
	if err != nil {
		return l, err
	}
	if l.FeatureIndices, err = buf.U16Vec(int(count)); err != nil {
		return l, err
	}
	return l, nil
}

func readScriptList(buf *table.Buffer, tableStart, offset int) ([]ScriptRecord, error) {
	buf.SetOffsetFrom(tableStart, offset)
	listStart := buf.Offset()
	count, err := buf.U16()
	if err != nil {
		return nil, err
	}
	type rawRec struct {
		tag    table.Tag
		offset uint16
	}
	raws := make([]rawRec, count)
	for i := range raws {
		var r rawRec
		if r.tag, err = buf.Tag(); err != nil {
			return nil, err
		}
		if r.offset, err = buf.U16(); err != nil {
			return nil, err
		}
		raws[i] = r
	}
	scripts := make([]ScriptRecord, count)
	for i, r := range raws {
		buf.SetOffset(listStart + int(r.offset))
		scriptTableStart := buf.Offset()
		defaultLangSysOffset, err := buf.U16()
		if err != nil {
			return nil, err
		}
		langSysCount, err := buf.U16()
		if err != nil {
			return nil, err
		}
		type rawLangSysRec struct {
			tag    table.Tag
			offset uint16
		}
		rawLangSys := make([]rawLangSysRec, langSysCount)
		for j := range rawLangSys {
			var lr rawLangSysRec
			if lr.tag, err = buf.Tag(); err != nil {
				return nil, err
			}
			if lr.offset, err = buf.U16(); err != nil {
				return nil, err
			}
			rawLangSys[j] = lr
		}

		sr := ScriptRecord{ScriptTag: r.tag}
		if defaultLangSysOffset != 0 {
			buf.SetOffset(scriptTableStart + int(defaultLangSysOffset))
			ls, err := readLangSys(buf)
			if err != nil {
				return nil, err
			}
			sr.DefaultLangSys = &ls
		}
		sr.LangSysRecords = make([]LangSysRecord, langSysCount)
		for j, lr := range rawLangSys {
			buf.SetOffset(scriptTableStart + int(lr.offset))
			ls, err := readLangSys(buf)
			if err != nil {
				return nil, err
			}
			ls.LangSysTag = lr.tag
			sr.LangSysRecords[j] = ls
		}
		scripts[i] = sr
	}
	return scripts, nil
}

func readFeatureList(buf *table.Buffer, tableStart, offset int) ([]FeatureRecord, error) {
	buf.SetOffsetFrom(tableStart, offset)
	listStart := buf.Offset()
	count, err := buf.U16()
	if err != nil {
		return nil, err
	}
	type rawRec struct {
		tag    table.Tag
		offset uint16
	}
	raws := make([]rawRec, count)
	for i := range raws {
		var r rawRec
		if r.tag, err = buf.Tag(); err != nil {
			return nil, err
		}
		if r.offset, err = buf.U16(); err != nil {
			return nil, err
		}
		raws[i] = r
	}
	features := make([]FeatureRecord, count)
	for i, r := range raws {
		buf.SetOffset(listStart + int(r.offset))
		buf.SkipU16(1) // featureParamsOffset, rarely used, not decoded
		lookupCount, err := buf.U16()
		if err != nil {
			return nil, err
		}
		indices, err := buf.U16Vec(int(lookupCount))
		if err != nil {
			return nil, err
		}
		features[i] = FeatureRecord{FeatureTag: r.tag, LookupIndices: indices}
	}
	return features, nil
}

func readLookupList(buf *table.Buffer, tableStart, offset int) ([]LookupRecord, error) {
	buf.SetOffsetFrom(tableStart, offset)
	listStart := buf.Offset()
	count, err := buf.U16()
	if err != nil {
		return nil, err
	}
	offsets, err := buf.U16Vec(int(count))
	if err != nil {
		return nil, err
	}
	lookups := make([]LookupRecord, count)
	for i, off := range offsets {
		buf.SetOffset(listStart + int(off))
		l, err := readLookupRecord(buf)
		if err != nil {
			return nil, err
		}
		lookups[i] = l
	}
	return lookups, nil
}

// BaseTagList names the baseline tags an Axis table's BaseScriptList
// coordinates are expressed against.
type BaseTagList struct {
	BaselineTags []table.Tag
}

// BaseScriptRecord locates one script's baseline data within an Axis
// table. The BaseScript payload itself (default baseline index, min/max
// extents, per-language baseline coordinates) is kept as a raw offset:
// BASE is rarely consulted outside a full text-shaping stack, and its
// BaseCoord variants (three format variants, one device-table-bearing) add
// little over exposing the byte region for a shaping layer to decode on
// demand.
type BaseScriptRecord struct {
	BaseScriptTag table.Tag
	Offset        uint16
}

// Axis is one "BASE" horizontal or vertical axis table.
type Axis struct {
	BaseTagList   *BaseTagList
	BaseScripts   []BaseScriptRecord
}

// BASE is the decoded "BASE" baseline table.
type BASE struct {
	MajorVersion, MinorVersion uint16
	HorizAxis, VertAxis        *Axis
}

// ReadBASE decodes a "BASE" table from buf.
func ReadBASE(buf *table.Buffer) (*BASE, error) {
	tableStart := buf.Offset()
	b := &BASE{}
	var err error
	if b.MajorVersion, err = buf.U16(); err != nil {
		return nil, err
	}
	if b.MinorVersion, err = buf.U16(); err != nil {
		return nil, err
	}
	horizAxisOffset, err := buf.U16()
	if err != nil {
		return nil, err
	}
	vertAxisOffset, err := buf.U16()
	if err != nil {
		return nil, err
	}
	if horizAxisOffset != 0 {
		if b.HorizAxis, err = readAxis(buf, tableStart, int(horizAxisOffset)); err != nil {
			return nil, err
		}
	}
	if vertAxisOffset != 0 {
		if b.VertAxis, err = readAxis(buf, tableStart, int(vertAxisOffset)); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func readAxis(buf *table.Buffer, tableStart, offset int) (*Axis, error) {
	buf.SetOffsetFrom(tableStart, offset)
	axisStart := buf.Offset()
	baseTagListOffset, err := buf.U16()
	if err != nil {
		return nil, err
	}
	baseScriptListOffset, err := buf.U16()
	if err != nil {
		return nil, err
	}
	a := &Axis{}
	if baseTagListOffset != 0 {
		buf.SetOffset(axisStart + int(baseTagListOffset))
		count, err := buf.U16()
		if err != nil {
			return nil, err
		}
		tags := make([]table.Tag, count)
		for i := range tags {
			if tags[i], err = buf.Tag(); err != nil {
				return nil, err
			}
		}
		a.BaseTagList = &BaseTagList{BaselineTags: tags}
	}

	buf.SetOffset(axisStart + int(baseScriptListOffset))
	count, err := buf.U16()
	if err != nil {
		return nil, err
	}
	a.BaseScripts = make([]BaseScriptRecord, count)
	for i := range a.BaseScripts {
		var r BaseScriptRecord
		if r.BaseScriptTag, err = buf.Tag(); err != nil {
			return nil, err
		}
		if r.Offset, err = buf.U16(); err != nil {
			return nil, err
		}
		a.BaseScripts[i] = r
	}
	return a, nil
}

// JSTF is the decoded "JSTF" justification table header. Per-script
// justification data (extender glyphs, priority tables) is kept raw; it is
// rare in practice and, like BASE's per-script payload, is a shaping-layer
// concern.
type JSTF struct {
	MajorVersion, MinorVersion uint16
	ScriptCount                uint16
	ScriptRecords              []BaseScriptRecord // reuses the {tag, offset} shape
	Raw                        []byte
}

// ReadJSTF decodes a "JSTF" table from buf.
func ReadJSTF(buf *table.Buffer, tableLength int) (*JSTF, error) {
	tableStart := buf.Offset()
	j := &JSTF{}
	var err error
	if j.MajorVersion, err = buf.U16(); err != nil {
		return nil, err
	}
	if j.MinorVersion, err = buf.U16(); err != nil {
		return nil, err
	}
	if j.ScriptCount, err = buf.U16(); err != nil {
		return nil, err
	}
	j.ScriptRecords = make([]BaseScriptRecord, j.ScriptCount)
	for i := range j.ScriptRecords {
		var r BaseScriptRecord
		if r.BaseScriptTag, err = buf.Tag(); err != nil {
			return nil, err
		}
		if r.Offset, err = buf.U16(); err != nil {
			return nil, err
		}
		j.ScriptRecords[i] = r
	}
	buf.SetOffsetFrom(tableStart, 0)
	raw, err := buf.Bytes(tableLength)
	if err != nil {
		return nil, err
	}
	j.Raw = raw
	return j, nil
}

// MATH is the decoded "MATH" table header: the three top-level offsets to
// MathConstants, MathGlyphInfo, and MathVariants. None of the three
// sub-tables is decoded further — together they define several dozen
// constants and variant-glyph assembly rules whose consumption belongs to
// a math-layout engine, not this table reader.
type MATH struct {
	MajorVersion, MinorVersion uint16
	MathConstantsOffset        uint16
	MathGlyphInfoOffset        uint16
	MathVariantsOffset         uint16
	Raw                        []byte
}

// ReadMATH decodes a "MATH" table from buf.
func ReadMATH(buf *table.Buffer, tableLength int) (*MATH, error) {
	tableStart := buf.Offset()
	m := &MATH{}
	var err error
	if m.MajorVersion, err = buf.U16(); err != nil {
		return nil, err
	}
	if m.MinorVersion, err = buf.U16(); err != nil {
		return nil, err
	}
	if m.MathConstantsOffset, err = buf.U16(); err != nil {
		return nil, err
	}
	if m.MathGlyphInfoOffset, err = buf.U16(); err != nil {
		return nil, err
	}
	if m.MathVariantsOffset, err = buf.U16(); err != nil {
		return nil, err
	}
	buf.SetOffsetFrom(tableStart, 0)
	raw, err := buf.Bytes(tableLength)
	if err != nil {
		return nil, err
	}
	m.Raw = raw
	return m, nil
}
