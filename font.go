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

// Package sfnt reads OpenType and TrueType font resources: the bare SFNT
// envelope, TrueType Collections, and WOFF1 (WOFF2's table transform is
// detected but deliberately not decoded; see Open). A Font exposes each
// table family through its own subpackage type, populated lazily by Parse
// or ParseTable so that callers who only need a handful of tables never pay
// for decoding the rest.
package sfnt

import (
	"fmt"
	"log"
	"strings"

	"fontkit.dev/sfnt/bitmap"
	"fontkit.dev/sfnt/cff"
	"fontkit.dev/sfnt/cmap"
	"fontkit.dev/sfnt/color"
	"fontkit.dev/sfnt/dsig"
	"fontkit.dev/sfnt/gasp"
	"fontkit.dev/sfnt/glyf"
	"fontkit.dev/sfnt/head"
	"fontkit.dev/sfnt/hhea"
	"fontkit.dev/sfnt/hmtx"
	"fontkit.dev/sfnt/layout"
	"fontkit.dev/sfnt/loca"
	"fontkit.dev/sfnt/maxp"
	"fontkit.dev/sfnt/name"
	"fontkit.dev/sfnt/os2"
	"fontkit.dev/sfnt/post"
	"fontkit.dev/sfnt/program"
	"fontkit.dev/sfnt/table"
	"fontkit.dev/sfnt/variation"
	"fontkit.dev/sfnt/vorg"
)

var (
	tagHead = table.MakeTag("head")
	tagHhea = table.MakeTag("hhea")
	tagMaxp = table.MakeTag("maxp")
	tagHmtx = table.MakeTag("hmtx")
	tagCmap = table.MakeTag("cmap")
	tagName = table.MakeTag("name")
	tagOS2  = table.MakeTag("OS/2")
	tagPost = table.MakeTag("post")
	tagLoca = table.MakeTag("loca")
	tagGlyf = table.MakeTag("glyf")
	tagCvt  = table.MakeTag("cvt ")
	tagFpgm = table.MakeTag("fpgm")
	tagPrep = table.MakeTag("prep")
	tagGasp = table.MakeTag("gasp")
	tagEBLC = table.MakeTag("EBLC")
	tagCBLC = table.MakeTag("CBLC")
	tagEBDT = table.MakeTag("EBDT")
	tagCBDT = table.MakeTag("CBDT")
	tagCOLR = table.MakeTag("COLR")
	tagCPAL = table.MakeTag("CPAL")
	tagSbix = table.MakeTag("sbix")
	tagSVG  = table.MakeTag("SVG ")
	tagFvar = table.MakeTag("fvar")
	tagAvar = table.MakeTag("avar")
	tagMVAR = table.MakeTag("MVAR")
	tagHVAR = table.MakeTag("HVAR")
	tagGSUB = table.MakeTag("GSUB")
	tagBASE = table.MakeTag("BASE")
	tagJSTF = table.MakeTag("JSTF")
	tagMATH = table.MakeTag("MATH")
	tagDSIG = table.MakeTag("DSIG")
	tagLTSH = table.MakeTag("LTSH")
	tagVORG = table.MakeTag("VORG")
	tagCFF  = table.MakeTag("CFF ")

	// requiredTags names the tables every Parse call decodes first, in the
	// fixed dependency order hmtx (needs hhea+maxp) and the rest require.
	requiredTags = []table.Tag{tagHead, tagHhea, tagMaxp, tagHmtx, tagCmap, tagName, tagOS2, tagPost}
)

// Font is one member font of a FontContainer: a table directory plus
// whichever tables Parse or ParseTable has decoded so far. Accessors for a
// table return nil until that table has been parsed.
type Font struct {
	raw       []byte
	directory *table.Directory
	format    table.Format
	flavor    table.Flavor

	Head *head.Info
	Hhea *hhea.Info
	Maxp *maxp.Info
	Hmtx *hmtx.Info
	Cmap *cmap.Table
	Name *name.Table
	OS2  *os2.Info
	Post *post.Info

	Loca []uint32
	Glyf *glyf.Table

	CVT  program.ControlValues
	Fpgm program.Bytecode
	Prep program.Bytecode

	Gasp *gasp.Table

	EBLC *bitmap.Location
	EBDT []byte
	CBLC *bitmap.Location
	CBDT []byte

	COLR *color.COLR
	CPAL *color.CPAL
	Sbix *color.Sbix
	SVG  *color.SVG

	Fvar *variation.Fvar
	Avar *variation.Avar
	MVAR *variation.MVAR
	HVAR *variation.HVAR

	GSUB *layout.GSUB
	BASE *layout.BASE
	JSTF *layout.JSTF
	MATH *layout.MATH

	DSIG *dsig.DSIG
	LTSH *dsig.LTSH
	VORG *vorg.VORG

	CFF *cff.Table
}

// Format reports the envelope the font was read from.
func (f *Font) Format() table.Format { return f.format }

// Flavor reports the outline technology (TrueType or CFF) the font uses.
func (f *Font) Flavor() table.Flavor { return f.flavor }

// Directory returns the font's table directory.
func (f *Font) Directory() *table.Directory { return f.directory }

// Contains reports whether tag is present in the font's directory.
func (f *Font) Contains(tag table.Tag) bool { return f.directory.Contains(tag) }

// Length returns the on-disk (decompressed, for WOFF1) byte length of tag.
func (f *Font) Length(tag table.Tag) (uint32, bool) {
	rec, ok := f.directory.Find(tag)
	if !ok {
		return 0, false
	}
	return rec.Length, true
}

// Offset returns the absolute byte offset of tag within the resource.
func (f *Font) Offset(tag table.Tag) (uint32, bool) {
	rec, ok := f.directory.Find(tag)
	if !ok {
		return 0, false
	}
	return rec.Offset, true
}

// CompressedLength returns the on-disk compressed byte length of tag. It is
// only meaningful for WOFF1 fonts; for every other format it returns
// (0, false).
func (f *Font) CompressedLength(tag table.Tag) (uint32, bool) {
	rec, ok := f.directory.Find(tag)
	if !ok || f.format != table.FormatWOFF {
		return 0, false
	}
	return rec.CompressedLength, true
}

// tableBuffer locates tag in the directory and returns a Buffer positioned
// at the start of its decoded bytes, transparently inflating WOFF1's
// per-table zlib streams.
func (f *Font) tableBuffer(tag table.Tag) (*table.Buffer, table.Record, error) {
	rec, ok := f.directory.Find(tag)
	if !ok {
		return nil, table.Record{}, &table.ErrMissingTable{Name: tag.String()}
	}
	if f.format == table.FormatWOFF && rec.CompressedLength != 0 && rec.CompressedLength != rec.Length {
		src := table.NewBuffer(f.raw)
		src.SetOffset(int(rec.Offset))
		buf, err := src.ZlibDecompress(int(rec.CompressedLength))
		if err != nil {
			return nil, rec, table.Wrap(table.KindDecompression, tag, err)
		}
		return buf, rec, nil
	}
	start, end := int(rec.Offset), int(rec.Offset)+int(rec.Length)
	if start < 0 || end < start || end > len(f.raw) {
		return nil, rec, table.Errorf(table.KindUnexpectedEnd, tag, "table record [%d:%d] exceeds resource length %d", start, end, len(f.raw))
	}
	return table.NewBuffer(f.raw[start:end]), rec, nil
}

// Parse decodes the required table set (head, hhea, maxp, hmtx, cmap, name,
// OS/2, post) followed by every optional table present in the directory,
// honoring the dependency order head/maxp before loca, loca before glyf,
// and EBLC/CBLC before EBDT/CBDT. It stops at the first error.
func (f *Font) Parse() error {
	if f.format == table.FormatWOFF2 {
		return table.Errorf(table.KindUnsupportedWOFF2, table.Tag{}, "WOFF2 table transform decoding is not implemented")
	}
	for _, tag := range requiredTags {
		if !f.directory.Contains(tag) {
			continue
		}
		if err := f.ParseTable(tag); err != nil {
			return err
		}
	}
	for _, tag := range f.directory.Tags() {
		if isRequiredTag(tag) {
			continue
		}
		if err := f.ParseTable(tag); err != nil {
			return err
		}
	}
	return nil
}

func isRequiredTag(tag table.Tag) bool {
	for _, t := range requiredTags {
		if t == tag {
			return true
		}
	}
	return false
}

// ParseTable decodes a single table by tag, pulling in whatever
// prerequisite tables it depends on (e.g. ParseTable("glyf") parses "head"
// and "loca" first if they are not parsed yet). It is idempotent: calling
// it twice for the same tag simply re-decodes it.
func (f *Font) ParseTable(tag table.Tag) error {
	if f.format == table.FormatWOFF2 {
		return table.Errorf(table.KindUnsupportedWOFF2, tag, "WOFF2 table transform decoding is not implemented")
	}

	switch tag {
	case tagHead:
		buf, _, err := f.tableBuffer(tagHead)
		if err != nil {
			return err
		}
		f.Head, err = head.Read(buf)
		return err

	case tagHhea:
		buf, _, err := f.tableBuffer(tagHhea)
		if err != nil {
			return err
		}
		f.Hhea, err = hhea.Read(buf)
		return err

	case tagMaxp:
		buf, _, err := f.tableBuffer(tagMaxp)
		if err != nil {
			return err
		}
		f.Maxp, err = maxp.Read(buf)
		return err

	case tagHmtx:
		if err := f.requireTables(tagHhea, tagMaxp); err != nil {
			return err
		}
		buf, _, err := f.tableBuffer(tagHmtx)
		if err != nil {
			return err
		}
		f.Hmtx, err = hmtx.Read(buf, int(f.Maxp.NumGlyphs), int(f.Hhea.NumberOfHMetrics))
		return err

	case tagCmap:
		buf, _, err := f.tableBuffer(tagCmap)
		if err != nil {
			return err
		}
		f.Cmap, err = cmap.Read(buf)
		return err

	case tagName:
		buf, _, err := f.tableBuffer(tagName)
		if err != nil {
			return err
		}
		f.Name, err = name.Read(buf)
		return err

	case tagOS2:
		buf, rec, err := f.tableBuffer(tagOS2)
		if err != nil {
			return err
		}
		f.OS2, err = os2.Read(buf, int(rec.Length))
		return err

	case tagPost:
		buf, _, err := f.tableBuffer(tagPost)
		if err != nil {
			return err
		}
		f.Post, err = post.Read(buf)
		return err

	case tagLoca:
		if err := f.requireTables(tagHead, tagMaxp); err != nil {
			return err
		}
		buf, rec, err := f.tableBuffer(tagLoca)
		if err != nil {
			return err
		}
		unit := 2
		if f.Head.IndexToLocFormat != 0 {
			unit = 4
		}
		if n := int(rec.Length)/unit - 1; n != int(f.Maxp.NumGlyphs) {
			log.Printf("sfnt: loca has offsets for %d glyphs, maxp.numGlyphs is %d", n, f.Maxp.NumGlyphs)
		}
		f.Loca, err = loca.Read(buf, int(f.Maxp.NumGlyphs), f.Head.IndexToLocFormat != 0)
		return err

	case tagGlyf:
		if f.Loca == nil {
			if err := f.ParseTable(tagLoca); err != nil {
				return err
			}
		}
		rec, ok := f.directory.Find(tagGlyf)
		if !ok {
			return &table.ErrMissingTable{Name: tagGlyf.String()}
		}
		raw, err := f.rawTableBytes(rec)
		if err != nil {
			return err
		}
		f.Glyf = glyf.New(raw, f.Loca)
		return nil

	case tagCvt:
		buf, rec, err := f.tableBuffer(tagCvt)
		if err != nil {
			return err
		}
		f.CVT, err = program.ReadCVT(buf, int(rec.Length))
		return err

	case tagFpgm:
		buf, rec, err := f.tableBuffer(tagFpgm)
		if err != nil {
			return err
		}
		f.Fpgm, err = program.ReadFpgm(buf, int(rec.Length))
		return err

	case tagPrep:
		buf, rec, err := f.tableBuffer(tagPrep)
		if err != nil {
			return err
		}
		f.Prep, err = program.ReadPrep(buf, int(rec.Length))
		return err

	case tagGasp:
		buf, _, err := f.tableBuffer(tagGasp)
		if err != nil {
			return err
		}
		f.Gasp, err = gasp.Read(buf)
		return err

	case tagEBLC:
		buf, _, err := f.tableBuffer(tagEBLC)
		if err != nil {
			return err
		}
		f.EBLC, err = bitmap.ReadLocation(buf)
		return err

	case tagCBLC:
		buf, _, err := f.tableBuffer(tagCBLC)
		if err != nil {
			return err
		}
		f.CBLC, err = bitmap.ReadLocation(buf)
		return err

	case tagEBDT:
		if f.EBLC == nil && f.directory.Contains(tagEBLC) {
			if err := f.ParseTable(tagEBLC); err != nil {
				return err
			}
		}
		rec, ok := f.directory.Find(tagEBDT)
		if !ok {
			return &table.ErrMissingTable{Name: tagEBDT.String()}
		}
		raw, err := f.rawTableBytes(rec)
		if err != nil {
			return err
		}
		f.EBDT = raw
		return nil

	case tagCBDT:
		if f.CBLC == nil && f.directory.Contains(tagCBLC) {
			if err := f.ParseTable(tagCBLC); err != nil {
				return err
			}
		}
		rec, ok := f.directory.Find(tagCBDT)
		if !ok {
			return &table.ErrMissingTable{Name: tagCBDT.String()}
		}
		raw, err := f.rawTableBytes(rec)
		if err != nil {
			return err
		}
		f.CBDT = raw
		return nil

	case tagCOLR:
		buf, _, err := f.tableBuffer(tagCOLR)
		if err != nil {
			return err
		}
		f.COLR, err = color.ReadCOLR(buf)
		return err

	case tagCPAL:
		buf, _, err := f.tableBuffer(tagCPAL)
		if err != nil {
			return err
		}
		f.CPAL, err = color.ReadCPAL(buf)
		return err

	case tagSbix:
		if err := f.requireTables(tagMaxp); err != nil {
			return err
		}
		buf, _, err := f.tableBuffer(tagSbix)
		if err != nil {
			return err
		}
		f.Sbix, err = color.ReadSbix(buf, int(f.Maxp.NumGlyphs))
		return err

	case tagSVG:
		buf, _, err := f.tableBuffer(tagSVG)
		if err != nil {
			return err
		}
		f.SVG, err = color.ReadSVG(buf)
		return err

	case tagFvar:
		buf, _, err := f.tableBuffer(tagFvar)
		if err != nil {
			return err
		}
		f.Fvar, err = variation.ReadFvar(buf)
		return err

	case tagAvar:
		if f.Fvar == nil {
			if err := f.ParseTable(tagFvar); err != nil {
				return err
			}
		}
		buf, _, err := f.tableBuffer(tagAvar)
		if err != nil {
			return err
		}
		f.Avar, err = variation.ReadAvar(buf, len(f.Fvar.Axes))
		return err

	case tagMVAR:
		buf, _, err := f.tableBuffer(tagMVAR)
		if err != nil {
			return err
		}
		f.MVAR, err = variation.ReadMVAR(buf)
		return err

	case tagHVAR:
		buf, rec, err := f.tableBuffer(tagHVAR)
		if err != nil {
			return err
		}
		f.HVAR, err = variation.ReadHVAR(buf, int(rec.Length))
		return err

	case tagGSUB:
		buf, _, err := f.tableBuffer(tagGSUB)
		if err != nil {
			return err
		}
		f.GSUB, err = layout.ReadGSUB(buf)
		return err

	case tagBASE:
		buf, _, err := f.tableBuffer(tagBASE)
		if err != nil {
			return err
		}
		f.BASE, err = layout.ReadBASE(buf)
		return err

	case tagJSTF:
		buf, rec, err := f.tableBuffer(tagJSTF)
		if err != nil {
			return err
		}
		f.JSTF, err = layout.ReadJSTF(buf, int(rec.Length))
		return err

	case tagMATH:
		buf, rec, err := f.tableBuffer(tagMATH)
		if err != nil {
			return err
		}
		f.MATH, err = layout.ReadMATH(buf, int(rec.Length))
		return err

	case tagDSIG:
		buf, _, err := f.tableBuffer(tagDSIG)
		if err != nil {
			return err
		}
		f.DSIG, err = dsig.ReadDSIG(buf)
		return err

	case tagLTSH:
		if err := f.requireTables(tagMaxp); err != nil {
			return err
		}
		buf, _, err := f.tableBuffer(tagLTSH)
		if err != nil {
			return err
		}
		f.LTSH, err = dsig.ReadLTSH(buf, int(f.Maxp.NumGlyphs))
		return err

	case tagVORG:
		buf, _, err := f.tableBuffer(tagVORG)
		if err != nil {
			return err
		}
		f.VORG, err = vorg.Read(buf)
		return err

	case tagCFF:
		buf, _, err := f.tableBuffer(tagCFF)
		if err != nil {
			return err
		}
		f.CFF, err = cff.Read(buf)
		return err

	default:
		return table.Errorf(table.KindBadFormat, tag, "no decoder registered for table %q", tag.String())
	}
}

// requireTables parses any of tags not yet decoded, in the order given.
// It is how ParseTable expresses a prerequisite without forcing callers to
// remember cross-table dependencies themselves.
func (f *Font) requireTables(tags ...table.Tag) error {
	for _, tag := range tags {
		if f.isParsed(tag) {
			continue
		}
		if !f.directory.Contains(tag) {
			return &table.ErrMissingTable{Name: tag.String()}
		}
		if err := f.ParseTable(tag); err != nil {
			return err
		}
	}
	return nil
}

func (f *Font) isParsed(tag table.Tag) bool {
	switch tag {
	case tagHead:
		return f.Head != nil
	case tagHhea:
		return f.Hhea != nil
	case tagMaxp:
		return f.Maxp != nil
	}
	return false
}

// rawTableBytes returns rec's bytes verbatim (decompressed for WOFF1),
// for table families (glyf, EBDT, CBDT) that build their own Buffer views
// internally rather than being handed one.
func (f *Font) rawTableBytes(rec table.Record) ([]byte, error) {
	if f.format == table.FormatWOFF && rec.CompressedLength != 0 && rec.CompressedLength != rec.Length {
		src := table.NewBuffer(f.raw)
		src.SetOffset(int(rec.Offset))
		buf, err := src.ZlibDecompress(int(rec.CompressedLength))
		if err != nil {
			return nil, table.Wrap(table.KindDecompression, rec.Tag, err)
		}
		return buf.Bytes(buf.Len())
	}
	start, end := int(rec.Offset), int(rec.Offset)+int(rec.Length)
	if start < 0 || end < start || end > len(f.raw) {
		return nil, table.Errorf(table.KindUnexpectedEnd, rec.Tag, "table record [%d:%d] exceeds resource length %d", start, end, len(f.raw))
	}
	return f.raw[start:end], nil
}

// FormatInfo renders a stable, indentable listing of the font's table
// directory: tag, checksum, length and offset, one line per table in
// on-disk order.
func (f *Font) FormatInfo(indent string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%sformat=%s flavor=%s tables=%d\n", indent, f.format, f.flavor, f.directory.Len())
	for _, rec := range f.directory.Records() {
		fmt.Fprintf(&sb, "%s  %-4s checksum=%08X length=%-8d offset=%d", indent, rec.Tag.String(), rec.Checksum, rec.Length, rec.Offset)
		if f.format == table.FormatWOFF {
			fmt.Fprintf(&sb, " compressedLength=%d", rec.CompressedLength)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// FontContainer is a parsed font resource: one or more Font values sharing
// the resource's raw bytes. A bare SFNT or WOFF1 resource yields exactly
// one Font; a TrueType Collection yields one Font per member.
type FontContainer struct {
	raw    []byte
	Format table.Format
	Fonts  []*Font
}

// Open classifies raw's envelope and decodes enough of it to enumerate its
// member fonts and their table directories. It does not decode any table
// payload; call Parse or ParseTable on a Font for that.
//
// WOFF2 resources are recognized but their table transform (brotli
// compression plus a bit-packed table directory) is not decoded: Open
// succeeds, the returned Font's directory is empty, and any ParseTable call
// fails with KindUnsupportedWOFF2.
func Open(raw []byte) (*FontContainer, error) {
	peek := table.NewBuffer(raw)
	sig, err := peek.U32()
	if err != nil {
		return nil, err
	}
	envelope, err := table.ClassifySignature(sig)
	if err != nil {
		return nil, err
	}

	c := &FontContainer{raw: raw}
	switch envelope {
	case table.EnvelopeSFNT:
		c.Format = table.FormatSFNT
		buf := table.NewBuffer(raw)
		h, err := table.ReadSFNTHeader(buf)
		if err != nil {
			return nil, err
		}
		c.Fonts = []*Font{{
			raw:       raw,
			directory: h.Directory,
			format:    table.FormatSFNT,
			flavor:    table.FlavorFromSignature(h.Signature),
		}}

	case table.EnvelopeTTC:
		c.Format = table.FormatSFNT
		buf := table.NewBuffer(raw)
		h, err := table.ReadTTCHeader(buf)
		if err != nil {
			return nil, err
		}
		c.Fonts = make([]*Font, len(h.Offsets))
		for i, off := range h.Offsets {
			member := table.NewBuffer(raw)
			member.SetOffset(int(off))
			mh, err := table.ReadSFNTHeader(member)
			if err != nil {
				return nil, err
			}
			c.Fonts[i] = &Font{
				raw:       raw,
				directory: mh.Directory,
				format:    table.FormatSFNT,
				flavor:    table.FlavorFromSignature(mh.Signature),
			}
		}

	case table.EnvelopeWOFF:
		c.Format = table.FormatWOFF
		buf := table.NewBuffer(raw)
		h, err := table.ReadWOFFHeader(buf)
		if err != nil {
			return nil, err
		}
		c.Fonts = []*Font{{
			raw:       raw,
			directory: h.Directory,
			format:    table.FormatWOFF,
			flavor:    table.FlavorFromSignature(h.Flavor),
		}}

	case table.EnvelopeWOFF2:
		c.Format = table.FormatWOFF2
		buf := table.NewBuffer(raw)
		h, err := table.ReadWOFF2Header(buf)
		if err != nil {
			return nil, err
		}
		c.Fonts = []*Font{{
			raw:       raw,
			directory: table.NewDirectory(),
			format:    table.FormatWOFF2,
			flavor:    table.FlavorFromSignature(h.Flavor),
		}}

	default:
		return nil, table.Errorf(table.KindUnknownSignature, table.Tag{}, "0x%08X matches no known envelope", sig)
	}
	return c, nil
}
