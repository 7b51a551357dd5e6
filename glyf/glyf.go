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

// Package glyf decodes the "glyf" glyph outline table: simple glyphs as
// on/off-curve point lists per contour, and composite glyphs as a list of
// transformed references to other glyphs.
package glyf

import "fontkit.dev/sfnt/table"

const tableTag = "glyf"

// Simple point flag bits.
const (
	flagOnCurvePoint         = 0x01
	flagXShortVector         = 0x02
	flagYShortVector         = 0x04
	flagRepeat               = 0x08
	flagXIsSameOrPositive    = 0x10
	flagYIsSameOrPositive    = 0x20
	flagOverlapSimple        = 0x40
)

// Composite component flag bits.
const (
	compArgsAreWords          = 0x0001
	compArgsAreXYValues       = 0x0002
	compRoundXYToGrid         = 0x0004
	compWeHaveAScale          = 0x0008
	compMoreComponents        = 0x0020
	compWeHaveXAndYScale      = 0x0040
	compWeHaveTwoByTwo        = 0x0080
	compWeHaveInstructions    = 0x0100
	compUseMyMetrics          = 0x0200
	compOverlapCompound       = 0x0400
	compScaledComponentOffset = 0x0800
	compUnscaledComponentOffset = 0x1000
)

// maxComponentDepth is the largest depth glyph accepts. Glyph calls glyph
// with depth 0 and does not decode a composite's referenced glyphs.
const maxComponentDepth = 16

// Point is one outline point, on- or off-curve, in font design units.
type Point struct {
	X, Y    int16
	OnCurve bool
}

// SimpleGlyph is a glyph described directly by its outline.
type SimpleGlyph struct {
	EndPtsOfContours []uint16
	Instructions     []byte
	Points           []Point
	OverlapSimple    bool
}

// Transform is a composite component's 2x2 linear transform plus offset.
type Transform struct {
	A, B, C, D table.F2Dot14
	DX, DY     int16
}

// IdentityTransform is the transform implied when a component carries
// neither WE_HAVE_A_SCALE, WE_HAVE_AN_X_AND_Y_SCALE, nor WE_HAVE_A_2X2.
var IdentityTransform = Transform{A: 1 << 14, D: 1 << 14}

// Component is one entry of a composite glyph.
type Component struct {
	GlyphIndex       uint16
	DX, DY           int16
	PointMatching    bool // args are point indices, not offsets, when true
	Point1, Point2   uint16
	Transform        Transform
	RoundXYToGrid    bool
	UseMyMetrics     bool
	ScaledOffset     bool
	UnscaledOffset   bool
}

// CompositeGlyph is a glyph assembled from transformed references to other
// glyphs.
type CompositeGlyph struct {
	Components      []Component
	Instructions    []byte
	OverlapCompound bool
}

// Glyph is one decoded "glyf" entry. Exactly one of Simple or Composite is
// non-nil unless the glyph is empty (NumberOfContours == 0, zero-length
// outline such as space).
type Glyph struct {
	NumberOfContours int16
	XMin, YMin       int16
	XMax, YMax       int16
	Simple           *SimpleGlyph
	Composite        *CompositeGlyph
}

// Table is the decoded "glyf" table paired with its "loca" offsets, able to
// decode any glyph on demand. A composite glyph decodes to its component
// references; each referenced glyph is decoded only by its own Glyph call.
type Table struct {
	raw    []byte
	offset []uint32
}

// New wraps the raw "glyf" table bytes together with the "loca" offset
// array that locates each glyph within it.
func New(raw []byte, offsets []uint32) *Table {
	return &Table{raw: raw, offset: offsets}
}

// NumGlyphs returns the number of glyphs addressable through this table.
func (t *Table) NumGlyphs() int {
	if len(t.offset) == 0 {
		return 0
	}
	return len(t.offset) - 1
}

// Glyph decodes glyph gid. For a composite glyph it returns the component
// records (glyph index, offset, transform) without decoding the glyphs they
// reference.
func (t *Table) Glyph(gid int) (*Glyph, error) {
	return t.glyph(gid, 0)
}

func (t *Table) glyph(gid, depth int) (*Glyph, error) {
	tag := table.MakeTag(tableTag)
	if gid < 0 || gid+1 >= len(t.offset) {
		return nil, table.Errorf(table.KindBadFormat, tag, "glyph index %d out of range", gid)
	}
	start, end := t.offset[gid], t.offset[gid+1]
	if start == end {
		return &Glyph{}, nil
	}
	if int(end) > len(t.raw) || start > end {
		return nil, table.Errorf(table.KindUnexpectedEnd, tag, "glyph %d offsets out of bounds", gid)
	}
	if depth > maxComponentDepth {
		return nil, table.Errorf(table.KindBadFormat, tag, "composite glyph %d nests too deep", gid)
	}

	buf := table.NewBuffer(t.raw[start:end])
	g := &Glyph{}
	var err error
	if g.NumberOfContours, err = buf.I16(); err != nil {
		return nil, err
	}
	if g.XMin, err = buf.I16(); err != nil {
		return nil, err
	}
	if g.YMin, err = buf.I16(); err != nil {
		return nil, err
	}
	if g.XMax, err = buf.I16(); err != nil {
		return nil, err
	}
	if g.YMax, err = buf.I16(); err != nil {
		return nil, err
	}

	if g.NumberOfContours >= 0 {
		g.Simple, err = readSimpleGlyph(buf, int(g.NumberOfContours))
	} else {
		g.Composite, err = readCompositeGlyph(buf)
	}
	if err != nil {
		return nil, err
	}
	return g, nil
}

func readSimpleGlyph(buf *table.Buffer, numContours int) (*SimpleGlyph, error) {
	sg := &SimpleGlyph{}
	endPts, err := buf.U16Vec(numContours)
	if err != nil {
		return nil, err
	}
	sg.EndPtsOfContours = endPts

	numPoints := 0
	if numContours > 0 {
		numPoints = int(endPts[numContours-1]) + 1
	}

	instrLen, err := buf.U16()
	if err != nil {
		return nil, err
	}
	instructions, err := buf.Bytes(int(instrLen))
	if err != nil {
		return nil, err
	}
	sg.Instructions = instructions

	flags := make([]byte, 0, numPoints)
	for len(flags) < numPoints {
		f, err := buf.U8()
		if err != nil {
			return nil, err
		}
		flags = append(flags, f)
		if f&flagOverlapSimple != 0 && len(flags) == 1 {
			sg.OverlapSimple = true
		}
		if f&flagRepeat != 0 {
			repeatCount, err := buf.U8()
			if err != nil {
				return nil, err
			}
			for i := byte(0); i < repeatCount && len(flags) < numPoints; i++ {
				flags = append(flags, f)
			}
		}
	}

	xs := make([]int16, numPoints)
	x := int16(0)
	for i, f := range flags {
		switch {
		case f&flagXShortVector != 0:
			v, err := buf.U8()
			if err != nil {
				return nil, err
			}
			if f&flagXIsSameOrPositive != 0 {
				x += int16(v)
			} else {
				x -= int16(v)
			}
		case f&flagXIsSameOrPositive == 0:
			v, err := buf.I16()
			if err != nil {
				return nil, err
			}
			x += v
		}
		xs[i] = x
	}

	ys := make([]int16, numPoints)
	y := int16(0)
	for i, f := range flags {
		switch {
		case f&flagYShortVector != 0:
			v, err := buf.U8()
			if err != nil {
				return nil, err
			}
			if f&flagYIsSameOrPositive != 0 {
				y += int16(v)
			} else {
				y -= int16(v)
			}
		case f&flagYIsSameOrPositive == 0:
			v, err := buf.I16()
			if err != nil {
				return nil, err
			}
			y += v
		}
		ys[i] = y
	}

	sg.Points = make([]Point, numPoints)
	for i := range sg.Points {
		sg.Points[i] = Point{X: xs[i], Y: ys[i], OnCurve: flags[i]&flagOnCurvePoint != 0}
	}
	return sg, nil
}

func readCompositeGlyph(buf *table.Buffer) (*CompositeGlyph, error) {
	cg := &CompositeGlyph{}
	haveInstructions := false
	for {
		flags, err := buf.U16()
		if err != nil {
			return nil, err
		}
		glyphIndex, err := buf.U16()
		if err != nil {
			return nil, err
		}
		comp := Component{
			GlyphIndex:     glyphIndex,
			Transform:      IdentityTransform,
			RoundXYToGrid:  flags&compRoundXYToGrid != 0,
			UseMyMetrics:   flags&compUseMyMetrics != 0,
			ScaledOffset:   flags&compScaledComponentOffset != 0,
			UnscaledOffset: flags&compUnscaledComponentOffset != 0,
		}
		if flags&compOverlapCompound != 0 {
			cg.OverlapCompound = true
		}

		if flags&compArgsAreWords != 0 {
			a1, err := buf.I16()
			if err != nil {
				return nil, err
			}
			a2, err := buf.I16()
			if err != nil {
				return nil, err
			}
			if flags&compArgsAreXYValues != 0 {
				comp.DX, comp.DY = a1, a2
			} else {
				comp.PointMatching = true
				comp.Point1, comp.Point2 = uint16(a1), uint16(a2)
			}
		} else {
			a1, err := buf.I8()
			if err != nil {
				return nil, err
			}
			a2, err := buf.I8()
			if err != nil {
				return nil, err
			}
			if flags&compArgsAreXYValues != 0 {
				comp.DX, comp.DY = int16(a1), int16(a2)
			} else {
				comp.PointMatching = true
				comp.Point1, comp.Point2 = uint16(uint8(a1)), uint16(uint8(a2))
			}
		}

		switch {
		case flags&compWeHaveAScale != 0:
			s, err := buf.F2Dot14()
			if err != nil {
				return nil, err
			}
			comp.Transform.A, comp.Transform.D = s, s
		case flags&compWeHaveXAndYScale != 0:
			if comp.Transform.A, err = buf.F2Dot14(); err != nil {
				return nil, err
			}
			if comp.Transform.D, err = buf.F2Dot14(); err != nil {
				return nil, err
			}
		case flags&compWeHaveTwoByTwo != 0:
			if comp.Transform.A, err = buf.F2Dot14(); err != nil {
				return nil, err
			}
			if comp.Transform.B, err = buf.F2Dot14(); err != nil {
				return nil, err
			}
			if comp.Transform.C, err = buf.F2Dot14(); err != nil {
				return nil, err
			}
			if comp.Transform.D, err = buf.F2Dot14(); err != nil {
				return nil, err
			}
		}
		comp.Transform.DX, comp.Transform.DY = comp.DX, comp.DY

		cg.Components = append(cg.Components, comp)
		if flags&compWeHaveInstructions != 0 {
			haveInstructions = true
		}
		if flags&compMoreComponents == 0 {
			if haveInstructions {
				instrLen, err := buf.U16()
				if err != nil {
					return nil, err
				}
				instr, err := buf.Bytes(int(instrLen))
				if err != nil {
					return nil, err
				}
				cg.Instructions = instr
			}
			break
		}
	}
	return cg, nil
}
