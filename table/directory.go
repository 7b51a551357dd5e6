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
	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// Record describes one table's location within a font resource:
// {tag, checksum, offset, length, compressedLength}. offset is absolute
// within the original resource. compressedLength is nonzero only for WOFF1
// table records, where it names the number of zlib-compressed bytes stored
// on disk ahead of decompression.
type Record struct {
	Tag              Tag
	Checksum         uint32
	Offset           uint32
	Length           uint32
	CompressedLength uint32 // 0 outside WOFF1
}

// Directory is an ordered collection of Record, keyed by Tag. Insertion
// order mirrors on-disk order, which format_info-style listings must
// preserve; lookup by tag is O(1). Tags within one Directory are unique by
// construction: Add overwrites rather than duplicating an entry.
type Directory struct {
	byTag *linkedhashmap.Map
}

// NewDirectory returns an empty Directory.
func NewDirectory() *Directory {
	return &Directory{byTag: linkedhashmap.New()}
}

// Add inserts or replaces the record for rec.Tag, preserving the position
// of the first insertion if the tag already existed.
func (d *Directory) Add(rec Record) {
	d.byTag.Put(rec.Tag, rec)
}

// Find returns the record for tag, or ok=false if the tag is not present.
func (d *Directory) Find(tag Tag) (Record, bool) {
	v, found := d.byTag.Get(tag)
	if !found {
		return Record{}, false
	}
	return v.(Record), true
}

// Contains reports whether tag is present in the directory.
func (d *Directory) Contains(tag Tag) bool {
	_, found := d.byTag.Get(tag)
	return found
}

// Tags returns the tags in insertion (on-disk) order.
func (d *Directory) Tags() []Tag {
	keys := d.byTag.Keys()
	out := make([]Tag, len(keys))
	for i, k := range keys {
		out[i] = k.(Tag)
	}
	return out
}

// Len returns the number of records in the directory.
func (d *Directory) Len() int {
	return d.byTag.Size()
}

// Records returns the records in insertion order.
func (d *Directory) Records() []Record {
	tags := d.Tags()
	out := make([]Record, len(tags))
	for i, t := range tags {
		rec, _ := d.Find(t)
		out[i] = rec
	}
	return out
}
