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

import "fmt"

// Kind classifies the ways a read of a font resource can fail. Callers can
// switch on Kind instead of matching error strings.
type Kind int

const (
	// KindIO reports a failure of the underlying byte source.
	KindIO Kind = iota
	// KindUnknownSignature reports that the first four bytes of a resource
	// match none of the recognized envelopes.
	KindUnknownSignature
	// KindUnexpectedEnd reports that a read would run past the end of the
	// buffer.
	KindUnexpectedEnd
	// KindBadFormat reports that a discriminator byte or word (a subtable
	// format, an index format, a CFF operand prefix, ...) has no defined
	// handling.
	KindBadFormat
	// KindMissingDependency reports that a parser needed a prerequisite
	// table which was not parsed or is absent from the directory.
	KindMissingDependency
	// KindDecompression reports that a zlib or gzip stream failed to
	// inflate.
	KindDecompression
	// KindVariableLengthOverflow reports that a variable-length integer
	// (UIntBase128) violated its encoding rules.
	KindVariableLengthOverflow
	// KindUnsupportedWOFF2 reports a recognized but unimplemented WOFF2
	// table transform.
	KindUnsupportedWOFF2
	// KindUnsupportedImageFormat reports a recognized but unimplemented
	// bitmap image format.
	KindUnsupportedImageFormat
	// KindEncodingError reports that decoding a "name" table string produced
	// replacement characters. The decoded string is still usable.
	KindEncodingError
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindUnknownSignature:
		return "unknown signature"
	case KindUnexpectedEnd:
		return "unexpected end of buffer"
	case KindBadFormat:
		return "bad format"
	case KindMissingDependency:
		return "missing dependency table"
	case KindDecompression:
		return "decompression failure"
	case KindVariableLengthOverflow:
		return "variable-length integer overflow"
	case KindUnsupportedWOFF2:
		return "unsupported WOFF2 feature"
	case KindUnsupportedImageFormat:
		return "unsupported image format"
	case KindEncodingError:
		return "encoding error"
	default:
		return "unknown error"
	}
}

// Error is the error type returned across the public surface of this
// module. Table is the tag of the table being decoded when the error
// occurred, or the zero Tag if the error is not table-specific.
type Error struct {
	Kind  Kind
	Table Tag
	Msg   string
	Err   error
}

func (e *Error) Error() string {
	var prefix string
	if e.Table != (Tag{}) {
		prefix = fmt.Sprintf("sfnt: %s: ", e.Table)
	} else {
		prefix = "sfnt: "
	}
	if e.Msg != "" {
		return fmt.Sprintf("%s%s: %s", prefix, e.Kind, e.Msg)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s%s: %v", prefix, e.Kind, e.Err)
	}
	return prefix + e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Errorf builds an *Error with a formatted message.
func Errorf(kind Kind, tbl Tag, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Table: tbl, Msg: fmt.Sprintf(format, args...)}
}

// Wrap builds an *Error of the given kind that wraps err.
func Wrap(kind Kind, tbl Tag, err error) *Error {
	return &Error{Kind: kind, Table: tbl, Err: err}
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == kind
}

// ErrMissingTable reports that a table required by the caller is not
// present in the directory, as a distinct type so callers that only care
// about "is it there" can match it with a single predicate.
type ErrMissingTable struct {
	Name string
}

func (e *ErrMissingTable) Error() string {
	return "missing " + e.Name + " table in font"
}

// IsMissing returns true if err indicates that an optional sfnt table was
// absent from the font.
func IsMissing(err error) bool {
	_, ok := err.(*ErrMissingTable)
	return ok
}
