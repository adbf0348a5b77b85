// Package record handles the GDSII record layer.
//
// A GDSII stream is a flat sequence of records. Each record is a four byte
// header followed by a payload:
//
//	+----------------+-------------+-------------+-----------------+
//	| length (uint16)| record type | data type   | payload ...     |
//	+----------------+-------------+-------------+-----------------+
//
// The length covers the header itself and is always even. The record type
// and data type bytes together form a [Tag].
//
// # Data Types
//
//   - DataNone (0): no payload (ENDLIB, ENDSTR, ENDEL, element openers)
//   - DataBitArray (1): one 16-bit flag word (STRANS, PRESENTATION, ELFLAGS)
//   - DataInt16 (2): signed 16-bit integers (LAYER, COLROW, timestamps)
//   - DataInt32 (3): signed 32-bit integers (XY, WIDTH, extensions)
//   - DataReal8 (5): excess-64 base-16 reals (UNITS, MAG, ANGLE)
//   - DataASCII (6): NUL-padded strings (LIBNAME, STRNAME, SNAME, STRING)
//
// Four byte reals (DataReal4) are defined by the format but never used.
//
// # Reading
//
// [ReadHeader] decodes the header at the current position. The Decode*
// functions consume a payload whose header has already been read, and the
// Read* functions combine both while checking the tag:
//
//	h, err := record.ReadHeader(r)
//	if h.Tag == record.STRNAME {
//	    name, err := record.DecodeASCII(r, h)
//	}
//
// [SkipTo] and [SkipAndRead] move over records that the caller does not
// care about, by their declared length.
//
// # Writing
//
// The Write* functions emit complete records and return the number of bytes
// written. ASCII payloads are padded to an even length.
//
// # Errors
//
//   - [ErrMalformed]: truncated records, invalid lengths, payloads that do
//     not match their data type, or a missing mandatory record
//   - [ErrUnexpectedTag]: wrapped together with ErrMalformed when a strict
//     read finds a different record
//   - [ErrTooLarge]: a payload that does not fit in one record
//   - [ErrRealOverflow]: a value outside the eight byte real range
package record
