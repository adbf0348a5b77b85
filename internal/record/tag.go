// Package record handles the GDSII record layer.
//
// Every GDSII record starts with a four byte header: a big-endian uint16
// total length (header included) followed by a uint16 tag. The high byte
// of the tag is the record type, the low byte the payload data type.
package record

import "fmt"

// Tag identifies a record: record type in the high byte, data type in the low byte.
type Tag uint16

// Record tags
const (
	HEADER       Tag = 0x0002
	BGNLIB       Tag = 0x0102
	LIBNAME      Tag = 0x0206
	UNITS        Tag = 0x0305
	ENDLIB       Tag = 0x0400
	BGNSTR       Tag = 0x0502
	STRNAME      Tag = 0x0606
	ENDSTR       Tag = 0x0700
	BOUNDARY     Tag = 0x0800
	PATH         Tag = 0x0900
	SREF         Tag = 0x0A00
	AREF         Tag = 0x0B00
	TEXT         Tag = 0x0C00
	LAYER        Tag = 0x0D02
	DATATYPE     Tag = 0x0E02
	WIDTH        Tag = 0x0F03
	XY           Tag = 0x1003
	ENDEL        Tag = 0x1100
	SNAME        Tag = 0x1206
	COLROW       Tag = 0x1302
	TEXTNODE     Tag = 0x1400
	NODE         Tag = 0x1500
	TEXTTYPE     Tag = 0x1602
	PRESENTATION Tag = 0x1701
	STRING       Tag = 0x1906
	STRANS       Tag = 0x1A01
	MAG          Tag = 0x1B05
	ANGLE        Tag = 0x1C05
	REFLIBS      Tag = 0x1F06
	FONTS        Tag = 0x2006
	PATHTYPE     Tag = 0x2102
	GENERATIONS  Tag = 0x2202
	ATTRTABLE    Tag = 0x2306
	STYPTABLE    Tag = 0x2406
	STRTYPE      Tag = 0x2502
	ELFLAGS      Tag = 0x2601
	ELKEY        Tag = 0x2703
	NODETYPE     Tag = 0x2A02
	PROPATTR     Tag = 0x2B02
	PROPVALUE    Tag = 0x2C06
	BOX          Tag = 0x2D00
	BOXTYPE      Tag = 0x2E02
	PLEX         Tag = 0x2F03
	BGNEXTN      Tag = 0x3003
	ENDEXTN      Tag = 0x3103
	TAPENUM      Tag = 0x3202
	TAPECODE     Tag = 0x3302
	STRCLASS     Tag = 0x3401
	FORMAT       Tag = 0x3602
	MASK         Tag = 0x3706
	ENDMASKS     Tag = 0x3800
	LIBDIRSIZE   Tag = 0x3902
	SRFNAME      Tag = 0x3A06
	LIBSECUR     Tag = 0x3B02
)

var tagNames = map[Tag]string{
	HEADER:       "HEADER",
	BGNLIB:       "BGNLIB",
	LIBNAME:      "LIBNAME",
	UNITS:        "UNITS",
	ENDLIB:       "ENDLIB",
	BGNSTR:       "BGNSTR",
	STRNAME:      "STRNAME",
	ENDSTR:       "ENDSTR",
	BOUNDARY:     "BOUNDARY",
	PATH:         "PATH",
	SREF:         "SREF",
	AREF:         "AREF",
	TEXT:         "TEXT",
	LAYER:        "LAYER",
	DATATYPE:     "DATATYPE",
	WIDTH:        "WIDTH",
	XY:           "XY",
	ENDEL:        "ENDEL",
	SNAME:        "SNAME",
	COLROW:       "COLROW",
	TEXTNODE:     "TEXTNODE",
	NODE:         "NODE",
	TEXTTYPE:     "TEXTTYPE",
	PRESENTATION: "PRESENTATION",
	STRING:       "STRING",
	STRANS:       "STRANS",
	MAG:          "MAG",
	ANGLE:        "ANGLE",
	REFLIBS:      "REFLIBS",
	FONTS:        "FONTS",
	PATHTYPE:     "PATHTYPE",
	GENERATIONS:  "GENERATIONS",
	ATTRTABLE:    "ATTRTABLE",
	STYPTABLE:    "STYPTABLE",
	STRTYPE:      "STRTYPE",
	ELFLAGS:      "ELFLAGS",
	ELKEY:        "ELKEY",
	NODETYPE:     "NODETYPE",
	PROPATTR:     "PROPATTR",
	PROPVALUE:    "PROPVALUE",
	BOX:          "BOX",
	BOXTYPE:      "BOXTYPE",
	PLEX:         "PLEX",
	BGNEXTN:      "BGNEXTN",
	ENDEXTN:      "ENDEXTN",
	TAPENUM:      "TAPENUM",
	TAPECODE:     "TAPECODE",
	STRCLASS:     "STRCLASS",
	FORMAT:       "FORMAT",
	MASK:         "MASK",
	ENDMASKS:     "ENDMASKS",
	LIBDIRSIZE:   "LIBDIRSIZE",
	SRFNAME:      "SRFNAME",
	LIBSECUR:     "LIBSECUR",
}

// String returns the record name, or a hex form for unknown tags.
func (t Tag) String() string {
	if name, ok := tagNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Tag(0x%04x)", uint16(t))
}

// Known reports whether t is a record type defined by the format.
func (t Tag) Known() bool {
	_, ok := tagNames[t]
	return ok
}

// RecordType returns the record type byte.
func (t Tag) RecordType() uint8 { return uint8(t >> 8) }

// DataType returns the payload data type.
func (t Tag) DataType() DataType { return DataType(t & 0xFF) }

// DataType is the payload encoding of a record.
type DataType uint8

// Payload data types
const (
	DataNone     DataType = 0
	DataBitArray DataType = 1
	DataInt16    DataType = 2
	DataInt32    DataType = 3
	DataReal4    DataType = 4
	DataReal8    DataType = 5
	DataASCII    DataType = 6
)

// Width returns the size in bytes of one value of the data type.
// DataNone and DataASCII report 0 and 1 respectively.
func (d DataType) Width() int {
	switch d {
	case DataBitArray, DataInt16:
		return 2
	case DataInt32, DataReal4:
		return 4
	case DataReal8:
		return 8
	case DataASCII:
		return 1
	default:
		return 0
	}
}

func (d DataType) String() string {
	switch d {
	case DataNone:
		return "none"
	case DataBitArray:
		return "bitarray"
	case DataInt16:
		return "int16"
	case DataInt32:
		return "int32"
	case DataReal4:
		return "real4"
	case DataReal8:
		return "real8"
	case DataASCII:
		return "ascii"
	default:
		return fmt.Sprintf("DataType(%d)", uint8(d))
	}
}
