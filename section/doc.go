// Package section defines the low-level binary structures and constants of the ECF
// table format.
//
// A table stores (number, ECF) records so they can be shipped or cached without
// recomputing the forms. This package owns the fixed-size parts of that layout: the
// header, its packed flag and the index entries. The encoding and compress packages
// own the variable-size payloads.
//
// # Table Structure
//
//	┌─────────────────────────────────────────────────────────┐
//	│ Header (32 bytes, fixed)                                │
//	│  - Flag (6 bytes): magic/endianness, encoding,          │
//	│    compression, engine, strategy                        │
//	│  - Count (4 bytes)                                      │
//	│  - Offsets (12 bytes): index, numbers, prefixes         │
//	│  - TableSize (4 bytes)                                  │
//	├─────────────────────────────────────────────────────────┤
//	│ Index (N × 16 bytes, fixed per entry)                   │
//	│  - Sorted by ID (xxHash64 of the number)                │
//	│  - ID, number offset, prefix offset                     │
//	├─────────────────────────────────────────────────────────┤
//	│ Number Payload (variable, optionally compressed)        │
//	├─────────────────────────────────────────────────────────┤
//	│ Prefix Payload (variable, optionally compressed)        │
//	└─────────────────────────────────────────────────────────┘
//
// The options field of the flag is always little-endian so the endianness bit can be
// read first; every other multi-byte field uses the byte order that bit selects.
//
// # Validation
//
// TableFlag.Validate rejects unknown magic numbers, set reserved bits and unknown enum
// values. TableHeader.ValidateLayout checks that the sections are ordered and fit the
// table before any payload is touched.
package section
