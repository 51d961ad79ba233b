// Package bertlv encodes and decodes BER-TLV, the tag-length-value binary
// format defined by ISO 7816-4 for smart-card and security-token data
// objects.
//
// Features
//
// Decoder/Encoder: cursor types for reading data objects out of a byte slice
// and writing them into caller-supplied or heap-backed buffers. Decoding
// borrows from the input rather than copying, rejects malformed and
// non-canonical input deterministically, and never panics on hostile bytes.
//
// Encodable/Decodable: the capability interfaces composite types implement,
// in terms of the Decoder/Encoder primitives only, so hand-written and
// generated types look the same to the codec. DataObject is the raw form for
// objects the caller leaves undecoded.
//
// SIMPLE-TLV: the single-byte-tag sibling grammar used by PIV data objects,
// sharing the same cursor machinery.
//
// The iso7816 subpackage implements typed interindustry data objects (FCI,
// EF.DIR, CHUID) on top of the capability interfaces.
package bertlv
