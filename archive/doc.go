// Package archive stores zipped output on disk.
//
// A .pzf file is a ZIP container holding two members:
//   - runs.pzr: the runs in a compact binary form (a uvarint run count, then
//     for each run its character byte followed by a uvarint length)
//   - metadata.pzm: JSON Metadata describing how the runs were produced
//     (worker count, remainder policy, input and scanned sizes, frequency
//     table, archive ID and version)
//
// Archives can also be written into a content-addressed store. The store name
// is the SHA-256 of the encoded runs, prefixed with a bucket derived from a
// color hash of that digest, so identical outputs deduplicate to one file:
//
//	<store>/<bucket>/<bucket>-<sha256>.pzf
package archive
