// Package segment splits raw corpus documents into retrievable chunks.
//
// Documents are partitioned into header-scoped sections using a line-scanning
// state machine; oversized sections are re-split on paragraph boundaries so
// every emitted chunk stays within configured token bounds. Segmentation is a
// pure function of its input: identical documents always produce identical
// chunk ids and content, and documents are independent of each other, so the
// package is safe to run from many workers concurrently.
package segment
