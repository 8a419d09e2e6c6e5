// Package rowtypes implements the typed value codec layer that sits between
// application entity values and a row-oriented cloud table store whose cells
// accept only a small set of primitive wire types (string, number, boolean,
// date, GUID, binary chunk).
//
// Every entity property is bound to a Type that knows how to validate a
// domain value, serialize it into a flat Row annotated with the store's
// per-cell wire-type tags, deserialize it back, compare values, produce a
// canonical string for key derivation, and emit a server-side filter
// expression for scans and range queries. Buffer-based types additionally
// layer on a chunked binary envelope (see internal/envelope) and, for the
// encrypted variants, an AES-256-CBC wrap (see package crypt).
//
// Components:
//   - Type: the per-property codec contract (this package).
//   - Row: the flat cell map handed to/from the table store.
//   - slugid / slugarray: the 128-bit identifier codec and its packed array.
//   - buftypes / enctypes: buffer-based and encrypted buffer-based types.
//
// The layer is purely synchronous and stateless per call; there is no
// background work and no I/O. A Type is safe for concurrent use provided each
// call owns its input value and output Row.
package rowtypes
