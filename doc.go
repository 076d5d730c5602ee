// Package siflines contains lazy, line-oriented helpers for reading text files.
// This root package defines the LineIterator abstraction shared by every data source,
// together with the Ordering capability flag which tells a consumer whether lines
// may be processed out of order.
package siflines
