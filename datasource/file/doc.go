// Package file provides LineIterators which read lines of text from files on disk.
// TraverseFiles reads several files in lockstep, joining their corresponding lines,
// while LoadIfSize decides between reading a file into memory or streaming it from disk
// based on its size. Every LineIterator produced by this package must be closed,
// since it may hold open file handles.
package file
