// Package mmap maps GTO files read-only into memory.
//
// A mapped file serves random-access property reads without a system call
// per block. On Unix the file is mapped with mmap(2) and access hints are
// passed to madvise(2); elsewhere the file is read into memory once and
// hints are ignored.
//
// The slice returned by Bytes is valid only until Close.
package mmap
