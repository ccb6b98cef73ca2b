// Package mmap maps source files read-only into memory.
//
// On unix platforms files are mapped with golang.org/x/sys/unix and the
// kernel is advised that access is sequential, which matches how delimited
// sources are parsed. Elsewhere the file is read into a heap buffer so callers
// see the same API.
package mmap
