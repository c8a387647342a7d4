// Package blacklist checks article URLs against a list of untrustworthy
// publishers.
//
// The list is a plain-text resource with one hostname per line. Blank lines
// and lines starting with "#" are ignored and entries are matched
// case-insensitively. A hostname matches when it, its "www."-stripped form or
// its "www."-prefixed form appears in the list.
//
// A Cache owns the parsed set. It loads the list lazily on first use and at
// most once per lifetime. A failed load is not remembered: that call treats
// the list as empty (every URL passes) and the next call tries again.
//
// Three sources are provided:
//   - EmbeddedSource: the list compiled into the binary
//   - FileSource: a local file
//   - HTTPSource: a list served over HTTP(S)
package blacklist
