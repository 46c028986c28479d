// Package wikinode turns a wikipedia xml dump into short dictionary
// entries: one title and one cleaned lead paragraph per article.
//
// The dumps are available from the wikimedia group here:
//    http://dumps.wikimedia.org/
//
// Most of this was built against the kowiki dumps, so the redirect,
// disambiguation and sentence-ending rules know about Korean as well
// as English:
//    http://dumps.wikimedia.org/kowiki/
//
// Pages are processed one at a time as they stream out of the dump,
// so memory use doesn't grow with the size of the dump.  See
// tools/wikinode for the command that drives it, and internal/store
// for the places the entries can be loaded into.
package wikinode
