// Package corpus provides the backing stores for the reference corpus.
//
// Stores only list and append entries. Duplicate detection by content hash is
// the corpus service's job; the stores reject a colliding hash as a second
// guard and report it with ErrDuplicateContent.
package corpus
