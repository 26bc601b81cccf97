// Package finder walks a directory tree and collects the regular files that
// satisfy a domain.FilterSet.
//
// Traversal is depth-first and single-threaded. Entries within a directory are
// handled in on-disk enumeration order, which the filesystem defines; results
// are not sorted. Entry types come from the directory records themselves, so a
// metadata lookup only happens when a size or hard-link predicate is active.
//
// Symbolic links, devices and other non-regular entries are never matched and
// never followed.
//
// I/O failures below the root are reported to the configured ErrorHandler and
// traversal continues: an unopenable subdirectory is skipped, a failed
// directory read abandons that directory, and a failed metadata lookup
// excludes the file. Only a failure to open the root is returned by Find.
package finder
