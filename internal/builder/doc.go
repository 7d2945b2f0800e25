/*
Package builder turns a list of dataset identifiers into a manifest.

For every identifier the builder:

 1. Parses it. Malformed identifiers are skipped with a warning before
    any query is made.
 2. Queries the catalog resolver. A failed query is logged and the dataset
    is skipped; the run continues.
 3. Prefixes every returned path with the redirector and derives the short
    name and year label.

Queries may run on a bounded pool of goroutines. Results are collected per
input position and the manifest is assembled afterwards in input order, so
the output never depends on completion timing or on the worker count.
*/
package builder
