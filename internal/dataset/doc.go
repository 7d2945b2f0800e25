/*
Package dataset parses catalog dataset identifiers of the form
`/<primary>/<secondary>/<tier>` and derives the manifest metadata that is
encoded in their naming conventions: a short name and a year label.

Two naming policies exist, one for simulated samples and one for recorded
data. Both are pure string functions over an Identifier.
*/
package dataset
