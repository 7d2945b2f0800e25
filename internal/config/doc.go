// Package config loads named run profiles from an HCL file. A profile
// overrides the built-in defaults of a program (redirector, naming policy,
// resolver command, per-query timeout and worker count); flags given on the
// command line override the profile in turn.
package config
