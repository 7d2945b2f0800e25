// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the manifest build lifecycle, decoupled
// from the CLI entrypoints.
package app
