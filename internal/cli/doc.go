// Package cli renders everything the benchmark writes to stderr: the
// progress spinner, the verbose summary panel and error messages. Stdout
// carries only the result line, written by the report package.
package cli
