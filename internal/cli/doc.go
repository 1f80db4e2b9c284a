// Package cli contains the plain-terminal presentation pieces of
// progressdemo: the spinner renderer, the end-of-run summary and shell
// completion scripts.
//
// Display* functions write to an [io.Writer]; Format* functions return
// strings and perform no I/O.
package cli
