// Package main provides the entry point for the peppol-lookup CLI.
//
// peppol-lookup discovers PEPPOL participants: it resolves a participant
// identifier to its SMP hostname through the SML DNS zone and lists the
// document types the participant can receive.
//
// Usage:
//
//	peppol-lookup lookup <participant-id>
//	peppol-lookup serve
//
// See --help for all available options.
package main

// main is the entry point for peppol-lookup.
func main() {
	Execute()
}
