// Package report renders lookup results for people and machines.
//
// A Summary is the flat, serializable view of a discovery result. Writers
// turn summaries into output: plain text for terminals, JSON for tool
// integration, Markdown for documentation. All writers share the Writer
// interface so the CLI can select the format with a flag and write to
// stdout or a file through the same path.
package report

import (
	"io"

	"github.com/snapbooks-app/peppol-lookup/pkg/discovery"
)

// Summary is the flat view of a lookup result
type Summary struct {
	Participant   string   `json:"participant"`
	Registered    bool     `json:"registered"`
	Hostname      string   `json:"hostname,omitempty"`
	DocumentTypes []string `json:"documentTypes,omitempty"`
	Billing       Billing  `json:"billing"`
}

// Billing reports PEPPOL BIS Billing 3.0 support
type Billing struct {
	Invoice    bool `json:"invoice"`
	CreditNote bool `json:"creditNote"`
}

// NewSummary builds a Summary from a discovery result.
func NewSummary(result *discovery.Result) *Summary {
	billing := result.Billing()
	return &Summary{
		Participant:   result.Participant.String(),
		Registered:    result.Registered,
		Hostname:      result.Hostname,
		DocumentTypes: result.DocumentTypes,
		Billing: Billing{
			Invoice:    billing.Invoice,
			CreditNote: billing.CreditNote,
		},
	}
}

// Writer renders summaries to a destination.
type Writer interface {
	// Write outputs the summary to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(summary *Summary) (int, error)
}

// baseWriter provides the shared output destination for report writers.
type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
