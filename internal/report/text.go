package report

import (
	"fmt"
	"io"
	"strings"
)

// TextWriter outputs human-readable text reports for terminal display.
type TextWriter struct {
	baseWriter
}

// NewTextWriter creates a TextWriter that outputs to the given writer.
func NewTextWriter(output io.Writer) *TextWriter {
	return &TextWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the summary as plain text.
//
// For a registered participant:
//
//	SMP hostname: b-<hash>.iso6523-actorid-upis.<domain>
//
//	Supported document identifiers:
//	- <document type>
//
//	PEPPOL BIS Billing 3.0 Support:
//	- Supports Invoice
//	- Supports Credit Note
//
// For an unregistered participant a single line is written:
//
//	Not a PEPPOL participant: <scheme>:<value>
func (w *TextWriter) Write(summary *Summary) (int, error) {
	var sb strings.Builder

	if !summary.Registered {
		fmt.Fprintf(&sb, "Not a PEPPOL participant: %s\n", summary.Participant)
		return io.WriteString(w.output, sb.String())
	}

	fmt.Fprintf(&sb, "SMP hostname: %s\n", summary.Hostname)

	sb.WriteString("\nSupported document identifiers:\n")
	for _, docType := range summary.DocumentTypes {
		fmt.Fprintf(&sb, "- %s\n", docType)
	}

	sb.WriteString("\nPEPPOL BIS Billing 3.0 Support:\n")
	if summary.Billing.Invoice {
		sb.WriteString("- Supports Invoice\n")
	}
	if summary.Billing.CreditNote {
		sb.WriteString("- Supports Credit Note\n")
	}

	return io.WriteString(w.output, sb.String())
}
