package report

import (
	"io"

	"github.com/nao1215/markdown"
)

// MarkdownWriter outputs summaries as Markdown for documentation and
// sharing.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given
// writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the summary as a Markdown document.
func (w *MarkdownWriter) Write(summary *Summary) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("PEPPOL Participant Lookup")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Participant", "`" + summary.Participant + "`"},
			{"Registered", yesNo(summary.Registered)},
			{"SMP Hostname", hostnameCell(summary.Hostname)},
		},
	})
	md.PlainText("")

	if !summary.Registered {
		md.PlainTextf("Not a PEPPOL participant: `%s`", summary.Participant)
		return len(md.String()), md.Build()
	}

	md.H2("Supported Document Identifiers")
	if len(summary.DocumentTypes) == 0 {
		md.PlainText("No document types registered.")
	} else {
		items := make([]string, 0, len(summary.DocumentTypes))
		for _, docType := range summary.DocumentTypes {
			items = append(items, "`"+docType+"`")
		}
		md.BulletList(items...)
	}
	md.PlainText("")

	md.H2("PEPPOL BIS Billing 3.0 Support")
	var billing []string
	if summary.Billing.Invoice {
		billing = append(billing, "Supports Invoice")
	}
	if summary.Billing.CreditNote {
		billing = append(billing, "Supports Credit Note")
	}
	if len(billing) == 0 {
		md.PlainText("No BIS Billing 3.0 document types registered.")
	} else {
		md.BulletList(billing...)
	}

	return len(md.String()), md.Build()
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func hostnameCell(hostname string) string {
	if hostname == "" {
		return "-"
	}
	return "`" + hostname + "`"
}
