package discovery

import (
	"context"
	"fmt"

	"github.com/snapbooks-app/peppol-lookup/pkg/identifier"
)

// Client combines SML resolution and SMP retrieval into a full participant
// lookup:
//  1. Derive the SMP hostname from the identifier hash and probe the SML zone
//  2. Query the SMP service group for registered document types
type Client struct {
	sml *SMLClient
	smp *SMPClient
}

// Config contains configuration for the lookup client
type Config struct {
	// SML is the configuration for SML directory resolution
	SML SMLClientConfig

	// SMP is the configuration for SMP metadata queries
	SMP SMPClientConfig
}

// New creates a lookup client querying the given SML zone.
// An empty domain selects the production eDelivery zone.
func New(smlDomain string) *Client {
	return &Client{
		sml: NewSMLClient(smlDomain),
		smp: NewSMPClient(),
	}
}

// NewWithConfig creates a lookup client with custom configuration.
func NewWithConfig(config Config) *Client {
	return &Client{
		sml: NewSMLClientWithConfig(config.SML),
		smp: NewSMPClientWithConfig(config.SMP),
	}
}

// Result is the outcome of a participant lookup. A Result with Registered
// false carries no hostname and no document types.
type Result struct {
	Participant   identifier.Participant
	Registered    bool
	Hostname      string
	DocumentTypes []string
}

// BillingSupport reports which PEPPOL BIS Billing 3.0 document types a
// participant accepts.
type BillingSupport struct {
	Invoice    bool
	CreditNote bool
}

// Lookup resolves a participant and, when registered, retrieves its
// document types.
//
// An unregistered participant is not an error: the Result reports
// Registered false and the error is nil. A failure fetching metadata from
// the SMP of a registered participant returns a *FetchError.
func (c *Client) Lookup(ctx context.Context, p identifier.Participant) (*Result, error) {
	res := c.sml.Resolve(ctx, p)
	if !res.Registered {
		return &Result{Participant: p}, nil
	}

	docTypes, err := c.smp.FetchDocumentTypes(ctx, res.Hostname, p)
	if err != nil {
		return nil, fmt.Errorf("SMP lookup failed: %w", err)
	}

	return &Result{
		Participant:   p,
		Registered:    true,
		Hostname:      res.Hostname,
		DocumentTypes: docTypes,
	}, nil
}

// Supports reports whether the lookup found the given document type.
// Comparison is exact; identifiers that differ in case or customization
// are distinct document types.
func (r *Result) Supports(docType string) bool {
	for _, dt := range r.DocumentTypes {
		if dt == docType {
			return true
		}
	}
	return false
}

// Billing summarizes BIS Billing 3.0 invoice and credit note support.
func (r *Result) Billing() BillingSupport {
	return BillingSupport{
		Invoice:    r.Supports(DocTypeInvoice),
		CreditNote: r.Supports(DocTypeCreditNote),
	}
}

// SMLClient returns the underlying SML client for advanced usage.
func (c *Client) SMLClient() *SMLClient {
	return c.sml
}

// SMPClient returns the underlying SMP client for advanced usage.
func (c *Client) SMPClient() *SMPClient {
	return c.smp
}
