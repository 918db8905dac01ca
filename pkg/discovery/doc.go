// Package discovery implements PEPPOL participant discovery over the
// SML/SMP infrastructure.
//
// This package answers the question "can organization X receive electronic
// invoices, and which document types does it accept?" using the two-stage
// lookup the PEPPOL eDelivery network is built on: a DNS probe against the
// SML (Service Metadata Locator) followed by an HTTP query against the
// participant's SMP (Service Metadata Publisher).
//
// # Discovery Process
//
// The lookup works as follows:
//
//  1. Identifier Hashing: The participant identifier is rendered in its
//     canonical "scheme:value" form and hashed with MD5 (mandated by the
//     SML specification), producing the lowercase hex digest the SML zone
//     is keyed by.
//
//  2. SML Resolution: The digest is embedded in a DNS name of the form
//     b-<hash>.iso6523-actorid-upis.<sml-domain> and an A-record query
//     decides registration: the name resolves exactly when the
//     participant is registered. Nothing in the record beyond its
//     existence is consumed.
//
//  3. SMP Query: The resolved hostname is queried over HTTP for the
//     participant's service group, and document type identifiers are
//     extracted from its ServiceMetadataReference entries.
//
// # Usage
//
// Basic lookup flow:
//
//	p, err := identifier.Parse("0192:921605900")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	client := discovery.New(discovery.DefaultSMLDomain)
//	result, err := client.Lookup(ctx, p)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Registered {
//	    fmt.Println("not a PEPPOL participant")
//	    return
//	}
//	for _, dt := range result.DocumentTypes {
//	    fmt.Println(dt)
//	}
//
// # Outcomes
//
// A lookup ends in one of three states:
//
//   - Not registered: the SML holds no record for the identifier. This is
//     a negative answer, not an error; Lookup returns a Result with
//     Registered false and a nil error.
//   - Fetch failure: the SML record exists but the SMP could not be
//     queried. Lookup returns a *FetchError.
//   - Success: the Result lists the registered document types in the
//     order the SMP publishes them.
//
// DNS failures of any kind read as "not registered": the SML protocol
// offers no way to distinguish an absent record from an unreachable
// resolver.
//
// # References
//
//   - PEPPOL eDelivery Network specifications: https://docs.peppol.eu/edelivery/
//   - eDelivery SMP: https://ec.europa.eu/digital-building-blocks/sites/spaces/DIGITAL/pages/467117987/eDelivery+SMP
//   - OASIS SMP 1.0: http://docs.oasis-open.org/bdxr/bdx-smp/v1.0/
//   - PEPPOL BIS Billing 3.0: https://docs.peppol.eu/poacc/billing/3.0/
package discovery
