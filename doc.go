// Copyright (c) 2025 Snapbooks AS
// SPDX-License-Identifier: BSD-2-Clause

/*
Package peppollookup implements PEPPOL participant discovery: resolving
participant identifiers through the SML DNS zone and querying SMP servers
for the document types a participant can receive.

# Overview

peppol-lookup answers the question "can this organization receive
electronic invoices over PEPPOL, and in which formats?". It follows the
standard PEPPOL eDelivery discovery chain:

 1. Hash the participant identifier into an SML hostname
 2. Probe DNS for the hostname to find the participant's SMP
 3. Fetch the SMP service group and extract the supported document types

# Specifications Implemented

This module implements the discovery portions of the following specifications:

  - PEPPOL Transport Infrastructure SML: https://docs.peppol.eu/edelivery/sml/ICT-Transport-SML_Service_Specification-101.pdf
  - OASIS Service Metadata Publishing (BDXR SMP): https://docs.oasis-open.org/bdxr/bdx-smp/v1.0/bdx-smp-v1.0.html
  - PEPPOL Policy for use of Identifiers: https://docs.peppol.eu/edelivery/policies/PEPPOL-EDN-Policy-for-use-of-identifiers-4.3.0-2023-11-23.pdf

# Package Structure

The module is organized into the following packages:

	github.com/snapbooks-app/peppol-lookup/pkg/identifier - Participant identifiers and SML hashing
	github.com/snapbooks-app/peppol-lookup/pkg/discovery  - SML resolution and SMP clients
	github.com/snapbooks-app/peppol-lookup/cmd/peppol-lookup - Command line interface

# Quick Start

To look up a participant:

	import (
	    "github.com/snapbooks-app/peppol-lookup/pkg/discovery"
	    "github.com/snapbooks-app/peppol-lookup/pkg/identifier"
	)

	p, _ := identifier.Parse("0192:921605900")

	client := discovery.New(discovery.DefaultSMLDomain)
	result, err := client.Lookup(ctx, p)
	if err != nil {
	    // The participant is registered but its SMP could not be queried.
	}
	if result.Registered {
	    fmt.Println(result.Hostname, result.DocumentTypes)
	}

# References

  - PEPPOL eDelivery Network: https://peppol.eu/what-is-peppol/peppol-transport-infrastructure/
  - EC eDelivery SML: https://ec.europa.eu/digital-building-blocks/sites/spaces/DIGITAL/pages/467109157/SML+service
  - PEPPOL BIS Billing 3.0: https://docs.peppol.eu/poacc/billing/3.0/

# License

BSD-2-Clause License
*/
package peppollookup
