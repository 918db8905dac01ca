// Copyright (c) 2025 Snapbooks AS
// SPDX-License-Identifier: BSD-2-Clause

/*
Package identifier provides PEPPOL participant identifier handling.

A participant is identified by an ISO 6523 scheme code (ICD, e.g. "0192"
for Norwegian organization numbers) and a value assigned within that
scheme. The canonical wire form joins the two with a colon:

	0192:921605900

The SML directory keys its DNS zone by the MD5 digest of this canonical
form, rendered as lowercase hexadecimal. Hash produces exactly that
encoding; any deviation (case, algorithm, separator) resolves to a
different DNS name and the participant appears unregistered.

Participant values are immutable and freshly derived per lookup. The
package performs no I/O.
*/
package identifier
