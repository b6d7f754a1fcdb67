// Package crm defines the lead and opportunity domain types and the HTTP
// client for the static lead data endpoint.
//
// # Overview
//
// Funnel renders a fixed collection of leads served as a JSON document. This
// package owns the wire shapes (Lead, Opportunity, the Status and Stage
// enumerations) and the read-only client that fetches the collection once at
// startup.
//
// # Client Usage
//
// Create a client using the API bind address from configuration:
//
//	client, err := crm.NewClient("127.0.0.1:8274")
//	if err != nil {
//		log.Fatalf("failed to create client: %v", err)
//	}
//
//	leads, err := client.FetchLeads(ctx)
//	if err != nil {
//		log.Printf("lead fetch failed: %v", err)
//	}
//
// # Validation
//
// FetchLeads rejects documents with duplicate lead ids or unknown status
// values; a malformed document is indistinguishable from a transport failure
// to callers, which is what the top-level error state requires.
//
// # Design Notes
//
// The endpoint is read-only. All mutation happens in memory inside
// internal/state; nothing is ever written back to the source.
package crm
