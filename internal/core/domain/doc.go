// Package domain contains the core business entities and rules for
// Curator: scored Q&A items, the batch lifecycle, transmission records
// and the administrative audit log. It has no dependencies on adapters
// or infrastructure.
package domain
