// Package driving defines the inbound port interfaces exposed to the
// CLI and MCP adapters. All mutating operations take an opaque actor
// identifier; how that identity was established is external.
package driving
