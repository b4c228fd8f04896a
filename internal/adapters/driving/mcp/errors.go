// Package mcp provides an MCP (Model Context Protocol) server adapter
// for curator. It exposes read-only inspection tools so AI assistants
// can examine the curation pipeline; all mutations stay with the
// human-driven CLI.
package mcp

import "errors"

// ErrMissingBatchService is returned when the batch service is not provided.
var ErrMissingBatchService = errors.New("mcp: batch service is required")

// ErrMissingHistoryService is returned when the history service is not provided.
var ErrMissingHistoryService = errors.New("mcp: history service is required")
