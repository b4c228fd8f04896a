// Package driven defines the outbound port interfaces the core
// services depend on: batch and history persistence, the collection
// pool, the downstream consumer and the export sink. Adapters under
// internal/adapters/driven implement these contracts.
package driven
