// Package services implements the driving ports on top of the driven
// ports: batch creation and claiming, the review gate, transmission
// with per-item outcome tallying, deterministic export, and history/
// stats projections.
package services
