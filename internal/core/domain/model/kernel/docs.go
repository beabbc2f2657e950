// Package kernel contains the shared value objects of the domain model:
// UUID identifiers and geographic points. These are immutable, validated
// at construction, and used by every aggregate in the core.
package kernel
