// Package simplifier reduces one group's merged index buffer toward a
// target triangle count, escalating through full, permissive, and
// sloppy fallback passes as needed, per spec.md §4.5.
package simplifier
