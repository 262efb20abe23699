// Package domain holds the sentinel errors shared by the crmapp layers.
//
// It has no dependencies on infrastructure concerns so every other
// package can import it.
package domain
