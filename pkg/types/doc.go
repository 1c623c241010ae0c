// Package types defines the Shelf interface, the Account and Game entity
// types, and the standard errors for the Swapshelf catalog system.
package types
