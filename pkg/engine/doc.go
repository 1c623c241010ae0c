// Package engine implements the swap decision logic for Swapshelf.
//
// Every operation is a pure transform: it takes account values, computes
// the updated record(s), and returns them for the caller to commit to the
// shelf in a single write. The engine never touches storage and never
// blocks on user input; confirmation-gated operations go through the
// Propose/Commit protocol in this package.
package engine
