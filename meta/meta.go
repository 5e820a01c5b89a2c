// meta/meta.go
package meta

// DefaultDepth is the search depth in full rounds when none is configured.
const DefaultDepth = 2

// DefaultBoundaryPenalty is subtracted from alpha-beta root moves that hug the outer wall.
const DefaultBoundaryPenalty = 3.0

// MAX_TURNS bounds a single game, counted in pacman moves.
const MAX_TURNS = 500

// GAMES is the number of games played per experiment match-up.
const GAMES = 10

// DEFAULT_LAYOUT names the built-in layout used when none is given.
const DEFAULT_LAYOUT = "default"

// MaxDepth bounds the depth a remote request may ask for.
const MaxDepth = 4

// MAX_REQUEST_BYTES bounds the body of a decision request.
const MAX_REQUEST_BYTES = 1 << 20
