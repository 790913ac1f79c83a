// Package railfence implements the rail fence transposition cipher.
//
// Characters of the clear text are written one at a time down a number of
// rails and then back up, and the cipher text is read rail by rail:
//
//	R . . . . . G . . . .
//	. U . . . S . R . . .
//	. . S . I . . . E . T
//	. . . T . . . . . A .
//
// gives RGUSRSIETTA for a fence of four rails.
//
// Both directions walk the same zig-zag sequence of rail indices. Encode
// scatters characters into per-rail buckets following it, Decode cuts the
// cipher text into buckets of the sizes the sequence would produce and
// gathers them back in zig-zag order.
//
// Characters are Unicode code points, not bytes. A *RailFence holds nothing
// but its rail count and is safe for concurrent use.
package railfence
