// Package fix implements the FIX 4.2 tag-value framing used on the wire:
// message construction, header/trailer emission with body length and
// checksum, and tolerant decoding of inbound frames. Only the session
// messages the exchange speaks are given names here; the codec itself is
// transparent to unknown tags.
package fix
