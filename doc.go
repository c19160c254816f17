// Package bipring is a bounded, contiguous-grant, single-producer/single-consumer
// byte queue — a bip buffer. It hands out grants: borrowed, contiguous byte
// regions into a fixed-capacity ring, which the producer fills in place and the
// consumer drains in place. No intermediate copies and no resizing. The byte
// storage is allocated once at construction; each grant, though, is a small
// heap-allocated object carrying a finalizer.
//
// # Model
//
// A Storage owns the backing array and the bookkeeping cursors. A Ring is a
// freely-copyable handle bound to a Storage's lifetime; every Ring operation
// takes a CS, a witness that the caller currently holds the program-wide
// critical section (see With). Operations never suspend while holding a CS.
//
// The producer calls GrantExact or GrantMaxRemaining to borrow a contiguous
// write region, fills it through BufMut, then Commits the bytes actually
// written (which may be fewer than reserved). The consumer calls Read to
// borrow the longest currently-readable contiguous run, reads through Buf,
// then Commits the bytes actually consumed. At most one write grant and one
// read grant may be outstanding at a time; a second concurrent acquire of the
// same kind fails with errcode.GrantInProgress.
//
// A grant left uncommitted when it is garbage collected auto-releases as a
// safety net (commit-zero, no bytes delivered) — see WriteGrant and
// ReadGrant. The normal path is an explicit Commit or Release.
//
// # Framing
//
// GrantFrame and ReadFrame layer variable-length-integer length prefixes
// (package varint) over the same ring, so a consumer reads exactly one whole
// frame per ReadFrame call instead of an arbitrary contiguous run.
package bipring
