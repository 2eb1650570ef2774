// Package random implements the deterministic gameplay byte generator and
// the sampling/deck helpers built on it.
//
// Every validator derives the same stream from (seed, session, move), so a
// game module that draws only through its stream resolves identically on
// every node. Streams are hash chains over blake2b-256: the library default
// generators are unseeded or non-reproducible and must never be used on the
// execution path.
package random

import (
	"encoding/binary"
	"math"

	"golang.org/x/crypto/blake2b"

	"github.com/wagerchain/wagerchain/core"
)

// RewardRound is the reserved move number for cross-cutting
// reward-multiplier draws. Gameplay uses the session's running move counter,
// which can never reach this sentinel, so multiplier draws can never perturb
// a gameplay stream.
const RewardRound uint32 = math.MaxUint32

// Stream is a deterministic byte generator, domain-separated per
// (seed, session id, move number). Single-owner: never share one Stream
// across goroutines or reuse it across moves.
type Stream struct {
	state  [32]byte
	cursor int
}

// NewStream derives the stream for one (seed, session, move) triple.
// Initial state = blake2b-256(seed encoding ‖ session id BE64 ‖ move BE32).
func NewStream(seed core.Seed, sessionID uint64, move uint32) *Stream {
	enc := seed.Encode()
	buf := make([]byte, 0, len(enc)+12)
	buf = append(buf, enc...)
	buf = binary.BigEndian.AppendUint64(buf, sessionID)
	buf = binary.BigEndian.AppendUint32(buf, move)
	return &Stream{state: blake2b.Sum256(buf)}
}

// Byte returns the next byte of the chain, rehashing the state every 32
// bytes.
func (s *Stream) Byte() byte {
	if s.cursor == len(s.state) {
		s.state = blake2b.Sum256(s.state[:])
		s.cursor = 0
	}
	b := s.state[s.cursor]
	s.cursor++
	return b
}

// Uint32 assembles four stream bytes big-endian.
func (s *Stream) Uint32() uint32 {
	var v uint32
	for i := 0; i < 4; i++ {
		v = v<<8 | uint32(s.Byte())
	}
	return v
}

// Float32 returns a uniform value in [0, 1). It consumes exactly 24 bits so
// the full single-precision mantissa is filled without low-bit bias.
func (s *Stream) Float32() float32 {
	var v uint32
	for i := 0; i < 3; i++ {
		v = v<<8 | uint32(s.Byte())
	}
	return float32(v) / (1 << 24)
}

// Bounded returns a uniform value in [0, max) by rejection sampling: draws
// at or above the largest multiple of max below 2^32 are discarded. Plain
// modulo reduction would bias small ranges and is not allowed here.
// Panics if max is 0; bounds are protocol constants, not user input.
func (s *Stream) Bounded(max uint32) uint32 {
	if max == 0 {
		panic("random: Bounded(0)")
	}
	limit := (uint64(1) << 32) / uint64(max) * uint64(max)
	for {
		v := s.Uint32()
		if uint64(v) < limit {
			return v % max
		}
	}
}

// Snapshot returns the raw chain state and cursor so games that span moves
// can persist a mid-draw position in their session blob.
func (s *Stream) Snapshot() ([32]byte, int) {
	return s.state, s.cursor
}

// Restore resumes a stream from a snapshot taken earlier.
func Restore(state [32]byte, cursor int) *Stream {
	if cursor < 0 || cursor > len(state) {
		cursor = 0
	}
	return &Stream{state: state, cursor: cursor}
}
