package core

import "encoding/binary"

// Account holds a participant's balances, replay-protection nonce and armed
// one-shot modifiers. Address is the hex-encoded ed25519 public key.
// A missing account reads as the zero value, so the first accepted
// transaction from a fresh key carries nonce 0.
type Account struct {
	Address string `json:"address"` // pubkey hex
	Chips   uint64 `json:"chips"`   // native wagering balance
	Tokens  uint64 `json:"tokens"`  // bridged token balance
	Nonce   uint64 `json:"nonce"`
	Staked  uint64 `json:"staked"`
	Shield  bool   `json:"shield"` // one-shot loss shield armed
	Double  bool   `json:"double"` // one-shot win doubler armed
}

// Seed is the consensus-derived randomness anchor for one view. Every
// validator in the view holds an identical Seed, so every stream derived
// from it is identical too.
type Seed struct {
	ViewNumber uint64   `json:"view"`
	Entropy    [32]byte `json:"entropy"`
}

// View returns the monotonically increasing consensus round counter.
func (s Seed) View() uint64 { return s.ViewNumber }

// Encode returns the stable byte encoding: 8-byte big-endian view followed
// by the 32 entropy bytes. Stream derivation depends on this layout never
// changing.
func (s Seed) Encode() []byte {
	buf := make([]byte, 8+len(s.Entropy))
	binary.BigEndian.PutUint64(buf[:8], s.ViewNumber)
	copy(buf[8:], s.Entropy[:])
	return buf
}
