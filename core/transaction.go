package core

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/wagerchain/wagerchain/crypto"
)

// Transaction is the atomic unit of work handed to the engine by consensus.
// From holds the sender's full hex-encoded ed25519 public key (64 chars).
// Signature covers all fields except ID and Signature itself.
//
// Signatures are checked by the gateway before ordering; the engine trusts
// the batch it is given and only re-verifies in tests and tooling.
type Transaction struct {
	ID        string      `json:"id"`
	From      string      `json:"from"` // hex-encoded ed25519 public key
	Nonce     uint64      `json:"nonce"`
	Instr     Instruction `json:"-"`
	Signature string      `json:"signature"`
}

// wireTx is the JSON shape: the typed instruction travels as an
// opcode-tagged envelope.
type wireTx struct {
	ID        string          `json:"id,omitempty"`
	From      string          `json:"from"`
	Nonce     uint64          `json:"nonce"`
	Op        OpCode          `json:"op"`
	Body      json.RawMessage `json:"body,omitempty"`
	Signature string          `json:"signature,omitempty"`
}

// signingBody holds the fields covered by the signature.
type signingBody struct {
	From  string          `json:"from"`
	Nonce uint64          `json:"nonce"`
	Op    OpCode          `json:"op"`
	Body  json.RawMessage `json:"body"`
}

// MarshalJSON encodes the transaction with its instruction envelope.
func (tx *Transaction) MarshalJSON() ([]byte, error) {
	body, err := json.Marshal(tx.Instr)
	if err != nil {
		return nil, fmt.Errorf("marshal instruction: %w", err)
	}
	return json.Marshal(wireTx{
		ID:        tx.ID,
		From:      tx.From,
		Nonce:     tx.Nonce,
		Op:        tx.Instr.Op(),
		Body:      body,
		Signature: tx.Signature,
	})
}

// UnmarshalJSON decodes the envelope back into a typed instruction.
func (tx *Transaction) UnmarshalJSON(data []byte) error {
	var w wireTx
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	instr, err := DecodeInstruction(w.Op, w.Body)
	if err != nil {
		return err
	}
	tx.ID = w.ID
	tx.From = w.From
	tx.Nonce = w.Nonce
	tx.Instr = instr
	tx.Signature = w.Signature
	return nil
}

// Hash returns a deterministic hash of the transaction (sans ID/Signature).
// Returns an empty string if marshalling fails (which cannot happen in
// practice).
func (tx *Transaction) Hash() string {
	body, err := json.Marshal(tx.Instr)
	if err != nil {
		return ""
	}
	data, err := json.Marshal(signingBody{
		From:  tx.From,
		Nonce: tx.Nonce,
		Op:    tx.Instr.Op(),
		Body:  body,
	})
	if err != nil {
		return ""
	}
	return crypto.Hash(data)
}

// Sign computes the signature and sets ID.
func (tx *Transaction) Sign(priv crypto.PrivateKey) {
	hash := tx.Hash()
	tx.Signature = crypto.Sign(priv, []byte(hash))
	tx.ID = hash
}

// Verify checks the signature and that From is a valid public key.
func (tx *Transaction) Verify() error {
	if tx.From == "" {
		return errors.New("missing from field")
	}
	pub, err := crypto.PubKeyFromHex(tx.From)
	if err != nil {
		return fmt.Errorf("invalid from (must be ed25519 pubkey hex): %w", err)
	}
	return crypto.Verify(pub, []byte(tx.Hash()), tx.Signature)
}

// NewTransaction creates an unsigned transaction.
func NewTransaction(from string, nonce uint64, instr Instruction) *Transaction {
	return &Transaction{From: from, Nonce: nonce, Instr: instr}
}
