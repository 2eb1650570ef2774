// Package wallet provides key management and transaction-building helpers
// for gateways, tooling and tests.
package wallet

import (
	"github.com/wagerchain/wagerchain/core"
	"github.com/wagerchain/wagerchain/crypto"
)

// Wallet holds a key pair and provides transaction-building helpers.
type Wallet struct {
	priv crypto.PrivateKey
	pub  crypto.PublicKey
}

// New creates a Wallet from an existing private key.
func New(priv crypto.PrivateKey) *Wallet {
	return &Wallet{priv: priv, pub: priv.Public()}
}

// Generate creates a Wallet with a freshly generated key pair.
func Generate() (*Wallet, error) {
	priv, _, err := crypto.GenerateKeyPair()
	if err != nil {
		return nil, err
	}
	return New(priv), nil
}

// PrivKey returns the raw private key (handle with care).
func (w *Wallet) PrivKey() crypto.PrivateKey {
	return w.priv
}

// PubKey returns the hex-encoded ed25519 public key (used as "from" address).
func (w *Wallet) PubKey() string {
	return w.pub.Hex()
}

// NewTx creates a signed transaction carrying instr.
// nonce should match the account's current nonce.
func (w *Wallet) NewTx(nonce uint64, instr core.Instruction) *core.Transaction {
	tx := core.NewTransaction(w.pub.Hex(), nonce, instr)
	tx.Sign(w.priv)
	return tx
}

// StartGame creates a signed StartGame transaction.
func (w *Wallet) StartGame(nonce uint64, game core.GameType, bet uint64) *core.Transaction {
	return w.NewTx(nonce, core.StartGame{Game: game, Bet: bet})
}

// Move creates a signed GameMove transaction with a raw payload.
func (w *Wallet) Move(nonce, sessionID uint64, payload []byte) *core.Transaction {
	return w.NewTx(nonce, core.GameMove{SessionID: sessionID, Payload: payload})
}
