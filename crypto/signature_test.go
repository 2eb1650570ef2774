package crypto

import (
	"strings"
	"testing"
)

func TestSignVerify(t *testing.T) {
	priv, pub, err := GenerateKeyPair()
	if err != nil {
		t.Fatalf("keygen: %v", err)
	}
	msg := []byte("deadbeef-content-hash")

	sig := Sign(priv, msg)
	if err := Verify(pub, msg, sig); err != nil {
		t.Fatalf("verify: %v", err)
	}
	if err := Verify(pub, []byte("other"), sig); err == nil {
		t.Fatal("signature verified against different data")
	}

	_, otherPub, err := GenerateKeyPair()
	if err != nil {
		t.Fatalf("keygen: %v", err)
	}
	if err := Verify(otherPub, msg, sig); err == nil {
		t.Fatal("signature verified under a different key")
	}
}

func TestVerifyMalformedSignature(t *testing.T) {
	_, pub, err := GenerateKeyPair()
	if err != nil {
		t.Fatalf("keygen: %v", err)
	}
	if err := Verify(pub, []byte("x"), "not-hex"); err == nil {
		t.Fatal("non-hex signature accepted")
	}
	if err := Verify(pub, []byte("x"), strings.Repeat("ab", 10)); err == nil {
		t.Fatal("truncated signature accepted")
	}
}
