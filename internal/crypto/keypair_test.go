package crypto

import (
	"bytes"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeJamon/goXRPLGateway/internal/crypto/common"
)

func masterSeed() []byte {
	h := common.Sha512Half([]byte("masterpassphrase"))
	return h[:SeedSize]
}

func TestDeriveKeyPair_MasterPassphrase(t *testing.T) {
	tests := []struct {
		name      string
		keyType   KeyType
		publicKey string
		accountID string
	}{
		{
			name:      "secp256k1",
			keyType:   KeyTypeSecp256k1,
			publicKey: "0330E7FC9D56BB25D6893BA3F317AE5BCF33B3291BD63DB32654A313222F7FD020",
			accountID: "b5f762798a53d543a014caf8b297cff8f2f937e8",
		},
		{
			name:      "ed25519",
			keyType:   KeyTypeEd25519,
			publicKey: "ED9434799226374926EDA3B54B1B461B4ABF7237962EAE18528FEA67595397FA32",
			accountID: "7f58b19358f8e497c8a9ded3e6db3bc23a13c1a5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kp, err := DeriveKeyPair(masterSeed(), tt.keyType)
			require.NoError(t, err)
			defer kp.Close()

			assert.Equal(t, tt.publicKey, strings.ToUpper(hex.EncodeToString(kp.PublicKey)))
			id := kp.AccountID()
			assert.Equal(t, tt.accountID, hex.EncodeToString(id[:]))
			assert.Equal(t, tt.keyType, PublicKeyType(kp.PublicKey))
		})
	}
}

func TestDeriveKeyPair_Errors(t *testing.T) {
	_, err := DeriveKeyPair([]byte{1, 2, 3}, KeyTypeSecp256k1)
	require.ErrorIs(t, err, ErrInvalidSeedLength)

	_, err = DeriveKeyPair(masterSeed(), KeyTypeUnknown)
	require.ErrorIs(t, err, ErrUnsupportedKeyType)
}

func TestKeyPair_SignVerify(t *testing.T) {
	message := []byte("transaction signing data")

	for _, keyType := range []KeyType{KeyTypeSecp256k1, KeyTypeEd25519} {
		t.Run(keyType.String(), func(t *testing.T) {
			kp, err := DeriveKeyPair(masterSeed(), keyType)
			require.NoError(t, err)

			sig, err := kp.Sign(message)
			require.NoError(t, err)

			assert.True(t, Verify(message, kp.PublicKey, sig))
			assert.False(t, Verify([]byte("tampered"), kp.PublicKey, sig))
			assert.Equal(t, CanonicityFullyCanonical, SignatureCanonicality(kp.PublicKey, sig))

			kp.Close()
			_, err = kp.Sign(message)
			require.Error(t, err)
		})
	}
}

func TestRandomSeed(t *testing.T) {
	a, err := RandomSeed()
	require.NoError(t, err)
	b, err := RandomSeed()
	require.NoError(t, err)

	assert.Len(t, a, SeedSize)
	assert.False(t, bytes.Equal(a, b))
}

func TestParseKeyType(t *testing.T) {
	for in, want := range map[string]KeyType{
		"":          KeyTypeSecp256k1,
		"secp256k1": KeyTypeSecp256k1,
		"Ed25519":   KeyTypeEd25519,
	} {
		got, err := ParseKeyType(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseKeyType("rsa")
	require.ErrorIs(t, err, ErrUnsupportedKeyType)
}

func TestECDSACanonicality(t *testing.T) {
	tests := []struct {
		name     string
		sig      string
		expected Canonicality
	}{
		{
			name:     "low S",
			sig:      "304402206878b5690514437a2342405029426cc2b25b4a03fc396fef845d656cf62bad2c022018610a8d37f65ad02af907c8cb8f72becd0de43de7d5f42fefccb6c2a391a67c",
			expected: CanonicityFullyCanonical,
		},
		{name: "minimal", sig: "3006020101020101", expected: CanonicityFullyCanonical},
		{name: "bad sequence tag", sig: "3106020101020101", expected: CanonicityNone},
		{name: "bad length", sig: "3007020101020101", expected: CanonicityNone},
		{name: "zero R", sig: "3006020100020101", expected: CanonicityNone},
		{name: "empty", sig: "", expected: CanonicityNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig, err := hex.DecodeString(tt.sig)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ECDSACanonicality(sig))
		})
	}
}

func TestHashPrefixes(t *testing.T) {
	assert.Equal(t, []byte("TXN\x00"), HashPrefixTransactionID.Bytes())
	assert.Equal(t, []byte("STX\x00"), HashPrefixTxSign.Bytes())
	assert.Equal(t, []byte("SMT\x00"), HashPrefixTxMultiSign.Bytes())

	var signer AccountID
	signer[19] = 0x01
	data := MultiSigningData([]byte{0xAA}, signer)
	require.Len(t, data, 4+1+AccountIDSize)
	assert.Equal(t, byte(0xAA), data[4])
	assert.Equal(t, byte(0x01), data[len(data)-1])

	assert.Equal(t, append([]byte("STX\x00"), 0xAA), SigningData([]byte{0xAA}))
}

func TestAccountID_Less(t *testing.T) {
	a, ok := AccountIDFromBytes(bytes.Repeat([]byte{0x01}, AccountIDSize))
	require.True(t, ok)
	b, ok := AccountIDFromBytes(bytes.Repeat([]byte{0x02}, AccountIDSize))
	require.True(t, ok)

	assert.True(t, a.Less(b))
	assert.False(t, b.Less(a))
	assert.False(t, a.IsZero())

	_, ok = AccountIDFromBytes([]byte{0x01})
	assert.False(t, ok)
}
