package addresscodec

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeJamon/goXRPLGateway/internal/crypto"
	"github.com/LeJamon/goXRPLGateway/internal/crypto/common"
)

func passphraseSeed(passphrase string) []byte {
	h := common.Sha512Half([]byte(passphrase))
	return h[:SeedLength]
}

// TestSeedFromPassphrase uses the rippled Seed_test.cpp vectors.
func TestSeedFromPassphrase(t *testing.T) {
	testcases := []struct {
		name         string
		passphrase   string
		expectedSeed string
	}{
		{name: "masterpassphrase", passphrase: "masterpassphrase", expectedSeed: "snoPBrXtMeMyMHUVTgbuqAfg1SUTb"},
		{name: "Non-Random Passphrase", passphrase: "Non-Random Passphrase", expectedSeed: "snMKnVku798EnBwUfxeSD8953sLYA"},
		{name: "cookies excitement hand public", passphrase: "cookies excitement hand public", expectedSeed: "sspUXGrmjQhq6mgc24jiRuevZiwKT"},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			encoded, err := EncodeSeed(passphraseSeed(tc.passphrase), crypto.KeyTypeSecp256k1)
			require.NoError(t, err)
			require.Equal(t, tc.expectedSeed, encoded)

			decoded, keyType, err := DecodeSeed(encoded)
			require.NoError(t, err)
			require.Equal(t, crypto.KeyTypeSecp256k1, keyType)
			require.Equal(t, passphraseSeed(tc.passphrase), decoded)
		})
	}
}

func TestSeedDecode_Invalid(t *testing.T) {
	for name, seed := range map[string]string{
		"empty":            "",
		"too short":        "sspUXGrmjQhq6mgc24jiRuevZiwK",
		"too long":         "sspUXGrmjQhq6mgc24jiRuevZiwKTT",
		"character O":      "sspOXGrmjQhq6mgc24jiRuevZiwKT",
		"character /":      "ssp/XGrmjQhq6mgc24jiRuevZiwKT",
		"invalid checksum": "snoPBrXtMeMyMHUVTgbuqAfg1SUTa",
		"classic address":  "rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh",
	} {
		t.Run(name, func(t *testing.T) {
			_, _, err := DecodeSeed(seed)
			require.EqualError(t, err, ErrInvalidSeed.Error())
		})
	}
}

func TestSeed_Ed25519RoundTrip(t *testing.T) {
	seed := passphraseSeed("masterpassphrase")

	encoded, err := EncodeSeed(seed, crypto.KeyTypeEd25519)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(encoded, "sEd"))

	decoded, keyType, err := DecodeSeed(encoded)
	require.NoError(t, err)
	assert.Equal(t, crypto.KeyTypeEd25519, keyType)
	assert.Equal(t, seed, decoded)

	_, _, err = DecodeSeed("sEdTzRkEgPoxDG1mJ6WkSucHWnMkm1H")
	require.NoError(t, err)
}

func TestClassicAddressFromSeed(t *testing.T) {
	tests := []struct {
		keyType crypto.KeyType
		address string
		public  string
	}{
		{crypto.KeyTypeSecp256k1, "rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh", "aBQG8RQAzjs1eTKFEAQXr2gS4utcDiEC9wmi7pfUPTi27VCahwgw"},
		{crypto.KeyTypeEd25519, "rGWrZyQqhTp9Xu7G5Pkayo7bXjH4k4QYpf", "aKGheSBjmCsKJVuLNKRAKpZXT6wpk2FCuEZAXJupXgdAxX5THCqR"},
	}

	for _, tt := range tests {
		t.Run(tt.keyType.String(), func(t *testing.T) {
			kp, err := crypto.DeriveKeyPair(passphraseSeed("masterpassphrase"), tt.keyType)
			require.NoError(t, err)
			defer kp.Close()

			address, err := EncodeClassicAddressFromPublicKeyHex(hex.EncodeToString(kp.PublicKey))
			require.NoError(t, err)
			assert.Equal(t, tt.address, address)

			public, err := EncodeAccountPublicKey(kp.PublicKey)
			require.NoError(t, err)
			assert.Equal(t, tt.public, public)
		})
	}
}

func TestIsValidClassicAddress(t *testing.T) {
	tests := []struct {
		address string
		valid   bool
	}{
		{"rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh", true},
		{"rGWrZyQqhTp9Xu7G5Pkayo7bXjH4k4QYpf", true},
		{"rrrrrrrrrrrrrrrrrrrrrhoLvTp", true},
		{"rrrrrrrrrrrrrrrrrrrrBZbvji", true},
		{"rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTi", false},
		{"rOOOOJAWyB4rj91VRWn96DkukG4bwdtyTh", false},
		{"", false},
		{"snoPBrXtMeMyMHUVTgbuqAfg1SUTb", false},
	}

	for _, tt := range tests {
		t.Run(tt.address, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValidClassicAddress(tt.address))
		})
	}
}

func TestAccountZero(t *testing.T) {
	assert.Equal(t, "rrrrrrrrrrrrrrrrrrrrrhoLvTp", EncodeAccountID(crypto.AccountID{}))
}

func TestXAddressRoundTrip(t *testing.T) {
	tag := uint32(12345)
	tests := []struct {
		name    string
		classic string
		tag     *uint32
		testnet bool
		prefix  string
	}{
		{"mainnet no tag", "rGWrZyQqhTp9Xu7G5Pkayo7bXjH4k4QYpf", nil, false, "X"},
		{"mainnet tag", "rGWrZyQqhTp9Xu7G5Pkayo7bXjH4k4QYpf", &tag, false, "X"},
		{"testnet tag", "rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh", &tag, true, "T"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, err := ClassicAddressToXAddress(tt.classic, tt.tag, tt.testnet)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(x, tt.prefix))
			assert.True(t, IsValidXAddress(x))
			assert.True(t, IsValidAddress(x))
			assert.False(t, IsValidClassicAddress(x))

			classic, gotTag, testnet, err := XAddressToClassicAddress(x)
			require.NoError(t, err)
			assert.Equal(t, tt.classic, classic)
			assert.Equal(t, tt.tag, gotTag)
			assert.Equal(t, tt.testnet, testnet)
		})
	}
}

func TestXAddress_KnownVectors(t *testing.T) {
	tests := []struct {
		classic string
		x       string
	}{
		{"rGWrZyQqhTp9Xu7G5Pkayo7bXjH4k4QYpf", "XVLhHMPHU98es4dbozjVtdWzVrDjtV5fdx1mHp98tDMoQXb"},
		{"r9cZA1mLK5R5Am25ArfXFmqgNwjZgnfk59", "X7AcgcsBL6XDcUb289X4mJ8djcdyKaB5hJDWMArnXr61cqZ"},
	}
	for _, tt := range tests {
		t.Run(tt.classic, func(t *testing.T) {
			x, err := ClassicAddressToXAddress(tt.classic, nil, false)
			require.NoError(t, err)
			assert.Equal(t, tt.x, x)
		})
	}
}

func TestIsValidAddress_Rejects(t *testing.T) {
	assert.False(t, IsValidAddress("not an address"))
	assert.False(t, IsValidAddress("XVLhHMPHU98es4dbozjVtdWzVrDjtV5fdx1mHp98tDMoQXc"))
}
