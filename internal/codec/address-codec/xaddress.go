package addresscodec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/LeJamon/goXRPLGateway/internal/crypto"
)

var (
	// MainnetXAddressPrefix is the version of production X-addresses ("X...").
	MainnetXAddressPrefix = []byte{0x05, 0x44}
	// TestnetXAddressPrefix is the version of test network X-addresses ("T...").
	TestnetXAddressPrefix = []byte{0x04, 0x93}

	ErrInvalidXAddress = errors.New("invalid X-address")
	ErrUnsupportedTag  = errors.New("unsupported X-address tag")
)

const xAddressBodyLength = 2 + AccountIDLength + 1 + 8

// XAddress is the decoded content of an X-address.
type XAddress struct {
	AccountID crypto.AccountID
	Tag       *uint32
	Testnet   bool
}

// EncodeXAddress packs an account ID, an optional destination tag and the
// network flag into an X-address.
func EncodeXAddress(id crypto.AccountID, tag *uint32, testnet bool) string {
	body := make([]byte, 0, xAddressBodyLength)
	if testnet {
		body = append(body, TestnetXAddressPrefix...)
	} else {
		body = append(body, MainnetXAddressPrefix...)
	}
	body = append(body, id[:]...)

	var flag byte
	var tagBytes [8]byte
	if tag != nil {
		flag = 1
		binary.LittleEndian.PutUint32(tagBytes[:4], *tag)
	}
	body = append(body, flag)
	body = append(body, tagBytes[:]...)
	return Base58CheckEncode(body)
}

// ClassicAddressToXAddress converts a classic address into an X-address.
func ClassicAddressToXAddress(classic string, tag *uint32, testnet bool) (string, error) {
	id, err := DecodeClassicAddress(classic)
	if err != nil {
		return "", err
	}
	return EncodeXAddress(id, tag, testnet), nil
}

// DecodeXAddress unpacks an X-address.
func DecodeXAddress(xAddress string) (*XAddress, error) {
	body, err := Base58CheckDecode(xAddress)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidXAddress, err)
	}
	if len(body) != xAddressBodyLength {
		return nil, ErrInvalidXAddress
	}

	out := &XAddress{}
	switch {
	case bytes.Equal(body[:2], MainnetXAddressPrefix):
	case bytes.Equal(body[:2], TestnetXAddressPrefix):
		out.Testnet = true
	default:
		return nil, ErrInvalidXAddress
	}
	copy(out.AccountID[:], body[2:2+AccountIDLength])

	flag := body[2+AccountIDLength]
	tagBytes := body[3+AccountIDLength:]
	// The upper four tag bytes are reserved for 64-bit tags and must be zero.
	if binary.LittleEndian.Uint32(tagBytes[4:]) != 0 {
		return nil, ErrUnsupportedTag
	}
	tag := binary.LittleEndian.Uint32(tagBytes[:4])
	switch flag {
	case 0:
		if tag != 0 {
			return nil, ErrUnsupportedTag
		}
	case 1:
		out.Tag = &tag
	default:
		return nil, ErrUnsupportedTag
	}
	return out, nil
}

// XAddressToClassicAddress returns the classic address, tag and network of an X-address.
func XAddressToClassicAddress(xAddress string) (string, *uint32, bool, error) {
	x, err := DecodeXAddress(xAddress)
	if err != nil {
		return "", nil, false, err
	}
	return EncodeAccountID(x.AccountID), x.Tag, x.Testnet, nil
}

// IsValidXAddress reports whether xAddress decodes.
func IsValidXAddress(xAddress string) bool {
	_, err := DecodeXAddress(xAddress)
	return err == nil
}

// IsValidAddress accepts both classic addresses and X-addresses.
func IsValidAddress(address string) bool {
	return IsValidClassicAddress(address) || IsValidXAddress(address)
}

// AccountIDFromAddress resolves either address form to an account ID.
func AccountIDFromAddress(address string) (crypto.AccountID, *uint32, error) {
	if id, err := DecodeClassicAddress(address); err == nil {
		return id, nil, nil
	}
	x, err := DecodeXAddress(address)
	if err != nil {
		return crypto.AccountID{}, nil, ErrInvalidClassicAddress
	}
	return x.AccountID, x.Tag, nil
}
