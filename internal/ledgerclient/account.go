package ledgerclient

import (
	"context"

	addresscodec "github.com/LeJamon/goXRPLGateway/internal/codec/address-codec"
)

type accountInfoResult struct {
	AccountData struct {
		Balance           string `json:"Balance"`
		OwnerCount        uint32 `json:"OwnerCount"`
		PreviousTxnID     string `json:"PreviousTxnID"`
		PreviousTxnLgrSeq uint32 `json:"PreviousTxnLgrSeq"`
		Sequence          uint32 `json:"Sequence"`
	} `json:"account_data"`
	LedgerIndex uint32 `json:"ledger_index"`
}

// GetAccountInfo reads the account root in the last validated ledger.
// X-addresses are accepted; their tag is ignored.
func (c *Client) GetAccountInfo(ctx context.Context, address string) (*AccountInfo, error) {
	classic, err := toClassicAddress(address)
	if err != nil {
		return nil, err
	}

	var res accountInfoResult
	err = c.request(ctx, map[string]any{
		"command":      "account_info",
		"account":      classic,
		"ledger_index": "validated",
	}, &res)
	if err != nil {
		return nil, err
	}

	balance, err := DropsToXRP(res.AccountData.Balance)
	if err != nil {
		return nil, newError(ErrResponseFormat, NameResponseFormat, "account_info Balance: %v", err)
	}
	return &AccountInfo{
		Sequence:                                  res.AccountData.Sequence,
		XRPBalance:                                balance,
		OwnerCount:                                res.AccountData.OwnerCount,
		PreviousAffectingTransactionID:            res.AccountData.PreviousTxnID,
		PreviousAffectingTransactionLedgerVersion: res.AccountData.PreviousTxnLgrSeq,
	}, nil
}

func toClassicAddress(address string) (string, error) {
	if addresscodec.IsValidClassicAddress(address) {
		return address, nil
	}
	if addresscodec.IsValidXAddress(address) {
		classic, _, _, err := addresscodec.XAddressToClassicAddress(address)
		if err != nil {
			return "", validationError("address %q: %v", address, err)
		}
		return classic, nil
	}
	return "", validationError("address %q is not a valid classic or X-address", address)
}
