package ledgerclient

import (
	"context"
	"encoding/json"
	"math/big"

	"golang.org/x/sync/errgroup"

	addresscodec "github.com/LeJamon/goXRPLGateway/internal/codec/address-codec"
)

// tfFullyCanonicalSig requires a fully canonical signature.
const tfFullyCanonicalSig uint32 = 0x80000000

type serverInfoResult struct {
	Info struct {
		CompleteLedgers string  `json:"complete_ledgers"`
		LoadFactor      float64 `json:"load_factor"`
		ValidatedLedger struct {
			BaseFeeXRP     json.Number `json:"base_fee_xrp"`
			ReserveBaseXRP json.Number `json:"reserve_base_xrp"`
			ReserveIncXRP  json.Number `json:"reserve_inc_xrp"`
			Seq            uint32      `json:"seq"`
		} `json:"validated_ledger"`
	} `json:"info"`
}

func (c *Client) serverInfo(ctx context.Context) (*serverInfoResult, error) {
	var res serverInfoResult
	if err := c.request(ctx, map[string]any{"command": "server_info"}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// PrepareTransaction completes tx with Flags, Fee, Sequence and
// LastLedgerSequence. Values present in instructions win over autofill.
func (c *Client) PrepareTransaction(ctx context.Context, tx Transaction, instructions Instructions) (*Prepared, error) {
	if tx.TransactionType == "" {
		return nil, validationError("TransactionType is required")
	}
	if instructions.MaxLedgerVersion != nil && instructions.MaxLedgerVersionOffset != nil {
		return nil, validationError("maxLedgerVersion and maxLedgerVersionOffset are mutually exclusive")
	}

	txJSON := map[string]any{
		"TransactionType": tx.TransactionType,
		"Flags":           tfFullyCanonicalSig,
	}
	if tx.Amount != "" {
		txJSON["Amount"] = tx.Amount
	}
	account, err := setAddress(txJSON, "Account", "SourceTag", tx.Account)
	if err != nil {
		return nil, err
	}
	if tx.Destination != "" {
		if _, err := setAddress(txJSON, "Destination", "DestinationTag", tx.Destination); err != nil {
			return nil, err
		}
	}

	maxFeeXRP := c.cfg.MaxFeeXRP
	if instructions.MaxFee != nil {
		maxFeeXRP = *instructions.MaxFee
	}
	var signersCount uint32
	if instructions.SignersCount != nil {
		signersCount = *instructions.SignersCount
	}

	var (
		fee           string
		sequence      uint32
		ledgerVersion uint32
	)
	g, gctx := errgroup.WithContext(ctx)

	if instructions.Fee != nil {
		drops, err := explicitFeeDrops(*instructions.Fee, maxFeeXRP, signersCount)
		if err != nil {
			return nil, err
		}
		fee = drops
	} else {
		g.Go(func() error {
			info, err := c.serverInfo(gctx)
			if err != nil {
				return err
			}
			vl := info.Info.ValidatedLedger
			if tx.TransactionType == "AccountDelete" {
				fee, err = calculateFeeDrops(vl.ReserveIncXRP.String(), 1, 1, vl.ReserveIncXRP.String(), signersCount)
				return err
			}
			fee, err = calculateFeeDrops(vl.BaseFeeXRP.String(), info.Info.LoadFactor, c.cfg.FeeCushion, maxFeeXRP, signersCount)
			return err
		})
	}

	if instructions.Sequence != nil {
		sequence = *instructions.Sequence
	} else {
		g.Go(func() error {
			info, err := c.GetAccountInfo(gctx, account)
			if err != nil {
				return err
			}
			sequence = info.Sequence
			return nil
		})
	}

	if instructions.MaxLedgerVersion == nil {
		g.Go(func() error {
			v, err := c.GetLedgerVersion(gctx)
			ledgerVersion = v
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	txJSON["Fee"] = fee
	txJSON["Sequence"] = sequence

	var maxLedgerVersion *uint32
	switch {
	case instructions.MaxLedgerVersion != nil:
		// zero means the transaction never expires
		if *instructions.MaxLedgerVersion != 0 {
			v := *instructions.MaxLedgerVersion
			maxLedgerVersion = &v
		}
	case instructions.MaxLedgerVersionOffset != nil:
		v := ledgerVersion + *instructions.MaxLedgerVersionOffset
		maxLedgerVersion = &v
	default:
		v := ledgerVersion + c.cfg.MaxLedgerVersionOffset
		maxLedgerVersion = &v
	}
	if maxLedgerVersion != nil {
		txJSON["LastLedgerSequence"] = *maxLedgerVersion
	}

	encoded, err := json.Marshal(txJSON)
	if err != nil {
		return nil, validationError("encode txJSON: %v", err)
	}
	feeXRP, err := DropsToXRP(fee)
	if err != nil {
		return nil, validationError("fee: %v", err)
	}
	return &Prepared{
		TxJSON: string(encoded),
		Instructions: ResolvedInstructions{
			Fee:              feeXRP,
			Sequence:         sequence,
			MaxLedgerVersion: maxLedgerVersion,
		},
	}, nil
}

// setAddress stores address under field, expanding an X-address into its
// classic form plus tagField. It returns the classic address.
func setAddress(txJSON map[string]any, field, tagField, address string) (string, error) {
	if addresscodec.IsValidClassicAddress(address) {
		txJSON[field] = address
		return address, nil
	}
	if !addresscodec.IsValidXAddress(address) {
		return "", validationError("%s %q is not a valid classic or X-address", field, address)
	}
	classic, tag, _, err := addresscodec.XAddressToClassicAddress(address)
	if err != nil {
		return "", validationError("%s %q: %v", field, address, err)
	}
	txJSON[field] = classic
	if tag != nil {
		txJSON[tagField] = *tag
	}
	return classic, nil
}

func explicitFeeDrops(feeXRP, maxFeeXRP string, signersCount uint32) (string, error) {
	fee, ok := parseDecimal(feeXRP)
	if !ok || fee.Sign() < 0 {
		return "", validationError("fee %q is not a valid XRP amount", feeXRP)
	}
	maxFee, ok := parseDecimal(maxFeeXRP)
	if ok && fee.Cmp(maxFee) > 0 {
		return "", validationError("fee of %s XRP exceeds max of %s XRP", feeXRP, maxFeeXRP)
	}
	drops, err := XRPToDrops(feeXRP)
	if err != nil {
		return "", err
	}
	n, _ := new(big.Int).SetString(drops, 10)
	n.Mul(n, big.NewInt(int64(signersCount)+1))
	return n.String(), nil
}
