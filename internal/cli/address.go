package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/LeJamon/goXRPLGateway/internal/crypto"
	"github.com/LeJamon/goXRPLGateway/internal/ledgerclient"
	"github.com/LeJamon/goXRPLGateway/internal/rippleapi"
	"github.com/LeJamon/goXRPLGateway/internal/service"
)

var (
	addressAlgorithm string
	addressTest      bool
	addressXOnly     bool
)

// addressCmd represents the address command group
var addressCmd = &cobra.Command{
	Use:   "address",
	Short: "Generate and validate addresses locally",
	Long:  `Run the address service in process. No rippled connection is needed.`,
}

var addressGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a new account and print its addresses and secret",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		svc, err := newLocalAddressService()
		if err != nil {
			return err
		}
		var resp any
		if addressXOnly {
			resp, err = svc.GenerateXAddress(cmd.Context(), &emptypb.Empty{})
		} else {
			resp, err = svc.GenerateAddress(cmd.Context(), &emptypb.Empty{})
		}
		if err != nil {
			return err
		}
		return printJSON(cmd, resp)
	},
}

var addressValidateCmd = &cobra.Command{
	Use:   "validate <address>",
	Short: "Check a classic or X-address",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newLocalAddressService()
		if err != nil {
			return err
		}
		resp, err := svc.IsValidAddress(cmd.Context(), &rippleapi.RequestIsValidAddress{Address: args[0]})
		if err != nil {
			return err
		}
		return printJSON(cmd, resp)
	},
}

func init() {
	rootCmd.AddCommand(addressCmd)
	addressCmd.AddCommand(addressGenerateCmd, addressValidateCmd)

	addressGenerateCmd.Flags().StringVar(&addressAlgorithm, "algorithm", "secp256k1", "key algorithm: secp256k1 or ed25519")
	addressGenerateCmd.Flags().BoolVar(&addressTest, "test", false, "encode the X-address for a test network")
	addressGenerateCmd.Flags().BoolVar(&addressXOnly, "x-only", false, "print only the X-address and secret")
}

func newLocalAddressService() (*service.AddressService, error) {
	algorithm, err := crypto.ParseKeyType(addressAlgorithm)
	if err != nil {
		return nil, err
	}
	// Address operations never touch the connection, so any URL will do.
	client, err := ledgerclient.New(ledgerclient.Config{URL: "ws://127.0.0.1:0"}, nil)
	if err != nil {
		return nil, err
	}
	return service.NewAddressService(client, service.AddressConfig{Algorithm: algorithm, TestNetwork: addressTest}, nil), nil
}

func printJSON(cmd *cobra.Command, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to format result: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
