package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/LeJamon/goXRPLGateway/internal/rippleapi"
)

var (
	callAddr    string
	callTimeout time.Duration
	callCount   int
)

// callFunc invokes one gateway method with JSON params
type callFunc func(ctx context.Context, cc grpc.ClientConnInterface, params []byte) (any, error)

// unary adapts a generated client method to a callFunc
func unary[C, Req, Resp any](newClient func(grpc.ClientConnInterface) C, method func(C, context.Context, *Req, ...grpc.CallOption) (Resp, error)) callFunc {
	return func(ctx context.Context, cc grpc.ClientConnInterface, params []byte) (any, error) {
		req := new(Req)
		if len(params) > 0 {
			if err := json.Unmarshal(params, req); err != nil {
				return nil, fmt.Errorf("invalid params: %w", err)
			}
		}
		return method(newClient(cc), ctx, req)
	}
}

var callMethods = map[string]callFunc{
	"GetAccountInfo":     unary(rippleapi.NewRippleAccountAPIClient, rippleapi.RippleAccountAPIClient.GetAccountInfo),
	"GenerateAddress":    unary(rippleapi.NewRippleAddressAPIClient, rippleapi.RippleAddressAPIClient.GenerateAddress),
	"GenerateXAddress":   unary(rippleapi.NewRippleAddressAPIClient, rippleapi.RippleAddressAPIClient.GenerateXAddress),
	"IsValidAddress":     unary(rippleapi.NewRippleAddressAPIClient, rippleapi.RippleAddressAPIClient.IsValidAddress),
	"PrepareTransaction": unary(rippleapi.NewRippleTransactionAPIClient, rippleapi.RippleTransactionAPIClient.PrepareTransaction),
	"SignTransaction":    unary(rippleapi.NewRippleTransactionAPIClient, rippleapi.RippleTransactionAPIClient.SignTransaction),
	"SubmitTransaction":  unary(rippleapi.NewRippleTransactionAPIClient, rippleapi.RippleTransactionAPIClient.SubmitTransaction),
	"GetTransaction":     unary(rippleapi.NewRippleTransactionAPIClient, rippleapi.RippleTransactionAPIClient.GetTransaction),
	"CombineTransaction": unary(rippleapi.NewRippleTransactionAPIClient, rippleapi.RippleTransactionAPIClient.CombineTransaction),
}

// callCmd represents the call command
var callCmd = &cobra.Command{
	Use:   "call <method> [params-json]",
	Short: "Call a method on a running gateway",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runCall,
}

func init() {
	rootCmd.AddCommand(callCmd)

	names := make([]string, 0, len(callMethods)+1)
	for name := range callMethods {
		names = append(names, name)
	}
	names = append(names, "WaitValidation")
	sort.Strings(names)
	callCmd.Long = `Call a gateway method over gRPC and print the response as JSON.
Params are the request record as JSON, e.g.

  xrplgw call GetAccountInfo '{"address":"rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh"}'

WaitValidation prints one line per validated ledger until --count ledgers
have been seen or the command is interrupted.

Methods:
  ` + strings.Join(names, "\n  ")

	callCmd.Flags().StringVar(&callAddr, "addr", "", "gateway address (default: server.address from the configuration)")
	callCmd.Flags().DurationVar(&callTimeout, "timeout", 30*time.Second, "deadline for unary calls")
	callCmd.Flags().IntVar(&callCount, "count", 0, "WaitValidation: stop after this many ledgers (0 runs until interrupted)")
}

func runCall(cmd *cobra.Command, args []string) error {
	addr := callAddr
	if addr == "" {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		addr = cfg.Server.Address
	}

	cc, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	defer cc.Close()

	var params []byte
	if len(args) == 2 {
		params = []byte(args[1])
	}
	return callMethod(cmd.Context(), cmd.OutOrStdout(), cc, args[0], params)
}

// callMethod runs method against cc and writes the result to out.
func callMethod(ctx context.Context, out io.Writer, cc grpc.ClientConnInterface, method string, params []byte) error {
	if method == "WaitValidation" {
		return waitValidation(ctx, out, cc, callCount)
	}

	call, ok := callMethods[method]
	if !ok {
		return fmt.Errorf("unknown method: %s", method)
	}

	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()
	resp, err := call(ctx, cc, params)
	if err != nil {
		return callError(err)
	}

	b, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to format result: %w", err)
	}
	fmt.Fprintln(out, string(b))
	return nil
}

func waitValidation(ctx context.Context, out io.Writer, cc grpc.ClientConnInterface, count int) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	stream, err := rippleapi.NewRippleTransactionAPIClient(cc).WaitValidation(ctx, &emptypb.Empty{})
	if err != nil {
		return callError(err)
	}
	for seen := 0; count == 0 || seen < count; seen++ {
		ev, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return callError(err)
		}
		b, err := json.Marshal(ev)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(b))
	}
	return nil
}

// callError drops the rpc error prefix; the gateway's messages already
// name the failure.
func callError(err error) error {
	if st, ok := status.FromError(err); ok {
		return fmt.Errorf("%s: %s", st.Code(), st.Message())
	}
	return err
}
