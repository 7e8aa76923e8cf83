package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/gin-gonic/gin"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	log "github.com/xlab/suplog"

	"github.com/qj0r9j0vc2/cosmos-lcd-query/lcd"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatalln(err)
	}
}

type rootFlags struct {
	configPath string
	chain      string
	origin     string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:           "lcd-query",
		Short:         "Query Cosmos LCD endpoints",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to config.yaml (default $"+CONFIG_PATH_ENV+" or "+DEFAULT_CONFIG_PATH+")")
	root.PersistentFlags().StringVar(&flags.chain, "chain", "", "configured chain to query")
	root.PersistentFlags().StringVar(&flags.origin, "lcd", "", "LCD origin, overrides --chain")

	root.AddCommand(
		newServeCmd(flags),
		newAccountCmd(flags),
		newAllowanceCmd(flags),
		newBalancesCmd(flags),
		newGrantsCmd(flags),
		newCodeHashCmd(flags),
	)
	return root
}

// target resolves the LCD origin and a context bounded by the chain timeout.
func (f *rootFlags) target(ctx context.Context) (string, context.Context, context.CancelFunc, error) {
	if f.origin != "" {
		ctx, cancel := context.WithTimeout(ctx, Chain{}.timeout())
		return strings.TrimRight(f.origin, "/"), ctx, cancel, nil
	}
	if f.chain == "" {
		return "", nil, nil, errors.New("either --chain or --lcd is required")
	}

	cfg, err := loadConfig(resolveConfigPath(f.configPath))
	if err != nil {
		return "", nil, nil, err
	}
	chain, ok := cfg.chain(f.chain)
	if !ok {
		return "", nil, nil, errors.Errorf("unknown chain %s, configured: %v", f.chain, cfg.getChains())
	}
	ctx, cancel := context.WithTimeout(ctx, chain.timeout())
	return chain.LCDURL, ctx, cancel, nil
}

func newServeCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve configured chains over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(resolveConfigPath(flags.configPath))
			if err != nil {
				return err
			}

			gin.SetMode(gin.ReleaseMode)
			addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
			log.Infoln("serving chains", cfg.getChains(), "on", addr)

			return newServer(cfg).router().Run(addr)
		},
	}
}

func newAccountCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "account <address>",
		Short: "Show the account at an address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags, lcd.Account(), args[0])
		},
	}
}

func newAllowanceCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "allowance <granter> <grantee>",
		Short: "Show the fee allowance between two addresses",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags, lcd.Allowance(), lcd.AllowanceArgs{
				Granter: args[0],
				Grantee: args[1],
			})
		},
	}
}

func newBalancesCmd(flags *rootFlags) *cobra.Command {
	var (
		limit uint64
		key   string
	)
	cmd := &cobra.Command{
		Use:   "balances <address>",
		Short: "Show one page of bank balances",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags, lcd.Balances(), lcd.BalancesArgs{
				Address: args[0],
				Limit:   limit,
				Key:     key,
			})
		},
	}
	cmd.Flags().Uint64Var(&limit, "limit", 0, "page size")
	cmd.Flags().StringVar(&key, "page-key", "", "pagination key from a previous page")
	return cmd
}

func newGrantsCmd(flags *rootFlags) *cobra.Command {
	var msgType string
	cmd := &cobra.Command{
		Use:   "grants <granter> <grantee>",
		Short: "List authz grants between two addresses",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags, lcd.Grants(), lcd.GrantsArgs{
				Granter:    args[0],
				Grantee:    args[1],
				MsgTypeURL: msgType,
			})
		},
	}
	cmd.Flags().StringVar(&msgType, "msg-type", "", "restrict to one message type URL")
	return cmd
}

func newCodeHashCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "code-hash <contract>",
		Short: "Show the code hash of a compute contract",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags, lcd.CodeHash(), args[0])
		},
	}
}

func run[A, R any](cmd *cobra.Command, flags *rootFlags, dispatch lcd.Dispatcher[A, R], args A) error {
	origin, ctx, cancel, err := flags.target(cmd.Context())
	if err != nil {
		return err
	}
	defer cancel()

	result, err := dispatch(ctx, origin, args)
	if err != nil {
		if _, text, _, ok := lcd.Details(err); ok {
			log.Debug(text)
		}
		return err
	}
	return printJSON(cmd.OutOrStdout(), result)
}

func printJSON(w io.Writer, v any) error {
	b, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to encode result")
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
