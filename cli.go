package main

import (
	"fmt"
	"io"
	"strings"

	"simple-dex-tui/config"
	"simple-dex-tui/dex"
	"simple-dex-tui/helpers"
	"simple-dex-tui/invoker"
	"simple-dex-tui/session"
	"simple-dex-tui/wallet"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/log"
	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// -------------------- CLI --------------------

type cliOptions struct {
	configPath string
	rpcURL     string
	passphrase string
	yes        bool
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}
	v := config.NewViper()

	rootCmd := &cobra.Command{
		Use:          "simpledex",
		Short:        "Terminal client for the SimpleDEX liquidity pool",
		Long:         "simpledex connects a local wallet to the SimpleDEX pool contract. Without a subcommand it opens the terminal UI; each subcommand runs one pool operation and prints its status message.",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg := loadConfig(v, opts, true)
			m := newModel(cfg, opts.configPath, strings.TrimSpace(opts.rpcURL))
			p := tea.NewProgram(&m, tea.WithAltScreen(), tea.WithMouseCellMotion())
			_, err := p.Run()
			return err
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", config.DefaultPath(), "config file")
	flags.StringVar(&opts.rpcURL, "rpc", "", "RPC endpoint for this run (overrides the active one)")
	flags.String("contract", "", "pool contract address")
	flags.String("keystore", "", "keystore directory")
	flags.String("account", "", "keystore account address")
	flags.StringVar(&opts.passphrase, "passphrase", "", "keystore passphrase (prompted when empty)")
	flags.BoolVarP(&opts.yes, "yes", "y", false, "authorize account access without asking")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging on stderr")

	_ = v.BindPFlag("contract.address", flags.Lookup("contract"))
	_ = v.BindPFlag("wallet.keystore", flags.Lookup("keystore"))
	_ = v.BindPFlag("wallet.account", flags.Lookup("account"))

	for _, op := range dex.Operations {
		rootCmd.AddCommand(newOperationCmd(op, v, opts))
	}

	return rootCmd
}

// loadConfig merges file, environment and flags. The TUI creates the file
// on first run; subcommands only read it. --rpc is not part of the result:
// it is a one-run override, see rpcFor.
func loadConfig(v *viper.Viper, opts *cliOptions, create bool) config.Config {
	if create {
		return config.LoadOrCreateWith(v, opts.configPath)
	}
	return config.LoadWith(v, opts.configPath)
}

// rpcFor returns the endpoint of this run: --rpc when given, the active
// configured endpoint otherwise.
func rpcFor(cfg config.Config, opts *cliOptions) string {
	if url := strings.TrimSpace(opts.rpcURL); url != "" {
		return url
	}
	return cfg.ActiveRPC()
}

func newOperationCmd(op dex.Operation, v *viper.Viper, opts *cliOptions) *cobra.Command {
	use := op.Command
	for _, arg := range op.Args {
		use += " <" + arg + ">"
	}

	short := op.Label
	if op.Mutating {
		short += fmt.Sprintf(" (e.g. %s)", strings.Join(op.Defaults, " "))
	}

	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(op.Arity()),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig(v, opts, false)
			logger := newCLILogger(cmd.ErrOrStderr(), opts.verbose)

			desc, err := dex.NewDescriptor(cfg.Contract.Address)
			if err != nil {
				return err
			}

			walletCfg := cfg.Wallet
			sessions := session.NewManager(session.Options{
				Descriptor: desc,
				RPCURL:     rpcFor(cfg, opts),
				Detect:     func() (wallet.Provider, error) { return wallet.Detect(walletCfg) },
				Logger:     logger,
			})
			defer sessions.Disconnect()

			inv := invoker.New(sessions, invoker.NewSlot(cfg.DiscardStale), logger)
			out := cmd.OutOrStdout()

			res := inv.Connect(cmd.Context(), inv.Begin(), authorize(sessions, opts))
			if !res.OK() {
				fmt.Fprintln(out, res.Message)
				return res.Err
			}

			res = inv.Invoke(cmd.Context(), inv.Begin(), invoker.Request{Operation: op.Name, Amounts: args})
			fmt.Fprintln(out, res.Message)
			if res.TxHash != (common.Hash{}) {
				fmt.Fprintf(out, "tx: %s\n", res.TxHash.Hex())
			}
			if !res.OK() {
				return res.Err
			}
			return nil
		},
	}
}

// newCLILogger logs to stderr at Warn, or Debug with --verbose.
func newCLILogger(w io.Writer, verbose bool) *log.Logger {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           level,
	})
}

// authorize collects the wallet authorization from flags, prompting for
// whatever is missing. A failed prompt counts as a rejection.
func authorize(sessions *session.Manager, opts *cliOptions) wallet.Authorization {
	provider, err := sessions.Detect()
	if err != nil {
		// Connect reports the missing wallet
		return wallet.Authorization{}
	}

	auth := wallet.Authorization{Approved: opts.yes, Passphrase: opts.passphrase}

	if provider.Kind() == wallet.KindKeystore && auth.Passphrase == "" {
		err := huh.NewInput().
			Title("Passphrase for " + helpers.ShortenAddr(provider.Account().Hex())).
			EchoMode(huh.EchoModePassword).
			Value(&auth.Passphrase).
			Run()
		if err != nil {
			return wallet.Authorization{}
		}
	}

	if !auth.Approved {
		err := huh.NewConfirm().
			Title(fmt.Sprintf("¿Autorizar acceso a %s?", provider.Account().Hex())).
			Affirmative("Autorizar").
			Negative("Rechazar").
			Value(&auth.Approved).
			Run()
		if err != nil {
			return wallet.Authorization{}
		}
	}

	return auth
}
