//  Copyright (C) 2024-2026 The parity-ethereum authors.
//
//  This program is free software: you can redistribute it and/or modify
//  it under the terms of the GNU Affero General Public License as
//  published by the Free Software Foundation, either version 3 of the
//  License, or (at your option) any later version.
//
//  This program is distributed in the hope that it will be useful,
//  but WITHOUT ANY WARRANTY; without even the implied warranty of
//  MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//  GNU Affero General Public License for more details.
//
//  You should have received a copy of the GNU Affero General Public License
//  along with this program.  If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/defiweb/go-eth/rpc"
	"github.com/defiweb/go-eth/rpc/transport"
	"github.com/defiweb/go-eth/txmodifier"
	"github.com/defiweb/go-eth/types"
	"github.com/defiweb/go-eth/wallet"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/alesanro/parity-ethereum/contracts"
	"github.com/alesanro/parity-ethereum/core"
)

const (
	defaultGasLimitMultiplier = 1.25
)

type options struct {
	SecretKey      string
	Key            string
	Password       string
	PasswordFile   string
	RpcURL         string
	ChainID        uint64
	MetricsAddr    string
	ConfirmTimeout time.Duration
	Verbose        bool

	// deploy
	Manifest        string
	SkipDigestCheck bool

	// link
	Contract string
	Links    []string

	// info
	Wallet           string
	Owner            string
	DepositsLookback uint64
}

// Checks and return private key based on given options
func (o *options) getKey() (*wallet.PrivateKey, error) {
	if o.SecretKey != "" {
		return wallet.NewKeyFromBytes(types.MustBytesFromHex(o.SecretKey)), nil
	}

	if o.Key == "" {
		return nil, fmt.Errorf("please provide key using `--keystore` flag")
	}

	stat, err := os.Stat(o.Key)
	if err != nil {
		return nil, fmt.Errorf("failed to open keystore file: %v", err)
	}
	if stat.IsDir() {
		return nil, fmt.Errorf("keystore file is a directory")
	}

	if o.Password == "" && o.PasswordFile == "" {
		return nil, fmt.Errorf("please provide password using `--password` or `--password-file` flag")
	}
	password := o.Password
	if password == "" {
		p, err := os.ReadFile(o.PasswordFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read password file: %v", err)
		}
		password = strings.TrimSpace(string(p))
	}
	return wallet.NewKeyFromJSON(o.Key, password)
}

func (o *options) transport() (transport.Transport, error) {
	if o.RpcURL == "" {
		return nil, fmt.Errorf("please provide node URL using `--rpc-url` flag")
	}
	return transport.NewHTTP(transport.HTTPOptions{URL: o.RpcURL})
}

// readClient builds an RPC client for read-only calls.
func (o *options) readClient() (*rpc.Client, error) {
	t, err := o.transport()
	if err != nil {
		return nil, err
	}
	return rpc.NewClient(rpc.WithTransport(t))
}

// deployClient builds the RPC client that sends creation transactions:
// signing with a local key when one is given, otherwise through an
// account the node manages.
func (o *options) deployClient(ctx context.Context, t transport.Transport) (*rpc.Client, error) {
	if o.SecretKey != "" || o.Key != "" {
		key, err := o.getKey()
		if err != nil {
			return nil, err
		}
		clientOptions := []rpc.ClientOptions{
			rpc.WithTransport(t),
			rpc.WithKeys(key),
			rpc.WithDefaultAddress(key.Address()),
			rpc.WithTXModifiers(
				txmodifier.NewNonceProvider(false),
				txmodifier.NewGasLimitEstimator(defaultGasLimitMultiplier, 0, 0),
				txmodifier.NewLegacyGasFeeEstimator(1, nil, nil),
			),
		}
		if o.ChainID != 0 {
			clientOptions = append(clientOptions, rpc.WithChainID(o.ChainID))
		}
		return rpc.NewClient(clientOptions...)
	}

	// Without a local key sending goes through eth_sendTransaction, so
	// the node must manage an unlocked account.
	nodeClient, err := rpc.NewClient(rpc.WithTransport(t))
	if err != nil {
		return nil, err
	}
	accounts, err := nodeClient.Accounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list node accounts: %v", err)
	}
	if len(accounts) == 0 {
		return nil, fmt.Errorf("no local key given and the node manages no accounts")
	}
	logger.Infof("Sending from node account %v", accounts[0])
	return rpc.NewClient(
		rpc.WithTransport(t),
		rpc.WithDefaultAddress(accounts[0]),
	)
}

func cmdContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return ctx
}

func newDeployCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy the multisig wallet described by a manifest",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := cmdContext(cmd)

			manifest, err := core.LoadManifest(opts.Manifest)
			if err != nil {
				logger.Fatalf("Failed to load manifest: %v", err)
			}

			t, err := opts.transport()
			if err != nil {
				logger.Fatalf("Failed to create transport: %v", err)
			}
			client, err := opts.deployClient(ctx, t)
			if err != nil {
				logger.Fatalf("Failed to create RPC client: %v", err)
			}

			deployer := core.NewDeployer(client, core.NewWeb3(t), opts.ConfirmTimeout, !opts.SkipDigestCheck)
			bundle, err := deployer.DeployBundle(ctx, manifest)
			if err != nil {
				logger.Fatalf("Failed to deploy wallet: %v", err)
			}

			if bundle.Library != nil {
				fmt.Printf("WalletLibrary: %v (tx %v)\n", bundle.Library.Address, bundle.Library.TxHash.String())
			}
			fmt.Printf("Wallet:        %v (tx %v)\n", bundle.Wallet.Address, bundle.Wallet.TxHash.String())
		},
	}

	cmd.Flags().StringVar(&opts.Manifest, "manifest", "wallet.yaml", "Path to the wallet manifest YAML file")
	cmd.Flags().BoolVar(&opts.SkipDigestCheck, "skip-digest-check", false, "Do not cross-check the linked bytecode digest with the node before sending")
	return cmd
}

func newLinkCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "link",
		Short: "Link a bundled bytecode template against library addresses, offline",
		Run: func(cmd *cobra.Command, args []string) {
			tmpl, ok := contracts.ByName(opts.Contract)
			if !ok {
				logger.Fatalf("Unknown contract %q, bundled templates: Wallet, WalletLibrary", opts.Contract)
			}

			links := contracts.LinkMap{}
			for _, pair := range opts.Links {
				symbol, addr, found := strings.Cut(pair, "=")
				if !found {
					logger.Fatalf("Invalid --link %q, expected Symbol=0xaddress", pair)
				}
				links[symbol] = addr
			}

			linked, err := tmpl.Link(links)
			if err != nil {
				logger.Fatalf("Failed to link %s: %v", tmpl.Name, err)
			}
			fmt.Println("0x" + linked)
		},
	}

	cmd.Flags().StringVar(&opts.Contract, "contract", "Wallet", "Template name: Wallet or WalletLibrary")
	cmd.Flags().StringArrayVar(&opts.Links, "link", nil, "Library resolution in the form `WalletLibrary=0x...`, repeatable")
	return cmd
}

func newHashCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "hash HEX",
		Short: "Keccak-256 of the given hex data, computed by the node",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			t, err := opts.transport()
			if err != nil {
				logger.Fatalf("Failed to create transport: %v", err)
			}

			digest, err := core.NewWeb3(t).Sha3(cmdContext(cmd), args[0])
			if err != nil {
				logger.Fatalf("Failed to hash data: %v", err)
			}
			fmt.Println(digest.String())
		},
	}
}

func newInfoCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Inspect a deployed wallet",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := cmdContext(cmd)

			address, err := types.AddressFromHex(opts.Wallet)
			if err != nil {
				logger.Fatalf("Failed to parse wallet address %s with error: %v", opts.Wallet, err)
			}
			client, err := opts.readClient()
			if err != nil {
				logger.Fatalf("Failed to create RPC client: %v", err)
			}
			reader := core.NewWalletReader(client, address)

			info, err := reader.Info(ctx)
			if err != nil {
				logger.Fatalf("Failed to read wallet settings: %v", err)
			}
			owners, err := reader.Owners(ctx)
			if err != nil {
				logger.Fatalf("Failed to list wallet owners: %v", err)
			}

			fmt.Printf("Wallet %v\n", address)
			fmt.Printf("  required:  %v of %v owners\n", info.Required, info.NumOwners)
			fmt.Printf("  day limit: %v wei\n", info.DailyLimit)
			for _, owner := range owners {
				fmt.Printf("  owner:     %v\n", owner)
			}

			if opts.Owner != "" {
				candidate, err := types.AddressFromHex(opts.Owner)
				if err != nil {
					logger.Fatalf("Failed to parse owner address %s with error: %v", opts.Owner, err)
				}
				isOwner, err := reader.IsOwner(ctx, candidate)
				if err != nil {
					logger.Fatalf("Failed to check ownership: %v", err)
				}
				fmt.Printf("  %v is owner: %v\n", candidate, isOwner)
			}

			if opts.DepositsLookback > 0 {
				deposits, err := reader.RecentDeposits(ctx, opts.DepositsLookback)
				if err != nil {
					logger.Fatalf("Failed to list deposits: %v", err)
				}
				for _, deposit := range deposits {
					fmt.Printf("  deposit:   %v wei from %v (block %v)\n", deposit.Value, deposit.From, deposit.BlockNumber)
				}
			}
		},
	}

	cmd.Flags().StringVar(&opts.Wallet, "wallet", "", "Deployed wallet address")
	cmd.Flags().StringVar(&opts.Owner, "owner", "", "Also check whether this address is an owner")
	cmd.Flags().Uint64Var(&opts.DepositsLookback, "deposits-lookback", 0, "Also list deposits from this many trailing blocks")
	_ = cmd.MarkFlagRequired("wallet")
	return cmd
}

func newVersionCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Report the node's client version and network",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := cmdContext(cmd)

			t, err := opts.transport()
			if err != nil {
				logger.Fatalf("Failed to create transport: %v", err)
			}

			version, err := core.NewWeb3(t).ClientVersion(ctx)
			if err != nil {
				logger.Fatalf("Failed to get client version: %v", err)
			}

			net := core.NewNet(t)
			network, err := net.Version(ctx)
			if err != nil {
				logger.Fatalf("Failed to get network id: %v", err)
			}
			listening, err := net.Listening(ctx)
			if err != nil {
				logger.Fatalf("Failed to get listening state: %v", err)
			}
			peers, err := net.PeerCount(ctx)
			if err != nil {
				logger.Fatalf("Failed to get peer count: %v", err)
			}

			fmt.Printf("Client:  %s\n", version)
			fmt.Printf("Network: %s\n", network)
			fmt.Printf("Peers:   %v (listening: %v)\n", peers, listening)
		},
	}
}

func main() {
	var opts options
	cmd := &cobra.Command{
		Use:   "walletdeploy",
		Short: "Link and deploy the multisig wallet contracts",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.Verbose {
				logger.SetLevel(logger.DebugLevel)
			}
			if opts.MetricsAddr != "" {
				prometheus.MustRegister(core.ErrorsCounter, core.DeploymentsCounter, core.LinkedBytesGauge)
				go func() {
					http.Handle("/metrics", promhttp.Handler())
					if err := http.ListenAndServe(opts.MetricsAddr, nil); err != nil {
						logger.Errorf("Failed to serve metrics: %v", err)
					}
				}()
			}
		},
	}

	cmd.PersistentFlags().StringVar(&opts.SecretKey, "secret-key", "", "Private key in format `0x******` or `*******`. If provided, no need to use --keystore")
	cmd.PersistentFlags().StringVar(&opts.Key, "keystore", "", "Keystore file (NOT FOLDER), path to key .json file. If provided, no need to use --secret-key")
	cmd.PersistentFlags().StringVar(&opts.Password, "password", "", "Key raw password as text")
	cmd.PersistentFlags().StringVar(&opts.PasswordFile, "password-file", "", "Path to key password file")
	cmd.PersistentFlags().StringVar(&opts.RpcURL, "rpc-url", "", "Node HTTP RPC_URL, normally starts with https://****")
	cmd.PersistentFlags().Uint64Var(&opts.ChainID, "chain-id", 0, "If no chain_id provided binary will try to get chain_id from given RPC")
	cmd.PersistentFlags().StringVar(&opts.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address, e.g. :9090")
	cmd.PersistentFlags().DurationVar(&opts.ConfirmTimeout, "confirm-timeout", core.DefaultConfirmTimeout, "How long to wait for a creation transaction to be mined")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(
		newDeployCmd(&opts),
		newLinkCmd(&opts),
		newHashCmd(&opts),
		newInfoCmd(&opts),
		newVersionCmd(&opts),
	)

	_ = cmd.Execute()
}
