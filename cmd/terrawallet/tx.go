package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Klingon-tech/terrawallet/internal/broadcast"
	"github.com/Klingon-tech/terrawallet/internal/sweep"
	"github.com/Klingon-tech/terrawallet/pkg/msg"
	"github.com/Klingon-tech/terrawallet/pkg/tx"
	"github.com/Klingon-tech/terrawallet/pkg/types"
)

// resolveAddress accepts a bech32 account address or the name of a key.
func (a *app) resolveAddress(s string) (types.AccAddress, error) {
	if addr, err := types.ParseAccAddress(s); err == nil {
		return addr, nil
	}
	k, err := a.loadKey(s)
	if err != nil {
		return "", err
	}
	defer k.Zero()
	return k.AccAddress(), nil
}

func newBalanceCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "balance <address|key>",
		Short: "Show an account's balances",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := a.resolveAddress(args[0])
			if err != nil {
				return err
			}
			coins, err := a.gw.Balances(cmd.Context(), addr)
			if err != nil {
				return err
			}
			return printJSON(map[string]any{"address": addr, "coins": coins})
		},
	}
}

// txFlags are the fee and memo options shared by transaction commands.
type txFlags struct {
	memo string
	fees string
	gas  uint64
}

func (f *txFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.memo, "memo", "", "transaction memo")
	cmd.Flags().StringVar(&f.fees, "fees", "", "fixed fee, e.g. 3000uluna (estimated when empty)")
	cmd.Flags().Uint64Var(&f.gas, "gas", 200000, "gas limit when --fees is set")
}

func (f *txFlags) request(msgs msg.Msgs) (broadcast.Request, error) {
	req := broadcast.Request{Msgs: msgs, Memo: f.memo}
	if f.fees != "" {
		amount, err := types.ParseCoins(f.fees)
		if err != nil {
			return broadcast.Request{}, fmt.Errorf("--fees: %w", err)
		}
		fee := tx.NewStdFee(f.gas, amount)
		req.Fee = &fee
	}
	return req, nil
}

func (a *app) submit(ctx context.Context, keyName string, req broadcast.Request) error {
	k, err := a.loadKey(keyName)
	if err != nil {
		return err
	}
	defer k.Zero()

	b, err := a.broadcaster()
	if err != nil {
		return err
	}
	res, err := b.Send(ctx, k, req)
	if res.TxHash != "" {
		fmt.Printf("txhash: %s (%s)\n", res.TxHash, res.State)
	}
	if err != nil {
		return err
	}
	return printJSON(res.Info)
}

func newSendCmd(a *app) *cobra.Command {
	var f txFlags
	cmd := &cobra.Command{
		Use:   "send <from-key> <to-address> <coins>",
		Short: "Send coins, e.g. send alice terra1... 1000000uluna",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			to, err := types.ParseAccAddress(args[1])
			if err != nil {
				return err
			}
			amount, err := types.ParseCoins(args[2])
			if err != nil {
				return err
			}
			from, err := a.resolveAddress(args[0])
			if err != nil {
				return err
			}
			req, err := f.request(msg.Msgs{msg.NewSend(from, to, amount...)})
			if err != nil {
				return err
			}
			return a.submit(cmd.Context(), args[0], req)
		},
	}
	f.register(cmd)
	return cmd
}

func newSwapAllCmd(a *app) *cobra.Command {
	var (
		f         txFlags
		target    string
		threshold string
		dryRun    bool
	)
	cmd := &cobra.Command{
		Use:   "swap-all <key>",
		Short: "Swap every balance worth more than a threshold into one denom",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			floor, err := types.ParseInt(threshold)
			if err != nil {
				return fmt.Errorf("--threshold: %w", err)
			}
			addr, err := a.resolveAddress(args[0])
			if err != nil {
				return err
			}
			plan, err := sweep.New(a.gw).Plan(cmd.Context(), addr, target, floor)
			if err != nil {
				return err
			}
			for _, q := range plan.Quotes {
				fmt.Printf("%s -> %s\n", q.Offer, q.Ask)
			}
			fmt.Printf("expected: %s\n", plan.Expected())
			if dryRun {
				return nil
			}
			req, err := f.request(plan.Msgs)
			if err != nil {
				return err
			}
			return a.submit(cmd.Context(), args[0], req)
		},
	}
	f.register(cmd)
	cmd.Flags().StringVar(&target, "target", "uluna", "denom to swap into")
	cmd.Flags().StringVar(&threshold, "threshold", "0", "minimum proceeds per swap, in target units")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the plan without broadcasting")
	return cmd
}

func newTxCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Transaction queries",
	}

	var (
		retries  int
		interval time.Duration
	)
	wait := &cobra.Command{
		Use:   "wait <hash>",
		Short: "Poll until a transaction is included in a block",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := types.ParseTxHash(args[0])
			if err != nil {
				return err
			}
			b, err := a.broadcaster()
			if err != nil {
				return err
			}
			if retries <= 0 {
				retries = a.cfg.Tx.PollRetries
			}
			if interval <= 0 {
				interval = a.cfg.Tx.PollInterval
			}
			info, err := b.GetAndWait(cmd.Context(), hash.String(), retries, interval)
			if err != nil {
				return err
			}
			if info.Failed() {
				return &broadcast.TxRejectedError{TxHash: info.TxHash, Code: info.Code, Codespace: info.Codespace, RawLog: info.RawLog}
			}
			return printJSON(info)
		},
	}
	wait.Flags().IntVar(&retries, "retries", 0, "maximum lookups (default from config)")
	wait.Flags().DurationVar(&interval, "interval", 0, "delay between lookups (default from config)")

	cmd.AddCommand(wait)
	return cmd
}
