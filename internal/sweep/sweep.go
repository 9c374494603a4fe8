// Package sweep converts every balance of a wallet worth more than a
// threshold into a single target denomination.
package sweep

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	klog "github.com/Klingon-tech/terrawallet/internal/log"
	"github.com/Klingon-tech/terrawallet/pkg/msg"
	"github.com/Klingon-tech/terrawallet/pkg/types"
)

// ErrNothingToSweep is returned when no balance clears the threshold.
var ErrNothingToSweep = errors.New("nothing to sweep")

// DefaultConcurrency bounds simultaneous swap simulations.
const DefaultConcurrency = 8

// Market is the subset of the gateway a sweep reads from.
type Market interface {
	Balances(ctx context.Context, addr types.AccAddress) (types.Coins, error)
	Swap(ctx context.Context, offer types.Coin, askDenom string) (types.Coin, error)
}

// Quote is one balance and what it would buy in the target denom.
type Quote struct {
	Offer types.Coin
	Ask   types.Coin
}

// Plan is the outcome of evaluating a wallet.
type Plan struct {
	Trader types.AccAddress
	Target string
	Quotes []Quote
	Msgs   msg.Msgs
}

// Expected sums the simulated proceeds of every swap in the plan.
func (p Plan) Expected() types.Coin {
	total := types.ZeroInt()
	for _, q := range p.Quotes {
		total = total.Add(q.Ask.Amount)
	}
	return types.Coin{Denom: p.Target, Amount: total}
}

// Sweeper evaluates balances against the market.
type Sweeper struct {
	market      Market
	concurrency int
	logger      zerolog.Logger
}

// New creates a sweeper.
func New(m Market) *Sweeper {
	return &Sweeper{market: m, concurrency: DefaultConcurrency, logger: klog.Sweep}
}

// WithConcurrency caps the number of in-flight simulations. n <= 0 removes
// the cap.
func (s *Sweeper) WithConcurrency(n int) *Sweeper {
	s.concurrency = n
	return s
}

// Plan simulates a swap of every non-target balance of addr into target and
// keeps those whose proceeds strictly exceed threshold. If any simulation
// fails the whole plan fails.
func (s *Sweeper) Plan(ctx context.Context, addr types.AccAddress, target string, threshold types.Int) (Plan, error) {
	balances, err := s.market.Balances(ctx, addr)
	if err != nil {
		return Plan{}, fmt.Errorf("sweep %s: %w", addr, err)
	}

	offers := make([]types.Coin, 0, len(balances))
	for _, c := range balances {
		if c.Denom == target || !c.Amount.IsPositive() {
			continue
		}
		offers = append(offers, c)
	}

	asks := make([]types.Coin, len(offers))
	g, gctx := errgroup.WithContext(ctx)
	if s.concurrency > 0 {
		g.SetLimit(s.concurrency)
	}
	for i, offer := range offers {
		g.Go(func() error {
			ask, err := s.market.Swap(gctx, offer, target)
			if err != nil {
				return fmt.Errorf("simulate %s to %s: %w", offer, target, err)
			}
			asks[i] = ask
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Plan{}, err
	}

	plan := Plan{Trader: addr, Target: target}
	for i, offer := range offers {
		if !asks[i].Amount.GT(threshold) {
			s.logger.Debug().Str("offer", offer.String()).Str("ask", asks[i].String()).Msg("Below threshold")
			continue
		}
		plan.Quotes = append(plan.Quotes, Quote{Offer: offer, Ask: asks[i]})
		plan.Msgs = append(plan.Msgs, msg.Swap{Trader: addr, OfferCoin: offer, AskDenom: target})
	}
	if len(plan.Msgs) == 0 {
		return Plan{}, ErrNothingToSweep
	}

	s.logger.Info().
		Str("trader", addr.String()).
		Int("swaps", len(plan.Msgs)).
		Str("expected", plan.Expected().String()).
		Msg("Sweep planned")
	return plan, nil
}
