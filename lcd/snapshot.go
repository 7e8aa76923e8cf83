package lcd

import (
	"context"
	"sort"
	"sync"

	"github.com/cosmos/cosmos-sdk/types"
	"github.com/pkg/errors"
	log "github.com/xlab/suplog"
)

type Source int

const (
	SourceAccount Source = iota
	SourceBalances
	SourceAllowances
)

func (s Source) String() string {
	switch s {
	case SourceAccount:
		return "account"
	case SourceBalances:
		return "balances"
	case SourceAllowances:
		return "allowances"
	default:
		return "unknown"
	}
}

// Snapshot is everything Collect could find about an address. A source that
// failed has its error in Errors and its field left zero.
type Snapshot struct {
	Address    string              `json:"address"`
	Account    *AccountResponse    `json:"account,omitempty"`
	Balances   types.Coins         `json:"balances"`
	Allowances []AllowanceResponse `json:"allowances"`
	Errors     map[Source]error    `json:"-"`
}

// Failed lists the sources that returned an error, in Source order.
func (s *Snapshot) Failed() []Source {
	failed := make([]Source, 0, len(s.Errors))
	for source := range s.Errors {
		failed = append(failed, source)
	}
	sort.Slice(failed, func(i, j int) bool { return failed[i] < failed[j] })
	return failed
}

type collectFunc func(ctx context.Context, origin, address string, s *Snapshot, mtx *sync.Mutex) error

// Collect queries every source for address concurrently, one request each.
func Collect(ctx context.Context, origin, address string, opts ...Option) (*Snapshot, error) {
	if err := ValidateAddress(address); err != nil {
		return nil, err
	}

	account := Account(opts...)
	balances := Balances(opts...)
	allowances := Allowances(opts...)

	sources := map[Source]collectFunc{
		SourceAccount: func(ctx context.Context, origin, address string, s *Snapshot, mtx *sync.Mutex) error {
			res, err := account(ctx, origin, address)
			if err != nil {
				return err
			}
			mtx.Lock()
			s.Account = &res
			mtx.Unlock()
			return nil
		},
		SourceBalances: func(ctx context.Context, origin, address string, s *Snapshot, mtx *sync.Mutex) error {
			res, err := balances(ctx, origin, BalancesArgs{Address: address})
			if err != nil {
				return err
			}
			mtx.Lock()
			s.Balances = res
			mtx.Unlock()
			return nil
		},
		SourceAllowances: func(ctx context.Context, origin, address string, s *Snapshot, mtx *sync.Mutex) error {
			res, err := allowances(ctx, origin, address)
			if err != nil {
				return err
			}
			mtx.Lock()
			s.Allowances = res
			mtx.Unlock()
			return nil
		},
	}

	var (
		wg     = sync.WaitGroup{}
		mtx    = sync.Mutex{}
		result = &Snapshot{
			Address: address,
			Errors:  make(map[Source]error),
		}
	)
	for source, fn := range sources {
		wg.Add(1)
		go func(source Source, fn collectFunc) {
			defer wg.Done()

			if err := fn(ctx, origin, address, result, &mtx); err != nil {
				log.WithFields(log.Fields{
					"source":  source.String(),
					"address": address,
				}).Warning(err.Error())

				mtx.Lock()
				result.Errors[source] = err
				mtx.Unlock()
			}
		}(source, fn)
	}

	wg.Wait()

	if len(result.Errors) == len(sources) {
		return result, errors.Wrapf(result.Errors[SourceAccount], "all %d sources failed", len(sources))
	}

	return result, nil
}
