package main

import (
	"context"
	"net/http"

	"github.com/cosmos/cosmos-sdk/types"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	log "github.com/xlab/suplog"

	"github.com/qj0r9j0vc2/cosmos-lcd-query/lcd"
)

type Message struct {
	Error     string      `json:"error"`
	IsSuccess bool        `json:"isSuccess"`
	Content   interface{} `json:"content"`
}

type Balance struct {
	Address  string      `json:"address"`
	Balances types.Coins `json:"balances"`
}

type server struct {
	cfg       *Config
	account   lcd.Dispatcher[string, lcd.AccountResponse]
	allowance lcd.Dispatcher[lcd.AllowanceArgs, lcd.AllowanceResponse]
	balances  lcd.Dispatcher[lcd.BalancesArgs, types.Coins]
	collect   func(ctx context.Context, origin, address string) (*lcd.Snapshot, error)
}

func newServer(cfg *Config, opts ...lcd.Option) *server {
	return &server{
		cfg:       cfg,
		account:   lcd.Account(opts...),
		allowance: lcd.Allowance(opts...),
		balances:  lcd.Balances(opts...),
		collect: func(ctx context.Context, origin, address string) (*lcd.Snapshot, error) {
			return lcd.Collect(ctx, origin, address, opts...)
		},
	}
}

func (s *server) router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.GET("/chains", s.getChains)
	router.GET("/accounts/:chain/:address", s.getAccount)
	router.GET("/allowances/:chain/:granter/:grantee", s.getAllowance)
	router.GET("/balances/:chain/:address", s.getBalances)
	router.GET("/snapshot/:chain/:address", s.getSnapshot)
	return router
}

// withChain resolves the chain param and derives a context bounded by the
// chain's timeout.
func (s *server) withChain(c *gin.Context) (string, context.Context, context.CancelFunc, bool) {
	name := c.Param("chain")
	chain, ok := s.cfg.chain(name)
	if !ok {
		c.IndentedJSON(http.StatusNotFound, Message{
			"unknown chain " + name,
			false,
			struct{}{},
		})
		return "", nil, nil, false
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), chain.timeout())
	return chain.LCDURL, ctx, cancel, true
}

func (s *server) getChains(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, Message{"", true, s.cfg.getChains()})
}

func (s *server) getAccount(c *gin.Context) {
	origin, ctx, cancel, ok := s.withChain(c)
	if !ok {
		return
	}
	defer cancel()

	account, err := s.account(ctx, origin, c.Param("address"))
	if err != nil {
		respondError(c, errors.Wrap(err, "failed to query account"))
		return
	}
	c.IndentedJSON(http.StatusOK, Message{"", true, account})
}

func (s *server) getAllowance(c *gin.Context) {
	origin, ctx, cancel, ok := s.withChain(c)
	if !ok {
		return
	}
	defer cancel()

	allowance, err := s.allowance(ctx, origin, lcd.AllowanceArgs{
		Granter: c.Param("granter"),
		Grantee: c.Param("grantee"),
	})
	if err != nil {
		respondError(c, errors.Wrap(err, "failed to query allowance"))
		return
	}
	c.IndentedJSON(http.StatusOK, Message{"", true, allowance})
}

func (s *server) getBalances(c *gin.Context) {
	origin, ctx, cancel, ok := s.withChain(c)
	if !ok {
		return
	}
	defer cancel()

	address := c.Param("address")
	coins, err := s.balances(ctx, origin, lcd.BalancesArgs{
		Address: address,
		Key:     c.Query("key"),
	})
	if err != nil {
		respondError(c, errors.Wrap(err, "failed to query balances"))
		return
	}
	c.IndentedJSON(http.StatusOK, Message{"", true, Balance{
		Address:  address,
		Balances: coins,
	}})
}

func (s *server) getSnapshot(c *gin.Context) {
	origin, ctx, cancel, ok := s.withChain(c)
	if !ok {
		return
	}
	defer cancel()

	snapshot, err := s.collect(ctx, origin, c.Param("address"))
	if err != nil {
		respondError(c, errors.Wrap(err, "failed to collect snapshot"))
		return
	}

	var msg string
	for _, source := range snapshot.Failed() {
		if msg != "" {
			msg += "; "
		}
		msg += source.String() + ": " + snapshot.Errors[source].Error()
	}
	c.IndentedJSON(http.StatusOK, Message{msg, msg == "", snapshot})
}

// respondError forwards the upstream status for LCD errors, 502 for bodies
// that are not JSON, and 500 for anything else.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	if res, _, body, ok := lcd.Details(err); ok {
		switch {
		case body == nil:
			status = http.StatusBadGateway
		case res != nil && res.StatusCode >= 400:
			status = res.StatusCode
		default:
			status = http.StatusBadGateway
		}
	}

	log.WithFields(log.Fields{
		"path":   c.Request.URL.Path,
		"status": status,
	}).Error(err.Error())

	c.IndentedJSON(status, Message{
		err.Error(),
		false,
		struct{}{},
	})
}
