package payment

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	bCtx "github.com/niftyx/goapi/base/ctx"
	"github.com/niftyx/goapi/base/log"
	"github.com/niftyx/goapi/base/metrics"
	"github.com/niftyx/goapi/domain"
	"github.com/niftyx/goapi/domain/payment"
)

const (
	bearerKey = "client-id"
)

type client struct {
	client   http.Client
	timeout  time.Duration
	endpoint string
	apikey   string
	met      metrics.Service
}

func NewClient(cfg *ClientCfg) payment.Client {
	return &client{
		client:   cfg.HttpClient,
		timeout:  cfg.Timeout,
		endpoint: cfg.Endpoint,
		apikey:   cfg.Apikey,
		met:      metrics.New("payment"),
	}
}

type payPayload struct {
	To     domain.Address `json:"to"`
	Amount uint64         `json:"amount"`
}

func (c *client) Pay(ctx bCtx.Ctx, to domain.Address, amount uint64) error {
	defer c.met.BumpTime("pay.time").End()

	url := fmt.Sprintf("%s/payouts", c.endpoint)

	payload, err := json.Marshal(payPayload{To: to.ToLower(), Amount: amount})
	if err != nil {
		return err
	}

	ctx, cancel := bCtx.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(payload))
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("NewRequestWithContext failed")
		return err
	}
	req.Header.Set(bearerKey, c.apikey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.met.BumpSum("pay.err", 1)
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("client.Do failed")
		return domain.ErrPaymentFailed
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.met.BumpSum("pay.err", 1, "statusCode", fmt.Sprintf("%d", resp.StatusCode))
		ctx.WithFields(log.Fields{
			"url":        url,
			"statusCode": resp.StatusCode,
		}).Error("resp.StatusCode != 200")
		return domain.ErrPaymentFailed
	}
	return nil
}
