package registry

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"time"

	bCtx "github.com/niftyx/goapi/base/ctx"
	"github.com/niftyx/goapi/base/log"
	"github.com/niftyx/goapi/domain"
	"github.com/niftyx/goapi/domain/registry"
)

const (
	bearerKey = "client-id"
)

type client struct {
	client   http.Client
	timeout  time.Duration
	endpoint string
	apikey   string
}

func NewClient(cfg *ClientCfg) registry.Client {
	return &client{
		client:   cfg.HttpClient,
		timeout:  cfg.Timeout,
		endpoint: cfg.Endpoint,
		apikey:   cfg.Apikey,
	}
}

type ownerResp struct {
	Owner domain.Address `json:"owner"`
}

func (c *client) OwnerOf(ctx bCtx.Ctx, collection domain.Address, tokenId domain.TokenId) (domain.Address, error) {
	url := fmt.Sprintf("%s/assets/%s/%s/owner", c.endpoint, collection.ToLowerStr(), tokenId)

	body, err := c.get(ctx, url)
	if err == errStatusNotFound {
		return domain.EmptyAddress, domain.ErrUnknownAsset
	} else if err != nil {
		return domain.EmptyAddress, err
	}

	res := ownerResp{}
	if err := json.Unmarshal(body, &res); err != nil {
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("unmarshal owner resp failed")
		return domain.EmptyAddress, err
	}
	return res.Owner.ToLower(), nil
}

type approvalResp struct {
	Approved bool `json:"approved"`
}

func (c *client) IsTransferApproved(ctx bCtx.Ctx, collection, owner, operator domain.Address) (bool, error) {
	url := fmt.Sprintf("%s/collections/%s/approvals?owner=%s&operator=%s", c.endpoint, collection.ToLowerStr(), owner.ToLowerStr(), operator.ToLowerStr())

	body, err := c.get(ctx, url)
	if err != nil {
		return false, err
	}

	res := approvalResp{}
	if err := json.Unmarshal(body, &res); err != nil {
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("unmarshal approval resp failed")
		return false, err
	}
	return res.Approved, nil
}

type transferPayload struct {
	From domain.Address `json:"from"`
	To   domain.Address `json:"to"`
}

func (c *client) Transfer(ctx bCtx.Ctx, collection domain.Address, tokenId domain.TokenId, from, to domain.Address) error {
	url := fmt.Sprintf("%s/assets/%s/%s/transfer", c.endpoint, collection.ToLowerStr(), tokenId)

	payload, err := json.Marshal(transferPayload{From: from.ToLower(), To: to.ToLower()})
	if err != nil {
		return err
	}

	if _, err := c.post(ctx, url, payload); err != nil {
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("transfer failed")
		return domain.ErrTransferFailed
	}
	return nil
}

func (c *client) RoyaltyInfo(ctx bCtx.Ctx, collection domain.Address, tokenId domain.TokenId) (*registry.RoyaltyInfo, error) {
	url := fmt.Sprintf("%s/assets/%s/%s/royalty", c.endpoint, collection.ToLowerStr(), tokenId)

	body, err := c.get(ctx, url)
	if err == errStatusNotFound {
		return nil, domain.ErrUnknownAsset
	} else if err != nil {
		return nil, err
	}

	res := registry.RoyaltyInfo{}
	if err := json.Unmarshal(body, &res); err != nil {
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("unmarshal royalty resp failed")
		return nil, err
	}
	res.Creator = res.Creator.ToLower()
	return &res, nil
}

var errStatusNotFound = fmt.Errorf("http.status == 404")

func (c *client) get(ctx bCtx.Ctx, url string) ([]byte, error) {
	return c.do(ctx, "GET", url, nil)
}

func (c *client) post(ctx bCtx.Ctx, url string, payload []byte) ([]byte, error) {
	return c.do(ctx, "POST", url, payload)
}

func (c *client) do(ctx bCtx.Ctx, method, url string, payload []byte) ([]byte, error) {
	ctx, cancel := bCtx.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader *bytes.Reader
	if payload == nil {
		reader = bytes.NewReader([]byte{})
	} else {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("NewRequestWithContext failed")
		return nil, err
	}
	req.Header.Set(bearerKey, c.apikey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("client.Do failed")
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, errStatusNotFound
	}
	if resp.StatusCode != http.StatusOK {
		ctx.WithFields(log.Fields{
			"url":        url,
			"statusCode": resp.StatusCode,
		}).Error("resp.StatusCode != 200")
		return nil, ErrStatusCodeNotOk
	}

	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("failed to read body")
		return nil, err
	}
	return body, nil
}
