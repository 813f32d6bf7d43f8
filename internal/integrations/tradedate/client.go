package tradedate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// Client calls the exchange calendar API for upcoming trading days.
type Client struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
}

func New(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = "http://localhost:9000"
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpc: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type respBody struct {
	TradeDate []int `json:"tradeDate"`
}

// GetTradeDates returns up to count trading days from tradeDate on, as yyyyMMdd numbers.
func (c *Client) GetTradeDates(ctx context.Context, tradeDate time.Time, count int) ([]int, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, errors.Wrap(err, "parse base url")
	}
	u.Path = "/v1/trade-dates"
	q := u.Query()
	q.Set("date", tradeDate.Format("20060102"))
	q.Set("count", strconv.Itoa(count))
	if c.apiKey != "" {
		q.Set("apiKey", c.apiKey)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "new request")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "do request")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("trade date api rate limit (429)")
	}
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("trade date api http %d", resp.StatusCode)
	}

	var rb respBody
	if err := json.NewDecoder(resp.Body).Decode(&rb); err != nil {
		return nil, errors.Wrap(err, "decode")
	}
	return rb.TradeDate, nil
}
