package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/vitos/crypto_market_radar/internal/domain"
)

const CoinGeckoBaseURL = "https://api.coingecko.com/api/v3"

// CoinGeckoClient fetches the market universe, the trending feed and the
// global dominance figures. An API key is optional and only raises rate
// limits.
type CoinGeckoClient struct {
	baseURL    string
	apiKey     string
	vsCurrency string
	perPage    int
	client     *http.Client
}

func NewCoinGeckoClient(baseURL, apiKey, vsCurrency string, perPage int, timeout time.Duration) *CoinGeckoClient {
	if baseURL == "" {
		baseURL = CoinGeckoBaseURL
	}
	return &CoinGeckoClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		vsCurrency: vsCurrency,
		perPage:    perPage,
		client:     &http.Client{Timeout: timeout},
	}
}

func (c *CoinGeckoClient) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-cg-demo-api-key", c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API error %d: %s", resp.StatusCode, string(body))
	}
	return json.Unmarshal(body, out)
}

// GetMarkets returns the top assets by market cap in the configured
// reference currency, with 24h change and volume.
func (c *CoinGeckoClient) GetMarkets(ctx context.Context) ([]domain.CoinRecord, error) {
	params := url.Values{}
	params.Set("vs_currency", c.vsCurrency)
	params.Set("order", "market_cap_desc")
	params.Set("per_page", strconv.Itoa(c.perPage))
	params.Set("page", "1")
	params.Set("sparkline", "false")
	params.Set("price_change_percentage", "24h")

	var markets []domain.CoinRecord
	if err := c.getJSON(ctx, "/coins/markets?"+params.Encode(), &markets); err != nil {
		return nil, err
	}
	return markets, nil
}

// GetTrending returns the currently trending assets in the feed's own
// order.
func (c *CoinGeckoClient) GetTrending(ctx context.Context) ([]domain.TrendingItem, error) {
	var result struct {
		Coins []struct {
			Item domain.TrendingItem `json:"item"`
		} `json:"coins"`
	}
	if err := c.getJSON(ctx, "/search/trending", &result); err != nil {
		return nil, err
	}
	items := make([]domain.TrendingItem, 0, len(result.Coins))
	for _, row := range result.Coins {
		items = append(items, row.Item)
	}
	return items, nil
}

// GetBTCDominance returns bitcoin's share of total market cap in percent.
func (c *CoinGeckoClient) GetBTCDominance(ctx context.Context) (float64, error) {
	var result struct {
		Data struct {
			MarketCapPercentage map[string]float64 `json:"market_cap_percentage"`
		} `json:"data"`
	}
	if err := c.getJSON(ctx, "/global", &result); err != nil {
		return 0, err
	}
	dom, ok := result.Data.MarketCapPercentage["btc"]
	if !ok {
		return 0, fmt.Errorf("btc dominance missing from global data")
	}
	return dom, nil
}
