package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/vitos/crypto_market_radar/internal/domain"
)

const FearGreedBaseURL = "https://api.alternative.me"

// FearGreedClient fetches the 0-100 fear/greed index. Callers fall back to
// the neutral midpoint when the feed is unreachable.
type FearGreedClient struct {
	baseURL string
	client  *http.Client
}

func NewFearGreedClient(baseURL string, timeout time.Duration) *FearGreedClient {
	if baseURL == "" {
		baseURL = FearGreedBaseURL
	}
	return &FearGreedClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *FearGreedClient) GetFearGreed(ctx context.Context) (domain.SentimentReading, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/fng/", nil)
	if err != nil {
		return domain.SentimentReading{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return domain.SentimentReading{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.SentimentReading{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return domain.SentimentReading{}, fmt.Errorf("API error %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Data []struct {
			Value          string `json:"value"`
			Classification string `json:"value_classification"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return domain.SentimentReading{}, err
	}
	if len(result.Data) == 0 {
		return domain.SentimentReading{}, fmt.Errorf("empty fear/greed response")
	}

	value, err := strconv.Atoi(result.Data[0].Value)
	if err != nil {
		return domain.SentimentReading{}, fmt.Errorf("bad fear/greed value %q: %w", result.Data[0].Value, err)
	}
	return domain.SentimentReading{FGI: value, Label: result.Data[0].Classification}, nil
}
