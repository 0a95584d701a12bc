package marketdata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestCoinGecko_GetMarkets(t *testing.T) {
	var gotKey, gotQuery string
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/coins/markets" {
			http.NotFound(w, r)
			return
		}
		gotKey = r.Header.Get("x-cg-demo-api-key")
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id":"bitcoin","symbol":"btc","name":"Bitcoin","current_price":9500000,
			 "price_change_percentage_24h":1.5,"total_volume":9000000000,"market_cap_rank":1},
			{"id":"odd","symbol":"odd","name":"Odd Coin","current_price":10,
			 "price_change_percentage_24h":null,"total_volume":null,"market_cap_rank":null}
		]`))
	})

	client := NewCoinGeckoClient(srv.URL, "TESTKEY", "jpy", 250, 5*time.Second)
	markets, err := client.GetMarkets(context.Background())
	if err != nil {
		t.Fatalf("GetMarkets failed: %v", err)
	}

	if gotKey != "TESTKEY" {
		t.Errorf("api key header = %q, want TESTKEY", gotKey)
	}
	for _, want := range []string{"vs_currency=jpy", "per_page=250", "price_change_percentage=24h"} {
		if !strings.Contains(gotQuery, want) {
			t.Errorf("query %q missing %q", gotQuery, want)
		}
	}

	if len(markets) != 2 {
		t.Fatalf("got %d records, want 2", len(markets))
	}
	btc := markets[0]
	if btc.ID != "bitcoin" || btc.CurrentPrice != 9500000 {
		t.Errorf("btc record = %+v", btc)
	}
	if btc.PriceChange24h == nil || *btc.PriceChange24h != 1.5 {
		t.Errorf("btc change = %v, want 1.5", btc.PriceChange24h)
	}
	odd := markets[1]
	if odd.PriceChange24h != nil || odd.TotalVolume != nil || odd.MarketCapRank != nil {
		t.Errorf("null fields should stay nil: %+v", odd)
	}
}

func TestCoinGecko_GetTrending(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/trending" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{"coins":[
			{"item":{"id":"sol","symbol":"sol","name":"Solana","market_cap_rank":5}},
			{"item":{"id":"aaa","symbol":"aaa","name":"Coin A"}}
		]}`))
	})

	client := NewCoinGeckoClient(srv.URL, "", "jpy", 250, 5*time.Second)
	items, err := client.GetTrending(context.Background())
	if err != nil {
		t.Fatalf("GetTrending failed: %v", err)
	}
	if len(items) != 2 || items[0].ID != "sol" || items[1].Symbol != "aaa" {
		t.Errorf("trending = %+v", items)
	}
}

func TestCoinGecko_GetBTCDominance(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"market_cap_percentage":{"btc":53.2,"eth":12.1}}}`))
	})

	client := NewCoinGeckoClient(srv.URL, "", "jpy", 250, 5*time.Second)
	dom, err := client.GetBTCDominance(context.Background())
	if err != nil {
		t.Fatalf("GetBTCDominance failed: %v", err)
	}
	if dom != 53.2 {
		t.Errorf("dominance = %v, want 53.2", dom)
	}
}

func TestCoinGecko_Non200IsError(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	})

	client := NewCoinGeckoClient(srv.URL, "", "jpy", 250, 5*time.Second)
	if _, err := client.GetMarkets(context.Background()); err == nil {
		t.Fatal("expected error for 429 response")
	}
}

func TestFearGreed_ParsesValue(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/fng/" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{"data":[{"value":"61","value_classification":"Greed"}]}`))
	})

	client := NewFearGreedClient(srv.URL, 5*time.Second)
	got, err := client.GetFearGreed(context.Background())
	if err != nil {
		t.Fatalf("GetFearGreed failed: %v", err)
	}
	if got.FGI != 61 || got.Label != "Greed" {
		t.Errorf("reading = %+v, want 61/Greed", got)
	}
}

func TestFearGreed_EmptyDataIsError(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[]}`))
	})

	client := NewFearGreedClient(srv.URL, 5*time.Second)
	if _, err := client.GetFearGreed(context.Background()); err == nil {
		t.Fatal("expected error for empty data")
	}
}
