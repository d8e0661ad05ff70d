package httpclient_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/mxwebio/mxweb-utils/flow"
	"github.com/mxwebio/mxweb-utils/httpclient"
)

func ExampleClient_Get() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"symbol":"ACME","price":101.5}`)
	}))
	defer server.Close()

	client, _ := httpclient.New(httpclient.Config{BaseURL: server.URL})

	var quote struct {
		Symbol string  `json:"symbol"`
		Price  float64 `json:"price"`
	}
	err := client.Get(context.Background(), "/v1/quotes/ACME", &quote)

	fmt.Println(err, quote.Symbol, quote.Price)
	// Output:
	// <nil> ACME 101.5
}

func ExampleClient_Get_statusError() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client, _ := httpclient.New(httpclient.Config{BaseURL: server.URL})

	err := client.Get(context.Background(), "/missing", nil)

	var statusErr *httpclient.StatusError
	if errors.As(err, &statusErr) {
		fmt.Println(statusErr.StatusCode, statusErr.Retryable())
	}
	// Output:
	// 404 false
}

func ExampleNew_withFlowControl() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	}))
	defer server.Close()

	client, _ := httpclient.New(httpclient.Config{
		BaseURL: server.URL,
		Limiter: flow.NewRateLimiter(flow.RateLimitPolicy{MaxRequests: 10, Interval: time.Second}),
		Retry:   flow.NewRetry(flow.RetryPolicy{MaxRetries: 3, Delay: 100 * time.Millisecond}),
	})

	err := client.Get(context.Background(), "/healthz", nil)
	fmt.Println(err)
	// Output:
	// <nil>
}
