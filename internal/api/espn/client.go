package espn

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/omarshaarawi/trophybot/internal/config"
	"github.com/sony/gobreaker"
)

// ErrFetchFailure is returned when no candidate host produced a usable
// JSON document for a request.
var ErrFetchFailure = errors.New("espn: no host returned a JSON document")

const (
	readsHost    = "https://lm-api-reads.fantasy.espn.com"
	fantasyHost  = "https://fantasy.espn.com"
	leaguePath   = "/apis/v3/games/ffl/seasons/%s/segments/0/leagues/%s"
	refererURL   = "https://fantasy.espn.com/football/league?leagueId=%s&seasonId=%s"
	defaultAgent = "Mozilla/5.0"
)

type Client struct {
	httpClient *http.Client
	Config     config.ESPNAPI
	hosts      []string
	breakers   map[string]*gobreaker.CircuitBreaker
}

type Option func(*Client)

// WithHosts replaces the candidate hosts, tried in order.
func WithHosts(hosts ...string) Option {
	return func(c *Client) {
		c.hosts = hosts
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

func NewClient(cfg config.ESPNAPI, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 20 * time.Second},
		Config:     cfg,
		hosts:      []string{readsHost, fantasyHost},
	}
	for _, opt := range opts {
		opt(c)
	}

	c.breakers = make(map[string]*gobreaker.CircuitBreaker, len(c.hosts))
	for _, host := range c.hosts {
		c.breakers[host] = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    host,
			Timeout: time.Minute,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 3
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				slog.Warn("ESPN host breaker changed state", "host", name, "from", from.String(), "to", to.String())
			},
		})
	}
	return c
}

// Get fetches the league document described by params, trying each host in
// turn. A host attempt fails on transport errors, non-200 statuses, non-JSON
// content types and undecodable bodies.
func (c *Client) Get(ctx context.Context, params, headers map[string]string, result interface{}) error {
	var errs []error
	for _, host := range c.hosts {
		_, err := c.breakers[host].Execute(func() (interface{}, error) {
			return nil, c.getFrom(ctx, host, params, headers, result)
		})
		if err == nil {
			return nil
		}
		slog.Debug("ESPN host attempt failed", "host", host, "view", params["view"], "error", err)
		errs = append(errs, fmt.Errorf("%s: %w", host, err))
		if ctx.Err() != nil {
			break
		}
	}
	return fmt.Errorf("%w (view=%s): %w", ErrFetchFailure, params["view"], errors.Join(errs...))
}

func (c *Client) getFrom(ctx context.Context, host string, params, headers map[string]string, result interface{}) error {
	url := host + fmt.Sprintf(leaguePath, c.Config.Year, c.Config.LeagueID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}

	q := req.URL.Query()
	for key, value := range params {
		values := strings.Split(value, ",")
		for _, v := range values {
			q.Add(key, strings.TrimSpace(v))
		}
	}
	req.URL.RawQuery = q.Encode()

	c.setHeaders(req)

	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if ct := resp.Header.Get("Content-Type"); !strings.Contains(strings.ToLower(ct), "application/json") {
		return fmt.Errorf("unexpected content type: %q", ct)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("error decoding response: %w", err)
	}

	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", defaultAgent)
	req.Header.Set("Referer", fmt.Sprintf(refererURL, c.Config.LeagueID, c.Config.Year))
	req.Header.Set("X-Fantasy-Platform", "kona")
	req.Header.Set("X-Fantasy-Source", "kona")

	// Public leagues need no cookies.
	if c.Config.SWID != "" && c.Config.ESPNS2 != "" {
		cookie := fmt.Sprintf("SWID=%s; espn_s2=%s", c.Config.SWID, c.Config.ESPNS2)
		req.Header.Set("Cookie", cookie)
	}
}
