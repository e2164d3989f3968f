// Package pve is a minimal client for the Proxmox VE HTTP API.
package pve

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	units "github.com/docker/go-units"
)

// Config holds the API connection settings.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	Token    string
	Insecure bool
}

// Error is a transport or API failure. Its message is what the plugin
// reports on the UNKNOWN line.
type Error struct {
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.Err }

// Client issues authenticated requests against the api2/json endpoint.
// With token auth every request carries an Authorization header and no
// network round trip is needed up front; with password auth the caller
// must Login before the first Get.
type Client struct {
	cfg        Config
	baseURL    string
	authHeader string
	ticket     string
	httpClient *http.Client
	authClient *http.Client
}

// NewClient creates a client for the given connection settings.
func NewClient(cfg Config) *Client {
	transport := http.DefaultTransport
	if cfg.Insecure {
		t := http.DefaultTransport.(*http.Transport).Clone()
		t.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
		transport = t
	}

	c := &Client{
		cfg:     cfg,
		baseURL: fmt.Sprintf("https://%s:%d/api2/json/", cfg.Host, cfg.Port),
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   30 * time.Second,
		},
		// The ticket endpoint gets a short timeout so a dead host is
		// reported quickly.
		authClient: &http.Client{
			Transport: transport,
			Timeout:   5 * time.Second,
		},
	}
	if cfg.Token != "" {
		c.authHeader = fmt.Sprintf("PVEAPIToken=%s!%s", cfg.User, cfg.Token)
	}
	return c
}

// Login requests a session ticket from access/ticket and keeps it as the
// PVEAuthCookie for subsequent requests.
func (c *Client) Login(ctx context.Context) error {
	form := url.Values{
		"username": {c.cfg.User},
		"password": {c.cfg.Password},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"access/ticket", strings.NewReader(form.Encode()))
	if err != nil {
		return &Error{Message: "Could not connect to PVE API: " + err.Error(), Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.authClient.Do(req)
	if err != nil {
		return classify(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp.StatusCode)
	}

	var body struct {
		Data struct {
			Ticket string `json:"ticket"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return &Error{Message: "Could not fetch data from API: unexpected response body", Err: err}
	}
	c.ticket = body.Data.Ticket
	slog.Debug("session ticket obtained", "user", c.cfg.User)
	return nil
}

// Get fetches one API path and unwraps the data envelope.
func (c *Client) Get(ctx context.Context, path string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, &Error{Message: "Could not connect to PVE API: " + err.Error(), Err: err}
	}
	if c.authHeader != "" {
		req.Header.Set("Authorization", c.authHeader)
	}
	if c.ticket != "" {
		req.AddCookie(&http.Cookie{Name: "PVEAuthCookie", Value: c.ticket})
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classify(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Message: "Could not fetch data from API: " + err.Error(), Err: err}
	}
	slog.Debug("response received", "path", path, "size", units.HumanSize(float64(len(raw))))

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, &Error{Message: "Could not fetch data from API: unexpected response body", Err: err}
	}
	return envelope.Data, nil
}

// classify maps a transport failure to the message the plugin reports for
// it. Connection-level failures all collapse into the hostname message, as
// existing service definitions expect.
func classify(err error) *Error {
	message := "Could not connect to PVE API: "
	var (
		netErr  net.Error
		certErr *tls.CertificateVerificationError
		dnsErr  *net.DNSError
		opErr   *net.OpError
	)
	switch {
	case errors.As(err, &netErr) && netErr.Timeout():
		message += "Connection timeout"
	case errors.As(err, &certErr):
		message += "Certificate validation failed"
	case errors.As(err, &dnsErr), errors.As(err, &opErr):
		message += "Failed to resolve hostname"
	default:
		message += err.Error()
	}
	return &Error{Message: message, Err: err}
}

func statusError(code int) *Error {
	message := "Could not fetch data from API: "
	switch code {
	case http.StatusUnauthorized:
		message += "Could not connection to PVE API: invalid username or password"
	case http.StatusForbidden:
		message += "Access denied. Please check if API user has sufficient permissions / the role has been assigned."
	default:
		message += fmt.Sprintf("HTTP error code was %d", code)
	}
	return &Error{Message: message}
}

// API paths per check target.

func NodeStatusPath(node string) string     { return "nodes/" + node + "/status" }
func DisksListPath(node string) string      { return "nodes/" + node + "/disks/list" }
func CephStatusPath() string                { return "cluster/ceph/status" }
func NodeCephStatusPath(node string) string { return "nodes/" + node + "/ceph/status" }
func ClusterStatusPath() string             { return "cluster/status" }
func StoragePath(node string) string        { return "nodes/" + node + "/storage" }
func ServicesPath(node string) string       { return "nodes/" + node + "/services" }
