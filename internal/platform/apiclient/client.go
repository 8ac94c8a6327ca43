// Copyright (c) 2026 Hortus. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apiclient is the thin JSON client for the garden REST API.

Every feature package (auth, plants, reference data) talks to the API only
through a [Client]. The client knows the base URL and the wire format; the
cross-cutting policy (bearer token, 401 handling, request IDs, throttling)
lives in the [net/http.RoundTripper] it is built with.

Error Contract:

  - Non-2xx: an [*apperr.AppError] decoded from the API's error envelope.
  - No response: [apperr.Unavailable] wrapping the network error.
  - Caller cancellation: the context error, unwrapped.
*/
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/taibuivan/hortus/internal/platform/apperr"
	"github.com/taibuivan/hortus/internal/platform/constants"
	"github.com/taibuivan/hortus/internal/platform/transport"
)

// maxErrorBody bounds how much of an error response is read for decoding.
const maxErrorBody = 64 << 10

// Client issues JSON requests against the garden API.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// New constructs a [Client] for baseURL.
//
// The http.Client carries the transport chain; a nil client falls back to
// [http.DefaultClient].
func New(baseURL string, httpClient *http.Client, logger *slog.Logger) (*Client, error) {
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("apiclient: invalid base URL %q", baseURL)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{baseURL: parsed, httpClient: httpClient, logger: logger}, nil
}

// BaseURL returns the API root the client is bound to.
func (client *Client) BaseURL() string {
	return client.baseURL.String()
}

// # Verbs

// Get issues a GET and decodes the response into out.
func (client *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return client.Do(ctx, http.MethodGet, path, query, nil, out)
}

// Post issues a POST with in as the JSON body and decodes the response into out.
func (client *Client) Post(ctx context.Context, path string, in, out any) error {
	return client.Do(ctx, http.MethodPost, path, nil, in, out)
}

// Put issues a PUT with in as the JSON body and decodes the response into out.
func (client *Client) Put(ctx context.Context, path string, in, out any) error {
	return client.Do(ctx, http.MethodPut, path, nil, in, out)
}

// Delete issues a DELETE and discards the response body.
func (client *Client) Delete(ctx context.Context, path string) error {
	return client.Do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// # Core

/*
Do performs one API round trip.

Parameters:
  - ctx: Carries the deadline and the per-request transport state
  - method: HTTP verb
  - path: Path relative to the base URL, e.g. "/plants/12"
  - query: Optional query string
  - in: Optional request body, encoded as JSON
  - out: Optional destination for the decoded JSON response

Returns:
  - error: See the package error contract
*/
func (client *Client) Do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	response, err := client.send(ctx, method, path, query, in)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	if out == nil || response.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, response.Body)
		return nil
	}

	if err := json.NewDecoder(response.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return apperr.Unavailable(fmt.Errorf("apiclient: decode %s %s: %w", method, path, err))
	}

	return nil
}

// Download is a binary API response such as an exported report.
type Download struct {
	ContentType string
	Filename    string
	Body        []byte
}

// Download performs a GET and returns the raw response body.
func (client *Client) Download(ctx context.Context, path string, query url.Values) (*Download, error) {
	response, err := client.send(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, apperr.Unavailable(fmt.Errorf("apiclient: read %s: %w", path, err))
	}

	download := &Download{
		ContentType: response.Header.Get(constants.HeaderContentType),
		Body:        body,
	}
	if _, params, err := mime.ParseMediaType(response.Header.Get("Content-Disposition")); err == nil {
		download.Filename = params["filename"]
	}

	return download, nil
}

// Ping reports whether the API answers at all. Any HTTP status counts as
// reachable, and a 401 never signs the operator out.
func (client *Client) Ping(ctx context.Context) error {
	request, err := http.NewRequestWithContext(transport.WithoutInvalidation(ctx), http.MethodHead, client.baseURL.String(), nil)
	if err != nil {
		return fmt.Errorf("apiclient: build ping: %w", err)
	}

	response, err := client.httpClient.Do(request)
	if err != nil {
		return apperr.Unavailable(err)
	}
	_ = response.Body.Close()

	return nil
}

// send builds the request, performs it, and converts non-2xx responses to errors.
func (client *Client) send(ctx context.Context, method, path string, query url.Values, in any) (*http.Response, error) {

	// ── 1. Encode the body ────────────────────────────────────────────────
	var body io.Reader
	if in != nil {
		encoded, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("apiclient: encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(encoded)
	}

	// ── 2. Build the request ──────────────────────────────────────────────
	request, err := http.NewRequestWithContext(ctx, method, client.resolve(path, query), body)
	if err != nil {
		return nil, fmt.Errorf("apiclient: build %s %s: %w", method, path, err)
	}
	request.Header.Set("Accept", constants.ContentTypeJSON)
	if in != nil {
		request.Header.Set(constants.HeaderContentType, constants.ContentTypeJSON)
	}

	// ── 3. Send ───────────────────────────────────────────────────────────
	response, err := client.httpClient.Do(request)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		client.logger.WarnContext(ctx, "api_unreachable",
			slog.String("method", method),
			slog.String("path", path),
			slog.Any("error", err),
		)
		return nil, apperr.Unavailable(err)
	}

	// ── 4. Map failures ───────────────────────────────────────────────────
	if response.StatusCode < 200 || response.StatusCode > 299 {
		defer response.Body.Close()
		raw, _ := io.ReadAll(io.LimitReader(response.Body, maxErrorBody))
		return nil, apperr.FromResponse(response.StatusCode, raw)
	}

	return response, nil
}

// resolve joins path onto the base URL, keeping the base path prefix.
func (client *Client) resolve(path string, query url.Values) string {
	target := *client.baseURL
	target.Path = strings.TrimRight(target.Path, "/") + "/" + strings.TrimLeft(path, "/")
	target.RawPath = ""
	target.RawQuery = ""
	if len(query) > 0 {
		target.RawQuery = query.Encode()
	}
	return target.String()
}
