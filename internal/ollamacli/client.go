// Package ollamacli wraps the Ollama HTTP API client with the handful of
// operations the pull and create domains need.
package ollamacli

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"
)

const defaultHost = "http://localhost:11434"

// Client is a thin wrapper over the Ollama API client.
type Client struct {
	api *api.Client
}

// New builds a client from OLLAMA_HOST, falling back to the local default.
func New() (*Client, error) {
	c, err := api.ClientFromEnvironment()
	if err != nil {
		u, uerr := url.Parse(defaultHost)
		if uerr != nil {
			return nil, fmt.Errorf("ollama: bad host %q: %w", defaultHost, uerr)
		}
		c = api.NewClient(u, http.DefaultClient)
	}
	return &Client{api: c}, nil
}

// List returns the names of all locally available models.
func (c *Client) List(ctx context.Context) ([]string, error) {
	resp, err := c.api.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("ollama list: %w", err)
	}
	names := make([]string, 0, len(resp.Models))
	for _, m := range resp.Models {
		names = append(names, m.Name)
	}
	return names, nil
}

// Missing reports which of the wanted models are not available locally.
func (c *Client) Missing(ctx context.Context, wanted []string) ([]string, error) {
	names, err := c.List(ctx)
	if err != nil {
		return nil, err
	}

	have := make(map[string]bool, len(names))
	for _, name := range names {
		have[normalize(name)] = true
	}

	var missing []string
	for _, w := range wanted {
		if !have[normalize(w)] {
			missing = append(missing, w)
		}
	}
	return missing, nil
}

// Pull downloads a model, emitting progress status lines to w when non-nil.
func (c *Client) Pull(ctx context.Context, model string, w io.Writer) error {
	var lastStatus string
	err := c.api.Pull(ctx, &api.PullRequest{Model: model}, func(pr api.ProgressResponse) error {
		if w != nil && pr.Status != "" && pr.Status != lastStatus {
			fmt.Fprintf(w, "  %s: %s\n", model, pr.Status)
			lastStatus = pr.Status
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("ollama pull failed: %s: %w", model, err)
	}
	return nil
}

// Show reports an error when the named model does not exist locally.
func (c *Client) Show(ctx context.Context, model string) error {
	if _, err := c.api.Show(ctx, &api.ShowRequest{Model: model}); err != nil {
		return fmt.Errorf("ollama show: %s: %w", model, err)
	}
	return nil
}

// Has reports whether the named model exists locally.
func (c *Client) Has(ctx context.Context, model string) bool {
	return c.Show(ctx, model) == nil
}

// normalize appends the implicit :latest tag so untagged names compare equal
// to the tagged names ollama reports.
func normalize(name string) string {
	if strings.Contains(name, ":") {
		return name
	}
	return name + ":latest"
}
