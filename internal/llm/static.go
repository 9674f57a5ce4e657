package llm

import (
	"context"
	"sync"
)

// StaticClient replays canned responses in order, repeating the last one. It backs
// offline runs (--offline) and tests.
type StaticClient struct {
	mu        sync.Mutex
	responses []string
	err       error
	prompts   []string
}

var _ Client = (*StaticClient)(nil)

// NewStaticClient returns a client answering with responses.
func NewStaticClient(responses ...string) *StaticClient {
	return &StaticClient{responses: responses}
}

// NewFailingClient returns a client whose every call fails with err.
func NewFailingClient(err error) *StaticClient {
	return &StaticClient{err: err}
}

func (c *StaticClient) GenerateJSON(ctx context.Context, prompt string, _ ModelTier) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.prompts = append(c.prompts, prompt)
	if c.err != nil {
		return "", c.err
	}
	if len(c.responses) == 0 {
		return "{}", nil
	}
	resp := c.responses[0]
	if len(c.responses) > 1 {
		c.responses = c.responses[1:]
	}
	return CleanJSONBlock(resp), nil
}

func (c *StaticClient) GetModel(ModelTier) string { return "static" }

func (c *StaticClient) Close() error { return nil }

// Prompts returns the prompts received so far.
func (c *StaticClient) Prompts() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.prompts))
	copy(out, c.prompts)
	return out
}
