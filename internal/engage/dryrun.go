package engage

import (
	"context"

	"github.com/blackmichael/reshare-bot/internal/domain"
)

// dryRunClient forwards reads and acknowledges writes without sending them.
type dryRunClient struct {
	domain.Client
	sink domain.Sink
}

// DryRun wraps client so that writes are traced and reported as successful
// but never reach the platform.
func DryRun(client domain.Client, sink domain.Sink) domain.Client {
	return &dryRunClient{Client: client, sink: sink}
}

func (c *dryRunClient) Write(_ context.Context, endpoint string, params domain.Params) (*domain.Response, error) {
	c.sink.Emit("dry run: skipping write to " + endpoint)
	return &domain.Response{Status: 200}, nil
}
