package generate

import (
	"context"
	"math/rand"
	"time"
)

// DefaultMockLatency mirrors a realistic generation turnaround.
const DefaultMockLatency = 2500 * time.Millisecond

// StockImages are the placeholder results handed out by Mock.
var StockImages = []string{
	"https://images.unsplash.com/photo-1618005182384-a83a8bd57fbe?q=80&w=2564&auto=format&fit=crop",
	"https://images.unsplash.com/photo-1620641788421-7a1c342ea42e?q=80&w=2574&auto=format&fit=crop",
	"https://images.unsplash.com/photo-1635805737707-575885ab0820?q=80&w=2574&auto=format&fit=crop",
}

// Mock waits for Latency and returns a random stock image. It never fails on
// its own; a cancelled context is returned as an error.
type Mock struct {
	Latency time.Duration
	Images  []string
}

func NewMock(latency time.Duration) *Mock {
	return &Mock{Latency: latency, Images: StockImages}
}

func (m *Mock) Generate(ctx context.Context, req Request) (Result, error) {
	if err := req.Validate(); err != nil {
		return Failed(err.Error()), nil
	}
	images := m.Images
	if len(images) == 0 {
		images = StockImages
	}
	url := images[rand.Intn(len(images))]

	select {
	case <-time.After(m.Latency):
		return Succeeded(url), nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

var _ Client = (*Mock)(nil)
