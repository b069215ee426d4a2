package carousel

import "context"

// Rasterizer turns one slide frame into encoded image bytes.
type Rasterizer interface {
	Rasterize(ctx context.Context, f Frame) ([]byte, error)
}

type RasterizerFunc func(ctx context.Context, f Frame) ([]byte, error)

func (fn RasterizerFunc) Rasterize(ctx context.Context, f Frame) ([]byte, error) {
	return fn(ctx, f)
}
