package system

import (
	"image"
	"sync"
)

// FramePool recycles fixed-size RGBA frame buffers so a long render does
// not allocate one buffer per frame. All buffers share one size; the
// frame loop works at a single resolution per render.
type FramePool struct {
	rect image.Rectangle
	pool sync.Pool
}

func NewFramePool(width, height int) *FramePool {
	rect := image.Rect(0, 0, width, height)
	return &FramePool{
		rect: rect,
		pool: sync.Pool{
			New: func() interface{} {
				return image.NewRGBA(rect)
			},
		},
	}
}

func (p *FramePool) Get() *image.RGBA {
	return p.pool.Get().(*image.RGBA)
}

func (p *FramePool) Put(img *image.RGBA) {
	if img == nil || img.Rect != p.rect {
		return
	}
	p.pool.Put(img)
}
