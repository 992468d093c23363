package system

import (
	"image"
	"testing"
)

func TestFramePoolReuse(t *testing.T) {
	pool := NewFramePool(720, 1280)

	frame := pool.Get()
	if b := frame.Bounds(); b.Dx() != 720 || b.Dy() != 1280 {
		t.Fatalf("Expected 720x1280 frame, got %dx%d", b.Dx(), b.Dy())
	}

	frame.Pix[0] = 42
	pool.Put(frame)

	// The recycled buffer keeps its size; contents are the caller's
	// problem, every frame is fully redrawn.
	again := pool.Get()
	if b := again.Bounds(); b.Dx() != 720 || b.Dy() != 1280 {
		t.Errorf("Expected 720x1280 frame after reuse, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestFramePoolRejectsForeignSizes(t *testing.T) {
	pool := NewFramePool(720, 1280)
	pool.Put(image.NewRGBA(image.Rect(0, 0, 10, 10)))
	pool.Put(nil)

	frame := pool.Get()
	if b := frame.Bounds(); b.Dx() != 720 || b.Dy() != 1280 {
		t.Errorf("Expected the pool to reject the foreign buffer, got %dx%d", b.Dx(), b.Dy())
	}
}
