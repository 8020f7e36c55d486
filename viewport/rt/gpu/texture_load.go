package gpu

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// ImageFetcher loads and decodes an image source into RGBA pixels.
type ImageFetcher func(ctx context.Context, source string) (*image.RGBA, error)

// TextureLoad is the completion token of an asynchronous texture load.
type TextureLoad struct {
	ID      string
	Sampler string
	Source  string

	done chan struct{}
	once sync.Once
	img  *image.RGBA
	err  error
}

func newTextureLoad(sampler, source string) *TextureLoad {
	return &TextureLoad{
		ID:      uuid.NewString(),
		Sampler: sampler,
		Source:  source,
		done:    make(chan struct{}),
	}
}

func (t *TextureLoad) finish(img *image.RGBA, err error) {
	t.once.Do(func() {
		t.img, t.err = img, err
		if err == nil && img == nil {
			t.err = fmt.Errorf("gpu: %s decoded to no image", t.Source)
		}
		close(t.done)
	})
}

func (t *TextureLoad) Done() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}

// Err is nil until the load has finished.
func (t *TextureLoad) Err() error {
	if !t.Done() {
		return nil
	}
	return t.err
}

func (t *TextureLoad) Image() *image.RGBA {
	if !t.Done() {
		return nil
	}
	return t.img
}

// Wait blocks until the fetch finishes or ctx is cancelled. A finished
// fetch is not yet on the GPU until ApplyTextures runs.
func (t *TextureLoad) Wait(ctx context.Context) error {
	select {
	case <-t.done:
		return t.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// FetchImage reads source over HTTP(S) or from the local filesystem and
// decodes it as PNG, JPEG, BMP or WebP.
func FetchImage(ctx context.Context, source string) (*image.RGBA, error) {
	var data []byte
	var err error
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		data, err = fetchHTTP(ctx, source)
	} else {
		data, err = os.ReadFile(strings.TrimPrefix(source, "file://"))
	}
	if err != nil {
		return nil, err
	}
	return DecodeImage(bytes.NewReader(data))
}

func fetchHTTP(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gpu: fetch %s: %s", url, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// DecodeImage decodes any registered format and converts it to tightly
// packed RGBA.
func DecodeImage(r io.Reader) (*image.RGBA, error) {
	src, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("gpu: decode image: %w", err)
	}
	if rgba, ok := src.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) && rgba.Stride == 4*rgba.Rect.Dx() {
		return rgba, nil
	}
	b := src.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("gpu: decode image: empty %s image", format)
	}
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst, nil
}
