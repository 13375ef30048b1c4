package texture

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/png"
	"io"
	"sync"

	"github.com/pkg/errors"
)

// Texture is the handle renderers receive. It owns the pixel buffer.
type Texture struct {
	Name string
	buf  *PixelBuffer
}

// NewTexture wraps buf under name
func NewTexture(name string, buf *PixelBuffer) *Texture {
	return &Texture{Name: name, buf: buf}
}

func (t *Texture) Width() int  { return t.buf.Width }
func (t *Texture) Height() int { return t.buf.Height }

// Pixels returns the raw RGBA8 bytes
func (t *Texture) Pixels() []byte {
	return t.buf.Pix
}

// Image returns an image.RGBA sharing the buffer's memory
func (t *Texture) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    t.buf.Pix,
		Stride: t.buf.Width * 4,
		Rect:   image.Rect(0, 0, t.buf.Width, t.buf.Height),
	}
}

// EncodePNG writes the texture as a PNG
func (t *Texture) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, t.Image()); err != nil {
		return errors.Wrapf(err, "encoding %s", t.Name)
	}
	return nil
}

// Base64PNG returns the PNG encoding as standard base64, ready for JSON
func (t *Texture) Base64PNG() (string, error) {
	var buf bytes.Buffer
	if err := t.EncodePNG(&buf); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// Cache keeps PNG encodings of textures by name. Synthesis is never cached,
// only the encoding step that transports repeat for every client.
type Cache struct {
	mu       sync.RWMutex
	textures map[string]*Texture
	encoded  map[string][]byte
}

func NewCache() *Cache {
	return &Cache{
		textures: make(map[string]*Texture),
		encoded:  make(map[string][]byte),
	}
}

// Put registers t, dropping any previous encoding under the same name
func (c *Cache) Put(t *Texture) {
	c.mu.Lock()
	c.textures[t.Name] = t
	delete(c.encoded, t.Name)
	c.mu.Unlock()
}

// Get returns the texture registered under name
func (c *Cache) Get(name string) (*Texture, bool) {
	c.mu.RLock()
	t, ok := c.textures[name]
	c.mu.RUnlock()
	return t, ok
}

// PNG returns the PNG bytes for name, encoding on first use
func (c *Cache) PNG(name string) ([]byte, bool, error) {
	c.mu.RLock()
	data, ok := c.encoded[name]
	t, known := c.textures[name]
	c.mu.RUnlock()
	if ok {
		return data, true, nil
	}
	if !known {
		return nil, false, nil
	}

	var buf bytes.Buffer
	if err := t.EncodePNG(&buf); err != nil {
		return nil, true, err
	}
	data = buf.Bytes()

	c.mu.Lock()
	c.encoded[name] = data
	c.mu.Unlock()
	return data, true, nil
}

// Base64PNG is PNG encoded as standard base64
func (c *Cache) Base64PNG(name string) (string, bool, error) {
	data, ok, err := c.PNG(name)
	if err != nil || !ok {
		return "", ok, err
	}
	return base64.StdEncoding.EncodeToString(data), true, nil
}
