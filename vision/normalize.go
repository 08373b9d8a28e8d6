// Package vision turns uploaded images into model input tensors and wraps
// the pre-trained classifier behind a small Predictor interface.
package vision

import (
	"bytes"
	"fmt"
	"image"
	"io"

	"github.com/disintegration/imaging"
)

// Tensor is a batch-1 NHWC float32 tensor with values in [0,1].
type Tensor struct {
	Data  []float32
	Shape []int64
}

// Normalizer prepares images for a model expecting square RGB input of a
// fixed size.
type Normalizer struct {
	size int
}

func NewNormalizer(inputSize int) *Normalizer {
	return &Normalizer{size: inputSize}
}

func (n *Normalizer) InputSize() int { return n.size }

// FromFile normalizes an image read from a filesystem path.
func (n *Normalizer) FromFile(path string) (*Tensor, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", path, err)
	}
	return n.fromImage(img), nil
}

// FromReader normalizes an image read from a stream.
func (n *Normalizer) FromReader(r io.Reader) (*Tensor, error) {
	img, err := imaging.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode image stream: %w", err)
	}
	return n.fromImage(img), nil
}

// FromBytes normalizes an image held in a raw byte buffer.
func (n *Normalizer) FromBytes(data []byte) (*Tensor, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image bytes: %w", err)
	}
	return n.fromImage(img), nil
}

// fromImage resizes with Lanczos to size x size, drops alpha, scales each
// channel to [0,1] and prepends the batch axis.
func (n *Normalizer) fromImage(img image.Image) *Tensor {
	resized := imaging.Resize(img, n.size, n.size, imaging.Lanczos)

	data := make([]float32, n.size*n.size*3)
	i := 0
	for y := 0; y < n.size; y++ {
		for x := 0; x < n.size; x++ {
			px := resized.NRGBAAt(x, y)
			data[i] = float32(px.R) / 255.0
			data[i+1] = float32(px.G) / 255.0
			data[i+2] = float32(px.B) / 255.0
			i += 3
		}
	}

	return &Tensor{
		Data:  data,
		Shape: []int64{1, int64(n.size), int64(n.size), 3},
	}
}
