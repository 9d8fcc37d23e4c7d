package filter

import (
	"sync"

	"github.com/gogpu/glassfx/raster"
)

// BlurFilter applies a separable Gaussian blur to a coverage mask.
// The separable algorithm processes horizontal and vertical passes
// independently, achieving O(w*h*k) complexity instead of O(w*h*k²).
//
// Pixels outside the mask count as transparent, matching the canvas
// blur() filter.
type BlurFilter struct {
	// Sigma is the standard deviation in pixels.
	Sigma float64
}

// NewBlurFilter creates a blur filter.
func NewBlurFilter(sigma float64) *BlurFilter {
	return &BlurFilter{Sigma: sigma}
}

// Apply returns a blurred copy of src. src is not modified.
// A nil src yields nil; a non-positive sigma yields a plain copy.
func (f *BlurFilter) Apply(src *raster.Mask) *raster.Mask {
	if src == nil {
		return nil
	}
	if !(f.Sigma > 0) || src.Width() == 0 || src.Height() == 0 {
		return src.Clone()
	}

	width, height := src.Width(), src.Height()
	kernel := CachedGaussianKernel(f.Sigma)

	temp := getTempBuffer(width * height)
	defer putTempBuffer(temp)

	blurHorizontal(src.Data(), temp, width, height, kernel)

	dst := raster.NewMask(width, height)
	blurVertical(temp, dst.Data(), width, height, kernel)
	return dst
}

// blurHorizontal convolves each row of src into temp.
func blurHorizontal(src []uint8, temp []float32, width, height int, kernel []float32) {
	half := len(kernel) / 2

	for y := 0; y < height; y++ {
		row := src[y*width : (y+1)*width]
		for x := 0; x < width; x++ {
			var sum float32
			for k, weight := range kernel {
				kx := x + k - half
				if kx < 0 || kx >= width {
					continue
				}
				sum += float32(row[kx]) * weight
			}
			temp[y*width+x] = sum
		}
	}
}

// blurVertical convolves each column of temp into dst.
func blurVertical(temp []float32, dst []uint8, width, height int, kernel []float32) {
	half := len(kernel) / 2

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var sum float32
			for k, weight := range kernel {
				ky := y + k - half
				if ky < 0 || ky >= height {
					continue
				}
				sum += temp[ky*width+x] * weight
			}
			dst[y*width+x] = clampUint8(sum)
		}
	}
}

// floatBuffer wraps a slice for sync.Pool to avoid allocation warnings.
type floatBuffer struct {
	data []float32
}

// Temporary buffer pool for blur passes.
var tempBufferPool = sync.Pool{
	New: func() interface{} {
		return &floatBuffer{data: make([]float32, 512*512)}
	},
}

// getTempBuffer retrieves a buffer with at least size elements.
// The horizontal pass overwrites every element, so it is not cleared.
func getTempBuffer(size int) []float32 {
	wrapper := tempBufferPool.Get().(*floatBuffer)
	if len(wrapper.data) < size {
		tempBufferPool.Put(wrapper)
		return make([]float32, size)
	}
	return wrapper.data[:size]
}

// putTempBuffer returns a temporary buffer to the pool.
func putTempBuffer(buf []float32) {
	// Only pool reasonably-sized buffers
	if cap(buf) <= 4096*4096 {
		tempBufferPool.Put(&floatBuffer{data: buf[:cap(buf)]})
	}
}

// clampUint8 clamps a float32 to [0, 255] and converts to uint8.
func clampUint8(v float32) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5) // Round to nearest
}
