package filter

import (
	"math"
	"sync"
)

// GaussianKernel generates a 1D Gaussian kernel with standard deviation
// sigma. The kernel is normalized so all values sum to 1.0.
//
// The kernel size is 2 * ceil(sigma * 3) + 1, which covers 99.7% of the
// distribution (3 standard deviations).
//
// For sigma <= 0 (or NaN), returns a single-element kernel [1.0] (identity).
func GaussianKernel(sigma float64) []float32 {
	if !(sigma > 0) {
		return []float32{1.0}
	}

	size := OptimalKernelSize(sigma)
	halfSize := size / 2

	kernel := make([]float32, size)

	// G(x) = exp(-x²/(2σ²)); the constant factor cancels on normalization.
	twoSigmaSq := 2 * sigma * sigma
	sum := float64(0)

	for i := 0; i < size; i++ {
		x := float64(i - halfSize)
		val := math.Exp(-(x * x) / twoSigmaSq)
		kernel[i] = float32(val)
		sum += val
	}

	if sum > 0 {
		invSum := float32(1.0 / sum)
		for i := range kernel {
			kernel[i] *= invSum
		}
	}

	return kernel
}

// OptimalKernelSize returns the kernel length GaussianKernel produces for
// sigma. This is useful for pre-allocating buffers.
func OptimalKernelSize(sigma float64) int {
	if !(sigma > 0) {
		return 1
	}
	return int(math.Ceil(sigma*3))*2 + 1
}

// kernelCache caches computed Gaussian kernels to avoid recomputation.
// Key is sigma * 100 (to handle float precision), value is kernel.
type kernelCache struct {
	mu     sync.RWMutex
	cache  map[int][]float32
	maxLen int
}

var defaultKernelCache = newKernelCache(64)

// newKernelCache creates a kernel cache with the given maximum entries.
func newKernelCache(maxLen int) *kernelCache {
	return &kernelCache{
		cache:  make(map[int][]float32),
		maxLen: maxLen,
	}
}

// get retrieves a kernel from cache or generates and caches it.
// Sigmas that do not quantize exactly to 0.01 bypass the cache.
func (c *kernelCache) get(sigma float64) []float32 {
	scaled := sigma * 100
	if scaled != math.Trunc(scaled) || scaled > math.MaxInt32 {
		return GaussianKernel(sigma)
	}
	key := int(scaled)

	c.mu.RLock()
	if kernel, ok := c.cache[key]; ok {
		c.mu.RUnlock()
		return kernel
	}
	c.mu.RUnlock()

	kernel := GaussianKernel(sigma)

	c.mu.Lock()
	if len(c.cache) >= c.maxLen {
		// Drop half the entries; element sizes repeat, so this is rare.
		count := 0
		for k := range c.cache {
			delete(c.cache, k)
			count++
			if count >= c.maxLen/2 {
				break
			}
		}
	}
	c.cache[key] = kernel
	c.mu.Unlock()

	return kernel
}

// len returns the number of cached kernels.
func (c *kernelCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}

// CachedGaussianKernel returns a cached Gaussian kernel for sigma.
// Offsets are reused frame after frame, so most calls hit the cache.
func CachedGaussianKernel(sigma float64) []float32 {
	return defaultKernelCache.get(sigma)
}
