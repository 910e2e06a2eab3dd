package tensorconv

// Tensor is a dense rank-3 float64 tensor in the canonical z-major layout
// (index = z*Y*X + y*X + x), matching the grid's flat ordering so encode and
// decode are index-preserving.
type Tensor struct {
	X, Y, Z int
	Data    []float64
}

// NewTensor allocates a zero tensor with the given shape.
func NewTensor(x, y, z int) *Tensor {
	return &Tensor{X: x, Y: y, Z: z, Data: make([]float64, x*y*z)}
}

// Index returns the linear index for coordinates (x, y, z).
func (t *Tensor) Index(x, y, z int) int { return (z*t.Y+y)*t.X + x }

// At returns the element at (x, y, z).
func (t *Tensor) At(x, y, z int) float64 { return t.Data[t.Index(x, y, z)] }

// Set writes the element at (x, y, z).
func (t *Tensor) Set(x, y, z int, v float64) { t.Data[t.Index(x, y, z)] = v }

// Zero clears the tensor in place.
func (t *Tensor) Zero() {
	for i := range t.Data {
		t.Data[i] = 0
	}
}
