package tensorconv

import "gonum.org/v1/gonum/dsp/fourier"

// convolver computes circular 3D convolution with the fixed 3x3x3 Moore
// kernel (all ones except a zero center) via FFT. Circular convolution is
// exactly the toroidal wrap the grid topology requires, so no explicit
// padding is needed. The kernel spectrum is computed once per shape; the
// frequency-domain scratch buffers are owned by the convolver and reused
// across generations.
//
// The transform follows the gonum real-FFT pattern: a real FFT along x keeps
// only X/2+1 coefficients per row, then complex FFTs run along y and z.
type convolver struct {
	x, y, z int
	halfX   int

	fftX *fourier.FFT
	fftY *fourier.CmplxFFT
	fftZ *fourier.CmplxFFT

	kernelFreq []complex128 // (z*Y + y)*halfX + cx
	freq       []complex128
	colY       []complex128
	colZ       []complex128
	norm       float64 // 1/(X*Y*Z), the inverse transforms are unnormalized
}

func newConvolver(x, y, z int) *convolver {
	c := &convolver{
		x: x, y: y, z: z,
		halfX: x/2 + 1,
		fftX:  fourier.NewFFT(x),
		fftY:  fourier.NewCmplxFFT(y),
		fftZ:  fourier.NewCmplxFFT(z),
		norm:  1 / float64(x*y*z),
	}
	c.kernelFreq = make([]complex128, z*y*c.halfX)
	c.freq = make([]complex128, z*y*c.halfX)
	c.colY = make([]complex128, y)
	c.colZ = make([]complex128, z)

	// Spatial Moore kernel with the offsets placed at wrapped coordinates.
	// On axes shorter than 3 several offsets land on the same cell and the
	// weights accumulate, which matches counting wrapped neighbors with
	// multiplicity.
	kernel := NewTensor(x, y, z)
	for dz := -1; dz <= 1; dz++ {
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 && dz == 0 {
					continue
				}
				kx := ((dx % x) + x) % x
				ky := ((dy % y) + y) % y
				kz := ((dz % z) + z) % z
				kernel.Data[kernel.Index(kx, ky, kz)]++
			}
		}
	}
	c.forward(kernel.Data, c.kernelFreq)
	return c
}

// Counts convolves src with the Moore kernel and writes the neighbor counts
// to dst. Both tensors must have the convolver's shape.
func (c *convolver) Counts(src, dst *Tensor) {
	c.forward(src.Data, c.freq)
	for i := range c.freq {
		c.freq[i] *= c.kernelFreq[i]
	}
	c.inverse(c.freq, dst.Data)
}

// forward computes the 3D spectrum of a real tensor: real FFT along each x
// row, then complex FFTs along y columns and z columns.
func (c *convolver) forward(src []float64, dst []complex128) {
	for zi := 0; zi < c.z; zi++ {
		for yi := 0; yi < c.y; yi++ {
			row := (zi*c.y + yi) * c.x
			out := (zi*c.y + yi) * c.halfX
			c.fftX.Coefficients(dst[out:out+c.halfX], src[row:row+c.x])
		}
	}
	for zi := 0; zi < c.z; zi++ {
		for cx := 0; cx < c.halfX; cx++ {
			for yi := 0; yi < c.y; yi++ {
				c.colY[yi] = dst[(zi*c.y+yi)*c.halfX+cx]
			}
			c.fftY.Coefficients(c.colY, c.colY)
			for yi := 0; yi < c.y; yi++ {
				dst[(zi*c.y+yi)*c.halfX+cx] = c.colY[yi]
			}
		}
	}
	for yi := 0; yi < c.y; yi++ {
		for cx := 0; cx < c.halfX; cx++ {
			for zi := 0; zi < c.z; zi++ {
				c.colZ[zi] = dst[(zi*c.y+yi)*c.halfX+cx]
			}
			c.fftZ.Coefficients(c.colZ, c.colZ)
			for zi := 0; zi < c.z; zi++ {
				dst[(zi*c.y+yi)*c.halfX+cx] = c.colZ[zi]
			}
		}
	}
}

// inverse undoes forward and scales by 1/(X*Y*Z).
func (c *convolver) inverse(src []complex128, dst []float64) {
	for yi := 0; yi < c.y; yi++ {
		for cx := 0; cx < c.halfX; cx++ {
			for zi := 0; zi < c.z; zi++ {
				c.colZ[zi] = src[(zi*c.y+yi)*c.halfX+cx]
			}
			c.fftZ.Sequence(c.colZ, c.colZ)
			for zi := 0; zi < c.z; zi++ {
				src[(zi*c.y+yi)*c.halfX+cx] = c.colZ[zi]
			}
		}
	}
	for zi := 0; zi < c.z; zi++ {
		for cx := 0; cx < c.halfX; cx++ {
			for yi := 0; yi < c.y; yi++ {
				c.colY[yi] = src[(zi*c.y+yi)*c.halfX+cx]
			}
			c.fftY.Sequence(c.colY, c.colY)
			for yi := 0; yi < c.y; yi++ {
				src[(zi*c.y+yi)*c.halfX+cx] = c.colY[yi]
			}
		}
	}
	for zi := 0; zi < c.z; zi++ {
		for yi := 0; yi < c.y; yi++ {
			row := (zi*c.y + yi) * c.x
			in := (zi*c.y + yi) * c.halfX
			c.fftX.Sequence(dst[row:row+c.x], src[in:in+c.halfX])
		}
	}
	for i := range dst {
		dst[i] *= c.norm
	}
}
