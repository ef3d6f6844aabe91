package fft

// complexMult returns the complex product (re+im*i)*(cosW+sinW*i): the
// twiddle-rotation step used by Transform's butterfly stage below.
func complexMult(re, im, cosW, sinW float64) (outRe, outIm float64) {
	outRe = re*cosW - im*sinW
	outIm = re*sinW + im*cosW
	return
}
