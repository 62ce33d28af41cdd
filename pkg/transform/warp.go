package transform

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// WarpImage renders src into dst through an affine-family model whose source
// system is src's pixel space and whose target system is dst's pixel space.
// Pixels of dst that no source pixel maps onto are left untouched.
func WarpImage(dst xdraw.Image, src image.Image, t AffineModel) {
	xdraw.BiLinear.Transform(dst, t.Matrix().Aff3(), src, src.Bounds(), xdraw.Over, nil)
}
