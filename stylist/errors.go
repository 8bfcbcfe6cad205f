package stylist

import "errors"

var (
	ErrNoImage    = errors.New("upload an image before generating outfits")
	ErrBusy       = errors.New("outfits are already being generated")
	ErrSuperseded = errors.New("generation attempt was superseded by a newer upload or attempt")
)
