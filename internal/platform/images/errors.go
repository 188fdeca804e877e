package images

import "errors"

// ErrNoImages is returned when none of product images could be stored.
var ErrNoImages = errors.New("no image stored")
