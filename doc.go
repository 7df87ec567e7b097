/*
Package seamcarve is a content aware image resize library, which reduces the source image
both horizontally and vertically by repeatedly removing the connected seam of pixels with
the lowest energy, so the visually important parts of the image are kept.

The package provides a command line interface, supporting flags and the short
positional form `seamcarve IN OUT WIDTH [HEIGHT]`. To check the supported commands type:

	$ seamcarve --help

The carving primitives can be used directly on an *Image:

	img, err := seamcarve.DecodePPM(r)
	if err != nil {
		return err
	}
	res := seamcarve.Carve(img, 200, 150)

In case you wish to integrate the whole pipeline (decoding, resizing and encoding)
in a self constructed environment here is a simple example:

	package main

	import (
		"fmt"
		"github.com/esimov/seamcarve"
	)

	func main() {
		p := &seamcarve.Processor{
			NewWidth:  200,
			NewHeight: 150,
		}

		if err := p.Process(in, out); err != nil {
			fmt.Printf("Error rescaling image: %s", err.Error())
		}
	}
*/
package seamcarve
