package main

import (
	"github.com/faiface/pixel/pixelgl"

	"github.com/chippy8/chippy8/cmd"
)

func main() {
	// pixelgl needs to own the main OS thread, so cobra's dispatch runs
	// inside its callback rather than being called directly.
	pixelgl.Run(cmd.Execute)
}
