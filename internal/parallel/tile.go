// Package parallel splits an image into tiles and traces them on a pool
// of workers.
package parallel

import "image"

// TileSize is the default edge length of a tile in pixels.
const TileSize = 32

// Tiles splits the rectangle (0,0)-(width,height) into row-major tiles
// of at most size x size pixels. Edge tiles are smaller when the image is
// not evenly divisible. A non-positive size selects TileSize.
func Tiles(width, height, size int) []image.Rectangle {
	if width <= 0 || height <= 0 {
		return nil
	}
	if size <= 0 {
		size = TileSize
	}

	nx := (width + size - 1) / size
	ny := (height + size - 1) / size
	tiles := make([]image.Rectangle, 0, nx*ny)
	for ty := range ny {
		for tx := range nx {
			r := image.Rect(tx*size, ty*size, (tx+1)*size, (ty+1)*size)
			tiles = append(tiles, r.Intersect(image.Rect(0, 0, width, height)))
		}
	}
	return tiles
}
