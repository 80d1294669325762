package renderer

import (
	"image"
)

// DefaultTileSize is the edge length of a render tile in pixels
const DefaultTileSize = 64

// Tile is a rectangular block of pixels rendered as one task
type Tile struct {
	ID     int
	Bounds image.Rectangle
}

// NewTileGrid splits a width×height image into row-major tiles of at most
// tileSize×tileSize. Edge tiles are clipped to the image.
func NewTileGrid(width, height, tileSize int) []Tile {
	if width <= 0 || height <= 0 {
		return nil
	}
	if tileSize <= 0 {
		tileSize = DefaultTileSize
	}

	tilesX := (width + tileSize - 1) / tileSize
	tilesY := (height + tileSize - 1) / tileSize
	tiles := make([]Tile, 0, tilesX*tilesY)

	for ty := 0; ty < tilesY; ty++ {
		for tx := 0; tx < tilesX; tx++ {
			x0, y0 := tx*tileSize, ty*tileSize
			bounds := image.Rect(x0, y0, min(x0+tileSize, width), min(y0+tileSize, height))
			tiles = append(tiles, Tile{ID: len(tiles), Bounds: bounds})
		}
	}
	return tiles
}

// renderTile shades every pixel of tile and returns the tile's statistics
func (rt *Raytracer) renderTile(tile Tile) RenderStats {
	for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
		for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
			rt.RenderPixel(x, y)
		}
	}

	pixels := tile.Bounds.Dx() * tile.Bounds.Dy()
	return RenderStats{
		Tiles:   1,
		Pixels:  pixels,
		Samples: pixels * rt.samplesPerPixel(),
	}
}
