package config

// Viewer layout configuration
const (
	// Tile size in pixels
	TileSize = 10

	// Default level dimensions in tiles
	DefaultLevelWidth  = 80
	DefaultLevelHeight = 50

	// Status bar above the map, in pixels
	StatusBarHeight = 32

	// Frames between history steps while autoplaying (60 frames per second)
	AutoplayFrames = 6

	// SSH preview server
	DefaultSSHAddr = ":2222"
)

// GetScreenDimensions returns the logical screen size in pixels for a
// width x height level
func GetScreenDimensions(width, height int) (int, int) {
	return width * TileSize, height*TileSize + StatusBarHeight
}
