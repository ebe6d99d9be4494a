package testdata

import "embed"

//go:embed fixtures/*.yaml
var Fixtures embed.FS

// GetFS returns the embedded filesystem
func GetFS() embed.FS {
	return Fixtures
}
