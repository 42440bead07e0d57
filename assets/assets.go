// Package assets embeds the default shaders and textures.
package assets

import "embed"

// FS holds shaders/ and textures/. It is the lowest asset layer; files in the
// configured asset directory replace entries with the same path.
//
//go:embed shaders textures
var FS embed.FS
