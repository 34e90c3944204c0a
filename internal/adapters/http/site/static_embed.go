package site

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.html
var templateFS embed.FS

// FS returns the embedded page templates rooted at templates/.
func FS() fs.FS {
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		// Only possible if the embed pattern changes.
		return templateFS
	}
	return sub
}
