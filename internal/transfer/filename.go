package transfer

import (
	"path"
	"strings"
)

// FileName derives a download name from a Content-Disposition header value.
// It takes the text after the first "filename=", cuts it at the next ";",
// and strips whitespace, quotes and any directory part. An empty result
// yields fallback.
//
//	attachment; filename=out.pdf        -> out.pdf
//	attachment; filename="a b.zip"      -> a b.zip
//	inline                              -> fallback
func FileName(contentDisposition, fallback string) string {
	_, after, found := strings.Cut(contentDisposition, "filename=")
	if !found {
		return fallback
	}
	name, _, _ := strings.Cut(after, ";")
	name = strings.TrimSpace(name)
	name = strings.Trim(name, `"`)
	name = strings.ReplaceAll(name, `\`, "/")
	name = path.Base(name)
	if name == "" || name == "." || name == ".." || name == "/" {
		return fallback
	}
	return name
}
