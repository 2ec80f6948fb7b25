package middleware

import (
	"net/http"
	"os"
	"path/filepath"
)

const avatarSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 200 200"><rect width="200" height="200" fill="#fdf2e4"/><circle cx="100" cy="78" r="36" fill="#d9822b"/><path d="M40 176c0-33 27-60 60-60s60 27 60 60z" fill="#d9822b"/></svg>`

// AvatarServer serves profile pictures from dir, falling back to a generic
// avatar for accounts that never uploaded one.
func AvatarServer(dir string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(dir, filepath.Clean("/"+r.URL.Path))

		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			w.Header().Set("Cache-Control", "public, max-age=2592000")
			http.ServeFile(w, r, path)
			return
		}

		w.Header().Set("Content-Type", "image/svg+xml")
		w.Header().Set("Cache-Control", "public, max-age=86400")
		w.Write([]byte(avatarSVG))
	})
}
