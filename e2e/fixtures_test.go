//go:build e2e && unix

package main

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
)

// countriesJSON is a small country list in the upstream shape. Antarctica
// has no currency and must be skipped.
const countriesJSON = `[
  {"name": {"common": "Japan"}, "currencies": {"JPY": {"name": "Japanese yen"}}, "flag": "🇯🇵"},
  {"name": {"common": "Germany"}, "currencies": {"EUR": {"name": "Euro"}}, "flag": "🇩🇪"},
  {"name": {"common": "France"}, "currencies": {"EUR": {"name": "Euro"}}, "flag": "🇫🇷"},
  {"name": {"common": "Switzerland"}, "currencies": {"CHF": {"name": "Swiss franc"}}, "flag": "🇨🇭"},
  {"name": {"common": "Antarctica"}, "currencies": {}, "flag": "🇦🇶"}
]`

// CreateTestWorkspace creates a temporary home for the app
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	tmpDir := tf.t.TempDir()
	tf.workspace = tmpDir
	return tmpDir, nil
}

// StartCountryServer serves countriesJSON until the test ends
func (tf *TUITestFramework) StartCountryServer() string {
	return tf.startServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(countriesJSON))
	}))
}

// StartFailingServer answers every request with a 500
func (tf *TUITestFramework) StartFailingServer() string {
	return tf.startServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
}

func (tf *TUITestFramework) startServer(h http.Handler) string {
	srv := httptest.NewServer(h)
	tf.t.Cleanup(srv.Close)
	return srv.URL
}

// LogPath returns the log file used by StartWithServer
func (tf *TUITestFramework) LogPath() string {
	return filepath.Join(tf.workspace, "countrypick.log")
}

// StartWithServer starts the app against url with a short debounce
func (tf *TUITestFramework) StartWithServer(url string, args ...string) error {
	base := []string{"--api-url", url, "--debounce", "100ms", "--log-file", tf.LogPath()}
	return tf.StartApp(append(base, args...)...)
}
