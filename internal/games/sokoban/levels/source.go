package levels

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban"
)

// maxRemoteSize caps the body read from a remote pack.
var maxRemoteSize int64 = 8 << 20

// ErrPackTooLarge is returned for remote packs over the size cap.
var ErrPackTooLarge = errors.New("levels: remote pack too large")

var httpClient = &http.Client{Timeout: 30 * time.Second}

// IsRemote reports whether location is an http(s) URL.
func IsRemote(location string) bool {
	u, err := url.Parse(location)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Fetch loads a pack from location: "" or "classic" for the embedded set,
// an http(s) URL, or a file path ('~' expands to the home directory).
// The format follows the file extension, then the content.
func Fetch(ctx context.Context, location string) (Pack, error) {
	location = strings.TrimSpace(location)
	if location == "" || strings.EqualFold(location, ClassicName) {
		return Classic()
	}

	var (
		data []byte
		err  error
	)
	if IsRemote(location) {
		data, err = fetchURL(ctx, location)
	} else {
		data, err = readFile(ctx, location)
	}
	if err != nil {
		return Pack{}, err
	}

	pack, err := Parse(data, DetectFormat(location, data))
	if err != nil {
		return Pack{}, fmt.Errorf("%s: %w", location, err)
	}
	if pack.Name == "" {
		pack.Name = packName(location)
	}
	return pack, nil
}

// Loader adapts Fetch to the game's level loader.
func Loader(location string) sokoban.LevelLoader {
	return func(ctx context.Context) ([]sokoban.Level, error) {
		pack, err := Fetch(ctx, location)
		if err != nil {
			return nil, err
		}
		return pack.Levels, nil
	}
}

func readFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("levels: cannot get home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("levels: cannot read %s: %w", path, err)
	}
	return data, nil
}

func fetchURL(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("levels: cannot build request: %w", err)
	}
	req.Header.Set("Accept", "application/json, application/yaml, text/plain")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("levels: cannot fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("levels: fetch %s: unexpected status %s", rawURL, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxRemoteSize+1))
	if err != nil {
		return nil, fmt.Errorf("levels: cannot read %s: %w", rawURL, err)
	}
	if int64(len(data)) > maxRemoteSize {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrPackTooLarge, rawURL, maxRemoteSize)
	}
	return data, nil
}

// packName derives a display name from a path or URL.
func packName(location string) string {
	if u, err := url.Parse(location); err == nil && u.Path != "" {
		location = u.Path
	}
	base := filepath.Base(location)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
