package menu

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	logx "github.com/tavolo-poc/waiterbot/pkg/logger"
)

const (
	snapshotPrefix = "menu-"
	snapshotSuffix = ".json"
)

// Save writes the store to a new timestamp-named snapshot under dir and
// returns the file name. An existing file with the same name is never
// overwritten.
func (s *Store) Save(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create menu dir: %w", err)
	}

	name := snapshotPrefix + time.Now().UTC().Format("20060102-150405") + snapshotSuffix
	f, err := os.OpenFile(filepath.Join(dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create menu snapshot: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s.entries); err != nil {
		return "", fmt.Errorf("encode menu snapshot: %w", err)
	}

	logx.Info().Str("component", "menu").Str("file", name).Int("entries", len(s.entries)).Msg("menu saved")
	return name, nil
}

// Load reads a snapshot from dir. With an empty name it picks the most
// recent snapshot, which is the lexicographically last one given the
// timestamped naming. A missing directory or an empty one yields an empty
// store.
func Load(dir, name string) (*Store, error) {
	if name == "" {
		latest, err := latestSnapshot(dir)
		if err != nil {
			return nil, err
		}
		if latest == "" {
			logx.Info().Str("component", "menu").Str("dir", dir).Msg("no menu snapshot, starting empty")
			return NewStore(), nil
		}
		name = latest
	}

	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("read menu snapshot: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode menu snapshot %s: %w", name, err)
	}

	logx.Info().Str("component", "menu").Str("file", name).Int("entries", len(entries)).Msg("menu loaded")
	return &Store{entries: entries}, nil
}

func latestSnapshot(dir string) (string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("list menu dir: %w", err)
	}

	var names []string
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		n := f.Name()
		if strings.HasPrefix(n, snapshotPrefix) && strings.HasSuffix(n, snapshotSuffix) {
			names = append(names, n)
		}
	}
	if len(names) == 0 {
		return "", nil
	}
	sort.Strings(names)
	return names[len(names)-1], nil
}
