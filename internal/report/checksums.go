package report

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	ChecksumsFile = "checksums.sha256"
	RunLogFile    = "stratum.run.log"
	SnapshotFile  = "snapshot.json"
)

func ChecksumsPath(outDir string) string {
	return filepath.Join(defaultDir(outDir), ChecksumsFile)
}

func RunLogPath(outDir string) string {
	return filepath.Join(defaultDir(outDir), RunLogFile)
}

func SnapshotPath(outDir string) string {
	return filepath.Join(defaultDir(outDir), SnapshotFile)
}

func defaultDir(dir string) string {
	if strings.TrimSpace(dir) == "" {
		return "."
	}
	return dir
}

// WriteChecksums writes a sha256sum-compatible manifest for artifactPaths. Entries are
// named relative to the manifest's directory with forward slashes and sorted by name.
func WriteChecksums(checksumsPath string, artifactPaths []string) error {
	base := filepath.Dir(checksumsPath)
	type entry struct{ name, sum string }
	entries := make([]entry, 0, len(artifactPaths))
	for _, p := range artifactPaths {
		if strings.TrimSpace(p) == "" {
			continue
		}
		sum, err := fileSHA256(p)
		if err != nil {
			return fmt.Errorf("checksum read failed for %s: %w", p, err)
		}
		name, err := filepath.Rel(base, p)
		if err != nil || strings.HasPrefix(name, "..") {
			name = filepath.Base(p)
		}
		entries = append(entries, entry{name: filepath.ToSlash(name), sum: sum})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].name < entries[j].name })

	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%s  %s\n", e.sum, e.name)
	}
	if err := os.MkdirAll(base, 0o755); err != nil && base != "." {
		return err
	}
	return os.WriteFile(checksumsPath, []byte(b.String()), 0o644)
}

// VerifyChecksums re-hashes every entry of a manifest written by WriteChecksums and
// returns the names that are missing or differ.
func VerifyChecksums(checksumsPath string) ([]string, error) {
	f, err := os.Open(checksumsPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	base := filepath.Dir(checksumsPath)
	var bad []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		sum, name, ok := strings.Cut(line, "  ")
		if !ok {
			return nil, fmt.Errorf("malformed checksum line %q", line)
		}
		got, err := fileSHA256(filepath.Join(base, filepath.FromSlash(name)))
		if err != nil || got != sum {
			bad = append(bad, name)
		}
	}
	return bad, sc.Err()
}

func fileSHA256(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}
