package installer

import (
	"archive/zip"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// InstallTheme installs a theme from a local zip path or an http(s) URL into
// dataDir. The archive must contain exactly one top-level directory with a
// manifest.json inside; anything else is rejected and partial extractions
// are rolled back. An existing theme of the same name is only replaced with
// force set. Returns the theme name.
func InstallTheme(source, dataDir string, force bool) (string, error) {
	zipPath := source
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		downloaded, err := downloadZip(source)
		if err != nil {
			return "", err
		}
		defer os.Remove(downloaded)
		zipPath = downloaded
	}

	archive, err := zip.OpenReader(zipPath)
	if err != nil {
		return "", fmt.Errorf("failed to open zip: %w", err)
	}
	defer archive.Close()

	themeName, err := topLevelDir(&archive.Reader)
	if err != nil {
		return "", err
	}

	dest := filepath.Join(dataDir, themeName)
	if _, err := os.Stat(dest); err == nil {
		if !force {
			return "", fmt.Errorf("theme %q already exists; use --force to overwrite", themeName)
		}
		if err := os.RemoveAll(dest); err != nil {
			return "", fmt.Errorf("failed to remove existing theme: %w", err)
		}
	}

	if err := extractZip(&archive.Reader, dataDir); err != nil {
		os.RemoveAll(dest)
		return "", err
	}

	if _, err := os.Stat(filepath.Join(dest, "manifest.json")); err != nil {
		os.RemoveAll(dest)
		return "", fmt.Errorf("theme %q has no manifest.json", themeName)
	}

	return themeName, nil
}

// downloadZip fetches a zip archive to a temporary file and returns its path.
func downloadZip(url string) (string, error) {
	resp, err := http.Get(url)
	if err != nil {
		return "", fmt.Errorf("failed to download %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to download %s: %s", url, resp.Status)
	}

	tmp, err := os.CreateTemp("", "ringring-theme-*.zip")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer tmp.Close()

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to save download: %w", err)
	}
	return tmp.Name(), nil
}

// topLevelDir finds the single top-level directory name in the archive.
func topLevelDir(archive *zip.Reader) (string, error) {
	tops := make(map[string]bool)
	for _, f := range archive.File {
		rel, ok := safeRelPath(f.Name)
		if !ok || rel == "" {
			continue
		}
		first := strings.SplitN(rel, "/", 2)[0]
		if first != "" {
			tops[first] = true
		}
	}

	if len(tops) == 0 {
		return "", fmt.Errorf("zip is empty or contains no files")
	}
	if len(tops) > 1 {
		names := make([]string, 0, len(tops))
		for name := range tops {
			names = append(names, name)
		}
		sort.Strings(names)
		return "", fmt.Errorf("zip must contain exactly one top-level directory, found %d: %s",
			len(names), strings.Join(names, ", "))
	}
	for name := range tops {
		return name, nil
	}
	return "", nil
}

// extractZip extracts every entry under destParent, skipping entries that
// would escape it.
func extractZip(archive *zip.Reader, destParent string) error {
	for _, f := range archive.File {
		rel, ok := safeRelPath(f.Name)
		if !ok || rel == "" {
			continue
		}
		outPath := filepath.Join(destParent, filepath.FromSlash(rel))

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(outPath, 0755); err != nil {
				return fmt.Errorf("failed to create %s: %w", outPath, err)
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", filepath.Dir(outPath), err)
		}
		if err := extractFile(f, outPath); err != nil {
			return err
		}
	}
	return nil
}

func extractFile(f *zip.File, outPath string) error {
	in, err := f.Open()
	if err != nil {
		return fmt.Errorf("failed to read zip entry %s: %w", f.Name, err)
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", outPath, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("failed to extract %s: %w", f.Name, err)
	}
	return nil
}

// safeRelPath normalizes a zip entry name and rejects absolute paths and
// parent-directory escapes.
func safeRelPath(name string) (string, bool) {
	rel := strings.TrimPrefix(strings.ReplaceAll(name, "\\", "/"), "/")
	rel = strings.TrimSuffix(rel, "/")
	if rel == "" {
		return "", true
	}
	for _, part := range strings.Split(rel, "/") {
		if part == ".." {
			return "", false
		}
	}
	return rel, true
}
