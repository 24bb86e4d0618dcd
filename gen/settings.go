package gen

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// ParseSetting splits a "Key:sub = value" line into a lower-cased key and
// its value. ok is false for blank and comment lines.
func ParseSetting(line string) (key, value string, ok bool, err error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "!") || strings.HasPrefix(line, "#") {
		return "", "", false, nil
	}

	i := strings.IndexAny(line, "= \t")
	if i < 0 {
		return "", "", false, fmt.Errorf("gen: setting %q has no value", line)
	}
	key = strings.ToLower(strings.TrimSpace(line[:i]))
	value = strings.TrimSpace(strings.TrimLeft(line[i:], "= \t"))
	if j := strings.IndexAny(value, "!#"); j >= 0 {
		value = strings.TrimSpace(value[:j])
	}
	if key == "" || value == "" {
		return "", "", false, fmt.Errorf("gen: malformed setting %q", line)
	}
	return key, value, true, nil
}

func parseFlag(key, value string) (bool, error) {
	switch strings.ToLower(value) {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	}
	return false, fmt.Errorf("gen: %s: invalid flag value %q", key, value)
}

func parseFloat(key, value string) (float64, error) {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("gen: %s: %w", key, err)
	}
	return v, nil
}

// ReadSettingsDir feeds every line of the *.cmnd files found in dir, in
// lexical order, to g.ReadString. It returns the number of settings applied.
func ReadSettingsDir(dir string, g Generator) (int, error) {
	if _, err := os.Stat(dir); err != nil {
		return 0, fmt.Errorf("could not read generator settings: %w", err)
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.cmnd"))
	if err != nil {
		return 0, err
	}
	sort.Strings(files)

	n := 0
	for _, fname := range files {
		m, err := readSettingsFile(fname, g)
		n += m
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

func readSettingsFile(fname string, g Generator) (int, error) {
	f, err := os.Open(fname)
	if err != nil {
		return 0, fmt.Errorf("could not open settings file: %w", err)
	}
	defer f.Close()

	n := 0
	scan := bufio.NewScanner(f)
	for line := 1; scan.Scan(); line++ {
		if _, _, ok, err := ParseSetting(scan.Text()); err != nil {
			return n, fmt.Errorf("%s:%d: %w", fname, line, err)
		} else if !ok {
			continue
		}
		if err := g.ReadString(scan.Text()); err != nil {
			return n, fmt.Errorf("%s:%d: %w", fname, line, err)
		}
		n++
	}
	return n, scan.Err()
}
