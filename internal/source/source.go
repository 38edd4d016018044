// Package source reads raw access-log lines from plain, gzip or zstd files.
package source

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Egor213/LogKeeper/internal/accesslog"
	errorsUtils "github.com/Egor213/LogKeeper/pkg/errors"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	log "github.com/sirupsen/logrus"
)

const maxLineSize = 1 << 20

var ErrNoFiles = errors.New("no log files found")

// Provider yields the tokenized lines of a log location.
type Provider interface {
	Lines(ctx context.Context, paths ...string) ([][]string, error)
}

type FileProvider struct {
	dir string
	ext string
}

// NewFileProvider reads dir when Lines is called without paths. dir may be a
// single file or a directory whose files ending in ext are read in name order.
func NewFileProvider(dir, ext string) *FileProvider {
	return &FileProvider{dir: dir, ext: ext}
}

func (p *FileProvider) Lines(ctx context.Context, paths ...string) ([][]string, error) {
	if len(paths) == 0 {
		paths = []string{p.dir}
	}

	files, err := p.resolve(paths)
	if err != nil {
		return nil, err
	}

	var lines [][]string
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		got, err := readFile(f)
		if err != nil {
			return nil, err
		}
		log.WithFields(log.Fields{"file": f, "lines": len(got)}).Debug("Read log file")
		lines = append(lines, got...)
	}
	return lines, nil
}

func (p *FileProvider) resolve(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, errorsUtils.WrapPathErr(err)
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}

		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, errorsUtils.WrapPathErr(err)
		}
		var found []string
		for _, e := range entries {
			if e.IsDir() || !p.matches(e.Name()) {
				continue
			}
			found = append(found, filepath.Join(path, e.Name()))
		}
		sort.Strings(found)
		files = append(files, found...)
	}

	if len(files) == 0 {
		return nil, errorsUtils.WrapPathErrf(ErrNoFiles, "%v with extension %q", paths, p.ext)
	}
	return files, nil
}

// matches reports whether name carries the configured extension, possibly
// followed by a compression suffix.
func (p *FileProvider) matches(name string) bool {
	if strings.HasSuffix(name, p.ext) {
		return true
	}
	for _, suffix := range []string{".gz", ".zst", ".zstd"} {
		if base, ok := strings.CutSuffix(name, suffix); ok {
			return strings.HasSuffix(base, p.ext)
		}
	}
	return false
}

func readFile(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}
	defer f.Close()

	r, closeFn, err := decoder(path, f)
	if err != nil {
		return nil, errorsUtils.WrapPathErrf(err, "open %s", path)
	}
	defer closeFn()

	lines, err := ReadLines(r)
	if err != nil {
		return nil, errorsUtils.WrapPathErrf(err, "read %s", path)
	}
	return lines, nil
}

func decoder(path string, r io.Reader) (io.Reader, func(), error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, nil, err
		}
		return zr, func() { zr.Close() }, nil
	case ".zst", ".zstd":
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, err
		}
		return zr, zr.Close, nil
	default:
		return r, func() {}, nil
	}
}

// ReadLines tokenizes every line of r, blank ones included, so line i of the
// result is physical line i+1. A final line break does not add an empty line.
func ReadLines(r io.Reader) ([][]string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var lines [][]string
	for sc.Scan() {
		lines = append(lines, accesslog.Tokenize(sc.Text()))
	}
	return lines, sc.Err()
}
