package cmd

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
)

// ContextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// kongVar returns the kong variable name from the command context.
func kongVar(ctx context.Context, name string) (string, bool) {
	ktx := kongContextFrom(ctx)
	if ktx == nil || ktx.Model == nil {
		return "", false
	}

	v, ok := ktx.Model.Vars()[name]

	return v, ok
}

var errIsDir = errors.New("is a directory")

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// fileKey uniquely identifies a file by its device and inode numbers.
// This handles deduplication across symlinks, absolute/relative paths, and
// special device files.
type fileKey struct {
	dev uint64
	ino uint64
}

// makeFileKey creates a fileKey from os.FileInfo.
// Returns false if the underlying Sys() data is not of type *syscall.Stat_t.
func makeFileKey(info os.FileInfo) (key fileKey, ok bool) {
	if info == nil {
		return key, false
	}

	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true
}

// sources reads santa source from a list of files as one program.
//
// Each file is read once even when named more than once or through a
// symlink. All occurrences of "-" read stdin once, after every regular
// file. Consecutive sources are separated by a newline so that tokens never
// join across file boundaries.
type sources struct {
	names []string
	files []*os.File
	r     io.Reader
}

// openSources opens every path in order. It fails if any path cannot be
// opened.
func openSources(paths []string, stdin io.Reader) (*sources, error) {
	if len(paths) == 0 {
		paths = []string{stdinSource}
	}

	var (
		s        sources
		readers  []io.Reader
		useStdin bool
	)

	seen := make(map[fileKey]struct{})

	for _, path := range paths {
		if path == stdinSource {
			useStdin = true

			continue
		}

		file, key, keyed, err := openFile(path)
		if err != nil {
			s.Close()

			return nil, ErrReadSource.
				With(slog.String("file", path)).
				Wrap(err)
		}

		if keyed {
			if _, dup := seen[key]; dup {
				file.Close()

				continue
			}

			seen[key] = struct{}{}
		}

		s.names = append(s.names, path)
		s.files = append(s.files, file)
		readers = append(readers, file, strings.NewReader("\n"))
	}

	if useStdin {
		if stdin == nil {
			stdin = os.Stdin
		}

		s.names = append(s.names, stdinSource)
		readers = append(readers, stdin)
	}

	s.r = io.MultiReader(readers...)

	return &s, nil
}

// openFile resolves path and opens it. The key identifies the file when
// keyed is true.
func openFile(path string) (file *os.File, key fileKey, keyed bool, err error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, key, false, err
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, key, false, err
	}

	file, err = os.Open(resolved)
	if err != nil {
		return nil, key, false, err
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()

		return nil, key, false, err
	}

	if info.IsDir() {
		file.Close()

		return nil, key, false, errIsDir
	}

	key, keyed = makeFileKey(info)

	return file, key, keyed, nil
}

// Names returns the sources in read order.
func (s *sources) Names() []string { return s.names }

// Read implements io.Reader over all sources in order.
func (s *sources) Read(p []byte) (int, error) { return s.r.Read(p) }

// Close closes every opened file.
func (s *sources) Close() error {
	var errs []error

	for _, f := range s.files {
		errs = append(errs, f.Close())
	}

	s.files = nil

	return errors.Join(errs...)
}
