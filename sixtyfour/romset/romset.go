// Package romset loads the character, BASIC and kernal ROM images handed to
// an engine at creation. A set can come from a directory, from individual
// files, or from a ZIP, 7z, RAR or tar.gz archive.
package romset

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/valerio/go-sixtyfour/sixtyfour/engine"
	"golang.org/x/sync/errgroup"
)

// Expected image sizes in bytes.
const (
	CharsSize  = 4096
	BasicSize  = 8192
	KernalSize = 8192
)

var (
	// ErrMissingROM is returned when a source holds no recognisable ROM image.
	ErrMissingROM = errors.New("no ROM image found")
	// ErrBadSize is returned when an image does not have the size of its kind.
	ErrBadSize = errors.New("unexpected ROM size")
	// ErrUnsupportedFormat is returned for files that are neither a
	// directory nor a known archive.
	ErrUnsupportedFormat = errors.New("unsupported ROM set format")
)

var (
	magicZIP    = []byte{0x50, 0x4B, 0x03, 0x04}
	magicZIPEnd = []byte{0x50, 0x4B, 0x05, 0x06}
	magic7z     = []byte{0x37, 0x7A, 0xBC, 0xAF, 0x27, 0x1C}
	magicGzip   = []byte{0x1F, 0x8B}
	magicRAR    = []byte{0x52, 0x61, 0x72, 0x21}
)

// Kind identifies which slot of the set an image fills.
type Kind int

const (
	KindUnknown Kind = iota
	KindChars
	KindBasic
	KindKernal
)

func (k Kind) String() string {
	switch k {
	case KindChars:
		return "chars"
	case KindBasic:
		return "basic"
	case KindKernal:
		return "kernal"
	default:
		return "unknown"
	}
}

// Size is the expected image size for the kind.
func (k Kind) Size() int {
	switch k {
	case KindChars:
		return CharsSize
	case KindBasic:
		return BasicSize
	case KindKernal:
		return KernalSize
	default:
		return 0
	}
}

// Classify guesses the kind of a ROM image from its file name.
func Classify(name string) Kind {
	base := strings.ToLower(filepath.Base(name))
	switch {
	case strings.Contains(base, "char"):
		return KindChars
	case strings.Contains(base, "basic"):
		return KindBasic
	case strings.Contains(base, "kern"):
		return KindKernal
	default:
		return KindUnknown
	}
}

// Set is a loaded group of ROM images. Any slot may be empty.
type Set struct {
	Source string
	Chars  engine.ROMImage
	Basic  engine.ROMImage
	Kernal engine.ROMImage
}

// ROMs converts the set into the engine's descriptor form.
func (s *Set) ROMs() engine.ROMs {
	if s == nil {
		return engine.ROMs{}
	}
	return engine.ROMs{Chars: s.Chars, Basic: s.Basic, Kernal: s.Kernal}
}

// Loaded lists the kinds present in the set.
func (s *Set) Loaded() []Kind {
	var kinds []Kind
	for _, k := range []Kind{KindChars, KindBasic, KindKernal} {
		if len(s.slot(k)) > 0 {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

func (s *Set) slot(k Kind) engine.ROMImage {
	switch k {
	case KindChars:
		return s.Chars
	case KindBasic:
		return s.Basic
	case KindKernal:
		return s.Kernal
	default:
		return nil
	}
}

func (s *Set) set(k Kind, data []byte) {
	switch k {
	case KindChars:
		s.Chars = data
	case KindBasic:
		s.Basic = data
	case KindKernal:
		s.Kernal = data
	}
}

// add reads one entry into its slot. Unclassified names are skipped and a
// kind that is already filled keeps its first image.
func (s *Set) add(name string, r io.Reader) error {
	k := Classify(name)
	if k == KindUnknown {
		return nil
	}
	if len(s.slot(k)) > 0 {
		slog.Warn("Duplicate ROM image ignored", "kind", k, "name", name)
		return nil
	}
	data, err := readImage(r, k)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	s.set(k, data)
	slog.Debug("Loaded ROM image", "kind", k, "name", name, "size", len(data))
	return nil
}

// Load reads a ROM set from a directory or an archive. Images are matched by
// name; a source without any recognisable image is an error.
func Load(path string) (*Set, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ROM set: %w", err)
	}

	s := &Set{Source: path}
	if info.IsDir() {
		err = s.loadDir(path)
	} else {
		err = s.loadArchive(path)
	}
	if err != nil {
		return nil, err
	}

	if len(s.Loaded()) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrMissingROM, path)
	}
	slog.Info("Loaded ROM set", "source", path, "images", s.Loaded())
	return s, nil
}

func (s *Set) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read ROM directory: %w", err)
	}
	for _, e := range entries {
		if !e.Type().IsRegular() || Classify(e.Name()) == KindUnknown {
			continue
		}
		if err := s.addFile(filepath.Join(dir, e.Name())); err != nil {
			return err
		}
	}
	return nil
}

func (s *Set) addFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open ROM: %w", err)
	}
	defer f.Close()
	return s.add(filepath.Base(path), f)
}

type formatType int

const (
	formatUnknown formatType = iota
	formatZIP
	format7z
	formatGzip
	formatRAR
)

func (s *Set) loadArchive(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open ROM set: %w", err)
	}
	header := make([]byte, 16)
	n, err := f.Read(header)
	f.Close()
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to read file header: %w", err)
	}

	switch detectFormat(header[:n], path) {
	case formatZIP:
		return s.loadZIP(path)
	case format7z:
		return s.load7z(path)
	case formatGzip:
		return s.loadGzip(path)
	case formatRAR:
		return s.loadRAR(path)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// detectFormat prefers magic bytes and falls back to the file extension.
func detectFormat(header []byte, path string) formatType {
	switch {
	case bytes.HasPrefix(header, magicZIP), bytes.HasPrefix(header, magicZIPEnd):
		return formatZIP
	case bytes.HasPrefix(header, magicRAR):
		return formatRAR
	case bytes.HasPrefix(header, magic7z):
		return format7z
	case bytes.HasPrefix(header, magicGzip):
		return formatGzip
	}

	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".zip"):
		return formatZIP
	case strings.HasSuffix(lower, ".7z"):
		return format7z
	case strings.HasSuffix(lower, ".rar"):
		return formatRAR
	case strings.HasSuffix(lower, ".tar.gz"), strings.HasSuffix(lower, ".tgz"), strings.HasSuffix(lower, ".gz"):
		return formatGzip
	}
	return formatUnknown
}

// LoadFiles reads individual images concurrently. Empty paths leave their
// slot empty.
func LoadFiles(chars, basic, kernal string) (*Set, error) {
	order := []Kind{KindChars, KindBasic, KindKernal}
	paths := []string{chars, basic, kernal}
	results := make([][]byte, len(order))

	var g errgroup.Group
	for i, k := range order {
		if paths[i] == "" {
			continue
		}
		g.Go(func() error {
			data, err := readFile(paths[i], k)
			if err != nil {
				return fmt.Errorf("failed to load %s ROM: %w", k, err)
			}
			results[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s := &Set{}
	for i, k := range order {
		s.set(k, results[i])
	}
	if loaded := s.Loaded(); len(loaded) > 0 {
		slog.Info("Loaded ROM files", "images", loaded)
	}
	return s, nil
}

func readFile(path string, k Kind) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readImage(f, k)
}

// readImage reads at most one byte past the expected size so oversized
// inputs are rejected without being read whole.
func readImage(r io.Reader, k Kind) ([]byte, error) {
	want := k.Size()
	data, err := io.ReadAll(io.LimitReader(r, int64(want)+1))
	if err != nil {
		return nil, err
	}
	if len(data) != want {
		if len(data) > want {
			return nil, fmt.Errorf("%w: %s image larger than %d bytes", ErrBadSize, k, want)
		}
		return nil, fmt.Errorf("%w: %s image is %d bytes, want %d", ErrBadSize, k, len(data), want)
	}
	return data, nil
}
