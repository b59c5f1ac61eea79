package romset

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-sixtyfour/sixtyfour/engine"
)

func image(size int, fill byte) []byte {
	return bytes.Repeat([]byte{fill}, size)
}

func fullSet() map[string][]byte {
	return map[string][]byte{
		"chargen.bin": image(CharsSize, 0xC1),
		"basic.bin":   image(BasicSize, 0xB2),
		"kernal.bin":  image(KernalSize, 0xE3),
	}
}

func writeDir(t *testing.T, files map[string][]byte) string {
	t.Helper()
	dir := t.TempDir()
	for name, data := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0644))
	}
	return dir
}

func writeZip(t *testing.T, files map[string][]byte) string {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	_, err := w.Create("roms/")
	require.NoError(t, err)
	for name, data := range files {
		fw, err := w.Create("roms/" + name)
		require.NoError(t, err)
		_, err = fw.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	path := filepath.Join(t.TempDir(), "c64.zip")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
	return path
}

func writeTarGz(t *testing.T, files map[string][]byte) string {
	t.Helper()
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gw)
	for name, data := range files {
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name:     name,
			Mode:     0644,
			Size:     int64(len(data)),
			Typeflag: tar.TypeReg,
		}))
		_, err := tw.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gw.Close())

	path := filepath.Join(t.TempDir(), "c64.tar.gz")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
	return path
}

func assertFullSet(t *testing.T, s *Set) {
	t.Helper()
	assert.Equal(t, []Kind{KindChars, KindBasic, KindKernal}, s.Loaded())
	assert.Equal(t, byte(0xC1), s.Chars[0])
	assert.Equal(t, byte(0xB2), s.Basic[BasicSize-1])
	assert.Equal(t, byte(0xE3), s.Kernal[0])

	roms := s.ROMs()
	assert.Len(t, roms.Chars, CharsSize)
	assert.Len(t, roms.Basic, BasicSize)
	assert.Len(t, roms.Kernal, KernalSize)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		want Kind
	}{
		{"chargen", KindChars},
		{"characters.901225-01.bin", KindChars},
		{"BASIC.ROM", KindBasic},
		{"roms/basic.901226-01.bin", KindBasic},
		{"kernal.901227-03.bin", KindKernal},
		{"KERNEL.bin", KindKernal},
		{"1541.rom", KindUnknown},
		{"readme.txt", KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.name))
		})
	}
}

func TestKind(t *testing.T) {
	assert.Equal(t, "chars", KindChars.String())
	assert.Equal(t, "kernal", KindKernal.String())
	assert.Equal(t, "unknown", KindUnknown.String())
	assert.Equal(t, 0, KindUnknown.Size())
}

func TestLoad_Directory(t *testing.T) {
	files := fullSet()
	files["readme.txt"] = []byte("not a rom")
	dir := writeDir(t, files)

	s, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, s.Source)
	assertFullSet(t, s)
}

func TestLoad_PartialDirectory(t *testing.T) {
	dir := writeDir(t, map[string][]byte{"basic.bin": image(BasicSize, 1)})

	s, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, []Kind{KindBasic}, s.Loaded())
	assert.Nil(t, s.Chars)
}

func TestLoad_DuplicateKeepsFirst(t *testing.T) {
	dir := writeDir(t, map[string][]byte{
		"chargen":   image(CharsSize, 1),
		"chars.rom": image(CharsSize, 2),
	})

	s, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, byte(1), s.Chars[0])
}

func TestLoad_Zip(t *testing.T) {
	s, err := Load(writeZip(t, fullSet()))
	require.NoError(t, err)
	assertFullSet(t, s)
}

func TestLoad_TarGz(t *testing.T) {
	s, err := Load(writeTarGz(t, fullSet()))
	require.NoError(t, err)
	assertFullSet(t, s)
}

func TestLoad_SingleGzip(t *testing.T) {
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	_, err := gw.Write(image(KernalSize, 0xE3))
	require.NoError(t, err)
	require.NoError(t, gw.Close())
	path := filepath.Join(t.TempDir(), "kernal.bin.gz")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []Kind{KindKernal}, s.Loaded())
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing path", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope"))
		assert.ErrorIs(t, err, fs.ErrNotExist)
	})

	t.Run("empty directory", func(t *testing.T) {
		_, err := Load(t.TempDir())
		assert.ErrorIs(t, err, ErrMissingROM)
	})

	t.Run("archive without roms", func(t *testing.T) {
		_, err := Load(writeZip(t, map[string][]byte{"readme.txt": []byte("hi")}))
		assert.ErrorIs(t, err, ErrMissingROM)
	})

	t.Run("short image", func(t *testing.T) {
		dir := writeDir(t, map[string][]byte{"chargen": image(2048, 0)})
		_, err := Load(dir)
		assert.ErrorIs(t, err, ErrBadSize)
	})

	t.Run("oversized image in archive", func(t *testing.T) {
		_, err := Load(writeZip(t, map[string][]byte{"kernal.bin": image(KernalSize+1, 0)}))
		assert.ErrorIs(t, err, ErrBadSize)
	})

	t.Run("unknown file format", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "roms.txt")
		require.NoError(t, os.WriteFile(path, []byte("plain text"), 0644))
		_, err := Load(path)
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})

	for _, name := range []string{"fake.7z", "fake.rar"} {
		t.Run("invalid "+name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, os.WriteFile(path, []byte("not an archive"), 0644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name   string
		header []byte
		path   string
		want   formatType
	}{
		{"zip magic", []byte{0x50, 0x4B, 0x03, 0x04, 0}, "roms", formatZIP},
		{"empty zip magic", []byte{0x50, 0x4B, 0x05, 0x06}, "roms", formatZIP},
		{"7z magic", []byte{0x37, 0x7A, 0xBC, 0xAF, 0x27, 0x1C, 0}, "roms", format7z},
		{"gzip magic", []byte{0x1F, 0x8B, 8}, "roms", formatGzip},
		{"rar magic", []byte("Rar!\x1a\x07"), "roms", formatRAR},
		{"partial 7z magic", []byte{0x37, 0x7A, 0xBC}, "roms", formatUnknown},
		{"zip extension", nil, "ROMS.ZIP", formatZIP},
		{"tgz extension", nil, "roms.tgz", formatGzip},
		{"rar extension", nil, "roms.rar", formatRAR},
		{"unknown", []byte("hello"), "roms.bin", formatUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, detectFormat(tt.header, tt.path))
		})
	}
}

func TestLoadFiles(t *testing.T) {
	dir := writeDir(t, fullSet())
	path := func(name string) string { return filepath.Join(dir, name) }

	t.Run("all images", func(t *testing.T) {
		s, err := LoadFiles(path("chargen.bin"), path("basic.bin"), path("kernal.bin"))
		require.NoError(t, err)
		assertFullSet(t, s)
	})

	t.Run("names are not used for classification", func(t *testing.T) {
		s, err := LoadFiles("", path("kernal.bin"), "")
		require.NoError(t, err)
		assert.Equal(t, []Kind{KindBasic}, s.Loaded())
	})

	t.Run("nothing requested", func(t *testing.T) {
		s, err := LoadFiles("", "", "")
		require.NoError(t, err)
		assert.Empty(t, s.Loaded())
	})

	t.Run("wrong size", func(t *testing.T) {
		_, err := LoadFiles(path("basic.bin"), "", "")
		assert.ErrorIs(t, err, ErrBadSize)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFiles("", "", path("missing.bin"))
		assert.ErrorIs(t, err, fs.ErrNotExist)
	})
}

func TestSet_ROMsNil(t *testing.T) {
	var s *Set
	assert.Equal(t, engine.ROMs{}, s.ROMs())
}
