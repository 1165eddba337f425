package fonts

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

var ErrFontLoad = errors.New("unable to load font")

// probeText must render with visible ink for a font to be usable.
const probeText = "0123456789:"

// Font is a parsed font file at a fixed pixel size. Faces are not safe for
// concurrent use, so each goroutine should take its own from NewFace.
type Font struct {
	Path string
	Size int

	tt *truetype.Font
	ot *opentype.Font
}

// Load resolves name (see Find), parses it and checks that it can render
// digits at sizePx.
func Load(name string, sizePx int) (*Font, error) {
	if sizePx <= 0 {
		return nil, fmt.Errorf("%w: size %d", ErrFontLoad, sizePx)
	}
	path, err := Find(name)
	if err != nil {
		return nil, fmt.Errorf("%w '%s': %v", ErrFontLoad, name, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w '%s': %v", ErrFontLoad, path, err)
	}
	f, err := Parse(data, sizePx)
	if err != nil {
		return nil, fmt.Errorf("%w '%s' and size %d: %v", ErrFontLoad, path, sizePx, err)
	}
	f.Path = path
	return f, nil
}

// Parse builds a Font from raw TrueType/OpenType bytes. Plain TrueType goes
// through freetype; CFF-flavoured OpenType and collections go through sfnt.
func Parse(data []byte, sizePx int) (*Font, error) {
	f := &Font{Size: sizePx}
	if tt, err := truetype.Parse(data); err == nil {
		f.tt = tt
	} else {
		ot, oerr := parseOpenType(data)
		if oerr != nil {
			return nil, fmt.Errorf("truetype: %v; opentype: %v", err, oerr)
		}
		f.ot = ot
	}

	face, err := f.NewFace()
	if err != nil {
		return nil, err
	}
	defer face.Close()
	if b, _ := font.BoundString(face, probeText); b.Max.X <= b.Min.X || b.Max.Y <= b.Min.Y {
		return nil, fmt.Errorf("font renders no glyphs for %q", probeText)
	}
	return f, nil
}

func parseOpenType(data []byte) (*opentype.Font, error) {
	ot, err := opentype.Parse(data)
	if err == nil {
		return ot, nil
	}
	coll, cerr := opentype.ParseCollection(data)
	if cerr != nil {
		return nil, err
	}
	return coll.Font(0)
}

// NewFace returns a fresh face at the font's pixel size (72 DPI, so points
// equal pixels).
func (f *Font) NewFace() (font.Face, error) {
	if f.tt != nil {
		return truetype.NewFace(f.tt, &truetype.Options{
			Size:    float64(f.Size),
			DPI:     72,
			Hinting: font.HintingFull,
		}), nil
	}
	return opentype.NewFace(f.ot, &opentype.FaceOptions{
		Size:    float64(f.Size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// Name reports the family name when the font carries one.
func (f *Font) Name() string {
	if f.tt != nil {
		return f.tt.Name(truetype.NameIDFontFullName)
	}
	var buf sfnt.Buffer
	name, err := f.ot.Name(&buf, sfnt.NameIDFull)
	if err != nil {
		return filepath.Base(f.Path)
	}
	return name
}

// Find returns name unchanged when it names an existing file. Otherwise a
// bare filename is looked up, case-insensitively, in the platform font
// directories.
func Find(name string) (string, error) {
	if fi, err := os.Stat(name); err == nil && !fi.IsDir() {
		return name, nil
	}
	if filepath.Base(name) != name {
		return "", fmt.Errorf("file %s not found", name)
	}

	for _, dir := range searchDirs() {
		if found := findInDir(dir, name); found != "" {
			return found, nil
		}
	}
	return "", fmt.Errorf("%s not found in system font directories", name)
}

func findInDir(dir, name string) string {
	var found string
	filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() && strings.EqualFold(d.Name(), name) {
			found = path
			return filepath.SkipAll
		}
		return nil
	})
	return found
}

func searchDirs() []string {
	var dirs []string
	if windir := os.Getenv("WINDIR"); windir != "" {
		dirs = append(dirs, filepath.Join(windir, "Fonts"))
	}
	home, _ := os.UserHomeDir()
	dirs = append(dirs, "/Library/Fonts", "/System/Library/Fonts")
	if home != "" {
		dirs = append(dirs, filepath.Join(home, "Library", "Fonts"))
	}

	xdg := os.Getenv("XDG_DATA_DIRS")
	if xdg == "" {
		xdg = "/usr/local/share:/usr/share"
	}
	for _, d := range filepath.SplitList(xdg) {
		dirs = append(dirs, filepath.Join(d, "fonts"))
	}
	if home != "" {
		dirs = append(dirs,
			filepath.Join(home, ".local", "share", "fonts"),
			filepath.Join(home, ".fonts"),
		)
	}
	return dirs
}
