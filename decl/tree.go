package decl

import (
	"cmp"
	"context"
	"encoding/binary"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strconv"
	"strings"

	"github.com/klauspost/readahead"
	"github.com/zeebo/xxh3"
	"golang.org/x/sync/errgroup"

	"github.com/ardnew/qjsc/compiler"
	"github.com/ardnew/qjsc/pkg"
)

// File name patterns recognized in a project directory.
const (
	DeclarationExt = ".qjs.yaml"
	TranslationExt = ".l10n.yaml"
	ImportExt      = ".js"
	InitFile       = ".core.js"
)

// Import is a foreign code module found in a project directory.
type Import struct {
	Name string // slash-separated path relative to the project directory
	Path string
	Code string
}

// Tree is the content of one or more project directories.
type Tree struct {
	Files        []*File
	Imports      []Import
	Translations []*Translation
	// InitJS is the concatenated platform initialization text of every
	// project directory, in directory order.
	InitJS string

	sums []sum
}

type sum struct {
	key  string
	hash uint64
}

type kind int

const (
	kindDeclaration kind = iota
	kindTranslation
	kindImport
	kindInit
)

type job struct {
	path string
	name string
	kind kind
}

// LoadTree reads every recognized file below dirs. Files are read and
// decoded concurrently; the result is sorted and does not depend on the
// order in which files were read. Hidden files and directories are
// skipped, except the platform initialization file at the top of each
// directory.
func LoadTree(ctx context.Context, dirs ...string) (*Tree, error) {
	var jobs []job

	for _, dir := range dirs {
		found, err := scan(dir)
		if err != nil {
			return nil, err
		}

		jobs = append(jobs, found...)
	}

	files := make([]*File, len(jobs))
	translations := make([]*Translation, len(jobs))
	imports := make([]*Import, len(jobs))
	inits := make([]string, len(jobs))
	sums := make([]sum, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, j := range jobs {
		g.Go(func() error {
			data, err := readFile(ctx, j.path)
			if err != nil {
				return err
			}

			sums[i] = sum{key: strconv.Itoa(int(j.kind)) + ":" + j.name, hash: xxh3.Hash(data)}

			switch j.kind {
			case kindDeclaration:
				files[i], err = ParseFile(ctx, j.path, data)
			case kindTranslation:
				translations[i], err = ParseTranslation(ctx, j.path, data)
			case kindImport:
				imports[i] = &Import{Name: j.name, Path: j.path, Code: string(data)}
			case kindInit:
				inits[i] = string(data)
			}

			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	t := &Tree{sums: sums}

	for i := range jobs {
		switch {
		case files[i] != nil:
			t.Files = append(t.Files, files[i])
		case translations[i] != nil:
			t.Translations = append(t.Translations, translations[i])
		case imports[i] != nil:
			t.Imports = append(t.Imports, *imports[i])
		}
	}

	t.InitJS = strings.Join(slices.DeleteFunc(inits, func(s string) bool { return s == "" }), "")

	slices.SortStableFunc(t.Files, func(a, b *File) int { return cmp.Compare(a.Path, b.Path) })
	slices.SortStableFunc(t.Imports, func(a, b Import) int { return cmp.Compare(a.Name, b.Name) })
	slices.SortStableFunc(t.Translations, func(a, b *Translation) int {
		return cmp.Compare(a.Path, b.Path)
	})

	return t, nil
}

// scan lists the recognized files below dir. Jobs are returned in
// directory walk order.
func scan(dir string) ([]job, error) {
	var jobs []job

	if _, err := os.Stat(filepath.Join(dir, InitFile)); err == nil {
		jobs = append(jobs, job{path: filepath.Join(dir, InitFile), name: InitFile, kind: kindInit})
	}

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		name := d.Name()
		if path != dir && strings.HasPrefix(name, ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}

			return nil
		}

		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}

		rel = filepath.ToSlash(rel)

		switch {
		case strings.HasSuffix(name, DeclarationExt):
			jobs = append(jobs, job{path: path, name: rel, kind: kindDeclaration})
		case strings.HasSuffix(name, TranslationExt):
			jobs = append(jobs, job{path: path, name: rel, kind: kindTranslation})
		case strings.HasSuffix(name, ImportExt):
			jobs = append(jobs, job{path: path, name: rel, kind: kindImport})
		}

		return nil
	})
	if err != nil {
		return nil, pkg.ErrReadInput.Wrap(err).Wrapf("%s", dir)
	}

	return jobs, nil
}

func readFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, pkg.ErrReadInput.Wrap(err)
	}
	defer f.Close()

	ra := readahead.NewReader(f)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, pkg.ErrReadInput.Wrap(err).Wrapf("%s", path)
	}

	return data, nil
}

// Register adds the content of t to s: components of every declaration
// file, then imports, then translations.
func Register(s *compiler.Session, t *Tree) error {
	for _, f := range t.Files {
		for _, c := range f.Components {
			body, err := NewBody(c)
			if err != nil {
				return pkg.ErrInvalidFormat.Wrap(err).Wrapf("%s", f.Path)
			}

			name := c.Name
			if f.Package != "" {
				name = f.Package + "." + c.Name
			}

			if err := s.AddComponent(name, body, c.IsDeclaration()); err != nil {
				return compiler.WrapError(err).With(slog.String("file", f.Path))
			}
		}
	}

	for _, imp := range t.Imports {
		if err := s.AddImport(imp.Name, imp.Code); err != nil {
			return compiler.WrapError(err).With(slog.String("file", imp.Path))
		}
	}

	for _, tr := range t.Translations {
		if err := s.AddTranslation(tr); err != nil {
			return err
		}
	}

	return nil
}

// BuildID returns a short identifier derived from the content and relative
// names of every file in t.
func BuildID(t *Tree) string {
	sums := slices.Clone(t.sums)
	slices.SortFunc(sums, func(a, b sum) int {
		return cmp.Or(cmp.Compare(a.key, b.key), cmp.Compare(a.hash, b.hash))
	})

	h := xxh3.New()

	var buf [8]byte

	for _, s := range sums {
		_, _ = h.WriteString(s.key)
		binary.LittleEndian.PutUint64(buf[:], s.hash)
		_, _ = h.Write(buf[:])
	}

	return strconv.FormatUint(h.Sum64(), 36)
}
