package source

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/domain"
)

// Requirement names one required source file and the filenames it may appear under
type Requirement struct {
	Name    string   // logical name, e.g. "products"
	Aliases []string // tried in order inside every candidate directory
}

// NewRequirement builds a requirement whose aliases are the casing variants of filename
// with each extension in exts. With no exts the filename's own extension is used.
func NewRequirement(name, filename string, exts ...string) Requirement {
	return Requirement{Name: name, Aliases: CaseVariants(filename, exts...)}
}

// CaseVariants returns the filename as given followed by the casing conventions seen in
// the wild, e.g. FCD_PRODUTOS.csv, FCD_produtos.csv, fcd_produtos.csv.
func CaseVariants(filename string, exts ...string) []string {
	ext := filepath.Ext(filename)
	stem := strings.TrimSuffix(filename, ext)
	if len(exts) == 0 {
		exts = []string{ext}
	}

	stems := []string{stem, strings.ToUpper(stem)}
	if i := strings.Index(stem, "_"); i > 0 {
		stems = append(stems, strings.ToUpper(stem[:i])+"_"+strings.ToLower(stem[i+1:]))
	}
	stems = append(stems, strings.ToLower(stem))

	seen := make(map[string]struct{})
	var out []string
	for _, e := range exts {
		e = strings.ToLower(e)
		if e != "" && !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		for i, s := range stems {
			name := s + e
			if i == 0 && e == strings.ToLower(ext) {
				name = s + ext
			}
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			out = append(out, name)
		}
	}
	return out
}

// Attempt records one (directory, alias) probe made by the resolver
type Attempt struct {
	Dir         string `json:"dir"`
	Requirement string `json:"requirement"`
	Alias       string `json:"alias"`
	Found       bool   `json:"found"`
	CaseFolded  bool   `json:"case_folded,omitempty"`
}

// Resolution is the outcome of a successful Resolve call.
type Resolution struct {
	Dir      string            `json:"dir"`
	Paths    map[string]string `json:"paths"`
	Attempts []Attempt         `json:"attempts"`
}

// Path returns the resolved path for a requirement name
func (r *Resolution) Path(name string) string {
	return r.Paths[name]
}

// Options controls how candidate directories are built
type Options struct {
	ProjectRoot string
	BaseDir     string
	ExtraDirs   []string
}

// Resolver locates source files across an ordered list of candidate directories.
type Resolver struct {
	dirs    []string
	workDir string
	readDir func(string) ([]fs.DirEntry, error)
}

// NewResolver builds the candidate list: <root>/<base>, <base>, data, ./data, <cwd>/<base>,
// then the extra directories. Duplicates (by absolute path) keep their first position.
func NewResolver(opts Options) *Resolver {
	cwd, _ := os.Getwd()
	return &Resolver{
		dirs:    CandidateDirs(opts, cwd),
		workDir: cwd,
		readDir: os.ReadDir,
	}
}

// NewResolverWithDirs builds a resolver over an explicit ordered directory list.
func NewResolverWithDirs(dirs ...string) *Resolver {
	cwd, _ := os.Getwd()
	return &Resolver{
		dirs:    dedupeDirs(dirs, cwd),
		workDir: cwd,
		readDir: os.ReadDir,
	}
}

// Dirs returns the candidate directories in search order
func (r *Resolver) Dirs() []string {
	return append([]string(nil), r.dirs...)
}

// CandidateDirs returns the ordered, de-duplicated candidate directories for opts.
func CandidateDirs(opts Options, cwd string) []string {
	base := strings.TrimSpace(opts.BaseDir)
	if base == "" {
		base = "data"
	}

	var dirs []string
	if opts.ProjectRoot != "" && !filepath.IsAbs(base) {
		dirs = append(dirs, filepath.Join(opts.ProjectRoot, base))
	}
	dirs = append(dirs, base, "data", "./data")
	if cwd != "" && !filepath.IsAbs(base) {
		dirs = append(dirs, filepath.Join(cwd, base))
	}
	dirs = append(dirs, opts.ExtraDirs...)

	return dedupeDirs(dirs, cwd)
}

func dedupeDirs(dirs []string, cwd string) []string {
	seen := make(map[string]struct{}, len(dirs))
	out := make([]string, 0, len(dirs))
	for _, d := range dirs {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}
		key := filepath.Clean(d)
		if !filepath.IsAbs(key) && cwd != "" {
			key = filepath.Join(cwd, key)
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, filepath.Clean(d))
	}
	return out
}

// Resolve returns the first candidate directory in which every requirement is present.
// A directory that satisfies only some requirements is skipped, never partially used.
func (r *Resolver) Resolve(reqs ...Requirement) (*Resolution, error) {
	if len(reqs) == 0 {
		return nil, fmt.Errorf("resolve: no requirements given")
	}

	var attempts []Attempt
	for _, dir := range r.dirs {
		entries, err := r.readDir(dir)
		if err != nil {
			for _, req := range reqs {
				for _, alias := range req.Aliases {
					attempts = append(attempts, Attempt{Dir: dir, Requirement: req.Name, Alias: alias})
				}
			}
			continue
		}

		files := regularFiles(entries)
		paths := make(map[string]string, len(reqs))
		complete := true
		for _, req := range reqs {
			name, reqAttempts := matchRequirement(dir, req, files)
			attempts = append(attempts, reqAttempts...)
			if name == "" {
				complete = false
				continue
			}
			paths[req.Name] = filepath.Join(dir, name)
		}

		if complete {
			return &Resolution{Dir: dir, Paths: paths, Attempts: attempts}, nil
		}
	}

	return nil, r.notFound(reqs)
}

func matchRequirement(dir string, req Requirement, files map[string]struct{}) (string, []Attempt) {
	attempts := make([]Attempt, 0, len(req.Aliases)+1)
	for _, alias := range req.Aliases {
		_, ok := files[alias]
		attempts = append(attempts, Attempt{Dir: dir, Requirement: req.Name, Alias: alias, Found: ok})
		if ok {
			return alias, attempts
		}
	}

	// Fall back to a case-insensitive match so unusual casings still resolve.
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, alias := range req.Aliases {
		for _, name := range names {
			if strings.EqualFold(name, alias) {
				attempts = append(attempts, Attempt{Dir: dir, Requirement: req.Name, Alias: name, Found: true, CaseFolded: true})
				return name, attempts
			}
		}
	}
	return "", attempts
}

func regularFiles(entries []fs.DirEntry) map[string]struct{} {
	files := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		files[e.Name()] = struct{}{}
	}
	return files
}

func (r *Resolver) notFound(reqs []Requirement) error {
	aliases := make(map[string][]string, len(reqs))
	for _, req := range reqs {
		aliases[req.Name] = append([]string(nil), req.Aliases...)
	}

	listing := make(map[string][]string)
	if len(r.dirs) > 0 {
		first := r.dirs[0]
		entries, err := r.readDir(first)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			listing[first] = nil
		case err == nil:
			names := make([]string, 0, len(entries))
			for _, e := range entries {
				names = append(names, e.Name())
			}
			sort.Strings(names)
			listing[first] = names
		}
	}

	return &domain.FileNotFoundError{
		Searched:   r.Dirs(),
		WorkingDir: r.workDir,
		Aliases:    aliases,
		Listing:    listing,
	}
}
