// Package config reads and writes the project file that sits next to the
// sources of a czechscript project.
//
// The file is YAML (czechscript.yaml) or JSON with comments and trailing
// commas (czechscript.json).
package config

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/pontaoski/czechscript/compiler"
	"github.com/tailscale/hujson"
	"github.com/ztrue/tracerr"
	"gopkg.in/yaml.v2"
)

// FileNames are the project file names Find looks for, in order.
var FileNames = []string{
	"czechscript.yaml",
	"czechscript.yml",
	"czechscript.json",
	"czechscript.jsonc",
}

type Project struct {
	Package string `yaml:"package" json:"package"`
	// Source is the file or directory to compile, relative to the project
	// file. Empty means the project directory.
	Source string `yaml:"source,omitempty" json:"source,omitempty"`
	// Output is the file or directory generated code goes to. Empty means
	// next to each source.
	Output string `yaml:"output,omitempty" json:"output,omitempty"`

	// Nil keeps the compiler's default.
	Optimize  *bool  `yaml:"optimize,omitempty" json:"optimize,omitempty"`
	Strict    *bool  `yaml:"strict,omitempty" json:"strict,omitempty"`
	SourceMap bool   `yaml:"sourceMap,omitempty" json:"sourceMap,omitempty"`
	Indent    string `yaml:"indent,omitempty" json:"indent,omitempty"`

	// Dir is the directory the project file was loaded from.
	Dir string `yaml:"-" json:"-"`
}

// Options returns the compiler options the project asks for.
func (p *Project) Options() compiler.Options {
	opts := compiler.DefaultOptions()
	if p.Optimize != nil {
		opts.Optimize = *p.Optimize
	}
	if p.Strict != nil {
		opts.Strict = *p.Strict
	}
	opts.SourceMap = p.SourceMap
	opts.Indent = p.Indent
	return opts
}

// SourcePath returns Source resolved against the project directory.
func (p *Project) SourcePath() string {
	return p.resolve(p.Source)
}

// OutputPath returns Output resolved against the project directory, or
// the empty string when Output is not set.
func (p *Project) OutputPath() string {
	if p.Output == "" {
		return ""
	}
	return p.resolve(p.Output)
}

func (p *Project) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(p.Dir, path)
}

func Load(path string) (*Project, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}

	var p Project
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.UnmarshalStrict(data, &p)
	case ".json", ".jsonc":
		data, err = hujson.Standardize(data)
		if err == nil {
			err = json.Unmarshal(data, &p)
		}
	default:
		return nil, tracerr.Errorf("%s: unknown project file format %q", path, ext)
	}
	if err != nil {
		return nil, tracerr.Errorf("%s: %v", path, err)
	}

	p.Dir = filepath.Dir(path)
	return &p, nil
}

// Find looks for a project file in dir and its parents and returns the
// first one found. It returns os.ErrNotExist when there is none.
func Find(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", tracerr.Wrap(err)
	}
	for {
		for _, name := range FileNames {
			path := filepath.Join(dir, name)
			if fi, err := os.Stat(path); err == nil && !fi.IsDir() {
				return path, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

// Write stores p at path as YAML. An existing file is not overwritten.
func Write(path string, p *Project) error {
	out, err := yaml.Marshal(p)
	if err != nil {
		return tracerr.Wrap(err)
	}

	fi, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return tracerr.Wrap(err)
	}
	defer fi.Close()

	_, err = fi.Write(out)
	if err != nil {
		return tracerr.Wrap(err)
	}
	return nil
}
