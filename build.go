package main

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/pontaoski/czechscript/compiler"
	"github.com/pontaoski/czechscript/diag"
	"github.com/urfave/cli/v2"
	"github.com/ztrue/tracerr"
)

// build compiles the sources under root. When root is a directory the
// outputs mirror its layout under output; when it is a file, output is the
// file written. An empty output puts generated code next to each source.
type build struct {
	root   string
	output string
	opts   compiler.Options
	inline bool
	color  bool

	dryRun   bool
	errors   int
	warnings int
}

func newBuild(c *cli.Context) (*build, error) {
	root := c.Args().First()
	where := root
	if where == "" {
		where = "."
	}
	proj, err := findProject(where)
	if err != nil {
		return nil, err
	}

	b := &build{
		root:   root,
		inline: c.Bool("inline-source-map"),
		color:  useColor(),
	}
	if proj != nil && root == "" {
		b.root = proj.SourcePath()
		b.output = proj.OutputPath()
	}
	if b.root == "" {
		return nil, cli.Exit("nothing to build: pass a path or run init", 1)
	}
	if c.IsSet("output") {
		b.output = c.String("output")
	}
	b.opts = compileOptions(c, proj)
	return b, nil
}

// sourceFiles returns root itself when it is a file, or every source file
// below it. Hidden directories are skipped.
func sourceFiles(root string) ([]string, error) {
	fi, err := os.Stat(root)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	if !fi.IsDir() {
		return []string{root}, nil
	}

	var files []string
	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if path != root && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(path, compiler.SourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	return files, nil
}

// outputPath returns where the code generated for file goes.
func outputPath(root, file, output string) string {
	if output == "" {
		return compiler.OutputName(file)
	}
	if fi, err := os.Stat(root); root == file || (err == nil && !fi.IsDir()) {
		return output
	}
	// watch reports absolute paths
	absRoot, _ := filepath.Abs(root)
	absFile, _ := filepath.Abs(file)
	rel, err := filepath.Rel(absRoot, absFile)
	if err != nil || strings.HasPrefix(rel, "..") {
		rel = filepath.Base(file)
	}
	return filepath.Join(output, compiler.OutputName(rel))
}

// all compiles every source. It reports whether all of them compiled
// without errors.
func (b *build) all() (bool, error) {
	files, err := sourceFiles(b.root)
	if err != nil {
		return false, err
	}
	if len(files) == 0 {
		return false, cli.Exit(fmt.Sprintf("no %s files in %s", compiler.SourceExt, b.root), 1)
	}

	ok := true
	for _, file := range files {
		fileOK, err := b.file(file)
		if err != nil {
			return false, err
		}
		ok = ok && fileOK
	}
	return ok, nil
}

func (b *build) file(file string) (bool, error) {
	src, err := ioutil.ReadFile(file)
	if err != nil {
		return false, tracerr.Wrap(err)
	}

	opts := b.opts
	opts.Filename = file
	res := compiler.New(opts).Compile(string(src))

	b.errors += len(res.Errors)
	b.warnings += len(res.Warnings)
	r := diag.Reporter{Errors: res.Errors, Warnings: res.Warnings}
	for _, d := range r.All() {
		fmt.Fprint(os.Stderr, diag.Format(d, string(src), b.color))
	}

	if res.AST == nil || b.dryRun {
		return res.Success, nil
	}

	dest := outputPath(b.root, file, b.output)
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return false, tracerr.Wrap(err)
	}

	code := res.Code
	if m := res.SourceMap; m != nil {
		m.File = filepath.Base(dest)
		if rel, err := filepath.Rel(filepath.Dir(dest), file); err == nil {
			m.Sources[0] = filepath.ToSlash(rel)
		}

		if b.inline {
			comment, err := m.InlineComment()
			if err != nil {
				return false, tracerr.Wrap(err)
			}
			code += comment + "\n"
		} else {
			data, err := m.JSON()
			if err != nil {
				return false, tracerr.Wrap(err)
			}
			if err := ioutil.WriteFile(dest+".map", data, 0644); err != nil {
				return false, tracerr.Wrap(err)
			}
			code += "//# sourceMappingURL=" + filepath.Base(dest) + ".map\n"
		}
	}

	if err := ioutil.WriteFile(dest, []byte(code), 0644); err != nil {
		return false, tracerr.Wrap(err)
	}
	return res.Success, nil
}
