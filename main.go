package main

import (
	"context"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/alecthomas/repr"
	"github.com/pontaoski/czechscript/ast"
	"github.com/pontaoski/czechscript/compiler"
	"github.com/pontaoski/czechscript/config"
	"github.com/pontaoski/czechscript/lexer"
	"github.com/pontaoski/czechscript/optimizer"
	"github.com/pontaoski/czechscript/parser"
	"github.com/pontaoski/czechscript/repl"
	"github.com/pontaoski/czechscript/watch"
	"github.com/urfave/cli/v2"
	"github.com/ztrue/tracerr"
	"golang.org/x/term"
)

const helloWorld = `vypis("Ahoj, světe!")
`

// useColor reports whether diagnostics on stderr may carry escape codes.
func useColor() bool {
	return os.Getenv("NO_COLOR") == "" && term.IsTerminal(int(os.Stderr.Fd()))
}

// readSource reads the single file argument of the tokens, ast and typeinfo
// commands.
func readSource(c *cli.Context) (string, string, error) {
	file := c.Args().First()
	if file == "" {
		return "", "", cli.Exit("no input file provided", 1)
	}
	data, err := ioutil.ReadFile(file)
	if err != nil {
		return "", "", err
	}
	return file, string(data), nil
}

func parseFile(c *cli.Context) (*ast.Program, error) {
	file, src, err := readSource(c)
	if err != nil {
		return nil, err
	}
	tokens, err := lexer.Tokenize(src, file)
	if err != nil {
		return nil, cli.Exit(tracerr.Unwrap(err).Error(), 1)
	}
	prog, err := parser.Parse(tokens)
	if err != nil {
		return nil, cli.Exit(tracerr.Unwrap(err).Error(), 1)
	}
	return prog, nil
}

var compileFlags = []cli.Flag{
	&cli.BoolFlag{
		Name:  "no-optimize",
		Usage: "skip constant folding",
	},
	&cli.BoolFlag{
		Name:  "no-strict",
		Usage: "skip the semantic checks",
	},
	&cli.BoolFlag{
		Name:    "verbose",
		Aliases: []string{"v"},
		Usage:   "log every compiler stage",
	},
}

func main() {
	log.SetPrefix("czechscript: ")
	log.SetFlags(0)

	app := &cli.App{
		Name:  "czechscript",
		Usage: "compile czechscript to JavaScript",
		ExitErrHandler: func(context *cli.Context, err error) {
			if err == nil {
				return
			}
			if exit, ok := err.(cli.ExitCoder); ok {
				if msg := err.Error(); msg != "" {
					log.Print(msg)
				}
				os.Exit(exit.ExitCode())
			}
			tracerr.PrintSourceColor(err)
			os.Exit(1)
		},
		Commands: []*cli.Command{
			{
				Name:      "init",
				Usage:     "create a project in the current directory",
				ArgsUsage: "<name>",
				Action: func(c *cli.Context) error {
					name := c.Args().First()
					if name == "" {
						return cli.Exit("no project name provided", 1)
					}
					err := config.Write(config.FileNames[0], &config.Project{Package: name, Source: "."})
					if err != nil {
						return cli.Exit(fmt.Sprintf("error creating %s: %s", config.FileNames[0], tracerr.Unwrap(err)), 1)
					}

					entry := "main" + compiler.SourceExt
					if _, err := os.Stat(entry); os.IsNotExist(err) {
						return ioutil.WriteFile(entry, []byte(helloWorld), 0644)
					}
					return nil
				},
			},
			{
				Name:      "build",
				Usage:     "compile a file or directory",
				ArgsUsage: "[path]",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "output file, or directory when building a directory",
					},
					&cli.BoolFlag{
						Name:  "source-map",
						Usage: "write a .map file next to each output",
					},
					&cli.BoolFlag{
						Name:  "inline-source-map",
						Usage: "embed the source map in the output",
					},
					&cli.StringFlag{
						Name:  "indent",
						Usage: "indentation of the generated code",
					},
					&cli.BoolFlag{
						Name:    "watch",
						Aliases: []string{"w"},
						Usage:   "rebuild when sources change",
					},
				}, compileFlags...),
				Action: func(c *cli.Context) error {
					b, err := newBuild(c)
					if err != nil {
						return err
					}

					ok, err := b.all()
					if err != nil {
						return err
					}
					if !c.Bool("watch") {
						if !ok {
							return cli.Exit("", 1)
						}
						return nil
					}

					ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
					defer stop()
					log.Printf("watching %s", b.root)
					return watch.Watch(ctx, b.root, func(changed []string) {
						for _, file := range changed {
							if _, err := os.Stat(file); err != nil {
								continue
							}
							if _, err := b.file(file); err != nil {
								log.Print(tracerr.Unwrap(err))
							}
						}
					})
				},
			},
			{
				Name:      "check",
				Usage:     "report diagnostics without writing output",
				ArgsUsage: "[path]",
				Flags:     compileFlags,
				Action: func(c *cli.Context) error {
					b, err := newBuild(c)
					if err != nil {
						return err
					}
					b.dryRun = true

					ok, err := b.all()
					if err != nil {
						return err
					}
					fmt.Fprintf(os.Stderr, "%d errors, %d warnings\n", b.errors, b.warnings)
					if !ok {
						return cli.Exit("", 1)
					}
					return nil
				},
			},
			{
				Name:      "tokens",
				Usage:     "dump the tokens of a file",
				ArgsUsage: "<file>",
				Action: func(c *cli.Context) error {
					file, src, err := readSource(c)
					if err != nil {
						return err
					}
					tokens, err := lexer.Tokenize(src, file)
					if err != nil {
						return cli.Exit(tracerr.Unwrap(err).Error(), 1)
					}
					for _, tok := range tokens {
						fmt.Printf("%-24s %-12s %s\n", tok.Location, tok.Kind, repr.String(tok.Value))
					}
					return nil
				},
			},
			{
				Name:      "ast",
				Usage:     "dump the syntax tree of a file",
				ArgsUsage: "<file>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "optimize",
						Usage: "dump the tree after constant folding",
					},
				},
				Action: func(c *cli.Context) error {
					prog, err := parseFile(c)
					if err != nil {
						return err
					}
					if c.Bool("optimize") {
						prog = optimizer.Optimize(prog)
					}
					fmt.Println(ast.Dump(prog))
					return nil
				},
			},
			{
				Name:      "typeinfo",
				Usage:     "dump the exported declarations of a file",
				ArgsUsage: "<file>",
				Action: func(c *cli.Context) error {
					prog, err := parseFile(c)
					if err != nil {
						return err
					}
					data, err := collectTypeInfo(prog).JSON()
					if err != nil {
						return err
					}
					fmt.Println(string(data))
					return nil
				},
			},
			{
				Name:  "repl",
				Usage: "compile interactively",
				Flags: compileFlags,
				Action: func(c *cli.Context) error {
					repl.REPL(compileOptions(c, nil), term.IsTerminal(int(os.Stdout.Fd())))
					return nil
				},
			},
		},
	}
	app.Run(os.Args)
}

// compileOptions applies the command line flags on top of the project's
// options, or the defaults when there is no project.
func compileOptions(c *cli.Context, proj *config.Project) compiler.Options {
	opts := compiler.DefaultOptions()
	if proj != nil {
		opts = proj.Options()
	}
	if c.Bool("no-optimize") {
		opts.Optimize = false
	}
	if c.Bool("no-strict") {
		opts.Strict = false
	}
	if c.IsSet("indent") {
		opts.Indent = c.String("indent")
	}
	if c.Bool("source-map") || c.Bool("inline-source-map") {
		opts.SourceMap = true
	}
	if c.Bool("verbose") {
		opts.Logger = log.New(os.Stderr, "czechscript: ", 0)
	}
	return opts
}

// findProject returns the project the path belongs to, or nil.
func findProject(path string) (*config.Project, error) {
	dir := path
	if fi, err := os.Stat(path); err == nil && !fi.IsDir() {
		dir = filepath.Dir(path)
	}
	file, err := config.Find(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return config.Load(file)
}
