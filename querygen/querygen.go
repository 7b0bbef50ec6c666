// Package querygen generates statically-typed request builders from the
// published SDL artifact.
//
// The generator reads the schema interchange artifact plus one or more
// GraphQL operation documents (the selection shapes), validates the
// operations against the schema, and emits one Go file per operation. Each
// emitted file contains the canonical operation text, a variables struct
// and a result struct projected onto exactly the selected fields, with
// nullability preserved. Narrowing is a pure function of the root field
// signature and the selection shape; the generated types never contain a
// field the operation did not ask for.
//
// All failures here are build-step fatals: an invalid selection (unknown
// field, empty selection set on a composite type, anonymous operation)
// aborts generation instead of producing a silently wrong type.
package querygen

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"

	typedboard "github.com/GauBen/typed-board"
)

// DefaultClientPackage is the import path of the transport client used by
// generated code.
const DefaultClientPackage = "github.com/GauBen/typed-board/gqlclient"

// Config controls one generation run.
type Config struct {
	// Artifact is the path of the SDL interchange artifact.
	Artifact string

	// Queries are paths or globs of operation documents (.graphql).
	Queries []string

	// Target is the output directory for generated files.
	Target string

	// Package is the output package name. Defaults to the base name of
	// Target.
	Package string

	// ClientPackage is the import path of the transport client. Defaults
	// to DefaultClientPackage.
	ClientPackage string
}

func (c *Config) defaults() error {
	if c.Artifact == "" {
		return typedboard.NewGenerateError("", "missing artifact path", nil)
	}
	if len(c.Queries) == 0 {
		return typedboard.NewGenerateError("", "missing operation documents", nil)
	}
	if c.Target == "" {
		return typedboard.NewGenerateError("", "missing target directory", nil)
	}
	if c.Package == "" {
		c.Package = filepath.Base(c.Target)
	}
	if c.ClientPackage == "" {
		c.ClientPackage = DefaultClientPackage
	}
	return nil
}

// Result reports what a generation run did.
type Result struct {
	// Files are the generated file names, relative to the target
	// directory.
	Files []string

	// Skipped is true when the cache manifest matched and nothing was
	// regenerated.
	Skipped bool
}

// Generate runs the generator: load, validate, project, emit.
//
// Unchanged inputs are detected through a content-addressed manifest next
// to the generated files and skip emission entirely, keeping repeated
// builds cheap and byte-stable.
func Generate(cfg Config) (*Result, error) {
	if err := cfg.defaults(); err != nil {
		return nil, err
	}

	schemaSrc, err := os.ReadFile(cfg.Artifact)
	if err != nil {
		return nil, typedboard.NewGenerateError("", "read artifact", err)
	}

	queryFiles, err := resolveQueryFiles(cfg.Queries)
	if err != nil {
		return nil, err
	}

	docs := make(map[string][]byte, len(queryFiles))
	for _, path := range queryFiles {
		src, err := os.ReadFile(path)
		if err != nil {
			return nil, typedboard.NewGenerateError("", "read operation document", err)
		}
		docs[path] = src
	}

	m := newManifest(schemaSrc, docs)
	if cached, ok := m.matches(cfg.Target); ok {
		return &Result{Files: cached, Skipped: true}, nil
	}

	schema, gqlErr := gqlparser.LoadSchema(&ast.Source{Name: cfg.Artifact, Input: string(schemaSrc)})
	if gqlErr != nil {
		return nil, typedboard.NewGenerateError("", "invalid schema artifact", gqlErr)
	}

	ops, err := loadOperations(schema, queryFiles, docs)
	if err != nil {
		return nil, err
	}

	specs := make([]*opSpec, 0, len(ops))
	for _, op := range ops {
		spec, err := project(schema, op)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}

	files, err := emit(cfg, specs)
	if err != nil {
		return nil, err
	}

	m.Files = files
	if err := m.write(cfg.Target); err != nil {
		return nil, err
	}
	return &Result{Files: files}, nil
}

// resolveQueryFiles expands globs and returns a sorted, de-duplicated list
// of operation document paths.
func resolveQueryFiles(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, typedboard.NewGenerateError("", fmt.Sprintf("bad query pattern %q", pattern), err)
		}
		if len(matches) == 0 {
			// A literal path that does not exist is an error; globs may
			// legitimately match nothing.
			if pattern == filepath.Clean(pattern) && !strings.ContainsAny(pattern, "*?[") {
				return nil, typedboard.NewGenerateError("", fmt.Sprintf("operation document %q not found", pattern), nil)
			}
			continue
		}
		for _, match := range matches {
			if !seen[match] {
				seen[match] = true
				files = append(files, match)
			}
		}
	}
	if len(files) == 0 {
		return nil, typedboard.NewGenerateError("", "no operation documents matched", nil)
	}
	sort.Strings(files)
	return files, nil
}

// loadOperations parses and validates every document against the schema and
// returns all named operations, in document order.
func loadOperations(schema *ast.Schema, paths []string, docs map[string][]byte) ([]*ast.OperationDefinition, error) {
	var ops []*ast.OperationDefinition
	names := make(map[string]string)

	for _, path := range paths {
		doc, errs := gqlparser.LoadQuery(schema, string(docs[path]))
		if len(errs) > 0 {
			return nil, typedboard.NewGenerateError("", fmt.Sprintf("invalid operations in %s", path), errs)
		}
		for _, op := range doc.Operations {
			if op.Name == "" {
				return nil, typedboard.NewGenerateError("",
					fmt.Sprintf("anonymous operation in %s: generated builders need a name", path), nil)
			}
			if prev, ok := names[op.Name]; ok {
				return nil, typedboard.NewGenerateError(op.Name,
					fmt.Sprintf("declared in both %s and %s", prev, path), nil)
			}
			names[op.Name] = path
			ops = append(ops, op)
		}
	}
	if len(ops) == 0 {
		return nil, typedboard.NewGenerateError("", "no named operations found", nil)
	}
	return ops, nil
}
