package querygen

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"github.com/dave/jennifer/jen"
	"github.com/go-openapi/inflect"
	"github.com/vektah/gqlparser/v2/ast"
	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/imports"

	typedboard "github.com/GauBen/typed-board"
)

// header is prepended to every generated file.
const header = "Code generated by typedboard. DO NOT EDIT."

// emit renders one file per operation into the target directory, in
// parallel, and returns the sorted generated file names.
func emit(cfg Config, specs []*opSpec) ([]string, error) {
	if err := os.MkdirAll(cfg.Target, 0o755); err != nil {
		return nil, typedboard.NewGenerateError("", "create target directory", err)
	}

	eg, _ := errgroup.WithContext(context.Background())
	eg.SetLimit(runtime.GOMAXPROCS(0))

	var mu sync.Mutex
	var files []string

	for _, spec := range specs {
		eg.Go(func() error {
			name := fileName(spec.Name)
			if err := writeFile(cfg, name, opFile(cfg, spec)); err != nil {
				return err
			}
			mu.Lock()
			files = append(files, name)
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// writeFile renders, formats and writes a single generated file.
func writeFile(cfg Config, name string, f *jen.File) error {
	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return typedboard.NewGenerateError("", fmt.Sprintf("render %s", name), err)
	}

	path := filepath.Join(cfg.Target, name)
	formatted, err := imports.Process(path, buf.Bytes(), nil)
	if err != nil {
		return typedboard.NewGenerateError("", fmt.Sprintf("format %s", name), err)
	}
	if err := os.WriteFile(path, formatted, 0o644); err != nil {
		return typedboard.NewGenerateError("", fmt.Sprintf("write %s", name), err)
	}
	return nil
}

// fileName maps an operation name to its generated file,
// e.g. GetPosts -> get_posts_gen.go.
func fileName(opName string) string {
	return inflect.Underscore(opName) + "_gen.go"
}

// opFile builds the generated file for one operation.
func opFile(cfg Config, spec *opSpec) *jen.File {
	f := jen.NewFilePathName(cfg.Target, cfg.Package)
	f.HeaderComment(header)

	kind := "query"
	if spec.Kind == ast.Mutation {
		kind = "mutation"
	}

	// Canonical operation text.
	f.Commentf("%sOperation is the canonical text of the %s %s.", spec.Name, spec.Name, kind)
	f.Const().Id(spec.Name + "Operation").Op("=").Lit(spec.Text)
	f.Line()

	// Variables struct.
	if len(spec.Vars) > 0 {
		f.Commentf("%sVariables are the arguments of %s.", spec.Name, spec.Name)
		f.Type().Id(spec.Name + "Variables").StructFunc(func(g *jen.Group) {
			for _, v := range spec.Vars {
				stmt := g.Id(v.GoName)
				if v.Optional {
					stmt = stmt.Op("*")
				}
				stmt.Id(v.GoType)
			}
		})
		f.Line()

		f.Comment("variables flattens the struct into the wire-level variables object.")
		f.Comment("Optional variables are omitted when unset.")
		f.Func().Params(jen.Id("v").Id(spec.Name + "Variables")).Id("variables").Params().Map(jen.String()).Any().BlockFunc(func(g *jen.Group) {
			g.Id("m").Op(":=").Map(jen.String()).Any().Values(jen.DictFunc(func(d jen.Dict) {
				for _, v := range spec.Vars {
					if !v.Optional {
						d[jen.Lit(v.GQLName)] = jen.Id("v").Dot(v.GoName)
					}
				}
			}))
			for _, v := range spec.Vars {
				if v.Optional {
					g.If(jen.Id("v").Dot(v.GoName).Op("!=").Nil()).Block(
						jen.Id("m").Index(jen.Lit(v.GQLName)).Op("=").Op("*").Id("v").Dot(v.GoName),
					)
				}
			}
			g.Return(jen.Id("m"))
		})
		f.Line()
	}

	// Result structs, root response first.
	for _, s := range spec.Structs {
		f.Comment(structComment(spec, s))
		f.Type().Id(s.Name).StructFunc(func(g *jen.Group) {
			for _, field := range s.Fields {
				stmt := g.Id(field.GoName)
				if field.List {
					stmt = stmt.Index()
				}
				if field.Optional {
					stmt = stmt.Op("*")
				}
				if field.StructName != "" {
					stmt = stmt.Id(field.StructName)
				} else {
					stmt = stmt.Id(field.GoType)
				}
				stmt.Tag(map[string]string{"json": field.JSONName})
			}
		})
		f.Line()
	}

	// Execution function.
	f.Commentf("%s executes the %s %s through the given client and decodes", spec.Name, spec.Name, kind)
	f.Comment("the response into the narrowed result type. On partial success the")
	f.Comment("decoded data is returned alongside the error list.")
	params := []jen.Code{
		jen.Id("ctx").Qual("context", "Context"),
		jen.Id("client").Op("*").Qual(cfg.ClientPackage, "Client"),
	}
	varsArg := jen.Nil()
	if len(spec.Vars) > 0 {
		params = append(params, jen.Id("vars").Id(spec.Name+"Variables"))
		varsArg = jen.Id("vars").Dot("variables").Call()
	}
	f.Func().Id(spec.Name).Params(params...).Params(jen.Op("*").Id(spec.Name+"Response"), jen.Error()).Block(
		jen.Var().Id("resp").Id(spec.Name+"Response"),
		jen.Err().Op(":=").Id("client").Dot("Exec").Call(
			jen.Id("ctx"),
			jen.Id(spec.Name+"Operation"),
			varsArg,
			jen.Op("&").Id("resp"),
		),
		jen.Return(jen.Op("&").Id("resp"), jen.Err()),
	)

	return f
}

func structComment(spec *opSpec, s structSpec) string {
	if s.Name == spec.Name+"Response" {
		return fmt.Sprintf("%s is the %s result, narrowed to the selected fields.", s.Name, spec.Name)
	}
	return s.Comment
}
