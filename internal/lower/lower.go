// Package lower walks a parsed Go file and converts the supported subset
// into a model.Program.
//
// The accepted language is a file of function declarations whose bodies
// contain only println calls. Anything else is rejected with a diag.Error
// naming the violated rule; no partial program is ever returned.
package lower

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/printer"
	"go/token"
	"strconv"
	"strings"

	"github.com/tinyrange/pcc/internal/diag"
	"github.com/tinyrange/pcc/internal/model"
)

// PrintOperation is the only call accepted as a statement.
const PrintOperation = "println"

// Options controls how println arguments are extracted.
type Options struct {
	// Strict requires the first println argument to be a string literal and
	// stores its decoded value. Without it the argument's source text is
	// taken with double quotes removed, whatever kind of expression it is.
	Strict bool
}

// Source parses src as a Go file and lowers it.
func Source(filename string, src []byte, opts Options) (*model.Program, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, src, parser.AllErrors)
	if err != nil {
		return nil, &diag.Error{Kind: diag.KindHostParse, Err: err}
	}
	return File(fset, file, opts)
}

// File lowers an already-parsed file. fset must be the file set file was
// parsed with; it is used for positions and for rendering arguments.
func File(fset *token.FileSet, file *ast.File, opts Options) (*model.Program, error) {
	w := &walker{fset: fset, opts: opts}
	return w.lowerFile(file)
}

type walker struct {
	fset *token.FileSet
	opts Options
}

func (w *walker) lowerFile(file *ast.File) (*model.Program, error) {
	prog := &model.Program{}

	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok {
			return nil, w.fail(diag.KindUnsupportedItem, decl, "", describeDecl(decl))
		}
		if fn.Recv != nil {
			return nil, w.fail(diag.KindUnsupportedItem, decl, fn.Name.Name,
				fmt.Sprintf("method %s", fn.Name.Name))
		}
		if fn.Body == nil {
			return nil, w.fail(diag.KindUnsupportedItem, decl, fn.Name.Name,
				fmt.Sprintf("function %s has no body", fn.Name.Name))
		}
		// Backends only compile the entry function.
		if len(prog.Functions) == 1 {
			return nil, w.fail(diag.KindMultipleFunctions, decl, fn.Name.Name, "")
		}

		lowered, err := w.lowerFunc(fn)
		if err != nil {
			return nil, err
		}
		prog.Functions = append(prog.Functions, lowered)
	}

	return prog, nil
}

func (w *walker) lowerFunc(fn *ast.FuncDecl) (model.Function, error) {
	body := make([]model.Command, 0, len(fn.Body.List))
	for _, stmt := range fn.Body.List {
		cmd, err := w.lowerStmt(stmt)
		if err != nil {
			return model.Function{}, err
		}
		body = append(body, cmd)
	}
	return model.Function{Name: fn.Name.Name, Body: body}, nil
}

func (w *walker) lowerStmt(stmt ast.Stmt) (model.Command, error) {
	exprStmt, ok := stmt.(*ast.ExprStmt)
	if !ok {
		return nil, w.fail(diag.KindUnsupportedStatement, stmt, "", describeStmt(stmt))
	}
	call, ok := exprStmt.X.(*ast.CallExpr)
	if !ok {
		return nil, w.fail(diag.KindUnsupportedStatement, stmt, "", "expression statement")
	}
	return w.lowerCall(call)
}

func (w *walker) lowerCall(call *ast.CallExpr) (model.Command, error) {
	name := w.operationName(call.Fun)
	if name != PrintOperation {
		return nil, w.fail(diag.KindUnknownOperation, call, name, "")
	}
	if len(call.Args) == 0 {
		return nil, w.fail(diag.KindMissingArgument, call, name, "")
	}

	arg := call.Args[0]
	if !w.opts.Strict {
		return model.PrintLine{Text: strings.ReplaceAll(w.render(arg), `"`, "")}, nil
	}

	lit, ok := arg.(*ast.BasicLit)
	if !ok || lit.Kind != token.STRING {
		return nil, w.fail(diag.KindNotStringLiteral, arg, name, w.render(arg))
	}
	text, err := strconv.Unquote(lit.Value)
	if err != nil {
		return nil, &diag.Error{
			Kind:   diag.KindNotStringLiteral,
			Pos:    w.fset.Position(lit.Pos()),
			Name:   name,
			Detail: lit.Value,
			Err:    err,
		}
	}
	return model.PrintLine{Text: text, Decoded: true}, nil
}

// operationName returns the name a call targets: the identifier for plain
// calls and the rendered expression (pkg.Func, f(), ...) otherwise.
func (w *walker) operationName(fun ast.Expr) string {
	if id, ok := fun.(*ast.Ident); ok {
		return id.Name
	}
	return w.render(fun)
}

func (w *walker) render(expr ast.Expr) string {
	var sb strings.Builder
	if err := printer.Fprint(&sb, w.fset, expr); err != nil {
		return fmt.Sprintf("%T", expr)
	}
	return sb.String()
}

func (w *walker) fail(kind diag.Kind, node ast.Node, name, detail string) error {
	return &diag.Error{
		Kind:   kind,
		Pos:    w.fset.Position(node.Pos()),
		Name:   name,
		Detail: detail,
	}
}

func describeDecl(decl ast.Decl) string {
	if gen, ok := decl.(*ast.GenDecl); ok {
		return gen.Tok.String() + " declaration"
	}
	return fmt.Sprintf("%T", decl)
}

func describeStmt(stmt ast.Stmt) string {
	switch s := stmt.(type) {
	case *ast.AssignStmt:
		if s.Tok == token.DEFINE {
			return "short variable declaration"
		}
		return "assignment"
	case *ast.DeclStmt:
		return "declaration"
	case *ast.IfStmt:
		return "if statement"
	case *ast.ForStmt, *ast.RangeStmt:
		return "for statement"
	case *ast.SwitchStmt, *ast.TypeSwitchStmt:
		return "switch statement"
	case *ast.ReturnStmt:
		return "return statement"
	case *ast.GoStmt:
		return "go statement"
	case *ast.DeferStmt:
		return "defer statement"
	case *ast.BlockStmt:
		return "block"
	default:
		return fmt.Sprintf("%T", stmt)
	}
}
