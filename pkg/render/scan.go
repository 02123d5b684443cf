package render

import (
	"text/template"
	"text/template/parse"

	"github.com/pkg/errors"
)

// scanFuncs lets templates parse without a render context; the signatures
// must stay in sync with the context-backed function maps.
var scanFuncs = template.FuncMap{
	"resolve_base_image": func(string) (string, error) { return "", nil },
	"resolve_version":    func(string) (string, error) { return "", nil },
}

// BaseImageRefs statically extracts the base-image names a Dockerfile
// template resolves, without executing it. Only string literals are seen;
// references computed at render time cannot be discovered statically.
func BaseImageRefs(text string) ([]string, error) {
	tmpl, err := template.New("scan").Funcs(scanFuncs).Parse(text)
	if err != nil {
		return nil, errors.Wrap(err, "parsing Dockerfile template")
	}

	refs := []string{}
	seen := map[string]struct{}{}
	add := func(name string) {
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		refs = append(refs, name)
	}

	for _, t := range tmpl.Templates() {
		if t.Tree == nil || t.Tree.Root == nil {
			continue
		}
		collectRefs(t.Tree.Root, add)
	}

	return refs, nil
}

func collectRefs(node parse.Node, add func(string)) {
	switch n := node.(type) {
	case *parse.ListNode:
		if n == nil {
			return
		}
		for _, item := range n.Nodes {
			collectRefs(item, add)
		}
	case *parse.ActionNode:
		collectPipe(n.Pipe, add)
	case *parse.IfNode:
		collectBranch(&n.BranchNode, add)
	case *parse.RangeNode:
		collectBranch(&n.BranchNode, add)
	case *parse.WithNode:
		collectBranch(&n.BranchNode, add)
	case *parse.TemplateNode:
		collectPipe(n.Pipe, add)
	}
}

func collectBranch(branch *parse.BranchNode, add func(string)) {
	collectPipe(branch.Pipe, add)
	collectRefs(branch.List, add)
	if branch.ElseList != nil {
		collectRefs(branch.ElseList, add)
	}
}

func collectPipe(pipe *parse.PipeNode, add func(string)) {
	if pipe == nil {
		return
	}

	for i, cmd := range pipe.Cmds {
		if len(cmd.Args) == 0 {
			continue
		}

		ident, ok := cmd.Args[0].(*parse.IdentifierNode)
		if !ok || ident.Ident != "resolve_base_image" {
			for _, arg := range cmd.Args {
				if nested, ok := arg.(*parse.PipeNode); ok {
					collectPipe(nested, add)
				}
			}
			continue
		}

		collected := false
		for _, arg := range cmd.Args[1:] {
			if str, ok := arg.(*parse.StringNode); ok {
				add(str.Text)
				collected = true
			}
		}

		// Pipeline form: the literal is the sole argument of the previous
		// command, as in {{ "base" | resolve_base_image }}.
		if !collected && i > 0 {
			prev := pipe.Cmds[i-1]
			if len(prev.Args) == 1 {
				if str, ok := prev.Args[0].(*parse.StringNode); ok {
					add(str.Text)
				}
			}
		}
	}
}
