package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/wippyai/apigen/internal/graph"
	"github.com/wippyai/apigen/specs"
	"github.com/wippyai/apigen/stdapi"
	"github.com/wippyai/apigen/trace"
)

// entry is one wrapper of the generated trace source: an exported function
// or a method of an interface wrapper class.
type entry struct {
	// symbol names the definition in the trace source
	symbol string
	label  string
	method bool
}

// entries lists the functions of m followed by the wrapper methods of its
// interfaces, dependencies first.
func entries(m *stdapi.Module) []entry {
	a := m.Arena
	var out []entry
	for _, f := range m.Functions {
		out = append(out, entry{symbol: f.Name, label: f.Prototype(a, "")})
	}
	g := graph.Build(m)
	for _, id := range g.Order() {
		iface := a.Type(id)
		for _, ref := range a.BaseMethods(id) {
			out = append(out, entry{
				symbol: trace.WrapperName(iface) + "::" + ref.Method.Name,
				label:  ref.Method.Prototype(a, iface.Name+"::"+ref.Method.Name),
				method: true,
			})
		}
	}
	return out
}

// isTerminal reports whether w writes to a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func runList(out io.Writer, names []string) error {
	render := func(s lipgloss.Style, text string) string { return text }
	if isTerminal(out) {
		render = func(s lipgloss.Style, text string) string { return s.Render(text) }
	}

	for _, name := range names {
		m, err := specs.Load(name)
		if err != nil {
			return err
		}
		a := m.Arena

		fmt.Fprintf(out, "%s %d functions, %d interfaces\n",
			render(titleStyle, m.Name), len(m.Functions), len(m.AllInterfaces()))

		fmt.Fprintf(out, "\nFunctions:\n")
		for _, f := range m.Functions {
			fmt.Fprintf(out, "  %s\n", render(funcStyle, f.Prototype(a, "")))
		}

		g := graph.Build(m)
		if ifaces := g.Order(); len(ifaces) > 0 {
			fmt.Fprintf(out, "\nInterfaces:\n")
			for _, id := range ifaces {
				iface := a.Type(id)
				base := ""
				if b := a.Type(iface.Base); b != nil {
					base = " : " + b.Name
				}
				fmt.Fprintf(out, "  %s%s\n", render(typeStyle, iface.Name), base)
				for _, method := range iface.OwnMethods() {
					fmt.Fprintf(out, "    %s\n", render(funcStyle, method.Prototype(a, method.Name)))
				}
			}
		}
		for _, cycle := range g.Cycles() {
			fmt.Fprintf(out, "  %s %s\n", render(helpStyle, "cycle:"), strings.Join(g.Names(cycle), " <-> "))
		}
		fmt.Fprintln(out)
	}
	return nil
}
