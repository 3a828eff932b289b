package presentation

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/defreg/internal/defcache"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// Output renders command results.
type Output interface {
	FormatUID(UIDDTO) error
	FormatDependencies(DependenciesDTO) error
	FormatDefinition(DefinitionDTO) error
	FormatExists(ExistsDTO) error
	FormatFind(FindDTO) error
	FormatLibraries(LibrariesDTO) error
	FormatInvalidation(InvalidationDTO) error
}

var (
	_ Output = (*Formatter)(nil)
	_ Output = (*TextFormatter)(nil)
)

// NewOutput returns the formatter for format, "json" or "text".
func NewOutput(w io.Writer, format string) (Output, error) {
	switch strings.ToLower(format) {
	case "", FormatText:
		return NewTextFormatter(w), nil
	case FormatJSON:
		return NewFormatter(w), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (must be \"json\" or \"text\")", format)
	}
}

// Formatter handles output formatting as indented JSON
type Formatter struct {
	writer io.Writer
}

// NewFormatter creates a new formatter
func NewFormatter(writer io.Writer) *Formatter {
	return &Formatter{
		writer: writer,
	}
}

func (f *Formatter) encode(v any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func (f *Formatter) FormatUID(v UIDDTO) error                   { return f.encode(v) }
func (f *Formatter) FormatDependencies(v DependenciesDTO) error { return f.encode(v) }
func (f *Formatter) FormatDefinition(v DefinitionDTO) error     { return f.encode(v) }
func (f *Formatter) FormatExists(v ExistsDTO) error             { return f.encode(v) }
func (f *Formatter) FormatFind(v FindDTO) error                 { return f.encode(v) }
func (f *Formatter) FormatLibraries(v LibrariesDTO) error       { return f.encode(v) }

// FormatInvalidation writes one compact JSON line per event so watch
// output can be piped.
func (f *Formatter) FormatInvalidation(v InvalidationDTO) error {
	return json.NewEncoder(f.writer).Encode(v)
}

// TextFormatter renders human-readable output. Colors are only emitted when
// the writer is a terminal.
type TextFormatter struct {
	writer io.Writer
	label  lipgloss.Style
	value  lipgloss.Style
	muted  lipgloss.Style
	good   lipgloss.Style
	bad    lipgloss.Style
}

func NewTextFormatter(w io.Writer) *TextFormatter {
	r := lipgloss.NewRenderer(w)
	return &TextFormatter{
		writer: w,
		label:  r.NewStyle().Bold(true).Width(16),
		value:  r.NewStyle().Foreground(lipgloss.Color("#54A0FF")),
		muted:  r.NewStyle().Foreground(lipgloss.Color("#888888")),
		good:   r.NewStyle().Foreground(lipgloss.Color("#73F59F")).Bold(true),
		bad:    r.NewStyle().Foreground(lipgloss.Color("#FF8787")).Bold(true),
	}
}

func (f *TextFormatter) line(label, value string) {
	_, _ = fmt.Fprintln(f.writer, f.label.Render(label)+f.value.Render(value))
}

func (f *TextFormatter) list(items []DescriptorDTO) {
	for _, d := range items {
		_, _ = fmt.Fprintf(f.writer, "  %s %s\n", f.muted.Render(fmt.Sprintf("%-12s", d.Type)), d.Qualified)
	}
}

func (f *TextFormatter) FormatUID(v UIDDTO) error {
	f.line("root", v.Root.Qualified)
	f.line("uid", v.UID)
	return nil
}

func (f *TextFormatter) FormatDependencies(v DependenciesDTO) error {
	f.line("root", v.Root.Qualified)
	f.line("uid", v.UID)
	f.line("dependencies", fmt.Sprint(len(v.Dependencies)))
	f.list(v.Dependencies)
	return nil
}

func (f *TextFormatter) FormatDefinition(v DefinitionDTO) error {
	f.line("descriptor", v.Descriptor.Qualified)
	f.line("type", v.Descriptor.Type)
	f.line("access", v.Access+" / "+v.Authentication)
	if v.Valid {
		_, _ = fmt.Fprintln(f.writer, f.label.Render("valid")+f.good.Render("yes"))
	} else {
		_, _ = fmt.Fprintln(f.writer, f.label.Render("valid")+f.bad.Render("no"))
	}
	f.line("hash", v.OwnHash)
	if v.Description != "" {
		f.line("description", v.Description)
	}
	if v.Extends != "" {
		f.line("extends", v.Extends)
	}
	if len(v.Implements) > 0 {
		f.line("implements", strings.Join(v.Implements, ", "))
	}
	if len(v.Components) > 0 {
		f.line("components", strings.Join(v.Components, ", "))
	}
	if len(v.Members) > 0 {
		f.line("members", strings.Join(v.Members, ", "))
	}
	for _, a := range v.Attributes {
		attr := a.Name + " " + f.muted.Render(a.Type)
		if a.Required {
			attr += " (required)"
		}
		f.line("attribute", attr)
	}
	if v.Source != "" {
		_, _ = fmt.Fprintln(f.writer, f.muted.Render(v.Source))
	}
	return nil
}

func (f *TextFormatter) FormatExists(v ExistsDTO) error {
	if v.Exists {
		_, _ = fmt.Fprintf(f.writer, "%s %s\n", v.Descriptor.Qualified, f.good.Render("exists"))
	} else {
		_, _ = fmt.Fprintf(f.writer, "%s %s\n", v.Descriptor.Qualified, f.bad.Render("does not exist"))
	}
	return nil
}

func (f *TextFormatter) FormatFind(v FindDTO) error {
	f.line("filter", v.Filter)
	f.line("matches", fmt.Sprint(len(v.Results)))
	f.list(v.Results)
	return nil
}

func (f *TextFormatter) FormatLibraries(v LibrariesDTO) error {
	f.line("root", v.Root.Qualified)
	f.line("uid", v.UID)
	if len(v.Libraries) == 0 {
		_, _ = fmt.Fprintln(f.writer, f.muted.Render("no client libraries"))
		return nil
	}
	for _, lib := range v.Libraries {
		name := lib.Name
		if name == "" {
			name = "-"
		}
		_, _ = fmt.Fprintf(f.writer, "  %-4s %-20s %s\n", lib.Type, name, f.muted.Render(lib.URL))
	}
	return nil
}

func (f *TextFormatter) FormatInvalidation(v InvalidationDTO) error {
	var counts []string
	for _, kind := range defcache.Kinds {
		if n := v.Evicted[string(kind)]; n > 0 {
			counts = append(counts, fmt.Sprintf("%s=%d", kind, n))
		}
	}
	evicted := "nothing cached"
	if len(counts) > 0 {
		evicted = strings.Join(counts, " ")
	}
	_, _ = fmt.Fprintf(f.writer, "%s %-8s %s  %s\n",
		f.muted.Render(fmt.Sprintf("gen %d", v.Generation)), v.Kind, v.Descriptor.Qualified, f.muted.Render(evicted))
	return nil
}
