package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/OIEIEIO/lobster/internal/bytecode"
	"github.com/OIEIEIO/lobster/internal/diag"
	"github.com/OIEIEIO/lobster/internal/source"
	"github.com/OIEIEIO/lobster/internal/version"
)

var (
	dumpCode  bool
	dumpLines bool

	headingColor = color.New(color.FgCyan, color.Bold)
	nameColor    = color.New(color.Bold)
	faintColor   = color.New(color.Faint)
)

func init() {
	dumpCmd.Flags().BoolVar(&dumpCode, "code", false, "include the raw instruction stream")
	dumpCmd.Flags().BoolVar(&dumpLines, "lines", false, "include the debug line table")
}

var dumpCmd = &cobra.Command{
	Use:   "dump [image]",
	Short: "Print the symbol tables of a persisted image",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveImagePath(args)
		if err != nil {
			return err
		}
		im, err := bytecode.ReadFile(path, version.ImageToken())
		if err != nil {
			diag.Print(cmd.ErrOrStderr(), diag.FromError(err), nil)
			return err
		}
		renderImage(cmd.OutOrStdout(), im)
		return nil
	},
}

func renderImage(out io.Writer, im *bytecode.Image) {
	fmt.Fprintf(out, "%s %s\n", headingColor.Sprint("image"), im.Token)
	fmt.Fprintf(out, "  frame state: %v\n", im.UsesFrameState)

	fmt.Fprintf(out, "%s (%d)\n", headingColor.Sprint("idents"), len(im.Idents))
	for _, r := range im.Idents {
		suffix := ""
		if r.StaticConstant {
			suffix = " const"
		}
		fmt.Fprintf(out, "  %4d %s %s%s\n", r.Index, nameColor.Sprint(r.Name),
			faintColor.Sprintf("line %d", r.Line), suffix)
	}

	fmt.Fprintf(out, "%s (%d)\n", headingColor.Sprint("functions"), len(im.Functions))
	for _, r := range im.Functions {
		fmt.Fprintf(out, "  %4d %s/%d %s\n", r.Index, nameColor.Sprint(r.Name), r.NumArgs,
			faintColor.Sprintf("code %d, retvals %d", r.CodeStart, r.RetVals))
	}

	fmt.Fprintf(out, "%s (%d)\n", headingColor.Sprint("structs"), len(im.Structs))
	for _, r := range im.Structs {
		super := ""
		if r.Superclass >= 0 && int(r.Superclass) < len(im.Structs) {
			super = " : " + im.Structs[r.Superclass].Name
		}
		ro := ""
		if r.ReadOnly {
			ro = " readonly"
		}
		fmt.Fprintf(out, "  %4d %s%s%s\n", r.Index, nameColor.Sprint(r.Name), super, ro)
	}

	fmt.Fprintf(out, "%s (%d)\n", headingColor.Sprint("fields"), len(im.Fields))
	for _, r := range im.Fields {
		fmt.Fprintf(out, "  %4d %s\n", r.Index, nameColor.Sprint(r.Name))
	}

	fmt.Fprintf(out, "%s %d instructions, %d files\n",
		headingColor.Sprint("code"), len(im.Code), len(im.Filenames))
	if dumpCode {
		files := im.Files()
		lines := im.Lines()
		for i, op := range im.Code {
			fmt.Fprintf(out, "  %4d: %-8d%s\n", i, op,
				faintColor.Sprint(codePosition(files, lines, int32(i))))
		}
	}
	if dumpLines {
		files := im.Files()
		for _, li := range im.LineNumbers {
			name, _ := files.Name(li.File)
			fmt.Fprintf(out, "  pc %4d -> %s:%d\n", li.PC, name, li.Line)
		}
	}
}

// codePosition resolves an instruction offset to "file:line", or "" when the
// line table has no entry covering it.
func codePosition(files *source.FileSet, lines *source.LineTable, pc int32) string {
	li, ok := lines.Locate(pc)
	if !ok {
		return ""
	}
	name, ok := files.Name(li.File)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s:%d", name, li.Line)
}
