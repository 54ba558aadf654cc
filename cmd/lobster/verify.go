package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OIEIEIO/lobster/internal/bytecode"
	"github.com/OIEIEIO/lobster/internal/diag"
	"github.com/OIEIEIO/lobster/internal/source"
	"github.com/OIEIEIO/lobster/internal/version"
)

var verifyCmd = &cobra.Command{
	Use:   "verify [image]",
	Short: "Check a persisted image for version and invariant violations",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveImagePath(args)
		if err != nil {
			return err
		}

		bag := diag.NewBag(64)
		reporter := diag.BagReporter{Bag: bag}

		im, err := bytecode.ReadFile(path, version.ImageToken())
		if err != nil {
			reporter.Report(diag.FromError(err))
		} else {
			verifyImage(im, reporter)
		}

		if bag.HasErrors() {
			bag.Sort()
			for _, d := range bag.Items() {
				diag.Print(cmd.ErrOrStderr(), d, nil)
			}
			return fmt.Errorf("%s: verification failed (%d findings)", path, bag.Len())
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d idents, %d functions, %d structs, %d fields, %d instructions)\n",
			path, len(im.Idents), len(im.Functions), len(im.Structs), len(im.Fields), len(im.Code))
		return nil
	},
}

// verifyImage runs the record-level image checks and the deeper arena-level
// checks on the restored table, reporting every failure. Returns false if
// anything was reported.
func verifyImage(im *bytecode.Image, r diag.Reporter) bool {
	if err := im.Validate(); err != nil {
		r.Report(diag.FromError(err))
		return false
	}
	table, err := im.RestoreTable()
	if err != nil {
		r.Report(diag.FromError(err))
		return false
	}
	if err := table.Validate(); err != nil {
		r.Report(diag.FromError(err).
			WithNote(source.Span{File: source.NoFileID}, "found in the symbol table restored from the image records"))
		return false
	}
	return true
}
