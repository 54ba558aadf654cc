package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OIEIEIO/lobster/internal/version"
)

var versionFormat string

func init() {
	versionCmd.Flags().StringVar(&versionFormat, "format", "pretty", "output format (pretty|json)")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show compiler build identity",
	RunE: func(cmd *cobra.Command, args []string) error {
		switch strings.ToLower(versionFormat) {
		case "pretty":
			renderVersionPretty(cmd.OutOrStdout())
			return nil
		case "json":
			return renderVersionJSON(cmd.OutOrStdout())
		default:
			return fmt.Errorf("unsupported format %q (must be pretty or json)", versionFormat)
		}
	},
}

func renderVersionPretty(out io.Writer) {
	fmt.Fprintf(out, "lobster %s\n", version.Pretty())
	fmt.Fprintf(out, "image token: %s\n", version.ImageToken())
	if version.BuildDate != "" {
		fmt.Fprintf(out, "built: %s\n", version.BuildDate)
	}
}

func renderVersionJSON(out io.Writer) error {
	payload := struct {
		Tool       string `json:"tool"`
		Version    string `json:"version"`
		GitCommit  string `json:"git_commit,omitempty"`
		BuildDate  string `json:"build_date,omitempty"`
		ImageToken string `json:"image_token"`
	}{
		Tool:       "lobster",
		Version:    version.Version,
		GitCommit:  version.GitCommit,
		BuildDate:  version.BuildDate,
		ImageToken: version.ImageToken(),
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
