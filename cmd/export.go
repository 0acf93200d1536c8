package cmd

import (
	"fmt"
	"io"

	"github.com/chris-regnier/calnotes/internal/storage"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var exportFormat string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write all notes to stdout",
	Long: `Write every note as a nested year -> month -> day document.

The json format is byte-for-byte the document the json backend stores, so its
output can be used as a notes file or fed back to import.`,
	Example: `  calnotes export > backup.json
  calnotes export --format yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		exitOn(exportRun(cmd.OutOrStdout(), exportFormat))
		return nil
	},
}

func exportRun(w io.Writer, format string) error {
	c := make(storage.Collection)
	for _, n := range store.Notes() {
		c[n.Date] = n.Text
	}

	var data []byte
	var err error
	switch format {
	case "json", "":
		data, err = storage.EncodeJSON(c)
	case "yaml":
		data, err = yaml.Marshal(storage.ToDocument(c))
	default:
		return fmt.Errorf("unknown export format %q (supported: json, yaml)", format)
	}
	if err != nil {
		return fmt.Errorf("encoding notes: %w", err)
	}
	_, err = w.Write(data)
	return err
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "output format (json|yaml)")
	rootCmd.AddCommand(exportCmd)
}
