package output

import (
	"encoding/json"
	"fmt"
	"os"
)

// JSONGraphWriter writes the commit graph as JSON.
type JSONGraphWriter struct{}

// Write outputs the commit graph as JSON.
func (w *JSONGraphWriter) Write(report *GraphReport, options OutputOptions) error {
	return writeJSON(newGraphDocument(report, options), options.OutputPath)
}

// JSONBranchWriter writes the branch summary as JSON.
type JSONBranchWriter struct{}

// Write outputs the branch summary as JSON.
func (w *JSONBranchWriter) Write(report *GraphReport, options OutputOptions) error {
	return writeJSON(newBranchDocuments(report.Graph), options.OutputPath)
}

func writeJSON(data interface{}, outputPath string) error {
	encoder := json.NewEncoder(os.Stdout)
	if outputPath != "" {
		file, err := os.Create(outputPath)
		if err != nil {
			return err
		}
		defer file.Close()
		encoder = json.NewEncoder(file)
	}

	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
