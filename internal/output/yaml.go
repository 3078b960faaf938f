package output

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAMLGraphWriter writes the commit graph as YAML.
type YAMLGraphWriter struct{}

// Write outputs the commit graph as YAML.
func (w *YAMLGraphWriter) Write(report *GraphReport, options OutputOptions) error {
	return writeYAML(newGraphDocument(report, options), options.OutputPath)
}

// YAMLBranchWriter writes the branch summary as YAML.
type YAMLBranchWriter struct{}

// Write outputs the branch summary as YAML.
func (w *YAMLBranchWriter) Write(report *GraphReport, options OutputOptions) error {
	return writeYAML(newBranchDocuments(report.Graph), options.OutputPath)
}

func writeYAML(data interface{}, outputPath string) error {
	out, file, err := openOutputWriter(outputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	encoder := yaml.NewEncoder(out)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return encoder.Close()
}
