package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/fivetwenty-io/formsynergy-client/internal/constants"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/viper"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// renderData prints a decoded JSON value in the configured output format.
func renderData(out io.Writer, data any) error {
	switch viper.GetString("output") {
	case constants.FormatJSON:
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")

		err := encoder.Encode(data)
		if err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}

		return nil
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(out)

		err := encoder.Encode(data)
		if err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}

		return encoder.Close()
	default:
		return renderTable(out, data)
	}
}

// renderTable prints objects as property/value rows and arrays of objects as
// one row per element.
func renderTable(out io.Writer, data any) error {
	table := tablewriter.NewWriter(out)
	title := cases.Title(language.English)

	switch typed := data.(type) {
	case map[string]any:
		table.Header("Property", "Value")

		for _, key := range sortedKeys(typed) {
			_ = table.Append(key, cell(typed[key]))
		}
	case []any:
		columns := arrayColumns(typed)
		if len(columns) == 0 {
			table.Header("Value")

			for _, item := range typed {
				_ = table.Append(cell(item))
			}

			break
		}

		header := make([]any, len(columns))
		for i, column := range columns {
			header[i] = title.String(column)
		}

		table.Header(header...)

		for _, item := range typed {
			row := make([]any, len(columns))
			object, _ := item.(map[string]any)

			for i, column := range columns {
				row[i] = cell(object[column])
			}

			_ = table.Append(row...)
		}
	default:
		table.Header("Value")
		_ = table.Append(cell(data))
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func arrayColumns(items []any) []string {
	seen := map[string]bool{}

	var columns []string

	for _, item := range items {
		object, ok := item.(map[string]any)
		if !ok {
			continue
		}

		for _, key := range sortedKeys(object) {
			if !seen[key] {
				seen[key] = true
				columns = append(columns, key)
			}
		}
	}

	return columns
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}

func cell(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case map[string]any, []any:
		encoded, err := json.Marshal(typed)
		if err != nil {
			return fmt.Sprint(typed)
		}

		return string(encoded)
	default:
		return fmt.Sprint(typed)
	}
}
