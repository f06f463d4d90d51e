package filesystem

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"

	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/types"
	"github.com/GriffinCanCode/WebDesk/backend/internal/vfs"
)

// codec converts between file content and generic values.
type codec struct {
	name      string
	marshal   func(v interface{}) ([]byte, error)
	unmarshal func(data []byte, v interface{}) error
}

var codecs = map[string]codec{
	"json": {
		name: "JSON",
		marshal: func(v interface{}) ([]byte, error) {
			return sonic.ConfigStd.MarshalIndent(v, "", "  ")
		},
		unmarshal: sonic.Unmarshal,
	},
	"yaml": {name: "YAML", marshal: yaml.Marshal, unmarshal: yaml.Unmarshal},
	"toml": {name: "TOML", marshal: toml.Marshal, unmarshal: toml.Unmarshal},
}

// codecFor picks a codec from a file extension.
func codecFor(path string) (codec, bool) {
	switch vfs.Ext(path) {
	case "json":
		return codecs["json"], true
	case "yaml", "yml":
		return codecs["yaml"], true
	case "toml":
		return codecs["toml"], true
	}
	return codec{}, false
}

// FormatsOps handles structured formats
type FormatsOps struct {
	*FilesystemOps
}

// GetTools returns format operation tool definitions
func (f *FormatsOps) GetTools() []types.Tool {
	readParams := []types.Parameter{
		{Name: "path", Type: "string", Description: "File path", Required: true},
	}
	writeParams := []types.Parameter{
		{Name: "path", Type: "string", Description: "File path", Required: true},
		{Name: "data", Type: "object", Description: "Data to write", Required: true},
	}

	tools := []types.Tool{}
	for _, format := range []string{"json", "yaml", "toml"} {
		c := codecs[format]
		tools = append(tools,
			types.Tool{
				ID:          "filesystem.read_" + format,
				Name:        "Read " + c.name,
				Description: "Parse a " + c.name + " file",
				Parameters:  readParams,
				Returns:     "object",
			},
			types.Tool{
				ID:          "filesystem.write_" + format,
				Name:        "Write " + c.name,
				Description: "Encode data as " + c.name + " and write it",
				Parameters:  writeParams,
				Returns:     "boolean",
			},
		)
	}

	return append(tools, types.Tool{
		ID:          "filesystem.convert",
		Name:        "Convert Format",
		Description: "Re-encode a JSON, YAML or TOML file in the format of the output extension",
		Parameters: []types.Parameter{
			{Name: "input", Type: "string", Description: "Source file", Required: true},
			{Name: "output", Type: "string", Description: "Destination file", Required: true},
		},
		Returns: "boolean",
	})
}

// Read parses a file with the named codec
func (f *FormatsOps) Read(ctx context.Context, format string, params map[string]interface{}) (*types.Result, error) {
	path, ok := f.pathParam(params, "path")
	if !ok {
		return missing("path")
	}

	parsed, err := f.decode(path, codecs[format])
	if err != nil {
		return types.Failure(err.Error())
	}

	return types.Success(map[string]interface{}{"path": path, "data": parsed})
}

// Write encodes data with the named codec
func (f *FormatsOps) Write(ctx context.Context, format string, params map[string]interface{}) (*types.Result, error) {
	path, ok := f.pathParam(params, "path")
	if !ok {
		return missing("path")
	}
	data, ok := params["data"]
	if !ok {
		return missing("data")
	}

	size, err := f.encode(path, codecs[format], data)
	if err != nil {
		return types.Failure(err.Error())
	}

	return types.Success(map[string]interface{}{"written": true, "path": path, "size": size})
}

// Convert re-encodes a structured file by extension
func (f *FormatsOps) Convert(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	input, ok := f.pathParam(params, "input")
	if !ok {
		return missing("input")
	}
	output, ok := f.pathParam(params, "output")
	if !ok {
		return missing("output")
	}

	from, ok := codecFor(input)
	if !ok {
		return types.Failure("unsupported input format: " + vfs.Base(input))
	}
	to, ok := codecFor(output)
	if !ok {
		return types.Failure("unsupported output format: " + vfs.Base(output))
	}

	parsed, err := f.decode(input, from)
	if err != nil {
		return types.Failure(err.Error())
	}
	size, err := f.encode(output, to, parsed)
	if err != nil {
		return types.Failure(err.Error())
	}

	return types.Success(map[string]interface{}{
		"converted": true,
		"input":     input,
		"output":    output,
		"size":      size,
	})
}

func (f *FormatsOps) decode(path string, c codec) (interface{}, error) {
	content, err := f.FS.ReadFile(path, "/")
	if err != nil {
		return nil, err
	}

	var parsed interface{}
	if c.name == "TOML" {
		// TOML documents are always tables.
		table := map[string]interface{}{}
		if err := c.unmarshal([]byte(content), &table); err != nil {
			return nil, fmt.Errorf("%s parse error: %v", c.name, err)
		}
		return table, nil
	}
	if err := c.unmarshal([]byte(content), &parsed); err != nil {
		return nil, fmt.Errorf("%s parse error: %v", c.name, err)
	}
	return parsed, nil
}

func (f *FormatsOps) encode(path string, c codec, data interface{}) (int, error) {
	encoded, err := c.marshal(data)
	if err != nil {
		return 0, fmt.Errorf("%s encoding error: %v", c.name, err)
	}
	if _, err := f.FS.WriteFile(path, "/", string(encoded)); err != nil {
		return 0, err
	}
	return len(encoded), nil
}
