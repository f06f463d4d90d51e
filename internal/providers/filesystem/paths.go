package filesystem

import (
	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/types"
	"github.com/GriffinCanCode/WebDesk/backend/internal/vfs"
)

// resolvePath turns a caller path into a canonical filesystem path. "~" expands to
// the home directory and relative paths start from "cwd" when given, else home.
func (ops *FilesystemOps) resolvePath(path string, params map[string]interface{}) string {
	cwd := ops.Home
	if c, ok := params["cwd"].(string); ok && c != "" {
		cwd = vfs.Resolve(vfs.ExpandHome(c, ops.Home), ops.Home)
	}
	return vfs.Resolve(vfs.ExpandHome(path, ops.Home), cwd)
}

// pathParam reads a required path parameter and resolves it.
func (ops *FilesystemOps) pathParam(params map[string]interface{}, name string) (string, bool) {
	raw, ok := params[name].(string)
	if !ok || raw == "" {
		return "", false
	}
	return ops.resolvePath(raw, params), true
}

func missing(name string) (*types.Result, error) {
	return types.Failure(name + " parameter required")
}
