// Package logging builds the zap logger shared by every backend component.
//
// Production output is JSON; development output is colored console text. The level
// is atomic, so it can be changed while the server runs.
//
//	logger := logging.NewDefault()
//	fs := vfs.New(vfs.DefaultSeed(), logger.Logger)
//	logger.Info("server starting", zap.String("port", "8000"))
package logging
