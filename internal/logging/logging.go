// Package logging installs the process-wide slog logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"github.com/tartampluch/go-myancal/internal/config"
)

// Options selects the outputs and the verbosity of the logger.
type Options struct {
	Debug bool
	// Console receives every record; nil disables console output.
	Console io.Writer
	// Level applies when Debug is off. The zero value is Info.
	Level slog.Level
	// File also writes to config.LogFileName under the user cache dir.
	File bool
}

// Setup installs a JSON logger as the slog default.
// The returned closer is nil when no log file was opened.
func Setup(opts Options) io.Closer {
	var writers []io.Writer
	if opts.Console != nil {
		writers = append(writers, opts.Console)
	}

	var logFile *os.File
	if opts.File {
		if logPath, err := FilePath(); err == nil {
			// Truncated on every start.
			f, err := os.OpenFile(logPath, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
			if err == nil {
				writers = append(writers, f)
				logFile = f
			} else {
				fmt.Fprintf(os.Stderr, config.MsgLogWarning, config.ErrLogFile, logPath, err)
			}
		}
	}

	level := opts.Level
	if opts.Debug {
		level = slog.LevelDebug
	}

	handlerOpts := &slog.HandlerOptions{
		Level:     level,
		AddSource: opts.Debug,
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(io.MultiWriter(writers...), handlerOpts)))

	if logFile == nil {
		return nil
	}
	return logFile
}

// FilePath returns the log file location, creating its directory.
func FilePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCacheDir, err)
	}

	appDir := filepath.Join(cacheDir, config.AppID)
	if err := os.MkdirAll(appDir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}

	return filepath.Join(appDir, config.LogFileName), nil
}

// StartupInfo logs the build and runtime environment.
func StartupInfo(env config.Env) {
	slog.Info(config.MsgAppStarting,
		config.LogKeyComponent, config.CompMain,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyCommit, config.Commit),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
		slog.Group(config.LogKeyConfig,
			slog.String(config.LogKeyProvider, env.Provider),
			slog.String(config.LogKeyLang, env.Language),
			slog.String(config.LogKeyPort, env.ServerPort),
		),
	)
}
