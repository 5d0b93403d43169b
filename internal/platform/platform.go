// Package platform hides the per-OS differences of discovery behind one
// interface: where the local volumes are, where applications live, and what
// counts as an application. The variant is chosen once at startup.
package platform

import (
	"context"
	"io/fs"
	"os"
	"runtime"
)

// Volumes is the result of volume enumeration. Skip holds absolute mount
// points of pseudo or remote filesystems that may sit below a root.
type Volumes struct {
	Roots []string
	Skip  []string
}

// Platform is the discovery capability of one OS family.
type Platform interface {
	// Name identifies the variant ("windows", "darwin", "posix").
	Name() string

	// VolumeRoots returns the mount points of local volumes to crawl and
	// the mounts a crawl must not descend into.
	VolumeRoots(ctx context.Context) (Volumes, error)

	// FallbackRoots is used when volume enumeration fails or finds nothing.
	FallbackRoots() []string

	// ApplicationDirs returns the well-known application directories in
	// priority order. Missing directories are skipped by the caller.
	ApplicationDirs() []string

	// RecursiveAppDirs reports whether ApplicationDirs are walked recursively.
	RecursiveAppDirs() bool

	// ClassifyApp reports whether the entry at path is an application and,
	// if so, the display name to index it under.
	ClassifyApp(path string, d fs.DirEntry) (name string, ok bool)
}

// Env supplies the environment a Platform reads. Tests substitute it.
type Env struct {
	Getenv  func(string) string
	HomeDir string
}

// OSEnv returns the process environment.
func OSEnv() Env {
	home, _ := os.UserHomeDir()
	return Env{Getenv: os.Getenv, HomeDir: home}
}

func (e Env) get(key string) string {
	if e.Getenv == nil {
		return ""
	}
	return e.Getenv(key)
}

// Detect returns the Platform for the running OS.
func Detect() Platform {
	return ForOS(runtime.GOOS, OSEnv())
}

// ForOS returns the Platform variant for goos.
func ForOS(goos string, env Env) Platform {
	switch goos {
	case "windows":
		return &windowsPlatform{env: env}
	case "darwin":
		return &darwinPlatform{env: env}
	default:
		return &posixPlatform{env: env}
	}
}
