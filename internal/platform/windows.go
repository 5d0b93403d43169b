package platform

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"
)

// windowsPlatform discovers executables and Start Menu shortcuts.
type windowsPlatform struct {
	env Env
}

func (p *windowsPlatform) Name() string { return "windows" }

func (p *windowsPlatform) VolumeRoots(ctx context.Context) (Volumes, error) {
	return localVolumeRoots(ctx)
}

func (p *windowsPlatform) FallbackRoots() []string {
	if drive := p.env.get("SystemDrive"); drive != "" {
		return []string{normalizeMount(drive)}
	}
	return []string{`C:\`}
}

func (p *windowsPlatform) ApplicationDirs() []string {
	var dirs []string
	add := func(base string, elem ...string) {
		if base == "" {
			return
		}
		dirs = append(dirs, filepath.Join(append([]string{base}, elem...)...))
	}

	add(p.env.get("ProgramFiles"))
	add(p.env.get("ProgramFiles(x86)"))
	add(p.env.get("ProgramData"), "Microsoft", "Windows", "Start Menu", "Programs")
	add(p.env.get("APPDATA"), "Microsoft", "Windows", "Start Menu", "Programs")
	return dirs
}

func (p *windowsPlatform) RecursiveAppDirs() bool { return true }

// ClassifyApp accepts .exe and .lnk files, named without the extension.
func (p *windowsPlatform) ClassifyApp(path string, d fs.DirEntry) (string, bool) {
	if d.IsDir() {
		return "", false
	}
	ext := strings.ToLower(filepath.Ext(d.Name()))
	if ext != ".exe" && ext != ".lnk" {
		return "", false
	}
	name := strings.TrimSuffix(d.Name(), filepath.Ext(d.Name()))
	return name, name != ""
}
