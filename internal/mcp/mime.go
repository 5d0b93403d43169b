package mcp

import (
	"path/filepath"
	"strings"
)

// mimeTypes maps file extensions to MIME types for the kinds of files a
// launcher typically finds.
var mimeTypes = map[string]string{
	// Documents
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".xls":  "application/vnd.ms-excel",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".ppt":  "application/vnd.ms-powerpoint",
	".pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	".odt":  "application/vnd.oasis.opendocument.text",
	".rtf":  "application/rtf",
	".csv":  "text/csv",

	// Text
	".md":   "text/markdown",
	".txt":  "text/plain",
	".html": "text/html",
	".htm":  "text/html",
	".json": "application/json",
	".yaml": "text/x-yaml",
	".yml":  "text/x-yaml",
	".xml":  "text/xml",
	".toml": "text/x-toml",
	".conf": "text/plain",

	// Source
	".go":  "text/x-go",
	".py":  "text/x-python",
	".js":  "text/javascript",
	".ts":  "text/typescript",
	".sh":  "text/x-sh",
	".c":   "text/x-c",
	".cpp": "text/x-c++",
	".rs":  "text/x-rust",

	// Media
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".svg":  "image/svg+xml",
	".webp": "image/webp",
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".flac": "audio/flac",
	".mp4":  "video/mp4",
	".mkv":  "video/x-matroska",
	".mov":  "video/quicktime",

	// Archives
	".zip": "application/zip",
	".tar": "application/x-tar",
	".gz":  "application/gzip",
	".7z":  "application/x-7z-compressed",
	".iso": "application/x-iso9660-image",
}

// specialFilenames maps specific filenames to MIME types.
var specialFilenames = map[string]string{
	"Dockerfile": "text/x-dockerfile",
	"Makefile":   "text/x-makefile",
}

// MimeTypeForPath returns the MIME type for a file path, checking special
// filenames before the extension. Unknown types are application/octet-stream.
func MimeTypeForPath(path string) string {
	base := filepath.Base(path)
	if mime, ok := specialFilenames[base]; ok {
		return mime
	}

	if ext := strings.ToLower(filepath.Ext(base)); ext != "" {
		if mime, ok := mimeTypes[ext]; ok {
			return mime
		}
	}
	return "application/octet-stream"
}
