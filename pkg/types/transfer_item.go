package types

import (
	"net/url"
	"path"
	"path/filepath"
)

// TransferItem is one file to acquire: a resolved source and the directory
// it lands in.
type TransferItem struct {
	// SourcePath is a local filesystem path or a fully-qualified URL
	SourcePath string

	// DestinationDirectory is the absolute directory the file is written to
	DestinationDirectory string

	// CustomFileName overrides the output basename when set
	CustomFileName string

	// IsLocal selects a filesystem copy (true) or a network download (false)
	IsLocal bool
}

// FileName returns the output basename. Remote sources use the last
// segment of the URL path, ignoring query and fragment.
func (t TransferItem) FileName() string {
	if t.CustomFileName != "" {
		return t.CustomFileName
	}
	if t.IsLocal {
		return filepath.Base(t.SourcePath)
	}
	return remoteBase(t.SourcePath)
}

// DestinationPath is the full path of the file the item produces, or ""
// when no file name can be derived.
func (t TransferItem) DestinationPath() string {
	name := t.FileName()
	if name == "" {
		return ""
	}
	return filepath.Join(t.DestinationDirectory, name)
}

// Kind is "local" or "remote"
func (t TransferItem) Kind() string {
	if t.IsLocal {
		return "local"
	}
	return "remote"
}

func remoteBase(raw string) string {
	p := raw
	if u, err := url.Parse(raw); err == nil {
		p = u.Path
	}
	if p == "" {
		return ""
	}
	base := path.Base(p)
	if base == "/" || base == "." {
		return ""
	}
	return base
}
