package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Format is the on-disk or wire encoding of a voter roll.
type Format int

const (
	FormatUnknown Format = iota
	FormatJSON           // JSON array of objects
	FormatYAML           // YAML sequence of mappings
	FormatMsgpack        // msgpack array of maps
)

// FormatInfo contains metadata about a dataset format
type FormatInfo struct {
	Format      Format
	Name        string
	Description string
	Extensions  []string
	MediaTypes  []string
	MinSize     int64 // Minimum expected file size in bytes
}

var supportedFormats = map[Format]FormatInfo{
	FormatJSON: {
		Format:      FormatJSON,
		Name:        "json",
		Description: "JSON voter array",
		Extensions:  []string{".json"},
		MediaTypes:  []string{"application/json", "text/json"},
		MinSize:     2, // []
	},
	FormatYAML: {
		Format:      FormatYAML,
		Name:        "yaml",
		Description: "YAML voter sequence",
		Extensions:  []string{".yaml", ".yml"},
		MediaTypes:  []string{"application/yaml", "application/x-yaml", "text/yaml"},
		MinSize:     2, // []
	},
	FormatMsgpack: {
		Format:      FormatMsgpack,
		Name:        "msgpack",
		Description: "msgpack voter snapshot",
		Extensions:  []string{".msgpack", ".mpk", ".bin"},
		MediaTypes:  []string{"application/msgpack", "application/x-msgpack"},
		MinSize:     1, // fixarray header
	},
}

func (f Format) String() string {
	if info, ok := supportedFormats[f]; ok {
		return info.Name
	}
	return "unknown"
}

// ParseFormat maps a format name ("json", "yaml", "yml", "msgpack") onto a Format.
// The empty string yields FormatUnknown, meaning "detect".
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return FormatUnknown, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "msgpack", "mpk":
		return FormatMsgpack, nil
	}
	return FormatUnknown, fmt.Errorf("unsupported dataset format %q", name)
}

// DetectFormat guesses the format from a file name or URL path extension.
func DetectFormat(name string) Format {
	ext := strings.ToLower(filepath.Ext(name))
	for format, info := range supportedFormats {
		for _, e := range info.Extensions {
			if ext == e {
				return format
			}
		}
	}
	return FormatUnknown
}

// FormatForMediaType maps a Content-Type header onto a Format.
func FormatForMediaType(contentType string) Format {
	mediaType := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	for format, info := range supportedFormats {
		for _, mt := range info.MediaTypes {
			if mediaType == mt {
				return format
			}
		}
	}
	return FormatUnknown
}

// ValidateFileFormat checks if a file matches the expected format
func ValidateFileFormat(filename string, expectedFormat Format) error {
	fileInfo, err := os.Stat(filename)
	if err != nil {
		return fmt.Errorf("failed to stat file %s: %w", filename, err)
	}
	if fileInfo.IsDir() {
		return fmt.Errorf("%s is a directory, expected a dataset file", filename)
	}

	formatInfo, exists := supportedFormats[expectedFormat]
	if !exists {
		return fmt.Errorf("unknown format: %v", expectedFormat)
	}

	if fileInfo.Size() < formatInfo.MinSize {
		return fmt.Errorf("file %s is too small (%d bytes) for format %s (minimum: %d bytes)",
			filename, fileInfo.Size(), formatInfo.Description, formatInfo.MinSize)
	}
	return nil
}
