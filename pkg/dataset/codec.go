package dataset

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/bastiangx/votersearch/pkg/voter"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// Decode reads a whole voter roll encoded as format.
func Decode(r io.Reader, format Format) ([]voter.Record, error) {
	var records []voter.Record
	var err error

	switch format {
	case FormatJSON:
		err = json.NewDecoder(r).Decode(&records)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&records)
		if err == io.EOF {
			err = nil
		}
	case FormatMsgpack:
		err = msgpack.NewDecoder(r).Decode(&records)
	default:
		return nil, fmt.Errorf("cannot decode format %v", format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s dataset: %w", format, err)
	}
	return records, nil
}

// Export writes records as format. The output decodes back with Decode.
func Export(w io.Writer, records []voter.Record, format Format) error {
	if records == nil {
		records = []voter.Record{}
	}

	var err error
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		err = enc.Encode(records)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err = enc.Encode(records); err == nil {
			err = enc.Close()
		}
	case FormatMsgpack:
		enc := msgpack.NewEncoder(w)
		enc.UseCompactInts(true)
		err = enc.Encode(records)
	default:
		return fmt.Errorf("cannot export format %v", format)
	}
	if err != nil {
		return fmt.Errorf("failed to export %s dataset: %w", format, err)
	}
	return nil
}
