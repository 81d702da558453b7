// Package voter defines the voter record shared by loaders, the search engine and the front-ends.
package voter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// Text is a record field that is always text once decoded.
// Values are rendered the way a browser's String(v || '') would: missing,
// null, false and zero give "", other numbers their shortest decimal form.
// Nested objects and lists are kept as their printed form so one odd field
// never fails a load.
type Text string

// String returns the raw field value.
func (t Text) String() string { return string(t) }

// Trimmed returns the value without leading and trailing whitespace.
func (t Text) Trimmed() string { return strings.TrimSpace(string(t)) }

// UnmarshalJSON accepts any JSON value.
func (t *Text) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return err
	}
	*t = Text(textOf(v))
	return nil
}

// UnmarshalYAML accepts any node. Strings are kept verbatim.
func (t *Text) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.ShortTag() == "!!str" {
		*t = Text(node.Value)
		return nil
	}
	var v any
	if err := node.Decode(&v); err != nil {
		return fmt.Errorf("voter: line %d: %w", node.Line, err)
	}
	*t = Text(textOf(v))
	return nil
}

// DecodeMsgpack accepts any msgpack value, nil included.
func (t *Text) DecodeMsgpack(dec *msgpack.Decoder) error {
	v, err := dec.DecodeInterfaceLoose()
	if err != nil {
		return err
	}
	*t = Text(textOf(v))
	return nil
}

func textOf(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case json.Number:
		return numberText(x)
	case bool:
		if !x {
			return ""
		}
		return "true"
	case int:
		return intText(int64(x))
	case int64:
		return intText(x)
	case uint64:
		return strconv.FormatUint(x, 10)
	case float64:
		return floatText(x)
	case float32:
		return floatText(float64(x))
	default:
		return fmt.Sprint(x)
	}
}

func intText(n int64) string {
	if n == 0 {
		return ""
	}
	return strconv.FormatInt(n, 10)
}

// numberText keeps plain integer literals digit for digit, so long ids
// survive, and formats everything else as a float.
func numberText(n json.Number) string {
	s := n.String()
	if strings.Trim(strings.TrimPrefix(s, "-"), "0123456789") == "" {
		if strings.Trim(s, "-0") == "" {
			return ""
		}
		return s
	}
	f, err := n.Float64()
	if err != nil {
		return s
	}
	return floatText(f)
}

// floatText formats f as JavaScript's Number#toString does for finite values.
func floatText(f float64) string {
	if f == 0 || math.IsNaN(f) {
		return ""
	}
	if abs := math.Abs(f); abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	mant, exp, _ := strings.Cut(strconv.FormatFloat(f, 'e', -1, 64), "e")
	sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
	return mant + "e" + sign + digits
}

// Record is one voter as found in the dataset.
// Only the identifiers and the two name triples are read by the search engine,
// everything else is carried through for display.
type Record struct {
	ID          Text `json:"id" yaml:"id" msgpack:"id"`
	VoterCardID Text `json:"vcardid" yaml:"vcardid" msgpack:"vcardid"`

	FirstName  Text `json:"e_first_name" yaml:"e_first_name" msgpack:"e_first_name"`
	MiddleName Text `json:"e_middle_name" yaml:"e_middle_name" msgpack:"e_middle_name"`
	LastName   Text `json:"e_last_name" yaml:"e_last_name" msgpack:"e_last_name"`

	FirstNameLocal  Text `json:"l_first_name" yaml:"l_first_name" msgpack:"l_first_name"`
	MiddleNameLocal Text `json:"l_middle_name" yaml:"l_middle_name" msgpack:"l_middle_name"`
	LastNameLocal   Text `json:"l_last_name" yaml:"l_last_name" msgpack:"l_last_name"`

	BoothID      Text `json:"boothid,omitempty" yaml:"boothid,omitempty" msgpack:"boothid,omitempty"`
	BoothNo      Text `json:"booth_no,omitempty" yaml:"booth_no,omitempty" msgpack:"booth_no,omitempty"`
	BoothAddress Text `json:"l_boothaddress,omitempty" yaml:"l_boothaddress,omitempty" msgpack:"l_boothaddress,omitempty"`
	Address      Text `json:"l_address,omitempty" yaml:"l_address,omitempty" msgpack:"l_address,omitempty"`
	Mobile1      Text `json:"mobile_no1,omitempty" yaml:"mobile_no1,omitempty" msgpack:"mobile_no1,omitempty"`
	Mobile2      Text `json:"mobile_no2,omitempty" yaml:"mobile_no2,omitempty" msgpack:"mobile_no2,omitempty"`
	Email        Text `json:"emailid,omitempty" yaml:"emailid,omitempty" msgpack:"emailid,omitempty"`
}

// LatinNames returns first, middle and last name in Latin script, untrimmed.
func (r *Record) LatinNames() [3]string {
	return [3]string{string(r.FirstName), string(r.MiddleName), string(r.LastName)}
}

// LocalNames returns first, middle and last name in the native script, untrimmed.
func (r *Record) LocalNames() [3]string {
	return [3]string{string(r.FirstNameLocal), string(r.MiddleNameLocal), string(r.LastNameLocal)}
}

// LatinName joins the non-blank Latin name parts, or "Unknown".
func (r *Record) LatinName() string {
	if name := joinNonBlank(r.LatinNames()); name != "" {
		return name
	}
	return "Unknown"
}

// LocalName joins the non-blank native-script name parts. It may be empty.
func (r *Record) LocalName() string {
	return joinNonBlank(r.LocalNames())
}

// FullName is the card title: the Latin name, followed by the native name
// in parentheses when one exists and differs.
func (r *Record) FullName() string {
	latin := r.LatinName()
	local := r.LocalName()
	if local != "" && local != latin {
		return latin + " (" + local + ")"
	}
	return latin
}

// DisplayID returns the id or "N/A".
func (r *Record) DisplayID() string {
	return orNA(r.ID)
}

// DisplayCardID returns the voter card id or "N/A".
func (r *Record) DisplayCardID() string {
	return orNA(r.VoterCardID)
}

func orNA(t Text) string {
	if t == "" {
		return "N/A"
	}
	return string(t)
}

func joinNonBlank(parts [3]string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.TrimSpace(strings.Join(kept, " "))
}
