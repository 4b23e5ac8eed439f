// Package credential builds the unsigned verifiable-credential JWT payload
// from a CredentialSpec (§4.3 of the spec), and renders its arguments for
// both the credential's credentialSubject claim and the issuer's consent
// message.
package credential

import (
	"encoding/json"
	"fmt"
)

// ArgumentValue is the tagged union of values a CredentialSpec argument may
// take: either a string or a signed 64-bit integer (§9 Design Notes).
type ArgumentValue struct {
	str   string
	i     int64
	isInt bool
}

// StringArg constructs a string-valued argument.
func StringArg(s string) ArgumentValue {
	return ArgumentValue{str: s}
}

// IntArg constructs an integer-valued argument.
func IntArg(i int64) ArgumentValue {
	return ArgumentValue{i: i, isInt: true}
}

// IsInt reports whether the argument holds an integer.
func (v ArgumentValue) IsInt() bool { return v.isInt }

// Int returns the integer value; valid only when IsInt() is true.
func (v ArgumentValue) Int() int64 { return v.i }

// String returns the string value; valid only when IsInt() is false.
func (v ArgumentValue) String() string { return v.str }

// MarshalJSON encodes a string argument as a JSON string and an integer
// argument as a JSON number.
func (v ArgumentValue) MarshalJSON() ([]byte, error) {
	if v.isInt {
		return json.Marshal(v.i)
	}
	return json.Marshal(v.str)
}

// UnmarshalJSON decodes a JSON string or number into an ArgumentValue.
func (v *ArgumentValue) UnmarshalJSON(data []byte) error {
	var asInt int64
	if err := json.Unmarshal(data, &asInt); err == nil {
		*v = IntArg(asInt)
		return nil
	}
	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		*v = StringArg(asString)
		return nil
	}
	return fmt.Errorf("credential: argument value is neither a string nor an integer: %s", data)
}

// Equal reports whether v and other carry the same tag and value.
func (v ArgumentValue) Equal(other ArgumentValue) bool {
	if v.isInt != other.isInt {
		return false
	}
	if v.isInt {
		return v.i == other.i
	}
	return v.str == other.str
}

// Spec describes a requested credential: its type, and optional named
// arguments (§3 Data Model, CredentialSpec).
type Spec struct {
	CredentialType string                   `json:"credential_type"`
	Arguments      map[string]ArgumentValue `json:"arguments,omitempty"`
}
