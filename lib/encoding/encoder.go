// Package encoding serializes event-binding descriptors into markup-safe
// attribute values.
//
// A descriptor names the instance and handler a markup event attribute
// routes to. It crosses the markup boundary as msgpack wrapped in unpadded
// URL-safe base64, so values never need attribute escaping and carry no
// evaluatable code.
package encoding

import (
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// ErrInvalidFormat reports a descriptor string that cannot be decoded.
var ErrInvalidFormat = errors.New("encoding: invalid descriptor format")

// Descriptor identifies a registered handler on a live instance.
type Descriptor struct {
	Instance string `msgpack:"i"`
	Handler  string `msgpack:"h"`
}

// Encode serializes a descriptor into its attribute-value form.
func Encode(d Descriptor) string {
	packed, _ := msgpack.Marshal(d)
	return base64.RawURLEncoding.EncodeToString(packed)
}

// Decode parses an attribute value back into a descriptor. Values that are
// not valid base64, not valid msgpack, or that name no instance or handler
// fail with ErrInvalidFormat.
func Decode(encoded string) (Descriptor, error) {
	packed, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return Descriptor{}, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	var d Descriptor
	if err := msgpack.Unmarshal(packed, &d); err != nil {
		return Descriptor{}, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	if d.Instance == "" || d.Handler == "" {
		return Descriptor{}, fmt.Errorf("%w: empty routing fields", ErrInvalidFormat)
	}
	return d, nil
}
