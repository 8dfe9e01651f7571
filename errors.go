package jsonschema

import (
	"errors"
	"fmt"
)

// === Network and IO Related Errors ===
var (
	// ErrNoLoaderRegistered is returned when no loader is registered for the specified scheme.
	ErrNoLoaderRegistered = errors.New("no loader registered for scheme")

	// ErrDataRead is returned when data cannot be read from the specified URL.
	ErrDataRead = errors.New("data read failed")

	// ErrNetworkFetch is returned when there is an error fetching from the URL.
	ErrNetworkFetch = errors.New("network fetch failed")

	// ErrInvalidStatusCode is returned when an invalid HTTP status code is returned.
	ErrInvalidStatusCode = errors.New("invalid http status code")
)

// === Serialization Related Errors ===
var (
	// ErrJSONUnmarshal is returned when there is an error unmarshalling JSON.
	ErrJSONUnmarshal = errors.New("json unmarshal failed")

	// ErrXMLUnmarshal is returned when there is an error unmarshalling XML.
	ErrXMLUnmarshal = errors.New("xml unmarshal failed")

	// ErrYAMLUnmarshal is returned when there is an error unmarshalling YAML.
	ErrYAMLUnmarshal = errors.New("yaml unmarshal failed")
)

// === Schema Compilation and Parsing Related Errors ===
var (
	// ErrSchemaCompilation is returned when a schema compilation fails.
	ErrSchemaCompilation = errors.New("schema compilation failed")

	// ErrReferenceResolution is returned when a reference cannot be resolved.
	ErrReferenceResolution = errors.New("reference resolution failed")

	// ErrGlobalReferenceResolution is returned when a global reference cannot be resolved.
	ErrGlobalReferenceResolution = errors.New("global reference resolution failed")

	// ErrJSONPointerSegmentDecode is returned when a segment cannot be decoded.
	ErrJSONPointerSegmentDecode = errors.New("json pointer segment decode failed")

	// ErrJSONPointerSegmentNotFound is returned when a segment is not found in the schema context.
	ErrJSONPointerSegmentNotFound = errors.New("json pointer segment not found")

	// ErrInvalidSchemaType is returned when the JSON schema type is invalid.
	ErrInvalidSchemaType = errors.New("invalid schema type")

	// ErrRegexValidation is returned when one or more regex patterns in a schema fail to compile.
	ErrRegexValidation = errors.New("regex pattern validation failed")

	// ErrUnregisteredFormat is returned when RequireFormat is set and a schema names a format with no registered validator.
	ErrUnregisteredFormat = errors.New("unregistered format")

	// ErrRegistryConflict is returned when a URI is re-registered with a document that differs from what is already cached.
	ErrRegistryConflict = errors.New("schema registry conflict")

	// ErrIPv6AddressNotEnclosed is returned when a URI's IPv6 host is not enclosed in brackets.
	ErrIPv6AddressNotEnclosed = errors.New("ipv6 address must be enclosed in brackets")

	// ErrInvalidIPv6Address is returned when a URI's host fails IPv6 validation.
	ErrInvalidIPv6Address = errors.New("invalid ipv6 address")
)

// === Numeric Related Errors ===
var (
	// ErrRatConversion is returned when a value cannot be converted into a *big.Rat.
	ErrRatConversion = errors.New("rat conversion failed")

	// ErrUnsupportedRatType is returned when the type is unsupported for conversion to *big.Rat.
	ErrUnsupportedRatType = errors.New("unsupported rat type")

	// ErrNilConstValue is returned when trying to unmarshal into a nil ConstValue.
	ErrNilConstValue = errors.New("cannot unmarshal into nil ConstValue")
)

// RegexPatternError reports a keyword whose pattern failed to compile as a
// regular expression, pinpointing where in the schema the bad pattern lives.
type RegexPatternError struct {
	Keyword  string
	Location string
	Pattern  string
	Err      error
}

func (e *RegexPatternError) Error() string {
	return fmt.Sprintf("%s: invalid pattern %q at %s: %v", e.Keyword, e.Pattern, e.Location, e.Err)
}

func (e *RegexPatternError) Unwrap() error {
	return e.Err
}
