package submission

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var ErrEmptyPayload = errors.New("empty payload")
var ErrInvalidEncoding = errors.New("invalid utf-8 encoding in payload")
var ErrInvalidPayloadFormat = errors.New("payload is not a json object")
var ErrInvalidTimestamp = errors.New("timestamp is not a string")

// IngestionPaths are the equivalent entry points a node may post readings to.
var IngestionPaths = []string{"/sensor/send-data", "/sensor/data", "/data", "/sensor", "/"}

// DiagnosticPaths are paths that misconfigured nodes commonly try. They are
// logged and answered with not found.
var DiagnosticPaths = []string{"/api", "/coap", "/sensors", "/device", "/submit"}

type Submission struct {
	APIKey    string
	NodeID    string
	ZoneID    *string
	Timestamp string
	Fields    map[string]any
	MetaData  map[string]any
}

// Credentials holds values found outside of the payload.
type Credentials struct {
	HeaderAPIKey string
	QueryAPIKey  string
	QueryNodeID  string
}

// ParseQuery extracts api_key and node_id from a raw query string.
func ParseQuery(raw string) Credentials {
	if raw == "" {
		return Credentials{}
	}
	return ParseQueryTokens(strings.Split(raw, "&"))
}

// ParseQueryTokens extracts api_key and node_id from key=value tokens. Tokens
// without '=' are skipped and unknown keys are ignored.
func ParseQueryTokens(tokens []string) Credentials {
	c := Credentials{}

	for _, token := range tokens {
		key, value, found := strings.Cut(token, "=")
		if !found {
			continue
		}

		switch key {
		case "api_key":
			c.QueryAPIKey = value
		case "node_id":
			c.QueryNodeID = value
		}
	}

	return c
}

// ParsePayload decodes a submission body into a generic object. Numbers are
// kept as json.Number.
func ParsePayload(payload []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(payload)) == 0 {
		return nil, ErrEmptyPayload
	}

	if !utf8.Valid(payload) {
		return nil, ErrInvalidEncoding
	}

	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()

	var body any
	if err := dec.Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPayloadFormat, err.Error())
	}

	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data after json value", ErrInvalidPayloadFormat)
	}

	obj, ok := body.(map[string]any)
	if !ok {
		return nil, ErrInvalidPayloadFormat
	}

	return obj, nil
}

// Parse builds a submission from the payload and any out of band credentials.
// An API key from a header wins over the query string, which wins over the body.
func Parse(creds Credentials, payload []byte) (Submission, error) {
	body, err := ParsePayload(payload)
	if err != nil {
		return Submission{}, err
	}

	if ts, ok := body["timestamp"]; ok && ts != nil {
		if _, isString := ts.(string); !isString {
			return Submission{}, ErrInvalidTimestamp
		}
	}

	s := Submission{
		APIKey:    firstNonEmpty(creds.HeaderAPIKey, creds.QueryAPIKey, stringField(body, "api_key")),
		NodeID:    firstNonEmpty(creds.QueryNodeID, stringField(body, "node_id")),
		Timestamp: stringField(body, "timestamp"),
		Fields:    body,
	}

	if zone := stringField(body, "zone_id"); zone != "" {
		s.ZoneID = &zone
	}

	if meta, ok := body["meta_data"].(map[string]any); ok {
		s.MetaData = meta
	}

	return s, nil
}

func stringField(body map[string]any, key string) string {
	switch v := body[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return v.String()
	default:
		return ""
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
