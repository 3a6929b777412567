package reel

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Vovarama1992/reels-analyzer/internal/models"
)

// InvalidJSONError means the model content is not a JSON document at all.
type InvalidJSONError struct {
	Raw string
	Err error
}

func (e *InvalidJSONError) Error() string {
	return fmt.Sprintf("llm content is not valid json: %v", e.Err)
}

func (e *InvalidJSONError) Unwrap() error { return e.Err }

// SchemaMismatchError means the content parsed but does not fit the summary
// contract.
type SchemaMismatchError struct {
	Field  string
	Reason string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("summary field %q: %s", e.Field, e.Reason)
}

type rawSummary struct {
	Title       json.RawMessage `json:"title"`
	Description json.RawMessage `json:"description"`
	Tags        json.RawMessage `json:"tags"`
	Location    json.RawMessage `json:"location"`
	GeoCode     json.RawMessage `json:"geocode"`
}

// ParseSummary decodes model output (or a caller supplied summary) into the
// canonical Summary. A fence wrapping the whole payload is tolerated; prose
// around the JSON is not.
func ParseSummary(content string) (models.Summary, error) {
	body := stripCodeFence(strings.TrimSpace(content))

	var raw rawSummary
	dec := json.NewDecoder(strings.NewReader(body))
	if err := dec.Decode(&raw); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return models.Summary{}, &SchemaMismatchError{Field: "summary", Reason: "expected a JSON object"}
		}
		return models.Summary{}, &InvalidJSONError{Raw: content, Err: err}
	}
	if rest := strings.TrimSpace(body[dec.InputOffset():]); rest != "" {
		return models.Summary{}, &InvalidJSONError{Raw: content, Err: fmt.Errorf("trailing data after json object")}
	}

	return normalizeSummary(raw)
}

// ParseSummaryJSON validates an already decoded JSON value.
func ParseSummaryJSON(data json.RawMessage) (models.Summary, error) {
	if len(bytes.TrimSpace(data)) == 0 || bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return models.Summary{}, &SchemaMismatchError{Field: "summary", Reason: "missing"}
	}
	return ParseSummary(string(data))
}

func normalizeSummary(raw rawSummary) (models.Summary, error) {
	var s models.Summary

	title, ok, err := optionalString(raw.Title, "title")
	if err != nil {
		return s, err
	}
	title = strings.TrimSpace(title)
	if !ok || title == "" {
		return s, &SchemaMismatchError{Field: "title", Reason: "missing or empty"}
	}
	s.Title = title

	desc, _, err := optionalString(raw.Description, "description")
	if err != nil {
		return s, err
	}
	s.Description = strings.TrimSpace(desc)

	tags, err := parseTags(raw.Tags)
	if err != nil {
		return s, err
	}
	s.Tags = tags

	loc, _, err := optionalString(raw.Location, "location")
	if err != nil {
		return s, err
	}
	loc = strings.TrimSpace(loc)

	geo, geoText := parseGeoCode(raw.GeoCode)
	s.GeoCode = geo
	if loc == "" && geoText != "" {
		loc = geoText
	}
	if loc != "" {
		s.Location = &loc
	}

	return s, nil
}

func optionalString(data json.RawMessage, field string) (string, bool, error) {
	if isNull(data) {
		return "", false, nil
	}
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return "", false, &SchemaMismatchError{Field: field, Reason: "expected a string"}
	}
	return v, true, nil
}

func parseTags(data json.RawMessage) ([]string, error) {
	if isNull(data) {
		return nil, &SchemaMismatchError{Field: "tags", Reason: "missing"}
	}

	var list []json.RawMessage
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, &SchemaMismatchError{Field: "tags", Reason: "expected an array of strings"}
	}

	tags := make([]string, 0, len(list))
	for i, item := range list {
		var tag string
		if err := json.Unmarshal(item, &tag); err != nil {
			return nil, &SchemaMismatchError{Field: "tags", Reason: "item " + strconv.Itoa(i) + " is not a string"}
		}
		tag = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(tag), "#"))
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags, nil
}

// parseGeoCode returns a coordinate only for an object with numeric lat and
// lng. A free-text geocode comes back as text.
func parseGeoCode(data json.RawMessage) (*models.GeoCode, string) {
	if isNull(data) {
		return nil, ""
	}

	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		return nil, strings.TrimSpace(text)
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, ""
	}

	lat, okLat := jsonNumber(obj["lat"])
	lng, okLng := jsonNumber(obj["lng"])
	if !okLat || !okLng {
		return nil, ""
	}
	return &models.GeoCode{Lat: lat, Lng: lng}, ""
}

func jsonNumber(data json.RawMessage) (float64, bool) {
	if isNull(data) {
		return 0, false
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return 0, false
	}
	n, ok := v.(json.Number)
	if !ok {
		return 0, false
	}
	f, err := n.Float64()
	if err != nil {
		return 0, false
	}
	return f, true
}

func isNull(data json.RawMessage) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") || !strings.HasSuffix(s, "```") || len(s) < 6 {
		return s
	}
	inner := strings.TrimSuffix(strings.TrimPrefix(s, "```"), "```")
	if nl := strings.IndexByte(inner, '\n'); nl >= 0 {
		// drop a language hint such as ```json
		if first := strings.TrimSpace(inner[:nl]); !strings.HasPrefix(first, "{") {
			inner = inner[nl+1:]
		}
	}
	return strings.TrimSpace(inner)
}
