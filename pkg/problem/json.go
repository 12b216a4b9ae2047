package problem

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// ContentType is the media type of a serialized Details.
const ContentType = "application/problem+json"

// Marshal encodes d as compact JSON. Absent optional members are omitted.
func Marshal(d *Details) ([]byte, error) {
	if err := d.validate("Marshal"); err != nil {
		return nil, err
	}
	return json.Marshal(d)
}

// Unmarshal decodes and validates a Details document.
func Unmarshal(data []byte) (*Details, error) {
	var d Details
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("decode problem details: %w", err)
	}
	if err := d.validate("Unmarshal"); err != nil {
		return nil, err
	}
	return &d, nil
}

// Write sends d as an HTTP response. The status defaults to 500.
func Write(w http.ResponseWriter, d *Details) error {
	body, err := Marshal(d)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(d.StatusOr(http.StatusInternalServerError))
	_, err = w.Write(body)
	return err
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
