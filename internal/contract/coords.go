package contract

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	LatitudeMin  = -90.0
	LatitudeMax  = 90.0
	LongitudeMin = -180.0
	LongitudeMax = 180.0
)

// Coordinate keeps the raw client text of a latitude/longitude value.
// Clients send coordinates as either JSON strings or numbers; both are
// accepted and coerced during validation, not during decoding.
type Coordinate string

func (c *Coordinate) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = Coordinate(s)
		return nil
	}
	*c = Coordinate(data)
	return nil
}

// ParseLatitude coerces an optional raw latitude. A nil input is valid and
// yields nil: absent and null coordinates are both allowed.
func ParseLatitude(raw *Coordinate) (*float64, *FieldError) {
	return parseCoordinate(raw, LatitudeMin, LatitudeMax)
}

func ParseLongitude(raw *Coordinate) (*float64, *FieldError) {
	return parseCoordinate(raw, LongitudeMin, LongitudeMax)
}

func parseCoordinate(raw *Coordinate, min, max float64) (*float64, *FieldError) {
	if raw == nil {
		return nil, nil
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(string(*raw)), 64)
	if err != nil {
		return nil, &FieldError{Code: CodeInvalidFormat, Message: "must be a valid number"}
	}
	// ParseFloat accepts "NaN" and "Inf" without error; neither is a usable
	// coordinate and NaN compares false against both bounds.
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return nil, &FieldError{Code: CodeInvalidFormat, Message: "must be a valid number"}
	}
	if value < min || value > max {
		return nil, &FieldError{
			Code:    CodeOutOfRange,
			Message: fmt.Sprintf("must be between %g and %g", min, max),
		}
	}
	return &value, nil
}
