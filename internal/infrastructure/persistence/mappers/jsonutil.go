package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
)

func encodeStrings(values []string) (datatypes.JSON, error) {
	if len(values) == 0 {
		return datatypes.JSON("[]"), nil
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("failed to encode string list: %w", err)
	}
	return datatypes.JSON(raw), nil
}

func decodeStrings(raw datatypes.JSON) ([]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var values []string
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("failed to decode string list: %w", err)
	}
	return values, nil
}

func encodeMap(values map[string]any) (datatypes.JSON, error) {
	if len(values) == 0 {
		return datatypes.JSON("{}"), nil
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("failed to encode map: %w", err)
	}
	return datatypes.JSON(raw), nil
}

func decodeMap(raw datatypes.JSON) (map[string]any, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var values map[string]any
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("failed to decode map: %w", err)
	}
	if len(values) == 0 {
		return nil, nil
	}
	return values, nil
}
