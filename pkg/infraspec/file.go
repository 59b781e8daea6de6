package infraspec

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed schema.json
var schemaJson []byte

// ErrInvalidSpec is returned when a spec file does not match the schema or its invariants.
var ErrInvalidSpec = errors.New("invalid infrastructure spec")

// LoadFile reads a spec record from a .json, .yaml or .yml file. Missing instance_type and region
// take their defaults.
func LoadFile(path string) (InfrastructureSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return InfrastructureSpec{}, fmt.Errorf("reading spec file: %w", err)
	}

	var raw any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &raw)
	default:
		err = json.Unmarshal(data, &raw)
	}
	if err != nil {
		return InfrastructureSpec{}, fmt.Errorf("parsing spec file %s: %w", path, err)
	}

	return Decode(raw)
}

// Decode validates a generic value against the spec schema and converts it.
func Decode(raw any) (InfrastructureSpec, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaJson),
		gojsonschema.NewGoLoader(raw),
	)
	if err != nil {
		return InfrastructureSpec{}, fmt.Errorf("validation error: %w", err)
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return InfrastructureSpec{}, fmt.Errorf("%w: %s", ErrInvalidSpec, strings.Join(errs, "; "))
	}

	data, err := json.Marshal(raw)
	if err != nil {
		return InfrastructureSpec{}, err
	}

	spec := InfrastructureSpec{
		InstanceType: DefaultInstanceType,
		Region:       DefaultRegion,
	}
	if err := json.Unmarshal(data, &spec); err != nil {
		return InfrastructureSpec{}, err
	}

	if err := spec.Validate(); err != nil {
		return InfrastructureSpec{}, fmt.Errorf("%w: %w", ErrInvalidSpec, err)
	}

	return spec, nil
}
