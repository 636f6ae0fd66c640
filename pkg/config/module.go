package config

import (
	_ "embed"
	"encoding/json"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	J "cuelang.org/go/encoding/json"
	"cuelang.org/go/encoding/yaml"
	"github.com/pkg/errors"
)

//go:embed schema.cue
var schemaFile string

//go:embed default.yaml
var DEFAULT []byte

const defaultName = "<default>"

// build compiles a yaml or json source into a CUE value.
func build(ctx *cue.Context, name string, data []byte) (cue.Value, error) {
	switch filepath.Ext(name) {
	case ".json":
		expr, err := J.Extract(name, data)
		if err != nil {
			return cue.Value{}, err
		}
		return ctx.BuildExpr(expr), nil
	case ".yaml", ".yml", "":
		file, err := yaml.Extract(name, data)
		if err != nil {
			return cue.Value{}, err
		}
		return ctx.BuildFile(file), nil
	}

	return cue.Value{}, errors.Errorf("unsupported config format %q", filepath.Ext(name))
}

func unify(ctx *cue.Context, schema cue.Value, name string, data []byte) (cue.Value, error) {
	value, err := build(ctx, name, data)
	if err != nil {
		return schema, errors.Wrapf(err, "could not parse config file %s", name)
	}
	if err := value.Err(); err != nil {
		return schema, errors.Wrapf(err, "could not build config file %s", name)
	}

	schema = schema.Unify(value)
	if err := schema.Validate(); err != nil {
		return schema, errors.Wrapf(err, "config file %s is not valid", name)
	}

	return schema, nil
}

// Process merges the given yaml or json files, in order, over the schema
// defaults. With no files the embedded default configuration is used.
func Process(configPaths []string) (*Config, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaFile)
	if err := schema.Err(); err != nil {
		return nil, errors.Wrap(err, "invalid config schema")
	}

	var err error
	if len(configPaths) == 0 {
		schema, err = unify(ctx, schema, defaultName, DEFAULT)
		if err != nil {
			return nil, err
		}
	}

	for _, path := range configPaths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "could not read config file %s", path)
		}

		schema, err = unify(ctx, schema, path, data)
		if err != nil {
			return nil, err
		}
	}

	data, err := schema.MarshalJSON()
	if err != nil {
		return nil, errors.Wrap(err, "could not aggregate config")
	}

	config := Config{}
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, errors.Wrap(err, "could not decode config")
	}
	return &config, nil
}
