package main

import (
	"fmt"
	"os"

	"github.com/prismengine/geomod/pkg/config"
	"github.com/prismengine/geomod/pkg/level"
	"github.com/prismengine/geomod/pkg/scene"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

func build(scenePath string, configs []string) (*level.Store, *config.Config, error) {
	cfg, err := config.Process(configs)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to load configuration")
	}

	document, err := scene.Load(scenePath)
	if err != nil {
		return nil, nil, err
	}

	store, err := scene.Build(document, cfg.BoxSettings())
	if err != nil {
		return nil, nil, err
	}

	return store, cfg, nil
}

func buildCommand(scenePath string, out string, configs []string) error {
	store, cfg, err := build(scenePath, configs)
	if err != nil {
		return err
	}

	options := cfg.EncodeOptions()

	var digest uint64
	if out == "" {
		digest, err = store.EncodeDigest(os.Stdout, options)
	} else {
		digest, err = store.ToFile(out, options)
	}
	if err != nil {
		return err
	}

	log.Info().
		Str("scene", scenePath).
		Int("primitives", store.Len()).
		Str("digest", fmt.Sprintf("%016x", digest)).
		Msg("built level")
	return nil
}
