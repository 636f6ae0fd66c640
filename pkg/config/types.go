package config

import (
	"github.com/prismengine/geomod/pkg/level"
)

type BoxSettings struct {
	Epsilon  float32 `json:"epsilon"`
	Friction float32 `json:"friction"`
}

type OutputSettings struct {
	Header []string `json:"header"`
}

type Config struct {
	Box    BoxSettings    `json:"box"`
	Output OutputSettings `json:"output"`
}

func (c *Config) BoxSettings() level.BoxSettings {
	return level.BoxSettings{
		Epsilon:  c.Box.Epsilon,
		Friction: c.Box.Friction,
	}
}

func (c *Config) EncodeOptions() level.EncodeOptions {
	return level.EncodeOptions{
		Header: c.Output.Header,
	}
}
