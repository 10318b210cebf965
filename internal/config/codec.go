package config

import (
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// codec encodes a Config in one file format.
type codec struct {
	marshal   func(any) ([]byte, error)
	unmarshal func([]byte, any) error
}

var (
	yamlCodec = codec{marshal: yaml.Marshal, unmarshal: yaml.Unmarshal}
	tomlCodec = codec{marshal: toml.Marshal, unmarshal: toml.Unmarshal}
)

// codecFor picks the codec from the file extension: .toml is TOML, anything
// else YAML.
func codecFor(path string) codec {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return tomlCodec
	}
	return yamlCodec
}
