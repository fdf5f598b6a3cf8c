package main

import (
	"fmt"
	"os"

	"github.com/zoobzio/xmp"
	"gopkg.in/yaml.v3"
)

// config is the optional YAML settings file:
//
//	namespaces:
//	  dc: http://purl.org/dc/elements/1.1/
//	  xmp: http://ns.adobe.com/xap/1.0/
//	bags:
//	  - dc:subject
//	indent: "  "
//
// Namespaces are declared in file order.
type config struct {
	Namespaces []xmp.Namespace
	Bags       []string
	Indent     string
}

type configFile struct {
	Namespaces yaml.Node `yaml:"namespaces"`
	Bags       []string  `yaml:"bags"`
	Indent     string    `yaml:"indent"`
}

func loadConfig(path string) (*config, error) {
	if path == "" {
		return &config{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseConfig(data)
}

func parseConfig(data []byte) (*config, error) {
	var raw configFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	cfg := &config{Bags: raw.Bags, Indent: raw.Indent}
	ns := raw.Namespaces
	switch {
	case ns.Kind == 0, ns.Kind == yaml.ScalarNode && ns.ShortTag() == "!!null":
		return cfg, nil
	case ns.Kind == yaml.MappingNode:
	default:
		return nil, fmt.Errorf("config: line %d: namespaces must be a mapping of prefix to URI", ns.Line)
	}
	for i := 0; i+1 < len(ns.Content); i += 2 {
		k, v := ns.Content[i], ns.Content[i+1]
		if k.Kind != yaml.ScalarNode || v.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("config: line %d: namespace entries must be prefix: uri", k.Line)
		}
		cfg.Namespaces = append(cfg.Namespaces, xmp.Namespace{Prefix: k.Value, URI: v.Value})
	}
	return cfg, nil
}
