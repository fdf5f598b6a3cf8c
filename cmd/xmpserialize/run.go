package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/zoobzio/xmp"
	"github.com/zoobzio/xmp/bson"
	"github.com/zoobzio/xmp/json"
	"github.com/zoobzio/xmp/msgpack"
	"github.com/zoobzio/xmp/yaml"
)

var decoders = map[string]func() xmp.Decoder{
	"json":    json.New,
	"yaml":    yaml.New,
	"msgpack": msgpack.New,
	"bson":    bson.New,
}

var extensions = map[string]string{
	".json":    "json",
	".yaml":    "yaml",
	".yml":     "yaml",
	".msgpack": "msgpack",
	".mpk":     "msgpack",
	".bson":    "bson",
}

// decoderFor picks a decoder by explicit format, then by file extension.
func decoderFor(format, path string) (xmp.Decoder, error) {
	if format == "" {
		format = extensions[strings.ToLower(filepath.Ext(path))]
	}
	if format == "" {
		format = "json"
	}
	newDecoder, ok := decoders[strings.ToLower(format)]
	if !ok {
		return nil, fmt.Errorf("unknown format %q", format)
	}
	return newDecoder(), nil
}

func run(ctx context.Context, opts *options, path string, indentSet bool, stdin io.Reader, stdout io.Writer) error {
	cfg, err := loadConfig(opts.config)
	if err != nil {
		return err
	}

	namespaces := append(cfg.Namespaces, opts.namespaces...)
	indent := cfg.Indent
	if indentSet {
		indent = opts.indent
	}

	dec, err := decoderFor(opts.format, path)
	if err != nil {
		return err
	}

	var data []byte
	if path == "" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return err
	}

	log := logrus.WithField("format", dec.ContentType())
	log.WithField("bytes", len(data)).Debug("decoding input")

	st, err := xmp.Decode(ctx, dec, data)
	if err != nil {
		return err
	}

	s := xmp.New(
		xmp.WithNamespaces(namespaces...),
		xmp.WithBags(append(cfg.Bags, opts.bags...)...),
		xmp.WithIndent(indent),
	)
	out, err := s.Serialize(ctx, st)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"properties": st.Len(),
		"namespaces": len(namespaces),
		"bytes":      len(out),
	}).Debug("serialized document")

	if opts.output != "" {
		return os.WriteFile(opts.output, out, 0o644)
	}
	_, err = stdout.Write(out)
	return err
}
