package main

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/zoobzio/xmp"
)

// namespaceFlag collects repeated prefix=uri values in the order given.
type namespaceFlag []xmp.Namespace

var _ pflag.Value = (*namespaceFlag)(nil)

func (f *namespaceFlag) String() string {
	parts := make([]string, len(*f))
	for i, ns := range *f {
		parts[i] = ns.Prefix + "=" + ns.URI
	}
	return strings.Join(parts, ",")
}

func (f *namespaceFlag) Set(s string) error {
	ns, err := parseNamespace(s)
	if err != nil {
		return err
	}
	*f = append(*f, ns)
	return nil
}

func (f *namespaceFlag) Type() string {
	return "prefix=uri"
}

// parseNamespace splits a prefix=uri flag value.
func parseNamespace(s string) (xmp.Namespace, error) {
	prefix, uri, ok := strings.Cut(s, "=")
	if !ok || prefix == "" || uri == "" {
		return xmp.Namespace{}, fmt.Errorf("invalid namespace %q: expected prefix=uri", s)
	}
	return xmp.Namespace{Prefix: prefix, URI: uri}, nil
}
