package xmp_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/zoobzio/xmp"
)

const (
	header   = `<?xml version="1.0" encoding="UTF-8"?>`
	rdfOpen  = header + `<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#">`
	ns1Open  = header + `<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#" xmlns:ns1="http://ns1.com">`
	ns2Open  = header + `<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#" xmlns:ns1="http://ns1.com" xmlns:ns2="http://ns2.com">`
	rdfClose = `</rdf:RDF>`
)

var epoch = time.Unix(0, 0)

// mixed mirrors [123, "text", null, true, undefined, false].
func mixed() xmp.Value {
	return xmp.Seq(123, "text", nil, true, xmp.Null(), false)
}

type serializeCase struct {
	name string
	st   *xmp.Structure
	opts []xmp.Option
	want string
}

func runSerializeCases(t *testing.T, tests []serializeCase) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := xmp.Serialize(context.Background(), tt.st, tt.opts...)
			if err != nil {
				t.Fatalf("Serialize() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, string(got)); diff != "" {
				t.Errorf("Serialize() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSerialize_Simple(t *testing.T) {
	runSerializeCases(t, []serializeCase{
		{
			name: "undefined",
			st:   xmp.NewStructure().Set("key", xmp.Null()),
			want: rdfOpen + `<rdf:Description/>` + rdfClose,
		},
		{
			name: "null",
			st:   xmp.NewStructure().Set("key", nil),
			want: rdfOpen + `<rdf:Description/>` + rdfClose,
		},
		{
			name: "boolean",
			st:   xmp.NewStructure().Set("key1", true).Set("key2", false),
			want: rdfOpen + `<rdf:Description><key1>True</key1><key2>False</key2></rdf:Description>` + rdfClose,
		},
		{
			name: "integer",
			st:   xmp.NewStructure().Set("key", 1234),
			want: rdfOpen + `<rdf:Description><key>1234</key></rdf:Description>` + rdfClose,
		},
		{
			name: "real",
			st:   xmp.NewStructure().Set("key", 123.45),
			want: rdfOpen + `<rdf:Description><key>123.45</key></rdf:Description>` + rdfClose,
		},
		{
			name: "text",
			st:   xmp.NewStructure().Set("key", "text"),
			want: rdfOpen + `<rdf:Description><key>text</key></rdf:Description>` + rdfClose,
		},
		{
			name: "uri",
			st:   xmp.NewStructure().Set("key", "http://www.adobe.com"),
			want: rdfOpen + `<rdf:Description><key rdf:resource="http://www.adobe.com"/></rdf:Description>` + rdfClose,
		},
		{
			name: "date",
			st:   xmp.NewStructure().Set("key", epoch),
			want: rdfOpen + `<rdf:Description><key>1970-01-01T00:00:00.000Z</key></rdf:Description>` + rdfClose,
		},
	})
}

func TestSerialize_Sequence(t *testing.T) {
	runSerializeCases(t, []serializeCase{
		{
			name: "undefined",
			st:   xmp.NewStructure().Set("key", xmp.Seq(xmp.Null())),
			want: rdfOpen + `<rdf:Description><key><rdf:Seq/></key></rdf:Description>` + rdfClose,
		},
		{
			name: "null",
			st:   xmp.NewStructure().Set("key", []any{nil}),
			want: rdfOpen + `<rdf:Description><key><rdf:Seq/></key></rdf:Description>` + rdfClose,
		},
		{
			name: "boolean",
			st:   xmp.NewStructure().Set("key", []bool{true, false}),
			want: rdfOpen + `<rdf:Description><key><rdf:Seq><rdf:li>True</rdf:li><rdf:li>False</rdf:li></rdf:Seq></key></rdf:Description>` + rdfClose,
		},
		{
			name: "integer",
			st:   xmp.NewStructure().Set("key", []int{1234}),
			want: rdfOpen + `<rdf:Description><key><rdf:Seq><rdf:li>1234</rdf:li></rdf:Seq></key></rdf:Description>` + rdfClose,
		},
		{
			name: "real",
			st:   xmp.NewStructure().Set("key", []float64{123.45}),
			want: rdfOpen + `<rdf:Description><key><rdf:Seq><rdf:li>123.45</rdf:li></rdf:Seq></key></rdf:Description>` + rdfClose,
		},
		{
			name: "text",
			st:   xmp.NewStructure().Set("key", []string{"text"}),
			want: rdfOpen + `<rdf:Description><key><rdf:Seq><rdf:li>text</rdf:li></rdf:Seq></key></rdf:Description>` + rdfClose,
		},
		{
			name: "uri",
			st:   xmp.NewStructure().Set("key", []string{"http://www.adobe.com"}),
			want: rdfOpen + `<rdf:Description><key><rdf:Seq><rdf:li rdf:resource="http://www.adobe.com"/></rdf:Seq></key></rdf:Description>` + rdfClose,
		},
		{
			name: "date",
			st:   xmp.NewStructure().Set("key", []time.Time{epoch}),
			want: rdfOpen + `<rdf:Description><key><rdf:Seq><rdf:li>1970-01-01T00:00:00.000Z</rdf:li></rdf:Seq></key></rdf:Description>` + rdfClose,
		},
		{
			name: "empty",
			st:   xmp.NewStructure().Set("key", []string{}),
			want: rdfOpen + `<rdf:Description><key><rdf:Seq/></key></rdf:Description>` + rdfClose,
		},
	})
}

func TestSerialize_Bag(t *testing.T) {
	const bag = `<rdf:Bag><rdf:li>123</rdf:li><rdf:li>text</rdf:li><rdf:li>True</rdf:li><rdf:li>False</rdf:li></rdf:Bag>`

	runSerializeCases(t, []serializeCase{
		{
			name: "top-level",
			st:   xmp.NewStructure().Set("key", mixed()),
			opts: []xmp.Option{xmp.WithBags("key")},
			want: rdfOpen + `<rdf:Description><key>` + bag + `</key></rdf:Description>` + rdfClose,
		},
		{
			name: "nested-struct",
			st:   xmp.NewStructure().Set("top", xmp.NewStructure().Set("key", mixed())),
			opts: []xmp.Option{xmp.WithBags("key")},
			want: rdfOpen + `<rdf:Description><top><rdf:Description><key>` + bag + `</key></rdf:Description></top></rdf:Description>` + rdfClose,
		},
		{
			name: "nested-struct-array",
			st:   xmp.NewStructure().Set("top", xmp.Seq(xmp.NewStructure().Set("key", mixed()))),
			opts: []xmp.Option{xmp.WithBags("key")},
			want: rdfOpen + `<rdf:Description><top><rdf:Seq><rdf:li><rdf:Description><key>` + bag + `</key></rdf:Description></rdf:li></rdf:Seq></top></rdf:Description>` + rdfClose,
		},
		{
			name: "unlisted key stays a sequence",
			st:   xmp.NewStructure().Set("other", xmp.Seq("a")),
			opts: []xmp.Option{xmp.WithBags("key")},
			want: rdfOpen + `<rdf:Description><other><rdf:Seq><rdf:li>a</rdf:li></rdf:Seq></other></rdf:Description>` + rdfClose,
		},
	})
}

func TestSerialize_Namespaces(t *testing.T) {
	ns1 := xmp.WithNamespace("ns1", "http://ns1.com")
	ns2 := xmp.WithNamespace("ns2", "http://ns2.com")

	runSerializeCases(t, []serializeCase{
		{
			name: "simple",
			st:   xmp.NewStructure().Set("ns1:key", "value"),
			opts: []xmp.Option{ns1},
			want: ns1Open + `<rdf:Description><ns1:key>value</ns1:key></rdf:Description>` + rdfClose,
		},
		{
			name: "struct",
			st:   xmp.NewStructure().Set("ns1:key1", xmp.NewStructure().Set("ns1:key2", "value")),
			opts: []xmp.Option{ns1},
			want: ns1Open + `<rdf:Description><ns1:key1><rdf:Description><ns1:key2>value</ns1:key2></rdf:Description></ns1:key1></rdf:Description>` + rdfClose,
		},
		{
			name: "sequence",
			st:   xmp.NewStructure().Set("ns1:key1", xmp.Seq("value")),
			opts: []xmp.Option{ns1},
			want: ns1Open + `<rdf:Description><ns1:key1><rdf:Seq><rdf:li>value</rdf:li></rdf:Seq></ns1:key1></rdf:Description>` + rdfClose,
		},
		{
			name: "bag",
			st:   xmp.NewStructure().Set("ns1:key1", xmp.Seq("value")),
			opts: []xmp.Option{ns1, xmp.WithBags("ns1:key1")},
			want: ns1Open + `<rdf:Description><ns1:key1><rdf:Bag><rdf:li>value</rdf:li></rdf:Bag></ns1:key1></rdf:Description>` + rdfClose,
		},
		{
			name: "nested-struct",
			st:   xmp.NewStructure().Set("ns1:key", xmp.NewStructure().Set("ns2:key", "value")),
			opts: []xmp.Option{ns1, ns2},
			want: ns2Open + `<rdf:Description><ns1:key><rdf:Description><ns2:key>value</ns2:key></rdf:Description></ns1:key></rdf:Description>` + rdfClose,
		},
		{
			name: "nested-sequence",
			st:   xmp.NewStructure().Set("ns1:key", xmp.Seq(xmp.NewStructure().Set("ns2:key", "value"))),
			opts: []xmp.Option{xmp.WithNamespaces(xmp.Namespace{Prefix: "ns1", URI: "http://ns1.com"}, xmp.Namespace{Prefix: "ns2", URI: "http://ns2.com"})},
			want: ns2Open + `<rdf:Description><ns1:key><rdf:Seq><rdf:li><rdf:Description><ns2:key>value</ns2:key></rdf:Description></rdf:li></rdf:Seq></ns1:key></rdf:Description>` + rdfClose,
		},
		{
			name: "rdf prefix is declared once",
			st:   xmp.NewStructure().Set("key", "value"),
			opts: []xmp.Option{xmp.WithNamespace("rdf", xmp.RDFNamespace)},
			want: rdfOpen + `<rdf:Description><key>value</key></rdf:Description>` + rdfClose,
		},
	})
}

func TestSerialize_EdgeCases(t *testing.T) {
	runSerializeCases(t, []serializeCase{
		{
			name: "nil structure",
			st:   nil,
			want: rdfOpen + `<rdf:Description/>` + rdfClose,
		},
		{
			name: "empty string",
			st:   xmp.NewStructure().Set("key", ""),
			want: rdfOpen + `<rdf:Description><key/></rdf:Description>` + rdfClose,
		},
		{
			name: "empty nested structure",
			st:   xmp.NewStructure().Set("key", xmp.NewStructure()),
			want: rdfOpen + `<rdf:Description><key><rdf:Description/></key></rdf:Description>` + rdfClose,
		},
		{
			name: "text escaping",
			st:   xmp.NewStructure().Set("key", `a < b & "c" > d`),
			want: rdfOpen + `<rdf:Description><key>a &lt; b &amp; "c" &gt; d</key></rdf:Description>` + rdfClose,
		},
		{
			name: "uri attribute escaping",
			st:   xmp.NewStructure().Set("key", "http://example.com/?a=1&b=2"),
			want: rdfOpen + `<rdf:Description><key rdf:resource="http://example.com/?a=1&amp;b=2"/></rdf:Description>` + rdfClose,
		},
		{
			name: "text with spaces is not a uri",
			st:   xmp.NewStructure().Set("key", "see http://www.adobe.com"),
			want: rdfOpen + `<rdf:Description><key>see http://www.adobe.com</key></rdf:Description>` + rdfClose,
		},
		{
			name: "non-http scheme is a uri",
			st:   xmp.NewStructure().Set("key", "urn:isbn:0451450523"),
			want: rdfOpen + `<rdf:Description><key rdf:resource="urn:isbn:0451450523"/></rdf:Description>` + rdfClose,
		},
		{
			name: "insertion order",
			st:   xmp.NewStructure().Set("b", 1).Set("a", 2).Set("c", 3),
			want: rdfOpen + `<rdf:Description><b>1</b><a>2</a><c>3</c></rdf:Description>` + rdfClose,
		},
		{
			name: "negative and large numbers",
			st:   xmp.NewStructure().Set("a", -7).Set("b", 1e21).Set("c", uint64(18446744073709551615)),
			want: rdfOpen + `<rdf:Description><a>-7</a><b>1000000000000000000000</b><c>18446744073709551615</c></rdf:Description>` + rdfClose,
		},
		{
			name: "date in another zone renders in UTC",
			st:   xmp.NewStructure().Set("key", time.Date(2020, 5, 17, 12, 30, 45, 123456789, time.FixedZone("EST", -5*3600))),
			want: rdfOpen + `<rdf:Description><key>2020-05-17T17:30:45.123Z</key></rdf:Description>` + rdfClose,
		},
		{
			name: "custom DateLike",
			st:   xmp.NewStructure().Set("key", fixedDate("2021-01-01")),
			want: rdfOpen + `<rdf:Description><key>2021-01-01</key></rdf:Description>` + rdfClose,
		},
	})
}

type fixedDate string

func (d fixedDate) ISO8601() string { return string(d) }

func TestSerialize_Indent(t *testing.T) {
	st := xmp.NewStructure().
		Set("ns1:title", "value").
		Set("ns1:subject", xmp.Seq("a", "b"))

	got, err := xmp.Serialize(context.Background(), st,
		xmp.WithNamespace("ns1", "http://ns1.com"),
		xmp.WithBags("ns1:subject"),
		xmp.WithIndent("  "),
	)
	if err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}

	want := header + "\n" +
		`<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#" xmlns:ns1="http://ns1.com">` + "\n" +
		"  <rdf:Description>\n" +
		"    <ns1:title>value</ns1:title>\n" +
		"    <ns1:subject>\n" +
		"      <rdf:Bag>\n" +
		"        <rdf:li>a</rdf:li>\n" +
		"        <rdf:li>b</rdf:li>\n" +
		"      </rdf:Bag>\n" +
		"    </ns1:subject>\n" +
		"  </rdf:Description>\n" +
		"</rdf:RDF>\n"
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Errorf("Serialize() mismatch (-want +got):\n%s", diff)
	}
}

func TestSerialize_Invalid(t *testing.T) {
	t.Run("function", func(t *testing.T) {
		st := xmp.NewStructure().Set("key", func() {})
		out, err := xmp.Serialize(context.Background(), st)
		if out != nil {
			t.Errorf("Serialize() returned %d bytes on error", len(out))
		}
		var uerr *xmp.UnsupportedValueError
		if !errors.As(err, &uerr) {
			t.Fatalf("Serialize() error = %v, want *UnsupportedValueError", err)
		}
		if uerr.Path != "key" {
			t.Errorf("Path = %q, want %q", uerr.Path, "key")
		}
		if !errors.Is(err, xmp.ErrUnsupportedValue) {
			t.Error("error should match ErrUnsupportedValue")
		}
	})

	t.Run("nested-array", func(t *testing.T) {
		st := xmp.NewStructure().Set("key", xmp.Seq(xmp.Seq(123)))
		out, err := xmp.Serialize(context.Background(), st)
		if out != nil {
			t.Errorf("Serialize() returned %d bytes on error", len(out))
		}
		var nerr *xmp.NestedArrayError
		if !errors.As(err, &nerr) {
			t.Fatalf("Serialize() error = %v, want *NestedArrayError", err)
		}
		if nerr.Path != "key[1]" {
			t.Errorf("Path = %q, want %q", nerr.Path, "key[1]")
		}
	})

	t.Run("nested-array after nulls", func(t *testing.T) {
		st := xmp.NewStructure().Set("a", xmp.NewStructure().Set("b", []any{nil, []int{1}}))
		_, err := xmp.Serialize(context.Background(), st)
		var nerr *xmp.NestedArrayError
		if !errors.As(err, &nerr) {
			t.Fatalf("Serialize() error = %v, want *NestedArrayError", err)
		}
		if nerr.Path != "a/b[2]" {
			t.Errorf("Path = %q, want %q", nerr.Path, "a/b[2]")
		}
	})

	t.Run("unsupported inside sequence of structures", func(t *testing.T) {
		st := xmp.NewStructure().Set("top", xmp.Seq(xmp.NewStructure().Set("ch", make(chan int))))
		_, err := xmp.Serialize(context.Background(), st)
		var uerr *xmp.UnsupportedValueError
		if !errors.As(err, &uerr) {
			t.Fatalf("Serialize() error = %v, want *UnsupportedValueError", err)
		}
		if uerr.Path != "top[1]/ch" {
			t.Errorf("Path = %q, want %q", uerr.Path, "top[1]/ch")
		}
	})

	t.Run("NaN", func(t *testing.T) {
		st := xmp.NewStructure().Set("key", xmp.Float(math.NaN()))
		_, err := xmp.Serialize(context.Background(), st)
		if !errors.Is(err, xmp.ErrUnsupportedValue) {
			t.Fatalf("Serialize() error = %v, want ErrUnsupportedValue", err)
		}
	})
}

func TestSerialize_Malformed(t *testing.T) {
	tests := []struct {
		name     string
		st       *xmp.Structure
		opts     []xmp.Option
		wantName string
	}{
		{
			name:     "undeclared prefix",
			st:       xmp.NewStructure().Set("dc:title", "x"),
			wantName: "dc:title",
		},
		{
			name:     "key with space",
			st:       xmp.NewStructure().Set("bad key", "x"),
			wantName: "bad key",
		},
		{
			name:     "key starting with digit",
			st:       xmp.NewStructure().Set("1key", "x"),
			wantName: "1key",
		},
		{
			name:     "empty key",
			st:       xmp.NewStructure().Set("", "x"),
			wantName: "",
		},
		{
			name:     "control character in text",
			st:       xmp.NewStructure().Set("key", "a\x00b"),
			wantName: "key",
		},
		{
			name:     "invalid utf-8 in text",
			st:       xmp.NewStructure().Set("key", "a\xffb"),
			wantName: "key",
		},
		{
			name:     "xmlns prefixed key",
			st:       xmp.NewStructure().Set("xmlns:key", "x"),
			wantName: "xmlns:key",
		},
		{
			name:     "key with empty prefix",
			st:       xmp.NewStructure().Set(":key", "x"),
			wantName: ":key",
		},
		{
			name:     "nested key with empty prefix",
			st:       xmp.NewStructure().Set("key", xmp.Seq(xmp.NewStructure().Set(":inner", 1))),
			wantName: ":inner",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := xmp.Serialize(context.Background(), tt.st, tt.opts...)
			if out != nil {
				t.Errorf("Serialize() returned %d bytes on error", len(out))
			}
			var merr *xmp.MalformedOutputError
			if !errors.As(err, &merr) {
				t.Fatalf("Serialize() error = %v, want *MalformedOutputError", err)
			}
			if merr.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", merr.Name, tt.wantName)
			}
			if !errors.Is(err, xmp.ErrMalformedOutput) {
				t.Error("error should match ErrMalformedOutput")
			}
		})
	}
}

func TestSerialize_Deterministic(t *testing.T) {
	st := xmp.NewStructure().
		Set("ns1:a", map[string]any{"z": 1, "y": []string{"q", "r"}, "x": map[string]int{"k2": 2, "k1": 1}}).
		Set("ns1:b", epoch)
	s := xmp.New(xmp.WithNamespace("ns1", "http://ns1.com"))

	first, err := s.Serialize(context.Background(), st)
	if err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}
	for i := 0; i < 20; i++ {
		again, err := s.Serialize(context.Background(), st)
		if err != nil {
			t.Fatalf("Serialize() error = %v", err)
		}
		if diff := cmp.Diff(string(first), string(again)); diff != "" {
			t.Fatalf("run %d differs (-first +again):\n%s", i, diff)
		}
	}
}

func TestSerializer_Concurrent(t *testing.T) {
	s := xmp.New(xmp.WithBags("key"))
	st := xmp.NewStructure().Set("key", mixed())
	want := rdfOpen + `<rdf:Description><key><rdf:Bag><rdf:li>123</rdf:li><rdf:li>text</rdf:li><rdf:li>True</rdf:li><rdf:li>False</rdf:li></rdf:Bag></key></rdf:Description>` + rdfClose

	errs := make(chan error, 16)
	for i := 0; i < cap(errs); i++ {
		go func() {
			got, err := s.Serialize(context.Background(), st)
			if err == nil && string(got) != want {
				err = errors.New("unexpected output: " + string(got))
			}
			errs <- err
		}()
	}
	for i := 0; i < cap(errs); i++ {
		if err := <-errs; err != nil {
			t.Error(err)
		}
	}
}

func TestSerializer_Marshal(t *testing.T) {
	s := xmp.New()

	t.Run("map", func(t *testing.T) {
		got, err := s.Marshal(map[string]any{"b": "2", "a": 1})
		if err != nil {
			t.Fatalf("Marshal() error = %v", err)
		}
		want := rdfOpen + `<rdf:Description><a>1</a><b>2</b></rdf:Description>` + rdfClose
		if diff := cmp.Diff(want, string(got)); diff != "" {
			t.Errorf("Marshal() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("nil", func(t *testing.T) {
		got, err := s.Marshal(nil)
		if err != nil {
			t.Fatalf("Marshal() error = %v", err)
		}
		if want := rdfOpen + `<rdf:Description/>` + rdfClose; string(got) != want {
			t.Errorf("Marshal() = %q, want %q", got, want)
		}
	})

	t.Run("scalar", func(t *testing.T) {
		_, err := s.Marshal(42)
		if !errors.Is(err, xmp.ErrUnsupportedValue) {
			t.Errorf("Marshal(42) error = %v, want ErrUnsupportedValue", err)
		}
	})
}

func TestSerializer_ContentType(t *testing.T) {
	if got := xmp.New().ContentType(); got != "application/rdf+xml" {
		t.Errorf("ContentType() = %q, want %q", got, "application/rdf+xml")
	}
}
