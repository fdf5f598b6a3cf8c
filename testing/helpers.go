// Package testing provides fixtures and assertions for XMP tests.
//
// Every Sample* fixture describes the same photo document, so output from
// any decoder or from FromStruct can be compared against SampleXMP.
package testing

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/zoobzio/xmp"
)

// Namespace URIs used by the fixtures.
const (
	DC        = "http://purl.org/dc/elements/1.1/"
	XMPBasic  = "http://ns.adobe.com/xap/1.0/"
	XMPRights = "http://ns.adobe.com/xap/1.0/rights/"
	PhotoNS   = "http://example.com/ns/photo/"
)

// Epoch returns the Unix epoch in UTC.
func Epoch() time.Time {
	return time.Unix(0, 0).UTC()
}

// Namespaces returns the fixture namespaces in declaration order.
func Namespaces() []xmp.Namespace {
	return []xmp.Namespace{
		{Prefix: "dc", URI: DC},
		{Prefix: "xmp", URI: XMPBasic},
		{Prefix: "xmpRights", URI: XMPRights},
		{Prefix: "photo", URI: PhotoNS},
	}
}

// Options returns the serializer options matching SampleXMP.
func Options() []xmp.Option {
	return []xmp.Option{
		xmp.WithNamespaces(Namespaces()...),
		xmp.WithBags("dc:subject"),
	}
}

// Camera is a nested struct rendered as rdf:Description.
type Camera struct {
	Make     string  `xmp:"photo:make"`
	Aperture float64 `xmp:"photo:aperture"`
}

// Photo is the struct form of the sample document.
type Photo struct {
	Title        string    `xmp:"dc:title"`
	Creators     []string  `xmp:"dc:creator"`
	Subjects     []string  `xmp:"dc:subject"`
	Created      time.Time `xmp:"xmp:CreateDate"`
	Rating       int       `xmp:"xmp:Rating"`
	Marked       bool      `xmp:"xmpRights:Marked"`
	WebStatement string    `xmp:"xmpRights:WebStatement"`
	Camera       Camera    `xmp:"photo:camera"`
	Notes        string    `xmp:"photo:notes,omitempty"`
	Checksum     string    `xmp:"-"`
}

// SamplePhoto returns the sample document as a Photo.
func SamplePhoto() Photo {
	return Photo{
		Title:        "Sunset over the bay",
		Creators:     []string{"Ada Lovelace", "Grace Hopper"},
		Subjects:     []string{"sunset", "bay"},
		Created:      Epoch(),
		Rating:       5,
		Marked:       true,
		WebStatement: "http://example.com/license",
		Camera:       Camera{Make: "Acme", Aperture: 2.8},
		Checksum:     "ignored",
	}
}

// SampleStructure returns the sample document built by hand.
func SampleStructure() *xmp.Structure {
	return xmp.NewStructure().
		Set("dc:title", "Sunset over the bay").
		Set("dc:creator", xmp.Seq("Ada Lovelace", "Grace Hopper")).
		Set("dc:subject", xmp.Seq("sunset", "bay")).
		Set("xmp:CreateDate", Epoch()).
		Set("xmp:Rating", 5).
		Set("xmpRights:Marked", true).
		Set("xmpRights:WebStatement", "http://example.com/license").
		Set("photo:camera", xmp.NewStructure().
			Set("photo:make", "Acme").
			Set("photo:aperture", 2.8))
}

// SampleJSON is the sample document as JSON. The date is carried as text.
const SampleJSON = `{
  "dc:title": "Sunset over the bay",
  "dc:creator": ["Ada Lovelace", "Grace Hopper"],
  "dc:subject": ["sunset", "bay"],
  "xmp:CreateDate": "1970-01-01T00:00:00.000Z",
  "xmp:Rating": 5,
  "xmpRights:Marked": true,
  "xmpRights:WebStatement": "http://example.com/license",
  "photo:camera": {"photo:make": "Acme", "photo:aperture": 2.8},
  "photo:notes": null
}`

// SampleYAML is the sample document as YAML.
const SampleYAML = `dc:title: Sunset over the bay
dc:creator:
  - Ada Lovelace
  - Grace Hopper
dc:subject: [sunset, bay]
xmp:CreateDate: 1970-01-01T00:00:00Z
xmp:Rating: 5
xmpRights:Marked: true
xmpRights:WebStatement: http://example.com/license
photo:camera:
  photo:make: Acme
  photo:aperture: 2.8
`

// SampleXMP is the compact serialization of the sample document with Options.
const SampleXMP = `<?xml version="1.0" encoding="UTF-8"?>` +
	`<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"` +
	` xmlns:dc="http://purl.org/dc/elements/1.1/"` +
	` xmlns:xmp="http://ns.adobe.com/xap/1.0/"` +
	` xmlns:xmpRights="http://ns.adobe.com/xap/1.0/rights/"` +
	` xmlns:photo="http://example.com/ns/photo/">` +
	`<rdf:Description>` +
	`<dc:title>Sunset over the bay</dc:title>` +
	`<dc:creator><rdf:Seq><rdf:li>Ada Lovelace</rdf:li><rdf:li>Grace Hopper</rdf:li></rdf:Seq></dc:creator>` +
	`<dc:subject><rdf:Bag><rdf:li>sunset</rdf:li><rdf:li>bay</rdf:li></rdf:Bag></dc:subject>` +
	`<xmp:CreateDate>1970-01-01T00:00:00.000Z</xmp:CreateDate>` +
	`<xmp:Rating>5</xmp:Rating>` +
	`<xmpRights:Marked>True</xmpRights:Marked>` +
	`<xmpRights:WebStatement rdf:resource="http://example.com/license"/>` +
	`<photo:camera><rdf:Description><photo:make>Acme</photo:make><photo:aperture>2.8</photo:aperture></rdf:Description></photo:camera>` +
	`</rdf:Description>` +
	`</rdf:RDF>`

// MustSerialize serializes st with opts, failing tb on error.
func MustSerialize(tb testing.TB, st *xmp.Structure, opts ...xmp.Option) string {
	tb.Helper()
	out, err := xmp.Serialize(context.Background(), st, opts...)
	if err != nil {
		tb.Fatalf("Serialize() error = %v", err)
	}
	return string(out)
}

// AssertXML reports a diff when got differs from want.
func AssertXML(tb testing.TB, want, got string) {
	tb.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		tb.Errorf("document mismatch (-want +got):\n%s", diff)
	}
}
