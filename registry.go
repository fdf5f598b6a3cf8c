package xmp

import (
	"reflect"
	"strings"
	"sync"

	"github.com/zoobzio/sentinel"
)

// tagName is the struct tag read when converting structs.
const tagName = "xmp"

func init() {
	sentinel.Tag(tagName)
}

// structPlan describes how to turn one struct type into a Structure.
type structPlan struct {
	typeName string
	fields   []fieldPlan
}

// fieldPlan describes a single exported field.
type fieldPlan struct {
	index     []int  // reflect.Value.FieldByIndex access path
	key       string // property name
	omitEmpty bool   // zero values are left out
}

var (
	plans   = make(map[reflect.Type]*structPlan)
	plansMu sync.RWMutex
)

// planFor returns a cached plan for rt or builds one from scan.
func planFor(rt reflect.Type, scan func() sentinel.Metadata) *structPlan {
	// Fast path: read-lock cache check
	plansMu.RLock()
	if cached, ok := plans[rt]; ok {
		plansMu.RUnlock()
		return cached
	}
	plansMu.RUnlock()

	// Slow path: build and cache with write-lock
	plansMu.Lock()
	defer plansMu.Unlock()

	// Double-check pattern
	if cached, ok := plans[rt]; ok {
		return cached
	}

	plan := buildPlan(rt, scan())
	plans[rt] = plan
	return plan
}

// resetPlans clears the plan cache.
// This is primarily useful for test isolation.
func resetPlans() {
	plansMu.Lock()
	defer plansMu.Unlock()
	plans = make(map[reflect.Type]*structPlan)
}

// buildPlan turns scanned metadata into a field plan list in declaration order.
func buildPlan(rt reflect.Type, meta sentinel.Metadata) *structPlan {
	plan := &structPlan{typeName: meta.TypeName}
	if plan.typeName == "" {
		plan.typeName = rt.Name()
	}

	for _, field := range meta.Fields {
		if len(field.Index) == 0 || !rt.FieldByIndex(field.Index).IsExported() {
			continue
		}

		tag := field.Tags[tagName]
		if tag == "-" {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")
		if name == "" {
			name = field.Name
		}

		plan.fields = append(plan.fields, fieldPlan{
			index:     field.Index,
			key:       name,
			omitEmpty: hasOption(opts, "omitempty"),
		})
	}

	return plan
}

// scanType builds metadata for a struct type met at runtime.
func scanType(rt reflect.Type) sentinel.Metadata {
	fqdn := rt.PkgPath() + "." + rt.Name()
	if spec, ok := sentinel.Lookup(fqdn); ok {
		return spec
	}

	spec := sentinel.Metadata{
		ReflectType: rt,
		FQDN:        fqdn,
		TypeName:    rt.Name(),
		PackageName: rt.PkgPath(),
		Fields:      make([]sentinel.FieldMetadata, 0, rt.NumField()),
	}

	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}

		tags := make(map[string]string)
		if val, ok := sf.Tag.Lookup(tagName); ok {
			tags[tagName] = val
		}

		fm := sentinel.FieldMetadata{
			Name:        sf.Name,
			Type:        sf.Type.String(),
			ReflectType: sf.Type,
			Index:       sf.Index,
			Tags:        tags,
		}

		switch sf.Type.Kind() {
		case reflect.Struct:
			fm.Kind = sentinel.KindStruct
		case reflect.Ptr:
			fm.Kind = sentinel.KindPointer
		case reflect.Slice, reflect.Array:
			fm.Kind = sentinel.KindSlice
		case reflect.Map:
			fm.Kind = sentinel.KindMap
		case reflect.Interface:
			fm.Kind = sentinel.KindInterface
		default:
			fm.Kind = sentinel.KindScalar
		}

		spec.Fields = append(spec.Fields, fm)
	}

	return spec
}

// structure converts rv, a struct value of the planned type.
func (p *structPlan) structure(rv reflect.Value) *Structure {
	st := NewStructure()
	for _, f := range p.fields {
		fv, err := rv.FieldByIndexErr(f.index)
		if err != nil {
			// nil embedded pointer
			continue
		}
		if f.omitEmpty && fv.IsZero() {
			continue
		}
		st.Set(f.key, Of(fv.Interface()))
	}
	return st
}

func hasOption(opts, want string) bool {
	for opts != "" {
		var opt string
		opt, opts, _ = strings.Cut(opts, ",")
		if opt == want {
			return true
		}
	}
	return false
}
