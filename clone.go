package xmp

// Clone returns a deep copy of s. Nested structures and sequences are
// copied so modifications to the clone do not affect the original.
//
// DateLike values and the originals behind unsupported values are shared.
func (s *Structure) Clone() *Structure {
	if s == nil {
		return nil
	}
	c := &Structure{
		keys:   append([]string(nil), s.keys...),
		values: make(map[string]Value, len(s.values)),
	}
	for k, v := range s.values {
		c.values[k] = v.clone()
	}
	return c
}

func (v Value) clone() Value {
	switch v.kind {
	case KindStructure:
		v.st = v.st.Clone()
	case KindSequence:
		seq := make([]Value, len(v.seq))
		for i, item := range v.seq {
			seq[i] = item.clone()
		}
		v.seq = seq
	}
	return v
}
