package domain

// Field is one column of a partial update. Set reports whether the column
// was supplied at all; a supplied column with a nil Value writes NULL.
type Field[T any] struct {
	Set   bool
	Value *T
}

// Some returns a supplied field holding v.
func Some[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: &v}
}

// Null returns a supplied field that clears the column.
func Null[T any]() Field[T] {
	return Field[T]{Set: true}
}

// IsNull reports whether the field was supplied as an explicit null.
func (f Field[T]) IsNull() bool {
	return f.Set && f.Value == nil
}

func (f Field[T]) assignTo(dst *T) {
	if f.Set && f.Value != nil {
		*dst = *f.Value
	}
}

func (f Field[T]) assignPtr(dst **T) {
	if !f.Set {
		return
	}
	if f.Value == nil {
		*dst = nil
		return
	}
	v := *f.Value
	*dst = &v
}

// Assignment is a column write produced from a patch.
type Assignment struct {
	Column string
	Value  any
}

func appendAssignment[T any](out []Assignment, column string, f Field[T]) []Assignment {
	if !f.Set {
		return out
	}
	if f.Value == nil {
		return append(out, Assignment{Column: column, Value: nil})
	}
	return append(out, Assignment{Column: column, Value: *f.Value})
}
