package metadata

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Family identifies which attribute set a column carries.
type Family int

const (
	FamilyOther Family = iota
	FamilyCharacter
	FamilyNumeric
	FamilyDateTime
	FamilyInterval
)

func (f Family) String() string {
	switch f {
	case FamilyCharacter:
		return "character"
	case FamilyNumeric:
		return "numeric"
	case FamilyDateTime:
		return "datetime"
	case FamilyInterval:
		return "interval"
	default:
		return "other"
	}
}

// Attributes is the family-specific part of a column descriptor. It is
// implemented only by the attribute types of this package.
type Attributes interface {
	Family() Family
	attributes()
}

// CharacterAttrs describes character and text columns.
type CharacterAttrs struct {
	Length *int64
}

// NumericAttrs describes columns with a numeric precision radix.
type NumericAttrs struct {
	Precision      *int64
	Scale          *int64
	PrecisionRadix *int64
}

// DateTimeAttrs describes date, time and timestamp columns.
type DateTimeAttrs struct {
	Precision *int64
}

// IntervalAttrs describes interval columns. Either field may be nil
// depending on how the interval was declared.
type IntervalAttrs struct {
	Precision    *int64
	IntervalType *string
}

func (CharacterAttrs) Family() Family { return FamilyCharacter }
func (NumericAttrs) Family() Family { return FamilyNumeric }
func (DateTimeAttrs) Family() Family { return FamilyDateTime }
func (IntervalAttrs) Family() Family { return FamilyInterval }

func (CharacterAttrs) attributes() {}
func (NumericAttrs) attributes() {}
func (DateTimeAttrs) attributes() {}
func (IntervalAttrs) attributes() {}

// Column is the normalized descriptor of a single column.
// Attrs is nil for columns outside the known families.
type Column struct {
	Type     string
	Required bool
	Attrs    Attributes
}

// Family returns the attribute family of the column.
func (c Column) Family() Family {
	if c.Attrs == nil {
		return FamilyOther
	}
	return c.Attrs.Family()
}

// Serialized shapes. Each family only names its own keys; nil values are
// written as null.
type (
	baseDoc struct {
		Type     string `json:"type" yaml:"type"`
		Required bool   `json:"required" yaml:"required"`
	}
	characterDoc struct {
		baseDoc `yaml:",inline"`
		Length  *int64 `json:"length" yaml:"length"`
	}
	numericDoc struct {
		baseDoc        `yaml:",inline"`
		Precision      *int64 `json:"precision" yaml:"precision"`
		Scale          *int64 `json:"scale" yaml:"scale"`
		PrecisionRadix *int64 `json:"precision_radix" yaml:"precision_radix"`
	}
	dateTimeDoc struct {
		baseDoc   `yaml:",inline"`
		Precision *int64 `json:"precision" yaml:"precision"`
	}
	intervalDoc struct {
		baseDoc      `yaml:",inline"`
		Precision    *int64  `json:"precision" yaml:"precision"`
		IntervalType *string `json:"interval_type" yaml:"interval_type"`
	}
)

func (c Column) document() any {
	base := baseDoc{Type: c.Type, Required: c.Required}
	switch a := c.Attrs.(type) {
	case CharacterAttrs:
		return characterDoc{baseDoc: base, Length: a.Length}
	case NumericAttrs:
		return numericDoc{baseDoc: base, Precision: a.Precision, Scale: a.Scale, PrecisionRadix: a.PrecisionRadix}
	case DateTimeAttrs:
		return dateTimeDoc{baseDoc: base, Precision: a.Precision}
	case IntervalAttrs:
		return intervalDoc{baseDoc: base, Precision: a.Precision, IntervalType: a.IntervalType}
	default:
		return base
	}
}

// MarshalJSON writes the column as a flat object of type, required and the
// keys of its family.
func (c Column) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.document())
}

// MarshalYAML mirrors MarshalJSON for yaml.v3.
func (c Column) MarshalYAML() (any, error) {
	return c.document(), nil
}

// Summary renders the descriptor on one line, e.g.
// "numeric(12,2) radix=10 required".
func (c Column) Summary() string {
	var b strings.Builder
	b.WriteString(c.Type)

	switch a := c.Attrs.(type) {
	case CharacterAttrs:
		if a.Length != nil {
			fmt.Fprintf(&b, "(%d)", *a.Length)
		}
	case NumericAttrs:
		switch {
		case a.Precision != nil && a.Scale != nil:
			fmt.Fprintf(&b, "(%d,%d)", *a.Precision, *a.Scale)
		case a.Precision != nil:
			fmt.Fprintf(&b, "(%d)", *a.Precision)
		}
		if a.PrecisionRadix != nil {
			fmt.Fprintf(&b, " radix=%d", *a.PrecisionRadix)
		}
	case DateTimeAttrs:
		if a.Precision != nil {
			fmt.Fprintf(&b, "(%d)", *a.Precision)
		}
	case IntervalAttrs:
		if a.IntervalType != nil {
			b.WriteString(" " + *a.IntervalType)
		}
		if a.Precision != nil {
			fmt.Fprintf(&b, "(%d)", *a.Precision)
		}
	}

	if c.Required {
		b.WriteString(" required")
	}
	return b.String()
}
