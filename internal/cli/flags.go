package cli

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/alexanderramin/pilot/internal/domain"
	"github.com/spf13/pflag"
)

// intervalValue is an HH:MM-HH:MM flag.
type intervalValue struct {
	iv *domain.Interval
}

var _ pflag.Value = (*intervalValue)(nil)

func newIntervalValue(def domain.Interval, p *domain.Interval) *intervalValue {
	*p = def
	return &intervalValue{iv: p}
}

func (v *intervalValue) Set(s string) error {
	iv, err := domain.ParseInterval(s)
	if err != nil {
		return err
	}
	*v.iv = iv
	return nil
}

func (v *intervalValue) String() string {
	if v.iv == nil {
		return ""
	}
	return v.iv.String()
}

func (v *intervalValue) Type() string { return "HH:MM-HH:MM" }

// meetingsValue collects meetings from repeated flags or a comma-separated
// list.
type meetingsValue struct {
	list *[]domain.Interval
}

var _ pflag.SliceValue = (*meetingsValue)(nil)

func (v *meetingsValue) Set(s string) error {
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		iv, err := domain.ParseInterval(part)
		if err != nil {
			return err
		}
		*v.list = append(*v.list, iv)
	}
	return nil
}

func (v *meetingsValue) String() string {
	return "[" + strings.Join(v.GetSlice(), ",") + "]"
}

func (v *meetingsValue) Type() string { return "meetings" }

func (v *meetingsValue) Append(s string) error { return v.Set(s) }

func (v *meetingsValue) Replace(vals []string) error {
	*v.list = nil
	for _, s := range vals {
		if err := v.Set(s); err != nil {
			return err
		}
	}
	return nil
}

func (v *meetingsValue) GetSlice() []string {
	if v.list == nil {
		return nil
	}
	out := make([]string, len(*v.list))
	for i, iv := range *v.list {
		out[i] = iv.String()
	}
	return out
}

// enumValue restricts a string flag to a fixed set.
type enumValue[T ~string] struct {
	val     *T
	allowed map[string]bool
	name    string
}

func newEnumValue[T ~string](def T, p *T, allowed map[string]bool, name string) *enumValue[T] {
	*p = def
	return &enumValue[T]{val: p, allowed: allowed, name: name}
}

func (v *enumValue[T]) Set(s string) error {
	s = strings.ToLower(strings.TrimSpace(s))
	if !v.allowed[s] {
		return fmt.Errorf("invalid %s %q (want %s)", v.name, s, strings.Join(slices.Sorted(maps.Keys(v.allowed)), "|"))
	}
	*v.val = T(s)
	return nil
}

func (v *enumValue[T]) String() string { return string(*v.val) }

func (v *enumValue[T]) Type() string { return v.name }

// dateValue is a YYYY-MM-DD flag. Unset means today.
type dateValue struct {
	date *time.Time
}

func (v *dateValue) Set(s string) error {
	d, err := time.Parse(domain.DateLayout, strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	*v.date = d
	return nil
}

func (v *dateValue) String() string {
	if v.date == nil || v.date.IsZero() {
		return ""
	}
	return v.date.Format(domain.DateLayout)
}

func (v *dateValue) Type() string { return "date" }
