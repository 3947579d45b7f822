package catalog

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	terrors "github.com/ravendevteam/toolbox/internal/errors"
	"github.com/ravendevteam/toolbox/internal/platform"
)

// PackageNameRegex limits names to values that are safe as directory names
var PackageNameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._+-]*$`)

// NewValidator creates a configured validator instance
func NewValidator() *validator.Validate {
	v := validator.New()

	// OSValue is opaque to the validator; expose whether it carries anything so that
	// "required" works on it.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if ov, ok := field.Interface().(OSValue); ok && !ov.IsZero() {
			return ov.String()
		}
		return ""
	}, OSValue{})

	_ = v.RegisterValidation("pkgname", func(fl validator.FieldLevel) bool {
		return PackageNameRegex.MatchString(fl.Field().String())
	})

	_ = v.RegisterValidation("osid", func(fl validator.FieldLevel) bool {
		return platform.Parse(fl.Field().String()).IsKnown()
	})

	return v
}

// Validate checks struct constraints and the cross-entry invariants
func Validate(v *validator.Validate, c *Catalog) error {
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("%w: %s", terrors.ErrCatalogParse, describeValidation(err))
	}

	seen := make(map[string]int, len(c.Packages))
	for i := range c.Packages {
		p := &c.Packages[i]
		key := strings.ToLower(p.Name)
		if prev, dup := seen[key]; dup {
			return fmt.Errorf("%w: packages[%d]: duplicate name %q (also packages[%d])",
				terrors.ErrCatalogParse, i, p.Name, prev)
		}
		seen[key] = i

		if err := validateEntry(v, p); err != nil {
			return fmt.Errorf("%w: package %q: %v", terrors.ErrCatalogParse, p.Name, err)
		}
	}

	return nil
}

func validateEntry(v *validator.Validate, p *Package) error {
	if err := coversOSList("url", p.URL, p.OSList); err != nil {
		return err
	}
	if err := coversOSList("sha256", p.Sha256, p.OSList); err != nil {
		return err
	}

	for _, u := range p.URL.Values() {
		if err := v.Var(u, "required,url"); err != nil {
			return fmt.Errorf("url %q is not a valid URL", u)
		}
	}
	for _, s := range p.Sha256.Values() {
		if err := v.Var(s, "required,len=64,hexadecimal"); err != nil {
			return fmt.Errorf("sha256 %q is not a hex SHA-256 digest", s)
		}
	}

	return nil
}

// coversOSList requires a per-OS map to carry an entry for every supported OS
func coversOSList(field string, val OSValue, osList []platform.OS) error {
	if !val.IsPerOS() {
		return nil
	}
	for _, o := range osList {
		if _, ok := val.For(platform.Parse(string(o))); !ok {
			return fmt.Errorf("%s has no entry for %s", field, o)
		}
	}
	return nil
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		ns := strings.TrimPrefix(fe.Namespace(), "Catalog.")
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", ns))
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s must have at least %s entries", ns, fe.Param()))
		case "osid":
			msgs = append(msgs, fmt.Sprintf("%s: unknown operating system %q", ns, fe.Value()))
		case "pkgname":
			msgs = append(msgs, fmt.Sprintf("%s: %q is not a valid package name", ns, fe.Value()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %q", ns, fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}
