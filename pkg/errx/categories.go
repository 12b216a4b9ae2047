package errx

import "fmt"

// NamedCode is one code slot exposed by a Category.
type NamedCode struct {
	Name string
	Code *Code
}

// Category groups codes that are registered together.
type Category interface {
	Name() string
	Codes() []NamedCode
}

// RegisterCategory registers every code exposed by c. All slots are checked
// before the first registration; a nil slot fails with ErrInternal. A
// duplicate fails with ErrConflict and leaves earlier codes registered.
func RegisterCategory(r *Registry, c Category) error {
	const op = "RegisterCategory"
	if err := requireNonNil(op, "registry", r == nil); err != nil {
		return err
	}
	if err := requireNonNil(op, "category", c == nil); err != nil {
		return err
	}

	slots := c.Codes()
	for _, slot := range slots {
		if slot.Code == nil {
			return fmt.Errorf("%w: category %q exposes nil code %q", ErrInternal, c.Name(), slot.Name)
		}
	}
	for _, slot := range slots {
		if err := r.Register(slot.Code); err != nil {
			return fmt.Errorf("register %s.%s: %w", c.Name(), slot.Name, err)
		}
	}
	return nil
}

// System codes used by the toolkit itself.
var (
	UnhandledFault = MustCode("SYS_001", "An unhandled error occurred.",
		WithCategory("System"))
)

type systemCodes struct{}

func (systemCodes) Name() string { return "System" }

func (systemCodes) Codes() []NamedCode {
	return []NamedCode{
		{Name: "UnhandledFault", Code: UnhandledFault},
	}
}

// SystemCodes is the category holding UnhandledFault.
var SystemCodes Category = systemCodes{}

// CategoryFunc adapts a fixed list of codes into a Category.
type CategoryFunc struct {
	CategoryName string
	Slots        func() []NamedCode
}

func (c CategoryFunc) Name() string { return c.CategoryName }

func (c CategoryFunc) Codes() []NamedCode {
	if c.Slots == nil {
		return nil
	}
	return c.Slots()
}
