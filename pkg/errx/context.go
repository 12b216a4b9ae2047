package errx

// ContextEntry is one ordered key/value pair attached to an Error.
// Keys may repeat; insertion order is preserved.
type ContextEntry struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// NewContextEntry validates key and value and returns the entry.
func NewContextEntry(key, value string) (ContextEntry, error) {
	entry := ContextEntry{Key: key, Value: value}
	if err := entry.validate("NewContextEntry"); err != nil {
		return ContextEntry{}, err
	}
	return entry, nil
}

func (c ContextEntry) String() string {
	return c.Key + "=" + c.Value
}

func (c ContextEntry) validate(op string) error {
	if err := requireNonBlank(op, "key", c.Key); err != nil {
		return err
	}
	return requireNonBlank(op, "value", c.Value)
}
