package mock

import "github.com/apehex/homespace"

var _ homespace.Converter = (*Converter)(nil)

// Converter is a mock implementation of homespace.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
