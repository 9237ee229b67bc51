package mock

import "github.com/fwojciec/kbmigrate"

var _ kbmigrate.Resolver = (*Resolver)(nil)

// Resolver is a mock implementation of kbmigrate.Resolver.
type Resolver struct {
	ResolveFn func(filename string, layout kbmigrate.ExportLayout, hint string) string
}

func (r *Resolver) Resolve(filename string, layout kbmigrate.ExportLayout, hint string) string {
	return r.ResolveFn(filename, layout, hint)
}
