package mock

import "github.com/fwojciec/kbmigrate"

var _ kbmigrate.Transformer = (*Transformer)(nil)

// Transformer is a mock implementation of kbmigrate.Transformer.
type Transformer struct {
	TransformFn func(htmlPath string, layout kbmigrate.ExportLayout) (*kbmigrate.Article, error)
}

func (t *Transformer) Transform(htmlPath string, layout kbmigrate.ExportLayout) (*kbmigrate.Article, error) {
	return t.TransformFn(htmlPath, layout)
}
