package parse

import (
	"github.com/grovekit/grove/dense"
	"github.com/grovekit/grove/format"
)

type parseOpts struct {
	format  format.Format
	dtype   *dense.DType
	convert bool
}

func newParseOpts(opts ...ParseOption) *parseOpts {
	o := &parseOpts{format: format.YAMLFormat, convert: true}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// ParseOption configures Parse.
type ParseOption func(*parseOpts)

// ParseYAML decodes the input as YAML. This is the default.
func ParseYAML() ParseOption {
	return ParseFormat(format.YAMLFormat)
}

// ParseJSON decodes the input as JSON, rejecting documents that are
// not valid JSON even when they would decode as YAML.
func ParseJSON() ParseOption {
	return ParseFormat(format.JSONFormat)
}

// ParseFormat selects the input format.
func ParseFormat(f format.Format) ParseOption {
	return func(o *parseOpts) { o.format = f }
}

// ParseDType casts every leaf to the given dtype and records it on the
// tree for later value normalization.
func ParseDType(dt dense.DType) ParseOption {
	return func(o *parseOpts) { o.dtype = &dt }
}

// ParseNoConvert disables leaf collapsing: numeric sequences stay
// trees of scalar leaves instead of becoming arrays, and no dtype
// coercion is applied.
func ParseNoConvert() ParseOption {
	return func(o *parseOpts) { o.convert = false }
}
