package main

import (
	"strings"

	"github.com/goliatone/go-xbind/pkg/binder"
)

// builtinNormalizers are available to every page through xb-normalized-by.
func builtinNormalizers() binder.Normalizers {
	return binder.Normalizers{
		"trim":  stringNormalizer(strings.TrimSpace),
		"lower": stringNormalizer(strings.ToLower),
		"upper": stringNormalizer(strings.ToUpper),
	}
}

func stringNormalizer(fn func(string) string) binder.Normalizer {
	return func(v any) any {
		if s, ok := v.(string); ok {
			return fn(s)
		}
		return v
	}
}
