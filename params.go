package xbind

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-xbind/pkg/binder"
)

// Params is the input of Build.
//
// State is deep-merged onto the state root: scalars overwrite, maps only
// descend into objects that already exist. Lists cannot create entries that
// way, so Push lists the entries to append to each repeat-for container,
// keyed by reference. Normalizers only take effect on the first Build.
type Params struct {
	State       map[string]any              `yaml:"state"`
	Push        map[string][]map[string]any `yaml:"push"`
	Normalizers binder.Normalizers          `yaml:"-"`
}

// LoadParams decodes YAML params from r. An empty document yields zero
// params.
func LoadParams(r io.Reader) (Params, error) {
	var params Params
	if err := yaml.NewDecoder(r).Decode(&params); err != nil {
		if errors.Is(err, io.EOF) {
			return Params{}, nil
		}
		return Params{}, fmt.Errorf("xbind: decode params: %w", err)
	}
	return params, nil
}

// LoadParamsFile reads YAML params from path.
func LoadParamsFile(path string) (Params, error) {
	if path == "" {
		return Params{}, errors.New("xbind: params path is required")
	}
	f, err := os.Open(path)
	if err != nil {
		return Params{}, fmt.Errorf("xbind: open params: %w", err)
	}
	defer f.Close()
	return LoadParams(f)
}
