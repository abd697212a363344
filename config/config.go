// Package config loads optional user settings for the othello tools.
//
// The file is JSON. Unless a path is given explicitly it is looked up
// as othello/config.json under the XDG config directories; a missing
// default file is not an error.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/adrg/xdg"

	"github.com/othellobot/othello/ai"
)

const cfgFile = "othello/config.json"

// Duration reads JSON strings such as "1.5s".
type Duration time.Duration

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalJSON(bs []byte) error {
	var s string
	if err := json.Unmarshal(bs, &s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

type File struct {
	Weights map[string]*ai.Weights `json:"weights,omitempty"`
	Depth   int                    `json:"depth,omitempty"`
	Limit   Duration               `json:"limit,omitempty"`
	Pace    Duration               `json:"pace,omitempty"`
	// Matches is the sqlite database finished matches are logged to.
	Matches string `json:"matches,omitempty"`

	path string
}

var ErrUnknownWeights = errors.New("unknown weights")

// Path is the file the configuration was read from, if any.
func (f *File) Path() string {
	return f.path
}

func Load(path string) (*File, error) {
	if path == "" {
		found, err := xdg.SearchConfigFile(cfgFile)
		if err != nil {
			return &File{}, nil
		}
		path = found
	}
	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var f File
	if err := json.Unmarshal(bs, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	f.path = path
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &f, nil
}

func (f *File) Validate() error {
	if f.Depth < 0 {
		return fmt.Errorf("negative depth %d", f.Depth)
	}
	for name, w := range f.Weights {
		if w == nil {
			return fmt.Errorf("weights %q: empty", name)
		}
		if err := w.Validate(); err != nil {
			return fmt.Errorf("weights %q: %w", name, err)
		}
	}
	return nil
}

// LookupWeights resolves a weight set by name. Sets from the file
// shadow the built-in ones.
func (f *File) LookupWeights(name string) (*ai.Weights, error) {
	if w, ok := f.Weights[name]; ok {
		return w, nil
	}
	if w, ok := ai.NamedWeights[name]; ok {
		return w, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownWeights, name)
}

// ParseWeights reads a weight set given on the command line, either
// inline JSON or "@path" naming a JSON file. Fields left out keep
// their DefaultWeights values.
func ParseWeights(s string) (*ai.Weights, error) {
	bs := []byte(s)
	if strings.HasPrefix(s, "@") {
		var err error
		bs, err = os.ReadFile(s[1:])
		if err != nil {
			return nil, err
		}
	}
	w := ai.DefaultWeights
	if err := json.Unmarshal(bs, &w); err != nil {
		return nil, fmt.Errorf("weights: %w", err)
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return &w, nil
}
