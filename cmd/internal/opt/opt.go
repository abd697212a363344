package opt

import (
	"flag"

	"github.com/othellobot/othello/ai"
	"github.com/othellobot/othello/config"
)

type Minimax struct {
	Debug      int
	Depth      int
	Sequential bool
	Weights    string
}

func (o *Minimax) AddFlags(flags *flag.FlagSet) {
	flags.IntVar(&o.Debug, "debug", 0, "debug level")
	flags.IntVar(&o.Depth, "depth", 0, "minimax depth (0 for the configured default)")
	flags.BoolVar(&o.Sequential, "sequential", false, "search root moves one at a time")
	flags.StringVar(&o.Weights, "weights", "", "evaluation weights: a name, inline JSON, or @FILE")
}

// BuildConfig resolves the flags against the config file.
func (o *Minimax) BuildConfig(f *config.File) (ai.MinimaxConfig, error) {
	w, err := Weights(f, o.Weights)
	if err != nil {
		return ai.MinimaxConfig{}, err
	}
	depth := o.Depth
	if depth == 0 {
		depth = f.Depth
	}
	return ai.MinimaxConfig{
		Depth:      depth,
		Debug:      o.Debug,
		Sequential: o.Sequential,
		Weights:    w,
	}, nil
}

// Weights interprets s as a named weight set, or as JSON if it starts
// with '{' or '@'. The empty string selects the default set.
func Weights(f *config.File, s string) (*ai.Weights, error) {
	switch {
	case s == "":
		return f.LookupWeights("default")
	case s[0] == '{' || s[0] == '@':
		return config.ParseWeights(s)
	}
	return f.LookupWeights(s)
}

// File extracts the configuration passed down from main.
func File(args []interface{}) *config.File {
	for _, a := range args {
		if f, ok := a.(*config.File); ok {
			return f
		}
	}
	return &config.File{}
}
