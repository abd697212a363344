package ai

import (
	"encoding/json"
	"fmt"
)

var _ interface {
	json.Marshaler
	json.Unmarshaler
} = &Regime{}

var featureNames map[string]Feature

func init() {
	featureNames = make(map[string]Feature)
	for i := Feature(0); i < MaxFeature; i++ {
		featureNames[i.String()] = i
	}
}

func (r *Regime) MarshalJSON() ([]byte, error) {
	h := make(map[string]float64)
	for i, v := range r {
		if v != 0 {
			h[Feature(i).String()] = v
		}
	}
	return json.Marshal(h)
}

func (r *Regime) UnmarshalJSON(bs []byte) error {
	h := make(map[string]float64)
	e := json.Unmarshal(bs, &h)
	if e != nil {
		return e
	}
	*r = Regime{}
	for k, v := range h {
		f, ok := featureNames[k]
		if !ok {
			return fmt.Errorf("unknown feature: %q", k)
		}
		r[f] = v
	}
	return nil
}
