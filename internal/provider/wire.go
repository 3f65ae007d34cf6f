package provider

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/tartampluch/go-myancal/internal/engine"
)

// scalar accepts a JSON or YAML string or number.
// Converters report numbers either way ("1386" or 1386).
type scalar string

func (s *scalar) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*s = ""
		return nil
	}
	var str string
	if err := json.Unmarshal(b, &str); err == nil {
		*s = scalar(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(b, &num); err != nil {
		return err
	}
	*s = scalar(num.String())
	return nil
}

func (s *scalar) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var v interface{}
	if err := unmarshal(&v); err != nil {
		return err
	}
	switch t := v.(type) {
	case nil:
		*s = ""
	case string:
		*s = scalar(t)
	case int:
		*s = scalar(strconv.Itoa(t))
	case float64:
		*s = scalar(strconv.FormatFloat(t, 'f', -1, 64))
	default:
		var str string
		if err := unmarshal(&str); err != nil {
			return err
		}
		*s = scalar(str)
	}
	return nil
}

func (s scalar) text() string {
	return strings.TrimSpace(string(s))
}

// wireText is a component with its English and Myanmar renderings.
type wireText struct {
	En scalar `json:"en" yaml:"en"`
	My scalar `json:"my" yaml:"my"`
}

type wireDay struct {
	En scalar    `json:"en" yaml:"en"`
	My scalar    `json:"my" yaml:"my"`
	Mp *wireText `json:"mp" yaml:"mp"` // moon phase
}

// wireDate is the conversion record shared by the service and the bundle.
// Every member is optional.
type wireDate struct {
	Year      *wireText `json:"year" yaml:"year"`
	Month     *wireText `json:"month" yaml:"month"`
	Day       *wireDay  `json:"day" yaml:"day"`
	Fortnight *wireText `json:"fortnight" yaml:"fortnight"`
}

// wireLabel is the answer of every astrology endpoint.
type wireLabel struct {
	Label string `json:"label"`
}

func (w *wireText) label() engine.Field[engine.Label] {
	if w == nil || (w.En.text() == "" && w.My.text() == "") {
		return engine.Unavailable[engine.Label]()
	}
	return engine.Some(engine.Label{Short: w.En.text(), Native: w.My.text()})
}

func numeral(en, my scalar) engine.Field[engine.Numeral] {
	if en.text() == "" && my.text() == "" {
		return engine.Unavailable[engine.Numeral]()
	}
	v, _ := strconv.Atoi(en.text())
	return engine.Some(engine.Numeral{Value: v, Short: en.text(), Native: my.text()})
}

func (w *wireDate) conversion() engine.Conversion {
	c := engine.Conversion{
		Year:      engine.Unavailable[engine.Numeral](),
		Month:     w.Month.label(),
		Day:       engine.Unavailable[engine.Numeral](),
		MoonPhase: engine.Unavailable[engine.Label](),
		Fortnight: w.Fortnight.label(),
	}
	if w.Year != nil {
		c.Year = numeral(w.Year.En, w.Year.My)
	}
	if w.Day != nil {
		c.Day = numeral(w.Day.En, w.Day.My)
		c.MoonPhase = w.Day.Mp.label()
	}
	return c
}
