package main

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/woozymasta/geoconv/internal/examples"
	"github.com/woozymasta/geoconv/internal/wkt"
)

type toWKTCommand struct{}

func (c *toWKTCommand) Execute([]string) error {
	data, err := readInput()
	if err != nil {
		return err
	}

	text, err := pipe.ToWKT(data)
	if err != nil {
		return err
	}
	return writeOutput([]byte(text))
}

type toGeoJSONCommand struct{}

func (c *toGeoJSONCommand) Execute([]string) error {
	data, err := readInput()
	if err != nil {
		return err
	}

	res, err := pipe.ToGeoJSON(string(data))
	if err != nil {
		return err
	}
	if len(res.Dropped) > 0 {
		log.Warn().
			Int("dropped", len(res.Dropped)).
			Int("features", len(res.Document.Features())).
			Msg("Some lines could not be converted")
	}
	return writeStructured(res.Document)
}

type validateCommand struct {
	Full bool `long:"full" description:"Print the full report instead of the summary"`
}

func (c *validateCommand) Execute([]string) error {
	data, err := readInput()
	if err != nil {
		return err
	}

	report, err := pipe.Validate(data)
	if err != nil {
		return err
	}

	if c.Full {
		err = writeStructured(report)
	} else {
		err = writeOutput([]byte(report.Summary))
	}
	if err != nil {
		return err
	}

	if !report.Valid() {
		return errInvalid
	}
	return nil
}

type simplifyCommand struct {
	Tolerance *float64 `short:"t" long:"tolerance" description:"Tolerance in degrees, the configured default when omitted"`
}

func (c *simplifyCommand) Execute([]string) error {
	data, err := readInput()
	if err != nil {
		return err
	}

	doc, _, err := pipe.Simplify(data, c.Tolerance)
	if err != nil {
		return err
	}
	return writeStructured(doc)
}

type transformCommand struct {
	From string `long:"from" description:"Source system, the configured default when empty" choice:"WGS84" choice:"GCJ02" choice:"BD09"`
	To   string `long:"to"   description:"Target system, the configured default when empty" choice:"WGS84" choice:"GCJ02" choice:"BD09"`
}

func (c *transformCommand) Execute([]string) error {
	data, err := readInput()
	if err != nil {
		return err
	}

	doc, err := pipe.Transform(data, c.From, c.To)
	if err != nil {
		return err
	}
	return writeStructured(doc)
}

type measureCommand struct{}

func (c *measureCommand) Execute([]string) error {
	data, err := readInput()
	if err != nil {
		return err
	}

	summary, err := pipe.Measure(data)
	if err != nil {
		return err
	}
	return writeStructured(summary)
}

type distanceCommand struct{}

func (c *distanceCommand) Execute([]string) error {
	data, err := readInput()
	if err != nil {
		return err
	}

	distances, err := pipe.Distances(data)
	if err != nil {
		return err
	}
	return writeStructured(distances)
}

type examplesCommand struct {
	WKT  bool `long:"wkt" description:"Print the example as WKT"`
	Args struct {
		ID string `positional-arg-name:"id" description:"Example id, lists all when empty"`
	} `positional-args:"yes"`
}

func (c *examplesCommand) Execute([]string) error {
	if c.Args.ID == "" {
		return writeStructured(examples.List())
	}

	doc, err := examples.Get(c.Args.ID)
	if err != nil {
		return err
	}

	if c.WKT {
		text, err := wkt.Encode(doc)
		if err != nil {
			return fmt.Errorf("encode example: %w", err)
		}
		return writeOutput([]byte(text))
	}
	return writeStructured(doc)
}
