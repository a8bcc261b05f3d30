package cmd

import (
	"github.com/etnz/capgains/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion describes the command line for shell completion.
func Completion() *complete.Command {
	csvFiles := predict.Files("*.csv")
	global := map[string]complete.Predictor{
		"config": predict.Files("*.yaml"),
		"v":      predict.Nothing,
	}
	return &complete.Command{
		Flags: global,
		Sub: map[string]*complete.Command{
			"report": {
				Flags: map[string]complete.Predictor{
					"o":   predict.Set(formats),
					"out": predict.Files("*"),
				},
				Args: csvFiles,
			},
			"overview": {
				Flags: map[string]complete.Predictor{"raw": predict.Nothing},
				Args:  csvFiles,
			},
			"upside": {
				Flags: map[string]complete.Predictor{
					"investment": predict.Something,
					"out":        predict.Files("*"),
				},
				Args: csvFiles,
			},
			"topic": {
				Args: predict.Set(topics()),
			},
			"help":     {},
			"flags":    {},
			"commands": {},
		},
	}
}

func topics() []string {
	all, _ := docs.GetAllTopics()
	return all
}
