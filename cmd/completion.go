package cmd

import (
	"flag"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// flagPredictors predict the values of flags by name, other flags take any value.
var flagPredictors = map[string]complete.Predictor{
	"f":          predict.Or(predict.Files("*.csv"), predict.Files("*.json"), predict.Files("*.jsonl")),
	"config":     predict.Or(predict.Files("*.yaml"), predict.Files("*.yml")),
	"csv":        predict.Files("*.csv"),
	"charts-dir": predict.Dirs("*"),
	"output-dir": predict.Dirs("*"),
	"freq":       predict.Set{"weekly", "monthly", "yearly"},
	"block-time": predict.Set{"10min", "1h", "1D", "1W", "1M", "4Y"},
	"style":      predict.Set{"-", "--", ":", "-.", "b-", "r--", "k:"},
	"sqlite":     predict.Files("*.db"),
}

// Completion returns the shell completion of the commands registered in c,
// and of the top level flags.
func Completion(c *subcommands.Commander, top *flag.FlagSet) *complete.Command {
	cmp := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: flagsCompletion(top),
	}
	c.VisitCommands(func(_ *subcommands.CommandGroup, sub subcommands.Command) {
		fs := flag.NewFlagSet(sub.Name(), flag.ContinueOnError)
		sub.SetFlags(fs)
		cmp.Sub[sub.Name()] = &complete.Command{Flags: flagsCompletion(fs)}
	})
	return cmp
}

func flagsCompletion(fs *flag.FlagSet) map[string]complete.Predictor {
	flags := make(map[string]complete.Predictor)
	fs.VisitAll(func(f *flag.Flag) {
		if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			flags[f.Name] = predict.Nothing
			return
		}
		if p, ok := flagPredictors[f.Name]; ok {
			flags[f.Name] = p
			return
		}
		flags[f.Name] = predict.Something
	})
	return flags
}
