package main

import (
	"flag"
	"strconv"

	"github.com/alecthomas/kong"
	"github.com/plan-systems/klog"
)

type Globals struct {
	Catalog   string `help:"catalog db pathname used to store and seed layers" type:"path"`
	Verbosity int    `short:"v" default:"0" help:"log verbosity"`
}

var cli struct {
	Globals

	Color  ColorCmd  `cmd:"" help:"color one or more maps"`
	Layers LayersCmd `cmd:"" help:"list the layers stored in a catalog"`
	Script ScriptCmd `cmd:"" help:"run a gpython script (or a REPL) with the _py4c module loaded"`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("mapcolor"),
		kong.Description("Colors map region graphs with a small palette, no two neighbors alike."),
		kong.UsageOnError(),
	)

	fset := flag.NewFlagSet("", flag.ContinueOnError)
	klog.InitFlags(fset)
	fset.Set("logtostderr", "true")
	fset.Set("v", strconv.Itoa(cli.Verbosity))
	klog.SetFormatter(&klog.FmtConstWidth{
		FileNameCharWidth: 16,
		UseColor:          true,
	})

	err := ctx.Run(&cli.Globals)
	klog.Flush()
	ctx.FatalIfErrorf(err)
}
