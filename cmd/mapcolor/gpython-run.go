package main

import (
	"fmt"
	"time"

	"github.com/go-python/gpython/py"
	"github.com/go-python/gpython/repl"
	replcli "github.com/go-python/gpython/repl/cli"
	"github.com/plan-systems/klog"

	_ "github.com/fiveham/map-tools/py4c"
	_ "github.com/go-python/gpython/stdlib"
)

type ScriptCmd struct {
	Pathname string `arg:"" optional:"" help:"script to run; omit for a REPL" type:"path"`
}

func (cmd *ScriptCmd) Run(globals *Globals) error {
	ctx := py.NewContext(py.DefaultContextOpts())

	var err error
	if len(cmd.Pathname) == 0 {
		replCtx := repl.New(ctx)
		replcli.RunREPL(replCtx)
	} else {
		startTime := time.Now()
		fmt.Printf("<<<>>>   executing '%s'   <<<>>>\n", cmd.Pathname)

		_, err = py.RunFile(ctx, cmd.Pathname, py.CompileOpts{}, nil)

		if err == nil {
			elapsed := time.Since(startTime)
			fmt.Printf("<<<>>>   execution complete: %v   <<<>>>\n", elapsed)
		}
	}

	ctx.Close()
	<-ctx.Done()

	if err != nil {
		py.TracebackDump(err)
		klog.Errorf("script %q failed", cmd.Pathname)
	}
	return err
}
