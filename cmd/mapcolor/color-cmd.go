package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fiveham/map-tools/go4c"
	"github.com/fiveham/map-tools/lib4c"
	"github.com/fiveham/map-tools/lib4c/catalog"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

type ColorCmd struct {
	Graphs    []string `arg:"" help:"graph expressions (e.g. 1-2-3-1,3-4) or @file"`
	Palette   int      `short:"k" default:"4" help:"number of colors"`
	Kickbacks int      `default:"4" help:"restarts allowed with a stuck vertex pinned first (0 for none)"`
	Force     bool     `help:"finish the coloring even if some edges end up monochromatic"`
	Supply    bool     `help:"pick colors by remaining supply rather than lowest first"`
	NoBalance bool     `help:"skip the balancing post-pass"`
	Workers   int      `short:"w" default:"1" help:"maps colored at once"`
	Layer     string   `help:"store each coloring in the catalog under this layer name"`
	Seed      string   `help:"seed each map from this catalog layer"`
	Lock      bool     `help:"never recolor seeded vertices"`
	Show      bool     `help:"print each vertex=color assignment"`

	out io.WriteCloser `kong:"-"`
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// readGraphArg returns the label and graph expression for a command line arg.
func readGraphArg(arg string) (string, string, error) {
	if !strings.HasPrefix(arg, "@") {
		return arg, arg, nil
	}
	pathname := arg[1:]
	buf, err := os.ReadFile(pathname)
	if err != nil {
		return "", "", err
	}
	return filepath.Base(pathname), string(buf), nil
}

func (cmd *ColorCmd) colorOpts() go4c.ColorOpts {
	opts := go4c.DefaultColorOpts
	opts.PaletteSize = cmd.Palette
	opts.MaxKickbacks = cmd.Kickbacks
	opts.Force = cmd.Force
	opts.SkipBalance = cmd.NoBalance
	opts.LockInitial = cmd.Lock
	if cmd.Supply {
		opts.Assign = go4c.AssignBySupply
	}
	return opts
}

func (cmd *ColorCmd) Run(globals *Globals) error {
	if (len(cmd.Layer) > 0 || len(cmd.Seed) > 0) && len(globals.Catalog) == 0 {
		return errors.Wrap(go4c.ErrBadCatalogOpts, "--layer and --seed require --catalog")
	}

	var cat go4c.Catalog
	if len(globals.Catalog) > 0 {
		var err error
		cat, err = catalog.OpenCatalog(go4c.CatalogOpts{
			DbPathName: globals.Catalog,
			ReadOnly:   len(cmd.Layer) == 0,
		})
		if err != nil {
			return err
		}
		defer cat.Close()
	}

	var seed *go4c.Layer
	if len(cmd.Seed) > 0 {
		var err error
		if seed, err = cat.GetLayer(cmd.Seed); err != nil {
			return err
		}
	}

	jobs := make([]*go4c.Job, 0, len(cmd.Graphs))
	for _, arg := range cmd.Graphs {
		label, expr, err := readGraphArg(arg)
		if err != nil {
			return err
		}
		def, err := lib4c.ParseGraphDef(expr)
		if err != nil {
			return errors.Wrapf(err, "graph %q", label)
		}
		job := &go4c.Job{
			Label: label,
			Def:   def,
			Opts:  cmd.colorOpts(),
		}
		if seed != nil {
			job.Opts.Initial = seed.Coloring.Restrict(def.Vertices)
		}
		jobs = append(jobs, job)
	}

	out := cmd.out
	if out == nil {
		out = nopCloser{os.Stdout}
	}
	printOpts := go4c.DefaultPrintOpts
	printOpts.Coloring = cmd.Show

	done := go4c.StreamJobs(jobs...).
		Color(lib4c.ColorJob, go4c.StreamOpts{Workers: cmd.Workers}).
		Print(out, printOpts).
		PullAll()

	var firstErr error
	for i, job := range done {
		if job.Err != nil {
			if firstErr == nil {
				firstErr = errors.Wrapf(job.Err, "graph %q", job.Label)
			}
			continue
		}
		if !job.Diag.Complete() {
			klog.Warningf("%s: coloring incomplete (%v)", job.Label, job.Diag)
		}
		if len(cmd.Layer) == 0 {
			continue
		}
		name := cmd.Layer
		if len(done) > 1 {
			name = fmt.Sprintf("%s.%d", cmd.Layer, i+1)
		}
		err := cat.PutLayer(&go4c.Layer{
			Name:        name,
			PaletteSize: job.Opts.PaletteSize,
			Coloring:    job.Coloring,
			Diagnostics: *job.Diag,
		})
		if err != nil && firstErr == nil {
			firstErr = err
		}
		klog.V(1).Infof("stored layer %q", name)
	}

	return firstErr
}

type LayersCmd struct {
	out io.Writer `kong:"-"`
}

func (cmd *LayersCmd) Run(globals *Globals) error {
	if len(globals.Catalog) == 0 {
		return errors.Wrap(go4c.ErrBadCatalogOpts, "--catalog is required")
	}
	cat, err := catalog.OpenCatalog(go4c.CatalogOpts{
		DbPathName: globals.Catalog,
		ReadOnly:   true,
	})
	if err != nil {
		return err
	}
	defer cat.Close()

	names, err := cat.Layers()
	if err != nil {
		return err
	}

	out := cmd.out
	if out == nil {
		out = os.Stdout
	}
	for _, name := range names {
		layer, err := cat.GetLayer(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s,k=%d,%v\n", name, layer.PaletteSize, &layer.Diagnostics)
	}
	fmt.Fprintf(out, "%d layers\n", cat.NumLayers())
	return nil
}
