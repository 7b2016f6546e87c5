package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alexflint/go-arg"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"niftree/ds"
	"niftree/nif/nbytes"
	"niftree/nif/nexpr"
	"niftree/nif/nitem"
	"niftree/nif/nmodel"
	"niftree/nif/nvalue"
)

type (
	Args struct {
		Eval    *EvalCmd    `arg:"subcommand:eval" help:"evaluate a condition expression"`
		Version *VersionCmd `arg:"subcommand:version" help:"pack version strings into numbers"`
		Demo    *DemoCmd    `arg:"subcommand:demo" help:"build a sample document and print it as JSON"`
		Dump    *DumpCmd    `arg:"subcommand:dump" help:"read a document written by demo and print it as JSON"`
		Verbose bool        `arg:"-v,env:NIF_VERBOSE" help:"log every error reported by the record tree"`
	}
	EvalCmd struct {
		Expr string   `arg:"positional,required" help:"expression, quoted" placeholder:"EXPR"`
		Vars []string `arg:"--var,separate" help:"value of a name used by the expression" placeholder:"NAME=VALUE"`
	}
	VersionCmd struct {
		Versions []string `arg:"positional,required" placeholder:"VERSION"`
	}
	DemoCmd struct {
		FileVersion  string `arg:"--file-version,env:NIF_VERSION" help:"file version of the document" placeholder:"20.2.0.7"`
		UserVersion  uint32 `arg:"--user-version" help:"user version of the document"`
		MaxArraySize int    `arg:"--max-array-size" help:"largest array the document will create"`
		Shapes       int    `arg:"--shapes" default:"2" help:"number of shapes under the root node"`
		Out          string `arg:"-o,--out" help:"also write the document to this file" placeholder:"FILE"`
	}
	DumpCmd struct {
		Path string `arg:"positional,required" placeholder:"FILE"`
	}
)

func (Args) Description() string {
	des := strings.Join(
		[]string{
			"Every field knows when it is there.\n",
			"A CLI utility to play with NIF record trees: evaluate the conditions their",
			"schemas use, pack file versions, write a sample document and dump it as JSON.",
		},
		"\n",
	)
	des += "\n"
	return des
}

func (r DemoCmd) config() nmodel.Config {
	config := nmodel.DefaultConfig()
	if r.FileVersion != "" {
		config.Version = r.FileVersion
	}
	config.UserVersion = r.UserVersion
	if r.MaxArraySize > 0 {
		config.MaxArraySize = r.MaxArraySize
	}
	return config
}

// parseVars reads NAME=VALUE pairs. Values are numbers, versions or else plain strings.
func parseVars(vars []string) (map[string]nexpr.Value, error) {
	values := make(map[string]nexpr.Value, len(vars))
	for _, v := range vars {
		name, value, ok := strings.Cut(v, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, errors.Errorf("parseVars got invalid variable %q, expected NAME=VALUE", v)
		}
		values[name] = nexpr.ParseValue(value)
	}
	return values, nil
}

func StartEvaluating(w io.Writer, cmd EvalCmd) error {
	expr, err := nexpr.Parse(cmd.Expr)
	if err != nil {
		return errors.Wrap(err, "StartEvaluating")
	}
	values, err := parseVars(cmd.Vars)
	if err != nil {
		return err
	}
	missing := lo.Filter(expr.Names(), func(name string, _ int) bool {
		_, ok := values[name]
		return !ok
	})
	if len(missing) > 0 {
		logrus.WithField("names", missing).Debug("unresolved names evaluate as invalid")
	}

	result := expr.Evaluate(func(name string) nexpr.Value {
		return values[name]
	})
	_, err = fmt.Fprintf(w, "%s => %s (%t)\n", expr, result, result.ToBool())
	return err
}

func StartPacking(w io.Writer, cmd VersionCmd) error {
	for _, v := range cmd.Versions {
		n := nexpr.VersionToNumber(v)
		if n == 0 {
			return errors.Errorf("StartPacking got invalid version %q", v)
		}
		if _, err := fmt.Fprintf(w, "%s\t0x%08X\t%s\n", v, n, nexpr.NumberToVersion(n)); err != nil {
			return err
		}
	}
	return nil
}

// BuildDemo stamps a root node with shapes sharing one geometry block.
func BuildDemo(cmd DemoCmd, logger logrus.FieldLogger) (*nmodel.Document, error) {
	doc, err := nmodel.New(
		nmodel.BaseRegistry(),
		nmodel.WithConfig(cmd.config()),
		nmodel.WithLogger(logger),
	)
	if err != nil {
		return nil, errors.Wrap(err, "BuildDemo")
	}

	root, err := doc.InsertBlock("BSFadeNode", -1)
	if err != nil {
		return nil, errors.Wrap(err, "BuildDemo")
	}
	nitem.Set(doc.BlockField(root, "Name"), "Scene Root")

	geometry, err := doc.InsertBlock("NiTriShapeData", -1)
	if err != nil {
		return nil, errors.Wrap(err, "BuildDemo")
	}
	nitem.Set(doc.BlockField(geometry, "Num Vertices"), uint16(3))
	nitem.Set(doc.BlockField(geometry, "Has Vertices"), true)
	vertices := doc.BlockField(geometry, "Vertices")
	doc.UpdateArraySize(vertices)
	nitem.SetArray(vertices, []nvalue.Vector3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}})
	nitem.Set(doc.BlockField(geometry, "Num Triangles"), uint16(1))
	triangles := doc.BlockField(geometry, "Triangles")
	doc.UpdateArraySize(triangles)
	nitem.SetArray(triangles, []nvalue.Triangle{{0, 1, 2}})

	links := make([]int32, 0, cmd.Shapes)
	for i := 0; i < cmd.Shapes; i++ {
		shape, err := doc.InsertBlock("NiTriShape", -1)
		if err != nil {
			return nil, errors.Wrap(err, "BuildDemo")
		}
		nitem.Set(doc.BlockField(shape, "Name"), fmt.Sprintf("Shape %d", i))
		nitem.Set(doc.BlockField(shape, "Data"), int32(doc.BlockIndex(geometry)))
		links = append(links, int32(doc.BlockIndex(shape)))
	}
	nitem.Set(doc.BlockField(root, "Num Children"), uint32(len(links)))
	children := doc.BlockField(root, "Children")
	doc.UpdateArraySize(children)
	nitem.SetArray(children, links)
	return doc, nil
}

func StartDemo(w io.Writer, cmd DemoCmd) error {
	doc, err := BuildDemo(cmd, logrus.StandardLogger())
	if err != nil {
		return err
	}
	if cmd.Out != "" {
		bw := nbytes.NewWriter()
		if err := doc.WriteDocument(bw); err != nil {
			return errors.Wrap(err, "StartDemo")
		}
		if err := os.WriteFile(cmd.Out, bw.Bytes(), 0o644); err != nil {
			return errors.Wrap(err, "StartDemo could not write the document")
		}
		logrus.WithField("path", cmd.Out).Info("document written")
	}
	_, err = fmt.Fprintln(w, ds.DumpJSONIndent(doc.ToOrderedMap()))
	return err
}

func StartDumping(w io.Writer, cmd DumpCmd) error {
	bs, err := os.ReadFile(cmd.Path)
	if err != nil {
		return errors.Wrap(err, "StartDumping could not read the file")
	}
	doc, err := nmodel.ReadDocument(
		nmodel.BaseRegistry(),
		nbytes.NewReader(bs),
		nmodel.WithLogger(logrus.StandardLogger()),
	)
	if err != nil {
		return errors.Wrapf(err, "StartDumping could not read %s", cmd.Path)
	}
	for _, message := range doc.Messages() {
		logrus.Warn(message.String())
	}
	_, err = fmt.Fprintln(w, ds.DumpJSONIndent(doc.ToOrderedMap()))
	return err
}

func setupLogging(verbose bool) {
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	logrus.SetOutput(os.Stderr)
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.ErrorLevel)
	}
}

func Start() {
	args := Args{}
	p := arg.MustParse(&args)
	setupLogging(args.Verbose)

	err := error(nil)
	switch {
	case args.Eval != nil:
		err = StartEvaluating(os.Stdout, *args.Eval)
	case args.Version != nil:
		err = StartPacking(os.Stdout, *args.Version)
	case args.Demo != nil:
		err = StartDemo(os.Stdout, *args.Demo)
	case args.Dump != nil:
		err = StartDumping(os.Stdout, *args.Dump)
	default:
		p.WriteHelp(os.Stdout)
		return
	}
	if err != nil {
		logrus.WithError(err).Error("command failed")
		os.Exit(1)
	}
}
