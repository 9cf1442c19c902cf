package main

import (
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"strings"

	"github.com/bodgit/colorgrid"
	"github.com/bodgit/colorgrid/dictionary"
	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v2"
)

const stdio = "-"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.NewWithOptions(ioutil.Discard, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           log.DebugLevel,
	})
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func loadConfig(c *cli.Context) (colorgrid.Config, error) {
	cfg := colorgrid.DefaultConfig()
	if file := c.String("config"); file != "" {
		var err error
		if cfg, err = colorgrid.LoadConfig(file); err != nil {
			return cfg, err
		}
	}

	if c.IsSet("alphabet") {
		cfg.Alphabet = c.String("alphabet")
	}
	if c.IsSet("order") {
		cfg.Order = c.String("order")
	}
	if c.IsSet("scale") {
		cfg.Scale = c.Int("scale")
	}
	if c.IsSet("size") {
		cfg.Size = c.Int("size")
	}
	if c.IsSet("sampling") {
		cfg.Sampling = c.String("sampling")
	}
	if c.IsSet("denoise") {
		cfg.Denoise = c.Bool("denoise")
	}
	if c.IsSet("workers") {
		cfg.Workers = c.Int("workers")
	}

	return cfg, nil
}

// newColorGrid returns a ColorGrid configured from the command line along
// with a function that closes the archive, if one was opened.
func newColorGrid(c *cli.Context) (*colorgrid.ColorGrid, func(), error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, nil, err
	}

	logger := newLogger(c)

	var archive *colorgrid.Archive
	closer := func() {}
	if file := c.String("db"); file != "" {
		if archive, err = colorgrid.NewArchive(file); err != nil {
			return nil, nil, err
		}
		logger.Debug("Opened archive", "db", file)
		closer = func() { archive.Close() }
	}

	cg, err := colorgrid.New(cfg, archive, logger)
	if err != nil {
		closer()
		return nil, nil, err
	}

	return cg, closer, nil
}

func readText(arg string) (string, error) {
	if arg != stdio {
		return arg, nil
	}
	b, err := ioutil.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(strings.TrimSuffix(string(b), "\n"), "\r"), nil
}

func encode(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	cg, closer, err := newColorGrid(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer closer()

	text, err := readText(strings.Join(c.Args().Slice(), " "))
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	if out := c.String("output"); out != stdio {
		err = cg.EncodeFile(text, out)
	} else {
		err = cg.EncodeImage(os.Stdout, text)
	}
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	return nil
}

func decode(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	cg, closer, err := newColorGrid(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer closer()

	var text string
	if file := c.Args().First(); file != stdio {
		text, err = cg.DecodeFile(file)
	} else {
		text, err = cg.DecodeImage(os.Stdin)
	}
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	fmt.Println(text)

	return nil
}

func batch(fn func(*colorgrid.ColorGrid, string) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		if c.NArg() < 1 {
			cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
		}

		cg, closer, err := newColorGrid(c)
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		defer closer()

		if err := fn(cg, c.Args().First()); err != nil {
			return cli.NewExitError(err, 1)
		}

		return nil
	}
}

func printDictionary(w io.Writer, d *dictionary.Dictionary, tokens []string) error {
	spec := d.Spec()
	fmt.Fprintf(w, "tokens: %d\nbudget: %d\nmax token length: %d\n", d.Len(), spec.Budget(), d.MaxTokenLength())

	for _, t := range tokens {
		c, ok := d.Color(t)
		if !ok {
			return fmt.Errorf("no color for token %q", t)
		}
		fmt.Fprintf(w, "%q\t%s\n", t, c)
	}

	return nil
}

func dict(c *cli.Context) error {
	cg, closer, err := newColorGrid(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer closer()

	if err := printDictionary(os.Stdout, cg.Codec().Dictionary(), c.Args().Slice()); err != nil {
		return cli.NewExitError(err, 1)
	}

	return nil
}

func lookup(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}
	if c.String("db") == "" {
		return cli.NewExitError(errors.New("lookup needs an archive, set --db"), 1)
	}

	cg, closer, err := newColorGrid(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer closer()

	m, err := cg.Lookup(c.Args().First())
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	if m == nil {
		return cli.NewExitError("no matching message", 1)
	}

	fmt.Printf("%d\t%s\t%d\t%s\n", m.ID, m.Alphabet, m.Size, m.Text)

	return nil
}

func main() {
	app := cli.NewApp()

	app.Name = "colorgrid"
	app.Usage = "Encode short text messages as grids of colored cells"
	app.Version = "1.0.0"

	sizeFlag := &cli.IntFlag{
		Name:  "size",
		Usage: "fixed grid size, detected from the image when 0",
	}

	imageFlags := []cli.Flag{
		sizeFlag,
		&cli.StringFlag{
			Name:  "sampling",
			Usage: "cell sampling, nearest or dominant",
		},
		&cli.BoolFlag{
			Name:  "denoise",
			Usage: "median filter the image before sampling",
		},
	}

	workersFlag := &cli.IntFlag{
		Name:  "workers",
		Usage: "number of concurrent workers",
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			EnvVars: []string{"COLORGRID_CONFIG"},
			Usage:   "path to TOML profile",
		},
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"COLORGRID_DB"},
			Usage:   "path to message archive",
		},
		&cli.StringFlag{
			Name:  "alphabet",
			Usage: "alphabet preset, lower or ascii",
		},
		&cli.StringFlag{
			Name:  "order",
			Usage: "traversal order, snake or row-major",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:      "encode",
			Usage:     "Encode text as a PNG image",
			ArgsUsage: "TEXT|-",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Value:   "grid.png",
					Usage:   "output image, - for stdout",
				},
				&cli.IntFlag{
					Name:  "scale",
					Usage: "pixels per cell",
				},
				sizeFlag,
			},
			Action: encode,
		},
		{
			Name:      "decode",
			Usage:     "Decode text from an image",
			ArgsUsage: "FILE|-",
			Flags:     imageFlags,
			Action:    decode,
		},
		{
			Name:  "batch",
			Usage: "Encode or decode every file in a directory",
			Subcommands: []*cli.Command{
				{
					Name:      "encode",
					Usage:     "Encode each .txt file to a .png image",
					ArgsUsage: "DIRECTORY",
					Flags:     []cli.Flag{workersFlag},
					Action:    batch((*colorgrid.ColorGrid).EncodeDir),
				},
				{
					Name:      "decode",
					Usage:     "Decode each .png image to a .txt file",
					ArgsUsage: "DIRECTORY",
					Flags:     append([]cli.Flag{workersFlag}, imageFlags...),
					Action:    batch((*colorgrid.ColorGrid).DecodeDir),
				},
			},
		},
		{
			Name:      "dict",
			Usage:     "Show the dictionary and the colors of tokens",
			ArgsUsage: "[TOKEN...]",
			Action:    dict,
		},
		{
			Name:      "lookup",
			Usage:     "Find the archived message for an image",
			ArgsUsage: "FILE",
			Flags:     imageFlags,
			Action:    lookup,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
