package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"

	"github.com/bodgit/bmp2array"
	"github.com/bodgit/bmp2array/array"
	"github.com/bodgit/bmp2array/bitmap"
	"github.com/bodgit/bmp2array/pixel"
	"github.com/urfave/cli/v2"
)

const defaultWorkers = 4

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func selectorFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			EnvVars: []string{"BMP2ARRAY_FORMAT"},
			Value:   pixel.RGB565.String(),
			Usage:   "output format, one of RGB565, RGB565_8BIT, RGB332 or GRAY8",
		},
		&cli.StringFlag{
			Name:    "byte-order",
			Aliases: []string{"b"},
			EnvVars: []string{"BMP2ARRAY_BYTE_ORDER"},
			Value:   pixel.LittleEndian.String(),
			Usage:   "byte order of packed values, little or big",
		},
		&cli.BoolFlag{
			Name:  "raw",
			Usage: "only use the built-in raw pixel parser",
		},
	}
}

func newConverter(c *cli.Context) *bmp2array.Converter {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}

	if c.Bool("raw") {
		return bmp2array.New(logger, bitmap.RawDecoder{})
	}
	return bmp2array.New(logger)
}

func convert(c *cli.Context) error {
	if c.NArg() < 2 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	// Positional selectors take precedence over the flags
	format, order := c.String("format"), c.String("byte-order")
	if c.NArg() > 2 {
		format = c.Args().Get(2)
	}
	if c.NArg() > 3 {
		order = c.Args().Get(3)
	}

	req, err := bmp2array.NewRequest(c.Args().Get(0), c.Args().Get(1), format, order)
	if err != nil {
		return cli.Exit(err, 1)
	}

	var progress array.ProgressFunc
	if c.Bool("progress") {
		progress = func(message string) {
			fmt.Fprintln(c.App.ErrWriter, message)
		}
	}

	res := newConverter(c).Convert(req, progress)
	if !res.Success {
		return cli.Exit(fmt.Sprintf("error: %s", res.Message), 1)
	}

	fmt.Fprintln(c.App.Writer, res.Message)

	return nil
}

func info(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	f, err := pixel.ParseFormat(c.String("format"))
	if err != nil {
		return cli.Exit(err, 1)
	}

	path := c.Args().First()

	i, err := newConverter(c).Info(path)
	if err != nil {
		return cli.Exit(err, 1)
	}

	w := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "File:\t%s\n", path)
	fmt.Fprintf(w, "Size:\t%d bytes\n", i.FileSize)
	fmt.Fprintf(w, "Dimensions:\t%d×%d\n", i.Width, i.Height)
	fmt.Fprintf(w, "Bits per pixel:\t%d\n", i.BitsPerPixel)
	fmt.Fprintf(w, "Compression:\t%d\n", i.Compression)
	fmt.Fprintf(w, "Row stride:\t%d bytes (%d padding)\n", i.RowStride(), i.Padding())
	fmt.Fprintf(w, "Elements:\t%d (%s)\n", array.ElementCount(i, f), f)

	return w.Flush()
}

func batch(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	req, err := bmp2array.NewRequest("", "", c.String("format"), c.String("byte-order"))
	if err != nil {
		return cli.Exit(err, 1)
	}

	if err := newConverter(c).Batch(c.Args().First(), req.Format, req.ByteOrder, c.Int("workers")); err != nil {
		return cli.Exit(err, 1)
	}

	return nil
}

func newApp() *cli.App {
	app := cli.NewApp()

	app.Name = "bmp2array"
	app.Usage = "Convert BMP images into C arrays for embedded displays"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "convert",
			Usage:       "Convert a BMP file into a C array",
			Description: "The format and byte order may also be given as the third and fourth arguments.",
			ArgsUsage:   "INPUT OUTPUT [FORMAT] [BYTE-ORDER]",
			Flags: append(selectorFlags(), &cli.BoolFlag{
				Name:  "progress",
				Usage: "report conversion progress on stderr",
			}),
			Action: convert,
		},
		{
			Name:      "info",
			Usage:     "Show the header information of a BMP file",
			ArgsUsage: "FILE",
			Flags:     selectorFlags()[:1],
			Action:    info,
		},
		{
			Name:        "batch",
			Usage:       "Convert every BMP file under a directory",
			Description: "Each FILE.bmp is converted to FILE.h alongside it. Hidden files and directories are skipped.",
			ArgsUsage:   "DIRECTORY",
			Flags: append(selectorFlags(), &cli.IntFlag{
				Name:    "workers",
				Aliases: []string{"w"},
				Value:   defaultWorkers,
				Usage:   "number of files to convert at once",
			}),
			Action: batch,
		},
	}

	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
