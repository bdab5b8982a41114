package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli"

	"github.com/oy3o/wire"
	"github.com/oy3o/wire/frame"
	"github.com/oy3o/wire/schema"
)

var (
	schemaFlag = cli.StringFlag{
		Name:  "schema",
		Usage: "Path to the TOML file declaring the messages",
	}
	messageFlag = cli.StringFlag{
		Name:  "message",
		Usage: "Message every frame holds. Defaults to the last message of the schema",
	}
	maxPayloadFlag = cli.Uint64Flag{
		Name:  "max-payload",
		Usage: "Largest frame payload in bytes. Larger frames are skipped",
		Value: uint64(frame.DefaultLimits().MaxPayloadBytes),
	}
	verboseFlag = cli.BoolFlag{
		Name:  "verbose",
		Usage: "Log every frame to stderr",
	}
)

func main() {
	app := cli.NewApp()
	app.Name = "wiredump"
	app.Version = "v0.1.0"
	app.Usage = "Decode length-prefixed frames with a TOML schema and print one JSON object per frame"
	app.ArgsUsage = "[input file, defaults to stdin]"
	app.Flags = []cli.Flag{schemaFlag, messageFlag, maxPayloadFlag, verboseFlag}
	app.Action = dump

	if err := app.Run(os.Args); err != nil {
		log.Error().Err(err).Msg("wiredump failed")
		os.Exit(1)
	}
}

func initLogger(verbose bool) {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	log.Logger = zerolog.New(output).Level(level).With().Timestamp().Str("app", "wiredump").Logger()
}

func dump(ctx *cli.Context) error {
	initLogger(ctx.Bool(verboseFlag.Name))

	path := ctx.String(schemaFlag.Name)
	if path == "" {
		return fmt.Errorf("--%s is required", schemaFlag.Name)
	}
	s, err := schema.Load(path)
	if err != nil {
		return err
	}
	msg, err := pickMessage(s, ctx.String(messageFlag.Name))
	if err != nil {
		return err
	}

	maxPayload := ctx.Uint64(maxPayloadFlag.Name)
	if maxPayload > uint64(^uint32(0)) {
		return fmt.Errorf("--%s %d does not fit a frame header", maxPayloadFlag.Name, maxPayload)
	}
	limits := frame.Limits{MaxPayloadBytes: uint32(maxPayload)}

	in := io.Reader(os.Stdin)
	if name := ctx.Args().First(); name != "" && name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	log.Debug().Str("schema", path).Str("message", msg.Name()).Uint32("max_payload", limits.MaxPayloadBytes).Msg("dumping frames")
	frames, failed, err := run(bufio.NewReader(in), os.Stdout, msg, limits)
	log.Info().Int("frames", frames).Int("failed", failed).Msg("done")
	return err
}

func pickMessage(s *schema.Schema, name string) (*schema.Message, error) {
	if name != "" {
		return s.Message(name)
	}
	names := s.Messages()
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: schema declares no messages", schema.ErrUnknownMessage)
	}
	return s.Message(names[len(names)-1])
}

// skippable reports errors that leave the stream aligned on the next frame.
func skippable(err error) bool {
	for _, target := range []error{
		frame.ErrPayloadTooLarge,
		wire.ErrBudgetExhausted,
		wire.ErrTrailingData,
		wire.ErrInvalidEncoding,
		wire.ErrNoProgress,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// run decodes frames until the input ends. Frames that fail to decode are
// logged and skipped; a broken stream stops the run.
func run(in io.Reader, out io.Writer, msg *schema.Message, limits frame.Limits) (frames, failed int, err error) {
	enc := json.NewEncoder(out)
	for {
		rec, err := frame.ReadFrame[schema.Record](in, msg, limits)
		switch {
		case errors.Is(err, io.EOF):
			return frames, failed, nil
		case skippable(err):
			failed++
			log.Warn().Err(err).Int("frame", frames+failed).Msg("skipping frame")
			continue
		case err != nil:
			return frames, failed, err
		}

		frames++
		log.Debug().Int("frame", frames+failed).Int("bytes", msg.Size(&rec)).Msg("decoded")
		if err := enc.Encode(rec); err != nil {
			return frames, failed, err
		}
	}
}
