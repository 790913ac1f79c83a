package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	cli "github.com/urfave/cli/v2"

	"github.com/corpix/railfence/config"
	"github.com/corpix/railfence/encoding"
	"github.com/corpix/railfence/errors"
	"github.com/corpix/railfence/http"
	"github.com/corpix/railfence/log"
	"github.com/corpix/railfence/metrics"
	"github.com/corpix/railfence/railfence"
)

type (
	BoolFlag        = cli.BoolFlag
	Command         = cli.Command
	Commands        = []*Command
	Context         = cli.Context
	Flag            = cli.Flag
	Flags           = []Flag
	IntFlag         = cli.IntFlag
	PathFlag        = cli.PathFlag
	StringFlag      = cli.StringFlag
	StringSliceFlag = cli.StringSliceFlag

	App        = cli.App
	BeforeFunc = cli.BeforeFunc
	AfterFunc  = cli.AfterFunc
	ActionFunc = cli.ActionFunc
	Action     = func(*Context) error

	Config          = config.Config
	ConfigContainer = config.Container

	Cli struct {
		*App
		Config *ConfigContainer
	}

	Option func(*Cli)
)

//

func WithComposition(options ...Option) Option {
	return func(c *Cli) {
		for _, option := range options {
			option(c)
		}
	}
}

//

func WithName(name string) Option {
	return func(c *Cli) {
		c.Name = name
	}
}

func WithDescription(desc string) Option {
	return func(c *Cli) {
		c.Description = desc
	}
}

func WithUsage(usage string) Option {
	return func(c *Cli) {
		c.Usage = usage
	}
}

func WithVersion(version string) Option {
	return func(c *Cli) {
		c.Version = version
	}
}

func WithConfig(cfg Config) Option {
	return func(c *Cli) {
		c.Config = config.New(cfg)
	}
}

func WithIO(r io.Reader, w io.Writer, errw io.Writer) Option {
	return func(c *Cli) {
		c.Reader = r
		c.Writer = w
		c.ErrWriter = errw
	}
}

//

func WithFlags(flags Flags) Option {
	return func(c *Cli) {
		c.Flags = append(c.Flags, flags...)
	}
}

func WithCommands(commands Commands) Option {
	return func(c *Cli) {
		c.Commands = append(c.Commands, commands...)
	}
}

//

func ActionChain(current Action, next Action) Action {
	if current != nil {
		return func(ctx *Context) error {
			err := current(ctx)
			if err != nil {
				return err
			}
			return next(ctx)
		}
	}
	return next
}

func WithBefore(fn BeforeFunc) Option {
	return func(c *Cli) {
		c.Before = ActionChain(c.Before, fn)
	}
}
func WithAfter(fn AfterFunc) Option {
	return func(c *Cli) {
		c.After = ActionChain(c.After, fn)
	}
}
func WithAction(fn ActionFunc) Option {
	return func(c *Cli) {
		c.Action = ActionChain(c.Action, fn)
	}
}

//

// ConfigFromContext loads configuration files given with --config, the
// environment overrides them.
func ConfigFromContext(ctx *Context, cfg Config, unmarshaler config.Unmarshaler) error {
	paths := ctx.StringSlice("config")
	sources := make([]config.Option, 0, len(paths)+1)

	for _, path := range paths {
		sources = append(sources, config.FromFile(path, unmarshaler))
	}
	sources = append(sources, config.FromEnviron(config.EnvironPrefix))

	_, err := config.Load(cfg, sources...)
	if err != nil {
		return err
	}
	return nil
}

func WithConfigTools(cfg Config, unmarshaler config.Unmarshaler, marshaler config.Marshaler) Option {
	return WithComposition(
		WithConfig(cfg),
		WithBefore(func(ctx *Context) error {
			err := ConfigFromContext(ctx, cfg, unmarshaler)
			if err != nil {
				return err
			}

			return config.Postprocess(
				cfg,
				config.WithDefaults(),
				config.WithExpansion(),
				config.WithValidation(),
			)
		}),
		func(c *Cli) {
			c.Flags = append(c.Flags, &StringSliceFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to application configuration file",
			})

			commands := Commands{}

			if _, ok := c.Config.Unwrap().(config.Defaultable); ok {
				commands = append(commands, &Command{
					Name:    "show-default",
					Aliases: []string{"sd"},
					Usage:   "Show default configuration",
					Action: func(ctx *Context) error {
						cfg := c.Config.EmptyClone()
						err := config.Postprocess(
							cfg,
							config.WithDefaults(),
						)
						if err != nil {
							return err
						}
						return config.ToWriter(ctx.App.Writer, marshaler)(cfg)
					},
				})
			}

			if _, ok := c.Config.Unwrap().(config.Validatable); ok {
				commands = append(commands, &Command{
					Name:    "validate",
					Aliases: []string{"v"},
					Usage:   "Validate configuration and exit",
					Action: func(ctx *Context) error {
						fmt.Fprintln(ctx.App.Writer, "configuration is valid")
						return nil
					},
				})
			}

			commands = append(commands, &Command{
				Name:    "show",
				Aliases: []string{"s"},
				Usage:   "Show current configuration",
				Action: func(ctx *Context) error {
					return config.ToWriter(ctx.App.Writer, marshaler)(cfg)
				},
			})

			c.Commands = append(c.Commands, &Command{
				Name:        "config",
				Usage:       "Configuration tools",
				Subcommands: commands,
			})
		},
	)
}

func WithLogTools(cfg func() *log.Config, options ...log.Option) Option {
	return WithComposition(
		WithFlags(Flags{
			&StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "logging level (debug, info, warn, error)",
			},
		}),
		func(c *Cli) {
			WithBefore(func(ctx *Context) error {
				level := ctx.String("log-level")
				if level == "" {
					level = cfg().Level
				}

				return log.Init(level, options...)
			})(c)
		},
	)
}

func WithHttpTools(cfg func() *http.Config, cipher func() *railfence.Config, options ...http.Option) Option {
	return func(c *Cli) {
		c.Commands = append(c.Commands, &Command{
			Name:    "http",
			Aliases: []string{"ht"},
			Usage:   "HTTP server tools",
			Flags: Flags{
				&StringFlag{
					Name:    "address",
					Aliases: []string{"a"},
					Usage:   "address:port to listen on",
				},
			},
			Subcommands: Commands{
				&Command{
					Name:    "serve",
					Aliases: []string{"s"},
					Usage:   "Run server listener",
					Action: func(ctx *Context) error {
						conf := cfg()
						address := ctx.String("address")
						if address == "" {
							address = conf.Address
						}

						router := http.NewRouter(conf)
						opts := []http.Option{
							http.WithAddress(address),
							http.WithCipherHandlers(cipher(), router),
							http.WithHandler(http.Compose(
								router,
								http.Trace(conf.Trace),
								http.Recover(),
							)),
							http.WithMetricsHandler(metrics.Default, router),
						}
						return http.New(conf, append(opts, options...)...).ListenAndServe()
					},
				},
			},
		})
	}
}

//

func cipherFlags() Flags {
	return Flags{
		&IntFlag{
			Name:    "rails",
			Aliases: []string{"r"},
			Usage:   "number of rails, overrides cipher.rails from configuration",
		},
		&StringFlag{
			Name:    "encoder",
			Aliases: []string{"e"},
			Usage:   "cipher text container (raw, base64, zstd), overrides encoding.type from configuration",
		},
		&PathFlag{
			Name:    "input",
			Aliases: []string{"i"},
			Usage:   "read text from file, - reads standard input (used when no text arguments given)",
			Value:   "-",
		},
	}
}

// cipherInput returns positional arguments joined by spaces, or the
// contents of --input without a single trailing newline.
func cipherInput(ctx *Context) ([]byte, error) {
	if ctx.Args().Present() {
		return []byte(strings.Join(ctx.Args().Slice(), " ")), nil
	}

	var (
		r    = ctx.App.Reader
		path = ctx.Path("input")
	)
	if path != "-" && path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to open input file %q", path)
		}
		defer f.Close()
		r = f
	}

	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read input")
	}
	buf = []byte(strings.TrimSuffix(strings.TrimSuffix(string(buf), "\n"), "\r"))
	return buf, nil
}

func cipherEncodeDecoder(ctx *Context, cipher *railfence.Config, enc *encoding.Config) (*encoding.EncodeDecoderRailFence, error) {
	rails := cipher.Rails
	if ctx.IsSet("rails") {
		rails = ctx.Int("rails")
	}
	fence, err := railfence.New(rails)
	if err != nil {
		return nil, err
	}

	typ := enc.Type
	if ctx.IsSet("encoder") {
		typ = ctx.String("encoder")
	}
	container, err := encoding.NewEncodeDecoder(typ)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Int("rails", rails).
		Str("encoder", typ).
		Msg("cipher configured")

	return encoding.NewEncodeDecoderRailFence(fence, container), nil
}

func cipherAction(operation string, cipher func() *railfence.Config, enc func() *encoding.Config) ActionFunc {
	return func(ctx *Context) error {
		ed, err := cipherEncodeDecoder(ctx, cipher(), enc())
		if err != nil {
			return err
		}
		input, err := cipherInput(ctx)
		if err != nil {
			return err
		}

		var output []byte
		switch operation {
		case metrics.OperationEncode:
			output, err = ed.Encode(input)
		default:
			output, err = ed.Decode(input)
		}
		if err != nil {
			return errors.Wrapf(err, "failed to %s", operation)
		}

		_, err = fmt.Fprintln(ctx.App.Writer, string(output))
		return err
	}
}

func WithCipherTools(cipher func() *railfence.Config, enc func() *encoding.Config) Option {
	return WithCommands(Commands{
		&Command{
			Name:      "encode",
			Aliases:   []string{"e"},
			Usage:     "Encipher text with the rail fence",
			ArgsUsage: "[text...]",
			Flags:     cipherFlags(),
			Action:    cipherAction(metrics.OperationEncode, cipher, enc),
		},
		&Command{
			Name:      "decode",
			Aliases:   []string{"d"},
			Usage:     "Decipher text produced by encode with the same rails and encoder",
			ArgsUsage: "[text...]",
			Flags:     cipherFlags(),
			Action:    cipherAction(metrics.OperationDecode, cipher, enc),
		},
	})
}

func New(options ...Option) *Cli {
	c := &Cli{
		App: &App{
			Reader:    os.Stdin,
			Writer:    os.Stdout,
			ErrWriter: os.Stderr,
		},
	}

	for _, option := range options {
		option(c)
	}

	return c
}
