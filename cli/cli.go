package cli

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/ardnew/qjsc/cli/cmd"
	"github.com/ardnew/qjsc/log"
	"github.com/ardnew/qjsc/pkg"
)

// CLI is the top-level command-line interface for qjsc.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	ProjectDir []string `default:"."   help:"Project directories to load (also ${searchPathEnv})" name:"project-dir" short:"I" type:"path"`
	NS         string   `default:"qml" help:"Global object holding the generated program"      name:"ns"`

	Version kong.VersionFlag `help:"Print version and exit" short:"V"`

	Build   cmd.Build   `cmd:"" default:"withargs" help:"Compile a project into one program"`
	Resolve cmd.Resolve `cmd:""                    help:"Resolve a component reference"`
	Order   cmd.Order   `cmd:""                    help:"Print the component emission order"`
	Explore cmd.Explore `cmd:""                    help:"Resolve component references interactively"`
	Init    cmd.Init    `cmd:""                    help:"Initialize configuration file"`
}

// Run executes the qjsc CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := mkdirAllRequired()
	if err != nil {
		return err
	}

	// A project-local .env may set QJSC_PATH and friends.
	err = godotenv.Load(dotenv)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return pkg.ErrReadInput.Wrap(err)
	}

	configFilePath := configPath(baseConfig)

	vars := kong.Vars{
		"version":            pkg.Version(),
		"searchPathEnv":      searchPathEnv,
		cmd.ConfigIdentifier: configFilePath,
		cmd.CacheIdentifier:  pkg.CacheDir(),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Apply logger flags before kong reports anything, wherever they appear.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(loadYAML, configFilePath, localConfig),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cli.Log.start(ctx)

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	dirs := searchPath(cli.ProjectDir)

	log.DebugContext(ctx, "project",
		slog.Any("dirs", dirs),
		slog.String("ns", cli.NS),
	)

	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithProject(ctx, cmd.Project{Dirs: dirs, NS: cli.NS})

	return ktx.Run(ctx, &cli)
}
