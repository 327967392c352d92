package main

import (
	"context"
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/lox/cfrsolver/internal/solverconfig"
	"github.com/lox/cfrsolver/sdk/solver"
)

var cli struct {
	Debug  bool   `help:"enable debug logging"`
	Config string `help:"optional HCL config file; flags override its values"`

	Train  TrainCmd  `cmd:"" help:"run CFR+ training and emit a blueprint"`
	Resume ResumeCmd `cmd:"" help:"resume training from a checkpoint"`
	Eval   EvalCmd   `cmd:"" help:"report EV and exploitability for a blueprint"`
}

type TrainCmd struct {
	Game            string  `help:"game to solve (kuhn|pushfold|preflop)" default:"kuhn"`
	Out             string  `help:"path to write the blueprint" required:""`
	Iterations      int     `help:"number of CFR+ iterations" default:"1000"`
	EffStack        float64 `help:"effective stack in big blinds (ignored for kuhn)" default:"10"`
	EquityTable     string  `help:"path to the heads-up equity table (required for pushfold/preflop)"`
	CheckpointDir   string  `help:"directory to write rolling checkpoints into"`
	CheckpointEvery int     `help:"checkpoint interval in iterations (0 disables)" default:"0"`
	ProgressEvery   int     `help:"log progress every N iterations (0 => iterations/100)" default:"0"`
	CPUProfile      string  `help:"write a CPU profile to this path"`
}

type ResumeCmd struct {
	Checkpoint      string `help:"checkpoint file to resume from" required:""`
	Out             string `help:"path to write the blueprint" required:""`
	Iterations      int    `help:"total iteration target (0 keeps the checkpoint's)" default:"0"`
	CheckpointDir   string `help:"directory to write rolling checkpoints into"`
	CheckpointEvery int    `help:"checkpoint interval in iterations (0 disables)" default:"0"`
	ProgressEvery   int    `help:"log progress every N iterations (0 => iterations/100)" default:"0"`
	CPUProfile      string `help:"write a CPU profile to this path"`
}

type EvalCmd struct {
	Blueprint string `help:"path to blueprint file" required:""`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("solver"),
		kong.Description("CFR+ solver tooling for Kuhn poker, heads-up push/fold, and heads-up pre-flop"),
		kong.UsageOnError(),
	)

	setupLogger(cli.Debug)

	var err error
	switch ctx.Command() {
	case "train":
		err = cli.Train.Run(context.Background())
	case "resume":
		err = cli.Resume.Run(context.Background())
	case "eval":
		err = cli.Eval.Run(context.Background())
	default:
		log.Fatal().Msgf("unknown command: %s", ctx.Command())
	}
	if err != nil {
		log.Fatal().Err(err).Msg("command failed")
	}
}

func setupLogger(debug bool) {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level)
}

func startProfile(path string) (func(), error) {
	if path == "" {
		return func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create cpu profile: %w", err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return nil, fmt.Errorf("start cpu profile: %w", err)
	}
	log.Info().Str("path", path).Msg("CPU profiling enabled")
	return func() {
		pprof.StopCPUProfile()
		f.Close()
	}, nil
}

func progressLogger() func(solver.Progress) {
	return func(p solver.Progress) {
		log.Info().
			Int("iteration", p.Iteration).
			Int("infosets", p.TableSize).
			Dur("elapsed", p.Elapsed).
			Msg("training progress")
	}
}

func (cmd *TrainCmd) Run(ctx context.Context) error {
	stopProfile, err := startProfile(cmd.CPUProfile)
	if err != nil {
		return err
	}
	defer stopProfile()

	override, err := solverconfig.Load(cli.Config)
	if err != nil {
		return err
	}

	cfg := solver.TrainingConfig{
		Game:            solver.Game(cmd.Game),
		Iterations:      cmd.Iterations,
		EffStack:        cmd.EffStack,
		EquityTablePath: cmd.EquityTable,
		CheckpointDir:   cmd.CheckpointDir,
		CheckpointEvery: cmd.CheckpointEvery,
		ProgressEvery:   cmd.ProgressEvery,
	}
	applyConfigOverrides(&cfg, override)

	trainer, err := solver.NewTrainer(cfg, log.Logger)
	if err != nil {
		return fmt.Errorf("new trainer: %w", err)
	}

	log.Info().
		Str("game", string(cfg.Game)).
		Int("iterations", cfg.Iterations).
		Float64("eff_stack", cfg.EffStack).
		Msg("starting training run")

	start := time.Now()
	if err := trainer.Run(ctx, progressLogger()); err != nil {
		return fmt.Errorf("train: %w", err)
	}

	bp := trainer.Blueprint()
	log.Info().
		Dur("duration", time.Since(start)).
		Int("infosets", len(bp.Strategies)).
		Float64("ev_player_zero", bp.EVPlayerZero).
		Float64("exploitability", bp.Exploitability).
		Msg("training completed")

	if err := bp.Save(cmd.Out); err != nil {
		return fmt.Errorf("save blueprint: %w", err)
	}
	log.Info().Str("path", cmd.Out).Msg("blueprint saved")
	return nil
}

func (cmd *ResumeCmd) Run(ctx context.Context) error {
	stopProfile, err := startProfile(cmd.CPUProfile)
	if err != nil {
		return err
	}
	defer stopProfile()

	trainer, err := solver.LoadCheckpoint(cmd.Checkpoint)
	if err != nil {
		return fmt.Errorf("load checkpoint: %w", err)
	}
	trainer.SetLogger(log.Logger)

	log.Info().
		Int("resume_iteration", trainer.Iteration()).
		Msg("resuming training run")

	if cmd.Iterations > 0 {
		trainer.SetTotalIterations(cmd.Iterations)
	}
	if cmd.CheckpointDir != "" && cmd.CheckpointEvery > 0 {
		trainer.EnableCheckpoints(cmd.CheckpointDir, cmd.CheckpointEvery)
	}
	if cmd.ProgressEvery > 0 {
		trainer.SetProgressEvery(cmd.ProgressEvery)
	}

	start := time.Now()
	if err := trainer.Run(ctx, progressLogger()); err != nil {
		return fmt.Errorf("resume train: %w", err)
	}

	bp := trainer.Blueprint()
	log.Info().
		Dur("duration", time.Since(start)).
		Int("infosets", len(bp.Strategies)).
		Float64("ev_player_zero", bp.EVPlayerZero).
		Float64("exploitability", bp.Exploitability).
		Msg("resumed training completed")

	if err := bp.Save(cmd.Out); err != nil {
		return fmt.Errorf("save blueprint: %w", err)
	}
	log.Info().Str("path", cmd.Out).Msg("blueprint saved")
	return nil
}

func (cmd *EvalCmd) Run(ctx context.Context) error {
	return runEvalReport(ctx, log.Logger, cmd.Blueprint)
}

func applyConfigOverrides(cfg *solver.TrainingConfig, override solverconfig.File) {
	if override.Game != "" {
		cfg.Game = solver.Game(override.Game)
	}
	if override.Iterations > 0 {
		cfg.Iterations = override.Iterations
	}
	if override.EffStack > 0 {
		cfg.EffStack = override.EffStack
	}
	if override.EquityTable != "" {
		cfg.EquityTablePath = override.EquityTable
	}
	if override.CheckpointEvery > 0 {
		cfg.CheckpointEvery = override.CheckpointEvery
	}
	if override.CheckpointDir != "" {
		cfg.CheckpointDir = override.CheckpointDir
	}
	if override.ProgressEvery > 0 {
		cfg.ProgressEvery = override.ProgressEvery
	}
}
