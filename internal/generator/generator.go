package generator

import (
	"fmt"
	"log/slog"

	"sched-autogen/config"
	"sched-autogen/internal/core"
	"sched-autogen/internal/random"
	"sched-autogen/internal/storage"
	"sched-autogen/internal/util"
)

// Generator produces synthetic scheduler workloads. It is not safe for
// concurrent use because it shares one random source across calls.
type Generator struct {
	limits config.Limits
	src    random.Source
	logger *slog.Logger
}

func New(limits config.Limits, src random.Source, logger *slog.Logger) *Generator {
	return &Generator{limits: limits, src: src, logger: logger}
}

// Dataset draws one workload. Arrival times never decrease: each arrival is
// drawn from [clock, clock+MaxInterval) and becomes the next clock.
func (g *Generator) Dataset(index int) *core.Dataset {
	numProcess := random.Count(g.src, g.limits.MaxProcess)
	dataset := &core.Dataset{
		Index:     index,
		Processes: make([]core.Process, 0, numProcess),
	}

	currTime := 0
	for i := 0; i < numProcess; i++ {
		var process core.Process
		process, currTime = g.nextProcess(currTime)
		dataset.Processes = append(dataset.Processes, process)
	}
	g.logger.Debug("dataset generated", "name", dataset.Name(), "processes", numProcess)
	return dataset
}

// nextProcess draws a descriptor arriving no earlier than currTime and
// returns it with the advanced clock. The clock moves to the arrival time
// only; bursts do not push later arrivals back.
func (g *Generator) nextProcess(currTime int) (core.Process, int) {
	process := core.Process{
		ArrivalTime: random.Range(g.src, currTime, currTime+g.limits.MaxInterval),
		TotalCPU:    random.Range(g.src, 1, g.limits.MaxTotalCPU),
		CPUBurst:    random.Range(g.src, 1, g.limits.MaxCPUBurst),
		IOBurst:     random.Range(g.src, 1, g.limits.MaxIOBurst),
	}
	return process, process.ArrivalTime
}

// Datasets draws every configured workload in index order without writing
// anything.
func (g *Generator) Datasets() []*core.Dataset {
	datasets := make([]*core.Dataset, 0, g.limits.Datasets)
	for n := 0; n < g.limits.Datasets; n++ {
		datasets = append(datasets, g.Dataset(n))
	}
	return datasets
}

// Generate draws and writes each workload in turn. The first I/O error stops
// the run: artifacts already written stay, later ones are never created.
func (g *Generator) Generate(sink storage.Sink) ([]*core.Dataset, error) {
	datasets := make([]*core.Dataset, 0, g.limits.Datasets)
	for n := 0; n < g.limits.Datasets; n++ {
		dataset := g.Dataset(n)
		if err := writeArtifact(sink, dataset); err != nil {
			return datasets, err
		}
		summary := util.Summarize(dataset)
		g.logger.Info("dataset written",
			"name", dataset.Name(),
			"processes", summary.ProcessCount,
			"last_arrival", summary.LastArrivalTime)
		datasets = append(datasets, dataset)
	}
	return datasets, nil
}

// GenerateDir writes the workloads into dir; an empty dir is the working
// directory.
func (g *Generator) GenerateDir(dir string) ([]*core.Dataset, error) {
	return g.Generate(storage.NewDirSink(dir))
}

func writeArtifact(sink storage.Sink, dataset *core.Dataset) (err error) {
	name := dataset.Name()
	w, err := sink.Create(name)
	if err != nil {
		return fmt.Errorf("creating %s: %w", name, err)
	}
	defer func() {
		if closeErr := w.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", name, closeErr)
		}
	}()

	if _, err = dataset.WriteTo(w); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}
