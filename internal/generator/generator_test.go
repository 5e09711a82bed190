package generator

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"sched-autogen/config"
	"sched-autogen/internal/core"
	"sched-autogen/internal/logger"
	"sched-autogen/internal/random"
)

type draw struct {
	bound int
	value int
}

// scriptedSource replays fixed draws, checking the requested bound of each,
// then falls back to a seeded source.
type scriptedSource struct {
	t        *testing.T
	draws    []draw
	fallback random.Source
}

func (s *scriptedSource) IntN(n int) int {
	if len(s.draws) == 0 {
		return s.fallback.IntN(n)
	}
	d := s.draws[0]
	s.draws = s.draws[1:]
	require.Equal(s.t, d.bound, n, "unexpected draw bound")
	return d.value
}

func newSeeded(seed uint64) *Generator {
	return New(config.DefaultLimits(), random.New(&seed), logger.Discard())
}

func parseLine(t require.TestingT, line string) core.Process {
	fields := strings.Split(line, "\t")
	require.Len(t, fields, 4, "line %q", line)
	values := make([]int, 4)
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		require.NoError(t, err, "field %q", f)
		values[i] = v
	}
	return core.Process{ArrivalTime: values[0], TotalCPU: values[1], CPUBurst: values[2], IOBurst: values[3]}
}

func readArtifact(t require.TestingT, dir, name string) []core.Process {
	content, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	text := string(content)
	require.True(t, strings.HasSuffix(text, "\n"), "artifact %s must end with a newline", name)

	var processes []core.Process
	for _, line := range strings.Split(strings.TrimSuffix(text, "\n"), "\n") {
		processes = append(processes, parseLine(t, line))
	}
	return processes
}

func checkDataset(t require.TestingT, limits config.Limits, processes []core.Process) {
	require.GreaterOrEqual(t, len(processes), 1)
	require.LessOrEqual(t, len(processes), limits.MaxProcess)
	prev := 0
	for _, p := range processes {
		require.GreaterOrEqual(t, p.ArrivalTime, prev)
		require.Less(t, p.ArrivalTime, prev+limits.MaxInterval)
		require.GreaterOrEqual(t, p.TotalCPU, 1)
		require.Less(t, p.TotalCPU, limits.MaxTotalCPU)
		require.GreaterOrEqual(t, p.CPUBurst, 1)
		require.Less(t, p.CPUBurst, limits.MaxCPUBurst)
		require.GreaterOrEqual(t, p.IOBurst, 1)
		require.Less(t, p.IOBurst, limits.MaxIOBurst)
		prev = p.ArrivalTime
	}
}

func TestScriptedDatasetZero(t *testing.T) {
	seed := uint64(7)
	src := &scriptedSource{
		t: t,
		draws: []draw{
			{128, 2},
			{100, 5}, {199, 9}, {29, 28}, {29, 1},
			{100, 37}, {199, 198}, {29, 0}, {29, 28},
			{100, 59}, {199, 0}, {29, 14}, {29, 6},
		},
		fallback: random.New(&seed),
	}
	dir := t.TempDir()

	_, err := New(config.DefaultLimits(), src, logger.Discard()).GenerateDir(dir)

	require.NoError(t, err)
	got, err := os.ReadFile(filepath.Join(dir, "input0"))
	require.NoError(t, err)
	assert.Equal(t, "5\t10\t29\t2\n42\t199\t1\t29\n101\t1\t15\t7\n", string(got))
}

func TestGenerateDirWritesSevenArtifacts(t *testing.T) {
	dir := t.TempDir()

	datasets, err := newSeeded(1).GenerateDir(dir)

	require.NoError(t, err)
	require.Len(t, datasets, 7)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t,
		[]string{"input0", "input1", "input2", "input3", "input4", "input5", "input6"}, names)

	for i, d := range datasets {
		assert.Equal(t, i, d.Index)
		assert.Equal(t, d.Processes, readArtifact(t, dir, d.Name()))
	}
}

func TestGeneratedArtifactsHonorBounds(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Uint64().Draw(rt, "seed")
		dir := t.TempDir()

		_, err := newSeeded(seed).GenerateDir(dir)
		require.NoError(rt, err)

		for n := 0; n < 7; n++ {
			name := (&core.Dataset{Index: n}).Name()
			checkDataset(rt, config.DefaultLimits(), readArtifact(rt, dir, name))
		}
	})
}

func TestDatasetHonorsCustomLimits(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		limits := config.Limits{
			Datasets:    rapid.IntRange(1, 10).Draw(rt, "datasets"),
			MaxProcess:  rapid.IntRange(1, 64).Draw(rt, "maxProcess"),
			MaxInterval: rapid.IntRange(1, 50).Draw(rt, "maxInterval"),
			MaxTotalCPU: rapid.IntRange(2, 50).Draw(rt, "maxTotalCPU"),
			MaxCPUBurst: rapid.IntRange(2, 10).Draw(rt, "maxCPUBurst"),
			MaxIOBurst:  rapid.IntRange(2, 10).Draw(rt, "maxIOBurst"),
		}
		seed := rapid.Uint64().Draw(rt, "seed")

		datasets := New(limits, random.New(&seed), logger.Discard()).Datasets()

		require.Len(rt, datasets, limits.Datasets)
		for _, d := range datasets {
			checkDataset(rt, limits, d.Processes)
		}
	})
}

func TestMaxIntervalOfOneKeepsArrivalsAtZero(t *testing.T) {
	limits := config.DefaultLimits()
	limits.MaxInterval = 1
	seed := uint64(3)

	d := New(limits, random.New(&seed), logger.Discard()).Dataset(0)

	for _, p := range d.Processes {
		assert.Zero(t, p.ArrivalTime)
	}
}

func TestSameSeedSameArtifacts(t *testing.T) {
	first, second := t.TempDir(), t.TempDir()

	_, err := newSeeded(99).GenerateDir(first)
	require.NoError(t, err)
	_, err = newSeeded(99).GenerateDir(second)
	require.NoError(t, err)

	for n := 0; n < 7; n++ {
		name := (&core.Dataset{Index: n}).Name()
		a, err := os.ReadFile(filepath.Join(first, name))
		require.NoError(t, err)
		b, err := os.ReadFile(filepath.Join(second, name))
		require.NoError(t, err)
		assert.Equal(t, a, b, name)
	}
}

func TestRerunOverwritesArtifacts(t *testing.T) {
	dir := t.TempDir()
	_, err := newSeeded(1).GenerateDir(dir)
	require.NoError(t, err)

	datasets, err := newSeeded(2).GenerateDir(dir)
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 7)
	for _, d := range datasets {
		assert.Equal(t, d.Processes, readArtifact(t, dir, d.Name()))
	}
}

func TestGenerateDirMissingDirectory(t *testing.T) {
	_, err := newSeeded(1).GenerateDir(filepath.Join(t.TempDir(), "missing"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	var pathErr *fs.PathError
	assert.True(t, errors.As(err, &pathErr))
}

type memArtifact struct {
	bytes.Buffer
	failWrite bool
	failClose bool
	closed    bool
}

func (a *memArtifact) Write(p []byte) (int, error) {
	if a.failWrite {
		return 0, errors.New("no space left on device")
	}
	return a.Buffer.Write(p)
}

func (a *memArtifact) Close() error {
	a.closed = true
	if a.failClose {
		return errors.New("close failed")
	}
	return nil
}

type memSink struct {
	artifacts  map[string]*memArtifact
	failCreate string
	failWrite  string
	failClose  string
}

func newMemSink() *memSink {
	return &memSink{artifacts: make(map[string]*memArtifact)}
}

func (s *memSink) Create(name string) (io.WriteCloser, error) {
	if name == s.failCreate {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrPermission}
	}
	a := &memArtifact{failWrite: name == s.failWrite, failClose: name == s.failClose}
	s.artifacts[name] = a
	return a, nil
}

func TestGenerateAbortsOnCreateError(t *testing.T) {
	sink := newMemSink()
	sink.failCreate = "input3"

	datasets, err := newSeeded(5).Generate(sink)

	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrPermission))
	assert.Len(t, datasets, 3)
	assert.Len(t, sink.artifacts, 3)
	for _, name := range []string{"input0", "input1", "input2"} {
		require.Contains(t, sink.artifacts, name)
		assert.NotZero(t, sink.artifacts[name].Len())
		assert.True(t, sink.artifacts[name].closed)
	}
}

func TestGenerateAbortsOnWriteErrorAndCloses(t *testing.T) {
	sink := newMemSink()
	sink.failWrite = "input1"

	_, err := newSeeded(5).Generate(sink)

	require.EqualError(t, err, "writing input1: no space left on device")
	assert.True(t, sink.artifacts["input1"].closed)
	assert.NotContains(t, sink.artifacts, "input2")
}

func TestGenerateReportsCloseError(t *testing.T) {
	sink := newMemSink()
	sink.failClose = "input0"

	datasets, err := newSeeded(5).Generate(sink)

	require.EqualError(t, err, "closing input0: close failed")
	assert.Empty(t, datasets)
	assert.Len(t, sink.artifacts, 1)
}
