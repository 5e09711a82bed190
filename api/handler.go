package api

import (
	"log/slog"
	"strconv"
	"sync"

	"github.com/gofiber/fiber/v2"

	"sched-autogen/config"
	"sched-autogen/internal/core"
	"sched-autogen/internal/generator"
	"sched-autogen/internal/random"
	"sched-autogen/internal/requests"
	"sched-autogen/internal/responses"
	"sched-autogen/internal/util"
)

type WorkloadHandler interface {
	ListDatasets(ctx *fiber.Ctx) error
	GetDataset(ctx *fiber.Ctx) error
	Generate(ctx *fiber.Ctx) error
}

type WorkloadHandlerImpl struct {
	config *config.GeneratorConfig
	logger *slog.Logger
	// serializes writes into the output directory
	mu sync.Mutex
}

func NewWorkloadHandlerImpl(config *config.GeneratorConfig, logger *slog.Logger) *WorkloadHandlerImpl {
	return &WorkloadHandlerImpl{config: config, logger: logger}
}

// NewApp wires the handler under /api/v1.
func NewApp(handler WorkloadHandler) *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	api := app.Group("/api")

	v1 := api.Group("/v1")
	{
		v1.Get("/datasets", handler.ListDatasets)
		v1.Get("/datasets/:index", handler.GetDataset)
		v1.Post("/generate", handler.Generate)
	}
	return app
}

func (h *WorkloadHandlerImpl) ListDatasets(ctx *fiber.Ctx) error {
	seed, err := h.querySeed(ctx)
	if err != nil {
		return badRequest(ctx, "invalid seed")
	}

	datasets := h.newGenerator(seed).Datasets()
	response := responses.WorkloadResponse{Datasets: make([]responses.DatasetResponse, 0, len(datasets))}
	for _, dataset := range datasets {
		response.Datasets = append(response.Datasets, util.DatasetResponse(dataset, true))
	}
	return ctx.JSON(response)
}

// GetDataset returns one dataset in the artifact file format. Draws for the
// preceding datasets are consumed first so a seeded response matches the
// artifact with the same name.
func (h *WorkloadHandlerImpl) GetDataset(ctx *fiber.Ctx) error {
	index, err := strconv.Atoi(ctx.Params("index"))
	if err != nil || index < 0 || index >= h.config.Limits.Datasets {
		return badRequest(ctx, "invalid dataset index")
	}
	seed, err := h.querySeed(ctx)
	if err != nil {
		return badRequest(ctx, "invalid seed")
	}

	g := h.newGenerator(seed)
	var dataset *core.Dataset
	for n := 0; n <= index; n++ {
		dataset = g.Dataset(n)
	}

	ctx.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	_, err = dataset.WriteTo(ctx)
	return err
}

func (h *WorkloadHandlerImpl) Generate(ctx *fiber.Ctx) error {
	request := new(requests.GenerateRequest)
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(request); err != nil {
			return badRequest(ctx, "invalid request format")
		}
	}
	seed := h.config.Seed
	if request.Seed != nil {
		seed = request.Seed
	}

	h.mu.Lock()
	datasets, err := h.newGenerator(seed).GenerateDir(h.config.OutputDir)
	h.mu.Unlock()
	if err != nil {
		h.logger.Error("generate failed", "output_dir", h.config.OutputDir, "error", err)
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	response := responses.GenerateResponse{
		OutputDir: h.config.OutputDir,
		Artifacts: make([]responses.DatasetResponse, 0, len(datasets)),
	}
	for _, dataset := range datasets {
		response.Artifacts = append(response.Artifacts, util.DatasetResponse(dataset, false))
	}
	return ctx.JSON(response)
}

func (h *WorkloadHandlerImpl) newGenerator(seed *uint64) *generator.Generator {
	return generator.New(h.config.Limits, random.New(seed), h.logger)
}

func (h *WorkloadHandlerImpl) querySeed(ctx *fiber.Ctx) (*uint64, error) {
	raw := ctx.Query("seed")
	if raw == "" {
		return h.config.Seed, nil
	}
	seed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, err
	}
	return &seed, nil
}

func badRequest(ctx *fiber.Ctx, message string) error {
	return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": message})
}
