package util

import (
	"sched-autogen/internal/core"
	"sched-autogen/internal/responses"
)

func Summarize(dataset *core.Dataset) responses.DatasetSummary {
	var totalCPUSum float64
	var cpuBurstSum float64
	var ioBurstSum float64

	summary := responses.DatasetSummary{ProcessCount: len(dataset.Processes)}
	if summary.ProcessCount == 0 {
		return summary
	}

	for _, process := range dataset.Processes {
		totalCPUSum += float64(process.TotalCPU)
		cpuBurstSum += float64(process.CPUBurst)
		ioBurstSum += float64(process.IOBurst)
	}

	processCount := float64(summary.ProcessCount)

	summary.LastArrivalTime = dataset.Processes[len(dataset.Processes)-1].ArrivalTime
	summary.AverageTotalCPU = totalCPUSum / processCount
	summary.AverageCPUBurst = cpuBurstSum / processCount
	summary.AverageIOBurst = ioBurstSum / processCount
	return summary
}

// DatasetResponse converts a dataset for the API. Processes are included only
// when withProcesses is set.
func DatasetResponse(dataset *core.Dataset, withProcesses bool) responses.DatasetResponse {
	response := responses.DatasetResponse{
		Name:    dataset.Name(),
		Summary: Summarize(dataset),
	}
	if withProcesses {
		response.Processes = make([]responses.ProcessResponse, 0, len(dataset.Processes))
		for _, p := range dataset.Processes {
			response.Processes = append(response.Processes, responses.ProcessResponse{
				ArrivalTime: p.ArrivalTime,
				TotalCPU:    p.TotalCPU,
				CPUBurst:    p.CPUBurst,
				IOBurst:     p.IOBurst,
			})
		}
	}
	return response
}
