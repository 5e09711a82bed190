package responses

type ProcessResponse struct {
	ArrivalTime int `json:"arrival_time"`
	TotalCPU    int `json:"total_cpu"`
	CPUBurst    int `json:"cpu_burst"`
	IOBurst     int `json:"io_burst"`
}

type DatasetSummary struct {
	ProcessCount    int     `json:"process_count"`
	LastArrivalTime int     `json:"last_arrival_time"`
	AverageTotalCPU float64 `json:"average_total_cpu"`
	AverageCPUBurst float64 `json:"average_cpu_burst"`
	AverageIOBurst  float64 `json:"average_io_burst"`
}

type DatasetResponse struct {
	Name      string            `json:"name"`
	Summary   DatasetSummary    `json:"summary"`
	Processes []ProcessResponse `json:"processes,omitempty"`
}

type WorkloadResponse struct {
	Datasets []DatasetResponse `json:"datasets"`
}

type GenerateResponse struct {
	OutputDir string            `json:"output_dir"`
	Artifacts []DatasetResponse `json:"artifacts"`
}
