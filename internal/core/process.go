package core

import "fmt"

// Process is one synthetic process descriptor, the unit the scheduler
// simulator reads from its input file.
type Process struct {
	ArrivalTime int
	TotalCPU    int
	CPUBurst    int
	IOBurst     int
}

// String formats the descriptor as a single tab separated record without the
// trailing newline.
func (p Process) String() string {
	return fmt.Sprintf("%d\t%d\t%d\t%d", p.ArrivalTime, p.TotalCPU, p.CPUBurst, p.IOBurst)
}
