package core

import (
	"bufio"
	"fmt"
	"io"
)

// ArtifactPrefix is prepended to a dataset index to build its file name.
const ArtifactPrefix = "input"

// Dataset is an ordered workload of processes stored in one artifact.
type Dataset struct {
	Index     int
	Processes []Process
}

// Name returns the artifact name of the dataset, e.g. input3.
func (d *Dataset) Name() string {
	return fmt.Sprintf("%s%d", ArtifactPrefix, d.Index)
}

// WriteTo writes every process as "arrival\ttotal\tcpu\tio\n". No header is
// emitted.
func (d *Dataset) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var written int64
	for _, p := range d.Processes {
		n, err := fmt.Fprintf(bw, "%s\n", p)
		written += int64(n)
		if err != nil {
			return written, err
		}
	}
	if err := bw.Flush(); err != nil {
		return written, err
	}
	return written, nil
}
