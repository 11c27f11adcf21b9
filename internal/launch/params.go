// Package launch derives run parameters, lays out run directories, and
// renders everything one standalone Spark cluster run needs before the
// launch script is handed to the batch system.
package launch

// Options collects the raw knobs from flags and config before validation.
// The zero value of a field means "not set"; Derive fills defaults.
type Options struct {
	SparkVersion string
	SparkHome    string
	JavaHome     string
	RunsDir      string

	Workers     int
	MinWorkers  int
	WorkerSlots int
	DriverSlots int
	GBPerSlot   int

	Runtime string

	Project         string
	ExtraSubmitArgs string

	MasterPort  int
	LogLevel    string
	ParallelEnv string
	ScratchRoot string

	ConsolidateLogs bool
	WorkerDir       string
	LocalDirs       string
}

// RunParameters is the validated, fully resolved form of Options. It is
// built once by Derive and not modified afterwards.
type RunParameters struct {
	User string

	SparkHome string
	JavaHome  string
	RunsDir   string

	Workers     int
	MinWorkers  int
	WorkerSlots int
	DriverSlots int
	GBPerSlot   int

	// RuntimeRaw keeps the limit exactly as given for backends that pass
	// it through; RuntimeSeconds is the same ceiling in absolute seconds.
	RuntimeRaw     string
	RuntimeSeconds int64

	Project         string
	ExtraSubmitArgs string
	SubmitOpts      string

	MasterPort  int
	LogLevel    string
	ParallelEnv string
	ScratchRoot string

	ConsolidateLogs bool

	// WorkerDir is empty when logs are consolidated and no override was
	// given; the generator then places it under the run's logs directory.
	WorkerDir string
	LocalDirs string
}

// DriverMemoryGB is the driver daemon heap. One GB of the driver node's
// allocation is left for the OS and the Python or R frontend.
func (p *RunParameters) DriverMemoryGB() int {
	return p.DriverSlots*p.GBPerSlot - 1
}

// WorkerMemoryGB is the memory each worker offers to executors.
func (p *RunParameters) WorkerMemoryGB() int {
	return p.WorkerSlots * p.GBPerSlot
}
