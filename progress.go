package nnscan

// ProgressReporter receives progress of a launch.
//
// Add is called concurrently from lanes, once per finished chunk, with the
// number of indices in that chunk. Implementations must be safe for
// concurrent use.
type ProgressReporter interface {
	Start(total int)
	Add(n int)
	Finish()
}

type noopProgress struct{}

func (noopProgress) Start(int) {}
func (noopProgress) Add(int)   {}
func (noopProgress) Finish()   {}
