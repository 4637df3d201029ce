package sim

import (
	"runtime"
	"sync"
)

// defaultThreshold is the minimum body count to use parallel processing.
// Below this, single-threaded is faster due to goroutine overhead.
const defaultThreshold = 64

// workChunk represents a range of snapshot indices for a worker to process.
type workChunk struct {
	start, end int
}

// forceState holds resources for the parallel force pass.
type forceState struct {
	snapshots  []snapshot
	intents    []intent
	numWorkers int
	threshold  int

	// Worker pool channels
	workChan chan workChunk // sends work to workers
	doneChan chan struct{}  // workers signal completion
	stopChan chan struct{}  // signals workers to exit
	wg       sync.WaitGroup // tracks active workers
	running  bool           // true if workers are running
}

func newForceState(workers, threshold int) *forceState {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if threshold <= 0 {
		threshold = defaultThreshold
	}
	return &forceState{
		numWorkers: workers,
		threshold:  threshold,
		snapshots:  make([]snapshot, 0, 256),
		intents:    make([]intent, 0, 256),
	}
}

// startWorkers launches persistent worker goroutines.
func (fs *forceState) startWorkers(p *Pool) {
	if fs.running {
		return
	}

	fs.workChan = make(chan workChunk, fs.numWorkers)
	fs.doneChan = make(chan struct{}, fs.numWorkers)
	fs.stopChan = make(chan struct{})
	fs.running = true

	for i := 0; i < fs.numWorkers; i++ {
		fs.wg.Add(1)
		go fs.worker(p)
	}
}

// stopWorkers signals all workers to exit and waits for them.
func (fs *forceState) stopWorkers() {
	if !fs.running {
		return
	}

	close(fs.stopChan)
	fs.wg.Wait()
	close(fs.workChan)
	close(fs.doneChan)
	fs.running = false
}

// worker runs in a goroutine, processing chunks until stopped. Each chunk
// writes a disjoint index range of the intents slice, so workers never
// contend.
func (fs *forceState) worker(p *Pool) {
	defer fs.wg.Done()

	for {
		select {
		case <-fs.stopChan:
			return
		case chunk, ok := <-fs.workChan:
			if !ok {
				return
			}
			p.computeChunk(chunk.start, chunk.end)
			fs.doneChan <- struct{}{}
		}
	}
}

// computeParallel dispatches the force pass to the worker pool.
func (p *Pool) computeParallel(n int) {
	fs := p.parallel

	// Ensure workers are running
	if !fs.running {
		fs.startWorkers(p)
	}

	chunkSize := (n + fs.numWorkers - 1) / fs.numWorkers

	// Dispatch chunks to workers
	chunksDispatched := 0
	for w := 0; w < fs.numWorkers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > n {
			end = n
		}
		if start >= end {
			continue
		}

		fs.workChan <- workChunk{start: start, end: end}
		chunksDispatched++
	}

	// Wait for all chunks to complete
	for i := 0; i < chunksDispatched; i++ {
		<-fs.doneChan
	}
}
