package pool

import (
	"log"
	"sync"
	"time"

	"shortstr-url-shortener/internal/shortstr"
)

// Pool keeps a buffer of pre-generated, collision-checked shortstrings so
// request handlers can hand one out without paying for generation and
// duplicate checks inline.
type Pool struct {
	strings         chan string
	reserved        map[string]bool // shortstrings drawn but not yet taken
	mutex           sync.RWMutex
	workerCount     int
	format          string
	includeChecksum bool
	seen            shortstr.RepeatFunc // external duplicate check, e.g. against the database
	generator       *shortstr.Generator
	quit            chan struct{}
	wg              sync.WaitGroup
}

var GlobalPool *Pool

// InitPool starts the global pre-generation pool. The seen predicate reports
// whether a shortstring is already in use outside the pool; it may be nil.
func InitPool(workerCount, size int, format string, includeChecksum bool, seen shortstr.RepeatFunc) {
	GlobalPool = NewPool(workerCount, size, format, includeChecksum, seen)
	log.Printf("Initialized shortstring pool with %d workers (buffer: %d, format: %q)", workerCount, size, format)
}

// NewPool creates and starts a pool. Callers outside main generally want
// InitPool instead.
func NewPool(workerCount, size int, format string, includeChecksum bool, seen shortstr.RepeatFunc) *Pool {
	p := &Pool{
		strings:         make(chan string, size),
		reserved:        make(map[string]bool),
		workerCount:     workerCount,
		format:          format,
		includeChecksum: includeChecksum,
		seen:            seen,
		// Bounded so a stuck seen predicate (e.g. the database rejecting
		// every lookup) surfaces as an error instead of wedging a worker
		// inside an endless retry loop.
		generator: &shortstr.Generator{MaxAttempts: 100},
		quit:      make(chan struct{}),
	}

	for i := 0; i < workerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}

	return p
}

// Take returns a ready shortstring from the buffer, falling back to
// synchronous generation when the buffer is empty (e.g. right after startup
// or under burst load).
func (p *Pool) Take() (string, error) {
	select {
	case ss := <-p.strings:
		p.mutex.Lock()
		delete(p.reserved, ss)
		p.mutex.Unlock()
		return ss, nil
	default:
		log.Printf("Pool: buffer empty, generating shortstring synchronously")
		return p.generator.Generate(p.format, p.includeChecksum, p.isTaken)
	}
}

// worker fills the buffer until shutdown.
func (p *Pool) worker(id int) {
	defer p.wg.Done()
	log.Printf("Pool worker %d started", id)

	for {
		select {
		case <-p.quit:
			log.Printf("Pool worker %d stopped", id)
			return
		default:
		}

		ss, err := p.generator.Generate(p.format, p.includeChecksum, p.reserve)
		if err != nil {
			log.Printf("Pool worker %d: failed to generate shortstring: %v", id, err)
			// Back off briefly; the usual cause is the seen predicate
			// erroring on every lookup.
			select {
			case <-time.After(100 * time.Millisecond):
			case <-p.quit:
				log.Printf("Pool worker %d stopped", id)
				return
			}
			continue
		}

		select {
		case p.strings <- ss:
		case <-p.quit:
			p.mutex.Lock()
			delete(p.reserved, ss)
			p.mutex.Unlock()
			log.Printf("Pool worker %d stopped", id)
			return
		}
	}
}

// reserve is the repeat-check predicate used while filling the buffer: it
// rejects anything already reserved by the pool or seen externally, and
// atomically claims accepted strings so two workers can't buffer the same one.
func (p *Pool) reserve(ss string) bool {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	if p.reserved[ss] {
		return true
	}
	if p.seen != nil && p.seen(ss) {
		return true
	}
	p.reserved[ss] = true
	return false
}

// isTaken is the predicate for synchronous fallback generation: it checks
// without reserving, since the result is handed straight to the caller.
func (p *Pool) isTaken(ss string) bool {
	p.mutex.RLock()
	reserved := p.reserved[ss]
	p.mutex.RUnlock()
	if reserved {
		return true
	}
	return p.seen != nil && p.seen(ss)
}

// GetStatus returns the current state of the pool for the status endpoint.
func (p *Pool) GetStatus() map[string]interface{} {
	p.mutex.RLock()
	reservedCount := len(p.reserved)
	p.mutex.RUnlock()

	return map[string]interface{}{
		"worker_count":   p.workerCount,
		"buffer_size":    cap(p.strings),
		"ready_count":    len(p.strings),
		"reserved_count": reservedCount,
		"format":         p.format,
	}
}

// Shutdown stops the workers and waits for them to exit. Buffered
// shortstrings are discarded; they were never handed out.
func (p *Pool) Shutdown() {
	close(p.quit)
	p.wg.Wait()
	log.Println("Shortstring pool shutdown complete")
}
